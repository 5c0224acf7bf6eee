package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"unfair_dao/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasic(t *testing.T) {
	type conf struct {
		A uint
		B string
	}
	dir := t.TempDir()
	c := config.New(conf{1, "hi"}, dir)
	require.NoError(t, c.Init())
	assert.Equal(t, conf{1, "hi"}, c.Get())
	assert.FileExists(t, filepath.Join(dir, "conf.json"))

	require.NoError(t, c.Update(func(v *conf) { v.B = "changed" }))

	again := config.New(conf{}, dir)
	require.NoError(t, again.Init())
	assert.Equal(t, conf{1, "changed"}, again.Get())
}

func TestMissingFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AppConfig.json"), []byte(`{"Backend":"redis"}`), 0644))

	c := config.New(config.DefaultAppConfig(), dir)
	require.NoError(t, c.Init())
	assert.Equal(t, "redis", c.Get().Backend)
	assert.Equal(t, ":8080", c.Get().HTTPAddr)
}

func TestWithEnv(t *testing.T) {
	t.Setenv("UNFAIR_DAO_BACKEND", "postgres")
	t.Setenv("UNFAIR_DAO_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("UNFAIR_DAO_LOG_LEVEL", "debug")

	app := config.DefaultAppConfig().WithEnv()
	assert.Equal(t, "postgres", app.Backend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, app.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, app.SlogLevel())
	assert.Equal(t, "unfair_dao:", app.RedisPrefix)
}

func TestSetting(t *testing.T) {
	t.Setenv("UNFAIR_DAO_TEST_SETTING", "  ")
	assert.Equal(t, "fallback", config.Setting("UNFAIR_DAO_TEST_SETTING", "fallback"))
	t.Setenv("UNFAIR_DAO_TEST_SETTING", "set")
	assert.Equal(t, "set", config.Setting("UNFAIR_DAO_TEST_SETTING", "fallback"))
}

func TestBadLogLevel(t *testing.T) {
	app := config.DefaultAppConfig()
	app.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, app.SlogLevel())
}

func TestDefaultDir(t *testing.T) {
	c := config.New(config.DefaultAppConfig(), "")
	assert.Equal(t, filepath.Join(config.ConfigDir, "AppConfig.json"), c.FilePath())
	assert.Equal(t, config.DataDir+"/state.json", config.DefaultAppConfig().FilePath)
}
