package config

import (
	"log/slog"
	"os"
	"strings"
)

// AppConfig is everything the binary needs to start. It is stored as
// AppConfig.json and every field can be overridden from the environment.
type AppConfig struct {
	ProgramID string

	Backend       string
	FilePath      string
	RedisURL      string
	RedisPrefix   string
	SQLDSN        string
	MongoURI      string
	MongoDatabase string

	HTTPAddr    string
	CORSOrigins []string
	LogLevel    string

	FairScaleURL string
	FairScaleKey string
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Backend:       "file",
		FilePath:      DataDir + "/state.json",
		RedisPrefix:   "unfair_dao:",
		MongoDatabase: "unfair_dao",
		HTTPAddr:      ":8080",
		CORSOrigins:   []string{"*"},
		LogLevel:      "info",
		FairScaleURL:  "https://api.fairscale.xyz",
	}
}

// Setting returns the environment value of envKey, or fallback when it is unset.
// Example payload: Setting("UNFAIR_DAO_BACKEND", "memory")
func Setting(envKey, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		return val
	}
	return fallback
}

// WithEnv applies the UNFAIR_DAO_* overrides.
func (a AppConfig) WithEnv() AppConfig {
	a.ProgramID = Setting("UNFAIR_DAO_PROGRAM_ID", a.ProgramID)
	a.Backend = Setting("UNFAIR_DAO_BACKEND", a.Backend)
	a.FilePath = Setting("UNFAIR_DAO_FILE", a.FilePath)
	a.RedisURL = Setting("UNFAIR_DAO_REDIS_URL", a.RedisURL)
	a.RedisPrefix = Setting("UNFAIR_DAO_REDIS_PREFIX", a.RedisPrefix)
	a.SQLDSN = Setting("UNFAIR_DAO_SQL_DSN", a.SQLDSN)
	a.MongoURI = Setting("UNFAIR_DAO_MONGO_URI", a.MongoURI)
	a.MongoDatabase = Setting("UNFAIR_DAO_MONGO_DB", a.MongoDatabase)
	a.HTTPAddr = Setting("UNFAIR_DAO_HTTP_ADDR", a.HTTPAddr)
	if origins := Setting("UNFAIR_DAO_CORS_ORIGINS", ""); origins != "" {
		a.CORSOrigins = strings.Split(origins, ",")
	}
	a.LogLevel = Setting("UNFAIR_DAO_LOG_LEVEL", a.LogLevel)
	a.FairScaleURL = Setting("FAIRSCALE_URL", a.FairScaleURL)
	a.FairScaleKey = Setting("FAIRSCALE_API_KEY", a.FairScaleKey)
	return a
}

// SlogLevel maps LogLevel onto slog, unknown text means info.
func (a AppConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
