package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"unfair_dao/sdk"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runBackendSuite checks the commit contract every backend has to honour.
// prefix keeps runs against shared servers apart.
func runBackendSuite(t *testing.T, st sdk.State, prefix string) {
	ctx := context.Background()
	key := func(k string) string { return prefix + k }

	t.Run("missing key is nil", func(t *testing.T) {
		val, err := st.Get(ctx, key("missing"))
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("create then read", func(t *testing.T) {
		sess := sdk.NewSession(ctx, st)
		require.NoError(t, sess.Create(key("a"), []byte{0x04, 1, 2}))
		sess.Set(key("b"), []byte("two"))
		_, err := sess.Commit()
		require.NoError(t, err)

		val, err := st.Get(ctx, key("a"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x04, 1, 2}, val)
	})

	t.Run("duplicate create", func(t *testing.T) {
		first := sdk.NewSession(ctx, st)
		second := sdk.NewSession(ctx, st)
		require.NoError(t, first.Create(key("dup"), []byte("1")))
		require.NoError(t, second.Create(key("dup"), []byte("2")))
		_, err := first.Commit()
		require.NoError(t, err)
		_, err = second.Commit()
		assert.ErrorIs(t, err, sdk.ErrKeyExists)

		val, err := st.Get(ctx, key("dup"))
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), val)
	})

	t.Run("stale read is a conflict and nothing applies", func(t *testing.T) {
		a := sdk.NewSession(ctx, st)
		b := sdk.NewSession(ctx, st)
		for i, s := range []*sdk.Session{a, b} {
			_, err := s.Get(key("b"))
			require.NoError(t, err)
			s.Set(key("b"), []byte{byte(i)})
			s.Set(key("side"), []byte{byte(i)})
		}
		_, err := a.Commit()
		require.NoError(t, err)
		_, err = b.Commit()
		assert.ErrorIs(t, err, sdk.ErrConflict)

		val, err := st.Get(ctx, key("side"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0}, val)
	})

	t.Run("delete", func(t *testing.T) {
		sess := sdk.NewSession(ctx, st)
		sess.Delete(key("b"))
		_, err := sess.Commit()
		require.NoError(t, err)
		val, err := st.Get(ctx, key("b"))
		require.NoError(t, err)
		assert.Nil(t, val)
	})
}

func TestMemoryBackend(t *testing.T) {
	runBackendSuite(t, NewMemory(), "")
}

func TestFileBackendPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	f, err := OpenFile(path)
	require.NoError(t, err)
	runBackendSuite(t, f, "")

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	val, err := reopened.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 1, 2}, val)
	assert.Equal(t, f.Snapshot(), reopened.Snapshot())
}

func TestFileBackendRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestOpenMemoryAndUnknown(t *testing.T) {
	st, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	_, err = Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Options{Backend: BackendFile})
	assert.Error(t, err)
}

// The shared backends only run when a server is configured.

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("UNFAIR_DAO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("UNFAIR_DAO_TEST_REDIS_URL not set")
	}
	st, err := OpenRedis(url, "unfair_dao_test:")
	require.NoError(t, err)
	defer st.Close()
	runBackendSuite(t, st, uuid.NewString()+":")
}

func TestMySQLBackend(t *testing.T) {
	dsn := os.Getenv("UNFAIR_DAO_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("UNFAIR_DAO_TEST_MYSQL_DSN not set")
	}
	st, err := OpenSQL(BackendMySQL, dsn)
	require.NoError(t, err)
	defer st.Close()
	runBackendSuite(t, st, uuid.NewString()+":")
}

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("UNFAIR_DAO_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("UNFAIR_DAO_TEST_POSTGRES_DSN not set")
	}
	st, err := OpenSQL(BackendPostgres, dsn)
	require.NoError(t, err)
	defer st.Close()
	runBackendSuite(t, st, uuid.NewString()+":")
}

func TestMongoBackend(t *testing.T) {
	uri := os.Getenv("UNFAIR_DAO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("UNFAIR_DAO_TEST_MONGO_URI not set")
	}
	st, err := OpenMongo(context.Background(), uri, "unfair_dao_test")
	require.NoError(t, err)
	defer st.Close()
	runBackendSuite(t, st, uuid.NewString()+":")
}
