package store

import (
	"context"
	"fmt"

	"unfair_dao/sdk"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Options struct {
	Backend string
	// FilePath is used by the file backend.
	FilePath string
	// RedisURL and RedisPrefix are used by the redis backend.
	RedisURL    string
	RedisPrefix string
	// SQLDSN is used by the mysql and postgres backends.
	SQLDSN string
	// MongoURI and MongoDatabase are used by the mongo backend.
	MongoURI      string
	MongoDatabase string
}

// Open builds the account store named by opts.Backend.
func Open(ctx context.Context, opts Options) (sdk.State, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		if opts.FilePath == "" {
			return nil, fmt.Errorf("file backend needs a path")
		}
		return OpenFile(opts.FilePath)
	case BackendRedis:
		return OpenRedis(opts.RedisURL, opts.RedisPrefix)
	case BackendMySQL, BackendPostgres:
		return OpenSQL(opts.Backend, opts.SQLDSN)
	case BackendMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}
