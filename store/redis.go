package store

import (
	"context"
	"errors"
	"fmt"

	"unfair_dao/sdk"

	"github.com/redis/go-redis/v9"
)

// Redis stores every account as a plain string value under prefix+key.
// Commits WATCH the touched keys and apply the writes in MULTI/EXEC, so a
// concurrent writer makes EXEC fail instead of interleaving.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

var _ sdk.State = &Redis{}

// OpenRedis parses a redis:// url the same way the rest of our services do.
func OpenRedis(url string, prefix string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return NewRedis(redis.NewClient(opt), prefix), nil
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *Redis) Commit(ctx context.Context, batch *sdk.Batch) error {
	keys := batch.Keys()
	watched := make([]string, len(keys))
	for i, k := range keys {
		watched[i] = r.key(k)
	}

	txf := func(tx *redis.Tx) error {
		for _, key := range batch.ExpectKeys() {
			current, err := tx.Get(ctx, r.key(key)).Bytes()
			if errors.Is(err, redis.Nil) {
				current = nil
			} else if err != nil {
				return err
			}
			if err := batch.Check(key, current); err != nil {
				return err
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key := range batch.Deletes {
				pipe.Del(ctx, r.key(key))
			}
			for key, val := range batch.Writes {
				pipe.Set(ctx, r.key(key), val, 0)
			}
			return nil
		})
		return err
	}

	err := r.rdb.Watch(ctx, txf, watched...)
	if errors.Is(err, redis.TxFailedErr) {
		// tell a lost create race apart from any other concurrent write
		for key := range batch.Creates {
			if n, existsErr := r.rdb.Exists(ctx, r.key(key)).Result(); existsErr == nil && n > 0 {
				return batch.ExistsError(key)
			}
		}
		return fmt.Errorf("%w: redis transaction aborted", sdk.ErrConflict)
	}
	return err
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
