package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

type NewStoreParams struct {
	Backend         string
	Path            string
	MemoryCacheSize int
	RedisClient     redis.Cmdable
	RedisKeyPrefix  string
	DBPool          pgxPool
}

// New builds the store for the configured backend. The redis and postgres
// backends reuse clients owned by the caller.
func New(ctx context.Context, params NewStoreParams) (Store, error) {
	switch strings.ToLower(params.Backend) {
	case BackendMemory:
		return NewMemoryStore(params.MemoryCacheSize), nil
	case "", BackendFile:
		if params.Path == "" {
			return nil, errors.New("file store: path not set")
		}
		return NewFileStore(params.Path)
	case BackendRedis:
		if params.RedisClient == nil {
			return nil, errors.New("redis store: client not set")
		}
		return NewRedisStore(params.RedisClient, params.RedisKeyPrefix), nil
	case BackendPostgres:
		if params.DBPool == nil {
			return nil, errors.New("postgres store: db pool not set")
		}
		return NewPostgresStore(ctx, params.DBPool)
	case BackendSqlite:
		if params.Path == "" {
			return nil, errors.New("sqlite store: path not set")
		}
		return NewSqliteStore(params.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, params.Backend)
	}
}
