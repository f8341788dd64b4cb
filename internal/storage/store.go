package storage

import (
	"context"
	"errors"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSqlite   = "sqlite"
)

// Store is a string key-value store.
// Load reports found=false for a missing key, which is not an error.
type Store interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
}
