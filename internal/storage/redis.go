package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/hybridpro/internal/telemetry/tracing"
)

type RedisStore struct {
	rdb       redis.Cmdable
	keyPrefix string
}

func NewRedisStore(rdb redis.Cmdable, keyPrefix string) *RedisStore {
	return &RedisStore{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) Load(ctx context.Context, key string) (_ string, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.redis.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := s.rdb.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get [%s]: %w", key, err)
	}

	return val, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.redis.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rdb.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set [%s]: %w", key, err)
	}
	return nil
}
