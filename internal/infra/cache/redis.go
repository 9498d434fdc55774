package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранилище кэша в Redis, общее для всех инстансов сервиса
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore создает хранилище. Все ключи получают префикс prefix.
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "availability"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - redis get: %v", ErrStore, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - redis set: %v", ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Version(ctx context.Context, scope string) (int64, error) {
	v, err := s.rdb.Get(ctx, s.versionKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Version - redis get: %v", ErrStore, err)
	}
	return v, nil
}

func (s *RedisStore) Bump(ctx context.Context, scope string) error {
	if err := s.rdb.Incr(ctx, s.versionKey(scope)).Err(); err != nil {
		return fmt.Errorf("%w: Bump - redis incr: %v", ErrStore, err)
	}
	return nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) versionKey(scope string) string {
	return s.prefix + ":ver:" + scope
}
