package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValueStore stores values as plain Redis strings without expiry.
type RedisKeyValueStore struct {
	client redis.Cmdable
}

// NewRedisKeyValueStore wraps a go-redis client.
func NewRedisKeyValueStore(client redis.Cmdable) *RedisKeyValueStore {
	return &RedisKeyValueStore{client: client}
}

// Get implements KeyValueStore.
func (s *RedisKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KeyValueStore.
func (s *RedisKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

var _ KeyValueStore = (*RedisKeyValueStore)(nil)
