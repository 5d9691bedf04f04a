// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements [Store] on Redis with a fixed TTL per entry.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. Every key is namespaced with prefix.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

/*
Get reads a cached value.

Returns:
  - []byte: Encoded value
  - bool: false when the key is absent or expired
  - error: Connectivity errors
*/
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_fetch_get_failed: %w", err)
	}
	return value, true, nil
}

// Set stores a value with the configured TTL.
func (store *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := store.client.Set(ctx, store.prefix+key, value, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_fetch_set_failed: %w", err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are ignored.
func (store *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = store.prefix + key
	}

	if err := store.client.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("redis_fetch_delete_failed: %w", err)
	}
	return nil
}
