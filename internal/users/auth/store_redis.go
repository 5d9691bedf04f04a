// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/readmate/internal/platform/constants"
)

// RedisLoginGuard implements [LoginGuard] with one expiring counter per login.
type RedisLoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a new Redis-backed [LoginGuard].
func NewLoginGuard(client *redis.Client) *RedisLoginGuard {
	return &RedisLoginGuard{client: client}
}

func failureKey(login string) string {
	return constants.RedisPrefixLoginFailures + strings.ToLower(login)
}

/*
Failures returns the current failure count for login.

Returns:
  - int: Failures inside the window (0 when the key expired)
  - error: Connectivity errors
*/
func (guard *RedisLoginGuard) Failures(context context.Context, login string) (int, error) {
	count, err := guard.client.Get(context, failureKey(login)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_failures_get_failed: %w", err)
	}
	return count, nil
}

// RecordFailure increments the counter and refreshes its expiry in one round trip.
func (guard *RedisLoginGuard) RecordFailure(context context.Context, login string, window time.Duration) error {
	key := failureKey(login)

	pipe := guard.client.TxPipeline()
	pipe.Incr(context, key)
	pipe.Expire(context, key, window)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_login_failures_incr_failed: %w", err)
	}
	return nil
}

// Reset removes the counter after a successful login.
func (guard *RedisLoginGuard) Reset(context context.Context, login string) error {
	if err := guard.client.Del(context, failureKey(login)).Err(); err != nil {
		return fmt.Errorf("redis_login_failures_reset_failed: %w", err)
	}
	return nil
}
