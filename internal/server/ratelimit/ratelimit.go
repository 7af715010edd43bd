// Package ratelimit implements a fixed-window failure counter in Redis,
// used to throttle repeated sign-in attempts per identifier.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts failures per key inside a fixed window. Once the budget is
// exhausted the key is blocked until the window expires.
type Limiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewLimiter(client *redis.Client, max int, window time.Duration) *Limiter {
	return &Limiter{client: client, max: max, window: window}
}

func (l *Limiter) key(id string) string {
	return "login-failures:" + id
}

// Blocked reports whether key has exhausted its failure budget in the
// current window.
func (l *Limiter) Blocked(ctx context.Context, id string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(id)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return n >= l.max, nil
}

// Fail records one failure for id. The first failure in a window starts the
// window clock.
func (l *Limiter) Fail(ctx context.Context, id string) error {
	key := l.key(id)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure count for id, typically after a successful
// sign-in.
func (l *Limiter) Reset(ctx context.Context, id string) error {
	if err := l.client.Del(ctx, l.key(id)).Err(); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
