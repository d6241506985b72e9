package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per username in Redis and
// reports when a username has exceeded the allowed failures inside the
// window. Key format: login_failures:<username>, expiring after the window.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Throttled reports whether username has reached the failure limit.
func (t *LoginThrottle) Throttled(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the failure counter, starting the expiry window
// on the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return "login_failures:" + username
}
