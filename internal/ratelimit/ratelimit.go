// Package ratelimit provides Redis-backed keyed cooldowns and advisory locks.
// Keeping the state in Redis rather than an in-process map keeps the limits
// correct across multiple server instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implements per-key cooldown windows and TTL'd advisory locks on a
// shared Redis instance.
type Limiter struct {
	client *redis.Client
	prefix string
}

// New creates a Limiter from a Redis URL.
func New(redisURL string) (*Limiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Limiter{client: redis.NewClient(opts), prefix: "portfolio:"}, nil
}

// NewWithClient wraps an existing client, mainly for tests.
func NewWithClient(client *redis.Client) *Limiter {
	return &Limiter{client: client, prefix: "portfolio:"}
}

// Allow reports whether key is outside its cooldown window. The first caller
// within a window wins and starts a new window; others are rejected until
// the key expires.
func (l *Limiter) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+"cooldown:"+key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown %s: %w", key, err)
	}
	return ok, nil
}

// AcquireLock takes a TTL'd advisory lock. It does not block; callers treat
// a held lock as a conflict. The TTL bounds how long a crashed holder can
// keep the lock.
func (l *Limiter) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+"lock:"+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// ReleaseLock drops an advisory lock.
func (l *Limiter) ReleaseLock(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+"lock:"+key).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (l *Limiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (l *Limiter) Close() error {
	return l.client.Close()
}
