package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision reports the outcome of a budget check.
type Decision struct {
	Allowed bool
	ResetAt time.Time
}

// Limiter counts hits per key inside a fixed window. Peek reads the
// current count without consuming budget so callers can charge failed
// attempts only (login) or successful writes only.
type Limiter interface {
	// Allow consumes one unit of budget and reports whether the key is
	// still under the limit.
	Allow(ctx context.Context, key string, limit int) (Decision, error)
	// Peek reports whether the key already exceeded the limit without
	// consuming budget.
	Peek(ctx context.Context, key string, limit int) (Decision, error)
	// Hit consumes one unit of budget without checking the limit.
	Hit(ctx context.Context, key string) error
}

// RedisLimiter implements a fixed window on Redis INCR + EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	Window time.Duration
}

// NewRedis builds a Redis-backed limiter.
func NewRedis(client *redis.Client, prefix string, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, Window: window}
}

func (l *RedisLimiter) key(key string) string {
	return "ratelimit:" + l.prefix + ":" + key
}

// Allow increments the counter and checks the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int) (Decision, error) {
	count, err := l.increment(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	return l.decision(ctx, key, count <= int64(limit))
}

// Peek checks the counter without incrementing.
func (l *RedisLimiter) Peek(ctx context.Context, key string, limit int) (Decision, error) {
	count, err := l.client.Get(ctx, l.key(key)).Int64()
	if err == redis.Nil {
		count = 0
	} else if err != nil {
		return Decision{}, err
	}
	return l.decision(ctx, key, count < int64(limit))
}

// Hit increments the counter unconditionally.
func (l *RedisLimiter) Hit(ctx context.Context, key string) error {
	_, err := l.increment(ctx, key)
	return err
}

func (l *RedisLimiter) increment(ctx context.Context, key string) (int64, error) {
	full := l.key(key)
	count, err := l.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = l.client.Expire(ctx, full, l.Window).Err()
	}
	return count, nil
}

func (l *RedisLimiter) decision(ctx context.Context, key string, allowed bool) (Decision, error) {
	resetAt := time.Now().Add(l.Window)
	if ttl, err := l.client.TTL(ctx, l.key(key)).Result(); err == nil && ttl > 0 {
		resetAt = time.Now().Add(ttl)
	}
	return Decision{Allowed: allowed, ResetAt: resetAt}, nil
}
