// Package limiter counts attempts per key inside a fixed window. It backs the
// league join form so a league password can't be brute forced.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow records an attempt for key and reports whether it is still within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// NewRedis returns a limiter allowing limit attempts per key in every window.
func NewRedis(rdb redis.UniversalClient, prefix string, limit int, window time.Duration) Limiter {
	return &redisLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Connect parses a redis URL and checks the server is reachable.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return rdb, nil
}

type redisLimiter struct {
	rdb    redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + ":" + key

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("error counting attempt for %s: %w", key, err)
	}
	// The window is anchored at the first attempt.
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("error setting window for %s: %w", key, err)
		}
	}

	return n <= l.limit, nil
}

// Noop never limits. Used when no redis server is configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) {
	return true, nil
}
