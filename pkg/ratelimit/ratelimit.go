package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter in Redis, keyed per caller. The
// first hit in a window creates the key with a TTL; the key expiring
// resets the window.
type Limiter struct {
	redis  *redis.Client
	window time.Duration
	max    int
}

func NewLimiter(redisClient *redis.Client, window time.Duration, max int) *Limiter {
	return &Limiter{
		redis:  redisClient,
		window: window,
		max:    max,
	}
}

// Allow records one attempt for key and reports whether it is still
// within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.max), nil
}

// Reset clears the window for key, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	if err := l.redis.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit counter: %w", err)
	}

	return nil
}
