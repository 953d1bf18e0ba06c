// ABOUTME: Fixed-window request counter stored in Redis
// ABOUTME: Lets every process behind the same Redis enforce one shared limit

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitPrefix namespaces counter keys
const rateLimitPrefix = "ratelimit:"

// RateLimiter implements interfaces.RateLimiter with INCR and PEXPIRE
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a Redis-backed rate limiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow counts one hit for key in the current window
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	counterKey := rateLimitPrefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pttl := pipe.PTTL(ctx, counterKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	// A counter without expiry opens a new window
	if pttl.Val() < 0 {
		if err := r.client.PExpire(ctx, counterKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set window: %w", err)
		}
	}

	count := incr.Val()
	return count <= int64(limit), nil
}
