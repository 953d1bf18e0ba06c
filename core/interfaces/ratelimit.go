package interfaces

import (
	"context"
	"time"
)

// RateLimiter counts hits per key in fixed windows. Implementations share
// state across processes (Redis) or keep it in memory.
type RateLimiter interface {
	// Allow records one hit for key and reports whether it is within limit
	// for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
