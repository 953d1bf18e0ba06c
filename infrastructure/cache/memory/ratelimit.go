// ABOUTME: In-memory fixed-window rate limiter
// ABOUTME: Counts requests per key inside this process when no shared backend is available

package memory

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often finished windows are dropped
const DefaultSweepInterval = time.Minute

// RateLimiter implements interfaces.RateLimiter with a map of buckets
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string]*bucket
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// bucket tracks requests for a specific key
type bucket struct {
	count       int
	windowStart time.Time
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter and starts its sweeper
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*bucket),
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go rl.sweepRoutine(DefaultSweepInterval)

	return rl
}

// Allow records one hit for key and reports whether it fits the window
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.requests[key]

	if !exists || now.Sub(b.windowStart) >= b.window {
		rl.requests[key] = &bucket{
			count:       1,
			windowStart: now,
			window:      window,
		}
		return true, nil
	}

	if b.count < limit {
		b.count++
		return true, nil
	}

	return false, nil
}

// Len reports how many keys have an open window
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.requests)
}

// Close stops the sweeper
func (rl *RateLimiter) Close() error {
	rl.stopOnce.Do(func() { close(rl.done) })
	return nil
}

func (rl *RateLimiter) sweepRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

// sweep removes buckets whose window has passed
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.requests {
		if now.Sub(b.windowStart) >= b.window {
			delete(rl.requests, key)
		}
	}
}
