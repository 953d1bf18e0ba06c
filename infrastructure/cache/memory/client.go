// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Process-local fallback used when the shared Redis backend is unreachable

package memory

import (
	"context"
	"sync"
	"time"

	"listfeeds-api/core/interfaces"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are purged
const DefaultCleanupInterval = 5 * time.Minute

// MemoryCache implements the Cache interface using in-memory storage.
// Entries are only visible to this process.
type MemoryCache struct {
	items    *gocache.Cache
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(DefaultCleanupInterval)
}

// NewMemoryCacheWithCleanup creates a cache that purges expired entries
// every interval until Close
func NewMemoryCacheWithCleanup(interval time.Duration) *MemoryCache {
	c := &MemoryCache{
		// go-cache's own janitor cannot be stopped, so it is disabled here
		items: gocache.New(gocache.NoExpiration, 0),
		done:  make(chan struct{}),
	}

	if interval > 0 {
		go c.cleanupRoutine(interval)
	}

	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	// Check if context is cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	stored, ok := value.([]byte)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	// Return a copy of the value
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	// go-cache reads 0 as "default expiration"; ours means "never".
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}

	c.items.Set(key, valueCopy, expiration)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.items.Delete(key)
	return nil
}

// Len returns the number of stored entries, expired ones included until purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Close stops the cleanup routine
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.done) })
	return nil
}

func (c *MemoryCache) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.items.DeleteExpired()
		case <-c.done:
			return
		}
	}
}
