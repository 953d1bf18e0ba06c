// ABOUTME: Typed FeedData view over the byte cache
// ABOUTME: Downgrades every cache backend failure to a miss or a skipped write

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"listfeeds-api/core/domain"
	"listfeeds-api/core/interfaces"
)

// Store reads and writes FeedData in the cache. It never returns cache errors:
// a failed read is a miss and a failed write only loses the optimization.
type Store struct {
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewStore creates a Store over the given cache
func NewStore(cache interfaces.Cache, logger interfaces.Logger) *Store {
	return &Store{cache: cache, logger: logger}
}

// Get returns the cached FeedData for key, or false on a miss
func (s *Store) Get(ctx context.Context, key string) (*domain.FeedData, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("Cache read failed, treating as miss", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var data domain.FeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("Cached feed is not decodable, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	return &data, true
}

// Set stores data under key for ttl and reports whether the write succeeded
func (s *Store) Set(ctx context.Context, key string, data *domain.FeedData, ttl time.Duration) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to encode feed for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	return true
}
