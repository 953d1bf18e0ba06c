// ABOUTME: Feed service resolves a page URL into FeedData through cache, lock and fetcher
// ABOUTME: Uses double-checked locking so one upstream call serves every concurrent miss

package feed

import (
	"context"
	"strings"
	"time"

	"listfeeds-api/core/domain"
	coreerrors "listfeeds-api/core/errors"
	"listfeeds-api/core/interfaces"
	"listfeeds-api/pkg/utils/urlnorm"
)

const (
	// DefaultCacheTTL matches the 15 minute feed lifetime readers expect
	DefaultCacheTTL = 15 * time.Minute

	// DefaultLockTTL bounds how long a crashed holder blocks a URL
	DefaultLockTTL = 30 * time.Second

	releaseTimeout = 5 * time.Second
)

// Options tunes FeedService
type Options struct {
	// CacheTTL is how long extracted feeds stay cached
	CacheTTL time.Duration

	// LockTTL is the expiry set on a per-URL lock record
	LockTTL time.Duration
}

// FeedService is the single entry point for getting a feed for a URL
type FeedService struct {
	deps    interfaces.Dependencies
	store   *Store
	fetcher interfaces.FeedFetcher
	opts    Options
}

// NewFeedService creates a new feed service instance
func NewFeedService(deps interfaces.Dependencies, fetcher interfaces.FeedFetcher, opts Options) *FeedService {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = DefaultLockTTL
	}

	return &FeedService{
		deps:    deps,
		store:   NewStore(deps.Cache, deps.Logger),
		fetcher: fetcher,
		opts:    opts,
	}
}

// CacheTTL returns the lifetime of cached feeds
func (s *FeedService) CacheTTL() time.Duration {
	return s.opts.CacheTTL
}

// GetFeed returns FeedData for rawURL, extracting it at most once per cache
// lifetime no matter how many callers ask concurrently. Extraction failures
// are returned unchanged and never cached.
func (s *FeedService) GetFeed(ctx context.Context, rawURL string) (*domain.FeedData, error) {
	normalized := urlnorm.Normalize(rawURL)
	if normalized == "" {
		return nil, coreerrors.ErrNoURLProvided
	}

	cacheKey := urlnorm.CachePrefix + normalized
	if data, ok := s.store.Get(ctx, cacheKey); ok {
		return data, nil
	}

	lockKey := urlnorm.LockPrefix + cacheKey
	lock, err := s.deps.Locker.Acquire(ctx, lockKey, s.opts.LockTTL)
	if err != nil {
		s.deps.Logger.Warn("Failed to acquire feed lock", map[string]interface{}{
			"key":   lockKey,
			"error": err.Error(),
		})
		return nil, err
	}
	defer s.release(lock, lockKey)

	// Another holder may have filled the cache while we waited.
	if data, ok := s.store.Get(ctx, cacheKey); ok {
		s.deps.Logger.Debug("Feed cached while waiting for lock", map[string]interface{}{
			"key": cacheKey,
		})
		return data, nil
	}

	// The fetch runs to completion even if the caller goes away, but never
	// outlives the lock record guarding it.
	detached := context.WithoutCancel(ctx)
	fetchCtx, cancel := context.WithTimeout(detached, s.opts.LockTTL)
	defer cancel()

	s.deps.Logger.Info("Extracting feed", map[string]interface{}{
		"key": cacheKey,
	})
	data, err := s.fetcher.Fetch(fetchCtx, strings.TrimSpace(rawURL))
	if err != nil {
		s.deps.Logger.Warn("Feed extraction failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
		return nil, err
	}
	if data == nil {
		return nil, &coreerrors.ExtractionError{URL: rawURL, Message: "No content found on page"}
	}

	s.store.Set(detached, cacheKey, data, s.opts.CacheTTL)

	return data, nil
}

// release frees the lock with its own deadline so a cancelled request still
// lets the next caller in.
func (s *FeedService) release(lock interfaces.Lock, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := lock.Release(ctx); err != nil {
		s.deps.Logger.Error("Failed to release feed lock", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
