// ABOUTME: Chooses the cache, lock and rate-limit storage for this process
// ABOUTME: Probes Redis once at startup and falls back to in-memory primitives for good

package backend

import (
	"context"
	"errors"
	"io"
	"time"

	"listfeeds-api/core/interfaces"
	"listfeeds-api/infrastructure/cache/memory"
	"listfeeds-api/infrastructure/cache/redis"
	"listfeeds-api/infrastructure/cache/sqlite"
	"listfeeds-api/infrastructure/lock/local"
	"listfeeds-api/pkg/config"
)

// Backend names reported by Backend.Name
const (
	NameRedis  = "redis"
	NameMemory = "memory"
	NameSQLite = "sqlite"
)

// probeTimeout bounds the startup probe
const probeTimeout = 5 * time.Second

// Backend bundles the primitives the feed service and rate limiter share.
// Cache and Locker always come from the same family so the lock guards
// the store it is paired with.
type Backend struct {
	Name        string
	Cache       interfaces.Cache
	Locker      interfaces.Locker
	RateLimiter interfaces.RateLimiter

	closers []io.Closer
}

// Select builds the backend named by cfg.Cache.Type. Redis is probed with
// a single read; when it cannot be reached the process runs on the memory
// backend until restart.
func Select(ctx context.Context, cfg *config.Config, logger interfaces.Logger) *Backend {
	switch cfg.Cache.Type {
	case NameRedis:
		b, err := newRedisBackend(ctx, cfg)
		if err == nil {
			logger.Info("Using Redis backend", map[string]interface{}{
				"cache_ttl": cfg.CacheTTL().String(),
			})
			return b
		}
		logger.Warn("Redis unavailable, falling back to memory backend", map[string]interface{}{
			"error": err.Error(),
		})
	case NameSQLite:
		b, err := newSQLiteBackend(ctx, cfg, logger)
		if err == nil {
			return b
		}
		logger.Warn("SQLite unavailable, falling back to memory backend", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory backend", nil)
	return newMemoryBackend(cfg)
}

func newRedisBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cache, err := redis.NewRedisCache(probeCtx, cfg.Cache.Redis)
	if err != nil {
		return nil, err
	}

	client := cache.Client()
	return &Backend{
		Name:        NameRedis,
		Cache:       cache,
		Locker:      redis.NewLocker(client, cfg.LockWait()),
		RateLimiter: redis.NewRateLimiter(client),
		closers:     []io.Closer{cache},
	}, nil
}

func newSQLiteBackend(ctx context.Context, cfg *config.Config, logger interfaces.Logger) (*Backend, error) {
	cache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"path": cfg.Cache.SQLite.Path,
	}
	if stats, err := cache.Stats(ctx); err == nil {
		fields["entries"] = stats["total_entries"]
		fields["expired_entries"] = stats["expired_entries"]
	}
	logger.Info("Using SQLite backend", fields)

	limiter := memory.NewRateLimiter()
	return &Backend{
		Name:        NameSQLite,
		Cache:       cache,
		Locker:      local.NewLocker(cfg.LockWait()),
		RateLimiter: limiter,
		closers:     []io.Closer{cache, limiter},
	}, nil
}

func newMemoryBackend(cfg *config.Config) *Backend {
	cache := memory.NewMemoryCache()
	limiter := memory.NewRateLimiter()
	return &Backend{
		Name:        NameMemory,
		Cache:       cache,
		Locker:      local.NewLocker(cfg.LockWait()),
		RateLimiter: limiter,
		closers:     []io.Closer{cache, limiter},
	}
}

// Close releases connections and background routines
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
