// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - backend: Picks Redis, SQLite or memory storage at startup
// - cache/memory: go-cache store and a fixed-window rate limiter
// - cache/redis: Redis cache, distributed lock and rate limiter
// - cache/sqlite: SQLite cache with expiry cleanup
// - lock/local: In-process keyed lock
// - diffbot: List API client
// - syndication: RSS and Atom rendering with gorilla/feeds
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger on logrus
//
// # Backend Selection
//
//	store := backend.Select(ctx, cfg, logger)
//	defer store.Close()
//
//	// store.Cache, store.Locker and store.RateLimiter share one backend.
//	// When Redis does not answer the startup probe the memory backend is
//	// used until the process restarts.
//
// # Redis Lock
//
//	locker := redis.NewLocker(client, 10*time.Second)
//	lock, err := locker.Acquire(ctx, "lock:feed:https://example.com", 30*time.Second)
//	if err != nil {
//	    // *errors.LockTimeoutError when the wait ran out
//	}
//	defer lock.Release(ctx)
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
package infrastructure
