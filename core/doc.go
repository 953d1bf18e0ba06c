// Package core contains the business logic for the List Feeds API.
// It is framework-agnostic: nothing here knows about HTTP routing, Redis or
// XML, only about the contracts in core/interfaces.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (FeedData, Item)
// - feed: The cache, lock and generate pipeline behind every feed request
// - errors: Error types the API layer maps onto status codes
// - interfaces: Contracts for external dependencies (cache, lock, fetcher, encoder, logger)
//
// # Design Principles
//
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	import (
//	    "listfeeds-api/core/feed"
//	    "listfeeds-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Locker: myLocker, // implements interfaces.Locker
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	service := feed.NewFeedService(deps, fetcher, feed.Options{
//	    CacheTTL: 15 * time.Minute,
//	    LockTTL:  30 * time.Second,
//	})
//
//	data, err := service.GetFeed(ctx, "https%3A%2F%2Fexample.com%2Fblog")
package core
