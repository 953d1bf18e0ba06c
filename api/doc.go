// Package api provides the HTTP API layer for the List Feeds service.
// It uses the Huma framework on a chi router for OpenAPI documentation and
// request binding.
//
// # Architecture
//
// - server.go: Huma API configuration and the middleware chain
// - handlers/: HTTP request handlers
// - dto/: Response bodies for the JSON endpoints
// - middleware/: Request logging and rate limiting
//
// # Endpoints
//
//	GET /rss?url=<page>    RSS 2.0 document
//	GET /atom?url=<page>   Atom document
//	GET /feeds?url=<page>  JSON summary of the feed
//	GET /health            Liveness and active cache backend
//
// Feed documents carry Cache-Control and an md5 ETag. A matching
// If-None-Match gets 304 with no body.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: limiter,
//	    RateLimitRules: []middleware.Rule{
//	        middleware.PerIP(1, time.Second),
//	        middleware.PerURL(10, time.Minute),
//	    },
//	})
//
//	handlers.NewFeedHandler(feedService, encoder, publicURL).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format. Missing URLs and extraction failures are
// 400, a feed still being generated by another request is 503, anything else
// is 500.
package api
