// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"listfeeds-api/api/middleware"
	"listfeeds-api/core/interfaces"
)

const (
	apiTitle   = "List Feeds API"
	apiVersion = "1.0.0"
)

// RateLimitedPaths are the endpoints that trigger upstream extraction
var RateLimitedPaths = []string{"/rss", "/atom"}

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimiter stores request counters; nil disables rate limiting
	RateLimiter interfaces.RateLimiter

	// RateLimitRules apply to RateLimitedPaths
	RateLimitRules []middleware.Rule
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// Configure CORS (should be first middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		ExposedHeaders: []string{"ETag", "Retry-After", "X-Request-ID"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimiter != nil && len(cfg.RateLimitRules) > 0 {
		router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			Limiter: cfg.RateLimiter,
			Logger:  cfg.Logger,
			Rules:   cfg.RateLimitRules,
			Paths:   RateLimitedPaths,
		}))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Turns list pages into RSS and Atom feeds using the Diffbot List API"

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
