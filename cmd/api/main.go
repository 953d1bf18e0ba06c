// ABOUTME: Main entry point for the List Feeds API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listfeeds-api/api"
	"listfeeds-api/api/handlers"
	"listfeeds-api/api/middleware"
	"listfeeds-api/core/feed"
	"listfeeds-api/core/interfaces"
	"listfeeds-api/infrastructure/backend"
	"listfeeds-api/infrastructure/diffbot"
	stdhttp "listfeeds-api/infrastructure/http/standard"
	logruslogger "listfeeds-api/infrastructure/logger/logrus"
	"listfeeds-api/infrastructure/syndication"
	"listfeeds-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.NewLogger(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	logger.Info("Starting List Feeds API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"cache_ttl":  cfg.CacheTTL().String(),
	})

	// Pick cache, lock and rate-limit storage
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	store := backend.Select(startupCtx, cfg, logger)
	cancelStartup()

	// Create HTTP client and extraction client
	httpClient := stdhttp.NewStandardHTTPClientWithAttempts(cfg.DiffbotTimeout(), cfg.Diffbot.Attempts)
	fetcher := diffbot.NewClient(httpClient, diffbot.Options{
		APIURL: cfg.Diffbot.APIURL,
		Token:  cfg.Diffbot.Token,
		MaxRPS: cfg.Diffbot.MaxRPS,
		Logger: logger,
	})

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      store.Cache,
		Locker:     store.Locker,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	feedService := feed.NewFeedService(deps, fetcher, feed.Options{
		CacheTTL: cfg.CacheTTL(),
		LockTTL:  cfg.LockTTL(),
	})
	encoder := syndication.NewEncoder(cfg.Server.PublicURL)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:      logger,
		RateLimiter: store.RateLimiter,
		RateLimitRules: []middleware.Rule{
			middleware.PerIP(cfg.RateLimit.PerIP, time.Duration(cfg.RateLimit.PerIPWindow)*time.Second),
			middleware.PerURL(cfg.RateLimit.PerURL, time.Duration(cfg.RateLimit.PerURLWindow)*time.Second),
		},
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	feedHandler := handlers.NewFeedHandler(feedService, encoder, cfg.Server.PublicURL)
	feedHandler.RegisterRoutes(humaAPI)

	healthHandler := handlers.NewHealthHandler(store.Name)
	healthHandler.RegisterRoutes(humaAPI)

	// A request may wait for the lock and then hold it for a full extraction
	writeTimeout := cfg.LockWait() + cfg.LockTTL() + 15*time.Second

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
			"backend": store.Name,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := store.Close(); err != nil {
		logger.Warn("Backend close failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

func init() {
	// Print banner
	fmt.Println(`
    __    _      __     ______              __
   / /   (_)____/ /_   / ____/__  ___  ____/ /____
  / /   / / ___/ __/  / /_  / _ \/ _ \/ __  / ___/
 / /___/ (__  ) /_   / __/ /  __/  __/ /_/ (__  )
/_____/_/____/\__/  /_/    \___/\___/\__,_/____/
	`)
}
