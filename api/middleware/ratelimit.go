// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Applies per-IP and per-page limits to the feed endpoints using a shared counter store

package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"listfeeds-api/core/interfaces"
	"listfeeds-api/pkg/utils/urlnorm"
)

// Rule is one limit applied to matching requests. A Key returning ""
// skips the rule for that request.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
	Key    func(r *http.Request) string
}

// PerIP limits requests per client IP
func PerIP(limit int, window time.Duration) Rule {
	return Rule{
		Name:   "ip",
		Limit:  limit,
		Window: window,
		Key: func(r *http.Request) string {
			return extractIP(r)
		},
	}
}

// PerURL limits requests per normalized url query parameter, so every
// spelling of the same page shares one budget
func PerURL(limit int, window time.Duration) Rule {
	return Rule{
		Name:   "url",
		Limit:  limit,
		Window: window,
		Key: func(r *http.Request) string {
			return urlnorm.Normalize(r.URL.Query().Get("url"))
		},
	}
}

// RateLimitConfig configures RateLimitMiddleware
type RateLimitConfig struct {
	Limiter interfaces.RateLimiter
	Logger  interfaces.Logger
	Rules   []Rule

	// Paths restricts limiting to these request paths; empty means all
	Paths []string
}

// RateLimitMiddleware creates a middleware that enforces rate limits.
// Counter store failures let the request through.
func RateLimitMiddleware(cfg RateLimitConfig) func(http.Handler) http.Handler {
	paths := make(map[string]bool, len(cfg.Paths))
	for _, p := range cfg.Paths {
		paths[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(paths) > 0 && !paths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			for _, rule := range cfg.Rules {
				if rule.Limit <= 0 || rule.Window <= 0 {
					continue
				}

				key := rule.Key(r)
				if key == "" {
					continue
				}

				allowed, err := cfg.Limiter.Allow(r.Context(), rule.Name+":"+key, rule.Limit, rule.Window)
				if err != nil {
					if cfg.Logger != nil {
						cfg.Logger.Warn("Rate limit check failed, allowing request", map[string]interface{}{
							"rule":  rule.Name,
							"error": err.Error(),
						})
					}
					continue
				}

				if !allowed {
					writeLimited(w, rule)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeLimited(w http.ResponseWriter, rule Rule) {
	retryAfter := int(math.Ceil(rule.Window.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rule.Limit))
	w.Header().Set("X-RateLimit-Window", rule.Window.String())
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":"Too many requests","message":"Rate limit exceeded"}`))
}

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
