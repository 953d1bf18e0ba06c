// ABOUTME: Configuration management for the application with file and environment support
// ABOUTME: Defines configuration structures for server, cache, lock, extraction and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// defaultConfigFile is read when present and CONFIG_FILE is not set
const defaultConfigFile = "config.yaml"

const (
	// maxDiffbotAttempts keeps the retry backoff under a second per attempt
	maxDiffbotAttempts = 5

	// attemptSlack covers the backoff before each retry
	attemptSlack = time.Second
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Lock contains per-URL lock configuration
	Lock LockConfig

	// Diffbot contains extraction API configuration
	Diffbot DiffbotConfig

	// RateLimit contains request limits for the feed endpoints
	RateLimit RateLimitConfig

	// Log contains logger configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// PublicURL is the externally visible base URL, used for feed self links
	PublicURL string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// TTL is the lifetime of a cached feed in seconds
	TTL int

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is a redis:// connection URL; it wins over Address when set
	URL string

	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// LockConfig holds lock configuration
type LockConfig struct {
	// Timeout is the lock record expiry in seconds. It also bounds the
	// extraction run under the lock, so it must cover every attempt.
	Timeout int

	// WaitTimeout caps how long a caller waits for the lock, in seconds.
	// 0 waits until the lock is free. Defaults to Timeout.
	WaitTimeout int
}

// DiffbotConfig holds extraction API configuration
type DiffbotConfig struct {
	// Token is the Diffbot API token
	Token string

	// APIURL is the List API endpoint
	APIURL string

	// Timeout bounds one upstream attempt in seconds
	Timeout int

	// Attempts is how many times a failing upstream call is tried
	Attempts int

	// MaxRPS throttles upstream calls per second; 0 disables throttling
	MaxRPS float64
}

// RateLimitConfig holds request limits for /rss and /atom
type RateLimitConfig struct {
	// PerIP is the number of requests a client IP may make per PerIPWindow
	PerIP int

	// PerIPWindow is the per-IP window in seconds
	PerIPWindow int

	// PerURL is the number of requests per normalized URL per PerURLWindow
	PerURL int

	// PerURLWindow is the per-URL window in seconds
	PerURLWindow int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is text or json
	Format string
}

// Load reads CONFIG_FILE (or config.yaml when present) and then lets
// environment variables override it.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	return LoadFile(path)
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from a YAML file, if path is not empty, with
// environment variables taking precedence. File keys are the lower-cased
// environment variable names (cache_ttl, diffbot_token, ...).
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	lockTimeout := getIntOrDefault(k, "lock_timeout", 75)

	cfg := &Config{
		Server: ServerConfig{
			Port:      getOrDefault(k, "port", "8000"),
			PublicURL: strings.TrimRight(getOrDefault(k, "public_url", "http://localhost:8000"), "/"),
		},
		Cache: CacheConfig{
			Type: getOrDefault(k, "cache_type", "redis"),
			TTL:  getIntOrDefault(k, "cache_ttl", 900),
			Redis: RedisConfig{
				URL:      getOrDefault(k, "redis_url", ""),
				Address:  getOrDefault(k, "redis_address", ""),
				Password: getOrDefault(k, "redis_password", ""),
				DB:       getIntOrDefault(k, "redis_db", 0),
			},
			SQLite: SQLiteConfig{
				Path: getOrDefault(k, "sqlite_path", "cache.db"),
			},
		},
		Lock: LockConfig{
			Timeout:     lockTimeout,
			WaitTimeout: getIntOrDefault(k, "lock_wait_timeout", lockTimeout),
		},
		Diffbot: DiffbotConfig{
			Token:    getOrDefault(k, "diffbot_token", ""),
			APIURL:   getOrDefault(k, "diffbot_api_url", "https://api.diffbot.com/v3/list"),
			Timeout:  getIntOrDefault(k, "diffbot_timeout", 20),
			Attempts: getIntOrDefault(k, "diffbot_attempts", 3),
			MaxRPS:   getFloatOrDefault(k, "diffbot_max_rps", 0),
		},
		RateLimit: RateLimitConfig{
			PerIP:        getIntOrDefault(k, "rate_limit_per_ip", 1),
			PerIPWindow:  getIntOrDefault(k, "rate_limit_per_ip_window", 1),
			PerURL:       getIntOrDefault(k, "rate_limit_per_url", 10),
			PerURLWindow: getIntOrDefault(k, "rate_limit_per_url_window", 60),
		},
		Log: LogConfig{
			Level:  getOrDefault(k, "log_level", "info"),
			Format: getOrDefault(k, "log_format", "text"),
		},
	}

	// REDIS_URL is the default; REDIS_ADDRESS opts out of it.
	if cfg.Cache.Redis.URL == "" && cfg.Cache.Redis.Address == "" {
		cfg.Cache.Redis.URL = "redis://localhost:6379"
	}

	return cfg, nil
}

// getOrDefault returns the configured value or a default
func getOrDefault(k *koanf.Koanf, key, defaultValue string) string {
	if value := strings.TrimSpace(k.String(key)); value != "" {
		return value
	}
	return defaultValue
}

// getIntOrDefault returns the configured value as int or a default
func getIntOrDefault(k *koanf.Koanf, key string, defaultValue int) int {
	if value := getOrDefault(k, key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloatOrDefault returns the configured value as float64 or a default
func getFloatOrDefault(k *koanf.Koanf, key string, defaultValue float64) float64 {
	if value := getOrDefault(k, key, ""); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Diffbot.Token == "" {
		return errors.New("diffbot token cannot be empty")
	}

	switch c.Cache.Type {
	case "redis", "memory", "sqlite":
	default:
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.URL == "" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.TTL < 1 {
		return errors.New("cache ttl must be at least 1 second")
	}

	if c.Lock.Timeout < 1 {
		return errors.New("lock timeout must be at least 1 second")
	}

	if c.Lock.WaitTimeout < 0 {
		return errors.New("lock wait timeout cannot be negative")
	}

	if c.Diffbot.Timeout < 1 {
		return errors.New("diffbot timeout must be at least 1 second")
	}

	if c.Diffbot.Attempts < 1 || c.Diffbot.Attempts > maxDiffbotAttempts {
		return fmt.Errorf("diffbot attempts must be between 1 and %d", maxDiffbotAttempts)
	}

	if c.LockTTL() < c.FetchBudget() {
		return fmt.Errorf("lock timeout must be at least %d seconds to cover every diffbot attempt",
			int(c.FetchBudget()/time.Second))
	}

	if c.Diffbot.MaxRPS < 0 {
		return errors.New("diffbot max rps cannot be negative")
	}

	if c.RateLimit.PerIP < 0 || c.RateLimit.PerURL < 0 {
		return errors.New("rate limits cannot be negative")
	}

	return nil
}

// CacheTTL returns the feed cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}

// LockTTL returns the lock record expiry
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Lock.Timeout) * time.Second
}

// LockWait returns the maximum lock wait, 0 meaning unbounded
func (c *Config) LockWait() time.Duration {
	return time.Duration(c.Lock.WaitTimeout) * time.Second
}

// DiffbotTimeout returns the upstream call timeout
func (c *Config) DiffbotTimeout() time.Duration {
	return time.Duration(c.Diffbot.Timeout) * time.Second
}

// FetchBudget is the longest one extraction can take across all attempts
func (c *Config) FetchBudget() time.Duration {
	return time.Duration(c.Diffbot.Attempts) * (c.DiffbotTimeout() + attemptSlack)
}
