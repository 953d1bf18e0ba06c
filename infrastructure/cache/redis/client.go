// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Provides shared feed caching with TTL support and a reachability probe

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"listfeeds-api/core/interfaces"
	"listfeeds-api/pkg/config"
)

// probeKey is read to check the backend answers; its value is irrelevant
const probeKey = "_test"

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
}

// NewClient builds a go-redis client from cfg. A connection URL wins over
// the address fields. No connection is made yet.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}

	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// NewRedisCache creates a new Redis cache instance and probes it within ctx.
// The client is closed again when the probe fails.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	cache := NewRedisCacheWithClient(client)

	if err := cache.Probe(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	return cache, nil
}

// NewRedisCacheWithClient wraps an existing client without probing it
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Probe issues a trivial read. A missing key is a healthy answer.
func (c *RedisCache) Probe(ctx context.Context) error {
	if err := c.client.Get(ctx, probeKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis probe failed: %w", err)
	}
	return nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Redis SET with 0 TTL means no expiration
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Client exposes the underlying connection so the lock and rate limiter
// can share its pool
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
