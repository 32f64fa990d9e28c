package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/metrics"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

const (
	backendRedis = "redis"
	redisPrefix  = "storefront:cache:"
)

// RedisCache implements domain.Cache on Redis, for deployments where
// several rendering processes should share one response cache. Expiry
// is delegated to Redis key TTLs, so no sweeper is needed.
type RedisCache struct {
	redisClient *redis.Client
	defaultTTL  time.Duration
	logger      domain.Logger
}

// NewRedisCache creates a RedisCache. A non-positive defaultTTL falls
// back to 5 minutes.
func NewRedisCache(redisClient *redis.Client, defaultTTL time.Duration, logger domain.Logger) *RedisCache {
	if redisClient == nil {
		panic("redisClient cannot be nil in NewRedisCache")
	}
	if logger == nil {
		panic("logger cannot be nil in NewRedisCache")
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisCache{redisClient: redisClient, defaultTTL: defaultTTL, logger: logger}
}

// Get retrieves the cached payload, mapping redis.Nil to ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.redisClient.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.IncCacheEvent(backendRedis, "miss")
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		c.logger.Error(ctx, "Failed to get entry from Redis cache", "key", key, "error", err.Error())
		return nil, fmt.Errorf("redis GET for cache key '%s' failed: %w", key, err)
	}
	metrics.IncCacheEvent(backendRedis, "hit")
	return val, nil
}

// Set stores a payload with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.redisClient.Set(ctx, redisPrefix+key, value, ttl).Err(); err != nil {
		c.logger.Error(ctx, "Failed to set entry in Redis cache", "key", key, "error", err.Error())
		return fmt.Errorf("redis SET for cache key '%s' failed: %w", key, err)
	}
	return nil
}

// Delete removes one entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.redisClient.Del(ctx, redisPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis DEL for cache key '%s' failed: %w", key, err)
	}
	return nil
}

// Clear removes every entry under the storefront cache prefix, leaving
// unrelated keys in the same Redis database untouched.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.redisClient.Scan(ctx, 0, redisPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis DEL during cache clear failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis SCAN during cache clear failed: %w", err)
	}
	return nil
}
