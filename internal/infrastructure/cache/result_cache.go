package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisResultCache stores computed read models as JSON under a key prefix
type RedisResultCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisResultCache creates a cache that shares client
func NewRedisResultCache(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisResultCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisResultCache{client: client, keyPrefix: keyPrefix, logger: logger}
}

// Get decodes the cached value into dest. A miss returns false and no error.
func (c *RedisResultCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	cacheKey := c.keyPrefix + key

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss", zap.String("key", cacheKey))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupted cache entry", zap.String("key", cacheKey), zap.Error(err))
		_ = c.client.Del(ctx, cacheKey)
		return false, nil
	}
	return true, nil
}

// Set stores value for ttl
func (c *RedisResultCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
