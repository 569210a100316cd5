package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// ErrRedisDisabled is returned when no Redis host is configured
var ErrRedisDisabled = errors.New("redis is not configured")

const pingTimeout = 5 * time.Second

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrRedisDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
