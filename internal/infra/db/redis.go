package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
)

// NewRedisClient connects to Redis using the configured URL and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// RedisHealthCheck reports whether client answers PING.
func RedisHealthCheck(client *redis.Client) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "Redis health check failed", "error", err)
			return false
		}
		return true
	}
}
