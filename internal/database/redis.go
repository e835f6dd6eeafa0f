package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
)

// NewRedisClient creates a new Redis client. It returns nil without error
// when no Redis endpoint is configured.
func NewRedisClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" && cfg.RedisHost == "" {
		return nil, nil
	}

	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	// Use Redis URL if provided (for production deployments)
	if cfg.RedisURL != "" {
		parsedOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsedOpts
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.WithField("addr", opts.Addr).Info("successfully connected to redis")
	return client, nil
}
