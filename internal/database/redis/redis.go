package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/config"
)

// NewClient connects to Redis with the given settings and verifies the
// connection with a ping before returning it.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	return rdb, nil
}
