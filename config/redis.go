package config

import (
	"context"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"time"
)

func NewRedisClient(ctx context.Context, cfg Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("addr", cfg.Addr).Msg("Successfully connected to Redis")
	go func() {
		<-ctx.Done()
		if err := client.Close(); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to close Redis connection")
		}
	}()

	return client, nil
}
