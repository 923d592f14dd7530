package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Config хранит конфигурацию для подключения к Redis
type Config struct {
	Addr     string // "localhost:6379"
	Password string
	DB       int
}

// NewClient создает клиента и проверяет соединение командой PING
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR configuration is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}
