package redis_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyValueStore хранит значения как обычные строки Redis без TTL.
type KeyValueStore struct {
	client *redis.Client
}

func NewKeyValueStore(client *redis.Client) (*KeyValueStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &KeyValueStore{client: client}, nil
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %q failed: %w", key, err)
	}
	return value, true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %q failed: %w", key, err)
	}
	return nil
}
