package memory

import (
	"context"
	"sync"
)

// KeyValueStore - хранилище в памяти процесса (тесты, локальный запуск).
type KeyValueStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string][]byte)}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}
