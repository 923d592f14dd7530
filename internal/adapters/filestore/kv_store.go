package filestore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// KeyValueStore хранит каждый ключ в отдельном файле каталога.
// Это "клиентское" хранилище CLI: избранное переживает перезапуски.
type KeyValueStore struct {
	dir string
}

// NewKeyValueStore создает каталог, если его ещё нет.
func NewKeyValueStore(dir string) (*KeyValueStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &KeyValueStore{dir: dir}, nil
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, true, nil
}

// Set пишет во временный файл и переименовывает его, чтобы не оставить половину JSON.
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %q: %w", key, err)
	}
	return nil
}

func (s *KeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key)+".json")
}
