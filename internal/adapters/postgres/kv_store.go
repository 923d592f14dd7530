package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createKeyValueTable = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresKeyValueStore - реализация KeyValuePort для PostgreSQL.
type PostgresKeyValueStore struct {
	pool *pgxpool.Pool
}

func NewPostgresKeyValueStore(pool *pgxpool.Pool) (*PostgresKeyValueStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresKeyValueStore{pool: pool}, nil
}

// EnsureSchema создает таблицу, если её ещё нет.
func (s *PostgresKeyValueStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createKeyValueTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (s *PostgresKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresKeyValueStore",
		"method":    "Get",
		"key":       key,
	})

	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		repoLogger.Debug("Key not found.", nil)
		return nil, false, nil
	}
	if err != nil {
		repoLogger.Error("Failed to read key", err, nil)
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, key, string(value)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to write key", err, port.Fields{
			"component": "PostgresKeyValueStore",
			"key":       key,
		})
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
