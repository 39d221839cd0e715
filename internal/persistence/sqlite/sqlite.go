// Package sqlite stores persisted collections in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/escala/internal/persistence"
)

// Storage is a persistence.Backend backed by the collections table.
type Storage struct {
	pool  *ConnectionPool
	retry RetryConfig
	now   func() time.Time
}

// Open connects to the database at dsn.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := NewConnectionPool(ctx, DefaultConfig(dsn))
	if err != nil {
		return nil, err
	}
	return &Storage{pool: pool, retry: DefaultRetryConfig(), now: time.Now}, nil
}

// Migrate creates or upgrades the schema.
func (s *Storage) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, s.pool)
}

// Close releases the database handle.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Get returns the raw value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.pool.DB().QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.KeyNotFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put inserts or replaces the value stored under key.
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	updatedAt := s.now().UTC().Format(time.RFC3339Nano)
	return withRetry(ctx, s.retry, func() error {
		if _, err := s.pool.DB().ExecContext(ctx, query, key, string(value), updatedAt); err != nil {
			return fmt.Errorf("sqlite: put %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes key. Missing keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	return withRetry(ctx, s.retry, func() error {
		if _, err := s.pool.DB().ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key); err != nil {
			return fmt.Errorf("sqlite: delete %s: %w", key, err)
		}
		return nil
	})
}
