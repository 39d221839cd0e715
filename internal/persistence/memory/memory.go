// Package memory provides a process local persistence backend.
package memory

import (
	"context"
	"sync"

	"github.com/example/escala/internal/persistence"
)

// Storage keeps collection values in a map.
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, persistence.KeyNotFound(key)
	}
	return cloneBytes(value), nil
}

// Put replaces the value stored under key.
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = cloneBytes(value)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close releases resources held by the storage. No-op for the in-memory implementation.
func (s *Storage) Close() error {
	return nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
