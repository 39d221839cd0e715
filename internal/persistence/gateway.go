package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/escala/internal/logging"
)

// Backend stores raw collection values by key.
type Backend interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Gateway encodes collections as JSON on top of a Backend.
type Gateway struct {
	backend Backend
	logger  *slog.Logger
}

// NewGateway wraps backend. A nil backend yields a gateway that never stores
// anything and always loads defaults.
func NewGateway(backend Backend, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{backend: backend, logger: logger}
}

func (g *Gateway) loggerFor(ctx context.Context, key string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = g.logger
	}
	return logger.With("component", "persistence", "key", key)
}

// Load returns the value stored under key, or def when nothing is stored or
// the stored value cannot be decoded. Undecodable values are deleted.
func Load[T any](ctx context.Context, g *Gateway, key string, def T) T {
	if g == nil || g.backend == nil {
		return def
	}

	raw, err := g.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.loggerFor(ctx, key).WarnContext(ctx, "failed to read collection, using default", "error", err)
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		logger := g.loggerFor(ctx, key)
		logger.WarnContext(ctx, "discarding corrupt collection", "error", err)
		if derr := g.backend.Delete(ctx, key); derr != nil {
			logger.ErrorContext(ctx, "failed to delete corrupt collection", "error", derr)
		}
		return def
	}
	return value
}

// Save stores the full current value of a collection.
func (g *Gateway) Save(ctx context.Context, key string, value any) error {
	if g == nil || g.backend == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.backend.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
