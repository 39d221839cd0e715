package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/example/escala/internal/application"
	"github.com/example/escala/internal/persistence"
	"github.com/example/escala/internal/persistence/memory"
)

// StoreFactory builds application stores with deterministic ids and clocks.
type StoreFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Logger      *slog.Logger
}

// StoreFactoryOption configures a StoreFactory instance.
type StoreFactoryOption func(*StoreFactory)

// NewStoreFactory constructs a StoreFactory. Ids start at 101 so they never
// collide with the demo data.
func NewStoreFactory(opts ...StoreFactoryOption) *StoreFactory {
	factory := &StoreFactory{
		Clock:       NewClock(ReferenceTime()),
		IDGenerator: NewIDGenerator(100),
		Logger:      DiscardLogger(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(ReferenceTime())
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator(100)
	}
	if factory.Logger == nil {
		factory.Logger = DiscardLogger()
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.IDGenerator = generator
	}
}

// WithLogger overrides the logger handed to the store and its gateway.
func WithLogger(logger *slog.Logger) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Logger = logger
	}
}

// DemoSeed returns the demo data anchored on the factory clock.
func (f *StoreFactory) DemoSeed() application.Seed {
	return application.DemoSeed(f.Clock.Now())
}

// NewStore loads a store from backend, seeded with seed.
func (f *StoreFactory) NewStore(backend persistence.Backend, seed application.Seed) *application.Store {
	gateway := persistence.NewGateway(backend, f.Logger)
	return application.NewStoreWithLogger(context.Background(), gateway, seed, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), f.Logger)
}

// NewMemoryStore returns a store over a fresh in-memory backend together with
// the backend, so tests can inspect or reuse what was persisted.
func (f *StoreFactory) NewMemoryStore(tb testing.TB, seed application.Seed) (*application.Store, *memory.Storage) {
	tb.Helper()
	backend := memory.New()
	tb.Cleanup(func() { _ = backend.Close() })
	return f.NewStore(backend, seed), backend
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
