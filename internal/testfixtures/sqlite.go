package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/escala/internal/application"
	"github.com/example/escala/internal/persistence/sqlite"
)

// SQLiteHarness opens a migrated SQLite backend in a temporary directory.
type SQLiteHarness struct {
	DSN     string
	Storage *sqlite.Storage

	tb      testing.TB
	factory *StoreFactory
}

// NewSQLiteHarness opens and migrates a temporary database. The storage is
// closed automatically when the test ends.
func NewSQLiteHarness(tb testing.TB, factory *StoreFactory) *SQLiteHarness {
	tb.Helper()
	if factory == nil {
		factory = NewStoreFactory()
	}

	dsn := filepath.Join(tb.TempDir(), "escala.db")
	h := &SQLiteHarness{DSN: dsn, tb: tb, factory: factory}
	h.Storage = h.open()
	return h
}

func (h *SQLiteHarness) open() *sqlite.Storage {
	h.tb.Helper()

	storage, err := sqlite.Open(context.Background(), h.DSN)
	if err != nil {
		h.tb.Fatalf("failed to open storage: %v", err)
	}
	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		h.tb.Fatalf("failed to migrate storage: %v", err)
	}
	h.tb.Cleanup(func() { _ = storage.Close() })
	return storage
}

// NewStore loads a store from the harness database.
func (h *SQLiteHarness) NewStore(seed application.Seed) *application.Store {
	return h.factory.NewStore(h.Storage, seed)
}

// Reopen closes the current connection and opens the same file again,
// simulating an application restart.
func (h *SQLiteHarness) Reopen() {
	h.tb.Helper()
	if err := h.Storage.Close(); err != nil {
		h.tb.Fatalf("failed to close storage: %v", err)
	}
	h.Storage = h.open()
}
