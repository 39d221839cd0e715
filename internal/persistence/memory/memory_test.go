package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/escala/internal/persistence"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	storage := New()

	if _, err := storage.Get(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	value := []byte(`{"a":1}`)
	if err := storage.Put(ctx, "key", value); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value[0] = 'x'

	got, err := storage.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("expected stored copy to be isolated, got %s", got)
	}

	if err := storage.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := storage.Get(ctx, "key"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStorage_MissingKeyIsNamed(t *testing.T) {
	_, err := New().Get(context.Background(), persistence.KeyEvents)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), persistence.KeyEvents) {
		t.Fatalf("expected the key in %q", err.Error())
	}
}
