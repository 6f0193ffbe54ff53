package memory

import (
	"context"
	"errors"
	"testing"

	"quiz-practice-service/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Set(ctx, "b1", `[{"id":"q1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := store.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `[{"id":"q1"}]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := store.Remove(ctx, "b1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "b1"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after remove, got %v", err)
	}

	// Removing an absent key must stay a no-op.
	if err := store.Remove(ctx, "b1"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}
