package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"quiz-practice-service/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Get(ctx, "quizBundles"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Set(ctx, "quizBundles", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := store.Get(ctx, "quizBundles")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `[]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := store.Remove(ctx, "quizBundles"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "quizBundles"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after remove, got %v", err)
	}
}

func TestStorePrefixesKeys(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	if err := store.Set(ctx, "b1-count", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("quizpractice:b1-count") {
		t.Fatalf("expected prefixed redis key to exist")
	}
}
