package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/infra/memory"
	"quiz-practice-service/internal/repo"
)

func newTestBundleRepo(store *memory.Store) *repo.BundleRepository {
	return repo.NewBundleRepository(store,
		repo.WithClock(newTestClock()),
		repo.WithIDGenerator(newTestIDs("bundle")),
	)
}

func TestBundleAddAndGetByID(t *testing.T) {
	ctx := context.Background()
	bundles := newTestBundleRepo(memory.NewStore())

	added, err := bundles.Add(ctx, domain.QuizBundle{Name: "History"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.CreatedAt.IsZero() {
		t.Fatalf("expected generated ID and stamps, got %+v", added)
	}

	got, err := bundles.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "History" {
		t.Fatalf("unexpected bundle %+v", got)
	}

	if _, err := bundles.GetByID(ctx, "ghost"); !errors.Is(err, domain.ErrBundleNotFound) {
		t.Fatalf("expected ErrBundleNotFound, got %v", err)
	}
}

func TestBundleGetAllNewestFirstWithPresetsLast(t *testing.T) {
	ctx := context.Background()
	bundles := newTestBundleRepo(memory.NewStore())

	epoch := time.Unix(0, 0).UTC()
	if _, err := bundles.Add(ctx, domain.QuizBundle{ID: "preset", Name: "Preset", IsPreset: true, CreatedAt: epoch, UpdatedAt: epoch}); err != nil {
		t.Fatalf("add preset: %v", err)
	}
	if _, err := bundles.Add(ctx, domain.QuizBundle{ID: "older", Name: "Older"}); err != nil {
		t.Fatalf("add older: %v", err)
	}
	if _, err := bundles.Add(ctx, domain.QuizBundle{ID: "newer", Name: "Newer"}); err != nil {
		t.Fatalf("add newer: %v", err)
	}

	all, err := bundles.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 bundles, got %d", len(all))
	}
	if all[0].ID != "newer" || all[1].ID != "older" || all[2].ID != "preset" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestBundleUpdate(t *testing.T) {
	ctx := context.Background()
	bundles := newTestBundleRepo(memory.NewStore())

	added, err := bundles.Add(ctx, domain.QuizBundle{ID: "b1", Name: "before"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	added.Name = "after"
	if err := bundles.Update(ctx, added); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := bundles.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "after" || !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("unexpected bundle after update: %+v", got)
	}

	// Unknown ID is a no-op.
	if err := bundles.Update(ctx, domain.QuizBundle{ID: "ghost", Name: "x"}); err != nil {
		t.Fatalf("update unknown: %v", err)
	}
}

func TestBundleDeleteCleansUpAllKeys(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bundles := newTestBundleRepo(store)
	quizzes := newTestQuizRepo(store)
	history := repo.NewHistoryRepository(store, repo.WithClock(newTestClock()), repo.WithIDGenerator(newTestIDs("h")))

	if _, err := bundles.Add(ctx, domain.QuizBundle{ID: "b1", Name: "doomed"}); err != nil {
		t.Fatalf("add bundle: %v", err)
	}
	if _, err := quizzes.Add(ctx, quizFixture("q1", "b1", "q")); err != nil {
		t.Fatalf("add quiz: %v", err)
	}
	if _, err := history.Append(ctx, "b1", domain.QuizHistory{AnsweredCount: 1}); err != nil {
		t.Fatalf("append history: %v", err)
	}

	if err := bundles.Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := bundles.GetByID(ctx, "b1"); !errors.Is(err, domain.ErrBundleNotFound) {
		t.Fatalf("expected bundle gone, got %v", err)
	}
	for _, key := range []string{"b1", "b1-count", "b1-history"} {
		if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected key %q cleaned up, got %v", key, err)
		}
	}
}
