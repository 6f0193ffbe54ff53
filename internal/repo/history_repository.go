package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quiz-practice-service/internal/domain"
)

// HistoryRepository appends completed practice sessions to a per-bundle
// history list. Records are prepended so the list stays most-recent-first
// and are never mutated after creation.
type HistoryRepository struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewHistoryRepository builds a HistoryRepository over the given store.
func NewHistoryRepository(store Store, opts ...Option) *HistoryRepository {
	o := buildOptions(opts)
	return &HistoryRepository{store: store, now: o.now, newID: o.newID}
}

// Append stamps the record and prepends it to the bundle's history.
func (r *HistoryRepository) Append(ctx context.Context, bundleID string, h domain.QuizHistory) (domain.QuizHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID == "" {
		h.ID = r.newID()
	}
	h.CreatedAt = r.now()

	history, err := readJSON[[]domain.QuizHistory](ctx, r.store, historyKey(bundleID))
	if err != nil {
		return domain.QuizHistory{}, fmt.Errorf("append history: %w", err)
	}
	history = append([]domain.QuizHistory{h}, history...)
	if err := writeJSON(ctx, r.store, historyKey(bundleID), history); err != nil {
		return domain.QuizHistory{}, fmt.Errorf("append history: %w", err)
	}
	return h, nil
}

// GetByBundleID returns the bundle's history, most recent first.
func (r *HistoryRepository) GetByBundleID(ctx context.Context, bundleID string) ([]domain.QuizHistory, error) {
	history, err := readJSON[[]domain.QuizHistory](ctx, r.store, historyKey(bundleID))
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return history, nil
}
