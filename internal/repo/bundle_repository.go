package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"quiz-practice-service/internal/domain"
)

// BundleRepository manages the bundle registry under the quizBundles key.
// Bundle records hold metadata only; quiz arrays, counters, and history live
// under their own keys named after the bundle ID.
type BundleRepository struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewBundleRepository builds a BundleRepository over the given store.
func NewBundleRepository(store Store, opts ...Option) *BundleRepository {
	o := buildOptions(opts)
	return &BundleRepository{store: store, now: o.now, newID: o.newID}
}

// Add stamps and registers a bundle. A missing ID is filled in.
func (r *BundleRepository) Add(ctx context.Context, bundle domain.QuizBundle) (domain.QuizBundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(ctx, bundle)
}

func (r *BundleRepository) addLocked(ctx context.Context, bundle domain.QuizBundle) (domain.QuizBundle, error) {
	if bundle.ID == "" {
		bundle.ID = r.newID()
	}
	// Preset bundles keep their epoch stamps so they sort last under the
	// newest-first ordering.
	if bundle.CreatedAt.IsZero() {
		now := r.now()
		bundle.CreatedAt = now
		bundle.UpdatedAt = now
	}

	bundles, err := readJSON[[]domain.QuizBundle](ctx, r.store, bundlesKey)
	if err != nil {
		return domain.QuizBundle{}, fmt.Errorf("add bundle: %w", err)
	}
	bundles = append(bundles, bundle)
	if err := writeJSON(ctx, r.store, bundlesKey, bundles); err != nil {
		return domain.QuizBundle{}, fmt.Errorf("add bundle: %w", err)
	}
	return bundle, nil
}

// GetByID looks a bundle up in the registry.
func (r *BundleRepository) GetByID(ctx context.Context, id string) (domain.QuizBundle, error) {
	bundles, err := readJSON[[]domain.QuizBundle](ctx, r.store, bundlesKey)
	if err != nil {
		return domain.QuizBundle{}, fmt.Errorf("get bundle: %w", err)
	}
	for _, bundle := range bundles {
		if bundle.ID == id {
			return bundle, nil
		}
	}
	return domain.QuizBundle{}, domain.ErrBundleNotFound
}

// GetAll returns every bundle, newest created first.
func (r *BundleRepository) GetAll(ctx context.Context) ([]domain.QuizBundle, error) {
	bundles, err := readJSON[[]domain.QuizBundle](ctx, r.store, bundlesKey)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	sort.SliceStable(bundles, func(i, j int) bool {
		return bundles[i].CreatedAt.After(bundles[j].CreatedAt)
	})
	return bundles, nil
}

// Update replaces the bundle record and restamps UpdatedAt. An unknown ID is
// a no-op.
func (r *BundleRepository) Update(ctx context.Context, bundle domain.QuizBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bundles, err := readJSON[[]domain.QuizBundle](ctx, r.store, bundlesKey)
	if err != nil {
		return fmt.Errorf("update bundle: %w", err)
	}
	for i := range bundles {
		if bundles[i].ID == bundle.ID {
			bundle.CreatedAt = bundles[i].CreatedAt
			bundle.UpdatedAt = r.now()
			bundles[i] = bundle
			if err := writeJSON(ctx, r.store, bundlesKey, bundles); err != nil {
				return fmt.Errorf("update bundle: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Delete removes the bundle record together with everything keyed by the
// bundle ID: the quiz array, the counter, and the history list. Unknown IDs
// are a no-op.
func (r *BundleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bundles, err := readJSON[[]domain.QuizBundle](ctx, r.store, bundlesKey)
	if err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	kept := bundles[:0]
	for _, bundle := range bundles {
		if bundle.ID != id {
			kept = append(kept, bundle)
		}
	}
	if len(kept) == len(bundles) {
		return nil
	}
	if err := writeJSON(ctx, r.store, bundlesKey, kept); err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	for _, key := range []string{id, countKey(id), historyKey(id)} {
		if err := r.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("delete bundle %s: %w", id, err)
		}
	}
	return nil
}
