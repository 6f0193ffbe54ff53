package repo

import (
	"context"
	"fmt"
	"sync"

	"quiz-practice-service/internal/domain"
)

// defaultUserID names the single local profile.
const defaultUserID = "user"

// UserRepository stores the single local profile under the users key. The
// key holds an array for layout compatibility, but exactly one logical user
// exists; a default profile is seeded on first access.
type UserRepository struct {
	store Store
	mu    sync.Mutex
}

// NewUserRepository builds a UserRepository over the given store.
func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns the current profile, seeding the default one when the store is
// empty.
func (r *UserRepository) Get(ctx context.Context) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readJSON[[]domain.User](ctx, r.store, usersKey)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if len(users) > 0 {
		return users[0], nil
	}

	seeded := domain.User{ID: defaultUserID, Name: "Learner"}
	if err := writeJSON(ctx, r.store, usersKey, []domain.User{seeded}); err != nil {
		return domain.User{}, fmt.Errorf("seed user: %w", err)
	}
	return seeded, nil
}

// Update replaces the profile in place.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readJSON[[]domain.User](ctx, r.store, usersKey)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	if err := writeJSON(ctx, r.store, usersKey, users); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
