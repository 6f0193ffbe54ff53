// Package repo implements the quiz data layer: repositories for quizzes,
// bundles, history, and the user profile atop a flat string-keyed store of
// JSON blobs. The key layout is the persistence contract and must stay
// compatible with existing data:
//
//	quizBundles        -> []QuizBundle
//	<bundleId>         -> []Quiz
//	<bundleId>-count   -> stringified integer (cached cardinality hint)
//	<bundleId>-history -> []QuizHistory, newest first
//	users              -> []User (length 1 in practice)
//	schema-version     -> stringified migration version
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"quiz-practice-service/internal/domain"
)

// Store abstracts the flat key-value storage (in-memory, SQLite, Redis,
// Postgres). Get returns domain.ErrKeyNotFound for absent keys. There are no
// transactions: multi-key updates are independent writes.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

const (
	bundlesKey       = "quizBundles"
	usersKey         = "users"
	schemaVersionKey = "schema-version"
	legacyQuizzesKey = "quizzes"
)

func countKey(bundleID string) string   { return bundleID + "-count" }
func historyKey(bundleID string) string { return bundleID + "-history" }

// readJSON loads and decodes the collection under key. A missing key yields
// the zero value. Corrupt JSON is logged and also yields the zero value: the
// store fails open so a damaged blob degrades to an empty collection instead
// of breaking every caller.
func readJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return out, nil
		}
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("repo: corrupt value under %q, treating as empty: %v", key, err)
		var zero T
		return zero, nil
	}
	return out, nil
}

func writeJSON[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(raw))
}

// readCount reads a stringified integer key, defaulting to 0 when the key is
// missing or unparseable.
func readCount(ctx context.Context, s Store, key string) (int, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("repo: non-numeric counter under %q: %v", key, err)
		return 0, nil
	}
	return n, nil
}

func writeCount(ctx context.Context, s Store, key string, n int) error {
	return s.Set(ctx, key, strconv.Itoa(n))
}
