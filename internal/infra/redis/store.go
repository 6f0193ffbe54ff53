// Package redis backs the key-value store with a Redis server. Every
// application key maps to one Redis string key under a common prefix.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"quiz-practice-service/internal/domain"
)

// keyPrefix namespaces application keys inside a shared Redis database.
const keyPrefix = "quizpractice:"

// Store is a Redis-backed key-value store.
type Store struct {
	client *goredis.Client
}

// NewStore builds a Store over an existing client.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Get returns the value under key or domain.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key without expiry; quiz data has no TTL.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
