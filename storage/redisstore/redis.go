// Package redisstore persists session state to Redis. Intended for shared
// kiosk deployments where an operator's console profile follows them
// across terminals; single-seat installs should prefer bboltstore.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/storage"
)

// Store is a Redis-backed [storage.Store]. Keys are namespaced by a
// per-profile prefix so multiple operators can share one Redis.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// New creates a Redis store. prefix namespaces every key; empty selects
// the default "gs" namespace.
func New(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "gs"
	}
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(key string) string {
	return s.prefix + ":" + key
}

// Get returns the value for key, [storage.ErrNotFound] when absent, or a
// wrapped [storage.ErrUnavailable] when Redis cannot be reached.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return value, nil
}

// Set stores value under key with no expiry; session lifetime is the
// store's concern, not the backend's.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.redis.Close()
}
