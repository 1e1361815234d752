// Package memory provides an in-process storage backend. Nothing survives
// the process; it exists for tests and ephemeral deployments.
package memory

import (
	"context"
	"sync"

	"github.com/MrEthical07/goSession/storage"
)

// Store is a map-backed [storage.Store].
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Get returns the value for key or [storage.ErrNotFound].
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close releases nothing; it exists to satisfy [storage.Store].
func (s *Store) Close() error {
	return nil
}
