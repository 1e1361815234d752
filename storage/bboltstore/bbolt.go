// Package bboltstore persists session state to a local bbolt file. This is
// the default backend for desktop and kiosk builds of the console, playing
// the role browser localStorage plays in the web build.
package bboltstore

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MrEthical07/goSession/storage"
)

var bucketName = []byte("session_state")

// Store is a bbolt-backed [storage.Store]. A single bucket holds all keys.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bbolt file at path and ensures the
// session bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Get returns the value for key or [storage.ErrNotFound].
func (s *Store) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(key))
		if data == nil {
			return storage.ErrNotFound
		}
		value = append(value, data...)
		return nil
	})
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Set stores value under key. The write is durable before Set returns.
func (s *Store) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}
