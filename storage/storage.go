// Package storage defines the persisted key/value store that carries
// session state across process restarts, plus its backend implementations
// under storage/memory, storage/bboltstore, and storage/redisstore.
//
// The session store is the sole writer of these keys. Backends must treat
// values as opaque strings and never interpret them.
package storage

import (
	"context"
	"errors"
)

// Keys used by the session store. The names are part of the persisted
// state contract and must not change across releases.
const (
	// KeyToken holds the raw bearer token string.
	KeyToken = "adminToken"
	// KeyUser holds the JSON-serialized user record.
	KeyUser = "adminUser"
	// KeyTheme holds the console theme preference ("light" or "dark").
	KeyTheme = "theme"
)

// ErrNotFound is returned by Get when the key has no value. Backends must
// return it (possibly wrapped) rather than an empty string, so callers can
// distinguish absence from an empty value.
var ErrNotFound = errors.New("key not found")

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the persisted key/value contract. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
