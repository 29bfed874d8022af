// Package cache stores fetched organization trees between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis server, shared between server replicas
//   - [NullCache]: stores nothing (caching disabled)
//
// # Keys
//
// A [Keyer] derives cache keys from the source and the requested
// organization, so trees fetched from different ANET instances never
// collide. [NewScopedKeyer] adds a prefix for namespacing.
//
// Only source data is cached. Chart layouts are cheap to compute and are
// always derived fresh from the cached tree.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLTree is the default lifetime of a cached organization tree.
const TTLTree = time.Hour

// Key types reported to cache hooks.
const (
	KeyTypeTree = "tree"
)

// Keyer derives cache keys.
type Keyer interface {
	// TreeKey returns the key of the tree rooted at orgUUID fetched from
	// source.
	TreeKey(source, orgUUID string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TreeKey returns "tree:<sha256>" over the source and organization UUID.
func (DefaultKeyer) TreeKey(source, orgUUID string) string {
	return hashKey(KeyTypeTree, source, orgUUID)
}
