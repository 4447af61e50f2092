// Package cache stores raw elections-API responses so repeated runs for the
// same municipality do not hit the upstream service again.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entry files under a directory (the CLI default)
//   - [RedisCache]: a shared Redis instance, selected by config
//   - [NullCache]: caching disabled (--no-cache)
//
// Values are opaque byte slices; callers decide the encoding. Keys should be
// built with [HTTPKey] so namespaces never collide.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
