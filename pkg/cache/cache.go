// Package cache stores packings and rendered artifacts between runs.
//
// # Backends
//
// [FileCache] keeps entries under a directory and is what the CLI uses.
// [RedisCache] and [MongoCache] serve the HTTP API when several processes
// share results. [NullCache] disables caching.
//
// # Keys
//
// A [Keyer] turns the hash of a map and the solver settings into a key, so
// a packing is reused only when the surface and every setting that affects
// the radii are the same. [NewScopedKeyer] prefixes keys for isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	// Close releases connections and file handles.
	Close() error
}

// DefaultTTL is how long packings are kept by default.
const DefaultTTL = 30 * 24 * time.Hour
