// Package cache stores rendered frames keyed by content hash.
//
// Rasterizing a scene is the most expensive step of serving a display, and
// the same frame is requested repeatedly (every poll between strokes). A
// frame key is derived from the scene's exported geometry and the output
// options, so identical frames hit regardless of which display asked.
//
// # Implementations
//
//   - [NewNullCache]: keeps no frames (caching disabled)
//   - [FileCache]: one JSON entry per key under a directory, with TTLs
//
// [Instrument] wraps any Cache so hits, misses and writes reach the
// registered [observability.CacheHooks].
//
// [observability.CacheHooks]: github.com/matzehuels/stenoboard/pkg/observability.CacheHooks
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiration.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}
