// Package cache provides byte-oriented caching for extraction snapshots.
//
// Scanning a large project tree (node_modules in particular) is the slow
// part of an audit run. Extractor output is JSON-serializable, so repeat
// runs can reuse a cached snapshot until its TTL expires or --refresh
// forces a fresh walk.
//
// Backends:
//   - file: default for CLI usage, entries under the XDG cache dir
//   - redis: shared cache for server deployments
//   - null: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with per-entry expiration.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
