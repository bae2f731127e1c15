// Package cache provides the layout cache used by the pipeline runner.
//
// Resolving a scene is deterministic, so a layout computed once for a
// given scene, rule set, and engine version can be replayed from cache
// byte-for-byte. The [Cache] interface abstracts the backend:
//   - [NewFileCache]: sha-sharded JSON files for single-node CLI use
//   - [NewRedisCache]: Redis for service deployments
//   - [NewNullCache]: disabled caching
//
// Keys are produced by a [Keyer] so all backends and callers agree on
// the key scheme, and [NewScopedKeyer] prefixes keys for multi-tenant
// isolation.
package cache

import (
	"context"
	"time"
)

// TTLs per entry class.
const (
	// TTLLayout is how long resolved layout documents stay cached.
	// Resolution is deterministic, so the TTL guards only against
	// unbounded growth, not staleness.
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is the interface for layout cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
