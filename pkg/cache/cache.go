// Package cache provides artifact caching for rendered patterns.
//
// Rendering a descriptor is deterministic, so an encoded artifact can be
// keyed by the hash of the descriptor bytes plus the encoding options
// and reused across runs. Three backends implement [Cache]:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//
// Keys are built by a [Keyer], so the server can namespace entries
// without the backends knowing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per cached stage.
const (
	// TTLArtifact bounds encoded render output. Artifacts are fully
	// reproducible, so expiry only reclaims space.
	TTLArtifact = 24 * time.Hour
)
