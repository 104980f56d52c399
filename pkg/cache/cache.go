// Package cache stores rendered artifacts keyed by program content.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server where several instances share results, and
// [NullCache] when caching is disabled. Keys are produced by a [Keyer] so
// that the pipeline never builds key strings by hand.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept. Artifacts are keyed
// by the program hash, so an entry never goes stale; the TTL only bounds
// storage.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer produces cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the program
	// with the given content hash.
	ArtifactKey(programHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(programHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", programHash, opts)
}
