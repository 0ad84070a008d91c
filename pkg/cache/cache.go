// Package cache provides caching for expensive pipeline stages.
//
// The [Cache] interface abstracts over storage backends:
//   - [FileCache]: directory-backed cache for CLI usage
//   - [RedisCache]: Redis-backed cache for multi-instance deployments
//   - [NullCache]: no-op cache for tests or disabled caching
//
// Cache keys are generated by a [Keyer], which hashes the inputs that
// determine each stage's output. Two pipeline runs with identical inputs
// produce identical keys, so results are shared across runs and processes.
package cache

import (
	"context"
	"time"
)

// TTL constants for each cached stage.
const (
	// TTLHTTP is how long raw HTTP responses (remote datasets) stay fresh.
	TTLHTTP = 24 * time.Hour

	// TTLDataset is how long loaded dataset tables stay fresh.
	TTLDataset = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay fresh. Artifacts are
	// keyed by content hash, so stale entries are only ever garbage, never
	// wrong.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// DatasetKeyOpts contains the options that affect dataset loading.
type DatasetKeyOpts struct {
	Format string `json:"format,omitempty"`
	Limit  int64  `json:"limit,omitempty"`
}

// ArtifactKeyOpts contains the options that affect artifact rendering.
type ArtifactKeyOpts struct {
	Kind        string `json:"kind"`
	DatasetHash string `json:"dataset_hash,omitempty"`
	Format      string `json:"format,omitempty"`
}

// Keyer generates cache keys for each cached stage. Raw HTTP responses
// are cached separately by httputil with its own key scheme.
type Keyer interface {
	// DatasetKey generates a key for loaded dataset caching. The source is
	// the dataset's origin (file path, URL, or connection string).
	DatasetKey(source string, opts DatasetKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching. The item
	// hash covers the item's kind, params, and titles.
	ArtifactKey(itemHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys are prefixed by stage
// ("dataset", "artifact") and carry a SHA-256 hash of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for loaded dataset caching.
func (k *DefaultKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return hashKey("dataset", source, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(itemHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", itemHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
