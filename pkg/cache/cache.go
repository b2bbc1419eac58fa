// Package cache provides byte caches for search results with file,
// Redis, and no-op backends, plus the keyers that name entries.
package cache

import (
	"context"
	"time"
)

// TTLSearch is how long cached search results stay valid. Results are
// deterministic for a given graph and options, so the TTL mainly bounds
// backend growth.
const TTLSearch = 30 * 24 * time.Hour

// Cache stores opaque bytes under string keys with per-entry TTLs.
//
// Implementations must be safe for concurrent use. A zero TTL stores
// the entry without expiry.
type Cache interface {
	// Get returns the cached bytes for key. The second return reports
	// whether the key was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// SearchKeyOpts are the option fields that change a search outcome and
// therefore take part in cache keys. Execution details such as worker
// count and progress reporting stay out.
type SearchKeyOpts struct {
	Criterion    string `json:"criterion"`
	Parameter    string `json:"parameter"`
	ExcludeInter bool   `json:"exclude_inter"`
}

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// SearchKey keys a search result by graph fingerprint and the
	// semantic options.
	SearchKey(graphHash string, opts SearchKeyOpts) string
}

// keyVersion invalidates existing keys when the cached encoding changes.
const keyVersion = "v1"

// DefaultKeyer derives keys by hashing the components with sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SearchKey returns "search:<sha256>" over the key version, the graph
// hash, and the options.
func (k *DefaultKeyer) SearchKey(graphHash string, opts SearchKeyOpts) string {
	return hashKey("search", keyVersion, graphHash, opts)
}
