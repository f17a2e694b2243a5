// Package cache stores encoded layout documents between runs.
//
// Layouts are pure functions of the roster and the view options, so a
// document can be cached under a key derived from both. The CLI uses a
// [FileCache] under the user cache directory; tests and library callers
// that want no caching use [NullCache].
package cache

import (
	"context"
	"time"
)

// TTLDocument is how long an encoded document stays valid.
const TTLDocument = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey returns the key for a document computed from a roster
	// with the given content hash.
	DocumentKey(rosterHash string, opts DocumentKeyOpts) string
}

// DocumentKeyOpts are the view parameters that change a document.
type DocumentKeyOpts struct {
	Kind       string  `json:"kind"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   float64 `json:"rotation"`
	Group      string  `json:"group"`
	Centered   bool    `json:"centered"`
	Margin     float64 `json:"margin"`
	InnerScale float64 `json:"inner_scale"`
	InnerSpin  float64 `json:"inner_spin"`
	Jitter     float64 `json:"jitter"`
	Seed       uint64  `json:"seed"`
	Active     string  `json:"active"`
	Mode       string  `json:"mode"`
	TopN       int     `json:"top_n"`
	Weights    string  `json:"weights"`
	Format     string  `json:"format"`
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(rosterHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", rosterHash, opts)
}
