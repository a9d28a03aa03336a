// Package cache provides content-addressed caching for layout results and
// rendered artifacts.
//
// Three backends are available:
//   - file: directory-backed cache for CLI usage
//   - redis: Redis-backed cache for server deployments
//   - null: no-op cache for tests or when caching is disabled
//
// Keys are derived from content hashes, never from file paths or timestamps:
// the layout engine is deterministic, so the same graph bytes and options
// always map to the same cached result regardless of where the request
// originated.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// DefaultLayoutTTL bounds cached layout results. Layouts are
	// deterministic, so the TTL only caps disk/Redis growth.
	DefaultLayoutTTL = 7 * 24 * time.Hour

	// DefaultArtifactTTL bounds rendered SVG/PNG artifacts, which are
	// larger and cheaper to regenerate.
	DefaultArtifactTTL = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout parameters that participate in the cache key.
// Any option that changes the computed positions must appear here.
type LayoutKeyOpts struct {
	NodeSpacing     int
	LayerSeparation int
	Iterations      int
}

// ArtifactKeyOpts are the rendering parameters that participate in the
// cache key for rendered artifacts.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a layout result, derived from the
	// hash of the input graph and the layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the hash of the positioned graph and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stable prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts.NodeSpacing, opts.LayerSeparation, opts.Iterations)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Detailed)
}
