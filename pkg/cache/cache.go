// Package cache provides pluggable byte caches and domain key derivation.
//
// The explorer caches two kinds of data: documentation-section existence
// checks (one small boolean per checked URL, refreshed on a TTL) and
// rendered tree artifacts. Backends range from a local file cache for CLI
// usage to Redis and MongoDB for server deployments; all implement the
// same [Cache] interface, selected by configuration.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh; an expired or absent entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources (connections, file handles).
	Close() error
}

// ArtifactKeyOpts carries the render parameters that distinguish one
// exported artifact from another built from the same tree.
type ArtifactKeyOpts struct {
	Format     string // "svg", "png", "dot"
	Colorscale string
	Sorted     bool
}

// Keyer derives cache keys for the explorer's cacheable data. Keeping key
// construction behind an interface lets deployments scope or re-shard keys
// without touching call sites.
type Keyer interface {
	// DocKey returns the key for a documentation-section existence result.
	DocKey(url string) string

	// TreeKey returns the key for a built tree, distinguished by schema
	// name and the wire form of the applied filter.
	TreeKey(schemaName, filter string) string

	// ArtifactKey returns the key for a rendered artifact derived from a
	// tree with the given content hash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing their distinguishing parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocKey generates a key for a documentation existence check.
func (k *DefaultKeyer) DocKey(url string) string {
	return hashKey("doc", url)
}

// TreeKey generates a key for a built tree.
func (k *DefaultKeyer) TreeKey(schemaName, filter string) string {
	return hashKey("tree", schemaName, filter)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
