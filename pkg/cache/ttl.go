package cache

import "time"

// Default TTLs per cached data kind. Trees are cheap to rebuild and track
// the embedded catalog, so they expire quickly; documentation checks and
// rendered artifacts are stable for much longer.
const (
	// TTLTree is the lifetime of a cached tree build.
	TTLTree = time.Hour

	// TTLDoc is the lifetime of a documentation-section existence result.
	TTLDoc = 24 * time.Hour

	// TTLArtifact is the lifetime of a rendered artifact.
	TTLArtifact = 24 * time.Hour
)
