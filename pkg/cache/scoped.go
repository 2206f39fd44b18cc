package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when several explorer instances (or several catalog versions) share one
// Redis or MongoDB backend and must not read each other's entries.
//
// Example usage:
//
//	// Keys scoped to one catalog build
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "catalog:v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocKey generates a prefixed key for a documentation existence check.
func (k *ScopedKeyer) DocKey(url string) string {
	return k.prefix + k.inner.DocKey(url)
}

// TreeKey generates a prefixed key for a built tree.
func (k *ScopedKeyer) TreeKey(schemaName, filter string) string {
	return k.prefix + k.inner.TreeKey(schemaName, filter)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
