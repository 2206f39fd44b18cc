package schema

import (
	"sort"
	"strings"
)

// Entry describes one explorable schema type in the catalog: how to
// construct it and where its documentation lives.
type Entry struct {
	// Name is the display name shown in the catalog (e.g. "Bar", "XAxis").
	Name string

	// DocPath is the URL path segment under the documentation base
	// (e.g. "bar", "layout/xaxis").
	DocPath string

	// Section is the anchor-section prefix used when linking to a
	// property subsection (e.g. "bar", "layout-xaxis").
	Section string

	// New constructs a fresh Object with default values attached.
	New func() *Object
}

// Registry maps display names to catalog entries. A Registry is built once
// (see Load) and passed to consumers; it holds no mutable state after
// construction and is safe for concurrent reads.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry builds a Registry from entries. Later duplicates replace
// earlier ones.
func NewRegistry(entries ...*Entry) *Registry {
	m := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return &Registry{entries: m}
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered display names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }

// defaultDocPath derives a documentation path from a display name the same
// way the upstream docs are organized: trace pages live at the lowercased
// type name.
func defaultDocPath(name string) string {
	return strings.ToLower(name)
}
