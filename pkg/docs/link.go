// Package docs resolves tree nodes to documentation URLs and verifies that
// the anchored section actually exists before a link is shown.
//
// Every catalog entry carries a page path and an anchor-section prefix
// (see schema.Entry). A clicked node's `*`-delimited id maps onto the
// page's anchor naming: path segments joined with `-` under the section
// prefix. The class segment itself links to the unanchored page.
package docs

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/schema"
)

// DefaultBaseURL is the documentation root the catalog's page paths hang
// off.
const DefaultBaseURL = "https://plotly.com/python/reference/"

// Resolver builds documentation URLs for tree nodes.
type Resolver struct {
	base string
}

// NewResolver creates a Resolver rooted at base. An empty base selects
// [DefaultBaseURL].
func NewResolver(base string) *Resolver {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Resolver{base: base}
}

// PageURL returns the unanchored documentation page for a catalog entry.
func (r *Resolver) PageURL(e *schema.Entry) string {
	return r.base + e.DocPath + "/"
}

// Resolve maps a clicked node id to its documentation URL.
//
// The id is split on `*`. A leading uppercase segment is the class name —
// the upstream schema names types CamelCase and properties lowercase, and
// that convention is what distinguishes "link to the page" from "link to a
// property subsection". The remaining segments join with `-` under the
// entry's anchor-section prefix.
func (r *Resolver) Resolve(e *schema.Entry, id string) (string, error) {
	if err := errors.ValidateNodeID(id); err != nil {
		return "", err
	}

	segments := strings.Split(id, "*")
	if leadsUppercase(segments[0]) {
		if len(segments) == 1 {
			return r.PageURL(e), nil
		}
		segments = segments[1:]
	}
	return r.PageURL(e) + "#" + e.Section + "-" + strings.Join(segments, "-"), nil
}

// leadsUppercase reports whether the segment starts with an uppercase
// letter, the upstream convention for class-like names.
func leadsUppercase(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
