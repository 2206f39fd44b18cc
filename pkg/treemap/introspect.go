package treemap

import (
	"sort"
	"strings"

	"github.com/ionutms/schemascope/pkg/schema"
)

// rootDenylist names the constructor parameters never explored at the root
// level: the signature placeholders plus composite layout containers whose
// expansion would swamp the tree.
var rootDenylist = map[string]struct{}{
	"self":        {},
	"arg":         {},
	"kwargs":      {},
	"annotations": {},
	"coloraxis":   {},
	"geo":         {},
	"images":      {},
	"mapbox":      {},
	"polar":       {},
	"scene":       {},
	"selections":  {},
	"shapes":      {},
	"sliders":     {},
	"smith":       {},
	"ternary":     {},
	"updatemenus": {},
	"xaxis":       {},
	"yaxis":       {},
}

// reservedSuffix reports whether a name carries one of the reserved
// suffixes excluded at the given depth. Source-array names ("xsrc") are
// excluded everywhere; per-item template names ("shapedefaults") only at
// the root and mid levels.
func reservedSuffix(name string, excludeDefaults bool) bool {
	if strings.HasSuffix(name, "src") {
		return true
	}
	return excludeDefaults && strings.HasSuffix(name, "defaults")
}

// settableNames enumerates an object's root-level settable property names
// from its constructor parameters: denylisted and reserved-suffix names
// are dropped, the rest deduplicated and sorted.
func settableNames(obj *schema.Object) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range obj.Params() {
		if _, deny := rootDenylist[p]; deny {
			continue
		}
		if reservedSuffix(p, true) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// nestedNames enumerates a nested object's property names. Unlike the root
// level there is no denylist; only the reserved suffixes apply.
func nestedNames(obj *schema.Object, excludeDefaults bool) []string {
	var names []string
	for _, k := range obj.Keys() {
		if reservedSuffix(k, excludeDefaults) {
			continue
		}
		names = append(names, k)
	}
	return names
}
