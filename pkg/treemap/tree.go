// Package treemap builds a three-level labeled tree from a schema object:
// the object itself, its settable properties, and those properties' own
// nested properties. The output is the parallel-sequence form consumed by a
// treemap renderer: for every node a parent id, a display label, and a
// `*`-delimited path id.
//
// Tree building is a pure transform. For a fixed object and filter the
// output is identical on every call: all candidate enumeration is sorted,
// and no package-level state is read or written.
package treemap

import (
	"sort"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/schema"
)

// Tree is the parallel-sequence representation of the hierarchy. The three
// slices always have equal length; index i describes one node.
type Tree struct {
	// Parents holds, per node, the id of its immediate ancestor. The root
	// node's parent is the empty string.
	Parents []string `json:"parents"`

	// Labels holds the display name of each node. Labels repeat across the
	// tree (many objects have a "color" property); ids do not.
	Labels []string `json:"labels"`

	// IDs holds the unique `*`-delimited path of each node, built by
	// concatenating ancestor labels (e.g. "Bar*marker*color").
	IDs []string `json:"ids"`
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.IDs) }

// append adds one node.
func (t *Tree) append(parent, label, id string) {
	t.Parents = append(t.Parents, parent)
	t.Labels = append(t.Labels, label)
	t.IDs = append(t.IDs, id)
}

// triples returns the tree as (parent, label, id) triples, in node order.
func (t *Tree) triples() []triple {
	out := make([]triple, 0, t.Len())
	for i := range t.IDs {
		out = append(out, triple{parent: t.Parents[i], label: t.Labels[i], id: t.IDs[i]})
	}
	return out
}

// triple is one zipped (parent, label, id) node.
type triple struct {
	parent, label, id string
}

// Counts carries the unfiltered per-level size bounds. They are computed
// from candidates before range filtering, so UI range controls can express
// the full domain even while a filter narrows the visible result.
type Counts struct {
	// Level1 is the unfiltered count of root-level nodes: the class node
	// plus every settable root property.
	Level1 int `json:"level_1"`

	// Level2 is the widest mid-level branch: the maximum number of nested
	// candidates found under any single surviving root-level property.
	Level2 int `json:"level_2"`

	// Level3 is the widest leaf-level branch, measured the same way over
	// the nodes the mid pass added.
	Level3 int `json:"level_3"`
}

// Result is the output of one Search call.
type Result struct {
	Tree   Tree   `json:"tree"`
	Counts Counts `json:"counts"`
}

// Search builds the full three-level tree for obj, applying filter's
// per-level ranges. A nil filter means no filtering at any level.
//
// The passes run in order: the root pass emits the class node and its
// settable properties, the mid pass expands each surviving property's
// nested object, and the leaf pass expands the nodes the mid pass added.
// Each level's range is applied to that level's sorted candidates only.
func Search(obj *schema.Object, filter *Filter) (*Result, error) {
	if obj == nil {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "no schema object to search")
	}

	tree, rootCount := buildRootLevel(obj, filter.level(Level1))
	preMid := tree.triples()

	tree, midCount := extendMidLevel(tree, obj, filter.level(Level2))
	tree, leafCount := extendLeafLevel(tree, preMid, obj, filter.level(Level3))

	return &Result{
		Tree: tree,
		Counts: Counts{
			Level1: rootCount,
			Level2: midCount,
			Level3: leafCount,
		},
	}, nil
}

// sortTriples orders triples by (parent, label, id) for deterministic
// iteration over set differences.
func sortTriples(ts []triple) {
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.parent != b.parent {
			return a.parent < b.parent
		}
		if a.label != b.label {
			return a.label < b.label
		}
		return a.id < b.id
	})
}
