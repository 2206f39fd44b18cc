package treemap

import (
	"strings"

	"github.com/ionutms/schemascope/pkg/schema"
)

// buildRootLevel emits the class node and one child per settable root
// property, then applies the level-1 range to the zipped node sequence.
// The returned count is the pre-slice node total (properties plus the
// class node itself), which bounds the level-1 UI control.
func buildRootLevel(obj *schema.Object, r *Range) (Tree, int) {
	className := obj.Name()
	mainKeys := settableNames(obj)

	zipped := make([]triple, 0, len(mainKeys)+1)
	zipped = append(zipped, triple{parent: "", label: className, id: className})
	for _, key := range mainKeys {
		zipped = append(zipped, triple{
			parent: className,
			label:  key,
			id:     className + "*" + key,
		})
	}
	rootCount := len(zipped)

	var tree Tree
	for _, t := range sliceTriples(zipped, r) {
		tree.append(t.parent, t.label, t.id)
	}
	return tree, rootCount
}

// extendMidLevel expands each surviving root-level node whose property
// value is a nested object, appending that object's property names as
// children. The returned count is the widest branch before the level-2
// range is applied: the UI slider for this level must bound its range by
// the widest branch so one shared control can filter every branch without
// silently truncating the wide ones.
func extendMidLevel(tree Tree, obj *schema.Object, r *Range) (Tree, int) {
	maxSize := 0
	for _, node := range tree.triples() {
		if node.parent == "" {
			continue
		}
		val, ok := obj.Field(node.label)
		if !ok || val.IsScalar() {
			continue
		}
		candidates := nestedNames(val.Object(), true)
		if len(candidates) > maxSize {
			maxSize = len(candidates)
		}
		for _, c := range sliceStrings(candidates, r) {
			tree.append(node.id, c, node.id+"*"+c)
		}
	}
	return tree, maxSize
}

// extendLeafLevel expands the nodes the mid pass added: the difference
// between the tree's current triples and preMid, sorted for determinism.
// Each new node's path within obj is its parent id with the class-name
// prefix stripped; a path that fails to resolve, or resolves to a scalar,
// contributes no children.
func extendLeafLevel(tree Tree, preMid []triple, obj *schema.Object, r *Range) (Tree, int) {
	known := make(map[triple]struct{}, len(preMid))
	for _, t := range preMid {
		known[t] = struct{}{}
	}
	var added []triple
	for _, t := range tree.triples() {
		if _, old := known[t]; !old {
			added = append(added, t)
		}
	}
	sortTriples(added)

	prefix := obj.Name() + "*"
	maxSize := 0
	for _, node := range added {
		path := strings.Split(strings.TrimPrefix(node.parent, prefix), "*")
		val, ok := obj.At(append(path, node.label)...)
		if !ok || val.IsScalar() {
			continue
		}
		candidates := nestedNames(val.Object(), false)
		if len(candidates) > maxSize {
			maxSize = len(candidates)
		}
		for _, c := range sliceStrings(candidates, r) {
			tree.append(node.id, c, node.id+"*"+c)
		}
	}
	return tree, maxSize
}
