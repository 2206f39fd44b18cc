package treemap

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/schema"
)

// barObject builds a small Bar schema by hand: four settable properties
// after exclusions (marker, name, x, y), with marker carrying two nested
// branches of different widths.
func barObject() *schema.Object {
	line := schema.NewObject("line", nil, map[string]schema.Value{
		"color":    schema.ScalarValue(""),
		"colorsrc": schema.ScalarValue(""),
		"width":    schema.ScalarValue(""),
	})
	tickfont := schema.NewObject("tickfont", nil, map[string]schema.Value{
		"family": schema.ScalarValue(""),
		"size":   schema.ScalarValue(""),
	})
	colorbar := schema.NewObject("colorbar", nil, map[string]schema.Value{
		"tickfont":               schema.ObjectValue(tickfont),
		"tickformatstopdefaults": schema.ScalarValue(""),
		"ticks":                  schema.ScalarValue(""),
		"ticktextsrc":            schema.ScalarValue(""),
	})
	marker := schema.NewObject("marker", nil, map[string]schema.Value{
		"color":           schema.ScalarValue(""),
		"colorsrc":        schema.ScalarValue(""),
		"colorbar":        schema.ObjectValue(colorbar),
		"line":            schema.ObjectValue(line),
		"patterndefaults": schema.ScalarValue(""),
	})
	params := []string{"self", "arg", "marker", "name", "x", "xaxis", "xsrc", "y", "yaxis", "ysrc", "kwargs"}
	return schema.NewObject("Bar", params, map[string]schema.Value{
		"marker": schema.ObjectValue(marker),
		"name":   schema.ScalarValue("bar 0"),
		"x":      schema.TupleValue(),
		"y":      schema.TupleValue(),
	})
}

func mustSearch(t *testing.T, obj *schema.Object, f *Filter) *Result {
	t.Helper()
	res, err := Search(obj, f)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	return res
}

func TestSearchRootLevel(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	wantLabels := []string{"Bar", "marker", "name", "x", "y"}
	wantParents := []string{"", "Bar", "Bar", "Bar", "Bar"}
	wantIDs := []string{"Bar", "Bar*marker", "Bar*name", "Bar*x", "Bar*y"}

	if got := res.Tree.Labels[:5]; !reflect.DeepEqual(got, wantLabels) {
		t.Errorf("root labels = %v, want %v", got, wantLabels)
	}
	if got := res.Tree.Parents[:5]; !reflect.DeepEqual(got, wantParents) {
		t.Errorf("root parents = %v, want %v", got, wantParents)
	}
	if got := res.Tree.IDs[:5]; !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("root ids = %v, want %v", got, wantIDs)
	}
	if res.Counts.Level1 != 5 {
		t.Errorf("Level1 count = %d, want 5", res.Counts.Level1)
	}
}

func TestSearchFullTree(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	wantIDs := []string{
		"Bar",
		"Bar*marker",
		"Bar*name",
		"Bar*x",
		"Bar*y",
		"Bar*marker*color",
		"Bar*marker*colorbar",
		"Bar*marker*line",
		"Bar*marker*colorbar*tickfont",
		"Bar*marker*colorbar*tickformatstopdefaults",
		"Bar*marker*colorbar*ticks",
		"Bar*marker*line*color",
		"Bar*marker*line*width",
	}
	if !reflect.DeepEqual(res.Tree.IDs, wantIDs) {
		t.Errorf("ids = %v, want %v", res.Tree.IDs, wantIDs)
	}

	want := Counts{Level1: 5, Level2: 3, Level3: 3}
	if res.Counts != want {
		t.Errorf("counts = %+v, want %+v", res.Counts, want)
	}
}

func TestSearchDeterminism(t *testing.T) {
	obj := barObject()
	filter := &Filter{Level2: &Range{Start: 0, End: 2}}

	a := mustSearch(t, obj, filter)
	b := mustSearch(t, obj, filter)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("consecutive calls differ:\n%+v\n%+v", a, b)
	}
}

func TestSearchIDUniqueness(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	seen := make(map[string]struct{})
	for _, id := range res.Tree.IDs {
		if _, dup := seen[id]; dup {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSearchParentExistence(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	emitted := make(map[string]struct{})
	for i, parent := range res.Tree.Parents {
		if i == 0 {
			if parent != "" {
				t.Fatalf("root parent = %q, want empty", parent)
			}
		} else if _, ok := emitted[parent]; !ok {
			t.Errorf("node %q references parent %q before it was emitted", res.Tree.IDs[i], parent)
		}
		emitted[res.Tree.IDs[i]] = struct{}{}
	}
}

func TestSearchLevel1Slice(t *testing.T) {
	res := mustSearch(t, barObject(), &Filter{Level1: &Range{Start: 1, End: 3}})

	// Indexes 1 and 2 of the zipped root sequence survive: marker, name.
	if got := res.Tree.Labels[:2]; !reflect.DeepEqual(got, []string{"marker", "name"}) {
		t.Errorf("sliced root labels = %v, want [marker name]", got)
	}
	// The unfiltered count is still reported.
	if res.Counts.Level1 != 5 {
		t.Errorf("Level1 count = %d, want 5", res.Counts.Level1)
	}
}

func TestSearchFilterIdempotentOnSize(t *testing.T) {
	obj := barObject()
	unfiltered := mustSearch(t, obj, nil)
	wide := mustSearch(t, obj, &Filter{Level1: &Range{Start: 0, End: unfiltered.Counts.Level1 + 10}})

	if !reflect.DeepEqual(unfiltered, wide) {
		t.Error("a level-1 range covering the whole domain should match no filter")
	}
}

func TestSearchLevel2Slice(t *testing.T) {
	res := mustSearch(t, barObject(), &Filter{Level2: &Range{Start: 0, End: 1}})

	var midLabels []string
	for i, parent := range res.Tree.Parents {
		if parent == "Bar*marker" {
			midLabels = append(midLabels, res.Tree.Labels[i])
		}
	}
	if !reflect.DeepEqual(midLabels, []string{"color"}) {
		t.Errorf("mid labels = %v, want [color]", midLabels)
	}
	// Counts always reflect the pre-filter width.
	if res.Counts.Level2 != 3 {
		t.Errorf("Level2 count = %d, want 3", res.Counts.Level2)
	}
}

func TestSearchLevel3Slice(t *testing.T) {
	res := mustSearch(t, barObject(), &Filter{Level3: &Range{Start: 0, End: 1}})

	var leafIDs []string
	for _, id := range res.Tree.IDs {
		if strings.Count(id, "*") == 3 {
			leafIDs = append(leafIDs, id)
		}
	}
	want := []string{"Bar*marker*colorbar*tickfont", "Bar*marker*line*color"}
	if !reflect.DeepEqual(leafIDs, want) {
		t.Errorf("leaf ids = %v, want %v", leafIDs, want)
	}
	if res.Counts.Level3 != 3 {
		t.Errorf("Level3 count = %d, want 3", res.Counts.Level3)
	}
}

func TestSearchOvershootingFilter(t *testing.T) {
	res := mustSearch(t, barObject(), &Filter{
		Level1: &Range{Start: 0, End: 100},
		Level2: &Range{Start: 50, End: 60},
		Level3: &Range{Start: 50, End: 60},
	})

	// No wraparound, no error: the overshooting mid range simply empties
	// every branch.
	if res.Tree.Len() != 5 {
		t.Errorf("tree size = %d, want 5 (root level only)", res.Tree.Len())
	}
	if res.Counts.Level2 != 3 {
		t.Errorf("Level2 count = %d, want 3", res.Counts.Level2)
	}
}

func TestSearchCountMonotonicity(t *testing.T) {
	res := mustSearch(t, barObject(), &Filter{Level2: &Range{Start: 0, End: 2}})

	perParent := make(map[string]int)
	for i, parent := range res.Tree.Parents {
		if strings.Count(res.Tree.IDs[i], "*") == 2 {
			perParent[parent]++
		}
	}
	for parent, n := range perParent {
		if n > res.Counts.Level2 {
			t.Errorf("parent %q emitted %d mid children, exceeds Level2 count %d", parent, n, res.Counts.Level2)
		}
	}
}

func TestSearchSuffixExclusion(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	for i, label := range res.Tree.Labels {
		if strings.HasSuffix(label, "src") {
			t.Errorf("label %q (id %q) carries reserved suffix", label, res.Tree.IDs[i])
		}
	}
	// "defaults" names are excluded at the root and mid levels but allowed
	// as leaf children.
	for i, label := range res.Tree.Labels {
		if strings.HasSuffix(label, "defaults") && strings.Count(res.Tree.IDs[i], "*") < 3 {
			t.Errorf("non-leaf label %q should be excluded", label)
		}
	}
	var found bool
	for _, id := range res.Tree.IDs {
		if id == "Bar*marker*colorbar*tickformatstopdefaults" {
			found = true
		}
	}
	if !found {
		t.Error("leaf-level defaults name should survive (only src is reserved there)")
	}
}

func TestSearchRootDenylist(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	rootLabels := make(map[string]struct{})
	for i, parent := range res.Tree.Parents {
		if parent == "Bar" {
			rootLabels[res.Tree.Labels[i]] = struct{}{}
		}
	}
	for _, banned := range []string{"self", "arg", "kwargs", "xaxis", "yaxis"} {
		if _, ok := rootLabels[banned]; ok {
			t.Errorf("denylisted name %q emitted at root level", banned)
		}
	}
}

func TestSearchDenylistIsRootOnly(t *testing.T) {
	// A nested object may legitimately carry a denylisted name ("yaxis"
	// inside a range slider); only the root level filters those out.
	nested := schema.NewObject("rangeslider", nil, map[string]schema.Value{
		"yaxis":   schema.ScalarValue(""),
		"visible": schema.ScalarValue(""),
	})
	obj := schema.NewObject("XAxis", []string{"self", "arg", "rangeslider", "kwargs"}, map[string]schema.Value{
		"rangeslider": schema.ObjectValue(nested),
	})

	res := mustSearch(t, obj, nil)
	var found bool
	for _, id := range res.Tree.IDs {
		if id == "XAxis*rangeslider*yaxis" {
			found = true
		}
	}
	if !found {
		t.Errorf("nested denylisted name missing from %v", res.Tree.IDs)
	}
}

func TestSearchScalarsAreTerminal(t *testing.T) {
	res := mustSearch(t, barObject(), nil)

	for _, parent := range res.Tree.Parents {
		switch parent {
		case "Bar*name", "Bar*x", "Bar*y":
			t.Errorf("scalar node %q was expanded", parent)
		}
	}
}

func TestSearchUnresolvableBranchSkipped(t *testing.T) {
	// A constructor parameter with no attached value renders as a leaf;
	// the build must not abort.
	obj := schema.NewObject("Frame", []string{"self", "arg", "group", "kwargs"}, nil)

	res := mustSearch(t, obj, nil)
	if got := res.Tree.Labels; !reflect.DeepEqual(got, []string{"Frame", "group"}) {
		t.Errorf("labels = %v, want [Frame group]", got)
	}
	if res.Counts.Level2 != 0 || res.Counts.Level3 != 0 {
		t.Errorf("counts = %+v, want zero mid/leaf", res.Counts)
	}
}

func TestSearchEmptyMainKeys(t *testing.T) {
	obj := schema.NewObject("Empty", []string{"self", "arg", "kwargs"}, nil)

	res := mustSearch(t, obj, nil)
	if got := res.Tree.Labels; !reflect.DeepEqual(got, []string{"Empty"}) {
		t.Errorf("labels = %v, want [Empty]", got)
	}
	if res.Counts.Level1 != 1 {
		t.Errorf("Level1 count = %d, want 1", res.Counts.Level1)
	}
}

func TestSearchNilObject(t *testing.T) {
	_, err := Search(nil, nil)
	if !errors.Is(err, errors.ErrCodeInvalidSchema) {
		t.Errorf("Search(nil) error = %v, want %s", err, errors.ErrCodeInvalidSchema)
	}
}

func TestSearchEmbeddedCatalog(t *testing.T) {
	reg, err := schema.Load()
	if err != nil {
		t.Fatalf("schema.Load() error: %v", err)
	}

	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			entry, _ := reg.Lookup(name)
			res := mustSearch(t, entry.New(), nil)

			if res.Tree.Len() == 0 || res.Tree.IDs[0] != name {
				t.Fatalf("tree root = %v, want %q", res.Tree.IDs[:1], name)
			}
			seen := make(map[string]struct{})
			for _, id := range res.Tree.IDs {
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = struct{}{}
			}
			for i, label := range res.Tree.Labels {
				if strings.HasSuffix(label, "src") {
					t.Errorf("label %q (id %q) carries reserved suffix", label, res.Tree.IDs[i])
				}
			}
			again := mustSearch(t, entry.New(), nil)
			if !reflect.DeepEqual(res, again) {
				t.Error("rebuild from a fresh object differs")
			}
		})
	}
}
