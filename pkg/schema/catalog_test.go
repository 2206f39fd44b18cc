package schema

import (
	"testing"

	"github.com/ionutms/schemascope/pkg/errors"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reg.Len() == 0 {
		t.Fatal("Load() returned an empty registry")
	}

	// Two independent loads must not share state.
	reg2, err := Load()
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if reg == reg2 {
		t.Error("Load() returned the same registry twice")
	}
}

func TestLoadKnownEntries(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name        string
		wantDocPath string
		wantSection string
	}{
		{name: "Bar", wantDocPath: "bar", wantSection: "bar"},
		{name: "Scatter", wantDocPath: "scatter", wantSection: "scatter"},
		{name: "XAxis", wantDocPath: "layout/xaxis", wantSection: "layout-xaxis"},
		{name: "Annotation", wantDocPath: "layout/annotations", wantSection: "layout-annotations-items-annotation"},
		{name: "Layout", wantDocPath: "layout", wantSection: "layout"},
		{name: "Selection", wantDocPath: "layout/selections", wantSection: "layout-selections-items-selection"},
		{name: "Histogram2dContour", wantDocPath: "histogram2dcontour", wantSection: "histogram2dcontour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := reg.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) missing", tt.name)
			}
			if e.DocPath != tt.wantDocPath {
				t.Errorf("DocPath = %q, want %q", e.DocPath, tt.wantDocPath)
			}
			if e.Section != tt.wantSection {
				t.Errorf("Section = %q, want %q", e.Section, tt.wantSection)
			}
			obj := e.New()
			if obj == nil || obj.Name() != tt.name {
				t.Fatalf("New() built %v, want object named %q", obj, tt.name)
			}
			if len(obj.Params()) == 0 {
				t.Error("New() built object with no constructor params")
			}
		})
	}
}

func TestLoadCatalogCoverage(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Every explorable chart object type, traces and layout components
	// alike. Layout component names drop the plural and the Layout_
	// prefix used upstream (Shapes -> Shape, Layout_Image -> LayoutImage).
	want := []string{
		"Annotation", "Bar", "Barpolar", "Box", "Candlestick",
		"Carpet", "Choropleth", "Choroplethmapbox", "Coloraxis", "Cone",
		"Contour", "Contourcarpet", "Densitymapbox", "Figure", "FigureWidget",
		"Frame", "Funnel", "Funnelarea", "Geo", "Heatmap",
		"Heatmapgl", "Histogram", "Histogram2d", "Histogram2dContour", "Icicle",
		"Image", "Indicator", "Isosurface", "Layout", "LayoutImage",
		"Mapbox", "Mesh3d", "Ohlc", "Parcats", "Parcoords",
		"Pie", "Pointcloud", "Polar", "Sankey", "Scatter",
		"Scatter3d", "Scattercarpet", "Scattergeo", "Scattergl", "Scattermapbox",
		"Scatterpolar", "Scatterpolargl", "Scattersmith", "Scatterternary", "Scene",
		"Selection", "Shape", "Slider", "Smith", "Splom",
		"Streamtube", "Sunburst", "Surface", "Table", "Ternary",
		"Treemap", "Updatemenu", "Violin", "Volume", "Waterfall",
		"XAxis", "YAxis",
	}
	if reg.Len() != len(want) {
		t.Errorf("catalog has %d entries, want %d", reg.Len(), len(want))
	}
	for _, name := range want {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("catalog missing %q", name)
		}
	}
}

func TestLoadEntryIntegrity(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, name := range reg.Names() {
		e, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", name)
		}
		if e.DocPath == "" {
			t.Errorf("%s: empty doc path", name)
		}
		if e.Section == "" {
			t.Errorf("%s: empty section prefix", name)
		}
		if obj := e.New(); obj == nil || obj.Name() != name {
			t.Errorf("%s: New() built %v", name, obj)
		}
	}
}

func TestLoadEntryConstructorIndependence(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	e, ok := reg.Lookup("Bar")
	if !ok {
		t.Fatal(`Lookup("Bar") missing`)
	}
	a, b := e.New(), e.New()
	if a == b {
		t.Error("New() returned the same object twice")
	}
}

func TestLoadBarSchemaShape(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	e, _ := reg.Lookup("Bar")
	obj := e.New()

	// Constructor params carry placeholders and source-array names untouched.
	params := obj.Params()
	if params[0] != "self" || params[len(params)-1] != "kwargs" {
		t.Errorf("params bracket = %q..%q, want self..kwargs", params[0], params[len(params)-1])
	}
	found := map[string]bool{}
	for _, p := range params {
		found[p] = true
	}
	for _, want := range []string{"marker", "x", "xsrc", "y", "ysrc"} {
		if !found[want] {
			t.Errorf("params missing %q", want)
		}
	}

	// Three-level branch: marker -> line -> color.
	if _, ok := obj.At("marker", "line", "color"); !ok {
		t.Error("marker.line.color path missing")
	}
	if v, ok := obj.At("marker", "colorbar", "tickfont"); !ok || v.IsScalar() {
		t.Error("marker.colorbar.tickfont should resolve to a nested object")
	}
	// Nested objects carry their own source-array keys.
	if _, ok := obj.At("marker", "colorsrc"); !ok {
		t.Error("marker.colorsrc missing")
	}
}

func TestLoadBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"Bar": `},
		{name: "no params", data: `{"Bar": {"fields": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadBytes([]byte(tt.data)); !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("LoadBytes() error = %v, want %s", err, errors.ErrCodeInvalidCatalog)
			}
		})
	}
}

func TestLoadBytesDefaults(t *testing.T) {
	reg, err := LoadBytes([]byte(`{"Heatmap": {"params": ["self", "arg", "z", "kwargs"]}}`))
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	e, ok := reg.Lookup("Heatmap")
	if !ok {
		t.Fatal("entry missing")
	}
	if e.DocPath != "heatmap" {
		t.Errorf("default DocPath = %q, want %q", e.DocPath, "heatmap")
	}
	if e.Section != "heatmap" {
		t.Errorf("default Section = %q, want %q", e.Section, "heatmap")
	}
}
