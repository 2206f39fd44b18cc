// Package export turns a built tree into shareable artifacts: Graphviz DOT
// text and rendered SVG/PNG images. The parallel-sequence tree maps directly
// onto a DOT digraph — one node per id, one edge per non-empty parent.
package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/treemap"
)

// Supported artifact formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats lists the artifact formats Render accepts.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormat checks that format names a supported artifact format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: dot, svg, png, json)", format)
	}
	return nil
}

// DefaultColorscale is the fill palette used when none is requested.
const DefaultColorscale = "blues"

// colorscales maps a palette name to per-depth fill colors: class node,
// root-level properties, everything deeper.
var colorscales = map[string][3]string{
	"blues":   {"#08519c", "#6baed6", "#c6dbef"},
	"greens":  {"#006d2c", "#74c476", "#c7e9c0"},
	"greys":   {"#252525", "#969696", "#d9d9d9"},
	"oranges": {"#a63603", "#fd8d3c", "#fdd0a2"},
}

// ValidateColorscale checks that name is a known palette. An empty name is
// valid and selects [DefaultColorscale].
func ValidateColorscale(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := colorscales[name]; !ok {
		names := make([]string, 0, len(colorscales))
		for n := range colorscales {
			names = append(names, n)
		}
		sort.Strings(names)
		return errors.New(errors.ErrCodeInvalidInput, "unknown colorscale %q (valid: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

// Options configures DOT generation.
type Options struct {
	// Colorscale selects the per-depth fill palette. Empty selects
	// [DefaultColorscale].
	Colorscale string

	// Sorted emits nodes in id order instead of build order. Build order
	// groups nodes by the pass that produced them; id order groups them by
	// subtree.
	Sorted bool
}

// ToDOT converts a tree to Graphviz DOT. The result renders with
// [RenderSVG] or [RenderPNG].
func ToDOT(tree *treemap.Tree, opts Options) string {
	fills := colorscales[DefaultColorscale]
	if f, ok := colorscales[opts.Colorscale]; ok {
		fills = f
	}

	order := make([]int, tree.Len())
	for i := range order {
		order[i] = i
	}
	if opts.Sorted {
		sort.Slice(order, func(a, b int) bool {
			return tree.IDs[order[a]] < tree.IDs[order[b]]
		})
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, i := range order {
		fill, font := nodeColors(tree.IDs[i], fills)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n",
			tree.IDs[i], tree.Labels[i], fill, font)
	}

	ids := make(map[string]bool, tree.Len())
	var classID string
	for i := range tree.IDs {
		ids[tree.IDs[i]] = true
		if tree.Parents[i] == "" {
			classID = tree.IDs[i]
		}
	}

	buf.WriteString("\n")
	for _, i := range order {
		parent := tree.Parents[i]
		if parent == "" {
			continue
		}
		// Tolerate trees whose deep parents omit the class prefix; anchor
		// the edge on the real node.
		if !ids[parent] && ids[classID+"*"+parent] {
			parent = classID + "*" + parent
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, tree.IDs[i])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeColors picks the fill for a node by its depth, with a light font on
// the dark class-node fill.
func nodeColors(id string, fills [3]string) (fill, font string) {
	depth := strings.Count(id, "*")
	if depth > 2 {
		depth = 2
	}
	font = "black"
	if depth == 0 {
		font = "white"
	}
	return fills[depth], font
}

// RenderSVG renders DOT to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders DOT to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root tag so the image scales to its
// container: a zero-origin viewBox with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
