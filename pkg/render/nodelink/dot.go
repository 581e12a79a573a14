package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// DefaultLayout is the Graphviz engine used when Options.Layout is empty.
const DefaultLayout = "neato"

var layouts = []string{"circo", "dot", "fdp", "neato", "sfdp", "twopi"}

// Options configures plotting.
type Options struct {
	// Title is drawn above the graph when non-empty.
	Title string
	// Detailed adds the vertex degree to each label.
	Detailed bool
	// Highlight lists vertices drawn with a filled background, e.g. the
	// glued vertex of a gluing.
	Highlight []int
	// Layout selects the Graphviz engine (neato, circo, dot, fdp, sfdp,
	// twopi).
	Layout string
}

func (o Options) layout() string {
	if o.Layout == "" {
		return DefaultLayout
	}
	return o.Layout
}

// Layouts returns the supported layout engines.
func Layouts() []string { return slices.Clone(layouts) }

// ToDOT writes g as an undirected Graphviz graph with circular vertices.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	for v := range g.Order() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, v, opts.Detailed))}
		if slices.Contains(opts.Highlight, v) {
			attrs = append(attrs, "fillcolor=lightgrey", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, v int, detailed bool) string {
	if !detailed {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%d\nd=%d", v, g.Degree(v))
}

// RenderSVG lays out dot with the default engine and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, graphviz.SVG, DefaultLayout)
}

// RenderPNG lays out dot with the default engine and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, graphviz.PNG, DefaultLayout)
}

// Render lays out dot with the named engine and encodes it as format.
func Render(ctx context.Context, dot string, format graphviz.Format, layout string) ([]byte, error) {
	if !slices.Contains(layouts, layout) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "unknown layout %q", layout)
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(layout))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the plot scales with its
// container instead of using Graphviz's point-based size.
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// FormatFor maps a file extension to an output format: "svg", "png" or
// "dot". The second result is false for unsupported extensions.
func FormatFor(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg", true
	case ".png":
		return "png", true
	case ".dot", ".gv":
		return "dot", true
	default:
		return "", false
	}
}

// Plot renders g in the named format ("svg", "png" or "dot").
func Plot(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return Render(ctx, dot, graphviz.SVG, opts.layout())
	case "png":
		return Render(ctx, dot, graphviz.PNG, opts.layout())
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "unsupported plot format %q", format)
	}
}

// Save renders g to path, choosing the format from the file extension
// (.svg, .png, .dot or .gv).
func Save(ctx context.Context, g *graph.Graph, path string, opts Options) error {
	format, ok := FormatFor(path)
	if !ok {
		return cerrors.New(cerrors.ErrCodeInvalidFormat, "cannot infer plot format from %q (use .svg, .png or .dot)", path)
	}
	data, err := Plot(ctx, g, format, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
