package nodelink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(graph.Path(3), Options{})

	for _, want := range []string{"graph G {", `0 [label="0"]`, `2 [label="2"]`, "0 -- 1;", "1 -- 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
	if strings.Contains(dot, "labelloc") {
		t.Error("ToDOT() without title should not set a graph label")
	}
}

func TestToDOT_Options(t *testing.T) {
	dot := ToDOT(graph.Claw(), Options{Title: "claw", Detailed: true, Highlight: []int{0}})

	if !strings.Contains(dot, `label="claw"`) {
		t.Error("ToDOT() missing title")
	}
	if !strings.Contains(dot, `0 [label="0\nd=3", fillcolor=lightgrey`) {
		t.Errorf("ToDOT() highlighted centre not found:\n%s", dot)
	}
	if !strings.Contains(dot, `1 [label="1\nd=1"];`) {
		t.Errorf("ToDOT() leaf label not found:\n%s", dot)
	}
}

func TestToDOT_IsolatedVertices(t *testing.T) {
	dot := ToDOT(graph.Empty(2), Options{})
	if !strings.Contains(dot, "0 [") || !strings.Contains(dot, "1 [") {
		t.Errorf("ToDOT() should list isolated vertices:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"kite.svg", "svg", true},
		{"out/KITE.PNG", "png", true},
		{"g.dot", "dot", true},
		{"g.gv", "dot", true},
		{"g.pdf", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFor(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FormatFor(%q) = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(graph.Bowtie(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), ToDOT(graph.Cycle(4), Options{}))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRender_UnknownLayout(t *testing.T) {
	_, err := Plot(context.Background(), graph.Path(2), "svg", Options{Layout: "spring"})
	if !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("Plot(unknown layout) error = %v, want INVALID_INPUT", err)
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	dotPath := filepath.Join(dir, "kite.dot")
	if err := Save(ctx, graph.Kite(), dotPath, Options{}); err != nil {
		t.Fatalf("Save(.dot) error: %v", err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("saved DOT = %q", data)
	}

	svgPath := filepath.Join(dir, "kite.svg")
	if err := Save(ctx, graph.Kite(), svgPath, Options{Layout: "circo"}); err != nil {
		t.Fatalf("Save(.svg) error: %v", err)
	}

	err = Save(ctx, graph.Kite(), filepath.Join(dir, "kite.pdf"), Options{})
	if !cerrors.Is(err, cerrors.ErrCodeInvalidFormat) {
		t.Errorf("Save(.pdf) error = %v, want INVALID_FORMAT", err)
	}
}
