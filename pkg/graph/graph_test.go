package graph

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		edges   []Edge
		wantErr error
	}{
		{"Empty", 0, nil, nil},
		{"Isolated", 3, nil, nil},
		{"Triangle", 3, []Edge{{0, 1}, {1, 2}, {2, 0}}, nil},
		{"NegativeOrder", -1, nil, ErrNegativeOrder},
		{"OutOfRange", 2, []Edge{{0, 2}}, ErrVertexOutOfRange},
		{"NegativeVertex", 2, []Edge{{-1, 0}}, ErrVertexOutOfRange},
		{"SelfLoop", 2, []Edge{{1, 1}}, ErrSelfLoop},
		{"Duplicate", 3, []Edge{{0, 1}, {1, 0}}, ErrDuplicateEdge},
		{"TooLarge", MaxOrder + 1, nil, ErrOrderTooLarge},
		{"Huge", 2000000000, nil, ErrOrderTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if g.Order() != tt.n || g.Size() != len(tt.edges) {
				t.Errorf("got order %d size %d, want %d %d", g.Order(), g.Size(), tt.n, len(tt.edges))
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on a self-loop")
		}
	}()
	MustNew(1, Edge{0, 0})
}

func TestQueries(t *testing.T) {
	g := Kite()

	if got := g.Edges(); got[len(got)-1] != (Edge{2, 4}) {
		t.Errorf("Edges() last = %v, want 2-4", got[len(got)-1])
	}
	if got := g.Degrees(); !slices.Equal(got, []int{3, 2, 3, 3, 1}) {
		t.Errorf("Degrees() = %v", got)
	}
	if got := g.DegreeSequence(); !slices.Equal(got, []int{3, 3, 3, 2, 1}) {
		t.Errorf("DegreeSequence() = %v", got)
	}
	if got := g.Neighbors(3); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Neighbors(3) = %v", got)
	}
	if !g.HasEdge(3, 0) || g.HasEdge(1, 2) {
		t.Error("HasEdge is wrong for the kite")
	}
	if g.Degree(4) != 1 {
		t.Errorf("Degree(4) = %d, want 1", g.Degree(4))
	}

	// Edges are normalized so that U < V.
	h := MustNew(2, Edge{1, 0})
	if e := h.Edge(0); e.U != 0 || e.V != 1 {
		t.Errorf("Edge(0) = %v, want 0-1", e)
	}
}

func TestSubgraph(t *testing.T) {
	g := Path(4) // 0-1, 1-2, 2-3
	sub := g.Subgraph(0b101)
	if sub.Order() != 4 || sub.Size() != 2 {
		t.Fatalf("Subgraph order %d size %d, want 4 2", sub.Order(), sub.Size())
	}
	if !sub.HasEdge(0, 1) || sub.HasEdge(1, 2) || !sub.HasEdge(2, 3) {
		t.Errorf("Subgraph(0b101) = %v", sub)
	}
}

func TestComponents(t *testing.T) {
	g := MustNew(6, Edge{4, 5}, Edge{0, 2}, Edge{2, 3})
	got := g.Components()
	want := [][]int{{0, 2, 3}, {1}, {4, 5}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Components()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if g.IsConnected() {
		t.Error("IsConnected() = true for a disconnected graph")
	}
	if !Bowtie().IsConnected() {
		t.Error("IsConnected() = false for the bowtie")
	}
}

func TestComponentSizes(t *testing.T) {
	g := Bowtie()
	tests := []struct {
		mask uint64
		want string
	}{
		{0, "1,1,1,1,1"},
		{1 << 0, "2,1,1,1"},
		{1<<0 | 1<<1, "3,1,1"},
		{1<<0 | 1<<5, "2,2,1"},
		{1<<0 | 1<<1 | 1<<3 | 1<<4, "5"},
		{1<<63 - 1, "5"},
	}
	for _, tt := range tests {
		if got := g.ComponentSizes(tt.mask).Key(); got != tt.want {
			t.Errorf("ComponentSizes(%b) = %s, want %s", tt.mask, got, tt.want)
		}
	}
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)
	if !uf.Union(0, 1) || !uf.Union(3, 4) || uf.Union(1, 0) {
		t.Fatal("Union results are wrong")
	}
	if uf.Sets() != 3 || !uf.Connected(0, 1) || uf.Connected(1, 2) {
		t.Errorf("Sets() = %d", uf.Sets())
	}
	sizes := uf.AppendSizes(nil)
	slices.Sort(sizes)
	if !slices.Equal(sizes, []int{1, 2, 2}) {
		t.Errorf("AppendSizes() = %v", sizes)
	}
	uf.Reset()
	if uf.Sets() != 5 || uf.Connected(0, 1) {
		t.Error("Reset() did not split the sets")
	}
}

func TestGraph6(t *testing.T) {
	for _, g := range []*Graph{Empty(0), Empty(3), Bowtie(), Kite(), Cycle(7), Complete(6)} {
		s := g.Graph6()
		back, err := ParseGraph6(s)
		if err != nil {
			t.Fatalf("ParseGraph6(%q) error: %v", s, err)
		}
		if back.Order() != g.Order() || back.Size() != g.Size() {
			t.Errorf("ParseGraph6(%q) = %v, want %v", s, back, g)
		}
		for _, e := range g.Edges() {
			if !back.HasEdge(e.U, e.V) {
				t.Errorf("ParseGraph6(%q) lost edge %v", s, e)
			}
		}
	}

	if got := Complete(3).Graph6(); got != "Bw" {
		t.Errorf("K3 graph6 = %q, want Bw", got)
	}
	for _, bad := range []string{"", "B", "Bww", "\x01"} {
		if _, err := ParseGraph6(bad); !errors.Is(err, ErrInvalidGraph6) {
			t.Errorf("ParseGraph6(%q) error = %v, want ErrInvalidGraph6", bad, err)
		}
	}
}

func TestGonumRoundTrip(t *testing.T) {
	g := Kite()
	back, err := FromGonum(g.ToGonum())
	if err != nil {
		t.Fatalf("FromGonum error: %v", err)
	}
	if back.Graph6() != g.Graph6() {
		t.Errorf("FromGonum(ToGonum(kite)) = %v, want %v", back, g)
	}
	if n := g.ToGonum().Nodes().Len(); n != 5 {
		t.Errorf("ToGonum nodes = %d, want 5", n)
	}
	if n := Empty(4).ToGonum().Nodes().Len(); n != 4 {
		t.Errorf("ToGonum keeps isolated vertices: got %d nodes, want 4", n)
	}
}

func TestJSON(t *testing.T) {
	data, err := Marshal(Path(3))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	g, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if g.String() != "3: 0-1, 1-2" {
		t.Errorf("round trip = %q", g.String())
	}

	if _, err := Unmarshal([]byte(`{"order": 2, "edges": [[0, 5]]}`)); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("Unmarshal out-of-range error = %v", err)
	}
	if _, err := Unmarshal([]byte(`{"order":`)); err == nil {
		t.Error("Unmarshal should fail on truncated input")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kite.json")
	if err := WriteFile(Kite(), path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if g.String() != Kite().String() {
		t.Errorf("ReadFile = %v, want %v", g, Kite())
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v", err)
	}
}

func TestParseDSL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0-1", "2: 0-1", false},
		{"0-1-2", "3: 0-1, 1-2", false},
		{"4: 0-1-2-3-0", "4: 0-1, 1-2, 2-3, 0-3", false},
		{"6: 0-1, 2-3", "6: 0-1, 2-3", false},
		{" 3 : 0 - 1 ", "3: 0-1", false},
		{"5:", "5:", false},
		{"2: 0-4", "", true},
		{"0-0", "", true},
		{"0-1, 1-0", "", true},
		{"0--1", "", true},
	}
	for _, tt := range tests {
		g, err := ParseDSL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDSL(%q) = %v, want error", tt.in, g)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDSL(%q) error: %v", tt.in, err)
			continue
		}
		if g.String() != tt.want {
			t.Errorf("ParseDSL(%q) = %q, want %q", tt.in, g.String(), tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		order int
		size  int
	}{
		{`{"order": 3, "edges": [[0, 1]]}`, 3, 1},
		{"kite", 5, 6},
		{"k4", 4, 6},
		{"0-1-2", 3, 2},
		{"Bw", 3, 3},
	}
	for _, tt := range tests {
		g, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if g.Order() != tt.order || g.Size() != tt.size {
			t.Errorf("Parse(%q) = %v, want order %d size %d", tt.in, g, tt.order, tt.size)
		}
	}
	if _, err := Parse("not a graph"); err == nil {
		t.Error("Parse should reject garbage")
	}
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		name  string
		order int
		size  int
	}{
		{"bowtie", 5, 6},
		{"kite", 5, 6},
		{"diamond", 4, 5},
		{"claw", 4, 3},
		{"triangle", 3, 3},
		{"path5", 5, 4},
		{"cycle6", 6, 6},
		{"cycle2", 2, 1},
		{"k5", 5, 10},
		{"star4", 5, 4},
		{"empty3", 3, 0},
		{"path0", 0, 0},
		{"KITE", 5, 6},
	}
	for _, tt := range tests {
		g, err := Fixture(tt.name)
		if err != nil {
			t.Errorf("Fixture(%q) error: %v", tt.name, err)
			continue
		}
		if g.Order() != tt.order || g.Size() != tt.size {
			t.Errorf("Fixture(%q) order %d size %d, want %d %d", tt.name, g.Order(), g.Size(), tt.order, tt.size)
		}
	}

	for _, bad := range []string{"", "k", "pathx", "k-1", "k1000", "hexagon"} {
		if _, err := Fixture(bad); !errors.Is(err, ErrUnknownFixture) {
			t.Errorf("Fixture(%q) error = %v, want ErrUnknownFixture", bad, err)
		}
	}

	names := FixtureNames()
	want := []string{"bowtie", "claw", "diamond", "kite", "triangle", "cycle<n>", "empty<n>", "k<n>", "path<n>", "star<n>"}
	if !slices.Equal(names, want) {
		t.Errorf("FixtureNames() = %v, want %v", names, want)
	}
}

func TestGlue(t *testing.T) {
	k3 := Complete(3)
	g, err := Glue(k3, 0, k3, 0)
	if err != nil {
		t.Fatalf("Glue error: %v", err)
	}
	if g.Order() != 5 || g.Size() != 6 {
		t.Fatalf("Glue(K3, K3) order %d size %d", g.Order(), g.Size())
	}
	if !Isomorphic(g, Bowtie()) {
		t.Errorf("Glue(K3, 0, K3, 0) = %v is not the bowtie", g)
	}

	// Diamond vertex 0 has degree 2; a pendant edge there gives the kite.
	kite, err := Glue(Diamond(), 0, Complete(2), 0)
	if err != nil {
		t.Fatalf("Glue error: %v", err)
	}
	if !Isomorphic(kite, Kite()) {
		t.Errorf("Glue(diamond, 0, K2, 0) = %v is not the kite", kite)
	}

	// Relabelling: h's vertices other than u follow g's in ascending order.
	p, _ := Glue(Path(2), 1, Path(3), 1)
	if p.String() != "4: 0-1, 1-2, 1-3" {
		t.Errorf("Glue(P2, 1, P3, 1) = %q", p.String())
	}

	for _, tt := range []struct{ v, u int }{{-1, 0}, {3, 0}, {0, 3}} {
		if _, err := Glue(k3, tt.v, k3, tt.u); !errors.Is(err, ErrVertexOutOfRange) {
			t.Errorf("Glue(v=%d, u=%d) error = %v", tt.v, tt.u, err)
		}
	}
}

func TestGlueSizes(t *testing.T) {
	graphs := []*Graph{Complete(1), Path(3), Cycle(4), Bowtie(), Star(3)}
	for _, g := range graphs {
		for _, h := range graphs {
			for v := 0; v < g.Order(); v++ {
				for u := 0; u < h.Order(); u++ {
					glued, err := Glue(g, v, h, u)
					if err != nil {
						t.Fatalf("Glue error: %v", err)
					}
					if glued.Order() != g.Order()+h.Order()-1 || glued.Size() != g.Size()+h.Size() {
						t.Errorf("Glue(%v, %d, %v, %d) = %v", g, v, h, u, glued)
					}
				}
			}
		}
	}
}

func TestGlueAll(t *testing.T) {
	tests := []struct {
		name string
		g, h *Graph
		want int
	}{
		{"TriangleTriangle", Complete(3), Complete(3), 1},
		{"PathEdge", Path(3), Complete(2), 2},
		{"DiamondEdge", Diamond(), Complete(2), 2},
		{"PathPath", Path(3), Path(3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GlueAll(tt.g, tt.h); len(got) != tt.want {
				t.Errorf("GlueAll() returned %d classes, want %d", len(got), tt.want)
			}
		})
	}
}

func TestIsomorphic(t *testing.T) {
	tests := []struct {
		name string
		g, h *Graph
		want bool
	}{
		{"BowtieKite", Bowtie(), Kite(), false},
		{"Relabelled", Path(4), MustNew(4, Edge{2, 0}, Edge{0, 3}, Edge{3, 1}), true},
		{"ClawVsPath", Claw(), Path(4), false},
		{"CycleVsTwoTriangles", Cycle(6), MustNew(6, Edge{0, 1}, Edge{1, 2}, Edge{0, 2}, Edge{3, 4}, Edge{4, 5}, Edge{3, 5}), false},
		{"Empty", Empty(0), Empty(0), true},
		{"CompleteRelabelled", Complete(6), Complete(6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Isomorphic(tt.g, tt.h); got != tt.want {
				t.Errorf("Isomorphic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	in := []*Graph{Path(3), MustNew(3, Edge{0, 2}, Edge{1, 2}), Complete(3), Path(3)}
	if got := Unique(in); len(got) != 2 || got[0] != in[0] || got[1] != in[2] {
		t.Errorf("Unique() kept %d graphs", len(got))
	}
}

func disjointCopies(g *Graph, k int) *Graph {
	var edges []Edge
	for i := range k {
		for _, e := range g.edges {
			edges = append(edges, Edge{U: e.U + i*g.n, V: e.V + i*g.n})
		}
	}
	return MustNew(k*g.n, edges...)
}

// spider returns the star with legs paths of length l each.
func spider(legs, l int) *Graph {
	var edges []Edge
	next := 1
	for range legs {
		prev := 0
		for range l {
			edges = append(edges, Edge{U: prev, V: next})
			prev = next
			next++
		}
	}
	return MustNew(next, edges...)
}

func petersen() *Graph {
	var edges []Edge
	for i := range 5 {
		edges = append(edges, Edge{i, (i + 1) % 5}, Edge{i, i + 5}, Edge{5 + i, 5 + (i+2)%5})
	}
	return MustNew(10, edges...)
}

func hypercube(d int) *Graph {
	var edges []Edge
	for v := range 1 << d {
		for i := range d {
			if w := v ^ 1<<i; v < w {
				edges = append(edges, Edge{v, w})
			}
		}
	}
	return MustNew(1<<d, edges...)
}

// shuffled relabels g by reversing and rotating the vertex order.
func shuffled(g *Graph) *Graph {
	perm := make([]int, g.n)
	for v := range perm {
		perm[v] = (2*g.n - 1 - v + 3) % g.n
	}
	return g.relabel(perm)
}

func TestCanonicalSymmetricGraphs(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
	}{
		{"Matching", disjointCopies(Complete(2), 12)},
		{"Triangles", disjointCopies(Complete(3), 8)},
		{"Edgeless", Empty(40)},
		{"Star", Star(30)},
		{"Spider", spider(20, 2)},
		{"LongSpider", spider(8, 4)},
		{"Cycle", Cycle(30)},
		{"Petersen", petersen()},
		{"Hypercube", hypercube(4)},
		{"CompleteBipartite", MustNew(10, func() []Edge {
			var edges []Edge
			for u := range 5 {
				for v := 5; v < 10; v++ {
					edges = append(edges, Edge{u, v})
				}
			}
			return edges
		}()...)},
		{"MixedComponents", MustNew(9, Edge{0, 1}, Edge{2, 3}, Edge{3, 4}, Edge{4, 2}, Edge{6, 7})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			key, err := Canonical(ctx, tt.g)
			if err != nil {
				t.Fatalf("Canonical(%v) error = %v", tt.g, err)
			}
			other, err := Canonical(ctx, shuffled(tt.g))
			if err != nil {
				t.Fatalf("Canonical(shuffled) error = %v", err)
			}
			if key != other {
				t.Errorf("Canonical differs after relabelling: %q vs %q", key, other)
			}
			back, err := ParseGraph6(key)
			if err != nil {
				t.Fatalf("ParseGraph6(%q) error = %v", key, err)
			}
			if back.Order() != tt.g.Order() || back.Size() != tt.g.Size() {
				t.Errorf("canonical form has %d vertices, %d edges", back.Order(), back.Size())
			}
			if !slices.Equal(back.DegreeSequence(), tt.g.DegreeSequence()) {
				t.Errorf("canonical form degrees = %v, want %v", back.DegreeSequence(), tt.g.DegreeSequence())
			}
		})
	}
}

func TestCanonicalDistinguishes(t *testing.T) {
	tests := []struct {
		name string
		g, h *Graph
	}{
		{"CycleVsTriangles", Cycle(6), disjointCopies(Complete(3), 2)},
		{"SpiderVsCaterpillar", spider(3, 2), MustNew(7, Edge{0, 1}, Edge{1, 2}, Edge{2, 3}, Edge{3, 4}, Edge{1, 5}, Edge{3, 6})},
		{"ComponentSizes", MustNew(6, Edge{0, 1}, Edge{1, 2}, Edge{3, 4}), MustNew(6, Edge{0, 1}, Edge{2, 3}, Edge{4, 5})},
		{"PetersenVsPrism", petersen(), MustNew(10,
			Edge{0, 1}, Edge{1, 2}, Edge{2, 3}, Edge{3, 4}, Edge{4, 0},
			Edge{5, 6}, Edge{6, 7}, Edge{7, 8}, Edge{8, 9}, Edge{9, 5},
			Edge{0, 5}, Edge{1, 6}, Edge{2, 7}, Edge{3, 8}, Edge{4, 9})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CanonicalKey(tt.g) == CanonicalKey(tt.h) {
				t.Errorf("CanonicalKey(%v) == CanonicalKey(%v)", tt.g, tt.h)
			}
		})
	}
}

func TestCanonicalCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Canonical(ctx, petersen()); !errors.Is(err, context.Canceled) {
		t.Errorf("Canonical(canceled) error = %v, want context.Canceled", err)
	}
	if _, err := GlueAllContext(ctx, Path(3), Path(3)); !errors.Is(err, context.Canceled) {
		t.Errorf("GlueAllContext(canceled) error = %v, want context.Canceled", err)
	}
	if _, err := UniqueContext(ctx, []*Graph{Path(3)}); !errors.Is(err, context.Canceled) {
		t.Errorf("UniqueContext(canceled) error = %v, want context.Canceled", err)
	}
}

func TestOrderTooLarge(t *testing.T) {
	inputs := []string{
		"2000000000:",
		fmt.Sprintf("%d:", MaxOrder+1),
		fmt.Sprintf("0-%d", MaxOrder),
		fmt.Sprintf(`{"order": %d, "edges": []}`, MaxOrder+1),
	}
	for _, in := range inputs {
		if _, err := Parse(in); !errors.Is(err, ErrOrderTooLarge) {
			t.Errorf("Parse(%q) error = %v, want ErrOrderTooLarge", in, err)
		}
	}
	if g, err := Parse(fmt.Sprintf("%d:", MaxOrder)); err != nil || g.Order() != MaxOrder {
		t.Errorf("Parse(MaxOrder) = %v, %v", g, err)
	}

	if _, err := GlueAllContext(context.Background(), Empty(MaxOrder), Path(3)); !errors.Is(err, ErrOrderTooLarge) {
		t.Errorf("GlueAllContext past MaxOrder error = %v, want ErrOrderTooLarge", err)
	}
}
