package trees

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/chromatic/pkg/csf"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func TestRootedCounts(t *testing.T) {
	want := []int{0, 1, 1, 2, 4, 9, 20, 48, 115, 286, 719, 1842}
	for n, w := range want {
		count := 0
		for range Rooted(n) {
			count++
		}
		if count != w {
			t.Errorf("Rooted(%d) yielded %d trees, want %d", n, count, w)
		}
	}
}

func TestRootedOrder(t *testing.T) {
	var got []LevelSequence
	for l := range Rooted(4) {
		got = append(got, slices.Clone(l))
	}
	want := []LevelSequence{
		{0, 1, 2, 3},
		{0, 1, 2, 2},
		{0, 1, 2, 1},
		{0, 1, 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Rooted(4) = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Rooted(4)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRootedStopsEarly(t *testing.T) {
	count := 0
	for range Rooted(8) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestLevelSequence(t *testing.T) {
	l := LevelSequence{0, 1, 2, 2, 1}
	if got := l.Parents(); !slices.Equal(got, []int{-1, 0, 1, 1, 0}) {
		t.Errorf("Parents() = %v", got)
	}
	g := l.Graph()
	if g.String() != "5: 0-1, 1-2, 1-3, 0-4" {
		t.Errorf("Graph() = %v", g)
	}
	if LevelSequence(nil).Graph().Order() != 0 {
		t.Error("empty level sequence should give the empty graph")
	}
}

func TestFreeCounts(t *testing.T) {
	want := []int{0, 1, 1, 1, 2, 3, 6, 11, 23, 47, 106, 235, 551}
	for n, w := range want {
		trees := Free(n)
		if len(trees) != w {
			t.Errorf("Free(%d) = %d trees, want %d", n, len(trees), w)
		}
		for _, tr := range trees {
			if tr.Order() != n || tr.Size() != n-1 || !tr.IsConnected() {
				t.Errorf("Free(%d) produced a non-tree %v", n, tr)
			}
		}
	}
}

func TestCanonical(t *testing.T) {
	a, err := Canonical(graph.Path(5))
	if err != nil {
		t.Fatalf("Canonical error: %v", err)
	}
	b, _ := Canonical(graph.MustNew(5, graph.Edge{U: 3, V: 0}, graph.Edge{U: 0, V: 4}, graph.Edge{U: 4, V: 1}, graph.Edge{U: 1, V: 2}))
	if a != b {
		t.Errorf("relabelled paths differ: %q vs %q", a, b)
	}
	c, _ := Canonical(graph.Star(4))
	if a == c {
		t.Error("path and star should differ")
	}
	if got, _ := Canonical(graph.Path(1)); got != "()" {
		t.Errorf("Canonical(K1) = %q, want ()", got)
	}

	for _, g := range []*graph.Graph{graph.Empty(0), graph.Empty(2), graph.Cycle(4), graph.MustNew(4, graph.Edge{U: 0, V: 1}, graph.Edge{U: 1, V: 2}, graph.Edge{U: 0, V: 2})} {
		if _, err := Canonical(g); !errors.Is(err, ErrNotTree) {
			t.Errorf("Canonical(%v) error = %v, want ErrNotTree", g, err)
		}
	}
}

func TestCanonicalAgreesWithIsomorphism(t *testing.T) {
	trees := Free(8)
	for i := range trees {
		for j := i + 1; j < len(trees); j++ {
			if graph.Isomorphic(trees[i], trees[j]) {
				t.Errorf("Free(8) returned isomorphic trees %v and %v", trees[i], trees[j])
			}
		}
	}
}

func TestCohorts(t *testing.T) {
	tests := []struct {
		n, cohorts, multi int
	}{
		{5, 3, 0},
		{6, 5, 1},
		{7, 7, 3},
		{8, 11, 5},
		{9, 15, 10},
	}
	for _, tt := range tests {
		cs := Cohorts(Free(tt.n))
		multi := 0
		for _, c := range cs {
			if len(c.Trees) > 1 {
				multi++
			}
			for _, tr := range c.Trees {
				if !slices.Equal(tr.DegreeSequence(), c.DegreeSequence) {
					t.Errorf("tree %v in cohort %v", tr, c.DegreeSequence)
				}
			}
		}
		if len(cs) != tt.cohorts || multi != tt.multi {
			t.Errorf("Cohorts(Free(%d)): %d cohorts, %d shared; want %d, %d", tt.n, len(cs), multi, tt.cohorts, tt.multi)
		}
		if first := cs[0].DegreeSequence; first[0] != tt.n-1 {
			t.Errorf("first cohort %v should be the star", first)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		n, trees, cohorts, candidates, pairs int
	}{
		{4, 2, 2, 0, 0},
		{6, 6, 5, 2, 1},
		{7, 11, 7, 7, 5},
		{8, 23, 11, 17, 23},
		{9, 47, 15, 42, 96},
	}
	for _, tt := range tests {
		var calls atomic.Int32
		r, err := Check(context.Background(), tt.n, WithWorkers(3), WithProgress(func(done, total int) {
			calls.Add(1)
			if done > total {
				t.Errorf("progress %d/%d", done, total)
			}
		}))
		if err != nil {
			t.Fatalf("Check(%d) error: %v", tt.n, err)
		}
		if r.Trees != tt.trees || r.Cohorts != tt.cohorts || r.Candidates != tt.candidates || r.Pairs != tt.pairs {
			t.Errorf("Check(%d) = %+v, want trees %d cohorts %d candidates %d pairs %d",
				tt.n, r, tt.trees, tt.cohorts, tt.candidates, tt.pairs)
		}
		if !r.Holds() {
			t.Errorf("Check(%d) found collisions: %v", tt.n, r.Collisions)
		}
		if int(calls.Load()) != tt.candidates {
			t.Errorf("progress called %d times, want %d", calls.Load(), tt.candidates)
		}
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Check(ctx, 9, WithWorkers(2)); !errors.Is(err, context.Canceled) {
		t.Errorf("Check error = %v, want context.Canceled", err)
	}
}

func TestCollisions(t *testing.T) {
	// Not trees, but the bowtie and the kite share a table, which is all the
	// comparison looks at.
	c := Cohort{Trees: []*graph.Graph{graph.Bowtie(), graph.Cycle(5), graph.Kite()}}
	tables := [][]*csf.Table{make([]*csf.Table, 3)}
	for i, g := range c.Trees {
		tables[0][i] = csf.PowerSum(g)
	}
	got := collisions([]Cohort{c}, tables)
	if len(got) != 1 || got[0].A != c.Trees[0] || got[0].B != c.Trees[2] {
		t.Errorf("collisions() = %v, want bowtie/kite", got)
	}
}
