package graph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownFixture is returned by [Fixture] for names it does not know.
var ErrUnknownFixture = errors.New("unknown fixture")

// maxFixtureOrder bounds the parametric fixtures so a typo cannot allocate
// an enormous graph.
const maxFixtureOrder = 64

// Bowtie returns two triangles sharing vertex 2 (Stanley, Fig. 1).
func Bowtie() *Graph {
	return MustNew(5,
		Edge{0, 1}, Edge{0, 2}, Edge{1, 2},
		Edge{2, 3}, Edge{2, 4}, Edge{3, 4},
	)
}

// Kite returns a diamond with a pendant edge (Stanley, Fig. 1). It has the
// same chromatic symmetric function as [Bowtie] but is not isomorphic to it.
func Kite() *Graph {
	return MustNew(5,
		Edge{0, 1}, Edge{0, 2}, Edge{0, 3},
		Edge{1, 3}, Edge{2, 3}, Edge{2, 4},
	)
}

// Diamond returns K4 minus the edge 0-3.
func Diamond() *Graph {
	return MustNew(4, Edge{0, 1}, Edge{0, 2}, Edge{1, 2}, Edge{1, 3}, Edge{2, 3})
}

// Claw returns the star with three leaves, K(1,3).
func Claw() *Graph { return Star(3) }

// Empty returns n isolated vertices.
func Empty(n int) *Graph { return MustNew(n) }

// Path returns the path 0-1-...-(n-1).
func Path(n int) *Graph {
	var edges []Edge
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{i - 1, i})
	}
	return MustNew(n, edges...)
}

// Cycle returns the cycle on n vertices. For n < 3 there is no simple cycle
// and the path on n vertices is returned instead.
func Cycle(n int) *Graph {
	if n < 3 {
		return Path(n)
	}
	edges := Path(n).Edges()
	return MustNew(n, append(edges, Edge{0, n - 1})...)
}

// Complete returns K_n.
func Complete(n int) *Graph {
	var edges []Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			edges = append(edges, Edge{u, v})
		}
	}
	return MustNew(n, edges...)
}

// Star returns K(1,n): centre 0 joined to n leaves.
func Star(n int) *Graph {
	var edges []Edge
	for i := 1; i <= n; i++ {
		edges = append(edges, Edge{0, i})
	}
	return MustNew(n+1, edges...)
}

var namedFixtures = map[string]func() *Graph{
	"bowtie":   Bowtie,
	"claw":     Claw,
	"diamond":  Diamond,
	"kite":     Kite,
	"triangle": func() *Graph { return Complete(3) },
}

// Families are tried after the fixed names, so "kite" never reaches "k".
var fixtureFamilies = []struct {
	prefix string
	build  func(int) *Graph
}{
	{"cycle", Cycle},
	{"empty", Empty},
	{"path", Path},
	{"star", Star},
	{"k", Complete},
}

// Fixture returns a named graph. Besides the fixed names listed by
// [FixtureNames] it accepts a family prefix followed by a size: "path5",
// "cycle6", "k4", "star4", "empty3".
func Fixture(name string) (*Graph, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if build, ok := namedFixtures[name]; ok {
		return build(), nil
	}
	for _, f := range fixtureFamilies {
		rest, ok := strings.CutPrefix(name, f.prefix)
		if !ok || rest == "" {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > maxFixtureOrder {
			break
		}
		return f.build(n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFixture, name)
}

// FixtureNames lists the fixed fixture names followed by the parametric
// families, written with an "<n>" placeholder.
func FixtureNames() []string {
	names := make([]string, 0, len(namedFixtures)+len(fixtureFamilies))
	for name := range namedFixtures {
		names = append(names, name)
	}
	slices.Sort(names)
	families := make([]string, 0, len(fixtureFamilies))
	for _, f := range fixtureFamilies {
		families = append(families, f.prefix+"<n>")
	}
	slices.Sort(families)
	return append(names, families...)
}
