package trees

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// ErrNotTree is returned by [Canonical] for graphs that are not trees.
var ErrNotTree = errors.New("graph is not a tree")

// LevelSequence lists the depth of every vertex of a rooted tree in
// pre-order. The root has level 0.
type LevelSequence []int

// Parents returns the parent of every vertex; the root's parent is -1. The
// parent of i is the last vertex before i one level up.
func (l LevelSequence) Parents() []int {
	parents := make([]int, len(l))
	last := make([]int, len(l)+1)
	for i, lv := range l {
		if lv == 0 {
			parents[i] = -1
		} else {
			parents[i] = last[lv-1]
		}
		last[lv] = i
	}
	return parents
}

// Graph returns the tree with an edge from every vertex to its parent.
func (l LevelSequence) Graph() *graph.Graph {
	edges := make([]graph.Edge, 0, max(len(l)-1, 0))
	for i, p := range l.Parents() {
		if p >= 0 {
			edges = append(edges, graph.Edge{U: p, V: i})
		}
	}
	return graph.MustNew(len(l), edges...)
}

// Rooted yields every rooted tree on n vertices exactly once, starting from
// the path [0 1 ... n-1] and ending with the star [0 1 ... 1]. The yielded
// slice is reused; clone it to keep it.
func Rooted(n int) iter.Seq[LevelSequence] {
	return func(yield func(LevelSequence) bool) {
		if n <= 0 {
			return
		}
		l := make(LevelSequence, n)
		for i := range l {
			l[i] = i
		}
		for {
			if !yield(l) {
				return
			}
			p := -1
			for i := n - 1; i >= 0; i-- {
				if l[i] > 1 {
					p = i
					break
				}
			}
			if p < 0 {
				return
			}
			q := p - 1
			for l[q] != l[p]-1 {
				q--
			}
			for i := p; i < n; i++ {
				l[i] = l[i-(p-q)]
			}
		}
	}
}

// Free returns one tree per isomorphism class on n vertices, in the order
// their first rooted representative is generated.
func Free(n int) []*graph.Graph {
	seen := make(map[string]bool)
	var out []*graph.Graph
	for l := range Rooted(n) {
		g := l.Graph()
		key, _ := Canonical(g)
		if !seen[key] {
			seen[key] = true
			out = append(out, g)
		}
	}
	return out
}

// Canonical returns a string equal for two trees exactly when they are
// isomorphic: the smallest parenthesis encoding of the tree rooted at one of
// its centres, with children sorted.
func Canonical(g *graph.Graph) (string, error) {
	n := g.Order()
	if n == 0 || g.Size() != n-1 || !g.IsConnected() {
		return "", ErrNotTree
	}
	best := ""
	for _, c := range centres(g) {
		enc := encode(g, c, -1)
		if best == "" || enc < best {
			best = enc
		}
	}
	return best, nil
}

// centres peels leaves until one or two vertices remain.
func centres(g *graph.Graph) []int {
	n := g.Order()
	deg := g.Degrees()
	removed := make([]bool, n)
	var leaves []int
	for v, d := range deg {
		if d <= 1 {
			leaves = append(leaves, v)
		}
	}
	remaining := n
	for remaining > 2 {
		var next []int
		for _, v := range leaves {
			removed[v] = true
			remaining--
			for _, u := range g.Neighbors(v) {
				if removed[u] {
					continue
				}
				deg[u]--
				if deg[u] == 1 {
					next = append(next, u)
				}
			}
		}
		leaves = next
	}
	var out []int
	for v := range n {
		if !removed[v] {
			out = append(out, v)
		}
	}
	return out
}

func encode(g *graph.Graph, v, parent int) string {
	var children []string
	for _, u := range g.Neighbors(v) {
		if u != parent {
			children = append(children, encode(g, u, v))
		}
	}
	slices.Sort(children)
	return "(" + strings.Join(children, "") + ")"
}
