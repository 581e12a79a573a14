package graph

import (
	"errors"
	"fmt"
	"slices"
)

// MaxOrder is the largest vertex count [New] accepts. Callers that expose
// graphs to untrusted input usually enforce a much smaller limit of their own.
const MaxOrder = 1 << 12

var (
	// ErrNegativeOrder is returned by [New] when the vertex count is negative.
	ErrNegativeOrder = errors.New("vertex count must not be negative")

	// ErrOrderTooLarge is returned by [New] when the vertex count exceeds
	// [MaxOrder].
	ErrOrderTooLarge = errors.New("vertex count too large")

	// ErrVertexOutOfRange is returned when an edge or vertex argument lies
	// outside 0..n-1.
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned by [New] for an edge joining a vertex to itself.
	// Only simple graphs are supported.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned by [New] when the same unordered pair
	// appears twice.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Edge is an unordered pair of vertices. Edges returned by a [Graph] always
// have U < V.
type Edge struct {
	U, V int
}

// normalized returns e with U < V.
func (e Edge) normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.U, e.V) }

// Graph is a finite simple undirected graph on the vertices 0..n-1.
//
// The zero value is the empty graph on no vertices. Graphs are immutable.
type Graph struct {
	n     int
	edges []Edge
	adj   [][]int
	index map[Edge]int
}

// New returns the graph on n vertices with the given edges. Edges keep their
// insertion order, which is the bit order used by edge-subset masks.
func New(n int, edges ...Edge) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeOrder, n)
	}
	if n > MaxOrder {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrOrderTooLarge, n, MaxOrder)
	}
	g := &Graph{
		n:     n,
		edges: make([]Edge, 0, len(edges)),
		adj:   make([][]int, n),
		index: make(map[Edge]int, len(edges)),
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %v on %d vertices: %w", e, n, ErrVertexOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("edge %v: %w", e, ErrSelfLoop)
		}
		e = e.normalized()
		if _, ok := g.index[e]; ok {
			return nil, fmt.Errorf("edge %v: %w", e, ErrDuplicateEdge)
		}
		g.index[e] = len(g.edges)
		g.edges = append(g.edges, e)
		g.adj[e.U] = append(g.adj[e.U], e.V)
		g.adj[e.V] = append(g.adj[e.V], e.U)
	}
	for _, nb := range g.adj {
		slices.Sort(nb)
	}
	return g, nil
}

// MustNew is like [New] but panics on invalid input. It is intended for
// fixtures and tests.
func MustNew(n int, edges ...Edge) *Graph {
	g, err := New(n, edges...)
	if err != nil {
		panic(err)
	}
	return g
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Edge returns the i-th edge.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Degrees returns the degree of every vertex, indexed by vertex.
func (g *Graph) Degrees() []int {
	out := make([]int, g.n)
	for v, nb := range g.adj {
		out[v] = len(nb)
	}
	return out
}

// DegreeSequence returns the vertex degrees in non-increasing order.
func (g *Graph) DegreeSequence() []int {
	out := g.Degrees()
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}

// Neighbors returns the sorted neighbors of v.
func (g *Graph) Neighbors(v int) []int { return slices.Clone(g.adj[v]) }

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.index[Edge{U: u, V: v}.normalized()]
	return ok
}

// Subgraph returns the spanning subgraph keeping edge i when bit i of mask is
// set. Bits beyond Size are ignored.
func (g *Graph) Subgraph(mask uint64) *Graph {
	var keep []Edge
	for i, e := range g.edges {
		if i < 64 && mask&(1<<uint(i)) != 0 {
			keep = append(keep, e)
		}
	}
	return MustNew(g.n, keep...)
}

// String formats the graph in the edge-list DSL, e.g. "3: 0-1, 1-2".
func (g *Graph) String() string {
	b := fmt.Appendf(nil, "%d:", g.n)
	for i, e := range g.edges {
		if i > 0 {
			b = append(b, ',')
		}
		b = fmt.Appendf(b, " %d-%d", e.U, e.V)
	}
	return string(b)
}

// relabel returns the graph with vertex v renamed to perm[v].
func (g *Graph) relabel(perm []int) *Graph {
	edges := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		edges[i] = Edge{U: perm[e.U], V: perm[e.V]}
	}
	return MustNew(g.n, edges...)
}
