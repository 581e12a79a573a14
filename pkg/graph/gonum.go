package graph

import (
	"errors"
	"fmt"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/graph6"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrInvalidGraph6 is returned by [ParseGraph6] for malformed input.
var ErrInvalidGraph6 = errors.New("invalid graph6 string")

// ToGonum returns g as a gonum undirected graph whose node IDs are the
// vertex labels. Isolated vertices are included.
func (g *Graph) ToGonum() *simple.UndirectedGraph {
	out := simple.NewUndirectedGraph()
	for v := 0; v < g.n; v++ {
		out.AddNode(simple.Node(v))
	}
	for _, e := range g.edges {
		out.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return out
}

// FromGonum converts any gonum undirected graph. Nodes are relabelled
// 0..n-1 in ascending ID order.
func FromGonum(src gonum.Undirected) (*Graph, error) {
	nodes := gonum.NodesOf(src.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	var edges []Edge
	for _, uid := range ids {
		it := src.From(uid)
		for it.Next() {
			vid := it.Node().ID()
			if vid < uid {
				continue
			}
			edges = append(edges, Edge{U: index[uid], V: index[vid]})
		}
	}
	slices.SortFunc(edges, compareEdges)
	return New(len(ids), edges...)
}

// Graph6 returns the graph6 encoding of g with vertices in label order.
func (g *Graph) Graph6() string {
	return string(graph6.Encode(g.ToGonum()))
}

// ParseGraph6 decodes a graph6 string.
func ParseGraph6(s string) (*Graph, error) {
	g6 := graph6.Graph(s)
	if !graph6.IsValid(g6) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGraph6, s)
	}
	if n := g6.Nodes().Len(); n > MaxOrder {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrOrderTooLarge, n, MaxOrder)
	}
	return FromGonum(g6)
}

func compareEdges(a, b Edge) int {
	if a.U != b.U {
		return a.U - b.U
	}
	return a.V - b.V
}
