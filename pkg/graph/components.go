package graph

import (
	"slices"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/chromatic/pkg/partition"
)

// Components returns the connected components of g. Each component is sorted
// and components are ordered by their smallest vertex.
func (g *Graph) Components() [][]int {
	ccs := topo.ConnectedComponents(g.ToGonum())
	out := make([][]int, 0, len(ccs))
	for _, cc := range ccs {
		comp := make([]int, len(cc))
		for i, n := range cc {
			comp[i] = int(n.ID())
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

// IsConnected reports whether g has exactly one component. The empty graph
// on no vertices is not connected.
func (g *Graph) IsConnected() bool {
	uf := NewUnionFind(g.n)
	for _, e := range g.edges {
		uf.Union(e.U, e.V)
	}
	return g.n > 0 && uf.Sets() == 1
}

// ComponentSizes returns the partition formed by the component sizes of the
// spanning subgraph selected by mask. Bit i selects edge i.
func (g *Graph) ComponentSizes(mask uint64) partition.Partition {
	uf := NewUnionFind(g.n)
	for i, e := range g.edges {
		if i < 64 && mask&(1<<uint(i)) != 0 {
			uf.Union(e.U, e.V)
		}
	}
	return partition.New(uf.AppendSizes(nil)...)
}
