package graph

import (
	"context"
	"fmt"
)

// Glue returns the union of g and h with vertex v of g identified with
// vertex u of h. The vertices of g keep their labels; the other vertices of h
// are relabelled g.Order(), g.Order()+1, ... in ascending order, and every
// edge of h incident to u is attached to v instead.
//
// The result has g.Order()+h.Order()-1 vertices and g.Size()+h.Size() edges.
func Glue(g *Graph, v int, h *Graph, u int) (*Graph, error) {
	if v < 0 || v >= g.n {
		return nil, fmt.Errorf("glue vertex %d of %d: %w", v, g.n, ErrVertexOutOfRange)
	}
	if u < 0 || u >= h.n {
		return nil, fmt.Errorf("glue vertex %d of %d: %w", u, h.n, ErrVertexOutOfRange)
	}

	label := func(w int) int {
		switch {
		case w == u:
			return v
		case w < u:
			return g.n + w
		default:
			return g.n + w - 1
		}
	}
	edges := g.Edges()
	for _, e := range h.edges {
		edges = append(edges, Edge{U: label(e.U), V: label(e.V)})
	}
	return New(g.n+h.n-1, edges...)
}

// GlueAll returns every gluing of g and h, one graph per isomorphism class,
// in the order the classes are first produced (v of g outer, u of h inner).
func GlueAll(g, h *Graph) []*Graph {
	out, err := GlueAllContext(context.Background(), g, h)
	if err != nil {
		panic(err) // the glued order exceeds MaxOrder
	}
	return out
}

// GlueAllContext is [GlueAll] with cancellation. It fails with
// [ErrOrderTooLarge] when the glued graphs would exceed [MaxOrder].
func GlueAllContext(ctx context.Context, g, h *Graph) ([]*Graph, error) {
	out := make([]*Graph, 0, g.n*h.n)
	for v := 0; v < g.n; v++ {
		for u := 0; u < h.n; u++ {
			glued, err := Glue(g, v, h, u)
			if err != nil {
				return nil, err
			}
			out = append(out, glued)
		}
	}
	return UniqueContext(ctx, out)
}
