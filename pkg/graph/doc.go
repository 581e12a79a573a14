// Package graph provides finite simple undirected graphs and the helpers used
// to feed the chromatic symmetric function computation.
//
// # Core Types
//
//   - [Graph]: an immutable graph on vertices 0..n-1
//   - [Edge]: an unordered pair, stored with U < V
//   - [UnionFind]: disjoint sets over 0..n-1, reusable across edge subsets
//
// # Construction
//
// Graphs are validated on construction:
//
//	g, err := graph.New(4, graph.Edge{U: 0, V: 1}, graph.Edge{U: 1, V: 2})
//	g := graph.MustNew(3, graph.Edge{U: 0, V: 1})  // panics on invalid input
//
// Named fixtures cover the standard families and the two graphs of Stanley's
// Figure 1, which share a chromatic symmetric function:
//
//	graph.Bowtie()
//	graph.Kite()
//	g, err := graph.Fixture("cycle6")
//
// # Encodings
//
//   - JSON wire format: {"order": 4, "edges": [[0, 1], [1, 2]]}
//   - graph6 via gonum: [Graph.Graph6], [ParseGraph6]
//   - An edge-list DSL: "4: 0-1-2-3-0" (see [ParseDSL])
//   - gonum graphs: [Graph.ToGonum], [FromGonum]
//
// [Parse] accepts any of the textual forms and a fixture name.
//
// # Gluing and Isomorphism
//
// [Glue] identifies a vertex of one graph with a vertex of another.
// [GlueAll] tries every pair and keeps one graph per isomorphism class, using
// [Canonical], a graph6 string of a canonical relabelling. The canonical
// search takes a context; [CanonicalKey], [GlueAll] and [Unique] are the
// uncancellable forms.
//
// # Limits
//
// [New] rejects graphs with more than [MaxOrder] vertices with
// [ErrOrderTooLarge], so every parser fails before allocating for an
// absurd vertex count.
//
// # Concurrency
//
// A Graph is never modified after construction and is safe for concurrent
// use. A UnionFind is not.
package graph
