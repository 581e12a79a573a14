// Package csf computes the chromatic symmetric function of a graph.
//
// By Stanley's Theorem 2.5 the chromatic symmetric function of G is
//
//	X_G = Σ_{S ⊆ E(G)} (-1)^|S| p_λ(S)
//
// where λ(S) is the partition formed by the sizes of the connected
// components of the spanning subgraph (V(G), S). [Compute] evaluates this
// sum directly: it streams every edge subset as a bit mask, finds the
// components with a union-find, and accumulates the signs into a [Table]
// keyed by partition. The table is X_G in the power-sum basis.
//
// # Usage
//
//	table, err := csf.Compute(ctx, graph.Bowtie())
//	f := table.SymFunc()                      // power-sum form
//	e, err := csf.CSF(ctx, g, "elementary")   // converted
//
// The sum has 2^|E| terms. Graphs with more than [MaxEdges] edges are
// rejected with [ErrTooManyEdges]. [WithWorkers] splits the masks into
// contiguous ranges summed in parallel; the result does not depend on the
// number of workers.
//
// Basis names are resolved with [symfunc.ParseBasis]: only the first
// character matters and unknown names return the power-sum form unchanged.
package csf
