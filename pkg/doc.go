// Package pkg provides the core libraries for computing chromatic symmetric
// functions of graphs.
//
// # Overview
//
// Chromatic computes Stanley's chromatic symmetric function X_G of a small
// graph as a signed sum over edge subsets, expresses it in the classical
// bases of symmetric functions, and searches for non-isomorphic graphs that
// share one. The pkg directory is organized into four areas:
//
//  1. Domain - [graph], [partition], [csf], [symfunc], [trees]
//  2. Infrastructure - [cache], [catalog], [config], [errors], [observability]
//  3. Orchestration - [pipeline] (parse → compute → convert → record)
//  4. Surfaces - [api] (HTTP) and [render/nodelink] (plots)
//
// # Architecture
//
//	graph6 / JSON / edge DSL / fixture
//	         ↓
//	    [graph] package (simple undirected graph, canonical form)
//	         ↓
//	    [csf] package (sum over 2^|E| edge subsets → power-sum table)
//	         ↓
//	    [symfunc] package (change of basis: m, e, h, s)
//	         ↓
//	    [catalog] package (find graphs with equal functions)
//
// # Quick Start
//
//	g, _ := graph.Fixture("bowtie")
//	t, _ := csf.Compute(context.Background(), g)
//	fmt.Println(symfunc.Convert(t.SymFunc(), "elementary"))
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/csf/...      # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/graph
// [partition]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/partition
// [csf]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/csf
// [symfunc]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/symfunc
// [trees]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/trees
// [cache]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/cache
// [catalog]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/catalog
// [config]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/api
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/render/nodelink
package pkg
