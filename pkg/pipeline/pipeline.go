// Package pipeline runs chromatic symmetric function computations end to
// end: parse → compute → convert → record.
//
// The CLI and the API server both drive computations through a [Runner], so
// caching, cataloging, observability hooks, and logging behave the same
// everywhere.
//
// # Stages
//
//  1. Parse: read the graph from JSON, graph6, the edge-list DSL or a
//     fixture name
//  2. Compute: sum over edge subsets, or load the table from the cache
//     keyed by the canonical form of the graph
//  3. Convert: express the power-sum table in the requested basis
//  4. Record: optionally store the result in the catalog and look up
//     other graphs with the same function
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "bowtie",
//	    Basis: "elementary",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Function)
package pipeline

import (
	"time"

	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/csf"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBasis is the basis results are reported in.
	DefaultBasis = "power"

	// DefaultMaxEdges bounds the enumeration when Options.MaxEdges is zero.
	// 2^30 subsets take seconds; the hard limit is csf.MaxEdges.
	DefaultMaxEdges = 30

	// DefaultMaxVertices bounds the vertex count when Options.MaxVertices is
	// zero. The hard limit is graph.MaxOrder.
	DefaultMaxVertices = 64
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It doubles as the API request body.
type Options struct {
	// Input is the graph in any textual form accepted by graph.Parse.
	// Ignored when Graph is set.
	Input string `json:"input,omitempty"`
	// Graph is an already parsed graph.
	Graph *graph.Graph `json:"graph,omitempty"`
	// Name labels the graph in logs and the catalog.
	Name string `json:"name,omitempty"`
	// Basis selects the output basis by its first letter. Unrecognized
	// names leave the function in the power-sum basis.
	Basis string `json:"basis,omitempty"`

	Workers     int           `json:"workers,omitempty"`
	MaxEdges    int           `json:"max_edges,omitempty"`
	MaxVertices int           `json:"max_vertices,omitempty"`
	Timeout     time.Duration `json:"-"`

	// Refresh bypasses the cache read; the fresh table is still written.
	Refresh bool `json:"refresh,omitempty"`
	// Record stores the result in the catalog.
	Record bool `json:"record,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Graph == nil && o.Input == "" {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "a graph is required")
	}
	if o.Name != "" {
		if err := cerrors.ValidateName(o.Name); err != nil {
			return err
		}
	}
	if o.Basis == "" {
		o.Basis = DefaultBasis
	}
	if o.MaxEdges == 0 {
		o.MaxEdges = DefaultMaxEdges
	}
	if o.MaxEdges < 0 || o.MaxEdges > csf.MaxEdges {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "max_edges must be in [1, %d]", csf.MaxEdges)
	}
	if o.MaxVertices == 0 {
		o.MaxVertices = DefaultMaxVertices
	}
	if o.MaxVertices < 0 || o.MaxVertices > graph.MaxOrder {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "max_vertices must be in [1, %d]", graph.MaxOrder)
	}
	if o.Workers < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "workers must be non-negative")
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph *graph.Graph
	// Canonical is the canonical graph6 of Graph; isomorphic inputs agree.
	Canonical string
	// Table is the function in the power-sum basis.
	Table *csf.Table
	// Function is Table converted to the requested basis.
	Function *symfunc.SymFunc

	Stats    Stats
	CacheHit bool

	// Record is the catalog entry, set when Options.Record is true.
	Record *catalog.Record
	// Equal lists other cataloged graphs with the same function.
	Equal []*catalog.Record
}

// Stats contains execution statistics.
type Stats struct {
	Vertices int
	Edges    int
	// Subsets is the number of edge subsets summed over; 2^Edges.
	Subsets     uint64
	ComputeTime time.Duration
	ConvertTime time.Duration
}
