package pipeline

import (
	"errors"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Parse reads a graph from JSON, a fixture name, the edge-list DSL, or
// graph6. Errors carry an INVALID_GRAPH, TOO_LARGE, FIXTURE_NOT_FOUND or
// INVALID_FORMAT code.
func Parse(input string) (*graph.Graph, error) {
	if input == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "a graph is required")
	}
	g, err := graph.Parse(input)
	if err != nil {
		return nil, classifyParse(err)
	}
	return g, nil
}

func classifyParse(err error) error {
	switch {
	case errors.Is(err, graph.ErrOrderTooLarge):
		return cerrors.Wrap(cerrors.ErrCodeTooLarge, err, "graph too large")
	case errors.Is(err, graph.ErrNegativeOrder),
		errors.Is(err, graph.ErrVertexOutOfRange),
		errors.Is(err, graph.ErrSelfLoop),
		errors.Is(err, graph.ErrDuplicateEdge):
		return cerrors.Wrap(cerrors.ErrCodeInvalidGraph, err, "invalid graph")
	case errors.Is(err, graph.ErrUnknownFixture):
		return cerrors.Wrap(cerrors.ErrCodeFixtureNotFound, err, "unknown fixture")
	default:
		return cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "parse graph")
	}
}
