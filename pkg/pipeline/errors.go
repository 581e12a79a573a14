package pipeline

import (
	"context"
	"errors"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/csf"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// ClassifyError attaches an error code to err so callers can map it to an
// exit status or HTTP response. Errors that already carry a code are
// returned unchanged; nil stays nil.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var coded *cerrors.Error
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return cerrors.Wrap(cerrors.ErrCodeTimeout, err, "computation timed out")
	case errors.Is(err, context.Canceled):
		return cerrors.Wrap(cerrors.ErrCodeCanceled, err, "computation canceled")
	case errors.Is(err, csf.ErrTooManyEdges), errors.Is(err, graph.ErrOrderTooLarge):
		return cerrors.Wrap(cerrors.ErrCodeTooLarge, err, "graph too large")
	case errors.Is(err, catalog.ErrNotFound):
		return cerrors.Wrap(cerrors.ErrCodeRecordNotFound, err, "catalog lookup")
	case errors.Is(err, cache.ErrNetwork):
		return cerrors.Wrap(cerrors.ErrCodeNetwork, err, "backend unreachable")
	case errors.Is(err, graph.ErrInvalidGraph6):
		return cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "parse graph")
	case errors.Is(err, graph.ErrNegativeOrder),
		errors.Is(err, graph.ErrVertexOutOfRange),
		errors.Is(err, graph.ErrSelfLoop),
		errors.Is(err, graph.ErrDuplicateEdge):
		return cerrors.Wrap(cerrors.ErrCodeInvalidGraph, err, "invalid graph")
	case errors.Is(err, graph.ErrUnknownFixture):
		return cerrors.Wrap(cerrors.ErrCodeFixtureNotFound, err, "unknown fixture")
	default:
		return cerrors.Wrap(cerrors.ErrCodeInternal, err, "internal error")
	}
}
