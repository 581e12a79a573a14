package csf

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/partition"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// MaxEdges is the largest edge count [Compute] accepts. Edge subsets are
// uint64 masks and the subset count 2^|E| must itself fit in a uint64.
const MaxEdges = 63

// checkInterval is how many masks are processed between context checks.
const checkInterval = 4096

// ErrTooManyEdges is returned when a graph has more than [MaxEdges] edges.
var ErrTooManyEdges = errors.New("too many edges to enumerate")

type options struct {
	workers int
}

// Option configures [Compute].
type Option func(*options)

// WithWorkers sums contiguous ranges of edge subsets in k goroutines and
// merges the partial tables. Values below 1 mean 1.
func WithWorkers(k int) Option {
	return func(o *options) { o.workers = k }
}

// Subsets returns the number of edge subsets Compute enumerates for g.
func Subsets(g *graph.Graph) (uint64, error) {
	if g.Size() > MaxEdges {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyEdges, g.Size(), MaxEdges)
	}
	return uint64(1) << g.Size(), nil
}

// Compute returns the chromatic symmetric function of g in the power-sum
// basis. The context is checked every few thousand subsets; on cancellation
// the context's error is returned.
func Compute(ctx context.Context, g *graph.Graph, opts ...Option) (*Table, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	total, err := Subsets(g)
	if err != nil {
		return nil, err
	}

	workers := uint64(max(o.workers, 1))
	workers = min(workers, total)
	if workers == 1 {
		return accumulate(ctx, g, 0, total)
	}

	parts := make([]*Table, workers)
	eg, ctx := errgroup.WithContext(ctx)
	chunk := total / workers
	for w := range workers {
		lo := w * chunk
		hi := lo + chunk
		if w == workers-1 {
			hi = total
		}
		eg.Go(func() error {
			t, err := accumulate(ctx, g, lo, hi)
			parts[w] = t
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := parts[0]
	for _, t := range parts[1:] {
		out.Merge(t)
	}
	return out, nil
}

// PowerSum is Compute without a context or workers. It panics when g has
// more than MaxEdges edges.
func PowerSum(g *graph.Graph) *Table {
	t, err := Compute(context.Background(), g)
	if err != nil {
		panic(err)
	}
	return t
}

// CSF computes X_G and converts it to the basis named by basis, as resolved
// by symfunc.ParseBasis. Unrecognized names yield the power-sum form.
func CSF(ctx context.Context, g *graph.Graph, basis string, opts ...Option) (*symfunc.SymFunc, error) {
	t, err := Compute(ctx, g, opts...)
	if err != nil {
		return nil, err
	}
	return symfunc.Convert(t.SymFunc(), basis), nil
}

// accumulate sums the masks in [lo, hi).
func accumulate(ctx context.Context, g *graph.Graph, lo, hi uint64) (*Table, error) {
	n := g.Order()
	edges := g.Edges()
	t := NewTable(n)
	uf := graph.NewUnionFind(n)
	sizes := make([]int, 0, n)
	key := make([]byte, 0, 3*n)

	for mask := lo; mask < hi; mask++ {
		if (mask-lo)%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		uf.Reset()
		for rest := mask; rest != 0; rest &= rest - 1 {
			e := edges[bits.TrailingZeros64(rest)]
			uf.Union(e.U, e.V)
		}
		sizes = uf.AppendSizes(sizes[:0])
		slices.SortFunc(sizes, func(a, b int) int { return b - a })
		key = partition.Partition(sizes).AppendKey(key[:0])

		sign := int64(1)
		if bits.OnesCount64(mask)%2 == 1 {
			sign = -1
		}
		t.addKey(key, sizes, sign)
	}
	return t, nil
}
