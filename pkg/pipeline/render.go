package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chromatic/pkg/cache"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/render/nodelink"
)

// Plot renders g as a node-link diagram in format ("svg", "png" or "dot").
// Rendered bytes are cached for cache.TTLPlot. Unlike tables, plots are
// keyed by the labeled graph since vertex numbers appear in the drawing.
func (r *Runner) Plot(ctx context.Context, g *graph.Graph, format string, opts nodelink.Options) ([]byte, error) {
	if g == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "a graph is required")
	}
	switch format {
	case "svg", "png", "dot":
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "unsupported plot format %q", format)
	}

	graphKey := fmt.Sprintf("%s|%t|%v", g.Graph6(), opts.Detailed, opts.Highlight)
	key := r.Keyer.PlotKey(graphKey, cache.PlotKeyOpts{
		Format: format,
		Title:  opts.Title,
		Layout: opts.Layout,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "plot")
		return data, nil
	} else if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "plot")

	data, err := nodelink.Plot(ctx, g, format, opts)
	if err != nil {
		return nil, ClassifyError(err)
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLPlot); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "plot", len(data))
	}
	return data, nil
}
