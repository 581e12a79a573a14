package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/csf"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// Runner encapsulates pipeline execution with caching and cataloging.
//
// The Runner is stateless apart from its collaborators, so one Runner can
// serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  catalog.Store
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the DefaultKeyer, a nil store disables recording, and a nil logger
// means the default charm logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, store catalog.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  store,
		Logger: logger,
	}
}

// Execute runs parse → compute → convert → record.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	// Stage 1: Parse
	g := opts.Graph
	if g == nil {
		var err error
		if g, err = Parse(opts.Input); err != nil {
			return nil, err
		}
	}
	if err := cerrors.ValidateOrder(g.Order(), opts.MaxVertices); err != nil {
		return nil, err
	}
	if err := cerrors.ValidateEdgeCount(g.Size(), opts.MaxEdges); err != nil {
		return nil, err
	}
	canonical, err := graph.Canonical(ctx, g)
	if err != nil {
		return nil, ClassifyError(err)
	}
	result := &Result{
		Graph:     g,
		Canonical: canonical,
		Stats:     Stats{Vertices: g.Order(), Edges: g.Size(), Subsets: uint64(1) << g.Size()},
	}

	// Stage 2: Compute
	start := time.Now()
	table, hit, err := r.table(ctx, g, canonical, opts)
	if err != nil {
		return nil, ClassifyError(err)
	}
	result.Table = table
	result.CacheHit = hit
	result.Stats.ComputeTime = time.Since(start)

	r.Logger.Info("computed csf",
		"graph", label(opts.Name, g),
		"vertices", g.Order(),
		"edges", g.Size(),
		"terms", table.Len(),
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Convert
	start = time.Now()
	result.Function = symfunc.Convert(table.SymFunc(), opts.Basis)
	result.Stats.ConvertTime = time.Since(start)
	if result.Function.Basis() != symfunc.ParseBasis(opts.Basis) {
		r.Logger.Warn("unknown basis, reporting power sums", "basis", opts.Basis)
	}

	// Stage 4: Record
	if opts.Record {
		if r.Store == nil {
			return nil, cerrors.New(cerrors.ErrCodeUnsupported, "recording requires a catalog")
		}
		if err := r.record(ctx, result, opts); err != nil {
			return nil, ClassifyError(err)
		}
	}
	return result, nil
}

// TableWithCacheInfo returns the power-sum table of g, consulting the cache
// first unless opts.Refresh is set. The cache is keyed by the canonical
// form, so isomorphic graphs share an entry.
func (r *Runner) TableWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*csf.Table, bool, error) {
	canonical, err := graph.Canonical(ctx, g)
	if err != nil {
		return nil, false, err
	}
	return r.table(ctx, g, canonical, opts)
}

func (r *Runner) table(ctx context.Context, g *graph.Graph, canonical string, opts Options) (*csf.Table, bool, error) {
	key := r.Keyer.TableKey(canonical)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var t csf.Table
			if err := json.Unmarshal(data, &t); err == nil && t.Order() == g.Order() {
				observability.Cache().OnCacheHit(ctx, "table")
				return &t, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "table")
	}

	table, err := r.compute(ctx, g, opts.Workers)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(table); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTable); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "table", len(data))
		}
	}
	return table, false, nil
}

// Table is TableWithCacheInfo without the hit flag.
func (r *Runner) Table(ctx context.Context, g *graph.Graph, opts Options) (*csf.Table, error) {
	t, _, err := r.TableWithCacheInfo(ctx, g, opts)
	return t, err
}

func (r *Runner) compute(ctx context.Context, g *graph.Graph, workers int) (*csf.Table, error) {
	hooks := observability.Compute()
	hooks.OnComputeStart(ctx, g.Order(), g.Size())
	start := time.Now()

	var copts []csf.Option
	if workers > 1 {
		copts = append(copts, csf.WithWorkers(workers))
	}
	table, err := csf.Compute(ctx, g, copts...)

	subsets, _ := csf.Subsets(g)
	hooks.OnComputeComplete(ctx, g.Order(), subsets, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	return table, nil
}

func (r *Runner) record(ctx context.Context, result *Result, opts Options) error {
	rec, created, err := catalog.AddCanonical(ctx, r.Store, opts.Name, result.Graph, result.Canonical, result.Table)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	result.Record = rec
	observability.Catalog().OnRecord(ctx, rec.ID, created)

	equal, err := catalog.FindEqual(ctx, r.Store, result.Table)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	for _, e := range equal {
		if e.ID != rec.ID {
			result.Equal = append(result.Equal, e)
		}
	}
	if len(result.Equal) > 0 {
		observability.Catalog().OnEqualFound(ctx, rec.ID, len(result.Equal))
		r.Logger.Info("found graphs with equal csf",
			"graph", rec.Label(),
			"others", len(result.Equal))
	}
	return nil
}

// Gluing is one vertex gluing of two graphs with its power-sum table.
type Gluing struct {
	Graph *graph.Graph
	Table *csf.Table
}

// GlueResult groups the non-isomorphic gluings of two graphs by their CSF.
type GlueResult struct {
	Gluings []Gluing
	// Classes partitions Gluings by equal table; indices into Gluings.
	Classes [][]int
}

// Glue computes every non-isomorphic vertex gluing of g and h and groups
// them by chromatic symmetric function. A class with more than one member
// is a set of non-isomorphic graphs sharing a CSF.
func (r *Runner) Glue(ctx context.Context, g, h *graph.Graph, opts Options) (*GlueResult, error) {
	if g.Order() == 0 || h.Order() == 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidGraph, "gluing needs two non-empty graphs")
	}
	if opts.MaxEdges == 0 {
		opts.MaxEdges = DefaultMaxEdges
	}
	if opts.MaxVertices == 0 {
		opts.MaxVertices = DefaultMaxVertices
	}
	if err := cerrors.ValidateOrder(g.Order()+h.Order()-1, opts.MaxVertices); err != nil {
		return nil, err
	}
	if err := cerrors.ValidateEdgeCount(g.Size()+h.Size(), opts.MaxEdges); err != nil {
		return nil, err
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	gluings, err := graph.GlueAllContext(ctx, g, h)
	if err != nil {
		return nil, ClassifyError(err)
	}
	out := &GlueResult{}
	byKey := make(map[string]int)
	for _, glued := range gluings {
		t, err := r.Table(ctx, glued, opts)
		if err != nil {
			return nil, ClassifyError(err)
		}
		out.Gluings = append(out.Gluings, Gluing{Graph: glued, Table: t})
		i := len(out.Gluings) - 1
		if c, ok := byKey[t.Key()]; ok {
			out.Classes[c] = append(out.Classes[c], i)
			continue
		}
		byKey[t.Key()] = len(out.Classes)
		out.Classes = append(out.Classes, []int{i})
	}

	r.Logger.Info("glued graphs",
		"gluings", len(out.Gluings),
		"classes", len(out.Classes))
	return out, nil
}

// Collisions returns the classes with more than one gluing.
func (g *GlueResult) Collisions() [][]Gluing {
	var out [][]Gluing
	for _, c := range g.Classes {
		if len(c) < 2 {
			continue
		}
		group := make([]Gluing, len(c))
		for i, idx := range c {
			group[i] = g.Gluings[idx]
		}
		out = append(out, group)
	}
	return out
}

func label(name string, g *graph.Graph) string {
	if name != "" {
		return name
	}
	return g.Graph6()
}
