package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chromatic/pkg/buildinfo"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/csf"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render/nodelink"
	"github.com/matzehuels/chromatic/pkg/symfunc"
	"github.com/matzehuels/chromatic/pkg/trees"
)

// GraphInput is a graph in a request body: a JSON object in the graph wire
// format or a string holding graph6, the edge-list DSL or a fixture name.
type GraphInput json.RawMessage

// UnmarshalJSON keeps the raw value for Parse.
func (g *GraphInput) UnmarshalJSON(data []byte) error {
	*g = append((*g)[:0], data...)
	return nil
}

// Parse decodes the graph.
func (g GraphInput) Parse() (*graph.Graph, error) {
	raw := bytes.TrimSpace(g)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "a graph is required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "decode graph")
		}
		return pipeline.Parse(s)
	}
	return pipeline.Parse(string(raw))
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// CSF
// =============================================================================

// CSFRequest is the body of POST /v1/csf.
type CSFRequest struct {
	Graph   GraphInput `json:"graph"`
	Name    string     `json:"name,omitempty"`
	Basis   string     `json:"basis,omitempty"`
	Refresh bool       `json:"refresh,omitempty"`
	Record  bool       `json:"record,omitempty"`
}

// CSFResponse is the result of POST /v1/csf.
type CSFResponse struct {
	Graph      *graph.Graph     `json:"graph"`
	Graph6     string           `json:"graph6"`
	Canonical  string           `json:"canonical"`
	Basis      string           `json:"basis"`
	Expression string           `json:"expression"`
	Function   *symfunc.SymFunc `json:"function"`
	PowerSums  *csf.Table       `json:"power_sums"`
	Subsets    uint64           `json:"subsets"`
	CacheHit   bool             `json:"cache_hit"`
	ComputeMS  float64          `json:"compute_ms"`
	RecordID   string           `json:"record_id,omitempty"`
	Equal      []string         `json:"equal,omitempty"`
}

func (s *Server) handleCSF(w http.ResponseWriter, r *http.Request) {
	var req CSFRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.Graph.Parse()
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Graph:       g,
		Name:        req.Name,
		Basis:       req.Basis,
		MaxEdges:    s.cfg.MaxEdges,
		MaxVertices: s.cfg.MaxVertices,
		Timeout:     s.cfg.Timeout,
		Refresh:     req.Refresh,
		Record:      req.Record,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewCSFResponse(res))
}

// NewCSFResponse converts a pipeline result to its wire form.
func NewCSFResponse(res *pipeline.Result) CSFResponse {
	resp := CSFResponse{
		Graph:      res.Graph,
		Graph6:     res.Graph.Graph6(),
		Canonical:  res.Canonical,
		Basis:      res.Function.Basis().String(),
		Expression: res.Function.String(),
		Function:   res.Function,
		PowerSums:  res.Table,
		Subsets:    res.Stats.Subsets,
		CacheHit:   res.CacheHit,
		ComputeMS:  millis(res.Stats.ComputeTime),
	}
	if res.Record != nil {
		resp.RecordID = res.Record.ID
	}
	for _, e := range res.Equal {
		resp.Equal = append(resp.Equal, e.ID)
	}
	return resp
}

// =============================================================================
// Glue
// =============================================================================

// GlueRequest is the body of POST /v1/glue.
type GlueRequest struct {
	G GraphInput `json:"g"`
	H GraphInput `json:"h"`
}

// GlueResponse lists the gluings and their CSF classes. Classes holds
// indices into Gluings.
type GlueResponse struct {
	Gluings    []GluingJSON `json:"gluings"`
	Classes    [][]int      `json:"classes"`
	Collisions int          `json:"collisions"`
}

// GluingJSON is one gluing in a GlueResponse.
type GluingJSON struct {
	Graph6    string       `json:"graph6"`
	Graph     *graph.Graph `json:"graph"`
	PowerSums *csf.Table   `json:"power_sums"`
}

func (s *Server) handleGlue(w http.ResponseWriter, r *http.Request) {
	var req GlueRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.G.Parse()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h, err := req.H.Parse()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := contextWithTimeout(r, s.cfg.Timeout)
	defer cancel()
	res, err := s.runner.Glue(ctx, g, h, pipeline.Options{
		MaxEdges:    s.cfg.MaxEdges,
		MaxVertices: s.cfg.MaxVertices,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := GlueResponse{Classes: res.Classes, Collisions: len(res.Collisions())}
	for _, gl := range res.Gluings {
		resp.Gluings = append(resp.Gluings, GluingJSON{
			Graph6:    gl.Graph.Graph6(),
			Graph:     gl.Graph,
			PowerSums: gl.Table,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Plot
// =============================================================================

// PlotRequest is the body of POST /v1/plot.
type PlotRequest struct {
	Graph     GraphInput `json:"graph"`
	Format    string     `json:"format,omitempty"`
	Title     string     `json:"title,omitempty"`
	Layout    string     `json:"layout,omitempty"`
	Detailed  bool       `json:"detailed,omitempty"`
	Highlight []int      `json:"highlight,omitempty"`
}

var contentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
	"dot": "text/vnd.graphviz",
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	var req PlotRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := req.Graph.Parse()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := cerrors.ValidateOrder(g.Order(), s.cfg.MaxVertices); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = "svg"
	}

	ctx, cancel := contextWithTimeout(r, s.cfg.Timeout)
	defer cancel()
	data, err := s.runner.Plot(ctx, g, req.Format, nodelink.Options{
		Title:     req.Title,
		Layout:    req.Layout,
		Detailed:  req.Detailed,
		Highlight: req.Highlight,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	_, _ = w.Write(data)
}

// =============================================================================
// Fixtures
// =============================================================================

// FixtureResponse is the result of GET /v1/fixtures/{name}.
type FixtureResponse struct {
	Name   string       `json:"name"`
	Graph6 string       `json:"graph6"`
	Graph  *graph.Graph `json:"graph"`
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"fixtures": graph.FixtureNames()})
}

func (s *Server) handleFixture(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := graph.Fixture(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FixtureResponse{Name: name, Graph6: g.Graph6(), Graph: g})
}

// =============================================================================
// Trees
// =============================================================================

// TreesResponse is the result of GET /v1/trees/{n}.
type TreesResponse struct {
	Order   int        `json:"order"`
	Count   int        `json:"count"`
	Trees   []string   `json:"trees"`
	Cohorts int        `json:"cohorts"`
	Check   *CheckJSON `json:"check,omitempty"`
}

// CheckJSON summarizes a tree conjecture check.
type CheckJSON struct {
	Holds      bool        `json:"holds"`
	Candidates int         `json:"candidates"`
	Pairs      int         `json:"pairs"`
	Collisions [][2]string `json:"collisions,omitempty"`
	DurationMS float64     `json:"duration_ms"`
}

func (s *Server) handleTrees(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, r, cerrors.New(cerrors.ErrCodeInvalidInput, "tree order must be an integer"))
		return
	}
	if err := cerrors.ValidateOrder(n, maxTreeOrder); err != nil {
		writeError(w, r, err)
		return
	}

	free := trees.Free(n)
	resp := TreesResponse{
		Order:   n,
		Count:   len(free),
		Trees:   make([]string, len(free)),
		Cohorts: len(trees.Cohorts(free)),
	}
	for i, t := range free {
		resp.Trees[i] = t.Graph6()
	}

	if check, _ := strconv.ParseBool(r.URL.Query().Get("check")); check {
		ctx, cancel := contextWithTimeout(r, s.cfg.Timeout)
		defer cancel()
		rep, err := trees.Check(ctx, n)
		if err != nil {
			writeError(w, r, err)
			return
		}
		c := &CheckJSON{
			Holds:      rep.Holds(),
			Candidates: rep.Candidates,
			Pairs:      rep.Pairs,
			DurationMS: millis(rep.Duration),
		}
		for _, col := range rep.Collisions {
			c.Collisions = append(c.Collisions, [2]string{col.A.Graph6(), col.B.Graph6()})
		}
		resp.Check = c
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Catalog
// =============================================================================

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, r, errNoCatalog)
		return
	}
	q := r.URL.Query()
	f := catalog.Filter{Name: q.Get("name")}
	var err error
	if v := q.Get("order"); v != "" {
		if f.Order, err = strconv.Atoi(v); err != nil {
			writeError(w, r, cerrors.New(cerrors.ErrCodeInvalidInput, "order must be an integer"))
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 0 {
			writeError(w, r, cerrors.New(cerrors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
	}

	recs, err := s.store.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*catalog.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func (s *Server) handleCatalogGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, r, errNoCatalog)
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

var errNoCatalog = cerrors.New(cerrors.ErrCodeUnsupported, "no catalog configured")

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
