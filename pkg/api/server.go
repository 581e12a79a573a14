// Package api serves chromatic symmetric function computations over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /v1/csf               compute X_G of one graph
//	POST /v1/glue              compute every vertex gluing of two graphs
//	POST /v1/plot              render a graph as svg, png or dot
//	GET  /v1/fixtures          list fixture names
//	GET  /v1/fixtures/{name}   return one fixture graph
//	GET  /v1/trees/{n}         list free trees; ?check=true tests the tree conjecture
//	GET  /v1/catalog           list cataloged records
//	GET  /v1/catalog/{id}      return one record
//
// Graphs in request bodies are either a JSON object ({"order": 3, "edges":
// [[0, 1], [1, 2]]}) or a string in any form the CLI accepts: graph6, the
// edge-list DSL, or a fixture name.
//
// Errors are JSON objects carrying a machine-readable code from pkg/errors:
//
//	{"error": {"code": "TOO_LARGE", "message": "...", "request_id": "..."}}
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

const (
	// DefaultTimeout bounds one computation when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	// maxTreeOrder bounds GET /v1/trees/{n}; there are 3159 free trees on
	// 14 vertices.
	maxTreeOrder = 14
)

// Config configures a Server.
type Config struct {
	// MaxEdges rejects larger graphs with TOO_LARGE; zero means
	// pipeline.DefaultMaxEdges.
	MaxEdges int
	// MaxVertices rejects graphs with more vertices with TOO_LARGE; zero
	// means pipeline.DefaultMaxVertices.
	MaxVertices int
	// Timeout bounds each computation.
	Timeout time.Duration
}

// Server is the HTTP front end of a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	store  catalog.Store
	logger *log.Logger
	cfg    Config
}

// New creates a server. The catalog routes answer 501 when runner.Store is
// nil.
func New(runner *pipeline.Runner, cfg Config) *Server {
	if cfg.MaxEdges == 0 {
		cfg.MaxEdges = pipeline.DefaultMaxEdges
	}
	if cfg.MaxVertices == 0 {
		cfg.MaxVertices = pipeline.DefaultMaxVertices
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Server{
		runner: runner,
		store:  runner.Store,
		logger: runner.Logger,
		cfg:    cfg,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/csf", s.handleCSF)
		r.Post("/glue", s.handleGlue)
		r.Post("/plot", s.handlePlot)
		r.Get("/fixtures", s.handleFixtures)
		r.Get("/fixtures/{name}", s.handleFixture)
		r.Get("/trees/{n}", s.handleTrees)
		r.Get("/catalog", s.handleCatalogList)
		r.Get("/catalog/{id}", s.handleCatalogGet)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
