// Package server exposes the analysis pipeline as a small REST API.
//
// Routes:
//
//	POST   /api/v1/analyses      run an analysis and persist the result
//	GET    /api/v1/analyses      list stored runs, most recent first
//	GET    /api/v1/analyses/{id} fetch one run
//	DELETE /api/v1/analyses/{id} remove a run
//	GET    /healthz              liveness probe
//
// Errors are returned as a JSON envelope whose code mirrors the pkg/errors
// taxonomy, so API clients see the same codes the CLI reports.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/neurotopo/trisect/pkg/pipeline"
	"github.com/neurotopo/trisect/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Server wires the pipeline runner and the run store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	runs   store.RunStore
	logger *log.Logger
}

// New creates a server. A nil store falls back to an in-memory store and a
// nil logger to the package default, mirroring the runner's own fallbacks.
func New(runner *pipeline.Runner, runs store.RunStore, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if runs == nil {
		runs = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		runs:   runs,
		logger: logger,
	}
}

// Handler builds the chi router with all routes and middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", s.createAnalysis)
			r.Get("/", s.listAnalyses)
			r.Get("/{id}", s.getAnalysis)
			r.Delete("/{id}", s.deleteAnalysis)
		})
	})

	return r
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("listening", "addr", addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
