// Package server implements the scene manifest HTTP API.
//
// The API is a thin layer over the pipeline: manifests are uploaded
// once, held in a TTL store under a generated ID, and rendered on
// demand through a shared Runner so artifact caching behaves the same
// as in the CLI.
//
// # Endpoints
//
//	POST   /v1/scenes                  upload and validate a manifest
//	GET    /v1/scenes/{id}             scene summary
//	DELETE /v1/scenes/{id}             drop a stored scene
//	GET    /v1/scenes/{id}/plan.json   render plan (query: figure)
//	GET    /v1/scenes/{id}/legend.svg  tissue legend (query: figure, title, width)
//	GET    /v1/scenes/{id}/figures.svg figure map (query: figure, detailed)
//	GET    /healthz                    liveness probe with build version
//
// Failures are returned as JSON carrying the structured error code and
// the offending document key path, so API clients see the same detail
// as CLI users.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/segviz/segviz/pkg/buildinfo"
	"github.com/segviz/segviz/pkg/pipeline"
)

// maxBodyBytes caps uploaded documents, matching the remote fetch cap
// in pkg/httputil.
const maxBodyBytes = 16 << 20

// Server serves the scene manifest API. Fields may be replaced before
// the first request.
type Server struct {
	Store  Store
	Runner *pipeline.Runner
	Logger *log.Logger

	// TTL is applied to scenes stored by POST /v1/scenes.
	TTL time.Duration
}

// New creates a server. Nil arguments fall back to an in-memory store,
// an uncached runner, and the default logger.
func New(store Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		Store:  store,
		Runner: runner,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Routes builds the router for all API endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1/scenes", func(r chi.Router) {
		r.Post("/", s.handleCreateScene)
		r.Route("/{sceneID}", func(r chi.Router) {
			r.Get("/", s.handleGetScene)
			r.Delete("/", s.handleDeleteScene)
			r.Get("/plan.json", s.handlePlan)
			r.Get("/legend.svg", s.handleLegend)
			r.Get("/figures.svg", s.handleFigures)
		})
	})

	return r
}

// StartCleanup launches a background janitor that evicts expired
// scenes every interval until ctx is canceled.
func (s *Server) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Store.Cleanup(ctx); err != nil {
					s.Logger.Warn("scene cleanup failed", "error", err)
				}
			}
		}
	}()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
