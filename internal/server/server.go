// Package server exposes the pedigree queries as a JSON HTTP API.
//
// The API is read-only: the tree is loaded once at startup and every
// endpoint is a pure query against it, so handlers run concurrently
// without locking. Expensive whole-tree queries are memoized through a
// pluggable result cache keyed by the source file hash.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/pedigraph/pedigraph/pkg/cache"
	"github.com/pedigraph/pedigraph/pkg/lineage"
	"github.com/pedigraph/pedigraph/pkg/pedigree"
)

// Options configures a Server.
type Options struct {
	// TreeHash identifies the loaded source file; it scopes cache keys.
	TreeHash string

	// MaxGen is the default generation cap for ancestor queries.
	MaxGen int

	// Thresholds is the brick-wall priority policy.
	Thresholds lineage.PriorityThresholds

	// Cache memoizes whole-tree query results. Nil disables caching.
	Cache cache.Cache

	// CacheTTL bounds how long memoized results live.
	CacheTTL time.Duration
}

// Server serves pedigree queries over HTTP.
type Server struct {
	store  *pedigree.Store
	logger *log.Logger
	opts   Options
}

// New creates a Server for the given store.
func New(store *pedigree.Store, logger *log.Logger, opts Options) *Server {
	if opts.MaxGen < 1 {
		opts.MaxGen = lineage.DefaultMaxGenerations
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Server{store: store, logger: logger, opts: opts}
}

// Router builds the chi router with all endpoints registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/persons/{id}", s.handlePerson)
	r.Get("/persons/{id}/ancestors", s.handleAncestors)
	r.Get("/persons/{id}/coi", s.handleCOI)
	r.Get("/persons/{id}/descendants", s.handleDescendants)
	r.Get("/brickwalls", s.handleBrickWalls)
	r.Get("/reports/inbreeding", s.handleInbreedingReport)
	r.Get("/reports/lifespan", s.handleLifespanReport)
	return r
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Infof("Serving pedigree API on %s (%d persons, %d families)",
		addr, s.store.PersonCount(), s.store.FamilyCount())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
