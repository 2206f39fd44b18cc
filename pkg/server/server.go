// Package server assembles the HTTP API and the embedded web UI.
//
// The API is a thin JSON layer over [explorer.Runner]: catalog listing,
// tree building with per-level range filters, documentation-link lookup,
// and artifact rendering. The UI at / is a single embedded page driving
// the same endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/ionutms/schemascope/pkg/explorer"
)

// Server serves the JSON API and web UI.
type Server struct {
	runner *explorer.Runner
	logger *log.Logger
	addr   string
}

// Options configures a Server.
type Options struct {
	// Runner executes explorations. Required.
	Runner *explorer.Runner

	// Addr is the listen address. Defaults to ":8080".
	Addr string

	// Logger receives request logs. Defaults to the default logger.
	Logger *log.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		runner: opts.Runner,
		logger: opts.Logger,
		addr:   opts.Addr,
	}
}

// Handler builds the route tree. It is exported so tests can drive the
// server through httptest without a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.recovery)
	r.Use(s.logging)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/tree/{schema}", s.handleTree)
		r.Get("/docs/{schema}", s.handleDoc)
		r.Get("/render/{schema}", s.handleRender)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
