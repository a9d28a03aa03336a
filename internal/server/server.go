// Package server implements the argmap HTTP API.
//
// Endpoints:
//
//	GET  /healthz              liveness check
//	POST /api/layout           compute a layout for a submitted graph
//	GET  /api/layouts          list archived layouts
//	GET  /api/layouts/{id}     fetch one archived layout
//	DELETE /api/layouts/{id}   remove an archived layout
//
// The layout endpoint is synchronous: graphs small enough to argue about
// are small enough to lay out within a request.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkarlsen/argmap/pkg/pipeline"
	"github.com/mkarlsen/argmap/pkg/store"
)

// Server wires the pipeline runner and the archive behind the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	archive store.Store
	logger  *log.Logger
}

// Config configures the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// New creates a server. A nil archive disables the archive endpoints with
// 404 responses; a nil logger falls back to the default logger.
func New(runner *pipeline.Runner, archive store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:  runner,
		archive: archive,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
