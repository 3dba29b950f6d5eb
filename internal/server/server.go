// Package server exposes the planarity pipeline over HTTP.
//
// The API accepts graphs in the JSON interchange format and returns
// planarity verdicts and combinatorial embeddings. Computed embeddings are
// persisted through a [store.Store] so they can be fetched again by graph
// hash without resubmitting the graph.
//
// # Endpoints
//
//	GET    /healthz                 liveness probe
//	POST   /v1/planarity            test a graph, verdict only
//	POST   /v1/embedding            test and embed a graph
//	GET    /v1/embeddings/{hash}    fetch a stored embedding by graph hash
//	DELETE /v1/embeddings/{hash}    drop a stored embedding
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planark/planark/pkg/pipeline"
	"github.com/planark/planark/pkg/store"
)

// Server wires the pipeline runner and the embedding store behind a chi
// router.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store falls back to an in-memory store, a nil
// logger to the default logger. The runner must not be nil.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/planarity", s.handlePlanarity())
		r.Post("/embedding", s.handleEmbedding())
		r.Get("/embeddings/{hash}", s.handleGetEmbedding())
		r.Delete("/embeddings/{hash}", s.handleDeleteEmbedding())
	})

	return r
}

// ListenAndServe runs the server on addr until ctx is cancelled, then shuts
// down gracefully with a 10 second drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the server's resources.
func (s *Server) Close(ctx context.Context) error {
	err := s.runner.Close()
	if serr := s.store.Close(ctx); err == nil {
		err = serr
	}
	return err
}
