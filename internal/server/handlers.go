package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planark/planark/pkg/graph"
	"github.com/planark/planark/pkg/pipeline"
	"github.com/planark/planark/pkg/store"
)

// planarityResponse is the body of POST /v1/planarity.
type planarityResponse struct {
	GraphHash string `json:"graph_hash"`
	Planar    bool   `json:"planar"`
	Cached    bool   `json:"cached"`
}

// embeddingResponse is the body of POST /v1/embedding and
// GET /v1/embeddings/{hash}.
type embeddingResponse struct {
	GraphHash string           `json:"graph_hash"`
	Planar    bool             `json:"planar"`
	Embedding *graph.Embedding `json:"embedding,omitempty"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handlePlanarity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.decodeGraph(w, r)
		if !ok {
			return
		}

		result, err := s.runner.Execute(r.Context(), g, pipeline.Options{SkipEmbed: true})
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, planarityResponse{
			GraphHash: result.GraphHash,
			Planar:    result.Planar,
			Cached:    result.CacheInfo.PlanarityHit,
		})
	}
}

func (s *Server) handleEmbedding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.decodeGraph(w, r)
		if !ok {
			return
		}

		result, err := s.runner.Execute(r.Context(), g, pipeline.Options{})
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}

		rec := store.Record{
			GraphHash: result.GraphHash,
			Graph:     graph.FromGraph(g),
			Planar:    result.Planar,
			Embedding: result.Embedding,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.Put(r.Context(), rec); err != nil {
			// The response is still valid, the record just won't be
			// fetchable later.
			s.logger.Warn("store record", "hash", result.GraphHash, "err", err)
		}

		writeJSON(w, http.StatusOK, embeddingResponse{
			GraphHash: result.GraphHash,
			Planar:    result.Planar,
			Embedding: result.Embedding,
		})
	}
}

func (s *Server) handleGetEmbedding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		rec, err := s.store.Get(r.Context(), hash)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, err)
			return
		}
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, embeddingResponse{
			GraphHash: rec.GraphHash,
			Planar:    rec.Planar,
			Embedding: rec.Embedding,
		})
	}
}

func (s *Server) handleDeleteEmbedding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		if err := s.store.Delete(r.Context(), hash); err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeGraph parses the request body as a graph document and validates it.
// On failure it writes a 400 response and returns ok=false.
func (s *Server) decodeGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, bool) {
	var doc graph.Doc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	g, err := graph.ToGraph(doc)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	return g, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: requestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
