// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentgrid/searchd/internal/adapters/store"
	"github.com/talentgrid/searchd/internal/domain/criteria"
	"github.com/talentgrid/searchd/internal/domain/suggest"
	"github.com/talentgrid/searchd/internal/domain/types"
)

// viewerHeader carries the pre-authenticated viewer identity. Empty or
// absent means anonymous; authentication itself happens upstream.
const viewerHeader = "X-Viewer-ID"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Search(ctx context.Context, c criteria.Criteria, viewerID string) (types.SearchResponse, error)
	Suggest(ctx context.Context, domain suggest.Domain, partial string) ([]string, error)
	Similar(ctx context.Context, profileID string, limit int) ([]types.ScoredResult, error)
	InvalidateProfile(ctx context.Context, ownerID string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	searchHandler     *SearchHandler
	suggestHandler    *SuggestHandler
	similarHandler    *SimilarHandler
	invalidateHandler *InvalidateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		searchHandler:     NewSearchHandler(deps),
		suggestHandler:    NewSuggestHandler(deps),
		similarHandler:    NewSimilarHandler(deps),
		invalidateHandler: NewInvalidateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/search", MetricsMiddleware(s.searchHandler.HandleSearch, "search"))
	mux.HandleFunc("/suggest", MetricsMiddleware(s.suggestHandler.HandleSuggest, "suggest"))
	mux.HandleFunc("/similar/", MetricsMiddleware(s.similarHandler.HandleSimilar, "similar"))
	mux.HandleFunc("/profiles/invalidate/", MetricsMiddleware(s.invalidateHandler.HandleInvalidate, "invalidate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps engine error kinds to HTTP statuses: validation
// failures are 400, unknown profiles 404, store outages 503 (retryable by
// the caller), anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, criteria.ErrInvalidCriteria):
		writeError(w, http.StatusBadRequest, "invalid_criteria", err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// viewerID extracts the authenticated viewer identity, if any.
func viewerID(r *http.Request) string {
	return r.Header.Get(viewerHeader)
}
