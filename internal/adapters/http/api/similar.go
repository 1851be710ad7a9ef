// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/talentgrid/searchd/internal/domain/types"
)

// SimilarHandler handles similar-profile discovery requests.
type SimilarHandler struct {
	deps Dependencies
}

// NewSimilarHandler creates a new similar handler.
func NewSimilarHandler(deps Dependencies) *SimilarHandler {
	return &SimilarHandler{deps: deps}
}

type similarResponse struct {
	Results []types.ScoredResult `json:"results"`
}

// HandleSimilar handles GET /similar/{profile_id}?limit=N requests.
func (h *SimilarHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	profileID := strings.TrimPrefix(r.URL.Path, "/similar/")
	if profileID == "" || strings.Contains(profileID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}

	results, err := h.deps.Similar(r.Context(), profileID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, similarResponse{Results: results})
}
