// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/talentgrid/searchd/internal/domain/suggest"
)

// SuggestHandler handles auto-complete suggestion requests.
type SuggestHandler struct {
	deps Dependencies
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(deps Dependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HandleSuggest handles GET /suggest?domain=skills&q=rea requests.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	domain := suggest.Domain(r.URL.Query().Get("domain"))
	partial := r.URL.Query().Get("q")

	values, err := h.deps.Suggest(r.Context(), domain, partial)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: values})
}
