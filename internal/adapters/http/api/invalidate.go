// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// InvalidateHandler handles cache-invalidation webhooks fired by the
// profile management service after any profile mutation.
type InvalidateHandler struct {
	deps Dependencies
}

// NewInvalidateHandler creates a new invalidation handler.
func NewInvalidateHandler(deps Dependencies) *InvalidateHandler {
	return &InvalidateHandler{deps: deps}
}

type invalidateResponse struct {
	Status string `json:"status"`
}

// HandleInvalidate handles POST /profiles/invalidate/{owner_id} requests.
func (h *InvalidateHandler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ownerID := strings.TrimPrefix(r.URL.Path, "/profiles/invalidate/")
	if ownerID == "" || strings.Contains(ownerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if err := h.deps.InvalidateProfile(r.Context(), ownerID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, invalidateResponse{Status: "invalidated"})
}
