// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/talentgrid/searchd/internal/domain/criteria"
)

// SearchHandler handles candidate search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles GET /search requests. All criteria arrive as query
// parameters; list parameters are comma-separated.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_criteria", err)
		return
	}

	resp, err := h.deps.Search(r.Context(), c, viewerID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// criteriaFromQuery parses the query string into a Criteria value. Parsing
// rejects malformed numbers and booleans; semantic validation (bounds,
// enums) happens once, inside the orchestrator.
func criteriaFromQuery(q url.Values) (criteria.Criteria, error) {
	c := criteria.Criteria{
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Remote:   q.Get("remote"),
		Rank:     criteria.RankMode(q.Get("rank")),
	}
	if v := q.Get("skills"); v != "" {
		c.Skills = splitList(v)
	}
	if v := q.Get("industries"); v != "" {
		c.Industries = splitList(v)
	}

	var err error
	if c.SalaryMin, err = optIntParam(q, "salary_min"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.SalaryMax, err = optIntParam(q, "salary_max"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.MinCompletion, err = optIntParam(q, "min_completion"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.Page, err = intParam(q, "page"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.PageSize, err = intParam(q, "page_size"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.VerifiedOnly, err = boolParam(q, "verified_only"); err != nil {
		return criteria.Criteria{}, err
	}
	if c.RecentlyUpdated, err = boolParam(q, "recently_updated"); err != nil {
		return criteria.Criteria{}, err
	}
	return c, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optIntParam(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("parameter %s must be an integer", name)
	}
	return &n, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %s must be an integer", name)
	}
	return n, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parameter %s must be a boolean", name)
	}
	return b, nil
}
