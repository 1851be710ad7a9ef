// Package criteria defines the immutable search-criteria value object,
// its boundary validation, and the canonical cache-key serialization.
//
// Conventions:
// - Validation happens exactly once, at the orchestrator boundary; the
//   predicate compiler assumes a validated value and never re-checks.
// - Validation rejects; it never silently clamps.
package criteria

import (
	"fmt"
	"sort"
	"strings"
)

// RankMode selects the primary sort key for ranked results.
type RankMode string

// Supported ranking modes.
const (
	RankRelevance  RankMode = "relevance"
	RankRecency    RankMode = "recency"
	RankCompletion RankMode = "completion"
)

// Pagination limits.
const (
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// Criteria is an immutable search request. Zero values mean "filter absent";
// optional numeric bounds use pointers so zero remains expressible.
type Criteria struct {
	Query           string
	Skills          []string
	Industries      []string
	Location        string
	Remote          string // one of model.RemotePreference values, or ""
	SalaryMin       *int
	SalaryMax       *int
	MinCompletion   *int
	VerifiedOnly    bool
	RecentlyUpdated bool
	Page            int
	PageSize        int
	Rank            RankMode
}

// Normalized returns a copy with defaults applied: page 1, default page
// size, relevance ranking. Call after Validate.
func (c Criteria) Normalized() Criteria {
	if c.Page == 0 {
		c.Page = 1
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Rank == "" {
		c.Rank = RankRelevance
	}
	return c
}

// Validate checks every supplied field and reports the first violation
// wrapped in ErrInvalidCriteria.
func (c Criteria) Validate() error {
	if c.Page < 0 {
		return fmt.Errorf("%w: page must not be negative, got %d", ErrInvalidCriteria, c.Page)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("%w: page_size must not be negative, got %d", ErrInvalidCriteria, c.PageSize)
	}
	if c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page_size %d exceeds maximum %d", ErrInvalidCriteria, c.PageSize, MaxPageSize)
	}
	if c.SalaryMin != nil && *c.SalaryMin < 0 {
		return fmt.Errorf("%w: salary_min must not be negative, got %d", ErrInvalidCriteria, *c.SalaryMin)
	}
	if c.SalaryMax != nil && *c.SalaryMax < 0 {
		return fmt.Errorf("%w: salary_max must not be negative, got %d", ErrInvalidCriteria, *c.SalaryMax)
	}
	if c.SalaryMin != nil && c.SalaryMax != nil && *c.SalaryMin > *c.SalaryMax {
		return fmt.Errorf("%w: salary_min %d exceeds salary_max %d", ErrInvalidCriteria, *c.SalaryMin, *c.SalaryMax)
	}
	if c.MinCompletion != nil && (*c.MinCompletion < 0 || *c.MinCompletion > 100) {
		return fmt.Errorf("%w: min_completion must be within [0,100], got %d", ErrInvalidCriteria, *c.MinCompletion)
	}
	if c.Remote != "" {
		switch c.Remote {
		case "remote_only", "hybrid", "on_site", "no_preference":
		default:
			return fmt.Errorf("%w: unknown remote preference %q", ErrInvalidCriteria, c.Remote)
		}
	}
	if c.Rank != "" {
		switch c.Rank {
		case RankRelevance, RankRecency, RankCompletion:
		default:
			return fmt.Errorf("%w: unknown rank mode %q", ErrInvalidCriteria, c.Rank)
		}
	}
	return nil
}

// IsEmpty reports whether no filter at all is set; such a query matches
// every visible profile.
func (c Criteria) IsEmpty() bool {
	return c.Query == "" &&
		len(c.Skills) == 0 &&
		len(c.Industries) == 0 &&
		c.Location == "" &&
		c.Remote == "" &&
		c.SalaryMin == nil &&
		c.SalaryMax == nil &&
		c.MinCompletion == nil &&
		!c.VerifiedOnly &&
		!c.RecentlyUpdated
}

// normTags lowercases, trims, and de-duplicates a tag list, returning it
// sorted so serialization is order-independent.
func normTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
