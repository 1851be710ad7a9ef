// Package facet aggregates grouped counts over the matched, visible
// candidate population to drive search refinement.
package facet

import (
	"sort"
	"strings"

	"github.com/talentgrid/searchd/internal/domain/model"
	"github.com/talentgrid/searchd/internal/domain/types"
)

// Dimension names emitted by the aggregator.
const (
	DimLocation   = "location"
	DimSkill      = "skill"
	DimRemote     = "remote_type"
	DimExperience = "experience_band"
)

// DefaultMaxValues caps the number of values kept per dimension.
const DefaultMaxValues = 15

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithMaxValues sets the per-dimension truncation limit.
func WithMaxValues(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxValues = n
		}
	}
}

// Aggregator computes facet counts in a single pass.
type Aggregator struct {
	maxValues int
}

// NewAggregator creates a facet aggregator with configuration options.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{maxValues: DefaultMaxValues}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate counts facet values across the post-visibility population.
// Callers must pass the full matching set, not the current page; facets
// describe the whole population. Within each dimension, values are ordered
// by count descending (value ascending on ties, so output is
// deterministic) and truncated.
func (a *Aggregator) Aggregate(profiles []*model.CandidateProfile) types.FacetCounts {
	counts := map[string]map[string]int{
		DimLocation:   {},
		DimSkill:      {},
		DimRemote:     {},
		DimExperience: {},
	}

	// Skills are keyed case-insensitively so spellings merge across
	// profiles; the first observed spelling labels the facet value.
	spelling := make(map[string]string)

	for _, p := range profiles {
		if loc := strings.TrimSpace(p.Location); loc != "" {
			counts[DimLocation][loc]++
		}
		seen := make(map[string]struct{}, len(p.Skills))
		for _, s := range p.Skills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := spelling[key]; !ok {
				spelling[key] = s
			}
			counts[DimSkill][key]++
		}
		if p.Remote != "" {
			counts[DimRemote][string(p.Remote)]++
		}
		counts[DimExperience][experienceBand(p.Completion)]++
	}

	skills := make(map[string]int, len(counts[DimSkill]))
	for key, n := range counts[DimSkill] {
		skills[spelling[key]] = n
	}
	counts[DimSkill] = skills

	out := make(types.FacetCounts, len(counts))
	for dim, values := range counts {
		out[dim] = a.rank(values)
	}
	return out
}

func (a *Aggregator) rank(values map[string]int) []types.FacetValue {
	fv := make([]types.FacetValue, 0, len(values))
	for v, c := range values {
		fv = append(fv, types.FacetValue{Value: v, Count: c})
	}
	sort.Slice(fv, func(i, j int) bool {
		if fv[i].Count != fv[j].Count {
			return fv[i].Count > fv[j].Count
		}
		return fv[i].Value < fv[j].Value
	})
	if len(fv) > a.maxValues {
		fv = fv[:a.maxValues]
	}
	return fv
}

// experienceBand buckets completion percentage into a coarse seniority
// proxy used by refinement UIs.
func experienceBand(completion int) string {
	switch {
	case completion >= 76:
		return "established"
	case completion >= 51:
		return "developing"
	case completion >= 26:
		return "starter"
	default:
		return "minimal"
	}
}
