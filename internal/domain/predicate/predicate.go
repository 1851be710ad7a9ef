// Package predicate compiles validated search criteria into a conjunction
// of independent filter predicates over candidate profiles.
//
// Each criteria field compiles to exactly one predicate, or to no predicate
// at all when the field is absent. Fields never interact during compilation;
// their combined effect is pure intersection. The compiler assumes criteria
// already passed validation and never re-validates.
package predicate

import (
	"strings"
	"time"

	"github.com/talentgrid/searchd/internal/domain/criteria"
	"github.com/talentgrid/searchd/internal/domain/model"
)

// RecentWindow bounds the "recently updated" filter.
const RecentWindow = 7 * 24 * time.Hour

// Predicate tests one profile for filter membership.
type Predicate func(p *model.CandidateProfile) bool

// Set is a conjunction of predicates.
type Set []Predicate

// Matches reports whether the profile satisfies every predicate.
func (s Set) Matches(p *model.CandidateProfile) bool {
	for _, pred := range s {
		if !pred(p) {
			return false
		}
	}
	return true
}

// Compile translates criteria into its predicate set. The now argument
// anchors time-relative filters so results are reproducible in tests.
func Compile(c criteria.Criteria, now time.Time) Set {
	var set Set

	if q := strings.TrimSpace(c.Query); q != "" {
		tokens := Tokenize(q)
		set = append(set, func(p *model.CandidateProfile) bool {
			haystack := searchableText(p)
			for _, tok := range tokens {
				if !strings.Contains(haystack, tok) {
					return false
				}
			}
			return true
		})
	}

	if len(c.Skills) > 0 {
		want := lowerSet(c.Skills)
		set = append(set, func(p *model.CandidateProfile) bool {
			return anyTagMatch(p.Skills, want)
		})
	}

	if len(c.Industries) > 0 {
		want := lowerSet(c.Industries)
		set = append(set, func(p *model.CandidateProfile) bool {
			return anyTagMatch(p.Industries, want)
		})
	}

	if loc := strings.ToLower(strings.TrimSpace(c.Location)); loc != "" {
		set = append(set, func(p *model.CandidateProfile) bool {
			return strings.Contains(strings.ToLower(p.Location), loc)
		})
	}

	if c.Remote != "" {
		want := model.RemotePreference(c.Remote)
		set = append(set, func(p *model.CandidateProfile) bool {
			return p.Remote == want
		})
	}

	if c.SalaryMin != nil || c.SalaryMax != nil {
		set = append(set, salaryOverlap(c.SalaryMin, c.SalaryMax))
	}

	if c.MinCompletion != nil {
		min := *c.MinCompletion
		set = append(set, func(p *model.CandidateProfile) bool {
			return p.Completion >= min
		})
	}

	if c.VerifiedOnly {
		set = append(set, func(p *model.CandidateProfile) bool {
			return p.Verified
		})
	}

	if c.RecentlyUpdated {
		cutoff := now.Add(-RecentWindow)
		set = append(set, func(p *model.CandidateProfile) bool {
			return p.UpdatedAt.After(cutoff)
		})
	}

	return set
}

// salaryOverlap implements interval-overlap matching for whichever bounds
// the query supplies. A candidate that declares no salary range at all does
// not match a salary-bounded query.
func salaryOverlap(qmin, qmax *int) Predicate {
	return func(p *model.CandidateProfile) bool {
		if !p.HasSalaryRange() {
			return false
		}
		candMin, candMax := p.SalaryBounds()
		if qmin != nil && candMax < *qmin {
			return false
		}
		if qmax != nil && candMin > *qmax {
			return false
		}
		return true
	}
}

// searchableText flattens the profile fields covered by free-text search
// into one lowercase haystack.
func searchableText(p *model.CandidateProfile) string {
	parts := make([]string, 0, 4+len(p.Skills)+len(p.Companies))
	parts = append(parts, p.Headline, p.Title, p.Location)
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Companies...)
	return strings.ToLower(strings.Join(parts, " "))
}

func lowerSet(tags []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

// anyTagMatch implements ANY-of semantics: the candidate matches when it
// carries at least one of the requested tags.
func anyTagMatch(have []string, want map[string]struct{}) bool {
	for _, h := range have {
		if _, ok := want[strings.ToLower(strings.TrimSpace(h))]; ok {
			return true
		}
	}
	return false
}
