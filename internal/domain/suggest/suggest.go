// Package suggest produces ranked auto-complete suggestions from the
// visible candidate population.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/talentgrid/searchd/internal/domain/model"
)

// Domain selects which profile attribute feeds suggestions.
type Domain string

// Suggestion domains.
const (
	DomainSkills    Domain = "skills"
	DomainLocations Domain = "locations"
	DomainCompanies Domain = "companies"
	DomainTitles    Domain = "titles"
)

// Limits for suggestion queries.
const (
	MinQueryLength = 2
	DefaultLimit   = 10
)

// ValidDomain reports whether d names a known suggestion domain.
func ValidDomain(d Domain) bool {
	switch d {
	case DomainSkills, DomainLocations, DomainCompanies, DomainTitles:
		return true
	}
	return false
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLimit sets the maximum number of suggestions returned.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// Engine ranks distinct attribute values by observed frequency.
type Engine struct {
	limit int
}

// NewEngine creates a suggestion engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{limit: DefaultLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Suggest returns up to the configured limit of distinct values from the
// given domain that contain partial as a case-insensitive substring,
// ordered by observed frequency descending (value ascending on ties).
// Queries shorter than MinQueryLength runes return nil without touching
// the population; the caller relies on this to skip the store fetch
// entirely.
func (e *Engine) Suggest(profiles []*model.CandidateProfile, domain Domain, partial string) []string {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if utf8.RuneCountInString(needle) < MinQueryLength {
		return nil
	}

	// Distinct values are keyed case-insensitively; the first observed
	// spelling wins.
	freq := make(map[string]int)
	spelling := make(map[string]string)
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		key := strings.ToLower(raw)
		if !strings.Contains(key, needle) {
			return
		}
		if _, ok := spelling[key]; !ok {
			spelling[key] = raw
		}
		freq[key]++
	}

	for _, p := range profiles {
		switch domain {
		case DomainSkills:
			for _, s := range p.Skills {
				add(s)
			}
		case DomainLocations:
			add(p.Location)
		case DomainCompanies:
			for _, c := range p.Companies {
				add(c)
			}
		case DomainTitles:
			add(p.Title)
		}
	}

	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > e.limit {
		keys = keys[:e.limit]
	}

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = spelling[k]
	}
	return out
}
