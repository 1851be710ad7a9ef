// Package model contains domain models passed between layers.
package model

import "time"

// Privacy controls who may see a profile in search results.
type Privacy string

// Privacy levels, from most to least open.
const (
	PrivacyPublic      Privacy = "public"
	PrivacySemiPrivate Privacy = "semi_private"
	PrivacyPrivate     Privacy = "private"
)

// RemotePreference captures a candidate's working-arrangement preference.
type RemotePreference string

// Remote preference values.
const (
	RemoteOnly   RemotePreference = "remote_only"
	RemoteHybrid RemotePreference = "hybrid"
	RemoteOnSite RemotePreference = "on_site"
	RemoteAny    RemotePreference = "no_preference"
)

// CandidateProfile is the read-only view of a candidate exposed by the
// profile store. The search engine never mutates it.
type CandidateProfile struct {
	ID         string           // unique profile identifier
	OwnerID    string           // owning user identifier
	Headline   string           // headline/summary text
	Location   string           // free-form location, e.g., "Dublin, Ireland"
	Skills     []string         // skill tags, order irrelevant
	Industries []string         // industry tags
	Companies  []string         // past/current company names
	Title      string           // current job title
	SalaryMin  *int             // expected salary lower bound, nil when unset
	SalaryMax  *int             // expected salary upper bound, nil when unset
	Remote     RemotePreference // remote-work preference
	Privacy    Privacy          // visibility level
	Verified   bool             // identity verification flag
	Completion int              // profile completion percentage, 0-100
	UpdatedAt  time.Time        // last profile mutation time
}

// HasSalaryRange reports whether the profile declares any salary expectation.
func (p *CandidateProfile) HasSalaryRange() bool {
	return p.SalaryMin != nil || p.SalaryMax != nil
}

// SalaryBounds returns the declared salary interval. A missing bound is
// widened to the permissive side so interval-overlap checks stay simple.
func (p *CandidateProfile) SalaryBounds() (min, max int) {
	min = 0
	max = int(^uint(0) >> 1)
	if p.SalaryMin != nil {
		min = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		max = *p.SalaryMax
	}
	return min, max
}
