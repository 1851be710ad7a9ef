// Package types contains common types used across the application
package types

import "time"

// ScoredResult is a ranked search hit: a candidate projection plus the
// relevance score computed against the query.
type ScoredResult struct {
	ProfileID    string    `json:"profile_id"`
	Headline     string    `json:"headline"`
	Location     string    `json:"location"`
	Score        float64   `json:"score"`
	MatchReasons []string  `json:"match_reasons"`
	Contactable  bool      `json:"contactable"`
	LastActivity time.Time `json:"last_activity"`
}

// FacetValue is one (value, count) pair inside a facet dimension.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetCounts maps a facet dimension name to its value counts, ordered by
// count descending and truncated per dimension.
type FacetCounts map[string][]FacetValue

// SearchResponse is the full answer to one search call.
type SearchResponse struct {
	Results      []ScoredResult `json:"results"`
	Facets       FacetCounts    `json:"facets"`
	TotalMatched int            `json:"total_matched"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	CacheHit     bool           `json:"cache_hit"`
}
