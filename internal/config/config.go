// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DatabaseURL points at the profile store. Empty selects the
	// in-memory store (single-process deployments and tests).
	DatabaseURL string `koanf:"database_url"`

	// RedisURL selects the Redis cache backing when set; empty selects
	// the in-memory cache.
	RedisURL string `koanf:"redis_url"`

	// CacheTTLSeconds bounds result-cache freshness.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheSweepSeconds enables the in-memory cache sweep when positive.
	CacheSweepSeconds int `koanf:"cache_sweep_seconds"`

	// ScoringParallelism sets the scoring fan-out width.
	ScoringParallelism int `koanf:"scoring_parallelism"`

	// FacetMaxValues truncates each facet dimension.
	FacetMaxValues int `koanf:"facet_max_values"`

	// SuggestionLimit caps auto-complete suggestions per query.
	SuggestionLimit int `koanf:"suggestion_limit"`

	// Scoring weight table. Zero values fall back to the engine defaults.
	CompletionFactor  float64 `koanf:"completion_factor"`
	SkillWeight       float64 `koanf:"skill_weight"`
	IndustryWeight    float64 `koanf:"industry_weight"`
	LocationBonus     float64 `koanf:"location_bonus"`
	VerifiedBonus     float64 `koanf:"verified_bonus"`
	RecencyBonus      float64 `koanf:"recency_bonus"`
	RecencyWindowDays int     `koanf:"recency_window_days"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		CacheTTLSeconds:    300,
		CacheSweepSeconds:  60,
		ScoringParallelism: runtime.NumCPU(),
		FacetMaxValues:     15,
		SuggestionLimit:    10,
		CompletionFactor:   0.30,
		SkillWeight:        30,
		IndustryWeight:     20,
		LocationBonus:      15,
		VerifiedBonus:      10,
		RecencyBonus:       5,
		RecencyWindowDays:  7,
	}
}
