// Package cache defines the result-cache contract used to absorb repeated
// identical searches, with in-memory and Redis-backed implementations.
//
// Entries are immutable once written; recomputation is idempotent, so
// last-writer-wins on key collision is acceptable. A failing cache must
// degrade to miss behavior at the caller, never fail the search.
package cache

import (
	"context"
	"time"

	"github.com/talentgrid/searchd/internal/domain/types"
)

// DefaultTTL is the fixed freshness window for cached results.
const DefaultTTL = 5 * time.Minute

// Entry is one cached ranked result set plus the wall-clock time it was
// computed. Facets are stored alongside the results so a hit returns
// exactly what the producing miss computed.
type Entry struct {
	Results      []types.ScoredResult `json:"results"`
	Facets       types.FacetCounts    `json:"facets"`
	TotalMatched int                  `json:"total_matched"`
	ComputedAt   time.Time            `json:"computed_at"`
}

// Cache maps canonical (criteria, viewer) keys to previously computed
// result sets. Implementations must be safe for concurrent use and must
// treat entries older than the TTL as absent on read.
type Cache interface {
	// Get returns the entry for key if present and fresh.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Put stores an entry under key with the configured TTL.
	Put(ctx context.Context, key string, e Entry) error

	// Invalidate conservatively drops every entry that may reference the
	// given profile owner. Implementations may flush everything; coarse is
	// correct, fine-grained is an optimization.
	Invalidate(ctx context.Context, ownerID string) error

	// Close releases any background resources.
	Close() error
}
