// Package service provides the search orchestrator that composes the
// predicate compiler, visibility filter, scoring engine, facet aggregator,
// and cache layer behind the API surface.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/talentgrid/searchd/internal/adapters/cache"
	"github.com/talentgrid/searchd/internal/adapters/store"
	"github.com/talentgrid/searchd/internal/domain/criteria"
	"github.com/talentgrid/searchd/internal/domain/facet"
	"github.com/talentgrid/searchd/internal/domain/model"
	"github.com/talentgrid/searchd/internal/domain/predicate"
	"github.com/talentgrid/searchd/internal/domain/scoring"
	"github.com/talentgrid/searchd/internal/domain/suggest"
	"github.com/talentgrid/searchd/internal/domain/types"
	"github.com/talentgrid/searchd/internal/domain/visibility"
	"github.com/talentgrid/searchd/pkg/logger"
	"github.com/talentgrid/searchd/pkg/metrics"
)

// DefaultSimilarLimit bounds similar-profile discovery when the caller
// supplies no limit.
const DefaultSimilarLimit = 10

// Service orchestrates one search request end to end:
// validate -> cache check -> fetch -> visibility -> score -> facet ->
// cache put -> respond. The cache is the only shared mutable resource;
// everything else is request-local.
type Service struct {
	profiles  store.Store
	results   cache.Cache
	scorer    *scoring.Engine
	facets    *facet.Aggregator
	suggester *suggest.Engine

	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCache sets the result cache backing.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.results = c
		}
	}
}

// WithScoringEngine replaces the default scoring engine.
func WithScoringEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.scorer = e
		}
	}
}

// WithFacetAggregator replaces the default facet aggregator.
func WithFacetAggregator(a *facet.Aggregator) Option {
	return func(s *Service) {
		if a != nil {
			s.facets = a
		}
	}
}

// WithSuggestionEngine replaces the default suggestion engine.
func WithSuggestionEngine(e *suggest.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.suggester = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service over the given profile store.
func New(profiles store.Store, opts ...Option) *Service {
	s := &Service{
		profiles:  profiles,
		results:   cache.NewMemoryCache(),
		scorer:    scoring.NewEngine(),
		facets:    facet.NewAggregator(),
		suggester: suggest.NewEngine(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("search")
	}
	return s
}

// Search runs one search request for the given viewer. viewerID is empty
// for anonymous callers. Validation failures surface as
// criteria.ErrInvalidCriteria, store outages as store.ErrUnavailable; an
// empty match is a successful response, never an error.
func (s *Service) Search(ctx context.Context, c criteria.Criteria, viewerID string) (types.SearchResponse, error) {
	start := s.now()
	if err := c.Validate(); err != nil {
		return types.SearchResponse{}, err
	}
	c = c.Normalized()
	metrics.RecordSearch()

	key := c.CacheKey(viewerID)
	if entry, ok := s.cacheGet(ctx, key); ok {
		metrics.RecordCacheHit()
		metrics.RecordSearchDuration(float64(s.now().Sub(start).Milliseconds()))
		return s.respond(entry, c, true), nil
	}
	metrics.RecordCacheMiss()

	entry, err := s.compute(ctx, c, viewerID)
	if err != nil {
		return types.SearchResponse{}, err
	}

	if err := s.results.Put(ctx, key, entry); err != nil {
		// A broken cache never fails the search.
		s.logger.Warn(ctx, "cache put failed", logger.Error(err))
	}

	metrics.RecordSearchDuration(float64(s.now().Sub(start).Milliseconds()))
	return s.respond(entry, c, false), nil
}

// compute runs the cache-miss pipeline: fetch superset, predicate filter,
// visibility gate, score and rank, facet.
func (s *Service) compute(ctx context.Context, c criteria.Criteria, viewerID string) (cache.Entry, error) {
	fetched, err := s.profiles.FetchCandidates(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return cache.Entry{}, fmt.Errorf("fetch candidates: %w", err)
	}

	preds := predicate.Compile(c, s.now())
	matched := make([]*model.CandidateProfile, 0, len(fetched))
	for _, p := range fetched {
		if preds.Matches(p) {
			matched = append(matched, p)
		}
	}

	// Visibility runs after predicates and before scoring; profiles
	// dropped here never reach facets or match counts.
	visible := visibility.Filter(matched, viewerID)

	results := s.scorer.ScoreAndRank(visible, c, c.Rank)
	facets := s.facets.Aggregate(visible)

	return cache.Entry{
		Results:      results,
		Facets:       facets,
		TotalMatched: len(visible),
		ComputedAt:   s.now(),
	}, nil
}

// respond pages the full ranked list down to the requested window. Hits
// and misses share this path, so both return identical shapes.
func (s *Service) respond(entry cache.Entry, c criteria.Criteria, hit bool) types.SearchResponse {
	lo := (c.Page - 1) * c.PageSize
	hi := lo + c.PageSize
	if lo > len(entry.Results) {
		lo = len(entry.Results)
	}
	if hi > len(entry.Results) {
		hi = len(entry.Results)
	}
	return types.SearchResponse{
		Results:      entry.Results[lo:hi],
		Facets:       entry.Facets,
		TotalMatched: entry.TotalMatched,
		Page:         c.Page,
		PageSize:     c.PageSize,
		CacheHit:     hit,
	}
}

// cacheGet treats any cache failure as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) (cache.Entry, bool) {
	entry, ok, err := s.results.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "cache get failed; treating as miss", logger.Error(err))
		return cache.Entry{}, false
	}
	return entry, ok
}

// Suggest returns ranked auto-complete values for the domain. Queries
// shorter than two characters return an empty list without any store
// access. Suggestions draw from the anonymously visible population.
func (s *Service) Suggest(ctx context.Context, domain suggest.Domain, partial string) ([]string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(partial)) < suggest.MinQueryLength {
		return []string{}, nil
	}
	if !suggest.ValidDomain(domain) {
		return nil, fmt.Errorf("%w: unknown suggestion domain %q", criteria.ErrInvalidCriteria, domain)
	}

	fetched, err := s.profiles.FetchCandidates(ctx)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	visible := visibility.Filter(fetched, "")

	values := s.suggester.Suggest(visible, domain, partial)
	metrics.RecordSuggestion()
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// Similar finds profiles resembling the reference profile, scored with
// criteria derived from its skills and industries, excluding the reference
// itself. Returns store.ErrNotFound when the reference does not resolve.
func (s *Service) Similar(ctx context.Context, profileID string, limit int) ([]types.ScoredResult, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > criteria.MaxPageSize {
		return nil, fmt.Errorf("%w: limit %d exceeds maximum %d", criteria.ErrInvalidCriteria, limit, criteria.MaxPageSize)
	}

	ref, err := s.profiles.FetchProfileByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("fetch reference profile: %w", err)
	}

	derived := criteria.Criteria{
		Skills:     ref.Skills,
		Industries: ref.Industries,
		PageSize:   limit,
	}.Normalized()

	// Similar discovery recomputes every time: derived criteria change
	// whenever the reference profile does, so cached entries would mostly
	// be dead weight.
	entry, err := s.compute(ctx, derived, "")
	if err != nil {
		return nil, err
	}

	out := make([]types.ScoredResult, 0, limit)
	for _, r := range entry.Results {
		if r.ProfileID == ref.ID {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	metrics.RecordSimilar()
	return out, nil
}

// InvalidateProfile drops cached results after a profile mutation. Call on
// create, update, and privacy changes.
func (s *Service) InvalidateProfile(ctx context.Context, ownerID string) error {
	if err := s.results.Invalidate(ctx, ownerID); err != nil {
		return fmt.Errorf("invalidate cache for owner %s: %w", ownerID, err)
	}
	s.logger.Debug(ctx, "cache invalidated", logger.String("ownerID", ownerID))
	return nil
}

// Close releases the cache backing.
func (s *Service) Close() error {
	if err := s.results.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}
