// Package scoring computes bounded relevance scores for candidate
// profiles against a search query.
package scoring

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/talentgrid/searchd/internal/domain/criteria"
	"github.com/talentgrid/searchd/internal/domain/model"
	"github.com/talentgrid/searchd/internal/domain/types"
)

// Scoring constants.
const (
	maxScoreValue    = 100
	minParallelBatch = 256 // below this, fan-out costs more than it saves
)

// Weights holds the tunable factors of the additive scoring formula.
// Tuning happens here, never in the algorithm's structure.
type Weights struct {
	CompletionFactor float64       // multiplier applied to completion percentage
	SkillWeight      float64       // full-overlap contribution of requested skills
	IndustryWeight   float64       // full-overlap contribution of requested industries
	LocationBonus    float64       // flat bonus for a location substring match
	VerifiedBonus    float64       // flat bonus for verified profiles
	RecencyBonus     float64       // flat bonus for recently updated profiles
	RecencyWindow    time.Duration // how recent "recently updated" is
}

// DefaultWeights returns the reference weight table.
func DefaultWeights() Weights {
	return Weights{
		CompletionFactor: 0.30,
		SkillWeight:      30,
		IndustryWeight:   20,
		LocationBonus:    15,
		VerifiedBonus:    10,
		RecencyBonus:     5,
		RecencyWindow:    7 * 24 * time.Hour,
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights replaces the default weight table. Non-positive window
// values are ignored.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.RecencyWindow <= 0 {
			w.RecencyWindow = e.weights.RecencyWindow
		}
		e.weights = w
	}
}

// WithClock sets the time source used for recency checks. Intended for
// tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithParallelism sets the number of goroutines used to score a fetched
// candidate set. Scoring is a pure function over request-local data, so
// workers share nothing but the input slice.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// Engine scores visible profiles against the original criteria. It is
// stateless per call and safe for concurrent use.
type Engine struct {
	weights     Weights
	now         func() time.Time
	parallelism int
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:     DefaultWeights(),
		now:         time.Now,
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the ScoredResult for one profile. Each term of the
// formula is computed independently, summed, clamped to [0,100], and
// rounded to two decimals.
func (e *Engine) Score(p *model.CandidateProfile, c criteria.Criteria) types.ScoredResult {
	w := e.weights
	score := float64(p.Completion) * w.CompletionFactor
	var reasons []string

	if n := len(c.Skills); n > 0 {
		matched := overlapCount(p.Skills, c.Skills)
		if matched > 0 {
			score += float64(matched) / float64(n) * w.SkillWeight
			reasons = append(reasons, fmt.Sprintf("matches %d of %d requested skills", matched, n))
		}
	}

	if n := len(c.Industries); n > 0 {
		matched := overlapCount(p.Industries, c.Industries)
		if matched > 0 {
			score += float64(matched) / float64(n) * w.IndustryWeight
			reasons = append(reasons, fmt.Sprintf("matches %d of %d requested industries", matched, n))
		}
	}

	if loc := strings.ToLower(strings.TrimSpace(c.Location)); loc != "" {
		if strings.Contains(strings.ToLower(p.Location), loc) {
			score += w.LocationBonus
			reasons = append(reasons, "location match")
		}
	}

	if p.Verified {
		score += w.VerifiedBonus
		reasons = append(reasons, "verified profile")
	}

	if e.now().Sub(p.UpdatedAt) <= w.RecencyWindow {
		score += w.RecencyBonus
		reasons = append(reasons, "recently active")
	}

	score = math.Max(0, math.Min(maxScoreValue, score))
	score = math.Round(score*100) / 100

	return types.ScoredResult{
		ProfileID:    p.ID,
		Headline:     p.Headline,
		Location:     p.Location,
		Score:        score,
		MatchReasons: reasons,
		Contactable:  p.Privacy != model.PrivacyPrivate,
		LastActivity: p.UpdatedAt,
	}
}

// ranked pairs a result with the profile attributes used by non-relevance
// rank modes.
type ranked struct {
	result     types.ScoredResult
	updatedAt  time.Time
	completion int
}

// ScoreAndRank scores every profile and orders the results by the given
// rank mode. Relevance sorts by score descending; the sort is stable, so
// equal scores retain store fetch order. Recency and completion modes use
// last-update time or completion percentage as the primary key with score
// as secondary tie-break.
func (e *Engine) ScoreAndRank(profiles []*model.CandidateProfile, c criteria.Criteria, mode criteria.RankMode) []types.ScoredResult {
	rs := make([]ranked, len(profiles))
	e.scoreAll(profiles, c, rs)

	switch mode {
	case criteria.RankRecency:
		sort.SliceStable(rs, func(i, j int) bool {
			if !rs[i].updatedAt.Equal(rs[j].updatedAt) {
				return rs[i].updatedAt.After(rs[j].updatedAt)
			}
			return rs[i].result.Score > rs[j].result.Score
		})
	case criteria.RankCompletion:
		sort.SliceStable(rs, func(i, j int) bool {
			if rs[i].completion != rs[j].completion {
				return rs[i].completion > rs[j].completion
			}
			return rs[i].result.Score > rs[j].result.Score
		})
	default:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].result.Score > rs[j].result.Score
		})
	}

	out := make([]types.ScoredResult, len(rs))
	for i, r := range rs {
		out[i] = r.result
	}
	return out
}

// scoreAll fills rs with scored results, fanning out across workers when
// the candidate set is large enough to benefit. Each worker writes only its
// own index range.
func (e *Engine) scoreAll(profiles []*model.CandidateProfile, c criteria.Criteria, rs []ranked) {
	workers := e.parallelism
	if workers <= 1 || len(profiles) < minParallelBatch {
		for i, p := range profiles {
			rs[i] = ranked{result: e.Score(p, c), updatedAt: p.UpdatedAt, completion: p.Completion}
		}
		return
	}
	if workers > len(profiles) {
		workers = len(profiles)
	}

	var wg sync.WaitGroup
	chunk := (len(profiles) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(profiles) {
			hi = len(profiles)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				p := profiles[i]
				rs[i] = ranked{result: e.Score(p, c), updatedAt: p.UpdatedAt, completion: p.Completion}
			}
		}(lo, hi)
	}
	wg.Wait()
}

// overlapCount counts how many requested tags the candidate carries,
// case-insensitively.
func overlapCount(have, want []string) int {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	n := 0
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; ok {
			n++
		}
	}
	return n
}
