package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentgrid/searchd/internal/domain/model"
)

// MemoryStore implements Store over an in-process profile set. Used by
// tests and single-process deployments seeded from elsewhere.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*model.CandidateProfile
	order    []string // preserves insertion order for deterministic fetches

	// failing simulates a store outage when set.
	failing bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*model.CandidateProfile)}
}

// Upsert inserts or replaces a profile.
func (s *MemoryStore) Upsert(p *model.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.profiles[p.ID] = p
}

// SetFailing toggles simulated outage behavior.
func (s *MemoryStore) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

// FetchCandidates returns every profile in insertion order.
func (s *MemoryStore) FetchCandidates(ctx context.Context) ([]*model.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, fmt.Errorf("%w: simulated outage", ErrUnavailable)
	}
	out := make([]*model.CandidateProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id])
	}
	return out, nil
}

// FetchProfileByID resolves one profile.
func (s *MemoryStore) FetchProfileByID(ctx context.Context, id string) (*model.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, fmt.Errorf("%w: simulated outage", ErrUnavailable)
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return p, nil
}
