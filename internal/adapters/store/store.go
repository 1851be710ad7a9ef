// Package store defines the profile-store collaborator contract and its
// implementations. The store may return a superset of matching profiles;
// the engine applies predicate and visibility filtering itself.
package store

import (
	"context"

	"github.com/talentgrid/searchd/internal/domain/model"
)

// Store provides read access to the candidate profile population.
type Store interface {
	// FetchCandidates returns candidate profiles for scoring. The result
	// may be a superset of what the criteria match; callers filter.
	// Store outages surface as ErrUnavailable.
	FetchCandidates(ctx context.Context) ([]*model.CandidateProfile, error)

	// FetchProfileByID resolves one profile. Returns ErrNotFound when the
	// identifier is unknown.
	FetchProfileByID(ctx context.Context, id string) (*model.CandidateProfile, error)
}
