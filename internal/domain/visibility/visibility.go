// Package visibility implements the privacy gate deciding whether a
// profile may appear in any result at all, independent of scoring.
package visibility

import "github.com/talentgrid/searchd/internal/domain/model"

// Visible reports whether the profile may be shown to the viewer.
// viewerID is empty for anonymous requests. Rules apply in precedence
// order:
//  1. the owner always sees their own profile
//  2. public profiles are visible to anyone
//  3. semi-private profiles require an authenticated (non-empty) viewer
//  4. private profiles, and any unrecognized privacy value, are hidden
func Visible(p *model.CandidateProfile, viewerID string) bool {
	if viewerID != "" && viewerID == p.OwnerID {
		return true
	}
	switch p.Privacy {
	case model.PrivacyPublic:
		return true
	case model.PrivacySemiPrivate:
		return viewerID != ""
	default:
		return false
	}
}

// Filter returns the profiles visible to the viewer, preserving input
// order. It runs after predicate filtering and before scoring; profiles it
// drops never reach facets or match counts.
func Filter(profiles []*model.CandidateProfile, viewerID string) []*model.CandidateProfile {
	out := make([]*model.CandidateProfile, 0, len(profiles))
	for _, p := range profiles {
		if Visible(p, viewerID) {
			out = append(out, p)
		}
	}
	return out
}
