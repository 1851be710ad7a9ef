package criteria

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AnonymousViewer is the sentinel folded into cache keys when no viewer
// identity is supplied.
const AnonymousViewer = "anon"

// CacheKey derives a canonical key for (criteria, viewer). The key is
// independent of field population order: every field is emitted in a fixed
// sequence and list fields are normalized (lowercased, de-duplicated,
// sorted) first. Two semantically identical criteria values always hash to
// the same key.
func (c Criteria) CacheKey(viewerID string) string {
	n := c.Normalized()

	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(n.Query)))
	b.WriteString("|sk=")
	b.WriteString(strings.Join(normTags(n.Skills), ","))
	b.WriteString("|in=")
	b.WriteString(strings.Join(normTags(n.Industries), ","))
	b.WriteString("|loc=")
	b.WriteString(strings.ToLower(strings.TrimSpace(n.Location)))
	b.WriteString("|rm=")
	b.WriteString(n.Remote)
	b.WriteString("|smin=")
	b.WriteString(optInt(n.SalaryMin))
	b.WriteString("|smax=")
	b.WriteString(optInt(n.SalaryMax))
	b.WriteString("|mc=")
	b.WriteString(optInt(n.MinCompletion))
	fmt.Fprintf(&b, "|vf=%t|ru=%t|p=%d|ps=%d|rank=%s",
		n.VerifiedOnly, n.RecentlyUpdated, n.Page, n.PageSize, n.Rank)

	viewer := strings.TrimSpace(viewerID)
	if viewer == "" {
		viewer = AnonymousViewer
	}
	b.WriteString("|viewer=")
	b.WriteString(viewer)

	sum := sha256.Sum256([]byte(b.String()))
	return "search:" + hex.EncodeToString(sum[:])
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
