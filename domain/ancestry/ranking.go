package ancestry

import (
	"sort"

	"github.com/pkg/errors"
)

// AncestrySet is a transaction together with its ancestor count.
type AncestrySet struct {
	TransactionID string
	AncestorCount uint64
}

// LargestAncestrySets returns the limit transactions with the largest
// ancestor counts, largest first. Equal counts are ordered by ascending
// transaction ID. Fewer than limit entries are returned when the graph is
// smaller, and none when limit is zero.
func (g *Graph) LargestAncestrySets(limit int) ([]*AncestrySet, error) {
	if limit < 0 {
		return nil, wrapAncestryError(ErrInvalidLimit, errors.Errorf("limit %d is negative", limit))
	}
	if !g.ready {
		return nil, wrapAncestryError(ErrNotReady, nil)
	}

	sets := make([]*AncestrySet, 0, len(g.nodes))
	for _, n := range g.nodes {
		sets = append(sets, &AncestrySet{
			TransactionID: n.id,
			AncestorCount: n.ancestorCount,
		})
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].AncestorCount != sets[j].AncestorCount {
			return sets[i].AncestorCount > sets[j].AncestorCount
		}
		return sets[i].TransactionID < sets[j].TransactionID
	})

	if limit < len(sets) {
		sets = sets[:limit]
	}
	return sets, nil
}
