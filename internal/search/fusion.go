package search

import (
	"sort"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// DefaultFusionK is the standard RRF smoothing constant.
const DefaultFusionK = 60

// Fuse merges independently ranked lists with Reciprocal Rank Fusion:
// an item at 1-based rank r in a list contributes 1/(k+r) to its total;
// ids absent from a list contribute nothing from it. The result is
// ordered by descending total, ties broken by first discovery order.
// Pure function: empty or single-element inputs degrade gracefully (a
// single list comes back as a rank transform of itself).
func Fuse(lists [][]store.RankedCandidate, k int) []store.RankedCandidate {
	if k <= 0 {
		k = DefaultFusionK
	}

	scores := make(map[string]float64)
	var order []string

	for _, list := range lists {
		for rank, candidate := range list {
			if _, seen := scores[candidate.ID]; !seen {
				order = append(order, candidate.ID)
			}
			scores[candidate.ID] += 1.0 / float64(k+rank+1)
		}
	}

	fused := make([]store.RankedCandidate, 0, len(order))
	for _, id := range order {
		fused = append(fused, store.RankedCandidate{ID: id, Score: scores[id]})
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	return fused
}
