package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

func ranked(ids ...string) []store.RankedCandidate {
	out := make([]store.RankedCandidate, len(ids))
	for i, id := range ids {
		out[i] = store.RankedCandidate{ID: id, Score: float64(len(ids) - i)}
	}
	return out
}

func fusedIDs(results []store.RankedCandidate) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}

func TestFuse_SingleListPreservesOrder(t *testing.T) {
	list := ranked("a", "b", "c")
	fused := Fuse([][]store.RankedCandidate{list}, DefaultFusionK)
	assert.Equal(t, []string{"a", "b", "c"}, fusedIDs(fused))
}

func TestFuse_SelfFusionIsOrderStable(t *testing.T) {
	list := ranked("a", "b", "c")
	fused := Fuse([][]store.RankedCandidate{list, list}, DefaultFusionK)
	assert.Equal(t, []string{"a", "b", "c"}, fusedIDs(fused))
}

func TestFuse_AbsentIDContributesNothing(t *testing.T) {
	// X ranked first in one list and absent from the other must rank no
	// worse than when X is first in both lists.
	withX := ranked("x", "a", "b")
	withoutX := ranked("a", "b")

	partial := Fuse([][]store.RankedCandidate{withX, withoutX}, DefaultFusionK)
	full := Fuse([][]store.RankedCandidate{withX, withX}, DefaultFusionK)

	assert.LessOrEqual(t, indexOf(t, partial, "x"), indexOf(t, full, "x"))
}

func indexOf(t *testing.T, results []store.RankedCandidate, id string) int {
	t.Helper()
	for i, r := range results {
		if r.ID == id {
			return i
		}
	}
	t.Fatalf("id %q not in fused results", id)
	return -1
}

func TestFuse_RankContribution(t *testing.T) {
	fused := Fuse([][]store.RankedCandidate{ranked("a", "b")}, 60)
	require.Len(t, fused, 2)
	assert.InDelta(t, 1.0/61.0, fused[0].Score, 1e-12)
	assert.InDelta(t, 1.0/62.0, fused[1].Score, 1e-12)
}

func TestFuse_MergesDisjointLists(t *testing.T) {
	fused := Fuse([][]store.RankedCandidate{
		ranked("a", "b"),
		ranked("c", "b"),
	}, 60)

	// b appears in both lists (ranks 2 and 2), beating single-list rank-1 entries:
	// 2/62 > 1/61.
	assert.Equal(t, []string{"b", "a", "c"}, fusedIDs(fused))
}

func TestFuse_EmptyInputs(t *testing.T) {
	assert.Empty(t, Fuse(nil, 60))
	assert.Empty(t, Fuse([][]store.RankedCandidate{{}, {}}, 60))

	fused := Fuse([][]store.RankedCandidate{{}, ranked("a")}, 60)
	assert.Equal(t, []string{"a"}, fusedIDs(fused))
}

func TestFuse_TiesKeepDiscoveryOrder(t *testing.T) {
	// Two lists with symmetric ranks: a and b tie; a was discovered first.
	fused := Fuse([][]store.RankedCandidate{
		ranked("a", "b"),
		ranked("b", "a"),
	}, 60)
	assert.Equal(t, []string{"a", "b"}, fusedIDs(fused))
}
