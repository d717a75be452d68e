package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

// TestSplit_CreatesRemainder verifies a large free block is carved into a
// busy block and a free remainder with fresh boundary tags.
func TestSplit_CreatesRemainder(t *testing.T) {
	a := newTestArena(t, 4096)

	ref, err := a.Alloc(16) // 24-byte footprint out of the whole arena
	require.NoError(t, err)

	blocks := mustSnapshot(t, a)
	require.Len(t, blocks, 2)

	taken, rem := blocks[0], blocks[1]
	assert.True(t, taken.Busy)
	assert.Equal(t, int32(24), taken.Size)
	assert.Equal(t, Ref(taken.Begin)+format.WordSize, ref)

	assert.False(t, rem.Busy, "remainder must be free")
	assert.True(t, rem.PrevBusy, "remainder sits right after the new busy block")
	assert.Equal(t, taken.Begin+taken.Size, rem.Begin, "remainder starts where the busy block ends")
	assert.Equal(t, a.Usable()-24, rem.Size)

	assert.Equal(t, 1, a.GetStats().SplitCount)
	assertInvariants(t, a)
	assertConservation(t, a)
}

// TestSplit_WithinCarvedBlock verifies splitting inside an interior free
// block leaves the follower's prev-state bit untouched until the remainder
// itself is taken.
func TestSplit_WithinCarvedBlock(t *testing.T) {
	a := newTestArena(t, 4096)

	// One free 72-byte footprint fenced by separators.
	refs := carveFreeRuns(t, a, []int{64})

	ref, err := a.Alloc(40) // needs 48, splits 72 into 48 + 24
	require.NoError(t, err)
	require.Equal(t, refs[0], ref, "the carve is the only fit")

	taken := blockContaining(t, a, ref)
	assert.Equal(t, int32(48), taken.Size)

	blocks := mustSnapshot(t, a)
	var rem, follower BlockInfo
	for i, b := range blocks {
		if b.Begin == taken.Begin+taken.Size {
			rem = b
			follower = blocks[i+1]
		}
	}
	require.NotZero(t, rem.Size, "remainder block not found")

	assert.False(t, rem.Busy)
	assert.Equal(t, int32(24), rem.Size)
	assert.True(t, rem.PrevBusy)
	assert.False(t, follower.PrevBusy, "follower still sees a free predecessor")

	// Taking the remainder exactly flips the follower's prev-state bit.
	ref2, err := a.Alloc(20) // needs 24
	require.NoError(t, err)
	assert.Equal(t, Ref(rem.Begin)+format.WordSize, ref2)

	blocks = mustSnapshot(t, a)
	for i, b := range blocks {
		if b.Begin == rem.Begin {
			assert.True(t, b.Busy)
			assert.True(t, blocks[i+1].PrevBusy, "follower must now see a busy predecessor")
		}
	}

	assertInvariants(t, a)
}

// TestSplit_ZeroRemainderAbsorbs verifies an exact fit takes the whole block
// with no split. With an 8-byte granularity the smallest positive remainder
// is already a viable free block, so the fold-in threshold fires exactly at
// zero.
func TestSplit_ZeroRemainderAbsorbs(t *testing.T) {
	a := newTestArena(t, 4096)

	refs := carveFreeRuns(t, a, []int{64}) // one free 72-byte footprint

	before := a.GetStats()
	ref, err := a.Alloc(66) // needs 72 exactly
	require.NoError(t, err)

	assert.Equal(t, refs[0], ref)
	assert.Equal(t, before.SplitCount, a.GetStats().SplitCount, "exact fit must not split")

	taken := blockContaining(t, a, ref)
	assert.True(t, taken.Busy)
	assert.Equal(t, int32(72), taken.Size, "whole footprint is handed out")

	assertInvariants(t, a)
	assertConservation(t, a)
}
