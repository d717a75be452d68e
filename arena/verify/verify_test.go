package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

// blockSpec describes one block when building a raw test region.
type blockSpec struct {
	size     int32
	busy     bool
	prevBusy bool
}

// buildRegion lays out a raw region from specs: one pad word, the given
// blocks back to back, and the end marker. Free blocks get a footer.
func buildRegion(t *testing.T, specs []blockSpec) []byte {
	t.Helper()

	total := int32(2 * format.WordSize)
	for _, s := range specs {
		total += s.size
	}
	data := make([]byte, total)

	off := int32(format.WordSize)
	for _, s := range specs {
		format.PutTag(data, int(off), format.NewTag(s.size, s.busy, s.prevBusy))
		if !s.busy {
			format.PutFooter(data, int(off+s.size)-format.WordSize, s.size)
		}
		off += s.size
	}
	format.PutTag(data, int(off), format.NewTag(0, true, false))
	return data
}

// wellFormed is a small valid layout: busy, free, busy.
func wellFormed(t *testing.T) []byte {
	t.Helper()
	return buildRegion(t, []blockSpec{
		{size: 24, busy: true, prevBusy: true},
		{size: 32, busy: false, prevBusy: true},
		{size: 16, busy: true, prevBusy: false},
	})
}

// TestAllInvariants_Valid tests that a well-formed region passes every check.
func TestAllInvariants_Valid(t *testing.T) {
	data := wellFormed(t)

	err := AllInvariants(data)
	require.NoError(t, err, "Well-formed region should pass validation")
}

// TestBlockLayout_TooSmall tests rejection of a region with no room for a block.
func TestBlockLayout_TooSmall(t *testing.T) {
	err := BlockLayout(make([]byte, 12))
	require.Error(t, err, "Region below the minimum size should fail validation")
	require.Contains(t, err.Error(), "region too small")
}

// TestBlockLayout_UndersizeBlock tests detection of a header below the minimum size.
func TestBlockLayout_UndersizeBlock(t *testing.T) {
	data := wellFormed(t)

	// Corrupt the first header: size 0, busy.
	format.PutU32(data, format.WordSize, 0x1)

	err := BlockLayout(data)
	require.Error(t, err, "Zero-size block should fail validation")
	require.Contains(t, err.Error(), "below minimum")
}

// TestBlockLayout_MisalignedSize tests detection of a size off the granularity.
func TestBlockLayout_MisalignedSize(t *testing.T) {
	data := wellFormed(t)

	// Size 12 clears the low bits but is not a multiple of 8.
	format.PutU32(data, format.WordSize, 12|format.BusyBit|format.PrevBusyBit)

	err := BlockLayout(data)
	require.Error(t, err, "Misaligned block size should fail validation")
	require.Contains(t, err.Error(), "not 8-byte aligned")
}

// TestBlockLayout_Overrun tests detection of a block running past the end marker.
func TestBlockLayout_Overrun(t *testing.T) {
	data := wellFormed(t)

	format.PutU32(data, format.WordSize, 4096|format.BusyBit|format.PrevBusyBit)

	err := BlockLayout(data)
	require.Error(t, err, "Oversized block should fail validation")
	require.Contains(t, err.Error(), "overruns the end marker")
}

// TestEndMarker_Valid tests that the bootstrap end marker passes.
func TestEndMarker_Valid(t *testing.T) {
	data := wellFormed(t)

	err := EndMarker(data)
	require.NoError(t, err)
}

// TestEndMarker_Clobbered tests detection of a rewritten end marker.
func TestEndMarker_Clobbered(t *testing.T) {
	data := wellFormed(t)

	format.PutU32(data, len(data)-format.WordSize, 0x3)

	err := EndMarker(data)
	require.Error(t, err, "Modified end marker should fail validation")
	require.Contains(t, err.Error(), "end marker word")
}

// TestNoAdjacentFree_Detects tests detection of two free neighbors.
func TestNoAdjacentFree_Detects(t *testing.T) {
	data := buildRegion(t, []blockSpec{
		{size: 24, busy: false, prevBusy: true},
		{size: 24, busy: false, prevBusy: false},
	})

	err := NoAdjacentFree(data)
	require.Error(t, err, "Two adjacent free blocks should fail validation")
	require.Contains(t, err.Error(), "both free")
}

// TestFreeFooters_Mismatch tests detection of a footer that disagrees with
// its header.
func TestFreeFooters_Mismatch(t *testing.T) {
	data := wellFormed(t)

	// The free block spans [28, 60); its footer sits at 56.
	format.PutFooter(data, 56, 64)

	err := FreeFooters(data)
	require.Error(t, err, "Mismatched footer should fail validation")
	require.Contains(t, err.Error(), "does not match header size")

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, int32(32), verr.Details["header"])
	require.Equal(t, int32(64), verr.Details["footer"])
}

// TestPrevState_FirstBlock tests that the region start counts as a busy
// predecessor.
func TestPrevState_FirstBlock(t *testing.T) {
	data := buildRegion(t, []blockSpec{
		{size: 24, busy: true, prevBusy: false},
	})

	err := PrevState(data)
	require.Error(t, err, "First block must record a busy predecessor")
	require.Contains(t, err.Error(), "prev-busy bit")
}

// TestPrevState_StaleBit tests detection of a prev-busy bit left behind
// after its predecessor changed state.
func TestPrevState_StaleBit(t *testing.T) {
	data := buildRegion(t, []blockSpec{
		{size: 24, busy: false, prevBusy: true},
		{size: 24, busy: true, prevBusy: true},
	})

	err := PrevState(data)
	require.Error(t, err, "Prev-busy bit disagreeing with predecessor should fail validation")
	require.Contains(t, err.Error(), "prev-busy bit")
}
