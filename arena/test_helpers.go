package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/arena/verify"
	"github.com/joshuapare/memkit/internal/format"
)

// ============================================================================
// Arena Creation Utilities
// ============================================================================

// newTestArena creates an arena of the requested size and releases it when
// the test finishes.
func newTestArena(t testing.TB, size int) *Arena {
	t.Helper()

	a, err := New(size)
	require.NoError(t, err, "failed to create test arena")

	t.Cleanup(func() { a.Release() })

	return a
}

// carveFreeRuns allocates alternating target and separator blocks, then
// frees every target. The arena is left with free blocks of the targets'
// exact footprints, in address order, each fenced by a minimum-size busy
// block so no carve coalesces with its neighbors. Returns the payload refs
// the targets had while busy; re-allocating the same footprint yields the
// same ref.
func carveFreeRuns(t testing.TB, a *Arena, payloads []int) []Ref {
	t.Helper()

	refs := make([]Ref, len(payloads))
	for i, p := range payloads {
		ref, err := a.Alloc(p)
		require.NoError(t, err, "failed to carve target block of %d bytes", p)
		refs[i] = ref

		_, err = a.Alloc(format.WordSize) // separator
		require.NoError(t, err, "failed to carve separator block")
	}
	for _, ref := range refs {
		require.NoError(t, a.Free(ref), "failed to release carved block")
	}
	return refs
}

// sealTail turns the arena's trailing free space into one busy block so a
// test controls exactly which neighbors are free.
func sealTail(t testing.TB, a *Arena) Ref {
	t.Helper()

	blocks := mustSnapshot(t, a)
	last := blocks[len(blocks)-1]
	require.False(t, last.Busy, "tail is already sealed")

	ref, err := a.Alloc(int(last.Size) - format.WordSize)
	require.NoError(t, err, "failed to seal the trailing free block")
	return ref
}

// ============================================================================
// State Inspection
// ============================================================================

// mustSnapshot returns the arena's block table, failing the test on error.
func mustSnapshot(t testing.TB, a *Arena) []BlockInfo {
	t.Helper()

	blocks, err := a.Snapshot()
	require.NoError(t, err, "snapshot failed")
	return blocks
}

// captureBytes copies the arena's backing bytes for later comparison.
func captureBytes(a *Arena) []byte {
	return append([]byte(nil), a.Bytes()...)
}

// blockContaining returns the block whose payload starts at ref.
func blockContaining(t testing.TB, a *Arena, ref Ref) BlockInfo {
	t.Helper()

	for _, b := range mustSnapshot(t, a) {
		if Ref(b.Begin)+format.WordSize == ref {
			return b
		}
	}
	t.Fatalf("no block with payload at ref %d", ref)
	return BlockInfo{}
}

// ============================================================================
// Invariant Assertions
// ============================================================================

// assertInvariants fails the test if the arena's block structure violates
// any structural invariant.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()

	require.NoError(t, verify.AllInvariants(a.Bytes()))
}

// assertConservation checks that block sizes sum to the usable capacity, so
// no byte has been lost or fabricated.
func assertConservation(t testing.TB, a *Arena) {
	t.Helper()

	var sum int64
	for _, b := range mustSnapshot(t, a) {
		sum += int64(b.Size)
	}
	require.Equal(t, int64(a.Usable()), sum, "block sizes must cover the usable capacity")
}
