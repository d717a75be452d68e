// Package verify provides validation functions for arena block structures.
// These helpers are used in tests to ensure allocator invariants are
// maintained.
package verify

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// minRegion is the smallest region that can hold the leading pad word, one
// minimum-size block, and the end marker.
const minRegion = 2*format.WordSize + format.MinBlockSize

// Error types for different validation failures.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// block pairs a header with its offset during a walk.
type block struct {
	off int32
	tag format.Tag
}

// AllInvariants validates all allocator invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	if err := BlockLayout(data); err != nil {
		return err
	}
	if err := EndMarker(data); err != nil {
		return err
	}
	if err := NoAdjacentFree(data); err != nil {
		return err
	}
	if err := FreeFooters(data); err != nil {
		return err
	}
	if err := PrevState(data); err != nil {
		return err
	}
	return nil
}

// BlockLayout checks that headers partition the region without gaps or
// overlap: every size is a positive multiple of the granularity and the
// last block ends exactly at the end marker, so no byte is lost or counted
// twice.
func BlockLayout(data []byte) error {
	if _, verr := walkBlocks(data); verr != nil {
		return verr
	}
	return nil
}

// EndMarker checks the terminating word: permanently busy, zero size, and
// untouched state bits. The word is written once at bootstrap and never
// rewritten.
func EndMarker(data []byte) error {
	if len(data) < minRegion {
		return &ValidationError{
			Type:    "EndMarker",
			Message: fmt.Sprintf("region too small: %d bytes (need %d)", len(data), minRegion),
			Offset:  -1,
		}
	}

	off := len(data) - format.WordSize
	word := format.ReadU32(data, off)
	want := uint32(format.NewTag(0, true, false))
	if word != want {
		return &ValidationError{
			Type:    "EndMarker",
			Message: fmt.Sprintf("end marker word is 0x%08X (expected 0x%08X)", word, want),
			Offset:  off,
		}
	}
	return nil
}

// NoAdjacentFree checks that no two consecutive blocks are both free. Two
// free neighbors mean a deallocation skipped its merge step.
func NoAdjacentFree(data []byte) error {
	blocks, verr := walkBlocks(data)
	if verr != nil {
		return verr
	}

	for i := 1; i < len(blocks); i++ {
		if !blocks[i-1].tag.Busy() && !blocks[i].tag.Busy() {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: fmt.Sprintf("blocks at 0x%X and 0x%X are both free", blocks[i-1].off, blocks[i].off),
				Offset:  int(blocks[i].off),
			}
		}
	}
	return nil
}

// FreeFooters checks that every free block repeats its header size in the
// footer word at its far end. Backward coalescing depends on that word.
func FreeFooters(data []byte) error {
	blocks, verr := walkBlocks(data)
	if verr != nil {
		return verr
	}

	for _, b := range blocks {
		if b.tag.Busy() {
			continue
		}
		size := b.tag.Size()
		footer := format.ReadFooter(data, int(b.off+size)-format.WordSize)
		if footer != size {
			return &ValidationError{
				Type:    "FreeFooters",
				Message: fmt.Sprintf("footer size %d does not match header size %d", footer, size),
				Offset:  int(b.off),
				Details: map[string]interface{}{
					"header": size,
					"footer": footer,
				},
			}
		}
	}
	return nil
}

// PrevState checks that every block's prev-busy bit reflects the actual
// state of its predecessor. The first block counts the region start as a
// busy predecessor. The end marker is exempt; nothing ever reads a
// predecessor state from it.
func PrevState(data []byte) error {
	blocks, verr := walkBlocks(data)
	if verr != nil {
		return verr
	}

	prevBusy := true
	for _, b := range blocks {
		if b.tag.PrevBusy() != prevBusy {
			return &ValidationError{
				Type:    "PrevState",
				Message: fmt.Sprintf("prev-busy bit %v but predecessor busy is %v", b.tag.PrevBusy(), prevBusy),
				Offset:  int(b.off),
			}
		}
		prevBusy = b.tag.Busy()
	}
	return nil
}

// walkBlocks parses every header from the first block to the end marker,
// guarding each step so a corrupt size cannot send the walk out of bounds.
func walkBlocks(data []byte) ([]block, *ValidationError) {
	if len(data) < minRegion {
		return nil, &ValidationError{
			Type:    "BlockLayout",
			Message: fmt.Sprintf("region too small: %d bytes (need %d)", len(data), minRegion),
			Offset:  -1,
		}
	}

	sentinel := int32(len(data)) - format.WordSize
	var blocks []block

	off := int32(format.WordSize)
	for off < sentinel {
		tag := format.ReadTag(data, int(off))
		size := tag.Size()

		if size < format.MinBlockSize {
			return nil, &ValidationError{
				Type:    "BlockLayout",
				Message: fmt.Sprintf("block size %d below minimum %d", size, format.MinBlockSize),
				Offset:  int(off),
			}
		}
		if size%format.Granularity != 0 {
			return nil, &ValidationError{
				Type:    "BlockLayout",
				Message: fmt.Sprintf("block size %d not %d-byte aligned", size, format.Granularity),
				Offset:  int(off),
			}
		}
		if off+size > sentinel {
			return nil, &ValidationError{
				Type:    "BlockLayout",
				Message: fmt.Sprintf("block of size %d overruns the end marker", size),
				Offset:  int(off),
			}
		}

		blocks = append(blocks, block{off: off, tag: tag})
		off += size
	}
	return blocks, nil
}
