package arena

import (
	"fmt"
	"io"

	"github.com/joshuapare/memkit/internal/format"
)

// Alloc reserves a block with room for at least size payload bytes and
// returns a reference to the payload. The arena is searched front to back
// for the smallest free block that fits; among equally sized candidates the
// one at the lowest address wins. When the chosen block is larger than
// needed and the surplus can stand on its own as a free block, the surplus
// is split off; otherwise the whole block is handed out.
func (a *Arena) Alloc(size int) (Ref, error) {
	if a.data == nil {
		return 0, ErrReleased
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if size > int(format.MaxBlockSize)-format.WordSize {
		a.stats.FailedAllocs++
		return 0, fmt.Errorf("%w: %d bytes requested", ErrOutOfMemory, size)
	}

	need := format.AlignGranuleI32(int32(size) + format.WordSize)

	best, found, err := a.findBestFit(need)
	if err != nil {
		return 0, err
	}
	if !found {
		a.stats.FailedAllocs++
		return 0, fmt.Errorf("%w: need %d bytes", ErrOutOfMemory, need)
	}
	return a.claim(best, need), nil
}

// findBestFit scans every block and keeps the smallest free one that can
// hold need bytes. The walk runs in address order, so a strict size
// comparison settles ties in favor of the lowest address.
func (a *Arena) findBestFit(need int32) (Block, bool, error) {
	var best Block
	found := false

	it := a.Blocks()
	for {
		blk, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Block{}, false, err
		}
		if blk.Busy() || blk.Size() < need {
			continue
		}
		if !found || blk.Size() < best.Size() {
			best = blk
			found = true
		}
	}
	return best, found, nil
}

// claim marks best busy. The surplus beyond need becomes a free block of its
// own when it is at least MinBlockSize; smaller surplus stays attached so no
// fragment too small to carry a header is ever created.
func (a *Arena) claim(best Block, need int32) Ref {
	off := best.Offset()
	total := best.Size()
	rem := total - need

	if rem >= format.MinBlockSize {
		format.PutTag(a.data, int(off), format.NewTag(need, true, best.PrevBusy()))
		format.PutTag(a.data, int(off+need), format.NewTag(rem, false, true))
		format.PutFooter(a.data, int(off+total)-format.WordSize, rem)
		a.stats.SplitCount++
		a.stats.BytesAllocated += int64(need)
	} else {
		format.PutTag(a.data, int(off), best.Tag().WithBusy(true))
		a.setPrevBusy(off+total, true)
		a.stats.BytesAllocated += int64(total)
	}
	a.stats.AllocCalls++
	return Ref(off) + format.WordSize
}
