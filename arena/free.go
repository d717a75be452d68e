package arena

import (
	"fmt"
	"io"

	"github.com/joshuapare/memkit/internal/format"
)

// Free returns the block whose payload starts at ref to the free pool. Free
// neighbors on either side are folded in, so the arena never holds two
// adjacent free blocks.
func (a *Arena) Free(ref Ref) error {
	if a.data == nil {
		return ErrReleased
	}

	blk, err := a.lookup(ref)
	if err != nil {
		return err
	}
	if !blk.Busy() {
		return fmt.Errorf("%w: payload at %d", ErrDoubleFree, ref)
	}

	off := blk.Offset()
	size := blk.Size()
	prevBusy := blk.PrevBusy()
	a.stats.FreeCalls++
	a.stats.BytesFreed += int64(size)

	// Fold the following block in when it is free.
	next := off + size
	if next < a.sentinel {
		ntag := format.ReadTag(a.data, int(next))
		if !ntag.Busy() {
			nsize := ntag.Size()
			if nsize >= format.MinBlockSize && next+nsize <= a.sentinel {
				size += nsize
				a.stats.CoalesceForward++
			}
		}
	}

	// Fold into the preceding block when it is free. Free blocks carry their
	// size in a footer word, so the predecessor's header is one read away.
	if !prevBusy && off > a.first {
		psize := format.ReadFooter(a.data, int(off)-format.WordSize)
		if psize >= format.MinBlockSize && off-psize >= a.first {
			off -= psize
			size += psize
			prevBusy = format.ReadTag(a.data, int(off)).PrevBusy()
			a.stats.CoalesceBackward++
		}
	}

	format.PutTag(a.data, int(off), format.NewTag(size, false, prevBusy))
	format.PutFooter(a.data, int(off+size)-format.WordSize, size)
	a.setPrevBusy(off+size, false)
	return nil
}

// lookup resolves ref to the block whose payload starts there. References
// that are zero, misaligned, out of range, or that point into the middle of
// a block fail with ErrInvalidPointer.
func (a *Arena) lookup(ref Ref) (Block, error) {
	if ref == 0 {
		return Block{}, fmt.Errorf("%w: zero reference", ErrInvalidPointer)
	}
	if ref%format.Granularity != 0 {
		return Block{}, fmt.Errorf("%w: %d is not %d-byte aligned", ErrInvalidPointer, ref, format.Granularity)
	}
	if ref < Ref(a.first)+format.WordSize || ref >= Ref(a.sentinel) {
		return Block{}, fmt.Errorf("%w: %d is outside the arena", ErrInvalidPointer, ref)
	}

	it := a.Blocks()
	for {
		blk, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Block{}, err
		}
		if blk.Ref() == ref {
			return blk, nil
		}
		if blk.Ref() > ref {
			break
		}
	}
	return Block{}, fmt.Errorf("%w: no block starts at %d", ErrInvalidPointer, ref)
}
