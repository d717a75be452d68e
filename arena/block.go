package arena

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// Block is a zero-cost view over a single block inside the arena. A block in
// the region looks like:
//
//	uint32 header   // size | state bits
//	...    payload
//	uint32 footer   // free blocks only: size with zero state bits
//
// Offsets are always relative to the start of the backing region.
type Block struct {
	buf []byte
	off int32
}

// blockAt creates a block view at the given header offset, doing basic
// bounds checks.
func (a *Arena) blockAt(off int32) (Block, error) {
	if off < a.first || off+format.WordSize > int32(len(a.data)) {
		return Block{}, fmt.Errorf("arena: block header at %d out of range (len=%d)", off, len(a.data))
	}
	return Block{buf: a.data, off: off}, nil
}

// Payload resolves a reference returned by Alloc to the block's payload
// bytes. Writing through the slice is the intended way to use the block;
// the allocator never interprets payload contents. References that do not
// name a live busy block fail with ErrInvalidPointer.
func (a *Arena) Payload(ref Ref) ([]byte, error) {
	if a.data == nil {
		return nil, ErrReleased
	}

	blk, err := a.lookup(ref)
	if err != nil {
		return nil, err
	}
	if !blk.Busy() {
		return nil, fmt.Errorf("%w: block at %d is free", ErrInvalidPointer, ref)
	}
	return blk.Payload(), nil
}

// Offset returns the region offset of the block header.
func (b Block) Offset() int32 {
	return b.off
}

// Tag returns the decoded header word.
func (b Block) Tag() format.Tag {
	return format.ReadTag(b.buf, int(b.off))
}

// Size returns the total block size including the header.
func (b Block) Size() int32 {
	return b.Tag().Size()
}

// Busy reports whether the block is allocated.
func (b Block) Busy() bool {
	return b.Tag().Busy()
}

// PrevBusy reports whether the block preceding this one is allocated.
func (b Block) PrevBusy() bool {
	return b.Tag().PrevBusy()
}

// Ref returns the payload address of the block.
func (b Block) Ref() Ref {
	return Ref(b.off) + format.WordSize
}

// Payload returns the bytes after the header. For a free block this span
// still includes the footer word at its end.
func (b Block) Payload() []byte {
	start := int(b.off) + format.WordSize
	end := min(int(b.off)+int(b.Size()), len(b.buf))
	return b.buf[start:end]
}

// End returns the region offset of the last byte in the block.
func (b Block) End() int32 {
	return b.off + b.Size() - 1
}
