package arena

import (
	"fmt"
	"io"

	"github.com/joshuapare/memkit/internal/format"
)

// BlockIterator walks the arena's blocks in address order. The end sentinel
// is never yielded.
type BlockIterator struct {
	a    *Arena
	off  int32
	done bool
}

// Blocks returns an iterator positioned at the first block.
func (a *Arena) Blocks() *BlockIterator {
	return &BlockIterator{a: a, off: a.first}
}

// Next returns the next block, or io.EOF after the last one. A header that
// cannot be part of a well-formed layout (size below the minimum before the
// sentinel, or a block overrunning it) stops iteration with a descriptive
// error.
func (it *BlockIterator) Next() (Block, error) {
	if it.done {
		return Block{}, io.EOF
	}
	if it.a.data == nil {
		it.done = true
		return Block{}, ErrReleased
	}

	// reached the end sentinel
	if it.off >= it.a.sentinel {
		it.done = true
		return Block{}, io.EOF
	}

	blk, err := it.a.blockAt(it.off)
	if err != nil {
		it.done = true
		return Block{}, err
	}

	size := blk.Size()
	if size < format.MinBlockSize {
		it.done = true
		return Block{}, fmt.Errorf("arena: block at %d has impossible size %d", it.off, size)
	}
	if it.off+size > it.a.sentinel {
		it.done = true
		return Block{}, fmt.Errorf("arena: block at %d overruns the end sentinel", it.off)
	}

	it.off += size
	return blk, nil
}
