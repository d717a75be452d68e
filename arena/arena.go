package arena

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/hostmem"
)

// Ref is the address of a block payload: a uint32 offset relative to the
// start of the backing region. The zero value is the null address and never
// refers to a block.
type Ref = uint32

// MaxSize is the largest region size New accepts. Block offsets are int32,
// so the backing region must stay below 2GB even after page rounding; the
// margin absorbs any host page size.
const MaxSize = 1<<31 - 64*1024

// Arena is a boundary-tag allocator over a single host-backed region.
//
// Region layout:
//
//	[0,4)          alignment padding, never touched after setup
//	[4, 4+usable)  blocks, back to back in address order
//	[cap-4, cap)   end sentinel: a busy header with size zero
//
// Every block starts with a 4-byte header word holding its total size plus
// two state bits; free blocks repeat the size in a footer word at their end
// so the block below can find their header. The first payload byte lands at
// offset 8 and every payload after it on an 8-byte boundary.
type Arena struct {
	region   *hostmem.Region
	data     []byte
	first    int32 // offset of the first block header
	sentinel int32 // offset of the end sentinel word
	stats    Stats
}

// New reserves a dedicated page-rounded region of at least size bytes and
// formats it as a single free block bounded by the end sentinel.
func New(size int) (*Arena, error) {
	return newArena(size, hostmem.Reserve)
}

// newArena is the injectable constructor; tests stub reserve to simulate
// host failures.
func newArena(size int, reserve func(int) (*hostmem.Region, error)) (*Arena, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	region, err := reserve(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostAlloc, err)
	}

	data := region.Bytes()
	usable := int32(len(data)) - 2*format.WordSize
	if usable < format.MinBlockSize {
		region.Release()
		return nil, fmt.Errorf("%w: region of %d bytes cannot hold a block", ErrInvalidSize, len(data))
	}

	a := &Arena{
		region:   region,
		data:     data,
		first:    format.WordSize,
		sentinel: format.WordSize + usable,
	}
	a.bootstrap(usable)
	return a, nil
}

// bootstrap lays down the initial single free block spanning the whole
// usable span, plus the busy end sentinel. The first block records a busy
// predecessor so nothing ever coalesces below the bottom of the region.
func (a *Arena) bootstrap(usable int32) {
	format.PutTag(a.data, int(a.first), format.NewTag(usable, false, true))
	format.PutFooter(a.data, int(a.first+usable)-format.WordSize, usable)
	format.PutTag(a.data, int(a.sentinel), format.NewTag(0, true, false))
}

// Capacity returns the full byte length of the backing region.
func (a *Arena) Capacity() int {
	return len(a.data)
}

// Usable returns the number of bytes available to blocks: the region
// capacity minus the leading pad and the end sentinel.
func (a *Arena) Usable() int32 {
	return a.sentinel - a.first
}

// Bytes returns the raw backing region. It is exposed for diagnostics and
// tests; writing through it voids every layout guarantee.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Release returns the backing region to the host. The arena and every
// payload slice obtained from it must not be used afterwards. Releasing
// twice is a no-op.
func (a *Arena) Release() error {
	if a.data == nil {
		return nil
	}
	a.data = nil
	return a.region.Release()
}

// setPrevBusy rewrites the prev-busy bit of the header at off. The end
// sentinel is skipped: its word never changes after bootstrap, and nothing
// ever reads a predecessor state from it.
func (a *Arena) setPrevBusy(off int32, busy bool) {
	if off >= a.sentinel {
		return
	}
	tag := format.ReadTag(a.data, int(off))
	format.PutTag(a.data, int(off), tag.WithPrevBusy(busy))
}
