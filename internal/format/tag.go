package format

// Tag is a decoded boundary-tag header word.
//
// Header word layout (little-endian uint32):
//
//	bits 2..31  block size in bytes, ALWAYS a multiple of 8
//	bit  1      previous block busy
//	bit  0      this block busy
//
// Size is the total block size including the header word itself. The same
// word doubles as the footer of a free block, where every state bit is zero
// and only the size is meaningful.
type Tag uint32

// NewTag packs a size and state bits into a header word. Stray low bits of
// size are masked off; callers must pass sizes that are multiples of
// Granularity.
func NewTag(size int32, busy, prevBusy bool) Tag {
	w := uint32(size) & SizeMask
	if busy {
		w |= BusyBit
	}
	if prevBusy {
		w |= PrevBusyBit
	}
	return Tag(w)
}

// Size returns the block size in bytes with the state bits masked off.
func (t Tag) Size() int32 {
	return int32(uint32(t) & SizeMask)
}

// Busy reports whether the block itself is allocated.
func (t Tag) Busy() bool {
	return uint32(t)&BusyBit != 0
}

// PrevBusy reports whether the block preceding this one is allocated.
func (t Tag) PrevBusy() bool {
	return uint32(t)&PrevBusyBit != 0
}

// WithBusy returns the tag with the busy bit set to v.
func (t Tag) WithBusy(v bool) Tag {
	if v {
		return t | BusyBit
	}
	return t &^ BusyBit
}

// WithPrevBusy returns the tag with the prev-busy bit set to v.
func (t Tag) WithPrevBusy(v bool) Tag {
	if v {
		return t | PrevBusyBit
	}
	return t &^ PrevBusyBit
}

// ReadTag decodes the header word at off.
func ReadTag(b []byte, off int) Tag {
	return Tag(ReadU32(b, off))
}

// PutTag encodes the header word at off.
func PutTag(b []byte, off int, t Tag) {
	PutU32(b, off, uint32(t))
}

// ReadFooter decodes a free-block footer at off. State bits are masked off
// in case the word still carries stale payload bytes.
func ReadFooter(b []byte, off int) int32 {
	return int32(ReadU32(b, off) & SizeMask)
}

// PutFooter encodes a free-block footer at off.
func PutFooter(b []byte, off int, size int32) {
	PutU32(b, off, uint32(size)&SizeMask)
}
