// Package format houses the low-level boundary-tag codec for the arena block
// layout. The goal is to keep the encoding focused, allocation-free, and
// independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
package format

const (
	// WordSize is the size in bytes of a block header, a free-block footer,
	// and the end sentinel.
	WordSize = 4

	// Granularity is the required alignment of block offsets and sizes.
	// Blocks are aligned to 8-byte boundaries.
	Granularity = 8

	// GranularityMask is the bitmask used for aligning to 8-byte boundaries (Granularity - 1).
	GranularityMask = Granularity - 1

	// MinBlockSize is the minimum total block size including the 4-byte header.
	// A free block must hold a header plus a footer, and sizes are rounded up
	// to Granularity, so no block is ever smaller than 8 bytes.
	MinBlockSize = 8

	// BusyBit is the header bit marking the block itself as allocated.
	BusyBit = 0x1

	// PrevBusyBit is the header bit marking the preceding block as allocated.
	PrevBusyBit = 0x2

	// StateMask covers the two low header bits reserved for state. The size
	// field is bits 2..31; layout validation depends on a corrupt size
	// reading back exactly, never rounded to the granularity.
	StateMask = BusyBit | PrevBusyBit

	// SizeMask extracts the block size from a header word.
	SizeMask = ^uint32(StateMask)

	// MaxBlockSize is the largest encodable block size. Block offsets are
	// int32, so no block may reach 2GB.
	MaxBlockSize = 0x7FFFFFF8
)
