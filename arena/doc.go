// Package arena implements a boundary-tag memory allocator over one
// fixed-size region obtained from the host at initialization.
//
// # Overview
//
// The arena is partitioned into adjacent blocks, each carrying its size and
// state in a header word at its lowest address. Allocation is best-fit with
// splitting: a single forward walk finds the smallest free block that holds
// the request, and any viable surplus becomes a new free block. Deallocation
// coalesces in both directions, so two adjacent free blocks never survive a
// completed call. No auxiliary free list is maintained; blocks are
// discovered purely by address-order boundary tags.
//
// Memory is never returned to the host before process exit.
//
// # Arena Layout
//
// The region starts with one pad word so payloads land on 8-byte boundaries,
// and ends with a permanently busy zero-size sentinel word:
//
//	offset 0      pad word (never read)
//	offset 4      first block header
//	...           blocks, back to back
//	capacity-4    end sentinel
//
// Free blocks repeat their size in a footer word at their highest address,
// which is what lets a free walk backward without rescanning from the start.
// Busy blocks carry no footer; those bytes belong to the payload.
//
// # Usage Example
//
//	a, err := arena.New(64 * 1024)
//	if err != nil {
//	    return err
//	}
//
//	ref, err := a.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	buf, err := a.Payload(ref)
//	if err != nil {
//	    return err
//	}
//	copy(buf, data)
//
//	// Later, hand the block back.
//	err = a.Free(ref)
//
// A package-level API (Init, Alloc, Free, Dump) manages one process-wide
// arena for embedders that want malloc-style globals.
//
// # Alignment Requirements
//
// Block sizes are multiples of 8 and payloads start on 8-byte boundaries.
// Requested sizes are rounded up to cover the header and meet alignment.
//
// # Thread Safety
//
// Arenas are not thread-safe. Callers must synchronize access externally;
// every operation runs to completion in a single bounded scan.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/arena/verify: Structural validation of an arena
//   - github.com/joshuapare/memkit/internal/format: Boundary-tag encoding
package arena
