// Package verify provides validation functions for arena block structures.
//
// # Overview
//
// This package implements structural checks over the raw bytes of an arena
// region. It is primarily used in tests to prove that allocation and
// deallocation leave the block sequence consistent: no byte lost, no byte
// counted twice, no merge skipped, no stale boundary tag.
//
// Validation categories:
//   - Block layout: sizes aligned, blocks back to back, exact coverage
//   - End marker: permanently busy, zero size, written once
//   - Adjacent free blocks: maximal coalescing after every free
//   - Free footers: footer word matches header size
//   - Prev state: every header's prev-busy bit matches its predecessor
//
// # Quick Start
//
// Validate all invariants in one call:
//
//	a, _ := arena.New(4096)
//	if err := verify.AllInvariants(a.Bytes()); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// Validate specific aspects:
//
//	if err := verify.NoAdjacentFree(a.Bytes()); err != nil {
//	    fmt.Printf("Coalescing missed a merge: %v\n", err)
//	}
//
// # ValidationError
//
// All validation functions return ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string                 // Error category (e.g., "BlockLayout")
//	    Message string                 // Human-readable description
//	    Offset  int                    // Region offset where error occurred (-1 if N/A)
//	    Details map[string]interface{} // Additional context
//	}
//
// Example:
//
//	err := verify.FreeFooters(a.Bytes())
//	if verr, ok := err.(*verify.ValidationError); ok {
//	    fmt.Printf("Type: %s\n", verr.Type)
//	    fmt.Printf("Offset: 0x%X\n", verr.Offset)
//	    fmt.Printf("Header: %d\n", verr.Details["header"])
//	    fmt.Printf("Footer: %d\n", verr.Details["footer"])
//	}
//
// # Usage in Tests
//
// Typical test pattern:
//
//	func TestChurn(t *testing.T) {
//	    a, _ := arena.New(64 * 1024)
//
//	    refs := []arena.Ref{}
//	    for i := 0; i < 100; i++ {
//	        ref, err := a.Alloc(24)
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        refs = append(refs, ref)
//
//	        if err := verify.AllInvariants(a.Bytes()); err != nil {
//	            t.Fatalf("after alloc %d: %v", i, err)
//	        }
//	    }
//
//	    for _, ref := range refs {
//	        if err := a.Free(ref); err != nil {
//	            t.Fatal(err)
//	        }
//	        if err := verify.AllInvariants(a.Bytes()); err != nil {
//	            t.Fatalf("after free: %v", err)
//	        }
//	    }
//	}
//
// # AllInvariants
//
// Checks performed (in order):
//  1. BlockLayout
//  2. EndMarker
//  3. NoAdjacentFree
//  4. FreeFooters
//  5. PrevState
//
// Returns first error encountered, or nil if all pass. Every check is a
// single bounded scan, so AllInvariants is cheap enough to run after each
// operation in a test loop.
//
// # Limitations
//
// The verify package does NOT check:
//   - Payload contents (the allocator never interprets payload bytes)
//   - Whether busy blocks are actually referenced by the embedding program
//   - Allocation policy (best-fit selection is covered by allocator tests)
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/arena: The allocator under validation
//   - github.com/joshuapare/memkit/internal/format: Boundary-tag encoding
package verify
