package arena

import "io"

// Stats holds counters accumulated over the arena's lifetime. A failed call
// leaves every counter except FailedAllocs unchanged.
type Stats struct {
	AllocCalls       int   `json:"alloc_calls"`       // Alloc() calls that handed out a block
	FailedAllocs     int   `json:"failed_allocs"`     // Alloc() calls that found no fit
	FreeCalls        int   `json:"free_calls"`        // Free() calls that reclaimed a block
	SplitCount       int   `json:"split_count"`       // Blocks split during allocation
	CoalesceForward  int   `json:"coalesce_forward"`  // Merges with the following block
	CoalesceBackward int   `json:"coalesce_backward"` // Merges into the preceding block
	BytesAllocated   int64 `json:"bytes_allocated"`   // Block bytes handed out (including headers)
	BytesFreed       int64 `json:"bytes_freed"`       // Block bytes reclaimed, measured before merging
}

// UsageStats describes the arena's current occupancy. Byte totals count
// whole blocks, headers included, so BusyBytes+FreeBytes always equals the
// usable capacity.
type UsageStats struct {
	TotalBlocks int   `json:"total_blocks"`
	BusyBlocks  int   `json:"busy_blocks"`
	FreeBlocks  int   `json:"free_blocks"`
	BusyBytes   int64 `json:"busy_bytes"`
	FreeBytes   int64 `json:"free_bytes"`
	LargestFree int32 `json:"largest_free"` // Size of the biggest free block, 0 if none
}

// GetStats returns a copy of the arena's counters.
func (a *Arena) GetStats() Stats {
	return a.stats
}

// GetUsageStats walks the block table once and reports the current
// occupancy.
func (a *Arena) GetUsageStats() (UsageStats, error) {
	if a.data == nil {
		return UsageStats{}, ErrReleased
	}

	var u UsageStats
	it := a.Blocks()
	for {
		blk, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return UsageStats{}, err
		}

		u.TotalBlocks++
		size := blk.Size()
		if blk.Busy() {
			u.BusyBlocks++
			u.BusyBytes += int64(size)
		} else {
			u.FreeBlocks++
			u.FreeBytes += int64(size)
			if size > u.LargestFree {
				u.LargestFree = size
			}
		}
	}
	return u, nil
}
