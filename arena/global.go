package arena

import "io"

// procArena backs the package-level API: one arena per process, established
// by Init and never torn down. There is no internal locking; embedders
// calling from multiple goroutines must serialize access themselves.
var procArena *Arena

// Init establishes the process-wide arena. Once a call succeeds, every later
// call fails with ErrAlreadyInitialized; a failed attempt may be retried.
func Init(size int) error {
	if procArena != nil {
		return ErrAlreadyInitialized
	}
	a, err := New(size)
	if err != nil {
		return err
	}
	procArena = a
	return nil
}

// Alloc reserves size payload bytes from the process-wide arena.
func Alloc(size int) (Ref, error) {
	if procArena == nil {
		return 0, ErrNotInitialized
	}
	return procArena.Alloc(size)
}

// Free releases a payload previously returned by Alloc.
func Free(ref Ref) error {
	if procArena == nil {
		return ErrNotInitialized
	}
	return procArena.Free(ref)
}

// Dump writes the process-wide arena's block table to w.
func Dump(w io.Writer) error {
	if procArena == nil {
		return ErrNotInitialized
	}
	return procArena.Dump(w)
}

// GetStats returns the process-wide arena's counters.
func GetStats() (Stats, error) {
	if procArena == nil {
		return Stats{}, ErrNotInitialized
	}
	return procArena.GetStats(), nil
}

// GetUsageStats scans the process-wide arena and reports its occupancy.
func GetUsageStats() (UsageStats, error) {
	if procArena == nil {
		return UsageStats{}, ErrNotInitialized
	}
	return procArena.GetUsageStats()
}
