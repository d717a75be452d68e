package format

// Alignment utilities for the arena block layout.
// Every block offset and size must fall on an 8-byte boundary so the low
// header bits stay free for state.

// AlignGranule returns n aligned up to the next 8-byte boundary.
// Used for block sizes, which must be 8-byte aligned.
//
// Example:
//
//	AlignGranule(1)  = 8
//	AlignGranule(8)  = 8
//	AlignGranule(9)  = 16
//	AlignGranule(16) = 16
func AlignGranule(n int) int {
	return (n + GranularityMask) & ^GranularityMask
}

// AlignGranuleI32 returns n aligned up to the next 8-byte boundary.
// int32 version for use in allocator code to avoid G115 warnings.
func AlignGranuleI32(n int32) int32 {
	return (n + GranularityMask) & ^GranularityMask
}
