package format

import "math/bits"

// Alignment utilities for the heap layout. Block extents, carve-out addresses
// and region boundaries all need power-of-two alignment arithmetic.

// AlignDown returns v rounded down to the previous multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignDown(0x107FC3, 32) = 0x107FC0
func AlignDown(v, align uint64) uint64 {
	return v &^ (align - 1)
}

// AlignUp returns v rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 32)  = 32
//	AlignUp(32, 32) = 32
func AlignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

// IsPow2 reports whether v is a power of two. Zero is not a power of two.
func IsPow2(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// RoundUpPow2 returns the smallest power of two >= v. The second return is
// false when v is zero or the result would not fit in 64 bits, which callers
// must treat as a failed request before touching any chain state.
func RoundUpPow2(v uint64) (uint64, bool) {
	if v == 0 || v > 1<<63 {
		return 0, false
	}
	return 1 << (64 - bits.LeadingZeros64(v-1)), true
}
