package heap

import "errors"

var (
	// ErrOutOfMemory indicates the chain was walked to exhaustion without
	// finding a free block able to satisfy the request.
	ErrOutOfMemory = errors.New("heap: no free block large enough")

	// ErrSizeOverflow indicates the requested size was zero or could not be
	// rounded to a power of two within the address width. Reported before
	// any chain traversal, distinct from ordinary exhaustion.
	ErrSizeOverflow = errors.New("heap: size not representable as a power of two")

	// ErrBadAlign indicates the requested alignment was zero or not a power
	// of two.
	ErrBadAlign = errors.New("heap: alignment must be a power of two")

	// ErrBadAddr indicates an address outside the memory under allocator
	// control.
	ErrBadAddr = errors.New("heap: address out of bounds")

	// ErrNotAllocated indicates a free of an address whose header is not
	// marked allocated (most likely a double free).
	ErrNotAllocated = errors.New("heap: block is not allocated")

	// ErrNotInstalled indicates no default heap has been installed yet.
	ErrNotInstalled = errors.New("heap: no default heap installed")
)
