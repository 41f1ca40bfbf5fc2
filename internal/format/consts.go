// Package format houses the low-level layout of the block header record the
// heap embeds in the memory it manages. The goal is to keep the byte-level
// layout in one place, independent from the public API, so higher-level
// packages can reason about addresses and sizes without touching raw offsets.
package format

const (
	// HeaderSize is the size in bytes of one block header record. It must be
	// a power of two so that a header can always be recovered by subtracting
	// HeaderSize from a data address the allocator handed out.
	HeaderSize = 32

	// PageSize is the unit firmware region descriptors use when sizing
	// physical memory extents.
	PageSize = 4096

	// Field offsets within a block header. Headers are written into raw
	// memory and reinterpreted at the same address later, so the layout is
	// fixed across every construction site:
	//   0x00  next-link (u64 physical address, 0 terminates the chain)
	//   0x08  size (u64, bytes governed by this header, header included)
	//   0x10  allocated flag (1 byte)
	//   0x11  reserved padding up to HeaderSize
	HeaderNextOffset = 0x00
	HeaderSizeOffset = 0x08
	HeaderFlagOffset = 0x10

	// HeaderAlignment is the alignment every block extent boundary is kept
	// on. Keeping extent ends on HeaderSize boundaries guarantees alignment
	// slack created by a split is always large enough to hold a padding
	// header.
	HeaderAlignment = HeaderSize

	// HeaderAlignmentMask is the bitmask for HeaderAlignment boundaries.
	HeaderAlignmentMask = HeaderAlignment - 1

	// PageAlignmentMask is the bitmask for PageSize boundaries.
	PageAlignmentMask = PageSize - 1
)
