// Package heap implements the runtime's physical memory allocator: a
// first-fit, free-list design that stores its metadata directly inside the
// memory it governs.
//
// # Overview
//
// The allocator manages raw physical memory handed over by the platform boot
// layer. Every extent under its control begins with a fixed 32-byte block
// header carrying the link to the next header, the extent size, and the
// allocated flag. Headers of free and allocated blocks are interleaved on one
// singly linked chain rooted at the Heap. Headers are never removed from the
// chain: allocation splits blocks and links new headers in, deallocation only
// clears the allocated flag. There is no coalescing of adjacent free blocks;
// that is a deliberate simplicity/fragmentation trade-off, not an oversight.
//
// # Allocation
//
// Allocate rounds the requested size up to the next power of two (at least
// one header length) and walks the chain from the root. The first free block
// able to hold the rounded size, alignment slack and up to two new headers
// wins; the allocation is carved from the tail of that block, aligned
// downward to the requested alignment. Alignment slack at the tail becomes a
// padding block: permanently allocated, never exposed, never freed.
//
// # Concurrency
//
// The allocator assumes a single logical thread of control, mirroring a
// kernel running with interrupts masked. Nothing here takes a lock; if the
// surrounding system gains additional execution contexts, the chain must be
// protected by a real mutual-exclusion mechanism first.
//
// # Usage
//
//	h := heap.New(mem, 0)
//	h.InitFromMap(memoryMap)
//
//	addr, err := h.Allocate(64, 16)
//	if err != nil {
//	    return err
//	}
//	copy(h.Bytes(addr, 64), payload)
//	h.Free(addr)
//
// Set BOOTHEAP_VERIFY=1 to re-verify chain integrity after every operation
// and BOOTHEAP_LOG_ALLOC=1 to trace allocations on stderr.
package heap
