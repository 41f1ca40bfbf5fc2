package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/bootheap/internal/format"
)

// Runtime trace flag for allocation logging - controlled by BOOTHEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("BOOTHEAP_LOG_ALLOC") != ""

// Addr is a physical address inside the managed memory space. Address 0 is
// reserved as the null/failure sentinel; the initializer keeps the zero page
// out of the heap so no valid allocation can ever land there.
type Addr = uint64

// HeaderSize is the size in bytes of the block header preceding every
// allocation the heap hands out.
const HeaderSize = format.HeaderSize

// Heap is the first-fit allocator over one physical memory window. The chain
// head is the only mutable bookkeeping outside the managed memory itself;
// every other byte of allocator state lives in the block headers.
type Heap struct {
	mem   []byte
	base  Addr
	head  Addr // chain root, 0 = empty
	stats Stats
}

// New creates a heap over the physical window [base, base+len(mem)). No
// memory is usable until regions are registered via InitFromMap or AddRegion.
func New(mem []byte, base Addr) *Heap {
	return &Heap{mem: mem, base: base}
}

// Base returns the first address of the managed window.
func (hp *Heap) Base() Addr {
	return hp.base
}

// Limit returns the first address past the managed window.
func (hp *Heap) Limit() Addr {
	return hp.base + Addr(len(hp.mem))
}

// Bytes returns the data bytes of an extent previously returned by Allocate.
// The slice aliases the managed memory.
func (hp *Heap) Bytes(addr Addr, size uint64) []byte {
	off := int(addr - hp.base)
	return hp.mem[off : off+int(size)]
}

// Allocate returns the address of a free extent of at least size bytes,
// aligned to align, or an error. The size is rounded up to the next power of
// two and clamped to at least one header length; the alignment is clamped
// likewise. The first qualifying free block in chain order wins and the
// allocation is carved from its tail.
func (hp *Heap) Allocate(size, align uint64) (Addr, error) {
	hp.stats.AllocCalls++

	rounded, ok := format.RoundUpPow2(size)
	if !ok {
		hp.stats.AllocFailures++
		return 0, fmt.Errorf("%w: size %d", ErrSizeOverflow, size)
	}
	if rounded < format.HeaderSize {
		rounded = format.HeaderSize
	}
	if !format.IsPow2(align) {
		hp.stats.AllocFailures++
		return 0, fmt.Errorf("%w: align %d", ErrBadAlign, align)
	}
	if align < format.HeaderSize {
		align = format.HeaderSize
	}

	for addr := hp.head; addr != 0; {
		h := hp.headerAt(addr)
		if h.allocated() || !h.canProvide(rounded, align) {
			addr = h.next()
			continue
		}
		p := hp.carve(h, rounded, align)
		hp.stats.AllocSuccesses++
		hp.stats.BytesAllocated += rounded
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[HEAP] alloc size=%d align=%d -> %#x (from block %#x)\n",
				rounded, align, p, h.addr)
		}
		hp.verify()
		return p, nil
	}

	hp.stats.AllocFailures++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] alloc size=%d align=%d -> exhausted (largest free %d)\n",
			rounded, align, hp.LargestFree())
	}
	return 0, fmt.Errorf("%w: size %d align %d", ErrOutOfMemory, rounded, align)
}

// carve splits the tail of the free block at h and returns the carve-out
// address. The winning block keeps its header and shrinks; a new allocated
// header is placed one header length before the carve-out, and a padding
// header absorbs any alignment slack between the carve-out's end and the
// block's old end. Chain order after the split: winner, allocated block,
// padding (if any), old successor.
func (hp *Heap) carve(h header, size, align uint64) Addr {
	end := h.end()
	carveAddr := format.AlignDown(end-size, align)
	blockAddr := carveAddr - format.HeaderSize

	block := hp.placeHeader(blockAddr)
	block.setAllocated(true)
	block.setSize(size + format.HeaderSize)
	block.setNext(h.next())

	if gap := end - block.end(); gap != 0 {
		// Alignment pushed the carve-out below the block end. The slack is
		// sacrificed: it gets an allocated header and is never exposed.
		padding := hp.placeHeader(block.end())
		padding.setAllocated(true)
		padding.setSize(gap)
		padding.setNext(block.next())
		block.setNext(padding.addr)
		hp.stats.PaddingBlocks++
		hp.stats.PaddingBytes += gap
	}

	h.setSize(blockAddr - h.addr)
	h.setNext(blockAddr)
	hp.stats.Splits++
	return carveAddr
}

// Free releases an extent previously returned by Allocate. The header one
// header length before addr is marked free; it stays linked in the chain and
// is not merged with neighbouring free blocks.
func (hp *Heap) Free(addr Addr) error {
	hp.stats.FreeCalls++
	if addr < hp.base+format.HeaderSize || addr > hp.Limit() {
		return fmt.Errorf("%w: %#x", ErrBadAddr, addr)
	}
	h := hp.headerForData(addr)
	if !h.allocated() {
		return fmt.Errorf("%w: %#x", ErrNotAllocated, addr)
	}
	h.setAllocated(false)
	hp.stats.BytesFreed += h.size() - format.HeaderSize
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] free %#x (block %#x, size %d)\n", addr, h.addr, h.size())
	}
	hp.verify()
	return nil
}

// Stats returns a copy of the allocator counters.
func (hp *Heap) Stats() Stats {
	return hp.stats
}
