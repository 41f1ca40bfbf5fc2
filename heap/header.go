package heap

import "github.com/joshuapare/bootheap/internal/format"

// header is a view over one block header record embedded in the managed
// memory. It carries no state of its own; every accessor reads or writes the
// record at h.addr. All raw offset arithmetic in the allocator lives here and
// in carve.
type header struct {
	heap *Heap
	addr Addr
}

func (h header) off() int {
	return int(h.addr - h.heap.base)
}

// next returns the address of the next header in the chain, 0 at the end.
func (h header) next() Addr {
	return format.ReadU64(h.heap.mem, h.off()+format.HeaderNextOffset)
}

func (h header) setNext(a Addr) {
	format.PutU64(h.heap.mem, h.off()+format.HeaderNextOffset, a)
}

// size returns the byte length of the extent this header governs, the header
// record itself included, so that h.addr + h.size() is the extent end.
func (h header) size() uint64 {
	return format.ReadU64(h.heap.mem, h.off()+format.HeaderSizeOffset)
}

func (h header) setSize(v uint64) {
	format.PutU64(h.heap.mem, h.off()+format.HeaderSizeOffset, v)
}

func (h header) allocated() bool {
	return h.heap.mem[h.off()+format.HeaderFlagOffset] != 0
}

func (h header) setAllocated(v bool) {
	if v {
		h.heap.mem[h.off()+format.HeaderFlagOffset] = 1
	} else {
		h.heap.mem[h.off()+format.HeaderFlagOffset] = 0
	}
}

// end returns the first address past the extent this header governs.
func (h header) end() Addr {
	return h.addr + h.size()
}

// canProvide reports whether a free block of this size can hold the rounded
// request, alignment slack, and up to two new header records.
func (h header) canProvide(size, align uint64) bool {
	return h.size() >= size+2*format.HeaderSize+align
}

// headerAt views the header record at addr.
func (hp *Heap) headerAt(addr Addr) header {
	return header{heap: hp, addr: addr}
}

// headerForData recovers the header that precedes an allocated data address
// by exactly one header length.
func (hp *Heap) headerForData(addr Addr) header {
	return hp.headerAt(addr - format.HeaderSize)
}

// placeHeader writes a fresh, unallocated, zero-size header record at addr.
// Headers are only ever constructed by placement into memory the allocator
// is about to manage; they have no existence outside the managed space.
func (hp *Heap) placeHeader(addr Addr) header {
	h := hp.headerAt(addr)
	off := h.off()
	for i := 0; i < format.HeaderSize; i++ {
		hp.mem[off+i] = 0
	}
	return h
}
