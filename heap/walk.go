package heap

import "github.com/joshuapare/bootheap/internal/format"

// Block is a read-only snapshot of one chain entry, for inspection tools and
// tests. Size spans the governed extent including the header record, so
// Addr+Size is the extent end.
type Block struct {
	Addr      Addr
	Size      uint64
	Allocated bool
	Next      Addr
}

// DataAddr returns the address of the block's data region.
func (b Block) DataAddr() Addr {
	return b.Addr + format.HeaderSize
}

// DataSize returns the byte length of the block's data region.
func (b Block) DataSize() uint64 {
	if b.Size < format.HeaderSize {
		return 0
	}
	return b.Size - format.HeaderSize
}

// Walk invokes fn for every block in chain order until fn returns false or
// the chain ends.
func (hp *Heap) Walk(fn func(Block) bool) {
	for addr := hp.head; addr != 0; {
		h := hp.headerAt(addr)
		b := Block{Addr: addr, Size: h.size(), Allocated: h.allocated(), Next: h.next()}
		if !fn(b) {
			return
		}
		addr = b.Next
	}
}

// Blocks returns a snapshot of the whole chain in chain order.
func (hp *Heap) Blocks() []Block {
	var blocks []Block
	hp.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks
}

// FreeBytes sums the data capacity of all free blocks. Because the chain is
// never coalesced this is an upper bound on what a single allocation can get.
func (hp *Heap) FreeBytes() uint64 {
	var total uint64
	hp.Walk(func(b Block) bool {
		if !b.Allocated {
			total += b.DataSize()
		}
		return true
	})
	return total
}

// LargestFree returns the data capacity of the largest single free block.
func (hp *Heap) LargestFree() uint64 {
	var largest uint64
	hp.Walk(func(b Block) bool {
		if !b.Allocated && b.DataSize() > largest {
			largest = b.DataSize()
		}
		return true
	})
	return largest
}
