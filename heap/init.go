package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/internal/format"
)

// InitFromMap registers every conventional RAM extent of the memory map with
// the heap. It is meant to run once, right after the boot layer relinquishes
// the machine; descriptors of any other category never become addressable by
// the allocator.
func (hp *Heap) InitFromMap(mm *firmware.MemoryMap) {
	mm.Visit(func(d firmware.MemoryDescriptor) bool {
		if !d.Type.Usable() {
			return true
		}
		hp.AddRegion(d.PhysicalStart, d.NumberOfPages*format.PageSize)
		return true
	})
}

// AddRegion registers one physical extent as a free block and reports whether
// it was accepted. A region starting at address 0 is advanced past the zero
// page, sacrificing that page, so address 0 stays free to serve as the
// null/failure sentinel. Regions that end up no larger than one page are
// discarded as too small to be useful.
func (hp *Heap) AddRegion(start, size uint64) bool {
	if start == 0 {
		start += format.PageSize
		if size < format.PageSize {
			size = 0
		} else {
			size -= format.PageSize
		}
	}
	if size <= format.PageSize {
		return false
	}
	if start < hp.base || start+size > hp.Limit() {
		// Outside the managed window; nothing to place a header into.
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[HEAP] region %#x+%d outside window [%#x, %#x)\n",
				start, size, hp.base, hp.Limit())
		}
		return false
	}

	// Keep extent boundaries on header-sized alignment so every later split
	// leaves slack that can hold a padding header.
	aligned := format.AlignUp(start, format.HeaderAlignment)
	size -= aligned - start
	start = aligned
	size = format.AlignDown(size, format.HeaderAlignment)
	if size <= format.PageSize {
		return false
	}

	// Most recently registered region becomes the first block the allocation
	// walk will try.
	h := hp.placeHeader(start)
	h.setSize(size)
	h.setNext(hp.head)
	hp.head = start

	hp.stats.RegionsRegistered++
	hp.stats.BytesRegistered += size
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] region registered at %#x, %d bytes\n", start, size)
	}
	hp.verify()
	return true
}
