package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/bootheap/internal/format"
)

// Chain verification flag - controlled by BOOTHEAP_VERIFY env var.
var verifyEnabled = os.Getenv("BOOTHEAP_VERIFY") != ""

// verify re-checks chain integrity after a mutating operation when
// BOOTHEAP_VERIFY is set. The chain is the allocator's only record of memory
// ownership; a severed or corrupted chain cannot be recovered from, so any
// violation is fatal rather than an error return.
func (hp *Heap) verify() {
	if !verifyEnabled {
		return
	}
	seen := make(map[Addr]bool)
	for addr := hp.head; addr != 0; {
		if seen[addr] {
			panic(fmt.Sprintf("heap: chain cycle at %#x", addr))
		}
		seen[addr] = true

		if addr < hp.base || addr+format.HeaderSize > hp.Limit() {
			panic(fmt.Sprintf("heap: header %#x outside managed window", addr))
		}
		h := hp.headerAt(addr)
		if h.size() < format.HeaderSize {
			panic(fmt.Sprintf("heap: header %#x governs %d bytes, less than a header", addr, h.size()))
		}
		if h.end() > hp.Limit() {
			panic(fmt.Sprintf("heap: block %#x ends at %#x past window limit %#x",
				addr, h.end(), hp.Limit()))
		}
		if addr%format.HeaderAlignment != 0 || h.size()%format.HeaderAlignment != 0 {
			panic(fmt.Sprintf("heap: block %#x size %d off header alignment", addr, h.size()))
		}
		addr = h.next()
	}
}
