// Package inspect formats runtime state for humans: raw memory hexdumps and
// heap chain listings.
package inspect

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/joshuapare/bootheap/heap"
)

// Hexdump writes data to w in canonical hexdump form, sixteen bytes per row
// with an ASCII gutter.
func Hexdump(w io.Writer, data []byte) error {
	d := hex.Dumper(w)
	if _, err := d.Write(data); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

// DumpChain writes one line per heap block in chain order: address, governed
// size, state, and data capacity.
func DumpChain(w io.Writer, h *heap.Heap) error {
	var werr error
	h.Walk(func(b heap.Block) bool {
		state := "free"
		if b.Allocated {
			state = "allocated"
		}
		_, werr = fmt.Fprintf(w, "%#012x  size %8d  %-9s  data %#012x+%d\n",
			b.Addr, b.Size, state, b.DataAddr(), b.DataSize())
		return werr == nil
	})
	return werr
}

// DumpStats writes the allocator counters as aligned key/value lines.
func DumpStats(w io.Writer, st heap.Stats) error {
	rows := []struct {
		name  string
		value uint64
	}{
		{"regions registered", uint64(st.RegionsRegistered)},
		{"bytes registered", st.BytesRegistered},
		{"alloc calls", uint64(st.AllocCalls)},
		{"alloc successes", uint64(st.AllocSuccesses)},
		{"alloc failures", uint64(st.AllocFailures)},
		{"free calls", uint64(st.FreeCalls)},
		{"splits", uint64(st.Splits)},
		{"padding blocks", uint64(st.PaddingBlocks)},
		{"padding bytes", st.PaddingBytes},
		{"bytes allocated", st.BytesAllocated},
		{"bytes freed", st.BytesFreed},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}
