package main

import (
	"fmt"

	"github.com/joshuapare/bootheap/boot"
	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/heap"
	"github.com/joshuapare/bootheap/machine"
)

// bootedRuntime is a machine that completed the boot handshake, with its heap
// and the final memory map.
type bootedRuntime struct {
	machine *machine.Machine
	heap    *heap.Heap
	memmap  *firmware.MemoryMap
}

// newMachine builds a machine from the sizing flags without booting it.
func newMachine() (*machine.Machine, error) {
	m, err := machine.New(machine.Config{
		MemoryBytes:       memBytes,
		FramebufferWidth:  fbWidth,
		FramebufferHeight: fbHeight,
	})
	if err != nil {
		return nil, err
	}
	printVerbose("Machine up: %d bytes of memory, %dx%d framebuffer\n",
		memBytes, fbWidth, fbHeight)
	return m, nil
}

// bootRuntime builds a machine and takes it through the full boot flow.
func bootRuntime() (*bootedRuntime, error) {
	m, err := newMachine()
	if err != nil {
		return nil, err
	}

	h := heap.New(m.Mem(), 0)
	mm, err := boot.InitRuntime(m, h)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("boot failed: %w", err)
	}
	st := h.Stats()
	printVerbose("Boot services exited (map key %d)\n", mm.Key())
	printVerbose("Heap up: %d regions, %d bytes\n", st.RegionsRegistered, st.BytesRegistered)
	return &bootedRuntime{machine: m, heap: h, memmap: mm}, nil
}

func (r *bootedRuntime) close() {
	heap.Install(nil)
	r.machine.Close()
}

// workload performs n allocations of mixed sizes and alignments, freeing
// every third one, and returns the addresses still live.
func workload(h *heap.Heap, n int) ([]heap.Addr, error) {
	var live []heap.Addr
	for i := 0; i < n; i++ {
		size := uint64(48 << (i % 7))
		align := uint64(8 << (i % 5))
		addr, err := h.Allocate(size, align)
		if err != nil {
			// Exhaustion just ends the workload early.
			break
		}
		if i%3 == 0 {
			if err := h.Free(addr); err != nil {
				return nil, fmt.Errorf("freeing %#x: %w", addr, err)
			}
			continue
		}
		live = append(live, addr)
	}
	return live, nil
}
