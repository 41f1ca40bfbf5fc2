package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootheap/boot"
	"github.com/joshuapare/bootheap/console"
	"github.com/joshuapare/bootheap/heap"
	"github.com/joshuapare/bootheap/serial"
)

var (
	bootAllocs int
	bootPNG    string
)

func init() {
	cmd := newBootCmd()
	cmd.Flags().IntVar(&bootAllocs, "allocs", 8, "Sample allocations to perform after boot")
	cmd.Flags().StringVar(&bootPNG, "png", "", "Write the framebuffer to this PNG file")
	rootCmd.AddCommand(cmd)
}

func newBootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Boot the machine end to end and report the result",
		Long: `The boot command runs the whole flow: machine bring-up, memory map
snapshot, exit from boot services, heap initialization, a sample allocation
workload, and framebuffer output.

Example:
  bootctl boot
  bootctl boot --mem 33554432 --allocs 32
  bootctl boot --png boot.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoot()
		},
	}
}

type bootReport struct {
	MemoryBytes       uint64
	ConventionalPages uint64
	RegionsRegistered int
	BytesRegistered   uint64
	Allocations       int
	BytesAllocated    uint64
	LargestFree       uint64
	SerialOutput      string
}

func runBoot() error {
	m, err := newMachine()
	if err != nil {
		return err
	}
	defer m.Close()
	defer heap.Install(nil)

	// The framebuffer must be resolved while boot services are still up.
	fb, err := m.LocateFramebuffer()
	if err != nil {
		return fmt.Errorf("locating framebuffer: %w", err)
	}

	h := heap.New(m.Mem(), 0)
	mm, err := boot.InitRuntime(m, h)
	if err != nil {
		return fmt.Errorf("boot failed: %w", err)
	}
	rt := &bootedRuntime{machine: m, heap: h, memmap: mm}
	printVerbose("Boot services exited (map key %d)\n", mm.Key())

	// Early diagnostics go out the serial port, like on real metal.
	com1 := serial.NewCOM1(serial.NewSimPort(serial.COM1Base))
	com1.Init()
	fmt.Fprintf(com1, "heap up: %d bytes\n", rt.heap.Stats().BytesRegistered)

	// Sample workload: growing allocations with mixed alignments.
	var addrs []heap.Addr
	for i := 0; i < bootAllocs; i++ {
		size := uint64(64 << (i % 6))
		align := uint64(16 << (i % 4))
		addr, err := rt.heap.Allocate(size, align)
		if err != nil {
			printVerbose("Allocation %d (size %d) failed: %v\n", i, size, err)
			break
		}
		printVerbose("Allocated %d bytes at %#x\n", size, addr)
		addrs = append(addrs, addr)
	}
	// Free every other block so the chain shows both states.
	for i := 0; i < len(addrs); i += 2 {
		if err := rt.heap.Free(addrs[i]); err != nil {
			return fmt.Errorf("freeing %#x: %w", addrs[i], err)
		}
	}
	fmt.Fprintf(com1, "workload done: %d allocations\n", len(addrs))

	// Paint the framebuffer and write the boot banner onto it.
	surface := console.NewSurface(fb)
	console.TestPattern(surface)
	w := console.NewTextWriter(surface, 0xFFFFFF)
	fmt.Fprintf(w, "BOOT OK\n")
	fmt.Fprintf(w, "HEAP %d BYTES\n", rt.heap.Stats().BytesRegistered)
	if bootPNG != "" {
		if err := writePNG(bootPNG, surface); err != nil {
			return err
		}
		printInfo("Framebuffer written to %s\n", bootPNG)
	}

	st := rt.heap.Stats()
	report := bootReport{
		MemoryBytes:       memBytes,
		ConventionalPages: rt.memmap.ConventionalPages(),
		RegionsRegistered: st.RegionsRegistered,
		BytesRegistered:   st.BytesRegistered,
		Allocations:       len(addrs),
		BytesAllocated:    st.BytesAllocated,
		LargestFree:       rt.heap.LargestFree(),
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nBoot complete:\n")
	printInfo("  Memory: %d bytes (%d conventional pages)\n",
		report.MemoryBytes, report.ConventionalPages)
	printInfo("  Heap: %d regions, %d bytes registered\n",
		report.RegionsRegistered, report.BytesRegistered)
	printInfo("  Workload: %d allocations, %d bytes\n",
		report.Allocations, report.BytesAllocated)
	printInfo("  Largest free block: %d bytes\n", report.LargestFree)
	return nil
}

func writePNG(path string, b console.Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := console.EncodePNG(f, b); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
