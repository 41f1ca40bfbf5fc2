package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootheap/heap"
	"github.com/joshuapare/bootheap/inspect"
)

var (
	dumpAllocs int
	dumpBytes  uint64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpAllocs, "allocs", 8, "Allocations to perform before dumping")
	cmd.Flags().Uint64Var(&dumpBytes, "bytes", 128, "Bytes of block data to hexdump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Boot, allocate, and dump the heap chain and raw block memory",
		Long: `The dump command boots the machine, performs a small workload, prints
the block chain, and hexdumps the start of the first live allocation.

Example:
  bootctl dump
  bootctl dump --allocs 16 --bytes 256`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}

func runDump() error {
	rt, err := bootRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	live, err := workload(rt.heap, dumpAllocs)
	if err != nil {
		return err
	}

	printInfo("Block chain:\n")
	if err := inspect.DumpChain(os.Stdout, rt.heap); err != nil {
		return err
	}

	if len(live) == 0 {
		return nil
	}
	addr := live[0]

	// Clamp to the block's data capacity so the dump never strays into the
	// neighbouring header.
	var capacity uint64
	rt.heap.Walk(func(b heap.Block) bool {
		if b.DataAddr() == addr {
			capacity = b.DataSize()
			return false
		}
		return true
	})
	n := dumpBytes
	if n > capacity {
		n = capacity
	}

	data := rt.heap.Bytes(addr, n)
	for i := range data {
		data[i] = byte(i)
	}
	printInfo("\nBlock %#x, first %d bytes:\n", addr, n)
	if err := inspect.Hexdump(os.Stdout, data); err != nil {
		return fmt.Errorf("hexdump: %w", err)
	}
	return nil
}
