package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootheap/inspect"
)

var statsAllocs int

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsAllocs, "allocs", 16, "Allocations to perform before reporting")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Boot, run an allocation workload, and show allocator counters",
		Long: `The stats command boots the machine, performs a mixed allocation and
free workload, and reports the allocator counters.

Example:
  bootctl stats
  bootctl stats --allocs 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	rt, err := bootRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	addrs, err := workload(rt.heap, statsAllocs)
	if err != nil {
		return err
	}
	printVerbose("Workload: %d allocations\n", len(addrs))

	st := rt.heap.Stats()
	if jsonOut {
		return printJSON(st)
	}

	printInfo("Allocator state after %d allocations:\n\n", len(addrs))
	if err := inspect.DumpStats(os.Stdout, st); err != nil {
		return err
	}
	printInfo("\nfree bytes           %d\n", rt.heap.FreeBytes())
	printInfo("largest free block   %d\n", rt.heap.LargestFree())
	return nil
}
