package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/internal/format"
)

func init() {
	rootCmd.AddCommand(newMemmapCmd())
}

func newMemmapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memmap",
		Short: "Show the firmware memory map",
		Long: `The memmap command brings the machine up, snapshots the firmware
memory map, and prints every descriptor with its usability classification.

Example:
  bootctl memmap
  bootctl memmap --mem 33554432 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemmap()
		},
	}
}

type memmapEntry struct {
	Type   string
	Start  uint64
	End    uint64
	Pages  uint64
	Usable bool
}

type memmapReport struct {
	Key               uint64
	Entries           []memmapEntry
	ConventionalPages uint64
	ConventionalBytes uint64
}

func runMemmap() error {
	m, err := newMachine()
	if err != nil {
		return err
	}
	defer m.Close()

	mm, err := m.MemoryMap()
	if err != nil {
		return err
	}

	report := memmapReport{
		Key:               mm.Key(),
		ConventionalPages: mm.ConventionalPages(),
		ConventionalBytes: mm.ConventionalPages() * format.PageSize,
	}
	mm.Visit(func(d firmware.MemoryDescriptor) bool {
		report.Entries = append(report.Entries, memmapEntry{
			Type:   d.Type.String(),
			Start:  d.PhysicalStart,
			End:    d.End(),
			Pages:  d.NumberOfPages,
			Usable: d.Type.Usable(),
		})
		return true
	})

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Memory map (key %d):\n", report.Key)
	for _, e := range report.Entries {
		marker := " "
		if e.Usable {
			marker = "*"
		}
		printInfo("  %s %#012x-%#012x  %6d pages  %s\n",
			marker, e.Start, e.End, e.Pages, e.Type)
	}
	printInfo("\nConventional RAM: %d pages (%d bytes)\n",
		report.ConventionalPages, report.ConventionalBytes)
	return nil
}
