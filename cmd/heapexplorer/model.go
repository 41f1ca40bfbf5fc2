package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/bootheap/boot"
	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/heap"
	"github.com/joshuapare/bootheap/machine"
)

// Pane represents which pane is focused
type Pane int

const (
	ChainPane Pane = iota
	DetailPane
)

// allocSizes is the cycle of sizes the allocate action walks through.
var allocSizes = []uint64{64, 256, 1024, 4096, 16384}

// Model is the main application model
type Model struct {
	machine *machine.Machine
	heap    *heap.Heap
	memmap  *firmware.MemoryMap
	keys    KeyMap

	// Chain snapshot and cursor
	blocks []heap.Block
	cursor int

	focusedPane  Pane
	width        int
	height       int
	detailScroll int

	// Allocation cycle position
	allocIdx int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel boots a machine and builds the TUI model over its heap.
func NewModel(memoryBytes uint64) (Model, error) {
	m, err := machine.New(machine.Config{MemoryBytes: memoryBytes})
	if err != nil {
		return Model{}, err
	}
	h := heap.New(m.Mem(), 0)
	mm, err := boot.InitRuntime(m, h)
	if err != nil {
		m.Close()
		return Model{}, fmt.Errorf("boot failed: %w", err)
	}

	model := Model{
		machine: m,
		heap:    h,
		memmap:  mm,
		keys:    DefaultKeyMap(),
	}
	model.refresh()
	return model, nil
}

// refresh re-snapshots the block chain, clamping the cursor.
func (m *Model) refresh() {
	m.blocks = m.heap.Blocks()
	if m.cursor >= len(m.blocks) {
		m.cursor = len(m.blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the block under the cursor, if any.
func (m Model) selected() (heap.Block, bool) {
	if m.cursor < 0 || m.cursor >= len(m.blocks) {
		return heap.Block{}, false
	}
	return m.blocks[m.cursor], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the simulated machine.
func (m Model) Close() error {
	heap.Install(nil)
	return m.machine.Close()
}
