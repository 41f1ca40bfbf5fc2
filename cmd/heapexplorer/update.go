package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/bootheap/cmd/heapexplorer/logger"
	"github.com/joshuapare/bootheap/heap"
)

// chainPageSize is how far pgup/pgdn move the cursor.
const chainPageSize = 10

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay swallows everything except its own toggle and quit.
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Esc):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == ChainPane {
			m.focusedPane = DetailPane
		} else {
			m.focusedPane = ChainPane
		}

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == DetailPane {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		} else if m.cursor > 0 {
			m.cursor--
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == DetailPane {
			m.detailScroll++
		} else if m.cursor < len(m.blocks)-1 {
			m.cursor++
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= chainPageSize
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += chainPageSize
		if m.cursor > len(m.blocks)-1 {
			m.cursor = len(m.blocks) - 1
		}

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0

	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.blocks) - 1

	case key.Matches(msg, m.keys.Allocate):
		m.doAllocate()

	case key.Matches(msg, m.keys.Free):
		m.doFree()

	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
		m.statusMessage = "chain refreshed"

	case key.Matches(msg, m.keys.Copy):
		m.doCopy()
	}

	return m, nil
}

func (m *Model) doAllocate() {
	size := allocSizes[m.allocIdx%len(allocSizes)]
	m.allocIdx++
	addr, err := m.heap.Allocate(size, 16)
	if err != nil {
		if errors.Is(err, heap.ErrOutOfMemory) {
			m.statusMessage = fmt.Sprintf("out of memory for %d bytes", size)
		} else {
			m.statusMessage = errStyle.Render(err.Error())
		}
		logger.Warn("allocation failed", "size", size, "error", err)
		return
	}
	logger.Debug("allocated", "size", size, "addr", addr)
	m.refresh()
	// Move the cursor to the new block.
	for i, b := range m.blocks {
		if b.DataAddr() == addr {
			m.cursor = i
			break
		}
	}
	m.statusMessage = fmt.Sprintf("allocated %d bytes at %#x", size, addr)
}

func (m *Model) doFree() {
	b, ok := m.selected()
	if !ok {
		return
	}
	if !b.Allocated {
		m.statusMessage = "block is already free"
		return
	}
	if err := m.heap.Free(b.DataAddr()); err != nil {
		m.statusMessage = errStyle.Render(err.Error())
		logger.Warn("free failed", "addr", b.DataAddr(), "error", err)
		return
	}
	logger.Debug("freed", "addr", b.DataAddr())
	m.refresh()
	m.statusMessage = fmt.Sprintf("freed block %#x", b.DataAddr())
}

func (m *Model) doCopy() {
	b, ok := m.selected()
	if !ok {
		return
	}
	text := fmt.Sprintf("%#x", b.DataAddr())
	if err := clipboard.WriteAll(text); err != nil {
		m.statusMessage = "clipboard unavailable"
		logger.Warn("clipboard write failed", "error", err)
		return
	}
	m.statusMessage = fmt.Sprintf("copied %s", text)
}
