package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/bootheap/heap"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	header := headerStyle.Render(fmt.Sprintf(
		" heapexplorer - %d blocks, %d free bytes ",
		len(m.blocks), m.heap.FreeBytes()))

	paneHeight := m.height - 6
	if paneHeight < 4 {
		paneHeight = 4
	}
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 4

	left := m.chainView(leftWidth-4, paneHeight)
	right := m.detailView(rightWidth, paneHeight)

	leftStyle, rightStyle := paneStyle, paneStyle
	if m.focusedPane == ChainPane {
		leftStyle = activePaneStyle
	} else {
		rightStyle = activePaneStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(leftWidth-2).Height(paneHeight).Render(left),
		rightStyle.Width(rightWidth).Height(paneHeight).Render(right),
	)

	status := m.statusMessage
	if status == "" {
		status = helpStyle.Render("a alloc · f free · c copy · r refresh · tab pane · ? help · q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		statusStyle.Width(m.width-2).Render(status),
	)
}

// chainView renders the scrolling block list.
func (m Model) chainView(width, height int) string {
	if len(m.blocks) == 0 {
		return "empty chain"
	}

	// Keep the cursor in the visible window.
	top := 0
	if m.cursor >= height {
		top = m.cursor - height + 1
	}

	var b strings.Builder
	for i := top; i < len(m.blocks) && i-top < height; i++ {
		line := blockLine(m.blocks[i], width)
		switch {
		case i == m.cursor:
			line = blockSelectedStyle.Render(line)
		case m.blocks[i].Allocated:
			line = blockAllocatedStyle.Render(line)
		default:
			line = blockFreeStyle.Render(line)
		}
		b.WriteString(line)
		if i-top < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func blockLine(blk heap.Block, width int) string {
	state := "free"
	if blk.Allocated {
		state = "used"
	}
	line := fmt.Sprintf("%#010x %9d %s", blk.Addr, blk.Size, state)
	if len(line) > width && width > 3 {
		line = line[:width-3] + "..."
	}
	return line
}

// detailView renders the selected block's header fields and a dump of the
// start of its data.
func (m Model) detailView(width, height int) string {
	blk, ok := m.selected()
	if !ok {
		return "no block selected"
	}

	state := "free"
	if blk.Allocated {
		state = "allocated"
	}
	lines := []string{
		detailLabelStyle.Render("address") + fmt.Sprintf("%#x", blk.Addr),
		detailLabelStyle.Render("size") + fmt.Sprintf("%d", blk.Size),
		detailLabelStyle.Render("state") + state,
		detailLabelStyle.Render("next") + fmt.Sprintf("%#x", blk.Next),
		detailLabelStyle.Render("data") + fmt.Sprintf("%#x+%d", blk.DataAddr(), blk.DataSize()),
		"",
	}

	lines = append(lines, m.dataDump(blk, width, height-len(lines))...)

	if m.detailScroll >= len(lines) {
		lines = lines[len(lines)-1:]
	} else {
		lines = lines[m.detailScroll:]
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// dataDump renders hex rows of the block's data region, 8 bytes per row.
func (m Model) dataDump(blk heap.Block, width, rows int) []string {
	const perRow = 8
	if rows < 1 {
		rows = 1
	}
	n := blk.DataSize()
	if max := uint64(rows+m.detailScroll) * perRow; n > max {
		n = max
	}
	if n == 0 {
		return []string{"(no data)"}
	}
	data := m.heap.Bytes(blk.DataAddr(), n)

	var out []string
	for off := 0; off < len(data); off += perRow {
		end := off + perRow
		if end > len(data) {
			end = len(data)
		}
		var row strings.Builder
		fmt.Fprintf(&row, "%#010x ", blk.DataAddr()+uint64(off))
		for _, c := range data[off:end] {
			fmt.Fprintf(&row, " %02x", c)
		}
		out = append(out, row.String())
	}
	return out
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"↑/k, ↓/j", "move through the chain"},
		{"pgup/pgdn", "page through the chain"},
		{"home/g, end/G", "first / last block"},
		{"tab", "switch between chain and detail panes"},
		{"a", "allocate a block (cycles sizes)"},
		{"f", "free the selected block"},
		{"c", "copy the selected data address"},
		{"r", "re-snapshot the chain"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(" heapexplorer help ") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			helpStyle.Render(fmt.Sprintf("%-14s", r[0])), r[1]))
	}
	b.WriteString("\npress ? or esc to close")
	return b.String()
}
