package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(2 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, m.Close()) })
	m.width, m.height = 100, 30
	return m
}

func press(m Model, keys string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(Model)
}

func Test_ModelBootsWithChain(t *testing.T) {
	m := newTestModel(t)
	require.NotEmpty(t, m.blocks, "boot leaves registered free blocks")
	require.Equal(t, 0, m.cursor)
}

func Test_AllocateAndFreeFromKeyboard(t *testing.T) {
	m := newTestModel(t)
	before := len(m.blocks)

	m = press(m, "a")
	require.Len(t, m.blocks, before+1, "allocation splits a block")
	blk, ok := m.selected()
	require.True(t, ok)
	require.True(t, blk.Allocated, "cursor follows the new block")
	require.Contains(t, m.statusMessage, "allocated")

	m = press(m, "f")
	blk, ok = m.selected()
	require.True(t, ok)
	require.False(t, blk.Allocated)
	require.Len(t, m.blocks, before+1, "freeing never unlinks the header")

	m = press(m, "f")
	require.Contains(t, m.statusMessage, "already free")
}

func Test_CursorNavigation(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "a")
	m = press(m, "a")
	require.Greater(t, len(m.blocks), 2)

	m = press(m, "g")
	require.Equal(t, 0, m.cursor)
	m = press(m, "j")
	require.Equal(t, 1, m.cursor)
	m = press(m, "k")
	require.Equal(t, 0, m.cursor)
	m = press(m, "k")
	require.Equal(t, 0, m.cursor, "cursor clamps at the top")
	m = press(m, "G")
	require.Equal(t, len(m.blocks)-1, m.cursor)
}

func Test_HelpOverlayToggles(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "?")
	require.True(t, m.showHelp)

	// Keys other than the toggles are swallowed.
	cursorBefore := m.cursor
	m = press(m, "j")
	require.True(t, m.showHelp)
	require.Equal(t, cursorBefore, m.cursor)

	m = press(m, "?")
	require.False(t, m.showHelp)
}

func Test_ViewRenders(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	out := m.View()
	require.Contains(t, out, "heapexplorer")
	require.Contains(t, out, "free")

	m = press(m, "?")
	require.Contains(t, m.View(), "help")
}

func Test_QuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}
