package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootheap/heap"
)

func Test_Hexdump(t *testing.T) {
	var buf bytes.Buffer
	data := append([]byte("hello, world"), 0x00, 0xFF, 0x7F, 0x20)
	require.NoError(t, Hexdump(&buf, data))

	out := buf.String()
	require.Contains(t, out, "68 65 6c 6c 6f")
	require.Contains(t, out, "|hello, world")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func Test_DumpChain(t *testing.T) {
	h := heap.New(make([]byte, 32*1024), 0x100000)
	require.True(t, h.AddRegion(0x100000, 32*1024))

	_, err := h.Allocate(64, 16)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DumpChain(&buf, h))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "winner and the allocated block")
	require.Contains(t, lines[0], "free")
	require.Contains(t, lines[1], "allocated")
}

func Test_DumpStats(t *testing.T) {
	h := heap.New(make([]byte, 32*1024), 0x100000)
	require.True(t, h.AddRegion(0x100000, 32*1024))
	_, err := h.Allocate(64, 16)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DumpStats(&buf, h.Stats()))

	out := buf.String()
	require.Contains(t, out, "regions registered   1")
	require.Contains(t, out, "alloc successes      1")
	require.Contains(t, out, "bytes allocated      64")
}
