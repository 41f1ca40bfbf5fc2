package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/internal/format"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := New(Config{MemoryBytes: 2 << 20, FramebufferWidth: 64, FramebufferHeight: 48})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, m.Close()) })
	return m
}

func Test_ConfigValidation(t *testing.T) {
	_, err := New(Config{MemoryBytes: 64 * format.PageSize})
	require.ErrorIs(t, err, ErrMemoryTooSmall)

	m, err := New(Config{MemoryBytes: 2 << 20})
	require.NoError(t, err)
	defer m.Close()
	require.Len(t, m.Mem(), 2<<20)
}

func Test_MemoryMapLayout(t *testing.T) {
	m := newTestMachine(t)

	mm, err := m.MemoryMap()
	require.NoError(t, err)

	descs := mm.Descriptors()
	require.NotEmpty(t, descs)

	// Descriptors are sorted, non-overlapping, and page-granular.
	var prevEnd uint64
	for _, d := range descs {
		require.GreaterOrEqual(t, d.PhysicalStart, prevEnd, "descriptor overlap at %#x", d.PhysicalStart)
		require.Zero(t, d.PhysicalStart%format.PageSize)
		require.NotZero(t, d.NumberOfPages)
		prevEnd = d.End()
	}

	// Conventional RAM descriptors stay inside the arena; the first one
	// starts at address 0 and the main one at the 1 MiB line.
	var conventional []firmware.MemoryDescriptor
	mm.Visit(func(d firmware.MemoryDescriptor) bool {
		if d.Type.Usable() {
			conventional = append(conventional, d)
			require.LessOrEqual(t, d.End(), uint64(len(m.Mem())))
		}
		return true
	})
	require.Len(t, conventional, 2)
	require.Zero(t, conventional[0].PhysicalStart)
	require.Equal(t, uint64(0x100000), conventional[1].PhysicalStart)
	require.Equal(t, uint64(len(m.Mem())), conventional[1].End(), "main RAM runs to the arena end")
}

func Test_ExitBootServicesKeyHandshake(t *testing.T) {
	m := newTestMachine(t)

	mm, err := m.MemoryMap()
	require.NoError(t, err)

	// Locating the framebuffer moves the map key; the old snapshot is stale.
	_, err = m.LocateFramebuffer()
	require.NoError(t, err)
	require.ErrorIs(t, m.ExitBootServices(mm.Key()), firmware.ErrStaleMapKey)
	require.False(t, m.Exited())

	// A fresh snapshot exits cleanly.
	mm, err = m.MemoryMap()
	require.NoError(t, err)
	require.NoError(t, m.ExitBootServices(mm.Key()))
	require.True(t, m.Exited())
}

func Test_BootServicesUnavailableAfterExit(t *testing.T) {
	m := newTestMachine(t)

	mm, err := m.MemoryMap()
	require.NoError(t, err)
	require.NoError(t, m.ExitBootServices(mm.Key()))

	_, err = m.MemoryMap()
	require.ErrorIs(t, err, firmware.ErrBootServicesExited)
	_, err = m.LocateFramebuffer()
	require.ErrorIs(t, err, firmware.ErrBootServicesExited)
	require.ErrorIs(t, m.ExitBootServices(mm.Key()), firmware.ErrBootServicesExited)
}

func Test_FramebufferGeometry(t *testing.T) {
	m := newTestMachine(t)

	fb, err := m.LocateFramebuffer()
	require.NoError(t, err)
	require.Equal(t, 64, fb.Info.Width)
	require.Equal(t, 48, fb.Info.Height)
	require.Equal(t, 64, fb.Info.PixelsPerLine)
	require.Len(t, fb.Buf, 64*48*4)

	// The aperture appears in the memory map as MMIO, outside the arena.
	mm, err := m.MemoryMap()
	require.NoError(t, err)
	var mmio *firmware.MemoryDescriptor
	for _, d := range mm.Descriptors() {
		if d.Type == firmware.MemoryMappedIO {
			d := d
			mmio = &d
		}
	}
	require.NotNil(t, mmio)
	require.Equal(t, uint64(0xE0000000), mmio.PhysicalStart)
	require.GreaterOrEqual(t, mmio.Size(), uint64(len(fb.Buf)))
}

func Test_ArenaIsWritable(t *testing.T) {
	m := newTestMachine(t)
	mem := m.Mem()
	mem[0x100000] = 0xA5
	require.Equal(t, byte(0xA5), mem[0x100000])
}
