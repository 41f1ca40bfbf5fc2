package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/internal/format"
)

func Test_AddRegionSkipsZeroPage(t *testing.T) {
	h := New(make([]byte, 16*format.PageSize), 0)

	require.True(t, h.AddRegion(0, 9*format.PageSize))

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, Addr(format.PageSize), blocks[0].Addr,
		"zero page must stay outside the heap")
	require.Equal(t, uint64(8*format.PageSize), blocks[0].Size)
}

func Test_AddRegionDropsTinyRegions(t *testing.T) {
	h := New(make([]byte, 16*format.PageSize), 0)

	// One page at address 0 vanishes entirely after the zero-page skip.
	require.False(t, h.AddRegion(0, format.PageSize))
	// Two pages leave a single page, still too small.
	require.False(t, h.AddRegion(0, 2*format.PageSize))
	// One page away from address 0 is likewise too small.
	require.False(t, h.AddRegion(2*format.PageSize, format.PageSize))

	require.Empty(t, h.Blocks())
	require.Zero(t, h.Stats().RegionsRegistered)
}

func Test_AddRegionRejectsOutOfWindow(t *testing.T) {
	h := New(make([]byte, 8*format.PageSize), 0x100000)

	require.False(t, h.AddRegion(0x100000, 16*format.PageSize), "past window limit")
	require.False(t, h.AddRegion(0x1000, 8*format.PageSize), "below window base")
	require.Empty(t, h.Blocks())
}

func Test_AddRegionNormalizesBoundaries(t *testing.T) {
	h := New(make([]byte, 16*format.PageSize), 0x100000)

	// Boundaries off header alignment are pulled in, never out.
	require.True(t, h.AddRegion(0x100008, 2*format.PageSize+24))

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	require.Zero(t, blocks[0].Addr%format.HeaderAlignment)
	require.Zero(t, blocks[0].Size%format.HeaderAlignment)
	require.Equal(t, Addr(0x100020), blocks[0].Addr)
	require.Equal(t, uint64(2*format.PageSize), blocks[0].Size)
}

func Test_InitFromMapFiltersByType(t *testing.T) {
	h := New(make([]byte, 64*format.PageSize), 0)

	mm := firmware.NewMemoryMap(1, []firmware.MemoryDescriptor{
		{Type: firmware.ConventionalMemory, PhysicalStart: 0, NumberOfPages: 9},
		{Type: firmware.ReservedMemory, PhysicalStart: 9 * format.PageSize, NumberOfPages: 4},
		{Type: firmware.BootServicesData, PhysicalStart: 13 * format.PageSize, NumberOfPages: 8},
		{Type: firmware.ConventionalMemory, PhysicalStart: 21 * format.PageSize, NumberOfPages: 16},
		{Type: firmware.ACPIReclaimMemory, PhysicalStart: 37 * format.PageSize, NumberOfPages: 2},
	})
	h.InitFromMap(mm)

	st := h.Stats()
	require.Equal(t, 2, st.RegionsRegistered)
	// First conventional region loses its zero page on registration.
	require.Equal(t, uint64((8+16)*format.PageSize), st.BytesRegistered)

	// Nothing the allocator hands out may fall inside a non-conventional
	// descriptor.
	for {
		addr, err := h.Allocate(format.PageSize, 8)
		if err != nil {
			break
		}
		inConventional := (addr >= format.PageSize && addr+format.PageSize <= 9*format.PageSize) ||
			(addr >= 21*format.PageSize && addr+format.PageSize <= 37*format.PageSize)
		require.True(t, inConventional, "allocation at %#x outside conventional RAM", addr)
	}
}

func Test_DefaultHeapInstall(t *testing.T) {
	t.Cleanup(func() { Install(nil) })
	Install(nil)

	_, err := Allocate(64, 8)
	require.ErrorIs(t, err, ErrNotInstalled)
	require.ErrorIs(t, Free(0x1000), ErrNotInstalled)
	require.Nil(t, Default())

	h := New(make([]byte, 8*format.PageSize), 0x100000)
	require.True(t, h.AddRegion(0x100000, 8*format.PageSize))
	Install(h)
	require.Same(t, h, Default())

	addr, err := Allocate(64, 16)
	require.NoError(t, err)
	require.NoError(t, Free(addr))
	require.Equal(t, 1, h.Stats().AllocSuccesses)
}
