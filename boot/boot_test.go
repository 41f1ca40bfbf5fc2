package boot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/heap"
	"github.com/joshuapare/bootheap/machine"
)

func Test_InitRuntime(t *testing.T) {
	t.Cleanup(func() { heap.Install(nil) })

	m, err := machine.New(machine.Config{MemoryBytes: 2 << 20})
	require.NoError(t, err)
	defer m.Close()

	h := heap.New(m.Mem(), 0)
	mm, err := InitRuntime(m, h)
	require.NoError(t, err)
	require.NotNil(t, mm)
	require.True(t, m.Exited())
	require.Same(t, h, heap.Default())

	// Both conventional extents of the machine map are registered.
	require.Equal(t, 2, h.Stats().RegionsRegistered)

	addr, err := heap.Allocate(4096, 4096)
	require.NoError(t, err)
	require.Zero(t, addr%4096)
	require.NoError(t, heap.Free(addr))
}

func Test_InitRuntimeTakesOwnSnapshot(t *testing.T) {
	t.Cleanup(func() { heap.Install(nil) })

	m, err := machine.New(machine.Config{MemoryBytes: 2 << 20})
	require.NoError(t, err)
	defer m.Close()

	// Locating the framebuffer after the first (external) snapshot moves the
	// map key, so InitRuntime's first exit attempt would be stale if it
	// reused an old snapshot. It must always take its own fresh one.
	_, err = m.MemoryMap()
	require.NoError(t, err)
	_, err = m.LocateFramebuffer()
	require.NoError(t, err)

	h := heap.New(m.Mem(), 0)
	_, err = InitRuntime(m, h)
	require.NoError(t, err)
	require.True(t, m.Exited())
}

// stubBootServices fails ExitBootServices with a stale key a fixed number of
// times regardless of the key presented.
type stubBootServices struct {
	inner     firmware.BootServices
	staleLeft int
	mapCalls  int
}

func (s *stubBootServices) MemoryMap() (*firmware.MemoryMap, error) {
	s.mapCalls++
	return s.inner.MemoryMap()
}

func (s *stubBootServices) ExitBootServices(mapKey uint64) error {
	if s.staleLeft > 0 {
		s.staleLeft--
		return firmware.ErrStaleMapKey
	}
	return s.inner.ExitBootServices(mapKey)
}

func (s *stubBootServices) LocateFramebuffer() (*firmware.Framebuffer, error) {
	return s.inner.LocateFramebuffer()
}

func Test_InitRuntimeStaleKeyRetryLoop(t *testing.T) {
	t.Cleanup(func() { heap.Install(nil) })

	m, err := machine.New(machine.Config{MemoryBytes: 2 << 20})
	require.NoError(t, err)
	defer m.Close()

	stub := &stubBootServices{inner: m, staleLeft: 2}
	h := heap.New(m.Mem(), 0)
	_, err = InitRuntime(stub, h)
	require.NoError(t, err)
	require.Equal(t, 3, stub.mapCalls, "one snapshot per attempt")
}

func Test_InitRuntimeGivesUpOnPersistentStaleKey(t *testing.T) {
	m, err := machine.New(machine.Config{MemoryBytes: 2 << 20})
	require.NoError(t, err)
	defer m.Close()

	stub := &stubBootServices{inner: m, staleLeft: 100}
	h := heap.New(m.Mem(), 0)
	_, err = InitRuntime(stub, h)
	require.ErrorIs(t, err, firmware.ErrStaleMapKey)
	require.False(t, m.Exited())
}
