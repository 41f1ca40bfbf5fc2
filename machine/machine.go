// Package machine provides a simulated platform: a physical memory arena with
// a firmware-style memory map over it, a framebuffer, and the boot-services
// handshake the runtime must complete before taking ownership.
package machine

import (
	"errors"
	"fmt"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/internal/format"
	"github.com/joshuapare/bootheap/internal/physmem"
)

// Defaults for zero-valued Config fields.
const (
	DefaultMemoryBytes       = 16 << 20
	DefaultFramebufferWidth  = 640
	DefaultFramebufferHeight = 480
)

// Fixed landmarks of the fabricated memory layout.
const (
	lowRAMPages     = 9         // conventional extent at address 0
	mainRAMStart    = 0x100000  // conventional extent above the legacy hole
	framebufferBase = 0xE0000000
)

// ErrMemoryTooSmall rejects configurations whose arena cannot hold the
// fabricated layout.
var ErrMemoryTooSmall = errors.New("machine: memory size too small")

// Config sizes the simulated platform. Zero values take defaults.
type Config struct {
	MemoryBytes       uint64
	FramebufferWidth  int
	FramebufferHeight int
}

// Machine is one simulated platform instance. It implements
// firmware.BootServices until ExitBootServices succeeds.
type Machine struct {
	mem     []byte
	release func() error
	fb      *firmware.Framebuffer

	generation uint64
	exited     bool
}

// New maps the physical arena and assembles the platform.
func New(cfg Config) (*Machine, error) {
	if cfg.MemoryBytes == 0 {
		cfg.MemoryBytes = DefaultMemoryBytes
	}
	if cfg.FramebufferWidth <= 0 {
		cfg.FramebufferWidth = DefaultFramebufferWidth
	}
	if cfg.FramebufferHeight <= 0 {
		cfg.FramebufferHeight = DefaultFramebufferHeight
	}
	if cfg.MemoryBytes < mainRAMStart+format.PageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMemoryTooSmall, cfg.MemoryBytes)
	}

	mem, release, err := physmem.Map(int(cfg.MemoryBytes))
	if err != nil {
		return nil, fmt.Errorf("machine: mapping arena: %w", err)
	}

	fb := &firmware.Framebuffer{
		Info: firmware.FramebufferInfo{
			Width:         cfg.FramebufferWidth,
			Height:        cfg.FramebufferHeight,
			PixelsPerLine: cfg.FramebufferWidth,
		},
		Buf: make([]byte, cfg.FramebufferWidth*cfg.FramebufferHeight*4),
	}

	return &Machine{mem: mem, release: release, fb: fb}, nil
}

// MemoryMap returns a fresh memory map snapshot. Each snapshot gets a new
// key; older keys become stale.
func (m *Machine) MemoryMap() (*firmware.MemoryMap, error) {
	if m.exited {
		return nil, firmware.ErrBootServicesExited
	}
	m.generation++
	return firmware.NewMemoryMap(m.generation, m.describe()), nil
}

// describe fabricates the descriptor list for the current arena. Layout, low
// to high: conventional RAM at 0, reserved legacy area, boot-services data up
// to the 1 MiB line, conventional RAM to the arena end, then ACPI tables and
// the framebuffer aperture outside the arena.
func (m *Machine) describe() []firmware.MemoryDescriptor {
	arenaPages := uint64(len(m.mem)) / format.PageSize
	mainStartPage := uint64(mainRAMStart) / format.PageSize
	fbPages := (uint64(len(m.fb.Buf)) + format.PageSize - 1) / format.PageSize

	return []firmware.MemoryDescriptor{
		{Type: firmware.ConventionalMemory, PhysicalStart: 0,
			NumberOfPages: lowRAMPages},
		{Type: firmware.ReservedMemory, PhysicalStart: lowRAMPages * format.PageSize,
			NumberOfPages: 16 - lowRAMPages},
		{Type: firmware.BootServicesData, PhysicalStart: 16 * format.PageSize,
			NumberOfPages: mainStartPage - 16},
		{Type: firmware.ConventionalMemory, PhysicalStart: mainRAMStart,
			NumberOfPages: arenaPages - mainStartPage},
		{Type: firmware.ACPIReclaimMemory, PhysicalStart: framebufferBase - 16*format.PageSize,
			NumberOfPages: 16},
		{Type: firmware.MemoryMappedIO, PhysicalStart: framebufferBase,
			NumberOfPages: fbPages},
	}
}

// ExitBootServices relinquishes the boot layer. The presented key must match
// the most recent MemoryMap snapshot.
func (m *Machine) ExitBootServices(mapKey uint64) error {
	if m.exited {
		return firmware.ErrBootServicesExited
	}
	if mapKey != m.generation {
		return fmt.Errorf("%w: key %d, current %d", firmware.ErrStaleMapKey, mapKey, m.generation)
	}
	m.exited = true
	return nil
}

// LocateFramebuffer resolves the graphics output. Resolving the protocol
// allocates on the firmware side, so the memory map key moves.
func (m *Machine) LocateFramebuffer() (*firmware.Framebuffer, error) {
	if m.exited {
		return nil, firmware.ErrBootServicesExited
	}
	m.generation++
	return m.fb, nil
}

// Mem returns the physical arena. Address a of the simulated machine is
// Mem()[a].
func (m *Machine) Mem() []byte {
	return m.mem
}

// Exited reports whether boot services have been relinquished.
func (m *Machine) Exited() bool {
	return m.exited
}

// Close releases the arena mapping.
func (m *Machine) Close() error {
	if m.release == nil {
		return nil
	}
	release := m.release
	m.release = nil
	m.mem = nil
	return release()
}

var _ firmware.BootServices = (*Machine)(nil)
