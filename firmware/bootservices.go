package firmware

import "errors"

var (
	// ErrStaleMapKey indicates the memory map changed between the snapshot
	// and the ExitBootServices call; the caller must re-fetch the map and
	// retry.
	ErrStaleMapKey = errors.New("firmware: memory map key is stale")

	// ErrBootServicesExited indicates boot services were already
	// relinquished and can no longer be called.
	ErrBootServicesExited = errors.New("firmware: boot services have exited")

	// ErrNoFramebuffer indicates the platform exposes no graphics output.
	ErrNoFramebuffer = errors.New("firmware: no framebuffer available")
)

// FramebufferInfo describes the pixel geometry of the platform framebuffer.
// Pixels are 32-bit BGRx values; a scan line may be wider than the visible
// width.
type FramebufferInfo struct {
	Width         int
	Height        int
	PixelsPerLine int
}

// Framebuffer couples the pixel geometry with the backing pixel storage.
type Framebuffer struct {
	Info FramebufferInfo
	Buf  []byte
}

// BootServices is the surface the platform exposes until the runtime takes
// ownership of the machine. A MemoryMap snapshot's key must be presented to
// ExitBootServices; if the map changed in between, the call fails with
// ErrStaleMapKey and the caller retries with a fresh snapshot.
type BootServices interface {
	// MemoryMap returns the current memory map snapshot.
	MemoryMap() (*MemoryMap, error)

	// ExitBootServices relinquishes the boot layer. After it succeeds no
	// further BootServices calls are valid.
	ExitBootServices(mapKey uint64) error

	// LocateFramebuffer resolves the platform graphics output.
	LocateFramebuffer() (*Framebuffer, error)
}
