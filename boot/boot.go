// Package boot takes the machine from firmware ownership to a running
// runtime: it snapshots the memory map, exits boot services, and brings up
// the heap over the conventional RAM the map reports.
package boot

import (
	"errors"
	"fmt"

	"github.com/joshuapare/bootheap/firmware"
	"github.com/joshuapare/bootheap/heap"
)

// exitAttempts bounds the snapshot/exit retry loop. The key can only go
// stale through firmware-side activity between the two calls; more than a
// handful of consecutive misses means the platform is broken.
const exitAttempts = 4

// InitRuntime relinquishes boot services and initializes h from the final
// memory map. On success the map the machine was left with is returned and h
// is installed as the default heap.
func InitRuntime(bs firmware.BootServices, h *heap.Heap) (*firmware.MemoryMap, error) {
	mm, err := exitBootServices(bs)
	if err != nil {
		return nil, err
	}
	h.InitFromMap(mm)
	heap.Install(h)
	return mm, nil
}

// exitBootServices snapshots the memory map and presents its key, retrying
// with a fresh snapshot while the key comes back stale.
func exitBootServices(bs firmware.BootServices) (*firmware.MemoryMap, error) {
	var lastErr error
	for attempt := 0; attempt < exitAttempts; attempt++ {
		mm, err := bs.MemoryMap()
		if err != nil {
			return nil, fmt.Errorf("boot: memory map snapshot: %w", err)
		}
		if err := bs.ExitBootServices(mm.Key()); err != nil {
			if errors.Is(err, firmware.ErrStaleMapKey) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("boot: exiting boot services: %w", err)
		}
		return mm, nil
	}
	return nil, fmt.Errorf("boot: map key stale after %d attempts: %w", exitAttempts, lastErr)
}
