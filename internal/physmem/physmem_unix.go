//go:build unix

package physmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves an anonymous mapping of the given size to serve as the
// platform's physical address space and returns its contents.
func Map(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("physmem: negative size %d", size)
	}
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("physmem: mmap %d bytes: %w", size, err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
