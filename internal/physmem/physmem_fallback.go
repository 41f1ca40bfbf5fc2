//go:build !unix

// Package physmem provides the backing storage for the simulated physical
// address space.
package physmem

import "fmt"

// Map allocates plain heap storage when anonymous mappings are not available.
func Map(size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("physmem: negative size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
