package heap

// The process-wide default heap. The surrounding runtime installs it once at
// boot, before anything else allocates. There is deliberately no lock here:
// the execution model is a single logical thread of control, and callers
// holding only a read-only reference to the package still mutate the chain
// through it. Porting to a concurrent target requires a real mutual-exclusion
// mechanism around the chain first.
var defaultHeap *Heap

// Install makes h the process-wide default heap.
func Install(h *Heap) {
	defaultHeap = h
}

// Default returns the installed default heap, or nil before Install.
func Default() *Heap {
	return defaultHeap
}

// Allocate allocates from the default heap.
func Allocate(size, align uint64) (Addr, error) {
	if defaultHeap == nil {
		return 0, ErrNotInstalled
	}
	return defaultHeap.Allocate(size, align)
}

// Free releases an extent on the default heap.
func Free(addr Addr) error {
	if defaultHeap == nil {
		return ErrNotInstalled
	}
	return defaultHeap.Free(addr)
}
