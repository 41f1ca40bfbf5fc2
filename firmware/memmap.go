package firmware

import "github.com/joshuapare/bootheap/internal/format"

// MemoryDescriptor describes one contiguous physical memory extent as
// reported by the platform firmware.
type MemoryDescriptor struct {
	Type          MemoryType
	PhysicalStart uint64
	VirtualStart  uint64
	NumberOfPages uint64
	Attribute     uint64
}

// Size returns the extent length in bytes.
func (d MemoryDescriptor) Size() uint64 {
	return d.NumberOfPages * format.PageSize
}

// End returns the first address past the extent.
func (d MemoryDescriptor) End() uint64 {
	return d.PhysicalStart + d.Size()
}

// DescriptorVisitor is invoked by Visit for each descriptor in map order.
// Returning false stops the iteration.
type DescriptorVisitor func(d MemoryDescriptor) bool

// MemoryMap is the ordered sequence of memory descriptors current at one
// point in the boot flow, tagged with the key that must be presented to
// ExitBootServices.
type MemoryMap struct {
	descriptors []MemoryDescriptor
	key         uint64
}

// NewMemoryMap builds a memory map snapshot. The descriptor slice is not
// copied; callers hand over ownership.
func NewMemoryMap(key uint64, descriptors []MemoryDescriptor) *MemoryMap {
	return &MemoryMap{descriptors: descriptors, key: key}
}

// Key returns the map key identifying this snapshot.
func (m *MemoryMap) Key() uint64 {
	return m.key
}

// Descriptors returns the descriptors in map order.
func (m *MemoryMap) Descriptors() []MemoryDescriptor {
	return m.descriptors
}

// Visit invokes visitor for each descriptor in map order until it returns
// false or the map is exhausted.
func (m *MemoryMap) Visit(visitor DescriptorVisitor) {
	for _, d := range m.descriptors {
		if !visitor(d) {
			return
		}
	}
}

// ConventionalPages sums the page counts of all conventional RAM extents.
func (m *MemoryMap) ConventionalPages() uint64 {
	var pages uint64
	for _, d := range m.descriptors {
		if d.Type.Usable() {
			pages += d.NumberOfPages
		}
	}
	return pages
}
