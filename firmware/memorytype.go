// Package firmware models the tables the platform boot layer hands to the
// runtime: the physical memory map, the framebuffer description, and the
// boot-services surface that must be exited before the runtime owns the
// machine.
package firmware

// MemoryType is the usability category of one physical memory extent, in the
// order the platform firmware reports them.
type MemoryType uint32

const (
	ReservedMemory MemoryType = iota
	LoaderCode
	LoaderData
	BootServicesCode
	BootServicesData
	RuntimeServicesCode
	RuntimeServicesData
	// ConventionalMemory is ordinary DRAM, free for the runtime to take over.
	ConventionalMemory
	UnusableMemory
	ACPIReclaimMemory
	ACPIMemoryNVS
	MemoryMappedIO
	MemoryMappedIOPortSpace
	PalCode
	PersistentMemory
)

var memoryTypeNames = map[MemoryType]string{
	ReservedMemory:          "Reserved",
	LoaderCode:              "LoaderCode",
	LoaderData:              "LoaderData",
	BootServicesCode:        "BootServicesCode",
	BootServicesData:        "BootServicesData",
	RuntimeServicesCode:     "RuntimeServicesCode",
	RuntimeServicesData:     "RuntimeServicesData",
	ConventionalMemory:      "ConventionalMemory",
	UnusableMemory:          "UnusableMemory",
	ACPIReclaimMemory:       "ACPIReclaimMemory",
	ACPIMemoryNVS:           "ACPIMemoryNVS",
	MemoryMappedIO:          "MemoryMappedIO",
	MemoryMappedIOPortSpace: "MemoryMappedIOPortSpace",
	PalCode:                 "PalCode",
	PersistentMemory:        "PersistentMemory",
}

func (t MemoryType) String() string {
	if name, ok := memoryTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Usable reports whether extents of this type may be registered with the
// allocator. Everything except conventional RAM stays out of the heap.
func (t MemoryType) Usable() bool {
	return t == ConventionalMemory
}
