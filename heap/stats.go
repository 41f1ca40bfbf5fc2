package heap

// Stats holds allocator counters for instrumentation and testing.
type Stats struct {
	AllocCalls     int    // Total Allocate() calls
	AllocSuccesses int    // Allocations that returned an address
	AllocFailures  int    // Allocations rejected or exhausted
	FreeCalls      int    // Total Free() calls
	Splits         int    // Blocks split during allocation
	PaddingBlocks  int    // Padding headers created by alignment slack
	PaddingBytes   uint64 // Bytes permanently sacrificed to padding blocks
	BytesAllocated uint64 // Total rounded bytes handed out
	BytesFreed     uint64 // Total data bytes marked free again

	RegionsRegistered int    // Regions accepted by the initializer
	BytesRegistered   uint64 // Total capacity registered
}
