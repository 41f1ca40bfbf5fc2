package serial

// SimPort is an in-memory UART register file. The transmit holding register
// always reads as empty, and every byte written to the data register after
// initialization is captured in Output.
type SimPort struct {
	Base   uint16
	Regs   map[uint16]uint8
	Log    []PortWrite
	Output []byte
}

// PortWrite records one register write in order.
type PortWrite struct {
	Port  uint16
	Value uint8
}

// NewSimPort simulates a UART at base.
func NewSimPort(base uint16) *SimPort {
	return &SimPort{Base: base, Regs: make(map[uint16]uint8)}
}

func (s *SimPort) In8(port uint16) uint8 {
	if port == s.Base+regLineStatus {
		// Transmitter drains instantly.
		return s.Regs[port] | lineStatusTxEmpty
	}
	return s.Regs[port]
}

func (s *SimPort) Out8(port uint16, value uint8) {
	s.Log = append(s.Log, PortWrite{Port: port, Value: value})
	s.Regs[port] = value
	// Data register writes with DLAB clear are transmitted bytes.
	if port == s.Base+regData && s.Regs[s.Base+regLineCtl]&0x80 == 0 {
		s.Output = append(s.Output, value)
	}
}
