// Package serial drives a 16550-compatible UART for early diagnostic output.
// Register access goes through the PortIO interface, so the same driver runs
// against real port I/O or a simulated device.
package serial

import "io"

// PortIO performs byte-wide I/O port access.
type PortIO interface {
	In8(port uint16) uint8
	Out8(port uint16, value uint8)
}

// COM1Base is the register base of the first serial port.
const COM1Base uint16 = 0x3F8

// Register offsets from the port base.
const (
	regData       = 0 // data (DLAB=0) / divisor low (DLAB=1)
	regIntEnable  = 1 // interrupt enable (DLAB=0) / divisor high (DLAB=1)
	regFIFOCtl    = 2
	regLineCtl    = 3
	regModemCtl   = 4
	regLineStatus = 5
)

const lineStatusTxEmpty = 0x20

// Port is one configured UART.
type Port struct {
	io   PortIO
	base uint16
}

// NewPort binds a driver to the UART at base.
func NewPort(pio PortIO, base uint16) *Port {
	return &Port{io: pio, base: base}
}

// NewCOM1 binds a driver to the first serial port.
func NewCOM1(pio PortIO) *Port {
	return NewPort(pio, COM1Base)
}

// Init programs the UART: interrupts off, 115200/115200 = divisor 1, 8 data
// bits, no parity, one stop bit, FIFOs enabled and cleared, DTR/RTS raised.
func (p *Port) Init() {
	p.io.Out8(p.base+regIntEnable, 0x00) // disable interrupts
	p.io.Out8(p.base+regLineCtl, 0x80)   // DLAB on: next two writes set the divisor
	p.io.Out8(p.base+regData, 0x01)      // divisor low
	p.io.Out8(p.base+regIntEnable, 0x00) // divisor high
	p.io.Out8(p.base+regLineCtl, 0x03)   // DLAB off, 8n1
	p.io.Out8(p.base+regFIFOCtl, 0xC7)   // FIFO on, clear, 14-byte threshold
	p.io.Out8(p.base+regModemCtl, 0x0B)  // IRQs enabled at the modem, DTR/RTS set
}

// SendByte busy-waits for the transmit holding register to drain, then writes
// one byte.
func (p *Port) SendByte(b byte) {
	for p.io.In8(p.base+regLineStatus)&lineStatusTxEmpty == 0 {
	}
	p.io.Out8(p.base+regData, b)
}

// Write sends p byte by byte. It never fails; the UART has no error path on
// transmit.
func (p *Port) Write(data []byte) (int, error) {
	for _, b := range data {
		p.SendByte(b)
	}
	return len(data), nil
}

var _ io.Writer = (*Port)(nil)
