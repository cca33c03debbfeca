// Package uart drives software-defined serial transceivers on a
// programmable bit-I/O co-processor: an instruction-space allocator for
// the shared program memory, a transmit engine that frames bytes onto an
// output pin, and a receive engine that decodes an oversampled input pin
// inside the interrupt handler and queues bytes for a polling consumer.
package uart

// Config is the shared frame shape for both directions on one
// co-processor instance.
type Config struct {
	// Baud is the line rate in bits per second.
	Baud uint32

	// Bits is the data-bit count per frame, LSB first.
	Bits int

	// Stop is the stop-bit count (1 or 2).
	Stop int

	// FIFOSize is the receive byte-queue capacity; one slot stays
	// unused to tell full from empty.
	FIFOSize int
}

// DefaultConfig is 9600 8N1 with a 128-byte receive queue, what GNSS
// receivers ship with.
func DefaultConfig() Config {
	return Config{Baud: 9600, Bits: 8, Stop: 1, FIFOSize: 128}
}

func (c *Config) normalize() {
	if c.Baud == 0 {
		c.Baud = 9600
	}
	if c.Bits == 0 {
		c.Bits = 8
	}
	if c.Stop == 0 {
		c.Stop = 1
	}
	if c.FIFOSize == 0 {
		c.FIFOSize = 128
	}
}
