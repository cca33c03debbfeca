// Package pio defines the surface of the programmable bit-I/O co-processor
// the UART engines run on: independent execution lanes sharing a small
// instruction memory, each with its own FIFOs, pin bindings and interrupt
// source.
//
// The package does not implement the engine. Hardware backends or the
// in-process simulator (internal/piosim) satisfy Device.
package pio

const (
	// NumLanes is the number of independent execution units per instance.
	NumLanes = 4

	// MemSize is the shared instruction memory size, in instruction slots.
	MemSize = 32
)

// LaneConfig carries the per-lane execution parameters set at activation
// time, before the lane is started.
type LaneConfig struct {
	// WrapTarget and Wrap are absolute instruction addresses: after the
	// instruction at Wrap executes, control continues at WrapTarget.
	WrapTarget int
	Wrap       int

	// OutPin is the pin driven by "out pins" instructions, or -1.
	OutPin int

	// SidePin is the pin driven by side-set data, or -1.
	SidePin int

	// SideSetBits counts side-set bits per instruction, including the
	// enable bit when SideSetOptional is set. Zero disables side-set.
	SideSetBits     int
	SideSetOptional bool

	// InPin is the pin sampled by "in pins" and pin waits, or -1.
	InPin int

	// JmpPin is the pin tested by pin-conditional jumps, or -1.
	JmpPin int

	// OutShiftRight selects LSB-first output shifts; InShiftRight selects
	// shifting received bits in from the top of the register.
	OutShiftRight bool
	InShiftRight  bool

	// JoinTx doubles the transmit FIFO by stealing the receive FIFO's
	// storage. A joined lane cannot receive.
	JoinTx bool
}

// Device is the co-processor surface the driver stack consumes.
//
// Lane claiming, instruction loading and lane configuration are expected
// to happen before the lane is started; none of those paths need to be
// safe against a concurrently running lane. TxPush may block and must be
// safe to call while the engine runs.
type Device interface {
	// ClockHz is the system clock the lanes are stepped at. Clock
	// divisors for bit timing are derived from it.
	ClockHz() uint32

	// ClaimLane reserves a free lane. UnclaimLane returns one that was
	// claimed but never started.
	ClaimLane() (int, error)
	UnclaimLane(lane int)

	// LoadInstructions writes a program image at the given offset in the
	// shared instruction memory. The caller owns range accounting.
	LoadInstructions(offset int, instrs []uint16)

	// ConfigurePin sets a pin's direction and pull-up.
	ConfigurePin(pin int, output, pullUp bool)

	// InitLane resets a lane's registers and installs its configuration,
	// with the program counter at offset.
	InitLane(lane, offset int, cfg LaneConfig)

	// ClearFIFOs discards anything buffered in the lane's FIFOs.
	ClearFIFOs(lane int)

	// Exec runs a single instruction on a stopped lane, outside the
	// loaded program.
	Exec(lane int, instr uint16)

	// TxPush appends a word to the lane's transmit FIFO, blocking while
	// the FIFO is full.
	TxPush(lane int, word uint32)

	// RxEmpty reports whether the lane's receive FIFO holds no words.
	// RxPull pops one word without blocking; ok is false when empty.
	RxEmpty(lane int) bool
	RxPull(lane int) (word uint32, ok bool)

	// EnableRxIRQ gates the lane's "receive FIFO not empty" interrupt
	// source. SetIRQHandler installs the instance-wide handler invoked
	// whenever any enabled source is active.
	EnableRxIRQ(lane int, enabled bool)
	SetIRQHandler(fn func())

	// SetEnabled starts or stops a lane.
	SetEnabled(lane int, enabled bool)
}
