package uart

import "picogps/internal/pio"

// rxProgram samples the input pin at twice the bit rate and pushes one
// oversampled frame per FIFO word. The wait pins the start edge, then
// the OSR-timed delay loop paces a half-bit between samples.
//
//	0: set    x, <frame bits>       (patched at placement)
//	1: wait   0 pin, 0
//	2: mov    y, osr
//	3: jmp    y--, 3
//	4: in     pins, 1
//	5: jmp    x--, 2
//	6: push   block
var rxProgram = Program{0xe032, 0x2020, 0xa047, 0x0083, 0x4001, 0x0042, 0x8020}

const (
	rxWrapTarget = 0
	rxWrap       = 6

	// rxDivisorSlack corrects the half-bit divisor for the instructions
	// of the sampling loop itself.
	rxDivisorSlack = 7
)

// Rx is the receive engine: an oversampling lane whose FIFO is decoded
// in the shared interrupt handler into a lock-free byte queue, drained
// by the polling consumer through ReadByte and the line readers.
type Rx struct {
	cfg   Config
	alloc *Allocator
	pin   int

	lane      int
	frameBits int
	queue     *byteQueue
	line      []byte
}

// NewRx builds a receiver on the given input pin. Nothing touches the
// co-processor until Activate.
func NewRx(alloc *Allocator, cfg Config, pin int) *Rx {
	cfg.normalize()
	return &Rx{cfg: cfg, alloc: alloc, pin: pin, lane: -1}
}

// Activate places the oversampling program, configures the pin as a
// pulled-up input, delivers the half-bit divisor, registers the channel
// with the shared interrupt handler and starts the lane.
func (r *Rx) Activate() error {
	r.frameBits = 2*(r.cfg.Bits+r.cfg.Stop+1) - 1
	b, err := r.alloc.Place(rxProgram, r.frameBits)
	if err != nil {
		return err
	}

	dev := r.alloc.Device()
	dev.ConfigurePin(r.pin, false, true)
	dev.InitLane(b.Lane, b.Offset, pio.LaneConfig{
		WrapTarget:   b.Offset + rxWrapTarget,
		Wrap:         b.Offset + rxWrap,
		OutPin:       -1,
		SidePin:      -1,
		InPin:        r.pin,
		JmpPin:       r.pin,
		InShiftRight: true,
	})
	dev.ClearFIFOs(b.Lane)

	dev.TxPush(b.Lane, dev.ClockHz()/(r.cfg.Baud*2)-rxDivisorSlack)
	dev.Exec(b.Lane, pio.EncodePull(false, false))

	r.queue = newByteQueue(r.cfg.FIFOSize)
	r.lane = b.Lane

	// Register before enabling the interrupt so the handler never finds
	// a half-built channel.
	r.alloc.registerRx(b.Lane, r)
	dev.EnableRxIRQ(b.Lane, true)
	dev.SetEnabled(b.Lane, true)
	return nil
}

// decode turns one oversampled FIFO word into a byte: shift off the
// leading pad, keep every other sample up to the data width, mask to the
// configured bit count.
func (r *Rx) decode(word uint32) byte {
	word >>= 33 - r.frameBits
	var val uint32
	for b := 0; b < r.cfg.Bits+1; b++ {
		if word&(1<<(b*2)) != 0 {
			val |= 1 << b
		}
	}
	return byte(val & (1<<r.cfg.Bits - 1))
}

// Available reports queued bytes. Safe against the interrupt handler
// advancing the writer concurrently; the reader only moves on this
// goroutine.
func (r *Rx) Available() int {
	return r.queue.available()
}

// ReadByte pops one byte; ok is false when nothing is queued.
func (r *Rx) ReadByte() (byte, bool) {
	return r.queue.pop()
}

// ReadStringUntil accumulates bytes until the terminator (consumed, not
// included) or the queue runs dry, whichever comes first. ok is false
// only when no byte at all was available. The accumulation buffer is
// owned by the channel, so receivers do not share line state.
func (r *Rx) ReadStringUntil(term byte) (string, bool) {
	r.line = r.line[:0]
	read := false
	for {
		c, ok := r.queue.pop()
		if !ok {
			break
		}
		read = true
		if c == term {
			break
		}
		r.line = append(r.line, c)
	}
	return string(r.line), read
}

// ReadLine reads up to a newline terminator.
func (r *Rx) ReadLine() (string, bool) {
	return r.ReadStringUntil('\n')
}
