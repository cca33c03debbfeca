package uart

import "picogps/internal/pio"

// txProgram frames one FIFO word per byte: the blocking pull holds the
// line idle-high through side-set between frames, then each bit shifts
// out LSB first with an ISR-timed delay loop setting the bit period.
//
//	0: set    x, <frame bits>       (patched at placement)
//	1: pull   block         side 1
//	2: out    pins, 1
//	3: mov    y, isr
//	4: jmp    y--, 4
//	5: jmp    x--, 2
var txProgram = Program{0xe029, 0x98a0, 0x6001, 0xa046, 0x0084, 0x0042}

const (
	txWrapTarget = 0
	txWrap       = 5

	// txDivisorSlack corrects the bit-period divisor for the cycles the
	// per-bit loop spends outside the delay.
	txDivisorSlack = 2
)

// Tx is the transmit engine: one lane, one output pin, one clock
// divisor. There is no software buffer; backpressure is the hardware
// FIFO, and Write blocks while it is full.
type Tx struct {
	cfg   Config
	alloc *Allocator
	pin   int

	lane   int
	active bool
}

// NewTx builds a transmitter on the given output pin. Nothing touches
// the co-processor until Activate.
func NewTx(alloc *Allocator, cfg Config, pin int) *Tx {
	cfg.normalize()
	return &Tx{cfg: cfg, alloc: alloc, pin: pin, lane: -1}
}

// Activate places the transmit program, configures the pin as a pulled-
// up output, delivers the clock divisor through the lane's shift
// registers and starts the lane.
func (t *Tx) Activate() error {
	frameBits := t.cfg.Bits + t.cfg.Stop + 1
	b, err := t.alloc.Place(txProgram, frameBits)
	if err != nil {
		return err
	}

	dev := t.alloc.Device()
	dev.ConfigurePin(t.pin, true, true)
	dev.InitLane(b.Lane, b.Offset, pio.LaneConfig{
		WrapTarget:      b.Offset + txWrapTarget,
		Wrap:            b.Offset + txWrap,
		OutPin:          t.pin,
		SidePin:         t.pin,
		SideSetBits:     2,
		SideSetOptional: true,
		InPin:           -1,
		JmpPin:          -1,
		OutShiftRight:   true,
		JoinTx:          true,
	})
	dev.ClearFIFOs(b.Lane)

	// Park the bit-period divisor in the ISR without spending program
	// memory: push it through the FIFO, pull it into the OSR, copy.
	dev.TxPush(b.Lane, dev.ClockHz()/t.cfg.Baud-txDivisorSlack)
	dev.Exec(b.Lane, pio.EncodePull(false, false))
	dev.Exec(b.Lane, pio.EncodeMov(pio.DestISR, pio.DestOSR))

	dev.SetEnabled(b.Lane, true)
	t.lane = b.Lane
	t.active = true
	return nil
}

// Write frames one byte and hands it to the hardware FIFO, blocking
// while the FIFO is full. Bit 0 becomes the start bit (low); the vacated
// high bits carry enough idle-high bits for up to two stop bits.
func (t *Tx) Write(c byte) {
	val := uint32(c)
	val |= 7 << t.cfg.Bits
	val <<= 1
	t.alloc.Device().TxPush(t.lane, val)
}

// Print writes the string byte-wise; Println appends CR LF.
func (t *Tx) Print(s string) {
	for i := 0; i < len(s); i++ {
		t.Write(s[i])
	}
}

func (t *Tx) Println(s string) {
	t.Print(s)
	t.Write('\r')
	t.Write('\n')
}
