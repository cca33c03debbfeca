package uart

import (
	"errors"
	"fmt"
	"sync"

	"picogps/internal/pio"
)

var (
	// ErrNoSpace means no contiguous free instruction-memory range fits
	// the program. The usage mask is left exactly as it was.
	ErrNoSpace = errors.New("uart: no free instruction-memory range")

	// ErrNoLane means every execution lane is already claimed.
	ErrNoLane = errors.New("uart: no free lane")
)

// Program is a relocatable lane program. Jump targets are written
// relative to slot zero and rewritten to absolute addresses at load
// time; the first instruction is a "set x, n" whose immediate carries
// the frame-bit parameter and is patched per placement.
type Program []uint16

// Binding records a successful placement: the claimed lane and the
// absolute offset the program was loaded at. Bindings are never
// released; channels live for the process lifetime.
type Binding struct {
	Lane   int
	Offset int
}

// Allocator owns the instruction-memory usage mask for one co-processor
// instance, plus the per-lane receive-channel table the shared interrupt
// handler walks. All engines on the instance must place through the same
// Allocator.
type Allocator struct {
	dev pio.Device

	mu         sync.Mutex
	used       uint32
	rxChannels [pio.NumLanes]*Rx
	handlerSet bool
}

func NewAllocator(dev pio.Device) *Allocator {
	return &Allocator{dev: dev}
}

// Device returns the co-processor instance the allocator places onto.
func (a *Allocator) Device() pio.Device { return a.dev }

// UsedMask returns the current usage mask, one bit per occupied slot.
func (a *Allocator) UsedMask() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Place claims a free lane, then scans start offsets from the top of
// memory downward for the first range the program fits in. The chosen
// image gets its first instruction patched to "set x, frameBits" and its
// jumps relocated before loading.
//
// The lane is claimed before the range and unclaimed again when no range
// exists, so a failed placement leaves no state behind.
func (a *Allocator) Place(p Program, frameBits int) (Binding, error) {
	if len(p) == 0 || len(p) > pio.MemSize {
		return Binding{}, fmt.Errorf("uart: program length %d exceeds %d slots", len(p), pio.MemSize)
	}
	if frameBits < 0 || frameBits > 0x1f {
		return Binding{}, fmt.Errorf("uart: frame parameter %d does not fit the immediate field", frameBits)
	}

	lane, err := a.dev.ClaimLane()
	if err != nil {
		return Binding{}, ErrNoLane
	}

	img := make(Program, len(p))
	copy(img, p)
	img[0] = pio.EncodeSet(pio.DestX, frameBits)

	progMask := uint32(1)<<len(p) - 1

	a.mu.Lock()
	defer a.mu.Unlock()
	for offset := pio.MemSize - len(p); offset >= 0; offset-- {
		if a.used&(progMask<<offset) != 0 {
			continue
		}
		for i, instr := range img {
			if pio.IsJmp(instr) {
				img[i] = instr + uint16(offset)
			}
		}
		a.dev.LoadInstructions(offset, img)
		a.used |= progMask << offset
		return Binding{Lane: lane, Offset: offset}, nil
	}
	a.dev.UnclaimLane(lane)
	return Binding{}, ErrNoSpace
}

// registerRx enters a receive channel into the lane table and installs
// the shared interrupt handler on first use. Registration happens before
// the lane's interrupt source is enabled, so the handler never sees a
// half-built entry.
func (a *Allocator) registerRx(lane int, r *Rx) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rxChannels[lane] = r
	if !a.handlerSet {
		a.dev.SetIRQHandler(a.handleIRQ)
		a.handlerSet = true
	}
}

// handleIRQ is the shared interrupt entry point: locate the lane whose
// receive FIFO holds data and drain it completely. The source is
// level-triggered on "not empty", so leaving words behind would silence
// future interrupts. Interrupt context: no allocation, bounded work, and
// no lock — each lane's table slot is written once, before that lane's
// interrupt is enabled.
func (a *Allocator) handleIRQ() {
	for lane := 0; lane < pio.NumLanes; lane++ {
		r := a.rxChannels[lane]
		if r == nil || a.dev.RxEmpty(lane) {
			continue
		}
		for {
			word, ok := a.dev.RxPull(lane)
			if !ok {
				break
			}
			r.queue.push(r.decode(word))
		}
		return
	}
}
