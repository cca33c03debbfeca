// Package piosim is an in-process implementation of the pio.Device
// surface: four lanes stepped one instruction per clock cycle against a
// shared 32-slot instruction memory, with per-lane FIFOs, a wired pin
// matrix and interrupt dispatch on the engine goroutine.
//
// It exists so the transmit and receive engines can be exercised end to
// end, bit by bit, without hardware: wire the transmit pin to the receive
// pin and the real programs carry real frames across.
package piosim

import (
	"context"
	"fmt"
	"sync"

	"picogps/internal/pio"
)

// DefaultClockHz is the RP2040 stock system clock, the rate the divisor
// slack constants assume.
const DefaultClockHz = 125_000_000

const (
	fifoDepth       = 4
	fifoDepthJoined = 8
)

// Sim implements pio.Device.
//
// Claiming, loading and lane configuration are expected to finish before
// Run or Step executes the lanes; only TxPush and the FIFO reads used by
// the interrupt handler are safe concurrently with the engine.
type Sim struct {
	clockHz uint32

	mu      sync.Mutex
	claimed [pio.NumLanes]bool

	mem   [pio.MemSize]uint16
	lanes [pio.NumLanes]*lane
	pins  *pinBank

	irqHandler func()
	irqEnabled [pio.NumLanes]bool
}

// New builds a simulator stepped at the given clock. A zero clock selects
// DefaultClockHz.
func New(clockHz uint32) *Sim {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	s := &Sim{clockHz: clockHz, pins: newPinBank()}
	for i := range s.lanes {
		s.lanes[i] = &lane{}
	}
	return s
}

// Wire mirrors every level driven onto from into to, like a jumper
// between two header pins. Used for transmit→receive loopback.
func (s *Sim) Wire(from, to int) {
	s.pins.wire(from, to)
}

// ClockHz implements pio.Device.
func (s *Sim) ClockHz() uint32 { return s.clockHz }

// ClaimLane implements pio.Device.
func (s *Sim) ClaimLane() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.claimed {
		if !s.claimed[i] {
			s.claimed[i] = true
			return i, nil
		}
	}
	return -1, fmt.Errorf("piosim: all %d lanes claimed", pio.NumLanes)
}

// UnclaimLane implements pio.Device.
func (s *Sim) UnclaimLane(lane int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lane >= 0 && lane < pio.NumLanes {
		s.claimed[lane] = false
	}
}

// LoadInstructions implements pio.Device.
func (s *Sim) LoadInstructions(offset int, instrs []uint16) {
	copy(s.mem[offset:], instrs)
}

// ConfigurePin implements pio.Device. Inputs rest at their pull level;
// outputs keep whatever is driven onto them.
func (s *Sim) ConfigurePin(pin int, output, pullUp bool) {
	s.pins.configure(pin, pullUp)
}

// InitLane implements pio.Device.
func (s *Sim) InitLane(ln, offset int, cfg pio.LaneConfig) {
	l := s.lanes[ln]
	*l = lane{cfg: cfg, pc: offset}
	if cfg.JoinTx {
		l.tx = make(chan uint32, fifoDepthJoined)
	} else {
		l.tx = make(chan uint32, fifoDepth)
		l.rx = make(chan uint32, fifoDepth)
	}
}

// ClearFIFOs implements pio.Device.
func (s *Sim) ClearFIFOs(ln int) {
	l := s.lanes[ln]
	drain(l.tx)
	drain(l.rx)
}

func drain(ch chan uint32) {
	if ch == nil {
		return
	}
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// Exec implements pio.Device. The instruction runs once, immediately;
// callers arrange for it not to stall (a blocking pull is issued only
// after its word is already in the FIFO).
func (s *Sim) Exec(ln int, instr uint16) {
	s.lanes[ln].execute(instr, s)
}

// TxPush implements pio.Device.
func (s *Sim) TxPush(ln int, word uint32) {
	s.lanes[ln].tx <- word
}

// RxEmpty implements pio.Device.
func (s *Sim) RxEmpty(ln int) bool {
	l := s.lanes[ln]
	return l.rx == nil || len(l.rx) == 0
}

// RxPull implements pio.Device.
func (s *Sim) RxPull(ln int) (uint32, bool) {
	l := s.lanes[ln]
	if l.rx == nil {
		return 0, false
	}
	select {
	case w := <-l.rx:
		return w, true
	default:
		return 0, false
	}
}

// EnableRxIRQ implements pio.Device.
func (s *Sim) EnableRxIRQ(ln int, enabled bool) {
	s.irqEnabled[ln] = enabled
}

// SetIRQHandler implements pio.Device.
func (s *Sim) SetIRQHandler(fn func()) {
	s.irqHandler = fn
}

// SetEnabled implements pio.Device.
func (s *Sim) SetEnabled(ln int, enabled bool) {
	s.lanes[ln].enabled = enabled
}

// Step advances every enabled lane by n clock cycles, dispatching the
// interrupt handler whenever an enabled receive FIFO holds data.
func (s *Sim) Step(n int) {
	for c := 0; c < n; c++ {
		for _, l := range s.lanes {
			if l.enabled {
				l.step(s)
			}
		}
		s.dispatchIRQ()
	}
}

// Run steps the engine until ctx is cancelled.
func (s *Sim) Run(ctx context.Context) {
	const batch = 4096
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.Step(batch)
	}
}

func (s *Sim) dispatchIRQ() {
	if s.irqHandler == nil {
		return
	}
	for i, l := range s.lanes {
		if s.irqEnabled[i] && l.rx != nil && len(l.rx) > 0 {
			s.irqHandler()
			return
		}
	}
}
