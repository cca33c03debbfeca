package piosim

import "picogps/internal/pio"

// lane executes one instruction per clock cycle against the shared
// instruction memory. Only the instruction subset the UART programs use
// is modeled; unrecognized operands fall through as no-ops.
type lane struct {
	enabled bool
	cfg     pio.LaneConfig
	pc      int

	x, y, osr, isr     uint32
	osrCount, isrCount int

	tx chan uint32
	rx chan uint32

	delay int
}

func (l *lane) step(s *Sim) {
	if l.delay > 0 {
		l.delay--
		return
	}
	instr := s.mem[l.pc]
	l.applySideSet(instr, s)
	nextPC, stalled := l.executeBody(instr, s)
	if stalled {
		return
	}
	if nextPC == l.pc+1 && l.pc == l.cfg.Wrap {
		nextPC = l.cfg.WrapTarget
	}
	l.pc = nextPC % pio.MemSize
	l.delay = l.delayCycles(instr)
}

// execute runs one out-of-program instruction (the Exec path).
func (l *lane) execute(instr uint16, s *Sim) {
	l.applySideSet(instr, s)
	l.executeBody(instr, s)
}

// Side-set data occupies the top SideSetBits of the 5-bit delay field and
// asserts on every cycle the instruction issues, stall cycles included.
// That is what keeps the transmit line idle-high while a blocking pull
// waits for the next frame.
func (l *lane) applySideSet(instr uint16, s *Sim) {
	bits := l.cfg.SideSetBits
	if bits == 0 || l.cfg.SidePin < 0 {
		return
	}
	field := int(instr>>8) & 0x1f
	v := field >> (5 - bits)
	if l.cfg.SideSetOptional {
		if field&0x10 == 0 {
			return
		}
		v &= 1<<(bits-1) - 1
	}
	s.pins.set(l.cfg.SidePin, v&1 == 1)
}

func (l *lane) delayCycles(instr uint16) int {
	field := int(instr>>8) & 0x1f
	return field & (1<<(5-l.cfg.SideSetBits) - 1)
}

// executeBody applies the instruction and returns the next program
// counter, or stalled=true when the instruction must retry next cycle.
func (l *lane) executeBody(instr uint16, s *Sim) (nextPC int, stalled bool) {
	nextPC = l.pc + 1
	arg := int(instr>>5) & 0x7
	imm := int(instr) & 0x1f

	switch pio.Opcode(instr) {
	case pio.OpJmp:
		take := false
		switch arg {
		case 0:
			take = true
		case 1:
			take = l.x == 0
		case 2:
			take = l.x != 0
			l.x--
		case 3:
			take = l.y == 0
		case 4:
			take = l.y != 0
			l.y--
		case 5:
			take = l.x != l.y
		case 6:
			take = l.cfg.JmpPin >= 0 && s.pins.level(l.cfg.JmpPin)
		case 7:
			take = l.osrCount < 32
		}
		if take {
			nextPC = imm
		}

	case pio.OpWait:
		pol := instr>>7&1 == 1
		pin := imm
		if int(instr>>5)&0x3 == 1 {
			pin = l.cfg.InPin + imm
		}
		if s.pins.level(pin) != pol {
			return l.pc, true
		}

	case pio.OpIn:
		count := imm
		if count == 0 {
			count = 32
		}
		var v uint32
		switch arg {
		case 0:
			if l.cfg.InPin >= 0 && s.pins.level(l.cfg.InPin) {
				v = 1
			}
		case 1:
			v = l.x
		case 2:
			v = l.y
		}
		v &= lowMask(count)
		if l.cfg.InShiftRight {
			l.isr = l.isr>>count | v<<(32-count)
		} else {
			l.isr = l.isr<<count | v
		}
		l.isrCount = min32(l.isrCount + count)

	case pio.OpOut:
		count := imm
		if count == 0 {
			count = 32
		}
		var v uint32
		if l.cfg.OutShiftRight {
			v = l.osr & lowMask(count)
			l.osr >>= count
		} else {
			v = l.osr >> (32 - count)
			l.osr <<= count
		}
		l.osrCount = min32(l.osrCount + count)
		switch arg {
		case 0:
			if l.cfg.OutPin >= 0 {
				s.pins.set(l.cfg.OutPin, v&1 == 1)
			}
		case 1:
			l.x = v
		case 2:
			l.y = v
		}

	case pio.OpPushPull:
		block := instr&(1<<5) != 0
		if instr&(1<<7) != 0 { // pull
			select {
			case w := <-l.tx:
				l.osr = w
				l.osrCount = 0
			default:
				if block {
					return l.pc, true
				}
				l.osr = l.x
				l.osrCount = 0
			}
		} else { // push
			if l.rx == nil {
				break
			}
			select {
			case l.rx <- l.isr:
			default:
				if block {
					return l.pc, true
				}
			}
			l.isr = 0
			l.isrCount = 0
		}

	case pio.OpMov:
		var v uint32
		switch int(instr) & 0x7 {
		case 0:
			if l.cfg.InPin >= 0 && s.pins.level(l.cfg.InPin) {
				v = 1
			}
		case 1:
			v = l.x
		case 2:
			v = l.y
		case 6:
			v = l.isr
		case 7:
			v = l.osr
		}
		if int(instr>>3)&0x3 == 1 {
			v = ^v
		}
		switch arg {
		case 0:
			if l.cfg.OutPin >= 0 {
				s.pins.set(l.cfg.OutPin, v&1 == 1)
			}
		case 1:
			l.x = v
		case 2:
			l.y = v
		case 6:
			l.isr = v
			l.isrCount = 0
		case 7:
			l.osr = v
			l.osrCount = 0
		}

	case pio.OpSet:
		switch arg {
		case 1:
			l.x = uint32(imm)
		case 2:
			l.y = uint32(imm)
		}
	}
	return nextPC, false
}

func lowMask(count int) uint32 {
	if count >= 32 {
		return ^uint32(0)
	}
	return 1<<count - 1
}

func min32(n int) int {
	if n > 32 {
		return 32
	}
	return n
}
