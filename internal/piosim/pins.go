package piosim

// pinBank models the GPIO levels the lanes drive and sample. Undriven
// pins rest at their pull level (high by default, matching the pull-ups
// both UART directions configure). A wire mirrors one pin onto others,
// standing in for a physical jumper.
type pinBank struct {
	levels [32]bool
	wires  map[int][]int
}

func newPinBank() *pinBank {
	b := &pinBank{wires: make(map[int][]int)}
	for i := range b.levels {
		b.levels[i] = true
	}
	return b
}

func (b *pinBank) configure(pin int, pullUp bool) {
	if pin < 0 || pin >= len(b.levels) {
		return
	}
	b.levels[pin] = pullUp
}

func (b *pinBank) wire(from, to int) {
	b.wires[from] = append(b.wires[from], to)
	b.levels[to] = b.levels[from]
}

func (b *pinBank) set(pin int, v bool) {
	if pin < 0 || pin >= len(b.levels) {
		return
	}
	b.levels[pin] = v
	for _, t := range b.wires[pin] {
		b.levels[t] = v
	}
}

func (b *pinBank) level(pin int) bool {
	if pin < 0 || pin >= len(b.levels) {
		return true
	}
	return b.levels[pin]
}
