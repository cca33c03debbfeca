package gps

import "fmt"

// Receiver command strings follow the PMTK protocol: an ASCII payload
// wrapped as $<payload>*<two hex digits of the XOR checksum>.

const (
	// standbyCommand enters low-power standby.
	standbyCommand = "$PMTK161,0*28"

	// wakeupCommand is the same packet with a checksum the receiver
	// rejects: any line traffic leaves standby, the content is ignored.
	wakeupCommand = "$PMTK161,0*29"
)

// Command wraps a payload with the leading dollar and XOR checksum.
func Command(payload string) string {
	var ck byte
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X", payload, ck)
}

// UpdateIntervals pushes the configured per-sentence output selection:
// first an all-off packet, then the configured one.
func (g *GPS) UpdateIntervals() {
	g.Write(Command(intervalsPayload(Intervals{})))
	g.Write(Command(intervalsPayload(g.Intervals)))
}

// SetFrequency asks the receiver for a position update every 1000/hz
// milliseconds.
func (g *GPS) SetFrequency(hz float64) {
	interval := int(1000 / hz)
	g.Write(Command(fmt.Sprintf("PMTK220,%d", interval)))
}

// SetDelay is SetFrequency expressed as a fix delay in seconds.
func (g *GPS) SetDelay(seconds int) {
	g.SetFrequency(1.0 / float64(seconds))
}

// Standby puts the receiver into low-power standby; Wakeup brings it
// back. When a power pin is attached it is driven as well.
func (g *GPS) Standby() {
	g.Write(standbyCommand)
	if g.power != nil {
		_ = g.power.Set(false)
	}
}

func (g *GPS) Wakeup() {
	if g.power != nil {
		_ = g.power.Set(true)
	}
	g.Write(wakeupCommand)
}

// PowerOn and PowerOff drive the attached enable line directly.
func (g *GPS) PowerOn() error {
	if g.power == nil {
		return nil
	}
	return g.power.Set(true)
}

func (g *GPS) PowerOff() error {
	if g.power == nil {
		return nil
	}
	return g.power.Set(false)
}

// intervalsPayload renders the PMTK314 NMEA-output packet: the six
// supported sentence slots in protocol order, then the thirteen
// reserved slots.
func intervalsPayload(iv Intervals) string {
	return fmt.Sprintf("PMTK314,%d,%d,%d,%d,%d,%d,0,0,0,0,0,0,0,0,0,0,0,0,0",
		flag(iv.GLL), flag(iv.RMC), flag(iv.VTG),
		flag(iv.GGA), flag(iv.GSA), flag(iv.GSV))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
