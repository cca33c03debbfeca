// Package gps is the convenience facade over the sentence parser: it
// converts raw ddmm.mmmm coordinates to decimal degrees, derives
// calendar fields from the RMC date, and builds the PMTK command
// strings that reconfigure the receiver (update rate, per-sentence
// output, standby).
package gps

import (
	"strconv"

	"picogps/internal/nmea"
)

// CommandWriter is where receiver commands go: the transmit engine on
// hardware, a serial port on a host, a recorder in tests.
type CommandWriter interface {
	Println(s string)
}

// Intervals selects which sentence types the receiver is asked to
// output, in the PMTK314 field order.
type Intervals struct {
	GLL bool
	RMC bool
	VTG bool
	GGA bool
	GSA bool
	GSV bool
}

// DefaultIntervals is the receiver's usual power-on selection: position
// and course sentences on, satellite detail off.
func DefaultIntervals() Intervals {
	return Intervals{GLL: true, RMC: true, VTG: true, GGA: true}
}

// GPS wraps a parser and a command writer.
type GPS struct {
	parser *nmea.Parser
	out    CommandWriter

	Intervals Intervals

	// StartYear is the century base added to the two-digit RMC year.
	StartYear int

	power PowerPin
}

func New(parser *nmea.Parser, out CommandWriter) *GPS {
	return &GPS{
		parser:    parser,
		out:       out,
		Intervals: DefaultIntervals(),
		StartYear: 2000,
	}
}

// AttachPower hands the facade an enable-line driver; PowerOn and
// PowerOff are no-ops without one.
func (g *GPS) AttachPower(p PowerPin) { g.power = p }

// IsAvailable reports whether receiver bytes are waiting.
func (g *GPS) IsAvailable() bool {
	return g.parser.Available() > 0
}

// Read decodes one sentence; see nmea.Parser.Read.
func (g *GPS) Read() (string, bool) {
	return g.parser.Read()
}

// Write sends a raw command line to the receiver.
func (g *GPS) Write(s string) {
	g.out.Println(s)
}

// SetEnabled replaces the parser's per-sentence decode gates.
func (g *GPS) SetEnabled(en nmea.Enabled) {
	g.parser.Enabled = en
}

// Data exposes the live navigation records. Consumers reset a record's
// LastTime to zero once they have taken its values.
func (g *GPS) Data() *nmea.Records {
	return &g.parser.Data
}

// Latitude returns the RMC latitude in signed decimal degrees, or 0
// when no fix has been decoded.
func (g *GPS) Latitude() float64 {
	r := &g.parser.Data.RMC
	if r.Latitude <= 0 || r.LatitudeDir == "" {
		return 0
	}
	deg := toDecimalDegrees(r.Latitude)
	if r.LatitudeDir == "S" {
		deg = -deg
	}
	return deg
}

// Longitude returns the RMC longitude in signed decimal degrees, or 0
// when no fix has been decoded.
func (g *GPS) Longitude() float64 {
	r := &g.parser.Data.RMC
	if r.Longitude <= 0 || r.LongitudeDir == "" {
		return 0
	}
	deg := toDecimalDegrees(r.Longitude)
	if r.LongitudeDir == "W" {
		deg = -deg
	}
	return deg
}

// Date returns the raw RMC date as a ddmmyy integer, 0 when unset.
func (g *GPS) Date() int {
	d, err := strconv.Atoi(g.parser.Data.RMC.Date)
	if err != nil {
		return 0
	}
	return d
}

func (g *GPS) Year() int {
	return g.Date()%100 + g.StartYear
}

func (g *GPS) Month() int {
	return (g.Date() / 100) % 100
}

func (g *GPS) Day() int {
	return g.Date() / 10000
}

// Speed returns the RMC ground speed in knots.
func (g *GPS) Speed() float64 {
	return g.parser.Data.RMC.Speed
}

// toDecimalDegrees converts a ddmm.mmmm coordinate to decimal degrees:
// integer degrees plus minutes over sixty.
func toDecimalDegrees(ddmm float64) float64 {
	degrees := float64(int(ddmm / 100))
	minutes := ddmm - degrees*100
	return degrees + minutes/60
}
