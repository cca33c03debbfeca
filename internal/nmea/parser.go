// Package nmea decodes NMEA-0183 sentences from a line-oriented byte
// source into typed navigation records with freshness stamps.
//
// The parser is deliberately lenient: sentences are not checksum-
// verified, and numeric fields that fail to parse decode to zero rather
// than surfacing an error. Malformed input can only ever produce stale
// or zeroed fields, never a failure.
package nmea

import (
	"strconv"
	"strings"
	"time"
)

// LineSource is where sentences come from: the receive engine, a host
// serial port, or a test fake. ReadLine returns ok=false when no byte
// was available; a line without its terminator yet may come back
// partial, exactly as the underlying reader saw it.
type LineSource interface {
	Available() int
	ReadLine() (string, bool)
}

// Enabled gates decoding per sentence type. A disabled type is not
// tokenized at all: its record keeps previous fields and stamp.
type Enabled struct {
	GGA bool
	GLL bool
	RMC bool
	GSA bool
	VTG bool
	GSV bool
}

// EnableAll is the reset default: every type decoded.
func EnableAll() Enabled {
	return Enabled{GGA: true, GLL: true, RMC: true, GSA: true, VTG: true, GSV: true}
}

// Parser tokenizes sentences from a LineSource and updates Data in
// place. No state persists across sentences.
type Parser struct {
	src LineSource

	Enabled Enabled
	Data    Records

	epoch time.Time
}

func NewParser(src LineSource) *Parser {
	return &Parser{src: src, Enabled: EnableAll(), epoch: time.Now()}
}

// Available reports bytes waiting at the source.
func (p *Parser) Available() int {
	return p.src.Available()
}

// Read pulls one line from the source, decodes it into the matching
// record if its type is enabled, and returns the raw line. ok is false
// when the source had nothing.
func (p *Parser) Read() (string, bool) {
	line, ok := p.src.ReadLine()
	if !ok {
		return "", false
	}
	p.parseSentence(strings.TrimSuffix(line, "\r"))
	return line, true
}

// millis is the freshness clock: monotonic milliseconds since the
// parser was built, floored to 1 so a fresh stamp is never mistaken for
// the consumed marker.
func (p *Parser) millis() int64 {
	ms := time.Since(p.epoch).Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return ms
}

// parseSentence splits the sentence on commas and dispatches on the
// type key. The key is talker-prefixed ($GPRMC, $GNRMC, ...); dispatch
// goes by the three-letter type. GSA has a record and an enable flag
// but no branch here: its field order was never settled, so decoding
// would be guesswork.
func (p *Parser) parseSentence(line string) {
	fields := strings.Split(line, ",")
	key := fields[0]
	if len(key) != 6 || key[0] != '$' {
		return
	}
	body := fields[1:]
	switch key[3:] {
	case "GGA":
		if p.Enabled.GGA {
			p.parseGGA(body)
		}
	case "GLL":
		if p.Enabled.GLL {
			p.parseGLL(body)
		}
	case "RMC":
		if p.Enabled.RMC {
			p.parseRMC(body)
		}
	case "VTG":
		if p.Enabled.VTG {
			p.parseVTG(body)
		}
	case "GSV":
		if p.Enabled.GSV {
			p.parseGSV(body)
		}
	}
}

func (p *Parser) parseGGA(f []string) {
	g := &p.Data.GGA
	g.UTCTime = field(f, 0)
	g.Latitude = toFloat(field(f, 1))
	g.LatitudeDir = field(f, 2)
	g.Longitude = toFloat(field(f, 3))
	g.LongitudeDir = field(f, 4)
	g.FixStatus = toInt(field(f, 5))
	g.Satellites = toInt(field(f, 6))
	g.HDOP = toFloat(field(f, 7))
	g.Altitude = toFloat(field(f, 8))
	g.AltitudeUnit = field(f, 9)
	g.GeoidSep = toFloat(field(f, 10))
	g.GeoidUnit = field(f, 11)
	g.LastTime = p.millis()
}

func (p *Parser) parseGLL(f []string) {
	g := &p.Data.GLL
	g.Latitude = toFloat(field(f, 0))
	g.LatitudeDir = field(f, 1)
	g.Longitude = toFloat(field(f, 2))
	g.LongitudeDir = field(f, 3)
	g.UTCTime = field(f, 4)
	g.Status = field(f, 5)
	g.LastTime = p.millis()
}

func (p *Parser) parseRMC(f []string) {
	r := &p.Data.RMC
	r.UTCTime = field(f, 0)
	r.Status = field(f, 1)
	r.Latitude = toFloat(field(f, 2))
	r.LatitudeDir = field(f, 3)
	r.Longitude = toFloat(field(f, 4))
	r.LongitudeDir = field(f, 5)
	r.Speed = toFloat(field(f, 6))
	r.Track = toFloat(field(f, 7))
	r.Date = field(f, 8)
	r.Variation = toFloat(field(f, 9))
	r.LastTime = p.millis()
}

func (p *Parser) parseVTG(f []string) {
	v := &p.Data.VTG
	v.Track1 = toFloat(field(f, 0))
	v.Track1ID = field(f, 1)
	v.Track2 = toFloat(field(f, 2))
	v.Track2ID = field(f, 3)
	v.Speed1 = toFloat(field(f, 4))
	v.Speed1ID = field(f, 5)
	v.Speed2 = toFloat(field(f, 6))
	v.Speed2ID = field(f, 7)
	v.LastTime = p.millis()
}

func (p *Parser) parseGSV(f []string) {
	g := &p.Data.GSV
	g.Total = toInt(field(f, 0))
	g.Count = toInt(field(f, 1))
	g.TotalSV = toInt(field(f, 2))
	g.PRN = toInt(field(f, 3))
	g.Elevation = toInt(field(f, 4))
	g.Azimuth = toInt(field(f, 5))
	g.SNR = toInt(field(f, 6))
	g.LastTime = p.millis()
}

// field is the bounds-checked positional extractor: absent tokens read
// as empty strings.
func field(f []string, i int) string {
	if i < len(f) {
		return f[i]
	}
	return ""
}

func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func toInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
