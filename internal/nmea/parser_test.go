package nmea

import (
	"testing"
)

// sliceSource replays canned lines, one per ReadLine call.
type sliceSource struct {
	lines []string
}

func (s *sliceSource) Available() int {
	if len(s.lines) == 0 {
		return 0
	}
	return len(s.lines[0])
}

func (s *sliceSource) ReadLine() (string, bool) {
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, true
}

func feed(t *testing.T, p *Parser, lines ...string) {
	t.Helper()
	p.src = &sliceSource{lines: lines}
	for range lines {
		if _, ok := p.Read(); !ok {
			t.Fatalf("Read returned ok=false with lines pending")
		}
	}
}

func TestParseRMC(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r")

	r := p.Data.RMC
	if r.UTCTime != "123519" {
		t.Errorf("UTCTime = %q, want 123519", r.UTCTime)
	}
	if r.Status != "A" {
		t.Errorf("Status = %q, want A", r.Status)
	}
	if r.Latitude != 4807.038 || r.LatitudeDir != "N" {
		t.Errorf("latitude = %v %q, want 4807.038 N", r.Latitude, r.LatitudeDir)
	}
	if r.Longitude != 1131.0 || r.LongitudeDir != "E" {
		t.Errorf("longitude = %v %q, want 1131 E", r.Longitude, r.LongitudeDir)
	}
	if r.Speed != 22.4 {
		t.Errorf("Speed = %v, want 22.4", r.Speed)
	}
	if r.Track != 84.4 {
		t.Errorf("Track = %v, want 84.4", r.Track)
	}
	if r.Date != "230394" {
		t.Errorf("Date = %q, want 230394", r.Date)
	}
	if r.Variation != 3.1 {
		t.Errorf("Variation = %v, want 3.1", r.Variation)
	}
	if r.LastTime == 0 {
		t.Errorf("LastTime = 0, want a fresh stamp")
	}
}

func TestParseGGA(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")

	g := p.Data.GGA
	if g.UTCTime != "123519" || g.FixStatus != 1 || g.Satellites != 8 {
		t.Errorf("GGA = %+v, want time 123519 fix 1 sats 8", g)
	}
	if g.HDOP != 0.9 || g.Altitude != 545.4 || g.AltitudeUnit != "M" {
		t.Errorf("GGA = %+v, want hdop 0.9 alt 545.4 M", g)
	}
	if g.GeoidSep != 46.9 || g.GeoidUnit != "M" {
		t.Errorf("GGA = %+v, want geoid 46.9 M", g)
	}
	if g.LastTime == 0 {
		t.Errorf("LastTime = 0, want a fresh stamp")
	}
}

func TestParseGLL(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPGLL,4916.45,N,12311.12,W,225444,A*1D")

	g := p.Data.GLL
	if g.Latitude != 4916.45 || g.LatitudeDir != "N" {
		t.Errorf("GLL latitude = %v %q", g.Latitude, g.LatitudeDir)
	}
	if g.Longitude != 12311.12 || g.LongitudeDir != "W" {
		t.Errorf("GLL longitude = %v %q", g.Longitude, g.LongitudeDir)
	}
	if g.UTCTime != "225444" || g.Status != "A" {
		t.Errorf("GLL time/status = %q %q", g.UTCTime, g.Status)
	}
}

func TestParseVTG(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*48")

	v := p.Data.VTG
	if v.Track1 != 54.7 || v.Track1ID != "T" || v.Track2 != 34.4 || v.Track2ID != "M" {
		t.Errorf("VTG tracks = %+v", v)
	}
	if v.Speed1 != 5.5 || v.Speed1ID != "N" || v.Speed2 != 10.2 || v.Speed2ID != "K" {
		t.Errorf("VTG speeds = %+v", v)
	}
}

func TestParseGSV(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74")

	g := p.Data.GSV
	if g.Total != 3 || g.Count != 1 || g.TotalSV != 11 {
		t.Errorf("GSV header = %+v, want 3/1/11", g)
	}
	if g.PRN != 3 || g.Elevation != 3 || g.Azimuth != 111 || g.SNR != 0 {
		t.Errorf("GSV first satellite = %+v", g)
	}
}

func TestTalkerPrefixIgnored(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GNRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*54")

	if p.Data.RMC.LastTime == 0 {
		t.Fatalf("a GN-talker RMC must dispatch like a GP one")
	}
}

func TestDisabledTypeUntouched(t *testing.T) {
	p := NewParser(&sliceSource{})
	p.Enabled.RMC = false
	feed(t, p, "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A")

	if p.Data.RMC.LastTime != 0 || p.Data.RMC.UTCTime != "" {
		t.Fatalf("disabled RMC was decoded: %+v", p.Data.RMC)
	}
}

func TestGSANeverDispatched(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39")

	if p.Data.GSA.LastTime != 0 {
		t.Fatalf("GSA must not decode: %+v", p.Data.GSA)
	}
}

func TestLenientNumericFields(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$GPRMC,,V,,,,,bogus,,,")

	r := p.Data.RMC
	if r.Speed != 0 || r.Track != 0 || r.Latitude != 0 {
		t.Errorf("unparsable numerics must decode to zero: %+v", r)
	}
	if r.Status != "V" {
		t.Errorf("Status = %q, want V", r.Status)
	}
	if r.LastTime == 0 {
		t.Errorf("a lenient decode still stamps the record")
	}
}

func TestShortOrForeignLinesIgnored(t *testing.T) {
	p := NewParser(&sliceSource{})
	feed(t, p, "$RMC,1,2", "garbage", "", "$PMTK001,314,3*36")

	if p.Data != (Records{}) {
		t.Fatalf("non-sentence lines must not touch records: %+v", p.Data)
	}
}

func TestReadReturnsRawLine(t *testing.T) {
	p := NewParser(&sliceSource{lines: []string{"$GPGLL,,,,,,V*00\r"}})

	line, ok := p.Read()
	if !ok || line != "$GPGLL,,,,,,V*00\r" {
		t.Fatalf("Read = %q, %v; want the raw line back", line, ok)
	}
	if _, ok := p.Read(); ok {
		t.Fatalf("Read on a dry source must return ok=false")
	}
}
