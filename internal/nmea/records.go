package nmea

// The six record types, field-for-field after the NMEA-0183 sentence
// bodies a positioning receiver emits. Every record carries LastTime,
// the freshness stamp in monotonic milliseconds: the parser sets it on
// each successful decode and never to zero, the consumer resets it to
// zero to mark the record as read. That handshake is a convention, not
// enforced here.

// GGA is the position-fix sentence: time, position and fix quality.
type GGA struct {
	UTCTime      string  // hhmmss.sss
	Latitude     float64 // ddmm.mmmm
	LatitudeDir  string  // N or S
	Longitude    float64 // dddmm.mmmm
	LongitudeDir string  // E or W
	FixStatus    int     // 0 = no fix, 1 = GPS, 2 = DGPS, ...
	Satellites   int
	HDOP         float64
	Altitude     float64 // orthometric height
	AltitudeUnit string  // M
	GeoidSep     float64
	GeoidUnit    string // M
	LastTime     int64
}

// GLL is the geographic-position sentence.
type GLL struct {
	Latitude     float64
	LatitudeDir  string
	Longitude    float64
	LongitudeDir string
	UTCTime      string
	Status       string // A = valid, V = void
	LastTime     int64
}

// RMC is the recommended-minimum sentence: position, velocity and time.
type RMC struct {
	UTCTime      string
	Status       string // A = active, V = void
	Latitude     float64
	LatitudeDir  string
	Longitude    float64
	LongitudeDir string
	Speed        float64 // knots
	Track        float64 // degrees true
	Date         string  // ddmmyy
	Variation    float64 // magnetic variation, degrees
	LastTime     int64
}

// GSA is the satellite-DOP sentence. The record is declared and gated
// like the others but the dispatcher has no branch for it; see the
// parser notes.
type GSA struct {
	Mode1    string // M = manual, A = automatic
	Mode2    int    // 1 = no fix, 2 = 2D, 3 = 3D
	PRN      int
	PDOP     int
	HDOP     int
	VDOP     int
	LastTime int64
}

// VTG is the course and speed-over-ground sentence.
type VTG struct {
	Track1   float64 // degrees true
	Track1ID string  // T
	Track2   float64 // degrees magnetic
	Track2ID string  // M
	Speed1   float64 // knots
	Speed1ID string  // N
	Speed2   float64 // km/h
	Speed2ID string  // K
	LastTime int64
}

// GSV is the satellites-in-view sentence.
type GSV struct {
	Total     int // messages in this cycle
	Count     int // message number
	TotalSV   int // satellites visible
	PRN       int
	Elevation int // degrees, 90 max
	Azimuth   int // degrees from true north
	SNR       int // dB, 0 when not tracking
	LastTime  int64
}

// Records aggregates the per-sentence state the parser mutates in place.
type Records struct {
	GGA GGA
	GLL GLL
	RMC RMC
	GSA GSA
	VTG VTG
	GSV GSV
}
