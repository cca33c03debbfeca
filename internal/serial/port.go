// Package serial is the host-side line source: a tty in raw mode
// carrying the same NMEA stream the software-defined receiver would,
// so the parser stack runs unchanged against a physical receiver.
package serial

import (
	"bufio"
	"io"
)

// Port adapts a byte stream to the parser's polling LineSource
// contract. A goroutine scans the stream into complete lines; ReadLine
// and Available never block.
type Port struct {
	rw    io.ReadWriteCloser
	lines chan string
}

// NewPort wraps an open stream. The scanner goroutine exits when the
// stream does.
func NewPort(rw io.ReadWriteCloser) *Port {
	p := &Port{rw: rw, lines: make(chan string, 32)}
	go p.scan()
	return p
}

func (p *Port) scan() {
	sc := bufio.NewScanner(p.rw)
	// NMEA sentences are under 82 bytes; allow headroom for chatter.
	sc.Buffer(make([]byte, 0, 256), 4096)
	for sc.Scan() {
		select {
		case p.lines <- sc.Text():
		default:
			// Consumer is not keeping up; drop the oldest by popping one.
			select {
			case <-p.lines:
			default:
			}
			select {
			case p.lines <- sc.Text():
			default:
			}
		}
	}
	close(p.lines)
}

// Available counts buffered complete lines (non-zero means ReadLine
// will succeed).
func (p *Port) Available() int {
	return len(p.lines)
}

// ReadLine pops one buffered line; ok is false when none is ready or
// the stream has ended.
func (p *Port) ReadLine() (string, bool) {
	select {
	case l, ok := <-p.lines:
		if !ok {
			return "", false
		}
		return l, true
	default:
		return "", false
	}
}

// Println writes a command line to the receiver, best effort.
func (p *Port) Println(s string) {
	_, _ = io.WriteString(p.rw, s+"\r\n")
}

func (p *Port) Close() error {
	return p.rw.Close()
}
