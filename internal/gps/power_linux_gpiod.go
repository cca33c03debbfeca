//go:build linux

package gps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// OpenPowerPin drives the given BCM GPIO as the receiver enable line
// through the Linux GPIO character device. Line names on a Pi are
// "GPIO18" and so on; likely chips are tried first, then everything
// under /dev.
func OpenPowerPin(pin int) (PowerPin, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("gps: invalid enable pin %d", pin)
	}

	lineName := fmt.Sprintf("GPIO%d", pin)

	chipCandidates := []string{"/dev/gpiochip0", "/dev/gpiochip4"}
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(lineName)
		if err != nil {
			_ = chip.Close()
			continue
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("picogps-enable"))
		if err != nil {
			_ = chip.Close()
			continue
		}
		return &gpiodPin{chip: chip, line: line}, nil
	}
	return nil, fmt.Errorf("gps: gpio line %q not found (or busy)", lineName)
}

type gpiodPin struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func (p *gpiodPin) Set(on bool) error {
	if p == nil || p.line == nil {
		return fmt.Errorf("gps: enable pin not initialized")
	}
	v := 0
	if on {
		v = 1
	}
	return p.line.SetValue(v)
}

func (p *gpiodPin) Close() error {
	if p == nil || p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	if p.chip != nil {
		_ = p.chip.Close()
		p.chip = nil
	}
	return err
}
