//go:build !linux

package gps

import "fmt"

// OpenPowerPin is unavailable off Linux; the facade runs fine without a
// power pin attached.
func OpenPowerPin(pin int) (PowerPin, error) {
	return nil, fmt.Errorf("gps: enable pin control requires linux")
}
