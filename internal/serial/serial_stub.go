//go:build !linux

package serial

import "fmt"

// Open is only implemented for Linux ttys.
func Open(path string, baud int) (*Port, error) {
	return nil, fmt.Errorf("serial: tty support requires linux (device %s)", path)
}
