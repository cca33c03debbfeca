package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	UART UARTConfig `yaml:"uart"`
	GPS  GPSConfig  `yaml:"gps"`
}

type UARTConfig struct {
	Baud     uint32 `yaml:"baud"`
	Bits     int    `yaml:"bits"`
	Stop     int    `yaml:"stop"`
	FIFOSize int    `yaml:"fifo_size"`
	RxPin    int    `yaml:"rx_pin"`
	TxPin    int    `yaml:"tx_pin"`

	// ClockHz is the simulated system clock; ignored for gps.source
	// "serial".
	ClockHz uint32 `yaml:"clock_hz"`
}

type GPSConfig struct {
	// Source selects the byte transport: "sim" runs the co-processor
	// simulator in loopback, "serial" opens a host tty.
	Source string `yaml:"source"`

	// Device and Baud apply to source "serial".
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// EnablePin is an optional BCM GPIO driving the receiver's enable
	// line; 0 disables power control.
	EnablePin int `yaml:"enable_pin"`

	StartYear int     `yaml:"start_year"`
	UpdateHz  float64 `yaml:"update_hz"`

	// Sentences lists the sentence types to decode and request from the
	// receiver: gga, gll, rmc, gsa, vtg, gsv. Empty selects the
	// receiver defaults (gll, rmc, vtg, gga).
	Sentences []string `yaml:"sentences"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.UART.Baud == 0 {
		cfg.UART.Baud = 9600
	}
	if cfg.UART.Bits == 0 {
		cfg.UART.Bits = 8
	}
	if cfg.UART.Bits < 5 || cfg.UART.Bits > 8 {
		return Config{}, fmt.Errorf("uart.bits must be 5..8, got %d", cfg.UART.Bits)
	}
	if cfg.UART.Stop == 0 {
		cfg.UART.Stop = 1
	}
	if cfg.UART.Stop < 1 || cfg.UART.Stop > 2 {
		return Config{}, fmt.Errorf("uart.stop must be 1 or 2, got %d", cfg.UART.Stop)
	}
	if cfg.UART.FIFOSize == 0 {
		cfg.UART.FIFOSize = 128
	}
	if cfg.UART.FIFOSize < 2 {
		return Config{}, fmt.Errorf("uart.fifo_size must be at least 2, got %d", cfg.UART.FIFOSize)
	}
	if cfg.UART.RxPin == cfg.UART.TxPin {
		return Config{}, fmt.Errorf("uart.rx_pin and uart.tx_pin must differ")
	}

	if cfg.GPS.Source == "" {
		cfg.GPS.Source = "sim"
	}
	switch cfg.GPS.Source {
	case "sim":
	case "serial":
		if cfg.GPS.Device == "" {
			return Config{}, fmt.Errorf("gps.device is required when gps.source is serial")
		}
	default:
		return Config{}, fmt.Errorf("gps.source must be sim or serial, got %q", cfg.GPS.Source)
	}
	if cfg.GPS.Baud == 0 {
		cfg.GPS.Baud = int(cfg.UART.Baud)
	}
	if cfg.GPS.StartYear == 0 {
		cfg.GPS.StartYear = 2000
	}
	if cfg.GPS.UpdateHz < 0 {
		return Config{}, fmt.Errorf("gps.update_hz must not be negative")
	}
	if len(cfg.GPS.Sentences) == 0 {
		cfg.GPS.Sentences = []string{"gll", "rmc", "vtg", "gga"}
	}
	for _, s := range cfg.GPS.Sentences {
		switch s {
		case "gga", "gll", "rmc", "gsa", "vtg", "gsv":
		default:
			return Config{}, fmt.Errorf("gps.sentences: unknown sentence type %q", s)
		}
	}

	return cfg, nil
}

// SentenceEnabled reports whether the named type is selected.
func (g GPSConfig) SentenceEnabled(name string) bool {
	for _, s := range g.Sentences {
		if s == name {
			return true
		}
	}
	return false
}
