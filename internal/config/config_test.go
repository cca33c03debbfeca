package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "uart:\n  rx_pin: 1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.UART.Baud != 9600 || cfg.UART.Bits != 8 || cfg.UART.Stop != 1 {
		t.Errorf("uart defaults=%+v want 9600 8N1", cfg.UART)
	}
	if cfg.UART.FIFOSize != 128 {
		t.Errorf("fifo_size=%d want 128", cfg.UART.FIFOSize)
	}
	if cfg.GPS.Source != "sim" {
		t.Errorf("source=%q want sim", cfg.GPS.Source)
	}
	if cfg.GPS.Baud != 9600 {
		t.Errorf("gps.baud=%d want the uart baud", cfg.GPS.Baud)
	}
	if cfg.GPS.StartYear != 2000 {
		t.Errorf("start_year=%d want 2000", cfg.GPS.StartYear)
	}
	want := []string{"gll", "rmc", "vtg", "gga"}
	if len(cfg.GPS.Sentences) != len(want) {
		t.Fatalf("sentences=%v want %v", cfg.GPS.Sentences, want)
	}
	for i := range want {
		if cfg.GPS.Sentences[i] != want[i] {
			t.Fatalf("sentences=%v want %v", cfg.GPS.Sentences, want)
		}
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeTempConfig(t, `
uart:
  baud: 4800
  bits: 7
  stop: 2
  fifo_size: 64
  rx_pin: 5
  tx_pin: 4
  clock_hz: 12000000
gps:
  source: serial
  device: /dev/ttyAMA0
  baud: 115200
  enable_pin: 17
  start_year: 2020
  update_hz: 5
  sentences: [rmc, gga]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.UART.Baud != 4800 || cfg.UART.Bits != 7 || cfg.UART.Stop != 2 {
		t.Errorf("uart=%+v", cfg.UART)
	}
	if cfg.UART.RxPin != 5 || cfg.UART.TxPin != 4 || cfg.UART.ClockHz != 12000000 {
		t.Errorf("uart pins/clock=%+v", cfg.UART)
	}
	if cfg.GPS.Device != "/dev/ttyAMA0" || cfg.GPS.Baud != 115200 || cfg.GPS.EnablePin != 17 {
		t.Errorf("gps=%+v", cfg.GPS)
	}
	if !cfg.GPS.SentenceEnabled("rmc") || !cfg.GPS.SentenceEnabled("gga") {
		t.Errorf("selected sentences missing: %v", cfg.GPS.Sentences)
	}
	if cfg.GPS.SentenceEnabled("gsv") {
		t.Errorf("gsv must not be selected: %v", cfg.GPS.Sentences)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"BitsOutOfRange", "uart:\n  bits: 9\n  rx_pin: 1\n"},
		{"StopOutOfRange", "uart:\n  stop: 3\n  rx_pin: 1\n"},
		{"FIFOTooSmall", "uart:\n  fifo_size: 1\n  rx_pin: 1\n"},
		{"PinCollision", "uart:\n  rx_pin: 2\n  tx_pin: 2\n"},
		{"UnknownSource", "uart:\n  rx_pin: 1\ngps:\n  source: radio\n"},
		{"SerialWithoutDevice", "uart:\n  rx_pin: 1\ngps:\n  source: serial\n"},
		{"NegativeUpdateRate", "uart:\n  rx_pin: 1\ngps:\n  update_hz: -1\n"},
		{"UnknownSentence", "uart:\n  rx_pin: 1\ngps:\n  sentences: [zda]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(writeTempConfig(t, c.body)); err == nil {
				t.Fatalf("Load() accepted %q", c.body)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("Load() accepted a missing file")
	}
}
