package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"picogps/internal/config"
	"picogps/internal/gps"
	"picogps/internal/nmea"
	"picogps/internal/piosim"
	"picogps/internal/serial"
	"picogps/internal/uart"
)

// Canned receiver traffic for the loopback demo. Every byte is framed
// by the transmit engine, crosses the simulated wire and is decoded by
// the receive engine before the parser sees it.
var demoSentences = []string{
	"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
	"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
	"$GPGLL,4916.45,N,12311.12,W,225444,A*1D",
	"$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*48",
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("picogps starting source=%s", cfg.GPS.Source)

	var g *gps.GPS
	switch cfg.GPS.Source {
	case "sim":
		g, err = buildSim(ctx, cfg)
	case "serial":
		g, err = buildSerial(cfg)
	}
	if err != nil {
		log.Fatalf("%s bring-up failed: %v", cfg.GPS.Source, err)
	}

	g.StartYear = cfg.GPS.StartYear
	applySentences(g, cfg.GPS)

	if cfg.GPS.EnablePin > 0 {
		pin, perr := gps.OpenPowerPin(cfg.GPS.EnablePin)
		if perr != nil {
			log.Printf("enable pin unavailable: %v", perr)
		} else {
			g.AttachPower(pin)
			defer pin.Close()
		}
	}

	// On the loopback wire the facade's commands would interleave with
	// the demo feed, so the receiver is only configured on real ports.
	if cfg.GPS.Source == "serial" {
		g.UpdateIntervals()
		if cfg.GPS.UpdateHz > 0 {
			g.SetFrequency(cfg.GPS.UpdateHz)
		}
	}

	poll(ctx, g)
	log.Printf("picogps stopping")
}

func buildSim(ctx context.Context, cfg config.Config) (*gps.GPS, error) {
	sim := piosim.New(cfg.UART.ClockHz)
	sim.Wire(cfg.UART.TxPin, cfg.UART.RxPin)

	alloc := uart.NewAllocator(sim)
	ucfg := uart.Config{
		Baud:     cfg.UART.Baud,
		Bits:     cfg.UART.Bits,
		Stop:     cfg.UART.Stop,
		FIFOSize: cfg.UART.FIFOSize,
	}
	tx := uart.NewTx(alloc, ucfg, cfg.UART.TxPin)
	rx := uart.NewRx(alloc, ucfg, cfg.UART.RxPin)
	if err := tx.Activate(); err != nil {
		return nil, err
	}
	if err := rx.Activate(); err != nil {
		return nil, err
	}

	go sim.Run(ctx)
	go feed(ctx, tx)

	log.Printf("loopback wire pin%d->pin%d baud=%d", cfg.UART.TxPin, cfg.UART.RxPin, cfg.UART.Baud)
	return gps.New(nmea.NewParser(rx), tx), nil
}

func buildSerial(cfg config.Config) (*gps.GPS, error) {
	port, err := serial.Open(cfg.GPS.Device, cfg.GPS.Baud)
	if err != nil {
		return nil, err
	}
	log.Printf("gps device=%s baud=%d", cfg.GPS.Device, cfg.GPS.Baud)
	return gps.New(nmea.NewParser(port), port), nil
}

func applySentences(g *gps.GPS, cfg config.GPSConfig) {
	en := nmea.Enabled{
		GGA: cfg.SentenceEnabled("gga"),
		GLL: cfg.SentenceEnabled("gll"),
		RMC: cfg.SentenceEnabled("rmc"),
		GSA: cfg.SentenceEnabled("gsa"),
		VTG: cfg.SentenceEnabled("vtg"),
		GSV: cfg.SentenceEnabled("gsv"),
	}
	g.Intervals = gps.Intervals{
		GLL: en.GLL, RMC: en.RMC, VTG: en.VTG,
		GGA: en.GGA, GSA: en.GSA, GSV: en.GSV,
	}
	g.SetEnabled(en)
}

// feed replays the canned sentences at roughly one fix per second. The
// transmit FIFO provides the backpressure; Write blocks at wire speed.
func feed(ctx context.Context, tx *uart.Tx) {
	for {
		for _, s := range demoSentences {
			select {
			case <-ctx.Done():
				return
			default:
			}
			tx.Println(s)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func poll(ctx context.Context, g *gps.GPS) {
	lines := time.NewTicker(200 * time.Millisecond)
	defer lines.Stop()
	status := time.NewTicker(5 * time.Second)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-lines.C:
			for g.IsAvailable() {
				line, ok := g.Read()
				if !ok {
					break
				}
				if line = strings.TrimSpace(line); line != "" {
					log.Printf("nmea: %s", line)
				}
			}
		case <-status.C:
			d := g.Data()
			if d.RMC.LastTime == 0 {
				continue
			}
			log.Printf("fix lat=%.5f lon=%.5f speed=%.1fkt date=%02d.%02d.%04d",
				g.Latitude(), g.Longitude(), g.Speed(), g.Day(), g.Month(), g.Year())
			d.RMC.LastTime = 0
		}
	}
}
