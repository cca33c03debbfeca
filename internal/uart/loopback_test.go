package uart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picogps/internal/piosim"
)

// readAll polls the receiver until want bytes arrived or the deadline
// passed. The engine runs in its own goroutine, so reads spin-wait the
// same way firmware polls its receive queue.
func readAll(r *Rx, want int, deadline time.Duration) []byte {
	var got []byte
	end := time.Now().Add(deadline)
	for len(got) < want && time.Now().Before(end) {
		b, ok := r.ReadByte()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		got = append(got, b)
	}
	return got
}

func TestLoopbackSentence(t *testing.T) {
	require := require.New(t)

	sim := piosim.New(12_000_000)
	sim.Wire(0, 1)

	alloc := NewAllocator(sim)
	cfg := DefaultConfig()
	tx := NewTx(alloc, cfg, 0)
	rx := NewRx(alloc, cfg, 1)
	require.NoError(rx.Activate())
	require.NoError(tx.Activate())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	const sentence = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"
	// Println blocks on the transmit FIFO, so it runs off the test
	// goroutine while the engine drains it.
	go tx.Println(sentence)

	want := sentence + "\r\n"
	got := readAll(rx, len(want), 30*time.Second)
	require.Equal(want, string(got), "every byte must arrive intact and in order")
}

func TestLoopbackBytePatterns(t *testing.T) {
	require := require.New(t)

	sim := piosim.New(12_000_000)
	sim.Wire(4, 5)

	alloc := NewAllocator(sim)
	cfg := DefaultConfig()
	tx := NewTx(alloc, cfg, 4)
	rx := NewRx(alloc, cfg, 5)
	require.NoError(rx.Activate())
	require.NoError(tx.Activate())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	pattern := []byte{0x00, 0xff, 0x55, 0xaa, 0x01, 0x80, '\r', '\n'}
	go func() {
		for _, b := range pattern {
			tx.Write(b)
		}
	}()

	got := readAll(rx, len(pattern), 30*time.Second)
	require.Equal(pattern, got)
}

func TestLoopbackReadLine(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sim := piosim.New(12_000_000)
	sim.Wire(2, 3)

	alloc := NewAllocator(sim)
	cfg := DefaultConfig()
	tx := NewTx(alloc, cfg, 2)
	rx := NewRx(alloc, cfg, 3)
	require.NoError(rx.Activate())
	require.NoError(tx.Activate())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	go tx.Println("hello")

	// Wait for the full line, terminator included, before reading so a
	// mid-frame poll cannot split it.
	end := time.Now().Add(30 * time.Second)
	for rx.Available() < len("hello\r\n") && time.Now().Before(end) {
		time.Sleep(time.Millisecond)
	}

	line, ok := rx.ReadLine()
	require.True(ok)
	assert.Equal("hello\r", line)
}
