package uart

import "sync/atomic"

// byteQueue is the single-producer/single-consumer ring between the
// interrupt handler and the polling consumer. The writer index is
// advanced only by the handler, the reader index only by the consumer;
// one slot stays unused so full and empty never look alike. A full
// queue drops the incoming byte and keeps its contents.
type byteQueue struct {
	buf    []byte
	reader atomic.Uint32
	writer atomic.Uint32
}

func newByteQueue(capacity int) *byteQueue {
	return &byteQueue{buf: make([]byte, capacity)}
}

// push runs in interrupt context. The byte is stored before the writer
// index is published; the atomic store is the fence that makes the byte
// visible to the consumer no earlier than the index.
func (q *byteQueue) push(b byte) bool {
	n := uint32(len(q.buf))
	w := q.writer.Load()
	next := (w + 1) % n
	if next == q.reader.Load() {
		return false
	}
	q.buf[w] = b
	q.writer.Store(next)
	return true
}

// available is safe against a concurrently advancing writer.
func (q *byteQueue) available() int {
	n := uint32(len(q.buf))
	w := q.writer.Load()
	r := q.reader.Load()
	return int((w + n - r) % n)
}

func (q *byteQueue) pop() (byte, bool) {
	r := q.reader.Load()
	if r == q.writer.Load() {
		return 0, false
	}
	b := q.buf[r]
	q.reader.Store((r + 1) % uint32(len(q.buf)))
	return b, true
}
