// serialx/ringbuffer.go

// A fixed-capacity byte ring for one direction of a serial line. One slot is
// reserved so that head==tail always means empty; the ring therefore holds at
// most Size()-1 bytes.

package serialx

import "sync/atomic"

// Capacity of each software buffer. Kept below 256 so counts and indices fit
// a byte on the smallest targets.
const bufferSize uint32 = 64

// RingBuffer is a single-producer, single-consumer byte queue with
// wrap-around indices. Indices are atomics so an isolated index load or store
// is indivisible with respect to an interrupt handler; any sequence touching
// both indices as a logical unit (the count snapshot, Clear, the
// read-then-advance in Get) must be serialised by the caller.
type RingBuffer struct {
	buf  [bufferSize]byte
	head atomic.Uint32 // next write slot, owned by the producer
	tail atomic.Uint32 // next read slot, owned by the consumer
}

// NewRingBuffer returns a new, empty ring buffer.
func NewRingBuffer() *RingBuffer {
	return &RingBuffer{}
}

// Size returns the total capacity of the buffer in bytes. The usable
// capacity is one less.
func (rb *RingBuffer) Size() int {
	return int(bufferSize)
}

// Used returns how many bytes are waiting in the buffer.
func (rb *RingBuffer) Used() int {
	return int((bufferSize + rb.head.Load() - rb.tail.Load()) % bufferSize)
}

// Put stores a byte in the buffer. If inserting would make head collide with
// tail the buffer is full and Put returns false without storing anything.
func (rb *RingBuffer) Put(val byte) bool {
	h := rb.head.Load()
	next := (h + 1) % bufferSize
	if next == rb.tail.Load() { // full
		return false
	}
	rb.buf[h] = val     // 1) write data
	rb.head.Store(next) // 2) publish
	return true
}

// PutOverwrite stores a byte unconditionally, advancing head even when the
// buffer is full. Under overflow the head index passes the tail and the
// pending backlog is silently sacrificed; no flag is raised. It returns false
// when that loss occurred. Intended for the receive interrupt path only.
func (rb *RingBuffer) PutOverwrite(val byte) bool {
	h := rb.head.Load()
	next := (h + 1) % bufferSize
	rb.buf[h] = val
	rb.head.Store(next)
	return next != rb.tail.Load()
}

// Get returns a byte from the buffer. If the buffer is empty, it returns
// (0, false).
func (rb *RingBuffer) Get() (byte, bool) {
	t := rb.tail.Load()
	if t == rb.head.Load() { // empty
		return 0, false
	}
	v := rb.buf[t]                      // 1) read current element
	rb.tail.Store((t + 1) % bufferSize) // 2) publish consumption
	return v, true
}

// Clear drops every unread byte by moving tail up to head.
func (rb *RingBuffer) Clear() {
	rb.tail.Store(rb.head.Load())
}
