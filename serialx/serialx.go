// serialx/serialx.go

// Package serialx provides a buffered, interrupt-driven serial (UART) driver.
// Foreground code enqueues and dequeues bytes through fixed-size software
// rings; the two hardware events (receive complete, transmit register empty)
// drain and fill those rings through the HandleRxInterrupt/HandleTxInterrupt
// callbacks. All hardware access goes through the narrow Registers and
// Interrupts capabilities, so the same core runs against a real peripheral or
// a simulated one.
package serialx

import (
	"errors"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers"
)

var (
	// ErrRunning is returned by Begin when the line is already running.
	ErrRunning = errors.New("serial line already running")
	// ErrStopped is returned by End and the write path when the line has not
	// been started.
	ErrStopped = errors.New("serial line not running")
	// ErrBufferEmpty is returned by ReadByte when no data is buffered.
	ErrBufferEmpty = errors.New("serial RX buffer empty")
	// ErrBaudRate is returned by Begin when the requested rate is zero or
	// beyond what the divisor register can express for the peripheral clock.
	ErrBaudRate = errors.New("serial baud rate out of range")
)

// UART is one serial line. It owns the line's register capability and its RX
// and TX software rings, and is the synchronisation boundary between
// foreground code and the interrupt callbacks.
//
// Invariants:
//   - The hardware enable bits and baud divisor are consistent with the
//     started flag; while stopped, every enable bit is clear.
//   - RX ring: the receive ISR is the only producer, foreground the only
//     consumer. TX ring: foreground is the only producer, the transmit ISR
//     the only consumer. A single foreground caller is assumed; the driver
//     does not arbitrate between concurrent foreground writers.
//
// Signalling: notify and txNotify are coalesced (capacity 1); receivers must
// re-check state after waking.
type UART struct {
	regs    Registers
	irq     Interrupts
	clockHz uint32

	Buffer   *RingBuffer // software RX ring, filled by HandleRxInterrupt
	TxBuffer *RingBuffer // software TX ring, drained by HandleTxInterrupt

	notify   chan struct{} // coalesced RX readiness notifications
	txNotify chan struct{} // coalesced TX progress notifications

	// started is atomic only so a draining helper goroutine observes End's
	// refusal tear-free; lifecycle transitions themselves still assume a
	// single foreground caller.
	started atomic.Bool
	stats   Stats
}

// New returns a stopped line bound to the given register bank. clockHz is the
// peripheral clock the baud divisor is derived from.
func New(regs Registers, irq Interrupts, clockHz uint32) *UART {
	return &UART{
		regs:     regs,
		irq:      irq,
		clockHz:  clockHz,
		Buffer:   NewRingBuffer(),
		TxBuffer: NewRingBuffer(),
		notify:   make(chan struct{}, 1),
		txNotify: make(chan struct{}, 1),
	}
}

// Begin starts the line at the requested baud rate: it programs the divisor
// (see baudDivisor for the double-speed trade-off), sets the 8N1 frame and
// enables the receiver, the receive interrupt and the transmitter. Global
// interrupt delivery is enabled as a side effect. Calling Begin on a running
// line returns ErrRunning and changes nothing; a rate of zero or above
// clock/4 returns ErrBaudRate, since the divisor arithmetic is undefined
// outside that range.
func (u *UART) Begin(baud uint32) error {
	if u.started.Load() {
		return ErrRunning
	}
	if baud == 0 || baud > u.clockHz/4 {
		return ErrBaudRate
	}
	u.started.Store(true)

	u.irq.Enable()

	div, double := baudDivisor(u.clockHz, baud)
	u.regs.SetDoubleSpeed(double)
	u.regs.SetBaudDivisor(div)
	u.regs.SetFrame8N1()
	u.regs.EnableLine()
	return nil
}

// End stops the line: it refuses further writes immediately, waits until the
// transmit ring has fully drained (the ISR disarms the transmit interrupt
// when it runs dry), drops any unread RX bytes and returns the registers to
// their power-on state. Calling End on a stopped line returns ErrStopped and
// performs no register writes. End has no timeout; if interrupt delivery is
// suppressed it spins forever, which is the caller's responsibility.
func (u *UART) End() error {
	if !u.started.Load() {
		return ErrStopped
	}
	u.started.Store(false)

	for u.IsTransmitting() {
		time.Sleep(0) // polite yield
	}
	u.Flush()
	u.regs.DisableLine()
	return nil
}

// Buffered returns the number of bytes waiting in the RX ring. The count is
// taken as one atomic snapshot: an interrupt landing between the two index
// reads could otherwise tear the pair.
func (u *UART) Buffered() int {
	state := u.irq.Disable()
	defer u.irq.Restore(state)
	return u.Buffer.Used()
}

// Flush atomically drops every unread byte in the RX ring. It does not touch
// the TX side; End is the only operation that waits for TX completion.
func (u *UART) Flush() {
	state := u.irq.Disable()
	defer u.irq.Restore(state)
	u.Buffer.Clear()
}

// IsTransmitting reports whether the transmit interrupt is armed, i.e.
// whether TX data is pending or in flight.
func (u *UART) IsTransmitting() bool {
	return u.regs.TxInterruptEnabled()
}

// ReadByte pops one byte from the RX ring. The read-then-advance on the tail
// index runs as a critical section so the receive ISR cannot interleave with
// it. An empty ring yields ErrBufferEmpty.
func (u *UART) ReadByte() (byte, error) {
	state := u.irq.Disable()
	defer u.irq.Restore(state)
	b, ok := u.Buffer.Get()
	if !ok {
		return 0, ErrBufferEmpty
	}
	return b, nil
}

// Read copies up to len(p) already-buffered bytes into p. It never blocks; a
// return of 0 means "no data now".
func (u *UART) Read(p []byte) (int, error) {
	size := u.Buffered()
	if size == 0 {
		return 0, nil
	}
	if len(p) < size {
		size = len(p)
	}
	n := 0
	for i := 0; i < size; i++ {
		b, err := u.ReadByte()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

// ReadFull busy-polls the RX ring until it has filled p completely. Each pop
// is gated on Buffered so the wait costs nothing but time. There is no
// timeout; see RecvSomeContext for a cancellable wait.
func (u *UART) ReadFull(p []byte) {
	for i := 0; i < len(p); {
		if u.Buffered() == 0 {
			time.Sleep(0)
			continue
		}
		if b, err := u.ReadByte(); err == nil {
			p[i] = b
			i++
		}
	}
}

// WriteByte enqueues one byte for transmission and arms the transmit
// interrupt so the hardware drains it. When the TX ring is full, WriteByte
// spins until the ISR frees a slot; the spin deliberately leaves interrupts
// enabled, since suppressing them would stop the ISR from ever making space.
// There is no timeout. Returns ErrStopped when the line is not running.
func (u *UART) WriteByte(b byte) error {
	if !u.started.Load() {
		return ErrStopped
	}
	if !u.TxBuffer.Put(b) {
		u.dbgTxWait()
		for !u.TxBuffer.Put(b) {
			time.Sleep(0)
		}
	}
	u.regs.SetTxInterrupt(true)
	return nil
}

// Write enqueues every byte of p in order, with WriteByte's blocking
// behaviour per byte.
func (u *UART) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := u.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Writev writes the provided buffers in sequence with the same blocking
// behaviour as Write. It stops on the first error and returns the total
// number of bytes accepted up to that point.
func (u *UART) Writev(bufs ...[]byte) (int, error) {
	sent := 0
	for _, p := range bufs {
		n, err := u.Write(p)
		sent += n
		if err != nil {
			return sent, err
		}
	}
	return sent, nil
}

// UARTConfig carries the line parameters Configure applies. Only the baud
// rate is configurable; the frame is fixed at 8N1.
type UARTConfig struct {
	BaudRate uint32
}

// Configure applies cfg and starts the line. Together with Read, Write and
// Buffered it satisfies the tinygo.org/x/drivers UART contract, so stacked
// drivers can sit on top of this line. A zero baud rate defaults to 115200.
func (u *UART) Configure(cfg UARTConfig) error {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
	return u.Begin(cfg.BaudRate)
}

var _ drivers.UART = (*UART)(nil)

// HandleRxInterrupt services the receive-complete event: it moves the byte
// from the data register into the RX ring unconditionally. If the ring is
// full the insert silently sacrifices the pending backlog; losing data under
// pressure is the chosen policy, not a fault. The hosting environment must
// invoke this callback on the receive-complete event of this line's
// registers, with that interrupt source masked for the duration (hardware
// convention); the callback therefore takes no critical section of its own.
func (u *UART) HandleRxInterrupt() {
	u.dbgRxISR()
	if !u.Buffer.PutOverwrite(u.regs.ReadData()) {
		u.dbgRxDrop()
	}
	select {
	case u.notify <- struct{}{}:
		u.dbgNotify(true)
	default:
		u.dbgNotify(false)
	}
}

// HandleTxInterrupt services the transmit-register-empty event: it moves one
// byte from the TX ring into the data register, or disarms the transmit
// interrupt when the ring is empty so no further spurious events fire until
// the next WriteByte re-arms it. Same invocation contract as
// HandleRxInterrupt.
func (u *UART) HandleTxInterrupt() {
	u.dbgTxISR()
	if b, ok := u.TxBuffer.Get(); ok {
		u.regs.WriteData(b)
	} else {
		u.regs.SetTxInterrupt(false)
		// On hosts the callback does not exclude the foreground, so a byte
		// enqueued between the empty check and the disarm would sit stranded
		// with the interrupt off. Re-check after the disarm so it cannot.
		if b, ok := u.TxBuffer.Get(); ok {
			u.regs.SetTxInterrupt(true)
			u.regs.WriteData(b)
		}
	}
	select {
	case u.txNotify <- struct{}{}:
	default:
	}
}
