// simuart/simuart.go

// Package simuart models the register bank, interrupt machinery and wire of
// one serial line in software, so the driver core can be exercised on a host:
// in unit tests, self-tests and interactive tooling. The model is behavioural,
// not cycle-accurate; it reproduces the contracts the driver relies on:
//
//   - register reads/writes are indivisible,
//   - the two interrupt callbacks run with interrupt delivery held off,
//   - a foreground critical section (Disable/Restore) keeps callbacks out
//     for its whole duration.
package simuart

import (
	"sync"
	"time"
)

// Bank is one simulated line. It implements both the register-bank and the
// interrupt-control capabilities the driver expects, so a single Bank value
// is injected twice at construction.
type Bank struct {
	// irqMu stands in for the global interrupt-enable flag: holding it
	// suppresses callback delivery exactly as a critical section would.
	irqMu sync.Mutex

	// regMu makes each register access indivisible, like a single-cycle
	// register read/write. Never held across a callback.
	regMu sync.Mutex

	divisor     uint16
	doubleSpeed bool
	frame8N1    bool
	lineEnabled bool
	txIRQ       bool
	dataReg     byte
	writes      int // mutating register accesses, for lifecycle tests

	rxISR func()
	txISR func()

	// Loopback feeds every transmitted byte back into the receive side.
	Loopback bool

	// TxInterval paces the background pump, approximating the character time
	// of a real wire. Zero means as fast as the scheduler allows.
	TxInterval time.Duration

	out     []byte
	pending []byte // loopback bytes not yet delivered to the RX callback

	stop chan struct{}
	done chan struct{}
}

// NewBank returns an idle simulated line.
func NewBank() *Bank {
	return &Bank{}
}

// BindISR installs the two interrupt callbacks. The bank invokes rx on each
// injected byte and tx whenever the transmit interrupt is armed and the data
// register is free, mirroring the two hardware events of a real line.
func (b *Bank) BindISR(rx, tx func()) {
	b.rxISR = rx
	b.txISR = tx
}

// ---- register-bank capability ----

func (b *Bank) SetBaudDivisor(div uint16) {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.divisor = div
	b.writes++
}

func (b *Bank) SetDoubleSpeed(on bool) {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.doubleSpeed = on
	b.writes++
}

func (b *Bank) SetFrame8N1() {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.frame8N1 = true
	b.writes++
}

func (b *Bank) EnableLine() {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.lineEnabled = true
	b.writes++
}

func (b *Bank) DisableLine() {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.lineEnabled = false
	b.txIRQ = false
	b.divisor = 0
	b.doubleSpeed = false
	b.frame8N1 = false
	b.writes++
}

func (b *Bank) SetTxInterrupt(on bool) {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.txIRQ = on
	b.writes++
}

func (b *Bank) TxInterruptEnabled() bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.txIRQ
}

func (b *Bank) ReadData() byte {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.dataReg
}

func (b *Bank) WriteData(v byte) {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.dataReg = v
	b.out = append(b.out, v)
	if b.Loopback {
		b.pending = append(b.pending, v)
	}
	b.writes++
}

// ---- interrupt-control capability ----

// Disable suppresses callback delivery until Restore. The returned state is
// opaque; the simulated flag has no nesting, matching the driver's usage.
func (b *Bank) Disable() uintptr {
	b.irqMu.Lock()
	return 1
}

// Restore reinstates callback delivery.
func (b *Bank) Restore(uintptr) {
	b.irqMu.Unlock()
}

// Enable is a no-op: on the host, delivery is on whenever no critical
// section holds it off.
func (b *Bank) Enable() {}

// ---- wire simulation ----

// InjectRx delivers one byte from the wire: it loads the data register and
// fires the receive-complete callback with delivery held off, exactly as the
// hardware event would.
func (b *Bank) InjectRx(v byte) {
	b.irqMu.Lock()
	defer b.irqMu.Unlock()
	b.regMu.Lock()
	b.dataReg = v
	b.regMu.Unlock()
	if b.rxISR != nil {
		b.rxISR()
	}
}

// StepTx fires one transmit-register-empty event if the transmit interrupt is
// armed. It returns whether an event fired. Loopback bytes produced by the
// step are delivered before returning.
func (b *Bank) StepTx() bool {
	b.irqMu.Lock()
	fired := false
	if b.TxInterruptEnabled() && b.txISR != nil {
		b.txISR()
		fired = true
	}
	b.irqMu.Unlock()

	for _, v := range b.takePending() {
		b.InjectRx(v)
	}
	return fired
}

func (b *Bank) takePending() []byte {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	p := b.pending
	b.pending = nil
	return p
}

// StartPump runs the transmit side continuously in the background: whenever
// the transmit interrupt is armed it fires events, otherwise it idles
// briefly. Stop it with StopPump.
func (b *Bank) StartPump() {
	if b.stop != nil {
		return
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go func() {
		defer close(b.done)
		for {
			select {
			case <-b.stop:
				return
			default:
			}
			if b.StepTx() {
				time.Sleep(b.TxInterval)
			} else {
				time.Sleep(50 * time.Microsecond)
			}
		}
	}()
}

// StopPump halts the background transmit pump and waits for it to exit.
func (b *Bank) StopPump() {
	if b.stop == nil {
		return
	}
	close(b.stop)
	<-b.done
	b.stop = nil
	b.done = nil
}

// ---- observation helpers ----

// Output returns a copy of every byte shifted out so far.
func (b *Bank) Output() []byte {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return append([]byte(nil), b.out...)
}

// TakeOutput returns the transmitted bytes and resets the capture.
func (b *Bank) TakeOutput() []byte {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	p := b.out
	b.out = nil
	return p
}

// Divisor returns the programmed baud divisor.
func (b *Bank) Divisor() uint16 {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.divisor
}

// DoubleSpeed reports whether double-speed sampling is selected.
func (b *Bank) DoubleSpeed() bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.doubleSpeed
}

// LineEnabled reports whether the receiver/transmitter enables are set.
func (b *Bank) LineEnabled() bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.lineEnabled
}

// Frame8N1 reports whether the 8N1 frame format has been programmed.
func (b *Bank) Frame8N1() bool {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.frame8N1
}

// Writes returns how many mutating register accesses have happened.
func (b *Bank) Writes() int {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	return b.writes
}
