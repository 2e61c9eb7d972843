// serialx/regs.go

package serialx

// Registers abstracts the register bank of one serial line. The driver never
// sees addresses or bit layouts; implementations map these operations onto a
// real peripheral (six byte-wide registers on the AVR targets) or onto a
// simulated line for host builds.
type Registers interface {
	// SetBaudDivisor programs the two-part baud rate divisor.
	SetBaudDivisor(div uint16)

	// SetDoubleSpeed selects the double-speed sampling mode. Disabling it
	// also returns the status register to its power-on state.
	SetDoubleSpeed(on bool)

	// SetFrame8N1 sets the frame format to 8 data bits, no parity, 1 stop bit.
	SetFrame8N1()

	// EnableLine turns on the receiver, the receive-complete interrupt and
	// the transmitter.
	EnableLine()

	// DisableLine clears every enable bit this driver sets (receiver,
	// receive interrupt, transmitter, transmit interrupt) and resets the
	// baud, status and frame registers to their power-on state.
	DisableLine()

	// SetTxInterrupt arms or disarms the transmit-register-empty interrupt.
	// Arming is idempotent.
	SetTxInterrupt(on bool)

	// TxInterruptEnabled reports whether the transmit interrupt is armed.
	TxInterruptEnabled() bool

	// ReadData returns the received byte from the data register.
	ReadData() byte

	// WriteData loads one byte into the transmit data register.
	WriteData(b byte)
}

// Interrupts abstracts control over interrupt delivery. The driver uses it to
// build short critical sections around multi-index buffer updates: Disable,
// do the work, Restore the prior state on every exit path. On MCU targets it
// maps onto the global interrupt flag; on host builds the simulated line
// provides an equivalent mutual-exclusion guard.
type Interrupts interface {
	// Disable suppresses interrupt delivery and returns the previous state.
	Disable() uintptr

	// Restore reinstates the delivery state returned by Disable.
	Restore(state uintptr)

	// Enable turns interrupt delivery on globally.
	Enable()
}
