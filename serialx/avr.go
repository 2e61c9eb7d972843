// serialx/avr.go

//go:build atmega328p || atmega328pb

// AVR binding: maps the Registers and Interrupts capabilities onto the six
// USART registers and the global interrupt flag of the ATmega328 family.
// Bit positions are identical across the family's USARTs, so the USART0
// constants serve every line.

package serialx

import (
	"device/avr"
	"runtime/interrupt"
	"runtime/volatile"

	"machine"
)

// avrRegisters binds one line's register bank.
type avrRegisters struct {
	ubrrh *volatile.Register8 // baud divisor, high nibble
	ubrrl *volatile.Register8 // baud divisor, low byte
	ucsra *volatile.Register8 // status A (double-speed bit)
	ucsrb *volatile.Register8 // control B (enables, transmit interrupt)
	ucsrc *volatile.Register8 // control C (frame format)
	udr   *volatile.Register8 // data register
}

func (r *avrRegisters) SetBaudDivisor(div uint16) {
	r.ubrrh.Set(uint8(div >> 8))
	r.ubrrl.Set(uint8(div))
}

func (r *avrRegisters) SetDoubleSpeed(on bool) {
	if on {
		r.ucsra.SetBits(avr.UCSR0A_U2X0)
	} else {
		r.ucsra.Set(0)
	}
}

func (r *avrRegisters) SetFrame8N1() {
	r.ucsrc.SetBits(avr.UCSR0C_UCSZ01 | avr.UCSR0C_UCSZ00)
}

func (r *avrRegisters) EnableLine() {
	r.ucsrb.SetBits(avr.UCSR0B_RXEN0 | avr.UCSR0B_RXCIE0 | avr.UCSR0B_TXEN0)
}

func (r *avrRegisters) DisableLine() {
	r.ubrrh.Set(0)
	r.ubrrl.Set(0)
	r.ucsra.Set(0)
	r.ucsrc.ClearBits(avr.UCSR0C_UCSZ01 | avr.UCSR0C_UCSZ00)
	r.ucsrb.ClearBits(avr.UCSR0B_RXEN0 | avr.UCSR0B_RXCIE0 |
		avr.UCSR0B_TXEN0 | avr.UCSR0B_UDRIE0)
}

func (r *avrRegisters) SetTxInterrupt(on bool) {
	if on {
		r.ucsrb.SetBits(avr.UCSR0B_UDRIE0)
	} else {
		r.ucsrb.ClearBits(avr.UCSR0B_UDRIE0)
	}
}

func (r *avrRegisters) TxInterruptEnabled() bool {
	return r.ucsrb.HasBits(avr.UCSR0B_UDRIE0)
}

func (r *avrRegisters) ReadData() byte   { return r.udr.Get() }
func (r *avrRegisters) WriteData(b byte) { r.udr.Set(b) }

// avrInterrupts drives the global interrupt flag.
type avrInterrupts struct{}

func (avrInterrupts) Disable() uintptr      { return uintptr(interrupt.Disable()) }
func (avrInterrupts) Restore(state uintptr) { interrupt.Restore(interrupt.State(state)) }
func (avrInterrupts) Enable()               { avr.Asm("sei") }

// UART0 is the line on the family's first USART.
var UART0 = New(&avrRegisters{
	ubrrh: avr.UBRR0H,
	ubrrl: avr.UBRR0L,
	ucsra: avr.UCSR0A,
	ucsrb: avr.UCSR0B,
	ucsrc: avr.UCSR0C,
	udr:   avr.UDR0,
}, avrInterrupts{}, machine.CPUFrequency())
