// serialx/avr_328pb.go

//go:build atmega328pb

package serialx

import (
	"device/avr"
	"runtime/interrupt"

	"machine"
)

// UART1 is the line on the 328PB's second USART.
var UART1 = New(&avrRegisters{
	ubrrh: avr.UBRR1H,
	ubrrl: avr.UBRR1L,
	ucsra: avr.UCSR1A,
	ucsrb: avr.UCSR1B,
	ucsrc: avr.UCSR1C,
	udr:   avr.UDR1,
}, avrInterrupts{}, machine.CPUFrequency())

func init() {
	interrupt.New(avr.IRQ_USART0_RX, func(interrupt.Interrupt) { UART0.HandleRxInterrupt() })
	interrupt.New(avr.IRQ_USART0_UDRE, func(interrupt.Interrupt) { UART0.HandleTxInterrupt() })
	interrupt.New(avr.IRQ_USART1_RX, func(interrupt.Interrupt) { UART1.HandleRxInterrupt() })
	interrupt.New(avr.IRQ_USART1_UDRE, func(interrupt.Interrupt) { UART1.HandleTxInterrupt() })
}
