// serialx/avr_328p.go

//go:build atmega328p

package serialx

import (
	"device/avr"
	"runtime/interrupt"
)

func init() {
	// Vector names lack the USART index on the single-USART chips.
	interrupt.New(avr.IRQ_USART_RX, func(interrupt.Interrupt) { UART0.HandleRxInterrupt() })
	interrupt.New(avr.IRQ_USART_UDRE, func(interrupt.Interrupt) { UART0.HandleTxInterrupt() })
}
