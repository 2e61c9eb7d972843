// serialx/baud.go

package serialx

// Largest divisor the two-part baud register can hold (12 bits).
const maxBaudDivisor = 0x0FFF

// baudDivisor computes the clock divisor for the requested baud rate,
// preferring the double-speed sampling mode. Integer division truncates at
// every step. When the double-speed divisor would overflow the 12-bit
// register, the normal-speed divisor is used instead, trading timing margin
// for range. Returns the divisor and whether double-speed mode stays on.
func baudDivisor(clockHz, baud uint32) (uint16, bool) {
	div := (clockHz/4/baud - 1) / 2
	if div > maxBaudDivisor {
		return uint16((clockHz/8/baud - 1) / 2), false
	}
	return uint16(div), true
}
