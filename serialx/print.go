// serialx/print.go

// ASCII output helpers layered on the byte-level write path. Decimal
// conversion is allocation-free so the helpers are usable on MCU targets.

package serialx

import "golang.org/x/exp/constraints"

// FlashString marks a string constant intended to live in read-only program
// memory. On MCU targets string constants already reside in flash; the type
// documents at the API level that the argument is expected to be a constant,
// not a buffer built at runtime.
type FlashString string

// Print writes the raw bytes of s.
func (u *UART) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := u.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Println writes the raw bytes of s followed by a newline.
func (u *UART) Println(s string) error {
	if err := u.Print(s); err != nil {
		return err
	}
	return u.WriteByte('\n')
}

// PrintByte writes a single character.
func (u *UART) PrintByte(c byte) error { return u.WriteByte(c) }

// PrintlnByte writes a single character followed by a newline.
func (u *UART) PrintlnByte(c byte) error {
	if err := u.WriteByte(c); err != nil {
		return err
	}
	return u.WriteByte('\n')
}

// PrintFlash writes a constant-memory string.
func (u *UART) PrintFlash(s FlashString) error { return u.Print(string(s)) }

// PrintlnFlash writes a constant-memory string followed by a newline.
func (u *UART) PrintlnFlash(s FlashString) error { return u.Println(string(s)) }

// PrintUint writes the decimal form of n without allocating.
func PrintUint[T constraints.Unsigned](u *UART, n T) error {
	var buf [20]byte
	i := len(buf)
	v := uint64(n)
	for {
		i--
		buf[i] = byte(v%10) + '0'
		v /= 10
		if v == 0 {
			break
		}
	}
	_, err := u.Write(buf[i:])
	return err
}

// PrintInt writes the decimal form of n, with a leading minus sign when
// negative. Intended for the 8/16/32-bit widths; the most negative int64 is
// out of range.
func PrintInt[T constraints.Signed](u *UART, n T) error {
	v := int64(n)
	if v < 0 {
		if err := u.WriteByte('-'); err != nil {
			return err
		}
		return PrintUint(u, uint64(-v))
	}
	return PrintUint(u, uint64(v))
}

// PrintlnUint writes the decimal form of n followed by a newline.
func PrintlnUint[T constraints.Unsigned](u *UART, n T) error {
	if err := PrintUint(u, n); err != nil {
		return err
	}
	return u.WriteByte('\n')
}

// PrintlnInt writes the decimal form of n followed by a newline.
func PrintlnInt[T constraints.Signed](u *UART, n T) error {
	if err := PrintInt(u, n); err != nil {
		return err
	}
	return u.WriteByte('\n')
}
