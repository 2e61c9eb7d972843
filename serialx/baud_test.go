package serialx

import "testing"

func TestBaudDivisor(t *testing.T) {
	const clock = 16_000_000

	cases := []struct {
		baud   uint32
		div    uint16
		double bool
	}{
		// Fixed regression vector for the documented formula.
		{115200, 16, true},
		{57600, 34, true},
		{19200, 103, true},
		{9600, 207, true},
		// Slow enough that the double-speed divisor overflows 12 bits and
		// the normal-speed fallback kicks in.
		{300, 3332, false},
	}

	for _, c := range cases {
		div, double := baudDivisor(clock, c.baud)
		if div != c.div || double != c.double {
			t.Errorf("baudDivisor(%d, %d) = (%d,%v), want (%d,%v)",
				clock, c.baud, div, double, c.div, c.double)
		}
	}
}

func TestBaudDivisorTruncates(t *testing.T) {
	// 8 MHz at 9600 baud: 8e6/4/9600 = 208.33 truncates to 208, minus one
	// and halved truncates again to 103.
	div, double := baudDivisor(8_000_000, 9600)
	if div != 103 || !double {
		t.Fatalf("got (%d,%v), want (103,true)", div, double)
	}
}
