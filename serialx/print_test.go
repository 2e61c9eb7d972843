package serialx

import (
	"testing"

	"github.com/jangala-dev/tinygo-serialx/simuart"
)

// printed runs fn against a fresh line, drains the transmit side and returns
// what went out on the wire.
func printed(t *testing.T, fn func(u *UART) error) string {
	t.Helper()
	u, bank := newTestLine()
	if err := u.Begin(115200); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := fn(u); err != nil {
		t.Fatalf("print: %v", err)
	}
	drainTx(t, u, bank)
	return string(bank.TakeOutput())
}

func TestPrintString(t *testing.T) {
	got := printed(t, func(u *UART) error { return u.Print("hello") })
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestPrintlnAppendsNewline(t *testing.T) {
	got := printed(t, func(u *UART) error { return u.Println("ready") })
	if got != "ready\n" {
		t.Fatalf("got %q, want %q", got, "ready\n")
	}
	got = printed(t, func(u *UART) error { return u.Println("") })
	if got != "\n" {
		t.Fatalf("bare Println got %q, want newline", got)
	}
}

func TestPrintByte(t *testing.T) {
	got := printed(t, func(u *UART) error { return u.PrintByte('?') })
	if got != "?" {
		t.Fatalf("got %q, want %q", got, "?")
	}
	got = printed(t, func(u *UART) error { return u.PrintlnByte('!') })
	if got != "!\n" {
		t.Fatalf("got %q, want %q", got, "!\n")
	}
}

func TestPrintFlash(t *testing.T) {
	const banner FlashString = "boot ok"
	got := printed(t, func(u *UART) error { return u.PrintlnFlash(banner) })
	if got != "boot ok\n" {
		t.Fatalf("got %q, want %q", got, "boot ok\n")
	}
}

func TestPrintUint(t *testing.T) {
	cases := []struct {
		run  func(u *UART) error
		want string
	}{
		{func(u *UART) error { return PrintUint(u, uint8(0)) }, "0"},
		{func(u *UART) error { return PrintUint(u, uint8(255)) }, "255"},
		{func(u *UART) error { return PrintUint(u, uint16(65535)) }, "65535"},
		{func(u *UART) error { return PrintlnUint(u, uint32(4294967295)) }, "4294967295\n"},
	}
	for _, c := range cases {
		if got := printed(t, c.run); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestPrintInt(t *testing.T) {
	cases := []struct {
		run  func(u *UART) error
		want string
	}{
		{func(u *UART) error { return PrintInt(u, int8(-128)) }, "-128"},
		{func(u *UART) error { return PrintInt(u, int16(12345)) }, "12345"},
		{func(u *UART) error { return PrintInt(u, int32(-2147483648)) }, "-2147483648"},
		{func(u *UART) error { return PrintlnInt(u, 0) }, "0\n"},
	}
	for _, c := range cases {
		if got := printed(t, c.run); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

// The helpers sit strictly on the byte-level write path, so a stopped line
// refuses them the same way it refuses WriteByte.
func TestPrintOnStoppedLine(t *testing.T) {
	bank := simuart.NewBank()
	u := New(bank, bank, testClock)
	bank.BindISR(u.HandleRxInterrupt, u.HandleTxInterrupt)

	if err := u.Print("x"); err != ErrStopped {
		t.Fatalf("Print on stopped line: err=%v, want ErrStopped", err)
	}
	if err := PrintInt(u, -1); err != ErrStopped {
		t.Fatalf("PrintInt on stopped line: err=%v, want ErrStopped", err)
	}
}
