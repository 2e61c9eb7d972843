// Loopback self-test over a simulated line: pushes a known payload through
// the transmit ring, lets the pump echo it back into the receive side and
// checks the received checksum. Exits non-zero on any mismatch.
package main

import (
	"context"
	"crypto/sha1"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jangala-dev/tinygo-serialx/serialx"
	"github.com/jangala-dev/tinygo-serialx/simuart"
)

var (
	count = flag.Int("count", 4096, "bytes to push through the loopback")
	baud  = flag.Uint("baud", 115200, "baud rate to configure")
	clock = flag.Uint("clock", 16_000_000, "simulated peripheral clock in Hz")
)

// recvExact reads exactly n bytes (or a ctx error) using RecvSomeContext.
func recvExact(ctx context.Context, u *serialx.UART, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	var buf [128]byte
	for len(out) < n {
		k, err := u.RecvSomeContext(ctx, buf[:])
		if err != nil {
			return out, err
		}
		out = append(out, buf[:k]...)
	}
	return out, nil
}

func main() {
	flag.Parse()

	bank := simuart.NewBank()
	bank.Loopback = true
	// Pace the pump at roughly one 8N1 character time so the receive side
	// can keep up, as it would against a real wire.
	bank.TxInterval = 10 * time.Second / time.Duration(*baud)

	u := serialx.New(bank, bank, uint32(*clock))
	bank.BindISR(u.HandleRxInterrupt, u.HandleTxInterrupt)

	if err := u.Begin(uint32(*baud)); err != nil {
		log.Fatalf("begin: %v", err)
	}
	bank.StartPump()
	defer bank.StopPump()

	payload := make([]byte, *count)
	for i := range payload {
		payload[i] = byte(i*7 + 13)
	}
	wantSum := sha1.Sum(payload)

	// Write blocks as the ring fills; the pump drains it concurrently.
	go func() {
		if _, err := u.Write(payload); err != nil {
			log.Printf("write: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	got, err := recvExact(ctx, u, len(payload))
	if err != nil {
		log.Printf("receive: %v (got %d of %d bytes)", err, len(got), len(payload))
		os.Exit(1)
	}
	if sha1.Sum(got) != wantSum {
		log.Print("payload checksum mismatch")
		os.Exit(1)
	}
	if err := u.End(); err != nil {
		log.Fatalf("end: %v", err)
	}
	log.Printf("selftest ok: %d bytes at %d baud", len(got), *baud)
}
