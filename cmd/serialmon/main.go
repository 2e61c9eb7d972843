// Interactive monitor for a simulated serial line. Everything typed after
// "send" goes out through the driver, loops back over the simulated wire and
// is printed as it arrives, so the full TX-interrupt-RX path is exercised
// from the keyboard.
//
// Commands:
//
//	send <words...>    transmit the words joined by spaces
//	sendln <words...>  same, with a trailing newline
//	baud <rate>        restart the line at a new baud rate
//	flush              drop unread receive bytes
//	stats              line state and, with -tags serialxdebug, counters
//	quit               drain and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	tty "github.com/mattn/go-tty"

	"github.com/jangala-dev/tinygo-serialx/serialx"
	"github.com/jangala-dev/tinygo-serialx/simuart"
)

var (
	baud  = flag.Uint("baud", 115200, "initial baud rate")
	clock = flag.Uint("clock", 16_000_000, "simulated peripheral clock in Hz")
)

func main() {
	flag.Parse()

	t, err := tty.Open()
	if err != nil {
		log.Fatalf("open tty: %v", err)
	}
	defer t.Close()

	bank := simuart.NewBank()
	bank.Loopback = true
	bank.TxInterval = 10 * time.Second / time.Duration(*baud)

	u := serialx.New(bank, bank, uint32(*clock))
	bank.BindISR(u.HandleRxInterrupt, u.HandleTxInterrupt)
	if err := u.Begin(uint32(*baud)); err != nil {
		log.Fatalf("begin: %v", err)
	}
	bank.StartPump()
	defer bank.StopPump()

	// Print received bytes as they arrive.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		var buf [64]byte
		for {
			n, err := u.RecvSomeContext(ctx, buf[:])
			if err != nil {
				return
			}
			fmt.Fprintf(t.Output(), "<< %q\r\n", buf[:n])
		}
	}()

	fmt.Fprintf(t.Output(), "serialmon on simulated loopback, %d baud (help: send/sendln/baud/flush/stats/quit)\r\n", *baud)
	for {
		fmt.Fprint(t.Output(), "> ")
		line, err := readLine(t)
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(t.Output(), "parse: %v\r\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "send", "sendln":
			text := strings.Join(args[1:], " ")
			if args[0] == "sendln" {
				text += "\n"
			}
			if _, err := u.Write([]byte(text)); err != nil {
				fmt.Fprintf(t.Output(), "write: %v\r\n", err)
			}
		case "baud":
			if len(args) != 2 {
				fmt.Fprint(t.Output(), "usage: baud <rate>\r\n")
				continue
			}
			rate, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil || rate == 0 {
				fmt.Fprintf(t.Output(), "bad rate %q\r\n", args[1])
				continue
			}
			if err := u.End(); err != nil {
				fmt.Fprintf(t.Output(), "end: %v\r\n", err)
				continue
			}
			if err := u.Begin(uint32(rate)); err != nil {
				fmt.Fprintf(t.Output(), "begin: %v\r\n", err)
				continue
			}
			fmt.Fprintf(t.Output(), "line restarted at %d baud\r\n", rate)
		case "flush":
			u.Flush()
		case "stats":
			fmt.Fprintf(t.Output(), "buffered=%d transmitting=%v divisor=%d double=%v\r\n",
				u.Buffered(), u.IsTransmitting(), bank.Divisor(), bank.DoubleSpeed())
			fmt.Fprintf(t.Output(), "debug: %+v\r\n", u.DebugStats())
		case "quit", "exit":
			if err := u.End(); err != nil {
				fmt.Fprintf(t.Output(), "end: %v\r\n", err)
			}
			return
		default:
			fmt.Fprintf(t.Output(), "unknown command %q\r\n", args[0])
		}
	}
}

// readLine collects runes until enter, echoing as it goes (the tty is raw).
func readLine(t *tty.TTY) (string, error) {
	var sb []rune
	for {
		r, err := t.ReadRune()
		if err != nil {
			return "", err
		}
		switch r {
		case '\r', '\n':
			fmt.Fprint(t.Output(), "\r\n")
			return string(sb), nil
		case 0x7F, 0x08: // backspace
			if len(sb) > 0 {
				sb = sb[:len(sb)-1]
				fmt.Fprint(t.Output(), "\b \b")
			}
		default:
			sb = append(sb, r)
			fmt.Fprintf(t.Output(), "%c", r)
		}
	}
}
