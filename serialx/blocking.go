// serialx/blocking.go

package serialx

import "context"

// Readable exposes a coalesced RX readiness signal suitable for select.
// The receive interrupt sends on this channel after enqueueing one or more
// bytes; receivers must re-check state after waking.
func (u *UART) Readable() <-chan struct{} { return u.notify }

// Writable exposes a coalesced TX progress signal suitable for select.
// The transmit interrupt sends on this channel whenever it moves a byte or
// runs dry; receivers must re-check state after waking.
func (u *UART) Writable() <-chan struct{} { return u.txNotify }

// WaitReadableContext blocks until data is available or ctx is done.
func (u *UART) WaitReadableContext(ctx context.Context) error {
	for {
		if u.Buffered() > 0 {
			return nil
		}
		u.dbgReadWait()
		select {
		case <-u.notify:
			// re-check; if empty, it was a spurious wake (coalesced notify)
			if u.Buffered() == 0 {
				u.dbgSpuriousWake()
			}
		case <-ctx.Done():
			u.dbgTimeout()
			return ctx.Err()
		}
	}
}

// RecvSomeContext blocks until at least one byte is available, then reads up
// to len(p).
func (u *UART) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if n, _ := u.Read(p); n > 0 {
		return n, nil
	}
	for {
		u.dbgReadWait()
		select {
		case <-u.notify:
			if n, _ := u.Read(p); n > 0 {
				return n, nil
			}
			u.dbgSpuriousWake()
		case <-ctx.Done():
			u.dbgTimeout()
			return 0, ctx.Err()
		}
	}
}

// RecvByteContext blocks for a single byte or until ctx is done.
func (u *UART) RecvByteContext(ctx context.Context) (byte, error) {
	if b, err := u.ReadByte(); err == nil {
		return b, nil
	}
	for {
		u.dbgReadWait()
		select {
		case <-u.notify:
			if b, err := u.ReadByte(); err == nil {
				return b, nil
			}
			u.dbgSpuriousWake()
		case <-ctx.Done():
			u.dbgTimeout()
			return 0, ctx.Err()
		}
	}
}
