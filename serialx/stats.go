//go:build serialxdebug

package serialx

import "sync/atomic"

// Stats holds diagnostic counters since the last reset. Counters are updated
// with 32-bit atomics so the ISR paths stay cheap and tear-free.
type Stats struct {
	// ISR-level
	RxISRCount uint32 // receive-complete callback entries
	TxISRCount uint32 // transmit-register-empty callback entries
	RxDrops    uint32 // overflow inserts that sacrificed the RX backlog

	// Notification channel
	NotifySent    uint32 // RX notify sends that succeeded
	NotifyDropped uint32 // RX notify sends that were coalesced away

	// Blocking API behaviour
	TxWaits       uint32 // times WriteByte had to spin for ring space
	ReadWaits     uint32 // times a Recv*/Wait* helper had to wait
	SpuriousWakes uint32 // notify received but no data available
	Timeouts      uint32 // context cancellations in Recv*/Wait* helpers
}

func (u *UART) dbgRxISR() { atomic.AddUint32(&u.stats.RxISRCount, 1) }
func (u *UART) dbgTxISR() { atomic.AddUint32(&u.stats.TxISRCount, 1) }
func (u *UART) dbgRxDrop() { atomic.AddUint32(&u.stats.RxDrops, 1) }

func (u *UART) dbgNotify(sent bool) {
	if sent {
		atomic.AddUint32(&u.stats.NotifySent, 1)
	} else {
		atomic.AddUint32(&u.stats.NotifyDropped, 1)
	}
}

func (u *UART) dbgTxWait()       { atomic.AddUint32(&u.stats.TxWaits, 1) }
func (u *UART) dbgReadWait()     { atomic.AddUint32(&u.stats.ReadWaits, 1) }
func (u *UART) dbgSpuriousWake() { atomic.AddUint32(&u.stats.SpuriousWakes, 1) }
func (u *UART) dbgTimeout()      { atomic.AddUint32(&u.stats.Timeouts, 1) }

// DebugReset zeroes every counter.
func (u *UART) DebugReset() {
	u.stats = Stats{}
}

// DebugStats returns a copy of the counters, read atomically.
func (u *UART) DebugStats() Stats {
	return Stats{
		RxISRCount: atomic.LoadUint32(&u.stats.RxISRCount),
		TxISRCount: atomic.LoadUint32(&u.stats.TxISRCount),
		RxDrops:    atomic.LoadUint32(&u.stats.RxDrops),

		NotifySent:    atomic.LoadUint32(&u.stats.NotifySent),
		NotifyDropped: atomic.LoadUint32(&u.stats.NotifyDropped),

		TxWaits:       atomic.LoadUint32(&u.stats.TxWaits),
		ReadWaits:     atomic.LoadUint32(&u.stats.ReadWaits),
		SpuriousWakes: atomic.LoadUint32(&u.stats.SpuriousWakes),
		Timeouts:      atomic.LoadUint32(&u.stats.Timeouts),
	}
}
