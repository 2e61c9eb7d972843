//go:build !serialxdebug

package serialx

// Stats is empty unless the serialxdebug build tag is set.
type Stats struct{}

func (u *UART) DebugReset()       {}
func (u *UART) DebugStats() Stats { return Stats{} }

func (u *UART) dbgRxISR()            {}
func (u *UART) dbgTxISR()            {}
func (u *UART) dbgRxDrop()           {}
func (u *UART) dbgNotify(bool)       {}
func (u *UART) dbgTxWait()           {}
func (u *UART) dbgReadWait()         {}
func (u *UART) dbgSpuriousWake()     {}
func (u *UART) dbgTimeout()          {}
