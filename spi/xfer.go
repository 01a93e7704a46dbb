package spi

import (
	"time"

	"github.com/wiznet-go/s2e"
	"github.com/wiznet-go/s2e/ticks"
)

// exchange clocks one byte in each direction with chip-select framing: an
// assert-hold before the transfer and a release-gap after it.
func (l *Link) exchange(tx byte) byte {
	l.cs.Assert()
	if l.cfg.CSHold > 0 {
		l.clk.Sleep(l.cfg.CSHold)
	}
	rx := l.bus.Transfer(tx)
	l.cs.Release()
	if l.cfg.CSGap > 0 {
		l.clk.Sleep(l.cfg.CSGap)
	}
	return rx
}

// waitAck polls dummy exchanges for the ACK or NACK sentinel. On ACK the
// protocol-defined three trailer bytes are swallowed before returning.
// Returns nil on ACK, s2e.ErrNack on NACK, s2e.ErrTimeout when neither
// arrives within the deadline or the byte budget.
func (l *Link) waitAck(timeout time.Duration, maxBytes int) error {
	dl := ticks.After(l.clk, timeout)
	for n := 0; n < maxBytes && !ticks.Expired(l.clk, dl); n++ {
		switch l.exchange(Dummy) {
		case Ack:
			l.exchange(Dummy)
			l.exchange(Dummy)
			l.exchange(Dummy)
			return nil
		case Nack:
			return s2e.ErrNack
		}
	}
	return s2e.ErrTimeout
}

// waitIntLow reports whether the interrupt line went low within timeout.
// The fast path returns immediately when it is already asserted.
func (l *Link) waitIntLow(timeout time.Duration) bool {
	if l.irq.Low() {
		return true
	}
	dl := ticks.After(l.clk, timeout)
	for !ticks.Expired(l.clk, dl) {
		if l.irq.Low() {
			return true
		}
	}
	return false
}
