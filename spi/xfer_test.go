package spi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiznet-go/s2e/ticks"
)

func TestExchangeChipSelectTiming(t *testing.T) {
	bus := &fakeBus{rx: []byte{0x42}}
	clk := &ticks.Sim{}
	cs := &fakeCS{}
	bus.cs = cs
	l := New(bus, cs, &fakeInt{}, Config{
		CSHold: 2 * time.Microsecond,
		CSGap:  20 * time.Microsecond,
		Clock:  clk,
	})

	require.Equal(t, byte(0x42), l.exchange(0x55))
	require.Equal(t, []byte{0x55}, bus.tx)
	require.Equal(t, 1, cs.asserts)
	require.Equal(t, 1, cs.releases)
	require.False(t, bus.csBroken, "transfer must happen inside the chip-select window")
	require.Equal(t, 22*time.Microsecond, clk.Slept, "hold before transfer plus gap after release")
}

func TestWaitIntLowFastPath(t *testing.T) {
	l, _ := newTestLink(&fakeBus{}, &fakeInt{level: true})
	require.True(t, l.waitIntLow(0))
}

func TestWaitIntLowTimeout(t *testing.T) {
	clk := &ticks.Sim{Step: 10}
	l := New(&fakeBus{}, &fakeCS{}, &fakeInt{level: false}, Config{Clock: clk})
	require.False(t, l.waitIntLow(50*time.Millisecond))
}

func TestWaitIntLowPollsUntilLow(t *testing.T) {
	irq := &countdownInt{after: 5}
	clk := &ticks.Sim{Step: 1}
	l := New(&fakeBus{}, &fakeCS{}, irq, Config{Clock: clk})

	require.True(t, l.waitIntLow(time.Second))
	require.Zero(t, irq.after)
}

// countdownInt goes low after a fixed number of polls.
type countdownInt struct {
	after int
}

func (c *countdownInt) Low() bool {
	if c.after == 0 {
		return true
	}
	c.after--
	return false
}
