package ticks_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiznet-go/s2e/ticks"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
		want int32
	}{
		{"equal", 1000, 1000, 0},
		{"a ahead", 1500, 1000, 500},
		{"a behind", 1000, 1500, -500},
		{"wraps forward", 10, 0xFFFFFFF0, 26},
		{"wraps backward", 0xFFFFFFF0, 10, -26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ticks.Diff(tt.a, tt.b))
		})
	}
}

func TestAddWraps(t *testing.T) {
	require.Equal(t, uint32(99), ticks.Add(0xFFFFFFFF, 100))
}

func TestExpired(t *testing.T) {
	src := &ticks.Sim{}
	dl := ticks.After(src, 50*time.Millisecond)

	require.False(t, ticks.Expired(src, dl))
	src.Advance(49)
	require.False(t, ticks.Expired(src, dl))
	src.Advance(1)
	require.True(t, ticks.Expired(src, dl))
}

func TestExpiredAcrossWrap(t *testing.T) {
	src := &ticks.Sim{}
	src.Advance(0xFFFFFFFF - 10) // 11 ms before the counter wraps

	dl := ticks.After(src, 100*time.Millisecond)
	require.False(t, ticks.Expired(src, dl))
	src.Advance(99)
	require.False(t, ticks.Expired(src, dl))
	src.Advance(1)
	require.True(t, ticks.Expired(src, dl))
}

func TestSimSleepAdvances(t *testing.T) {
	src := &ticks.Sim{}
	before := src.Now()
	src.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(20), ticks.Diff(src.Now(), before))
	require.Equal(t, 20*time.Millisecond, src.Slept)
}

func TestSimStep(t *testing.T) {
	src := &ticks.Sim{Step: 5}
	a := src.Now()
	b := src.Now()
	require.Equal(t, int32(5), ticks.Diff(b, a))
}

func TestSystemMonotonic(t *testing.T) {
	src := ticks.NewSystem()
	a := src.Now()
	src.Sleep(2 * time.Millisecond)
	b := src.Now()
	require.GreaterOrEqual(t, ticks.Diff(b, a), int32(1))
}
