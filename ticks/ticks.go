// Package ticks provides wraparound-safe monotonic millisecond tick
// arithmetic for the bounded busy-poll loops in the transport drivers.
//
// The tick counter is a uint32 that wraps at 2^32 ms (about 49.7 days).
// Deadlines must therefore never be compared directly; Diff computes a
// signed difference that stays correct across the wrap, and Expired tests
// a deadline through it.
package ticks

import "time"

// Source supplies monotonic ticks and delays. Implementations back the
// driver wait loops; tests inject a simulated source so no real time
// passes.
type Source interface {
	// Now returns the current tick count in milliseconds. The counter is
	// monotonic but wraps at 2^32.
	Now() uint32
	// Sleep pauses the caller for at least d.
	Sleep(d time.Duration)
}

// Add returns t advanced by ms, wrapping modulo 2^32.
func Add(t, ms uint32) uint32 {
	return t + ms
}

// Diff returns the signed distance a-b in milliseconds. The result is
// correct as long as the real distance is under 2^31 ms, which every
// driver timeout is by orders of magnitude.
func Diff(a, b uint32) int32 {
	return int32(a - b)
}

// After computes a deadline d from now on src.
func After(src Source, d time.Duration) uint32 {
	return Add(src.Now(), uint32(d.Milliseconds()))
}

// Expired reports whether deadline has passed on src.
func Expired(src Source, deadline uint32) bool {
	return Diff(src.Now(), deadline) >= 0
}

// System is a Source backed by the runtime monotonic clock.
type System struct {
	base time.Time
}

// NewSystem returns a System source anchored at the current instant.
func NewSystem() *System {
	return &System{base: time.Now()}
}

func (s *System) Now() uint32 {
	return uint32(time.Since(s.base).Milliseconds())
}

func (s *System) Sleep(d time.Duration) {
	time.Sleep(d)
}
