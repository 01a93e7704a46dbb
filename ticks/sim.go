package ticks

import "time"

// Sim is a simulated Source for tests. Sleep advances the simulated clock
// instead of blocking, and Step makes each Now call advance the clock by a
// fixed amount so pure polling loops (which never sleep) still run into
// their deadlines.
//
// Sim is not safe for concurrent use, matching the single-threaded driver
// model it exists to test.
type Sim struct {
	now  uint32
	Step uint32 // ms added on every Now call, 0 to disable

	Slept time.Duration // total time spent in Sleep
}

func (s *Sim) Now() uint32 {
	t := s.now
	s.now += s.Step
	return t
}

func (s *Sim) Sleep(d time.Duration) {
	s.Slept += d
	s.Advance(uint32(d.Milliseconds()))
}

// Advance moves the simulated clock forward by ms.
func (s *Sim) Advance(ms uint32) {
	s.now += ms
}
