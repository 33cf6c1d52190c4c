package kernel

import (
	"sync/atomic"
	"time"
)

// System holds the shared timebase. Work that runs on an interval (WPM
// sampling, demo scripts) reads Ticks instead of the wall clock so that the
// host runner can drive it deterministically.
type System struct {
	ticks atomic.Uint64
}

// NewSystem creates a kernel instance.
func NewSystem() *System {
	return &System{}
}

// TickTo advances the tick counter to seq. Older values are ignored.
func (s *System) TickTo(seq uint64) {
	for {
		cur := s.ticks.Load()
		if seq <= cur {
			return
		}
		if s.ticks.CompareAndSwap(cur, seq) {
			return
		}
	}
}

// Ticks returns the current tick count (1ms per tick).
func (s *System) Ticks() uint64 {
	return s.ticks.Load()
}

// Elapsed returns the time represented by the current tick count.
func (s *System) Elapsed() time.Duration {
	return time.Duration(s.Ticks()) * time.Millisecond
}
