// Package wpm estimates typing speed from key releases.
package wpm

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"lpmview/zmk/event"
)

const (
	// UpdateInterval is how often the estimate is recomputed.
	UpdateInterval = time.Second
	// ResetIntervals is the number of updates after which the counters restart.
	ResetIntervals = 5
	// CharsPerWord is the standard word length for typing speed.
	CharsPerWord = 5
)

// Tracker counts key releases and publishes a words-per-minute estimate.
type Tracker struct {
	mu       sync.Mutex
	state    uint8
	last     uint8
	counter  int
	releases uint32

	clock  clockwork.Clock
	ticker clockwork.Ticker
	ev     event.Raiser
}

// New returns a tracker sampling on clock. A nil clock uses the real one.
func New(ev event.Raiser, clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{ev: ev, clock: clock}
}

// Subscribe counts key releases raised on s.
func (t *Tracker) Subscribe(s event.Subscriber) {
	s.Subscribe("wpm", func(ev event.Event) error {
		if k := event.AsKeycodeStateChanged(ev); k != nil && !k.State {
			t.KeyReleased()
		}
		return nil
	}, event.ClassKeycodeStateChanged)
}

// State returns the current estimate.
func (t *Tracker) State() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// KeyReleased counts one keystroke.
func (t *Tracker) KeyReleased() {
	t.mu.Lock()
	t.releases++
	t.mu.Unlock()
}

// Start arms the update ticker. Poll must then be called to consume it.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker == nil {
		t.ticker = t.clock.NewTicker(UpdateInterval)
	}
}

// Stop disarms the update ticker.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// Poll runs every update that is due without blocking. It returns the
// number of updates run.
func (t *Tracker) Poll() int {
	t.mu.Lock()
	tk := t.ticker
	t.mu.Unlock()
	if tk == nil {
		return 0
	}
	n := 0
	for {
		select {
		case <-tk.Chan():
			t.Update()
			n++
		default:
			return n
		}
	}
}

// Update recomputes the estimate and raises WPMStateChanged when it moved.
func (t *Tracker) Update() {
	t.mu.Lock()
	t.counter++
	// words / minutes, kept in integers: releases/5 / (counter*interval/60s).
	elapsed := uint64(t.counter) * uint64(UpdateInterval/time.Millisecond)
	wpm := uint64(t.releases) * uint64(time.Minute/time.Millisecond) / (CharsPerWord * elapsed)
	if wpm > 255 {
		wpm = 255
	}
	t.state = uint8(wpm)
	changed := t.state != t.last
	t.last = t.state
	state := t.state

	if t.counter >= ResetIntervals {
		t.counter = 0
		t.releases = 0
	}
	t.mu.Unlock()

	if changed && t.ev != nil {
		_ = t.ev.Raise(event.WPMStateChanged{State: state})
	}
}
