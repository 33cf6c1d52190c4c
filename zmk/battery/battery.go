// Package battery tracks the peripheral's battery state of charge.
package battery

import (
	"sync"

	"lpmview/zmk/event"
)

// Li-ion discharge curve endpoints used by SetMillivolts.
const (
	EmptyMillivolts = 3500
	FullMillivolts  = 4180
)

// Battery holds the last sampled state of charge.
type Battery struct {
	mu  sync.Mutex
	soc uint8
	ev  event.Raiser
}

// New returns a battery reporting soc percent. Changes are raised on ev,
// which may be nil.
func New(ev event.Raiser, soc uint8) *Battery {
	if soc > 100 {
		soc = 100
	}
	return &Battery{soc: soc, ev: ev}
}

// StateOfCharge returns the battery level in percent.
func (b *Battery) StateOfCharge() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.soc
}

// SetStateOfCharge records a new level, clamped to 100, and raises
// BatteryStateChanged when it differs from the previous one.
func (b *Battery) SetStateOfCharge(pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	b.mu.Lock()
	changed := b.soc != uint8(pct)
	b.soc = uint8(pct)
	b.mu.Unlock()

	if changed && b.ev != nil {
		_ = b.ev.Raise(event.BatteryStateChanged{StateOfCharge: uint8(pct)})
	}
}

// SetMillivolts records a voltage sample.
func (b *Battery) SetMillivolts(mv uint32) {
	b.SetStateOfCharge(int(Approximate(mv)))
}

// Approximate converts a Li-ion cell voltage to a percentage. The curve is
// linear between EmptyMillivolts and FullMillivolts and rounds down.
func Approximate(mv uint32) uint8 {
	if mv <= EmptyMillivolts {
		return 0
	}
	if mv >= FullMillivolts {
		return 100
	}
	return uint8((mv - EmptyMillivolts) * 100 / (FullMillivolts - EmptyMillivolts))
}
