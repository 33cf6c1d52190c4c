// Package ble tracks Bluetooth host profiles: which peer is bonded to each
// slot, which slots have a live connection, and which slot is active.
package ble

import (
	"errors"
	"fmt"
	"sync"

	"lpmview/zmk/event"
)

// DefaultProfileCount is the number of host slots compiled into the firmware.
const DefaultProfileCount = 5

// ErrInvalidProfile is returned for a profile index outside the profile table.
var ErrInvalidProfile = errors.New("ble: invalid profile")

type profile struct {
	peer      string // empty when the slot is open
	connected bool
}

// BLE is the profile table.
type BLE struct {
	mu       sync.Mutex
	profiles []profile
	active   int
	ev       event.Raiser
}

// New returns a profile table with n open slots (DefaultProfileCount when n
// is not positive).
func New(ev event.Raiser, n int) *BLE {
	if n <= 0 {
		n = DefaultProfileCount
	}
	return &BLE{profiles: make([]profile, n), ev: ev}
}

// ProfileCount returns the number of slots.
func (b *BLE) ProfileCount() int {
	return len(b.profiles)
}

// ActiveProfileIndex returns the selected slot.
func (b *BLE) ActiveProfileIndex() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// ProfileIsConnected reports whether slot i has a live connection. Out of
// range indices report false.
func (b *BLE) ProfileIsConnected(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.profiles) {
		return false
	}
	return b.profiles[i].connected
}

// ProfileIsOpen reports whether slot i has no bonded peer. Out of range
// indices report true.
func (b *BLE) ProfileIsOpen(i int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.profiles) {
		return true
	}
	return b.profiles[i].peer == ""
}

func (b *BLE) ActiveProfileIsConnected() bool {
	return b.ProfileIsConnected(b.ActiveProfileIndex())
}

func (b *BLE) ActiveProfileIsOpen() bool {
	return b.ProfileIsOpen(b.ActiveProfileIndex())
}

// Peer returns the bonded peer address of slot i.
func (b *BLE) Peer(i int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.profiles) {
		return "", fmt.Errorf("peer %d: %w", i, ErrInvalidProfile)
	}
	return b.profiles[i].peer, nil
}

// SelectProfile makes slot i active.
func (b *BLE) SelectProfile(i int) error {
	b.mu.Lock()
	if i < 0 || i >= len(b.profiles) {
		b.mu.Unlock()
		return fmt.Errorf("select %d: %w", i, ErrInvalidProfile)
	}
	if b.active == i {
		b.mu.Unlock()
		return nil
	}
	b.active = i
	ev := b.changedLocked()
	b.mu.Unlock()
	b.raise(ev)
	return nil
}

// NextProfile selects the following slot, wrapping around.
func (b *BLE) NextProfile() error {
	return b.SelectProfile((b.ActiveProfileIndex() + 1) % len(b.profiles))
}

// PrevProfile selects the preceding slot, wrapping around.
func (b *BLE) PrevProfile() error {
	n := len(b.profiles)
	return b.SelectProfile((b.ActiveProfileIndex() + n - 1) % n)
}

// Bond stores peer in slot i.
func (b *BLE) Bond(i int, peer string) error {
	if peer == "" {
		return fmt.Errorf("bond %d: empty peer address", i)
	}
	return b.update(i, "bond", func(p *profile) { p.peer = peer })
}

// ClearProfile forgets the peer in slot i and drops its connection.
func (b *BLE) ClearProfile(i int) error {
	return b.update(i, "clear", func(p *profile) { *p = profile{} })
}

// SetConnected records the connection state of slot i.
func (b *BLE) SetConnected(i int, connected bool) error {
	return b.update(i, "connect", func(p *profile) { p.connected = connected })
}

func (b *BLE) update(i int, op string, fn func(*profile)) error {
	b.mu.Lock()
	if i < 0 || i >= len(b.profiles) {
		b.mu.Unlock()
		return fmt.Errorf("%s %d: %w", op, i, ErrInvalidProfile)
	}
	before := b.profiles[i]
	fn(&b.profiles[i])
	if b.profiles[i] == before {
		b.mu.Unlock()
		return nil
	}
	ev := b.changedLocked()
	b.mu.Unlock()
	b.raise(ev)
	return nil
}

func (b *BLE) changedLocked() event.BLEActiveProfileChanged {
	return event.BLEActiveProfileChanged{
		Index:  b.active,
		Bonded: b.profiles[b.active].peer != "",
	}
}

func (b *BLE) raise(ev event.Event) {
	if b.ev != nil {
		_ = b.ev.Raise(ev)
	}
}
