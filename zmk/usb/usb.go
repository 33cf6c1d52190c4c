// Package usb tracks the USB connection state.
package usb

import (
	"sync"

	"lpmview/zmk/event"
)

// USB holds the current connection state.
type USB struct {
	mu    sync.Mutex
	state event.USBConnState
	ev    event.Raiser
}

func New(ev event.Raiser) *USB {
	return &USB{ev: ev}
}

// ConnState returns the current connection state.
func (u *USB) ConnState() event.USBConnState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// IsPowered reports whether VBUS is present.
func (u *USB) IsPowered() bool {
	return u.ConnState() != event.USBConnNone
}

// IsReady reports whether the host enumerated the HID interface.
func (u *USB) IsReady() bool {
	return u.ConnState() == event.USBConnHID
}

// SetConnState records s and raises USBConnStateChanged when it changed.
func (u *USB) SetConnState(s event.USBConnState) {
	u.mu.Lock()
	changed := u.state != s
	u.state = s
	u.mu.Unlock()

	if changed && u.ev != nil {
		_ = u.ev.Raise(event.USBConnStateChanged{State: s})
	}
}

// Cycle steps through none, powered and hid.
func (u *USB) Cycle() {
	u.SetConnState((u.ConnState() + 1) % 3)
}
