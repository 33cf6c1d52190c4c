// Package endpoints decides which transport keyboard reports are sent to.
package endpoints

import (
	"sync"

	"lpmview/zmk/event"
	"lpmview/zmk/transport"
)

// USB is the part of the USB stack endpoint selection reads.
type USB interface {
	IsReady() bool
}

// BLE is the part of the profile table endpoint selection reads.
type BLE interface {
	ActiveProfileIndex() int
	ActiveProfileIsConnected() bool
}

// Endpoints tracks the preferred transport and the currently selected
// endpoint. Either source may be nil when that transport is compiled out.
type Endpoints struct {
	mu        sync.Mutex
	usb       USB
	ble       BLE
	preferred transport.Kind
	selected  transport.Endpoint
	ev        event.Raiser
}

// New returns endpoints preferring USB.
func New(ev event.Raiser, usb USB, ble BLE) *Endpoints {
	e := &Endpoints{usb: usb, ble: ble, ev: ev, preferred: transport.USB}
	e.selected = e.compute()
	return e
}

// Subscribe re-evaluates the selection whenever USB or BLE state changes.
func (e *Endpoints) Subscribe(s event.Subscriber) {
	s.Subscribe("endpoints", func(event.Event) error {
		e.Update()
		return nil
	}, event.ClassUSBConnStateChanged, event.ClassBLEActiveProfileChanged)
}

// Selected returns the endpoint reports currently go to.
func (e *Endpoints) Selected() transport.Endpoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Preferred returns the transport the user asked for.
func (e *Endpoints) Preferred() transport.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preferred
}

// SetPreferredTransport changes the preference and re-evaluates.
func (e *Endpoints) SetPreferredTransport(k transport.Kind) {
	e.mu.Lock()
	e.preferred = k
	e.mu.Unlock()
	e.Update()
}

// Toggle flips the preferred transport.
func (e *Endpoints) Toggle() {
	if e.Preferred() == transport.USB {
		e.SetPreferredTransport(transport.BLE)
		return
	}
	e.SetPreferredTransport(transport.USB)
}

// Update recomputes the selected endpoint and raises EndpointChanged when it
// differs from the previous one.
func (e *Endpoints) Update() {
	e.mu.Lock()
	next := e.compute()
	changed := !next.Equal(e.selected)
	e.selected = next
	e.mu.Unlock()

	if changed && e.ev != nil {
		_ = e.ev.Raise(event.EndpointChanged{Endpoint: next})
	}
}

func (e *Endpoints) compute() transport.Endpoint {
	usbReady := e.usb != nil && e.usb.IsReady()
	bleReady := e.ble != nil && e.ble.ActiveProfileIsConnected()

	kind := e.preferred
	switch e.preferred {
	case transport.USB:
		if !usbReady && bleReady {
			kind = transport.BLE
		}
	case transport.BLE:
		if !bleReady && usbReady {
			kind = transport.USB
		}
	}

	ep := transport.Endpoint{Transport: kind}
	if kind == transport.BLE && e.ble != nil {
		ep.BLEProfileIndex = e.ble.ActiveProfileIndex()
	}
	return ep
}
