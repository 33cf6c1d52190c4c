// Package event is the firmware event bus: subsystems raise typed state-change
// events and listeners subscribe to the classes they care about.
package event

import "lpmview/zmk/transport"

// Class identifies the kind of an Event.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassBatteryStateChanged
	ClassUSBConnStateChanged
	ClassBLEActiveProfileChanged
	ClassEndpointChanged
	ClassLayerStateChanged
	ClassWPMStateChanged
	ClassKeycodeStateChanged

	classCount
)

func (c Class) String() string {
	switch c {
	case ClassBatteryStateChanged:
		return "battery_state_changed"
	case ClassUSBConnStateChanged:
		return "usb_conn_state_changed"
	case ClassBLEActiveProfileChanged:
		return "ble_active_profile_changed"
	case ClassEndpointChanged:
		return "endpoint_changed"
	case ClassLayerStateChanged:
		return "layer_state_changed"
	case ClassWPMStateChanged:
		return "wpm_state_changed"
	case ClassKeycodeStateChanged:
		return "keycode_state_changed"
	default:
		return "unknown"
	}
}

// Event is a single published state change.
type Event interface {
	Class() Class
}

// USBConnState mirrors the USB connection states reported by the USB stack.
type USBConnState uint8

const (
	USBConnNone USBConnState = iota
	USBConnPowered
	USBConnHID
)

func (s USBConnState) String() string {
	switch s {
	case USBConnPowered:
		return "powered"
	case USBConnHID:
		return "hid"
	default:
		return "none"
	}
}

type BatteryStateChanged struct {
	StateOfCharge uint8
}

func (BatteryStateChanged) Class() Class { return ClassBatteryStateChanged }

type USBConnStateChanged struct {
	State USBConnState
}

func (USBConnStateChanged) Class() Class { return ClassUSBConnStateChanged }

type BLEActiveProfileChanged struct {
	Index  int
	Bonded bool
}

func (BLEActiveProfileChanged) Class() Class { return ClassBLEActiveProfileChanged }

type EndpointChanged struct {
	Endpoint transport.Endpoint
}

func (EndpointChanged) Class() Class { return ClassEndpointChanged }

type LayerStateChanged struct {
	Layer     uint8
	State     bool
	Timestamp int64
}

func (LayerStateChanged) Class() Class { return ClassLayerStateChanged }

type WPMStateChanged struct {
	State uint8
}

func (WPMStateChanged) Class() Class { return ClassWPMStateChanged }

// KeycodeStateChanged is raised for every key press (State true) and release.
type KeycodeStateChanged struct {
	Keycode   uint32
	State     bool
	Timestamp int64
}

func (KeycodeStateChanged) Class() Class { return ClassKeycodeStateChanged }

// AsBatteryStateChanged returns ev as a battery event, or nil when ev has a
// different class.
func AsBatteryStateChanged(ev Event) *BatteryStateChanged {
	if e, ok := ev.(BatteryStateChanged); ok {
		return &e
	}
	if e, ok := ev.(*BatteryStateChanged); ok {
		return e
	}
	return nil
}

func AsUSBConnStateChanged(ev Event) *USBConnStateChanged {
	if e, ok := ev.(USBConnStateChanged); ok {
		return &e
	}
	if e, ok := ev.(*USBConnStateChanged); ok {
		return e
	}
	return nil
}

func AsBLEActiveProfileChanged(ev Event) *BLEActiveProfileChanged {
	if e, ok := ev.(BLEActiveProfileChanged); ok {
		return &e
	}
	if e, ok := ev.(*BLEActiveProfileChanged); ok {
		return e
	}
	return nil
}

func AsLayerStateChanged(ev Event) *LayerStateChanged {
	if e, ok := ev.(LayerStateChanged); ok {
		return &e
	}
	if e, ok := ev.(*LayerStateChanged); ok {
		return e
	}
	return nil
}

func AsWPMStateChanged(ev Event) *WPMStateChanged {
	if e, ok := ev.(WPMStateChanged); ok {
		return &e
	}
	if e, ok := ev.(*WPMStateChanged); ok {
		return e
	}
	return nil
}

func AsKeycodeStateChanged(ev Event) *KeycodeStateChanged {
	if e, ok := ev.(KeycodeStateChanged); ok {
		return &e
	}
	if e, ok := ev.(*KeycodeStateChanged); ok {
		return e
	}
	return nil
}
