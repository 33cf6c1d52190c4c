package status

import "lpmview/zmk/transport"

// Battery reports the last known state of charge.
type Battery interface {
	StateOfCharge() uint8
}

// USB reports whether USB power is present.
type USB interface {
	IsPowered() bool
}

// BLE reports the profile table: which slot is active and which slots are
// connected or bonded.
type BLE interface {
	ProfileCount() int
	ActiveProfileIndex() int
	ActiveProfileIsConnected() bool
	ActiveProfileIsOpen() bool
	ProfileIsConnected(i int) bool
	ProfileIsOpen(i int) bool
}

// Endpoints reports where keyboard reports are currently sent.
type Endpoints interface {
	Selected() transport.Endpoint
}

// Keymap reports the highest active layer and its display name.
type Keymap interface {
	HighestLayerActive() uint8
	LayerIndexToID(i uint8) uint8
	LayerName(id uint8) string
}

// WPM reports the current typing speed estimate.
type WPM interface {
	State() uint8
}

// Sources are the subsystems adapters read from. A nil field is a feature
// that is not built in; its adapter reports zero values and skips the
// subscriptions that only that subsystem would raise.
type Sources struct {
	Battery   Battery
	USB       USB
	BLE       BLE
	Endpoints Endpoints
	Keymap    Keymap
	WPM       WPM
}
