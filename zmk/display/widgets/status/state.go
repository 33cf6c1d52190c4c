package status

import "lpmview/zmk/transport"

// ProfileCount is the number of BLE profile slots the middle row shows.
const ProfileCount = 5

// CanvasSize is the edge length of each square canvas.
const CanvasSize = 72

// NoProfile is the ActiveProfileIndex of a build without BLE: no slot is
// drawn as selected.
const NoProfile = -1

// State is the cached status a widget paints from. Every adapter owns a
// slice of its fields and only ever overwrites that slice.
type State struct {
	Battery  uint8
	Charging bool

	SelectedEndpoint       transport.Endpoint
	ActiveProfileIndex     int
	ActiveProfileConnected bool
	ActiveProfileBonded    bool
	ProfilesConnected      [ProfileCount]bool
	ProfilesBonded         [ProfileCount]bool

	LayerIndex uint8
	LayerLabel string

	WPM uint8
}

// BatteryState is the battery adapter snapshot.
type BatteryState struct {
	Level      uint8
	USBPresent bool
}

// OutputState is the output adapter snapshot.
type OutputState struct {
	SelectedEndpoint       transport.Endpoint
	ActiveProfileIndex     int
	ActiveProfileConnected bool
	ActiveProfileBonded    bool
	ProfilesConnected      [ProfileCount]bool
	ProfilesBonded         [ProfileCount]bool
}

// LayerState is the layer adapter snapshot.
type LayerState struct {
	Index uint8
	Label string
}

// WPMState is the WPM adapter snapshot.
type WPMState struct {
	WPM uint8
}
