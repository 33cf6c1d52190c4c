package status

import (
	"lpmview/zmk/display"
	"lpmview/zmk/event"
)

// Adapter turns an event into a snapshot and merges a snapshot into one
// widget.
type Adapter[S any] interface {
	Extract(ev event.Event) S
	Apply(w *Widget, s S)
}

// BatteryAdapter feeds the charge bar and charging bolt.
type BatteryAdapter struct {
	Battery Battery
	USB     USB
}

func (a BatteryAdapter) Extract(ev event.Event) BatteryState {
	var s BatteryState
	if e := event.AsBatteryStateChanged(ev); e != nil {
		s.Level = e.StateOfCharge
	} else if a.Battery != nil {
		s.Level = a.Battery.StateOfCharge()
	}
	if a.USB != nil {
		s.USBPresent = a.USB.IsPowered()
	}
	return s
}

func (a BatteryAdapter) Apply(w *Widget, s BatteryState) {
	if a.USB != nil {
		w.state.Charging = s.USBPresent
	}
	w.state.Battery = s.Level
	drawTop(w.top, &w.state, w.style())
}

// OutputAdapter feeds the connectivity glyph and the profile slots.
type OutputAdapter struct {
	BLE       BLE
	Endpoints Endpoints
}

func (a OutputAdapter) Extract(event.Event) OutputState {
	var s OutputState
	if a.Endpoints != nil {
		s.SelectedEndpoint = a.Endpoints.Selected()
	}
	if a.BLE == nil {
		s.ActiveProfileIndex = NoProfile
		return s
	}
	s.ActiveProfileIndex = a.BLE.ActiveProfileIndex()
	s.ActiveProfileConnected = a.BLE.ActiveProfileIsConnected()
	s.ActiveProfileBonded = !a.BLE.ActiveProfileIsOpen()
	for i := 0; i < min(ProfileCount, a.BLE.ProfileCount()); i++ {
		s.ProfilesConnected[i] = a.BLE.ProfileIsConnected(i)
		s.ProfilesBonded[i] = !a.BLE.ProfileIsOpen(i)
	}
	return s
}

func (OutputAdapter) Apply(w *Widget, s OutputState) {
	w.state.SelectedEndpoint = s.SelectedEndpoint
	w.state.ActiveProfileIndex = s.ActiveProfileIndex
	w.state.ActiveProfileConnected = s.ActiveProfileConnected
	w.state.ActiveProfileBonded = s.ActiveProfileBonded
	w.state.ProfilesConnected = s.ProfilesConnected
	w.state.ProfilesBonded = s.ProfilesBonded
	st := w.style()
	drawTop(w.top, &w.state, st)
	drawMiddle(w.middle, &w.state, st)
}

// LayerAdapter feeds the layer name row.
type LayerAdapter struct {
	Keymap Keymap
}

func (a LayerAdapter) Extract(event.Event) LayerState {
	if a.Keymap == nil {
		return LayerState{}
	}
	i := a.Keymap.HighestLayerActive()
	return LayerState{Index: i, Label: a.Keymap.LayerName(a.Keymap.LayerIndexToID(i))}
}

func (LayerAdapter) Apply(w *Widget, s LayerState) {
	w.state.LayerIndex = s.Index
	w.state.LayerLabel = s.Label
	drawBottom(w.bottom, &w.state, w.style())
}

// WPMAdapter feeds the WPM readout.
type WPMAdapter struct {
	WPM WPM
}

func (a WPMAdapter) Extract(ev event.Event) WPMState {
	if e := event.AsWPMStateChanged(ev); e != nil {
		return WPMState{WPM: e.State}
	}
	if a.WPM == nil {
		return WPMState{}
	}
	return WPMState{WPM: a.WPM.State()}
}

func (WPMAdapter) Apply(w *Widget, s WPMState) {
	w.state.WPM = s.WPM
	drawTop(w.top, &w.state, w.style())
}

// Listen subscribes a to classes and fans every snapshot out to the widgets
// of reg in registration order.
func Listen[S any](sub event.Subscriber, reg *Registry, name string, a Adapter[S], classes ...event.Class) *display.Listener[S] {
	return display.Listen(sub, name, a.Extract, func(s S) {
		reg.Each(func(w *Widget) { a.Apply(w, s) })
	}, classes...)
}

// Listeners are the installed adapters of one registry.
type Listeners struct {
	Battery *display.Listener[BatteryState]
	Output  *display.Listener[OutputState]
	Layer   *display.Listener[LayerState]
	WPM     *display.Listener[WPMState]
}

// Init pushes the current state of every feature to the registry.
func (l *Listeners) Init() {
	l.Battery.Init()
	l.Output.Init()
	l.Layer.Init()
	l.WPM.Init()
}

// Subscribe installs the four adapters for reg on sub.
func Subscribe(sub event.Subscriber, reg *Registry, src Sources) *Listeners {
	batteryClasses := []event.Class{event.ClassBatteryStateChanged}
	outputClasses := []event.Class{event.ClassEndpointChanged}
	if src.USB != nil {
		batteryClasses = append(batteryClasses, event.ClassUSBConnStateChanged)
		outputClasses = append(outputClasses, event.ClassUSBConnStateChanged)
	}
	if src.BLE != nil {
		outputClasses = append(outputClasses, event.ClassBLEActiveProfileChanged)
	}

	return &Listeners{
		Battery: Listen[BatteryState](sub, reg, "widget_battery_status",
			BatteryAdapter{Battery: src.Battery, USB: src.USB}, batteryClasses...),
		Output: Listen[OutputState](sub, reg, "widget_output_status",
			OutputAdapter{BLE: src.BLE, Endpoints: src.Endpoints}, outputClasses...),
		Layer: Listen[LayerState](sub, reg, "widget_layer_status",
			LayerAdapter{Keymap: src.Keymap}, event.ClassLayerStateChanged),
		WPM: Listen[WPMState](sub, reg, "widget_wpm_status",
			WPMAdapter{WPM: src.WPM}, event.ClassWPMStateChanged),
	}
}
