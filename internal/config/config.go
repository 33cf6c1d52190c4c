// Package config loads the simulator and device settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	MaxProfiles = 5
	MaxScale    = 8
)

var ErrInvalid = errors.New("invalid config")

type Values struct {
	Display      Display  `toml:"display"`
	Features     Features `toml:"features"`
	Keymap       Keymap   `toml:"keymap"`
	BLE          BLE      `toml:"ble"`
	Battery      Battery  `toml:"battery"`
	Demo         Demo     `toml:"demo"`
	DebugLogging bool     `toml:"debug_logging"`
}

type Display struct {
	Width    int  `toml:"width"`
	Height   int  `toml:"height"`
	Scale    int  `toml:"scale"`
	Inverted bool `toml:"inverted"`
	// Widgets is the number of status widgets stacked on the panel.
	Widgets int `toml:"widgets"`
}

// Features toggles the subsystems the widget reads from. A disabled
// feature behaves as if it were not built into the firmware.
type Features struct {
	Battery bool `toml:"battery"`
	USB     bool `toml:"usb"`
	BLE     bool `toml:"ble"`
	Keymap  bool `toml:"keymap"`
	WPM     bool `toml:"wpm"`
}

type Keymap struct {
	// Layers are the layer display names; an empty name shows "LAYER <n>".
	Layers []string `toml:"layers"`
}

type BLE struct {
	Profiles int `toml:"profiles"`
}

type Battery struct {
	Level int `toml:"level"`
}

type Demo struct {
	Enabled bool `toml:"enabled"`
	StepMS  int  `toml:"step_ms"`
}

// Default returns the built-in settings.
func Default() Values {
	return Values{
		Display: Display{Width: 160, Height: 68, Scale: 4, Widgets: 1},
		Features: Features{
			Battery: true,
			USB:     true,
			BLE:     true,
			Keymap:  true,
			WPM:     true,
		},
		Keymap:  Keymap{Layers: []string{"Base", "Lower", "Raise", ""}},
		BLE:     BLE{Profiles: MaxProfiles},
		Battery: Battery{Level: 80},
		Demo:    Demo{StepMS: 1500},
	}
}

// Load reads path on top of Default. A missing file yields the defaults.
func Load(path string) (Values, error) {
	v := Default()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return v, nil
	} else if err != nil {
		return v, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &v); err != nil {
		return v, fmt.Errorf("config: %s: %w", path, err)
	}
	return v, nil
}

// Decode reads TOML from r into v, rejecting unknown keys, and validates
// the result.
func Decode(r io.Reader, v *Values) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return v.Validate()
}

// Encode writes v as TOML.
func Encode(w io.Writer, v Values) error {
	return toml.NewEncoder(w).Encode(v)
}

func (v Values) Validate() error {
	if v.BLE.Profiles < 1 || v.BLE.Profiles > MaxProfiles {
		return fmt.Errorf("%w: ble.profiles %d not in 1..%d", ErrInvalid, v.BLE.Profiles, MaxProfiles)
	}
	if len(v.Keymap.Layers) == 0 {
		return fmt.Errorf("%w: keymap.layers is empty", ErrInvalid)
	}
	if len(v.Keymap.Layers) > 32 {
		return fmt.Errorf("%w: keymap.layers has %d entries, max 32", ErrInvalid, len(v.Keymap.Layers))
	}
	if v.Display.Scale < 1 || v.Display.Scale > MaxScale {
		return fmt.Errorf("%w: display.scale %d not in 1..%d", ErrInvalid, v.Display.Scale, MaxScale)
	}
	if v.Display.Width < 1 || v.Display.Height < 1 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, v.Display.Width, v.Display.Height)
	}
	if v.Display.Widgets < 1 {
		return fmt.Errorf("%w: display.widgets %d", ErrInvalid, v.Display.Widgets)
	}
	if v.Battery.Level < 0 || v.Battery.Level > 100 {
		return fmt.Errorf("%w: battery.level %d not in 0..100", ErrInvalid, v.Battery.Level)
	}
	if v.Demo.StepMS < 0 {
		return fmt.Errorf("%w: demo.step_ms %d", ErrInvalid, v.Demo.StepMS)
	}
	return nil
}
