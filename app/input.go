package app

import (
	"fmt"
	"unicode"

	"lpmview/hal"
	"lpmview/zmk/event"
)

func (s *system) pollInput() {
	in := s.h.Input()
	if in == nil {
		return
	}
	kbd := in.Keyboard()
	if kbd == nil {
		return
	}
	ch := kbd.Events()
	for {
		select {
		case ev := <-ch:
			if ev.Press {
				s.handleKey(ev)
			}
		default:
			return
		}
	}
}

// handleKey maps simulator keys onto subsystem actions:
//
//	1..5      select BLE profile
//	c         connect/disconnect the active profile
//	b         bond the active profile
//	x         clear the active profile
//	u         cycle USB: none, powered, HID
//	t         toggle the preferred endpoint
//	+ -       battery up/down 5%
//	l         next layer
//	arrows    left/right profile, up/down battery
//
// Any other letter, digit or space is typed as a keystroke for WPM.
func (s *system) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyLeft:
		s.bleAction("prev", func() error { return s.ble.PrevProfile() })
		return
	case hal.KeyRight:
		s.bleAction("next", func() error { return s.ble.NextProfile() })
		return
	case hal.KeyUp:
		s.adjustBattery(5)
		return
	case hal.KeyDown:
		s.adjustBattery(-5)
		return
	}

	r := ev.Rune
	switch {
	case r >= '1' && r <= '5':
		i := int(r - '1')
		s.bleAction("select", func() error { return s.ble.SelectProfile(i) })
	case r == 'c':
		s.bleAction("connect", func() error {
			i := s.ble.ActiveProfileIndex()
			return s.ble.SetConnected(i, !s.ble.ActiveProfileIsConnected())
		})
	case r == 'b':
		s.bleAction("bond", func() error {
			i := s.ble.ActiveProfileIndex()
			return s.ble.Bond(i, fmt.Sprintf("peer-%d", i+1))
		})
	case r == 'x':
		s.bleAction("clear", func() error { return s.ble.ClearProfile(s.ble.ActiveProfileIndex()) })
	case r == 'u':
		if s.usb != nil {
			s.usb.Cycle()
		}
	case r == 't':
		s.endpoints.Toggle()
	case r == '+' || r == '=':
		s.adjustBattery(5)
	case r == '-':
		s.adjustBattery(-5)
	case r == 'l':
		s.nextLayer()
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ':
		s.keystroke(uint32(r))
	}
}

func (s *system) bleAction(name string, fn func() error) {
	if s.ble == nil {
		return
	}
	if err := fn(); err != nil {
		s.log.WriteLineString("app: ble " + name + ": " + err.Error())
	}
}

func (s *system) adjustBattery(delta int) {
	if s.battery == nil {
		return
	}
	s.battery.SetStateOfCharge(int(s.battery.StateOfCharge()) + delta)
}

func (s *system) nextLayer() {
	if s.keymap == nil {
		return
	}
	next := (int(s.keymap.HighestLayerActive()) + 1) % s.keymap.LayerCount()
	if err := s.keymap.LayerTo(uint8(next)); err != nil {
		s.log.WriteLineString("app: layer: " + err.Error())
	}
}

// keystroke raises a press and a release for keycode.
func (s *system) keystroke(keycode uint32) {
	now := s.clock.Now().UnixMilli()
	_ = s.events.Raise(event.KeycodeStateChanged{Keycode: keycode, State: true, Timestamp: now})
	_ = s.events.Raise(event.KeycodeStateChanged{Keycode: keycode, State: false, Timestamp: now})
}
