package app

import (
	"time"

	"lpmview/zmk/event"
	"lpmview/zmk/transport"
)

// demo replays a fixed tour of widget states, one scene per interval.
type demo struct {
	s        *system
	interval time.Duration
	next     time.Duration
	scene    int
	scenes   []func(*system)
}

func newDemo(s *system, interval time.Duration) *demo {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	return &demo{s: s, interval: interval, scenes: demoScenes}
}

var demoScenes = []func(*system){
	func(s *system) {
		if s.usb != nil {
			s.usb.SetConnState(event.USBConnPowered)
		}
	},
	func(s *system) {
		if s.usb != nil {
			s.usb.SetConnState(event.USBConnHID)
		}
	},
	func(s *system) {
		if s.ble != nil {
			_ = s.ble.Bond(0, "peer-1")
			_ = s.ble.SetConnected(0, true)
			_ = s.ble.Bond(1, "peer-2")
		}
	},
	func(s *system) { s.endpoints.SetPreferredTransport(transport.BLE) },
	func(s *system) {
		for i := 0; i < 40; i++ {
			s.keystroke(uint32('a' + i%26))
		}
	},
	func(s *system) { s.nextLayer() },
	func(s *system) {
		if s.ble != nil {
			_ = s.ble.SelectProfile(1)
		}
	},
	func(s *system) {
		if s.battery != nil {
			s.battery.SetStateOfCharge(15)
		}
		s.nextLayer()
	},
	func(s *system) {
		if s.ble != nil {
			_ = s.ble.SelectProfile(2)
			_ = s.ble.ClearProfile(1)
		}
		s.nextLayer()
	},
	func(s *system) {
		if s.usb != nil {
			s.usb.SetConnState(event.USBConnNone)
		}
		if s.battery != nil {
			s.battery.SetStateOfCharge(s.cfg.Battery.Level)
		}
		if s.ble != nil {
			_ = s.ble.ClearProfile(0)
			_ = s.ble.SelectProfile(0)
		}
		s.nextLayer()
		s.endpoints.SetPreferredTransport(transport.USB)
	},
}

// poll plays every scene that is due at elapsed.
func (d *demo) poll(elapsed time.Duration) {
	for elapsed >= d.next {
		d.scenes[d.scene](d.s)
		d.scene = (d.scene + 1) % len(d.scenes)
		d.next += d.interval
	}
}
