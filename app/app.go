package app

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jonboulle/clockwork"

	"lpmview/hal"
	"lpmview/internal/buildinfo"
	"lpmview/internal/config"
	"lpmview/kernel"
	"lpmview/zmk/battery"
	"lpmview/zmk/ble"
	"lpmview/zmk/display/canvas"
	"lpmview/zmk/display/widgets/status"
	"lpmview/zmk/endpoints"
	"lpmview/zmk/event"
	"lpmview/zmk/keymap"
	"lpmview/zmk/usb"
	"lpmview/zmk/wpm"
)

const eventQueueDepth = 64

type system struct {
	h   hal.HAL
	log hal.Logger
	cfg config.Values

	k      *kernel.System
	clock  *clockwork.FakeClock
	epoch  time.Time
	events *event.Manager

	battery   *battery.Battery
	usb       *usb.USB
	ble       *ble.BLE
	endpoints *endpoints.Endpoints
	keymap    *keymap.Keymap
	wpm       *wpm.Tracker

	root      *canvas.Object
	reg       *status.Registry
	widgets   []*status.Widget
	listeners *status.Listeners

	demo     *demo
	dirty    bool
	panicked bool
}

// New initializes the display stack with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// Run starts the display stack and drives it forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, config.Default())
}

func RunWithConfig(h hal.HAL, cfg config.Values) {
	bootScreen(h, "init")
	step := NewWithConfig(h, cfg)
	bootScreen(h, "running")
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("app: " + err.Error())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// NewWithConfig builds the subsystems, widgets and listeners described by
// cfg and returns the per-frame step.
func NewWithConfig(h hal.HAL, cfg config.Values) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		h.Logger().WriteLineString("app: " + err.Error())
		return func() error { return err }
	}
	return s.step
}

func newSystem(h hal.HAL, cfg config.Values) (*system, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &system{
		h:     h,
		log:   h.Logger(),
		cfg:   cfg,
		k:     kernel.NewSystem(),
		clock: clockwork.NewFakeClock(),
		dirty: true,
	}
	s.epoch = s.clock.Now()
	s.events = event.NewManager(eventQueueDepth, s.log)

	src, err := s.newSubsystems()
	if err != nil {
		return nil, err
	}

	fb := h.Display().Framebuffer()
	w, ht := fb.Size()
	s.root = canvas.NewObject(nil, w, ht)
	s.reg = status.NewRegistry()
	for i := 0; i < cfg.Display.Widgets; i++ {
		wd := status.New(s.root, s.reg)
		wd.SetInverted(cfg.Display.Inverted)
		wd.Obj().Align(s.root, canvas.AlignTopLeft, 0, int16(i*status.RootHeight))
		s.widgets = append(s.widgets, wd)
	}
	s.listeners = status.Subscribe(s.events, s.reg, src)
	s.listeners.Init()

	if cfg.Demo.Enabled {
		s.demo = newDemo(s, time.Duration(cfg.Demo.StepMS)*time.Millisecond)
	}

	s.log.WriteLineString(fmt.Sprintf("app: lpmview %s, %d widget(s), panel %dx%d", buildinfo.Short(), len(s.widgets), w, ht))
	return s, nil
}

// newSubsystems creates the enabled features. Disabled ones stay nil in
// both the system and the returned sources.
func (s *system) newSubsystems() (status.Sources, error) {
	var src status.Sources
	f := s.cfg.Features

	if f.Battery {
		s.battery = battery.New(s.events, uint8(s.cfg.Battery.Level))
		src.Battery = s.battery
	}
	var usbSrc endpoints.USB
	if f.USB {
		s.usb = usb.New(s.events)
		src.USB = s.usb
		usbSrc = s.usb
	}
	var bleSrc endpoints.BLE
	if f.BLE {
		s.ble = ble.New(s.events, s.cfg.BLE.Profiles)
		src.BLE = s.ble
		bleSrc = s.ble
	}
	s.endpoints = endpoints.New(s.events, usbSrc, bleSrc)
	s.endpoints.Subscribe(s.events)
	src.Endpoints = s.endpoints

	if f.Keymap {
		km, err := keymap.New(s.events, s.cfg.Keymap.Layers, s.clock)
		if err != nil {
			return src, fmt.Errorf("keymap: %w", err)
		}
		s.keymap = km
		src.Keymap = km
	}
	if f.WPM {
		s.wpm = wpm.New(s.events, s.clock)
		s.wpm.Subscribe(s.events)
		s.wpm.Start()
		src.WPM = s.wpm
	}
	return src, nil
}

func (s *system) step() (err error) {
	if s.panicked {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.panicked = true
			showPanic(s.h, r, debug.Stack())
		}
	}()

	s.pollTicks()
	s.pollInput()
	s.advanceClock()
	if s.demo != nil {
		s.demo.poll(s.k.Elapsed())
	}
	if s.events.Dispatch() > 0 {
		s.dirty = true
	}
	s.updateLED()
	return s.render()
}

func (s *system) pollTicks() {
	ch := s.h.Time().Ticks()
	for {
		select {
		case seq := <-ch:
			s.k.TickTo(seq)
		default:
			return
		}
	}
}

// advanceClock moves the subsystem clock up to the kernel timebase and lets
// the WPM tracker sample.
func (s *system) advanceClock() {
	target := s.epoch.Add(s.k.Elapsed())
	if d := target.Sub(s.clock.Now()); d > 0 {
		s.clock.Advance(d)
	}
	if s.wpm != nil {
		s.wpm.Poll()
	}
}

func (s *system) updateLED() {
	led := s.h.LED()
	if led == nil {
		return
	}
	if s.usb != nil && s.usb.IsPowered() {
		led.High()
	} else {
		led.Low()
	}
}

func (s *system) render() error {
	if !s.dirty {
		return nil
	}
	s.dirty = false
	fb := s.h.Display().Framebuffer()
	bg := canvas.White
	if s.cfg.Display.Inverted {
		bg = canvas.Black
	}
	s.root.Fill(fb, bg)
	s.root.Render(fb)
	if err := fb.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
