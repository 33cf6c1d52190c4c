package event

import (
	"errors"
	"strings"
	"testing"

	"lpmview/zmk/transport"
)

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

func TestManagerDeliversOnlySubscribedClasses(t *testing.T) {
	m := NewManager(8, nil)

	var got []string
	m.Subscribe("battery", func(ev Event) error {
		got = append(got, "battery:"+ev.Class().String())
		return nil
	}, ClassBatteryStateChanged, ClassUSBConnStateChanged)
	m.Subscribe("layer", func(ev Event) error {
		got = append(got, "layer:"+ev.Class().String())
		return nil
	}, ClassLayerStateChanged)

	if err := m.Raise(BatteryStateChanged{StateOfCharge: 50}); err != nil {
		t.Fatalf("Raise() err = %v", err)
	}
	if err := m.Raise(LayerStateChanged{Layer: 1, State: true}); err != nil {
		t.Fatalf("Raise() err = %v", err)
	}
	if err := m.Raise(WPMStateChanged{State: 10}); err != nil {
		t.Fatalf("Raise() err = %v", err)
	}

	if n := m.Dispatch(); n != 3 {
		t.Fatalf("Dispatch() = %d, want 3", n)
	}
	want := []string{"battery:battery_state_changed", "layer:layer_state_changed"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
}

func TestManagerSubscriptionOrder(t *testing.T) {
	m := NewManager(4, nil)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		m.Subscribe("l", func(Event) error {
			order = append(order, i)
			return nil
		}, ClassWPMStateChanged)
	}
	m.RaiseNow(WPMStateChanged{})
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("order = %v, want [0 1 2]", order)
	}
	if names := m.Subscribers(ClassWPMStateChanged); len(names) != 3 {
		t.Fatalf("Subscribers() = %v, want 3 names", names)
	}
}

func TestManagerHandledStopsPropagation(t *testing.T) {
	m := NewManager(4, nil)
	second := false
	m.Subscribe("first", func(Event) error { return ErrHandled }, ClassEndpointChanged)
	m.Subscribe("second", func(Event) error {
		second = true
		return nil
	}, ClassEndpointChanged)

	m.RaiseNow(EndpointChanged{Endpoint: transport.Endpoint{Transport: transport.USB}})
	if second {
		t.Fatalf("second listener ran after ErrHandled")
	}
}

func TestManagerLogsListenerErrors(t *testing.T) {
	log := &lineLog{}
	m := NewManager(4, log)
	m.Subscribe("broken", func(Event) error { return errors.New("boom") }, ClassWPMStateChanged)
	ran := false
	m.Subscribe("next", func(Event) error {
		ran = true
		return nil
	}, ClassWPMStateChanged)

	m.RaiseNow(WPMStateChanged{})
	if !ran {
		t.Fatalf("listener after a failing one did not run")
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "broken: boom") {
		t.Fatalf("log = %v, want one line about broken listener", log.lines)
	}
}

func TestManagerQueueFull(t *testing.T) {
	m := NewManager(2, nil)
	if err := m.Raise(WPMStateChanged{}); err != nil {
		t.Fatal(err)
	}
	if err := m.Raise(WPMStateChanged{}); err != nil {
		t.Fatal(err)
	}
	if err := m.Raise(WPMStateChanged{}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Raise() err = %v, want ErrQueueFull", err)
	}
	if got := m.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	m.Dispatch()
	dispatched, dropped := m.Stats()
	if dispatched != 2 || dropped != 1 {
		t.Fatalf("Stats() = %d, %d, want 2, 1", dispatched, dropped)
	}
}

func TestAsHelpers(t *testing.T) {
	var ev Event = BatteryStateChanged{StateOfCharge: 42}
	if b := AsBatteryStateChanged(ev); b == nil || b.StateOfCharge != 42 {
		t.Fatalf("AsBatteryStateChanged() = %v", b)
	}
	if AsLayerStateChanged(ev) != nil {
		t.Fatalf("AsLayerStateChanged() on battery event is not nil")
	}
	if AsBatteryStateChanged(nil) != nil {
		t.Fatalf("AsBatteryStateChanged(nil) is not nil")
	}
	if k := AsKeycodeStateChanged(&KeycodeStateChanged{Keycode: 4}); k == nil || k.Keycode != 4 {
		t.Fatalf("AsKeycodeStateChanged() = %v", k)
	}
}
