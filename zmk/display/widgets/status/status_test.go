package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"lpmview/zmk/display/canvas"
	"lpmview/zmk/event"
	"lpmview/zmk/transport"
)

// painted reports whether the pre-rotation pixel (x, y) was drawn in the
// widget's foreground color.
func painted(w *Widget, c *canvas.Canvas, x, y int16) bool {
	return c.At(y+1, CanvasSize-1-x) == w.fg
}

func measureFill(w *Widget) int16 {
	var n int16
	for x := int16(2); x < 28; x++ {
		if painted(w, w.top, x, 8) {
			n++
		}
	}
	return n
}

func TestBatteryFillMonotonicAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := uint8(rapid.IntRange(0, 100).Draw(t, "a"))
		b := uint8(rapid.IntRange(int(a), 100).Draw(t, "b"))
		w := New(nil, nil)

		w.SetState(State{Battery: a})
		fa := measureFill(w)
		w.SetState(State{Battery: b})
		fb := measureFill(w)

		if fa > fb {
			t.Fatalf("fill(%d)=%d > fill(%d)=%d", a, fa, b, fb)
		}
		if fb != batteryFillWidth(b) || fb > 25 {
			t.Fatalf("fill(%d)=%d", b, fb)
		}
		// The frame's inner edge stays background.
		if painted(w, w.top, 27, 8) {
			t.Fatalf("fill overran the frame at level %d", b)
		}
		if !painted(w, w.top, 0, 8) || !painted(w, w.top, 28, 8) {
			t.Fatalf("frame missing at level %d", b)
		}
	})
}

func TestChargingBolt(t *testing.T) {
	w := New(nil, nil)
	w.SetState(State{Battery: 0})
	plain := append([]byte(nil), w.top.Buffer()...)
	w.SetState(State{Battery: 0, Charging: true})
	assert.NotEqual(t, plain, w.top.Buffer())
}

func selectedSlots(w *Widget) []int {
	var out []int
	for i, off := range circleOffsets {
		if painted(w, w.middle, off[0]-7, off[1]) {
			out = append(out, i)
		}
	}
	return out
}

func TestExactlyOneSelectedSlot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s State
		s.ActiveProfileIndex = rapid.IntRange(0, ProfileCount-1).Draw(t, "active")
		for i := range s.ProfilesConnected {
			s.ProfilesConnected[i] = rapid.Bool().Draw(t, "connected")
			s.ProfilesBonded[i] = rapid.Bool().Draw(t, "bonded")
		}
		w := New(nil, nil)
		w.SetState(s)
		got := selectedSlots(w)
		if len(got) != 1 || got[0] != s.ActiveProfileIndex {
			t.Fatalf("selected=%v, want [%d]", got, s.ActiveProfileIndex)
		}
	})
}

func TestProfileArcs(t *testing.T) {
	w := New(nil, nil)
	var s State
	s.ActiveProfileIndex = 4
	s.ProfilesConnected[0] = true
	s.ProfilesBonded[1] = true
	w.SetState(s)

	// Slot 0 connected: solid ring, so both a segment pixel and a gap pixel
	// are drawn.
	cx, cy := circleOffsets[0][0], circleOffsets[0][1]
	assert.True(t, painted(w, w.middle, cx+11, cy+4), "solid ring segment")
	assert.True(t, painted(w, w.middle, cx+8, cy+8), "solid ring at 45 degrees")

	// Slot 1 bonded but disconnected: dashed ring with a gap at 45 degrees.
	cx, cy = circleOffsets[1][0], circleOffsets[1][1]
	assert.True(t, painted(w, w.middle, cx+11, cy+4), "dashed ring segment")
	assert.False(t, painted(w, w.middle, cx+8, cy+8), "dashed ring gap")

	// Slot 2 open: no ring.
	cx, cy = circleOffsets[2][0], circleOffsets[2][1]
	assert.False(t, painted(w, w.middle, cx+11, cy+4), "open slot ring")
	assert.False(t, painted(w, w.middle, cx+8, cy+8), "open slot ring")
}

func renderText(w *Widget, text string) []byte {
	c := canvas.New(CanvasSize, CanvasSize)
	var dsc canvas.LabelDsc
	canvas.InitLabelDsc(&dsc, w.fg, w.font, canvas.AlignCenter)
	c.FillBG(w.bg)
	c.DrawText(0, 0, CanvasSize, &dsc, text)
	rotateCanvas(c, w.bg)
	return c.Buffer()
}

func TestLayerFallback(t *testing.T) {
	w := New(nil, nil)
	w.SetState(State{LayerIndex: 3})
	assert.Equal(t, renderText(w, "LAYER 3"), w.bottom.Buffer())

	w.SetState(State{LayerIndex: 3, LayerLabel: "Nav"})
	assert.Equal(t, renderText(w, "Nav"), w.bottom.Buffer())
}

func TestLayerText(t *testing.T) {
	assert.Equal(t, "LAYER 0", layerText(&State{}))
	assert.Equal(t, "LAYER 12", layerText(&State{LayerIndex: 12}))
	assert.Equal(t, "Sym", layerText(&State{LayerIndex: 12, LayerLabel: "Sym"}))
}

func TestRepaintIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := State{
			Battery:            uint8(rapid.IntRange(0, 100).Draw(t, "battery")),
			Charging:           rapid.Bool().Draw(t, "charging"),
			ActiveProfileIndex: rapid.IntRange(0, ProfileCount-1).Draw(t, "active"),
			LayerIndex:         uint8(rapid.IntRange(0, 31).Draw(t, "layer")),
			WPM:                uint8(rapid.IntRange(0, 255).Draw(t, "wpm")),
		}
		if rapid.Bool().Draw(t, "usb") {
			s.SelectedEndpoint = transport.Endpoint{Transport: transport.USB}
		} else {
			s.SelectedEndpoint = transport.Endpoint{Transport: transport.BLE}
		}
		w := New(nil, nil)
		w.SetState(s)
		first := [][]byte{
			append([]byte(nil), w.top.Buffer()...),
			append([]byte(nil), w.middle.Buffer()...),
			append([]byte(nil), w.bottom.Buffer()...),
		}
		w.Repaint()
		for i, c := range []*canvas.Canvas{w.top, w.middle, w.bottom} {
			if string(first[i]) != string(c.Buffer()) {
				t.Fatalf("canvas %d changed on repaint", i)
			}
		}
	})
}

func TestNewLayout(t *testing.T) {
	root := canvas.NewObject(nil, RootWidth, RootHeight)
	reg := NewRegistry()
	w := New(root, reg)

	require.Equal(t, 1, reg.Len())
	assert.False(t, reg.Add(w), "duplicate add")
	assert.Equal(t, 1, reg.Len())

	obj := w.Obj()
	ow, oh := obj.Size()
	assert.Equal(t, [2]int16{RootWidth, RootHeight}, [2]int16{ow, oh})
	for i, want := range [][2]int16{{0, 0}, {middleX, 0}, {bottomX, 0}} {
		x, y, ok := obj.ChildPos(i)
		require.True(t, ok)
		assert.Equal(t, want, [2]int16{x, y}, "canvas %d", i)
	}
	assert.Same(t, w.Top(), obj.Canvas(0))
	assert.Same(t, w.Bottom(), obj.Canvas(2))
	assert.Equal(t, State{}, w.State())
}

func TestInvertedSwapsColors(t *testing.T) {
	w := New(nil, nil)
	w.SetState(State{Battery: 50})
	normal := append([]byte(nil), w.top.Buffer()...)
	w.SetInverted(true)
	w.Repaint()
	inv := w.top.Buffer()
	for i := range normal {
		if normal[i]^inv[i] != 0xff {
			t.Fatalf("byte %d: %08b vs %08b", i, normal[i], inv[i])
		}
	}
}

type fakeSources struct {
	soc       uint8
	powered   bool
	active    int
	connected [ProfileCount]bool
	open      [ProfileCount]bool
	endpoint  transport.Endpoint
	layer     uint8
	names     []string
	wpm       uint8
}

func (f *fakeSources) StateOfCharge() uint8           { return f.soc }
func (f *fakeSources) IsPowered() bool                { return f.powered }
func (f *fakeSources) ProfileCount() int              { return ProfileCount }
func (f *fakeSources) ActiveProfileIndex() int        { return f.active }
func (f *fakeSources) ActiveProfileIsConnected() bool { return f.connected[f.active] }
func (f *fakeSources) ActiveProfileIsOpen() bool      { return f.open[f.active] }
func (f *fakeSources) ProfileIsConnected(i int) bool  { return f.connected[i] }
func (f *fakeSources) ProfileIsOpen(i int) bool       { return f.open[i] }
func (f *fakeSources) Selected() transport.Endpoint   { return f.endpoint }
func (f *fakeSources) HighestLayerActive() uint8      { return f.layer }
func (f *fakeSources) LayerIndexToID(i uint8) uint8   { return i }
func (f *fakeSources) State() uint8                   { return f.wpm }

func (f *fakeSources) LayerName(id uint8) string {
	if int(id) < len(f.names) {
		return f.names[id]
	}
	return ""
}

func (f *fakeSources) all() Sources {
	return Sources{Battery: f, USB: f, BLE: f, Endpoints: f, Keymap: f, WPM: f}
}

func TestBatteryExtractPrefersEvent(t *testing.T) {
	f := &fakeSources{soc: 40, powered: true}
	a := BatteryAdapter{Battery: f, USB: f}
	assert.Equal(t, BatteryState{Level: 40, USBPresent: true}, a.Extract(nil))
	assert.Equal(t, BatteryState{Level: 90, USBPresent: true},
		a.Extract(event.BatteryStateChanged{StateOfCharge: 90}))
	assert.Equal(t, BatteryState{}, BatteryAdapter{}.Extract(nil))
}

func TestOutputExtract(t *testing.T) {
	f := &fakeSources{active: 2, endpoint: transport.Endpoint{Transport: transport.BLE, BLEProfileIndex: 2}}
	for i := range f.open {
		f.open[i] = true
	}
	f.connected[2] = true
	f.open[2] = false
	f.open[3] = false

	s := OutputAdapter{BLE: f, Endpoints: f}.Extract(nil)
	assert.Equal(t, 2, s.ActiveProfileIndex)
	assert.True(t, s.ActiveProfileConnected)
	assert.True(t, s.ActiveProfileBonded)
	assert.Equal(t, [ProfileCount]bool{false, false, true, false, false}, s.ProfilesConnected)
	assert.Equal(t, [ProfileCount]bool{false, false, true, true, false}, s.ProfilesBonded)
	assert.Equal(t, f.endpoint, s.SelectedEndpoint)

	assert.Equal(t, OutputState{}, OutputAdapter{}.Extract(nil))
}

func TestLayerExtract(t *testing.T) {
	f := &fakeSources{layer: 1, names: []string{"Base", "Lower"}}
	assert.Equal(t, LayerState{Index: 1, Label: "Lower"}, LayerAdapter{Keymap: f}.Extract(nil))
	f.layer = 4
	assert.Equal(t, LayerState{Index: 4}, LayerAdapter{Keymap: f}.Extract(nil))
}

type recorder[S any] struct {
	calls *[]string
	tag   string
	value S
}

func (r recorder[S]) Extract(event.Event) S { return r.value }

func (r recorder[S]) Apply(w *Widget, _ S) {
	*r.calls = append(*r.calls, r.tag+":"+layerText(&w.state))
}

func TestFanOutOrderAndFiltering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "widgets")
		m := event.NewManager(8, nil)
		reg := NewRegistry()
		var want []string
		for i := 0; i < n; i++ {
			w := New(nil, reg)
			w.state.LayerIndex = uint8(i)
			want = append(want, "wpm:"+layerText(&w.state))
		}

		var calls []string
		Listen[int](m, reg, "wpm", recorder[int]{calls: &calls, tag: "wpm"}, event.ClassWPMStateChanged)
		Listen[int](m, reg, "battery", recorder[int]{calls: &calls, tag: "battery"}, event.ClassBatteryStateChanged)

		m.RaiseNow(event.WPMStateChanged{State: 10})
		if len(calls) != len(want) {
			t.Fatalf("calls=%v, want %v", calls, want)
		}
		for i := range want {
			if calls[i] != want[i] {
				t.Fatalf("calls=%v, want %v", calls, want)
			}
		}
	})
}

func TestSubscribeRoutesEvents(t *testing.T) {
	f := &fakeSources{soc: 70, names: []string{"Base", "Nav"}}
	for i := range f.open {
		f.open[i] = true
	}
	m := event.NewManager(8, nil)
	reg := NewRegistry()
	a, b := New(nil, reg), New(nil, reg)
	l := Subscribe(m, reg, f.all())
	l.Init()

	for _, w := range []*Widget{a, b} {
		assert.Equal(t, uint8(70), w.State().Battery)
		assert.Equal(t, "Base", w.State().LayerLabel)
	}

	f.layer = 1
	m.RaiseNow(event.LayerStateChanged{Layer: 1, State: true})
	f.wpm = 33
	m.RaiseNow(event.WPMStateChanged{State: 33})
	m.RaiseNow(event.BatteryStateChanged{StateOfCharge: 12})
	f.powered = true
	m.RaiseNow(event.USBConnStateChanged{State: event.USBConnPowered})

	for _, w := range []*Widget{a, b} {
		s := w.State()
		assert.Equal(t, uint8(1), s.LayerIndex)
		assert.Equal(t, "Nav", s.LayerLabel)
		assert.Equal(t, uint8(33), s.WPM)
		// The USB event re-reads the polled level.
		assert.Equal(t, uint8(70), s.Battery)
		assert.True(t, s.Charging)
	}
}

func TestSubscribeWithoutOptionalFeatures(t *testing.T) {
	m := event.NewManager(8, nil)
	reg := NewRegistry()
	w := New(nil, reg)
	l := Subscribe(m, reg, Sources{})
	l.Init()

	assert.Empty(t, m.Subscribers(event.ClassBLEActiveProfileChanged))
	assert.Empty(t, m.Subscribers(event.ClassUSBConnStateChanged))
	assert.Equal(t, []string{"widget_battery_status"}, m.Subscribers(event.ClassBatteryStateChanged))

	m.RaiseNow(event.BatteryStateChanged{StateOfCharge: 55})
	assert.Equal(t, uint8(55), w.State().Battery)
	assert.Equal(t, "", w.State().LayerLabel)
}

func TestNoSelectedSlotWithoutBLE(t *testing.T) {
	m := event.NewManager(8, nil)
	reg := NewRegistry()
	w := New(nil, reg)
	f := &fakeSources{soc: 30}
	Subscribe(m, reg, Sources{Battery: f}).Init()

	assert.Equal(t, NoProfile, w.State().ActiveProfileIndex)
	assert.Empty(t, selectedSlots(w))

	want := New(nil, nil)
	want.SetState(State{ActiveProfileIndex: NoProfile})
	assert.Equal(t, want.Middle().Buffer(), w.Middle().Buffer())
}

func TestOutputIconZeroState(t *testing.T) {
	assert.Same(t, usbIcon, outputIcon(&State{}))

	s := State{SelectedEndpoint: transport.Endpoint{Transport: transport.BLE}}
	assert.Same(t, openIcon, outputIcon(&s))
	s.ActiveProfileBonded = true
	assert.Same(t, disconnectedIcon, outputIcon(&s))
	s.ActiveProfileConnected = true
	assert.Same(t, connectedIcon, outputIcon(&s))
}
