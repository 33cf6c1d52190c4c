// Package status is the peripheral status widget: battery, output, layer and
// WPM readouts painted into three 72x72 canvases laid side by side.
package status

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"lpmview/zmk/display/canvas"
)

const (
	// RootWidth and RootHeight are the size of the widget container.
	RootWidth  = 144
	RootHeight = 72

	middleX = 58
	bottomX = 130
)

// Widget is one status display. Its canvases and State are owned by the
// widget and only touched from the event dispatch context.
type Widget struct {
	obj    *canvas.Object
	top    *canvas.Canvas
	middle *canvas.Canvas
	bottom *canvas.Canvas

	state State

	fg, bg color.RGBA
	font   tinyfont.Fonter
}

// New builds a widget inside parent and appends it to reg. Either may be
// nil: a nil parent makes the widget a root, a nil registry leaves it out
// of event fan-out.
func New(parent *canvas.Object, reg *Registry) *Widget {
	w := &Widget{
		obj:    canvas.NewObject(parent, RootWidth, RootHeight),
		top:    canvas.New(CanvasSize, CanvasSize),
		middle: canvas.New(CanvasSize, CanvasSize),
		bottom: canvas.New(CanvasSize, CanvasSize),
		fg:     canvas.Black,
		bg:     canvas.White,
		font:   &proggy.TinySZ8pt7b,
	}
	w.obj.AddCanvas(w.top, canvas.AlignBottomLeft, 0, 0)
	w.obj.AddCanvas(w.middle, canvas.AlignTopLeft, middleX, 0)
	w.obj.AddCanvas(w.bottom, canvas.AlignTopLeft, bottomX, 0)
	for _, c := range []*canvas.Canvas{w.top, w.middle, w.bottom} {
		c.FillBG(w.bg)
	}
	if reg != nil {
		reg.Add(w)
	}
	return w
}

// Obj returns the widget's root drawable.
func (w *Widget) Obj() *canvas.Object { return w.obj }

// Top, Middle and Bottom expose the canvases in creation order.
func (w *Widget) Top() *canvas.Canvas    { return w.top }
func (w *Widget) Middle() *canvas.Canvas { return w.middle }
func (w *Widget) Bottom() *canvas.Canvas { return w.bottom }

// State returns the cached state the widget last painted.
func (w *Widget) State() State { return w.state }

// SetInverted selects white-on-black (true) or black-on-white drawing. It
// takes effect on the next repaint.
func (w *Widget) SetInverted(inverted bool) {
	w.fg = canvas.Black
	if inverted {
		w.fg = canvas.White
	}
	w.bg = canvas.Invert(w.fg)
}

// SetState replaces the cached state and repaints everything.
func (w *Widget) SetState(s State) {
	w.state = s
	w.Repaint()
}

// Repaint redraws all three canvases from the cached state.
func (w *Widget) Repaint() {
	drawTop(w.top, &w.state, w.style())
	drawMiddle(w.middle, &w.state, w.style())
	drawBottom(w.bottom, &w.state, w.style())
}

func (w *Widget) style() style {
	return style{fg: w.fg, bg: w.bg, font: w.font}
}

// Registry is the ordered set of widgets that receive adapter updates.
type Registry struct {
	widgets []*Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Add appends w unless it is nil or already registered, and reports
// whether it did.
func (r *Registry) Add(w *Widget) bool {
	if w == nil {
		return false
	}
	for _, x := range r.widgets {
		if x == w {
			return false
		}
	}
	r.widgets = append(r.widgets, w)
	return true
}

// Each calls fn for every widget in registration order.
func (r *Registry) Each(fn func(*Widget)) {
	for _, w := range r.widgets {
		fn(w)
	}
}

// Len returns the number of registered widgets.
func (r *Registry) Len() int { return len(r.widgets) }
