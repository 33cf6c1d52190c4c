package canvas

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Align anchors a child to a corner of its parent.
type Align uint8

const (
	AlignTopLeft Align = iota
	AlignBottomLeft
	AlignTopRight
	AlignBottomRight
)

// Object is a positioned container of canvases and nested objects.
type Object struct {
	w, h     int16
	x, y     int16
	children []*child
}

type child struct {
	obj    *Object
	canvas *Canvas
	align  Align
	dx, dy int16
}

// NewObject creates a w x h container. With a non-nil parent it is added as
// a top-left aligned child.
func NewObject(parent *Object, w, h int16) *Object {
	o := &Object{w: w, h: h}
	if parent != nil {
		parent.children = append(parent.children, &child{obj: o})
	}
	return o
}

func (o *Object) Size() (int16, int16) { return o.w, o.h }

// AddCanvas places c inside o. Later children paint over earlier ones.
func (o *Object) AddCanvas(c *Canvas, align Align, dx, dy int16) {
	o.children = append(o.children, &child{canvas: c, align: align, dx: dx, dy: dy})
}

// Align positions a nested object relative to its parent.
func (o *Object) Align(parent *Object, align Align, dx, dy int16) {
	for _, ch := range parent.children {
		if ch.obj == o {
			ch.align, ch.dx, ch.dy = align, dx, dy
		}
	}
}

// Canvas returns the i-th canvas child, or nil.
func (o *Object) Canvas(i int) *Canvas {
	n := 0
	for _, ch := range o.children {
		if ch.canvas == nil {
			continue
		}
		if n == i {
			return ch.canvas
		}
		n++
	}
	return nil
}

// ChildPos reports where the i-th canvas child lands inside o.
func (o *Object) ChildPos(i int) (x, y int16, ok bool) {
	n := 0
	for _, ch := range o.children {
		if ch.canvas == nil {
			continue
		}
		if n == i {
			x, y = o.place(ch)
			return x, y, true
		}
		n++
	}
	return 0, 0, false
}

func (o *Object) place(ch *child) (int16, int16) {
	var w, h int16
	if ch.canvas != nil {
		w, h = ch.canvas.Size()
	} else {
		w, h = ch.obj.Size()
	}
	x, y := ch.dx, ch.dy
	switch ch.align {
	case AlignBottomLeft:
		y += o.h - h
	case AlignTopRight:
		x += o.w - w
	case AlignBottomRight:
		x += o.w - w
		y += o.h - h
	}
	return x, y
}

// Render composites the tree onto dst with o at (0, 0). Pixels outside o
// are not touched.
func (o *Object) Render(dst drivers.Displayer) {
	o.render(dst, 0, 0, 0, 0, o.w, o.h)
}

func (o *Object) render(dst drivers.Displayer, ox, oy, cx0, cy0, cx1, cy1 int16) {
	cx0, cy0 = max(cx0, ox), max(cy0, oy)
	cx1, cy1 = min(cx1, ox+o.w), min(cy1, oy+o.h)
	for _, ch := range o.children {
		x, y := o.place(ch)
		x, y = x+ox, y+oy
		if ch.obj != nil {
			ch.obj.render(dst, x, y, cx0, cy0, cx1, cy1)
			continue
		}
		w, h := ch.canvas.Size()
		for py := max(y, cy0); py < min(y+h, cy1); py++ {
			for px := max(x, cx0); px < min(x+w, cx1); px++ {
				dst.SetPixel(px, py, ch.canvas.At(px-x, py-y))
			}
		}
	}
}

// Fill paints the area of o on dst with col, typically before Render.
func (o *Object) Fill(dst drivers.Displayer, col color.RGBA) {
	for y := int16(0); y < o.h; y++ {
		for x := int16(0); x < o.w; x++ {
			dst.SetPixel(x, y, col)
		}
	}
}
