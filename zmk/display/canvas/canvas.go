package canvas

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pixel"
	"tinygo.org/x/tinyfont"
)

// Point is a polyline vertex.
type Point struct {
	X, Y int16
}

// Canvas is a fixed-size 1-bit drawing surface.
type Canvas struct {
	img  pixel.Image[pixel.Monochrome]
	w, h int16
}

var _ drivers.Displayer = (*Canvas)(nil)

// New allocates a w x h canvas filled with black.
func New(w, h int16) *Canvas {
	if w <= 0 || h <= 0 {
		panic("canvas: invalid size")
	}
	return &Canvas{img: pixel.NewImage[pixel.Monochrome](int(w), int(h)), w: w, h: h}
}

func (c *Canvas) Size() (x, y int16) { return c.w, c.h }

// SetPixel sets one pixel; coordinates outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.img.Set(int(x), int(y), mono(col))
}

// Display is a no-op; a canvas is only ever composited by Object.Render.
func (c *Canvas) Display() error { return nil }

// Pixel reports whether (x, y) is lit. Out of range reads are unlit.
func (c *Canvas) Pixel(x, y int16) bool {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return false
	}
	return bool(c.img.Get(int(x), int(y)))
}

// At returns the color at (x, y).
func (c *Canvas) At(x, y int16) color.RGBA {
	return rgba(pixel.Monochrome(c.Pixel(x, y)))
}

// Buffer exposes the packed pixel storage.
func (c *Canvas) Buffer() []byte { return c.img.RawBuffer() }

// FillBG paints the whole canvas with col.
func (c *Canvas) FillBG(col color.RGBA) {
	m := mono(col)
	// FillSolidColor only writes whole bytes.
	if int(c.w)*int(c.h)%8 == 0 {
		c.img.FillSolidColor(m)
		return
	}
	for y := 0; y < int(c.h); y++ {
		for x := 0; x < int(c.w); x++ {
			c.img.Set(x, y, m)
		}
	}
}

// DrawRect fills the w x h rectangle at (x, y).
func (c *Canvas) DrawRect(x, y, w, h int16, dsc *RectDsc) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.w), min(y+h, c.h)
	v := mono(dsc.BgColor)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.img.Set(int(px), int(py), v)
		}
	}
}

// DrawLine strokes the polyline through points.
func (c *Canvas) DrawLine(points []Point, dsc *LineDsc) {
	if len(points) == 1 {
		c.brush(points[0].X, points[0].Y, dsc)
		return
	}
	for i := 1; i < len(points); i++ {
		c.segment(points[i-1], points[i], dsc)
	}
}

func (c *Canvas) segment(a, b Point, dsc *LineDsc) {
	x0, y0, x1, y1 := int(a.X), int(a.Y), int(b.X), int(b.Y)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.brush(int16(x0), int16(y0), dsc)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) brush(x, y int16, dsc *LineDsc) {
	w := int16(max(dsc.Width, 1))
	off := (w - 1) / 2
	for py := y - off; py < y-off+w; py++ {
		for px := x - off; px < x-off+w; px++ {
			c.SetPixel(px, py, dsc.Color)
		}
	}
}

// DrawArc strokes the arc of radius r centred on (cx, cy) from start to end
// degrees. 0 degrees points right and angles grow clockwise. The stroke
// covers radii in (r-Width, r]; a width of at least r fills the sector.
func (c *Canvas) DrawArc(cx, cy, r int16, start, end int32, dsc *ArcDsc) {
	if r <= 0 {
		return
	}
	inner := int32(r) - int32(dsc.Width)
	outer2 := int32(r) * int32(r)
	inner2 := inner * inner
	full := end-start >= 360 || start-end >= 360
	start, end = normDeg(start), normDeg(end)
	v := mono(dsc.Color)
	for dy := -r; dy <= r; dy++ {
		py := cy + dy
		if py < 0 || py >= c.h {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			px := cx + dx
			if px < 0 || px >= c.w {
				continue
			}
			d2 := int32(dx)*int32(dx) + int32(dy)*int32(dy)
			if d2 > outer2 || (inner > 0 && d2 <= inner2) {
				continue
			}
			if !full && !(dx == 0 && dy == 0) && !angleIn(pointDeg(dx, dy), start, end) {
				continue
			}
			c.img.Set(int(px), int(py), v)
		}
	}
}

func normDeg(a int32) int32 {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

func pointDeg(dx, dy int16) int32 {
	a := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
	return normDeg(int32(math.Round(a)))
}

func angleIn(a, start, end int32) bool {
	if start <= end {
		return a >= start && a <= end
	}
	return a >= start || a <= end
}

// DrawText writes a single line of text in a box maxW pixels wide whose top
// edge is y. The text is aligned inside the box and clipped to it.
func (c *Canvas) DrawText(x, y, maxW int16, dsc *LabelDsc, text string) {
	if dsc.Font == nil || text == "" || maxW <= 0 {
		return
	}
	_, w := tinyfont.LineWidth(dsc.Font, text)
	tx := x
	switch dsc.Align {
	case AlignCenter:
		tx = x + (maxW-int16(w))/2
	case AlignRight:
		tx = x + maxW - int16(w)
	}
	clip := &clipped{c: c, x0: x, x1: x + maxW}
	tinyfont.WriteLine(clip, dsc.Font, tx, y+Ascent(dsc.Font), text, dsc.Color)
}

// Ascent is the distance from the top of a line to its baseline.
func Ascent(f tinyfont.Fonter) int16 {
	var a int16
	for _, r := range "0AMg" {
		if off := -int16(f.GetGlyph(r).Info().YOffset); off > a {
			a = off
		}
	}
	return a
}

type clipped struct {
	c      *Canvas
	x0, x1 int16
}

func (d *clipped) Size() (int16, int16) { return d.c.Size() }
func (d *clipped) Display() error       { return nil }

func (d *clipped) SetPixel(x, y int16, col color.RGBA) {
	if x < d.x0 || x >= d.x1 {
		return
	}
	d.c.SetPixel(x, y, col)
}

// DrawImage blits img with its top-left corner at (x, y).
func (c *Canvas) DrawImage(x, y int16, img *Image) {
	for iy := int16(0); iy < img.Height; iy++ {
		for ix := int16(0); ix < img.Width; ix++ {
			if col, ok := img.At(ix, iy); ok {
				c.SetPixel(x+ix, y+iy, col)
			}
		}
	}
}

// Snapshot copies the canvas into an opaque image (index 1 is lit).
func (c *Canvas) Snapshot() *Image {
	img := NewImage(c.w, c.h, [2]color.RGBA{Black, White})
	for y := int16(0); y < c.h; y++ {
		for x := int16(0); x < c.w; x++ {
			if c.Pixel(x, y) {
				img.SetIndex(x, y, 1)
			}
		}
	}
	return img
}

// Transform draws src rotated clockwise by rot around (pivotX, pivotY).
// Destination pixels that map outside src are left unchanged.
func (c *Canvas) Transform(src *Image, rot drivers.Rotation, pivotX, pivotY int16) {
	cos, sin := rotation(rot)
	for y := int16(0); y < c.h; y++ {
		for x := int16(0); x < c.w; x++ {
			dx, dy := x-pivotX, y-pivotY
			sx := pivotX + dx*cos + dy*sin
			sy := pivotY - dx*sin + dy*cos
			if col, ok := src.At(sx, sy); ok {
				c.img.Set(int(x), int(y), mono(col))
			}
		}
	}
}

func rotation(rot drivers.Rotation) (cos, sin int16) {
	switch rot % 4 {
	case drivers.Rotation90:
		return 0, 1
	case drivers.Rotation180:
		return -1, 0
	case drivers.Rotation270:
		return 0, -1
	default:
		return 1, 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
