package status

import (
	"image/color"
	"strconv"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"lpmview/zmk/display/canvas"
	"lpmview/zmk/transport"
)

type style struct {
	fg, bg color.RGBA
	font   tinyfont.Fonter
}

const (
	pivotX = CanvasSize / 2
	pivotY = CanvasSize/2 - 1

	arcRadius      = 13
	arcWidth       = 2
	selectedRadius = 9
	dashSegments   = 8
	dashGap        = 10

	tickCount = 10
	tickStep  = 7
	tickY     = 50
)

var circleOffsets = [ProfileCount][2]int16{
	{13, 13}, {55, 13}, {34, 34}, {13, 55}, {55, 55},
}

// batteryFillWidth is the width of the charge bar for a 0..100 level.
func batteryFillWidth(level uint8) int16 {
	if level > 100 {
		level = 100
	}
	return (int16(level) + 2) / 4
}

func drawBattery(c *canvas.Canvas, s *State, st style) {
	var fg, bg canvas.RectDsc
	canvas.InitRectDsc(&fg, st.fg)
	canvas.InitRectDsc(&bg, st.bg)

	c.DrawRect(0, 2, 29, 12, &fg)
	c.DrawRect(1, 3, 27, 10, &bg)
	c.DrawRect(2, 4, batteryFillWidth(s.Battery), 8, &fg)
	c.DrawRect(30, 5, 3, 6, &fg)
	c.DrawRect(31, 6, 1, 4, &bg)

	if s.Charging {
		c.DrawImage(9, -1, recolor(boltIcon, st.bg, st.fg))
	}
}

// outputIcon picks the connectivity glyph for the top row.
// outputIcon picks the connectivity glyph. transport.USB is the zero Kind, so
// a zero State (no endpoints source) shows the USB glyph.
func outputIcon(s *State) *canvas.Image {
	switch {
	case s.SelectedEndpoint.Transport == transport.USB:
		return usbIcon
	case s.ActiveProfileConnected:
		return connectedIcon
	case s.ActiveProfileBonded:
		return disconnectedIcon
	default:
		return openIcon
	}
}

func drawTop(c *canvas.Canvas, s *State, st style) {
	var wpmLabel canvas.LabelDsc
	canvas.InitLabelDsc(&wpmLabel, st.fg, st.font, canvas.AlignRight)
	var line canvas.LineDsc
	canvas.InitLineDsc(&line, st.fg, 1)
	var fg, bg canvas.RectDsc
	canvas.InitRectDsc(&fg, st.fg)
	canvas.InitRectDsc(&bg, st.bg)

	c.FillBG(st.bg)
	drawBattery(c, s, st)

	icon := outputIcon(s)
	c.DrawImage(CanvasSize-icon.Width, 0, recolor(icon, st.bg, st.fg))

	c.DrawRect(0, 21, 70, 32, &fg)
	c.DrawRect(1, 22, 66, 30, &bg)
	c.DrawText(42, 42, 24, &wpmLabel, strconv.Itoa(int(s.WPM)))

	var points [tickCount]canvas.Point
	for i := range points {
		points[i] = canvas.Point{X: int16(2 + i*tickStep), Y: tickY}
	}
	c.DrawLine(points[:], &line)

	rotateCanvas(c, st.bg)
}

func drawMiddle(c *canvas.Canvas, s *State, st style) {
	var arc, filled canvas.ArcDsc
	canvas.InitArcDsc(&arc, st.fg, arcWidth)
	canvas.InitArcDsc(&filled, st.fg, selectedRadius)
	var label, selectedLabel canvas.LabelDsc
	canvas.InitLabelDsc(&label, st.fg, st.font, canvas.AlignCenter)
	canvas.InitLabelDsc(&selectedLabel, st.bg, st.font, canvas.AlignCenter)

	c.FillBG(st.bg)
	half := (canvas.Ascent(st.font) + 1) / 2

	for i, off := range circleOffsets {
		x, y := off[0], off[1]
		switch {
		case s.ProfilesConnected[i]:
			c.DrawArc(x, y, arcRadius, 0, 360, &arc)
		case s.ProfilesBonded[i]:
			for j := int32(0); j < dashSegments; j++ {
				c.DrawArc(x, y, arcRadius, 360/dashSegments*j+dashGap, 360/dashSegments*(j+1)-dashGap, &arc)
			}
		}

		dsc := &label
		if i == s.ActiveProfileIndex {
			c.DrawArc(x, y, selectedRadius, 0, 359, &filled)
			dsc = &selectedLabel
		}
		c.DrawText(x-8, y-half, 16, dsc, strconv.Itoa(i+1))
	}

	rotateCanvas(c, st.bg)
}

// layerText is the configured layer name, or "LAYER <index>" without one.
func layerText(s *State) string {
	if s.LayerLabel != "" {
		return s.LayerLabel
	}
	return "LAYER " + strconv.Itoa(int(s.LayerIndex))
}

func drawBottom(c *canvas.Canvas, s *State, st style) {
	var label canvas.LabelDsc
	canvas.InitLabelDsc(&label, st.fg, st.font, canvas.AlignCenter)

	c.FillBG(st.bg)
	c.DrawText(0, 0, CanvasSize, &label, layerText(s))

	rotateCanvas(c, st.bg)
}

// rotateCanvas turns the painted canvas a quarter turn counterclockwise so
// it reads correctly on the panel's mounting.
func rotateCanvas(c *canvas.Canvas, bg color.RGBA) {
	img := c.Snapshot()
	c.FillBG(bg)
	c.Transform(img, drivers.Rotation270, pivotX, pivotY)
}
