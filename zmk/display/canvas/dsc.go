package canvas

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// TextAlign positions a label inside its box.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// LabelDsc describes how text is drawn.
type LabelDsc struct {
	Color color.RGBA
	Font  tinyfont.Fonter
	Align TextAlign
}

// RectDsc describes a filled rectangle.
type RectDsc struct {
	BgColor color.RGBA
}

// LineDsc describes a polyline stroke.
type LineDsc struct {
	Color color.RGBA
	Width uint8
}

// ArcDsc describes an arc stroke. Width is measured inwards from the radius,
// so an arc whose width is at least its radius is a filled pie slice.
type ArcDsc struct {
	Color color.RGBA
	Width uint8
}

func InitLabelDsc(dsc *LabelDsc, c color.RGBA, font tinyfont.Fonter, align TextAlign) {
	*dsc = LabelDsc{Color: c, Font: font, Align: align}
}

func InitRectDsc(dsc *RectDsc, bg color.RGBA) {
	*dsc = RectDsc{BgColor: bg}
}

func InitLineDsc(dsc *LineDsc, c color.RGBA, width uint8) {
	*dsc = LineDsc{Color: c, Width: width}
}

func InitArcDsc(dsc *ArcDsc, c color.RGBA, width uint8) {
	*dsc = ArcDsc{Color: c, Width: width}
}
