package canvas

import (
	"image/color"

	"tinygo.org/x/drivers/pixel"
)

var (
	Black = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// mono maps a color to a 1-bit pixel: lit (white) when its luminance is
// above half scale.
func mono(c color.RGBA) pixel.Monochrome {
	lum := (uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114) / 1000
	return pixel.Monochrome(lum > 127)
}

func rgba(p pixel.Monochrome) color.RGBA {
	if p {
		return White
	}
	return Black
}

// Invert returns the opposite 1-bit color of c.
func Invert(c color.RGBA) color.RGBA {
	return rgba(!mono(c))
}
