package canvas

import (
	"fmt"
	"image/color"
	"strings"
)

// Image is a 1-bit indexed image. Rows are packed MSB first and padded to a
// whole byte. Palette maps index 0 and index 1 to colors; a nil Mask makes
// every pixel opaque, otherwise a clear mask bit leaves the destination
// untouched.
type Image struct {
	Width   int16
	Height  int16
	Data    []byte
	Mask    []byte
	Palette [2]color.RGBA
}

// NewImage allocates an opaque image with all pixels at index 0.
func NewImage(w, h int16, palette [2]color.RGBA) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{
		Width:   w,
		Height:  h,
		Data:    make([]byte, stride(w)*int(h)),
		Palette: palette,
	}
}

func stride(w int16) int { return (int(w) + 7) / 8 }

func (img *Image) in(x, y int16) bool {
	return img != nil && x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// Index reports the palette index at (x, y) and whether it is opaque.
// Out of range coordinates are transparent.
func (img *Image) Index(x, y int16) (idx uint8, opaque bool) {
	if !img.in(x, y) {
		return 0, false
	}
	off := int(y)*stride(img.Width) + int(x)/8
	bit := byte(0x80) >> (uint(x) % 8)
	if img.Mask != nil && img.Mask[off]&bit == 0 {
		return 0, false
	}
	if img.Data[off]&bit != 0 {
		return 1, true
	}
	return 0, true
}

// At returns the color at (x, y) and whether it is opaque.
func (img *Image) At(x, y int16) (color.RGBA, bool) {
	idx, ok := img.Index(x, y)
	if !ok {
		return color.RGBA{}, false
	}
	return img.Palette[idx], true
}

// SetIndex sets the palette index at (x, y) and marks it opaque.
func (img *Image) SetIndex(x, y int16, idx uint8) {
	if !img.in(x, y) {
		return
	}
	off := int(y)*stride(img.Width) + int(x)/8
	bit := byte(0x80) >> (uint(x) % 8)
	if idx != 0 {
		img.Data[off] |= bit
	} else {
		img.Data[off] &^= bit
	}
	if img.Mask != nil {
		img.Mask[off] |= bit
	}
}

// ParseImage builds an image from ASCII art. '#' is index 1, '.' is index 0
// and ' ' is transparent. Leading and trailing blank lines are ignored; all
// rows must have the same width.
func ParseImage(art string, palette [2]color.RGBA) (*Image, error) {
	lines := strings.Split(strings.Trim(art, "\n"), "\n")
	w := len(lines[0])
	for i, l := range lines {
		if len(l) != w {
			return nil, fmt.Errorf("canvas: image row %d has width %d, want %d", i, len(l), w)
		}
	}
	img := NewImage(int16(w), int16(len(lines)), palette)
	transparent := strings.Contains(art, " ")
	if transparent {
		img.Mask = make([]byte, len(img.Data))
	}
	for y, l := range lines {
		for x, r := range l {
			switch r {
			case '#':
				img.SetIndex(int16(x), int16(y), 1)
			case '.':
				img.SetIndex(int16(x), int16(y), 0)
			case ' ':
			default:
				return nil, fmt.Errorf("canvas: image row %d: unexpected %q", y, r)
			}
		}
	}
	return img, nil
}

// MustParseImage is like ParseImage but panics on malformed art.
func MustParseImage(art string, palette [2]color.RGBA) *Image {
	img, err := ParseImage(art, palette)
	if err != nil {
		panic(err)
	}
	return img
}
