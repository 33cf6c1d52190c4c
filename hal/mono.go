package hal

import (
	"image/color"
	"sync"
)

// monoFramebuffer is the in-memory PixelFormatMono1 buffer shared by every
// platform. Present is delegated to an optional flush hook.
type monoFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	flush  func(*monoFramebuffer) error
}

func newMonoFramebuffer(width, height int, flush func(*monoFramebuffer) error) *monoFramebuffer {
	stride := (width + 7) / 8
	return &monoFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		flush:  flush,
	}
}

func (f *monoFramebuffer) Width() int          { return f.width }
func (f *monoFramebuffer) Height() int         { return f.height }
func (f *monoFramebuffer) Format() PixelFormat { return PixelFormatMono1 }
func (f *monoFramebuffer) StrideBytes() int    { return f.stride }
func (f *monoFramebuffer) Buffer() []byte      { return f.buf }

func (f *monoFramebuffer) Size() (x, y int16) { return int16(f.width), int16(f.height) }

func (f *monoFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= f.width || int(y) >= f.height {
		return
	}
	lit := (uint32(c.R)*299+uint32(c.G)*587+uint32(c.B)*114)/1000 > 127
	i := int(y)*f.stride + int(x)/8
	bit := byte(0x80) >> (uint(x) % 8)
	f.mu.Lock()
	if lit {
		f.buf[i] |= bit
	} else {
		f.buf[i] &^= bit
	}
	f.mu.Unlock()
}

// Lit reports whether (x, y) is set.
func (f *monoFramebuffer) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.buf[y*f.stride+x/8]&(0x80>>(uint(x)%8)) != 0
}

func (f *monoFramebuffer) Clear(lit bool) {
	var v byte
	if lit {
		v = 0xff
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.buf {
		f.buf[i] = v
	}
}

func (f *monoFramebuffer) Present() error {
	if f.flush == nil {
		return nil
	}
	return f.flush(f)
}

func (f *monoFramebuffer) Display() error { return f.Present() }

func (f *monoFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}
