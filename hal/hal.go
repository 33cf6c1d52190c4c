package hal

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// DebugLogger is a Logger that can also emit lines only shown when verbose
// logging is enabled.
type DebugLogger interface {
	Logger
	DebugLineString(s string)
}

// Debug writes s through l when l supports verbose output and drops it
// otherwise.
func Debug(l Logger, s string) {
	if d, ok := l.(DebugLogger); ok {
		d.DebugLineString(s)
	}
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatMono1 is 1bpp, MSB first, rows padded to a byte. A set bit
	// is a lit (white) pixel.
	PixelFormatMono1 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook. It is also a
// drivers.Displayer, so anything that draws on TinyGo displays can draw on
// it; Display is the same as Present.
type Framebuffer interface {
	drivers.Displayer
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Clear(lit bool)
	Present() error
}

// KeyCode is a minimal key identifier for non-text keys.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text input arrives as Rune with Code
// KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the display stack and the
// outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Input() Input
	Time() Time
}
