//go:build !tinygo

package hal

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HostConfig sizes and styles the simulated panel.
type HostConfig struct {
	Width  int
	Height int
	// Debug enables debug-level log lines.
	Debug bool
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// TickDuration is the length of one Time tick (default 1ms).
	TickDuration time.Duration
}

func (c *HostConfig) defaults() {
	if c.Width <= 0 {
		c.Width = 160
	}
	if c.Height <= 0 {
		c.Height = 68
	}
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	if c.TickDuration <= 0 {
		c.TickDuration = time.Millisecond
	}
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	fb     *monoFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg.defaults()
	logger := newHostLogger(cfg.LogOutput, cfg.Debug)
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newMonoFramebuffer(cfg.Width, cfg.Height, nil),
		kbd:    newHostKeyboard(),
		t:      newHostTime(cfg.TickDuration),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *monoFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// hostLogger turns "component: message" lines into structured zerolog
// events.
type hostLogger struct {
	zl zerolog.Logger
}

func newHostLogger(w io.Writer, debug bool) *hostLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	_, tty := w.(*os.File)
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !tty}).
		Level(level).
		With().Timestamp().Logger()
	return &hostLogger{zl: zl}
}

func splitComponent(s string) (component, msg string) {
	c, m, ok := strings.Cut(s, ": ")
	if !ok || c == "" || strings.ContainsAny(c, " \t") {
		return "", s
	}
	return c, m
}

func (l *hostLogger) emit(ev *zerolog.Event, s string) {
	c, m := splitComponent(s)
	if c != "" {
		ev = ev.Str("component", c)
	}
	ev.Msg(m)
}

func (l *hostLogger) WriteLineString(s string) { l.emit(l.zl.Info(), s) }
func (l *hostLogger) WriteLineBytes(b []byte)  { l.emit(l.zl.Info(), string(b)) }
func (l *hostLogger) DebugLineString(s string) { l.emit(l.zl.Debug(), s) }

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		l.logger.DebugLineString("led: HIGH")
	}
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		l.logger.DebugLineString("led: LOW")
	}
	l.on = false
}
