package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"lpmview/hal"
)

var (
	panicFont   = &tinyfont.Picopixel
	panicLineH  = int16(7)
	panicAscent = int16(5)
)

// showPanic logs a recovered panic and paints it on the panel. The step
// loop stops updating the screen afterwards so the message stays visible.
func showPanic(h hal.HAL, v any, stack []byte) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("app: panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			hal.Debug(l, line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.Clear(false)

	lines := []string{"lpmview panic:", fmt.Sprint(v)}
	if frame := firstFrame(stack); frame != "" {
		lines = append(lines, frame)
	}

	fg := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	_, advance := tinyfont.LineWidth(panicFont, "0")
	cols := int16(fb.Width()) / max(int16(advance), 1)
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicLineH > int16(fb.Height()) {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(fb, panicFont, 0, y+panicAscent, chunk, fg)
			y += panicLineH
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// firstFrame returns the innermost function below the panic in a
// runtime/debug stack, trimmed of its arguments.
func firstFrame(stack []byte) string {
	lines := strings.Split(string(stack), "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "panic(") || i+2 >= len(lines) {
			continue
		}
		fn := lines[i+2]
		if j := strings.LastIndexByte(fn, '('); j > 0 {
			fn = fn[:j]
		}
		if j := strings.LastIndexByte(fn, '/'); j >= 0 {
			fn = fn[j+1:]
		}
		return fn
	}
	return ""
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
