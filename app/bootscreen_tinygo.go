//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"machine"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"lpmview/hal"
	"lpmview/internal/buildinfo"
)

// bootScreen shows the boot stage on the panel and echoes it to the USB
// console, so a board that hangs before the first frame still says where.
func bootScreen(h hal.HAL, msg string) {
	line := "boot: " + msg
	if l := h.Logger(); l != nil {
		l.WriteLineString(line)
	}
	if usb := machine.USBCDC; usb != nil {
		_, _ = usb.Write([]byte(line + "\r\n"))
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
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(fb, font, 0, 12, "lpmview "+buildinfo.Short(), fg)
	tinyfont.WriteLine(fb, font, 0, 28, msg, fg)
	_ = fb.Present()
}
