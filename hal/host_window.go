//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lpmview/internal/buildinfo"
)

// WindowConfig controls the desktop simulator window.
type WindowConfig struct {
	Host  HostConfig
	Scale int
	// Lit and Unlit are the on-screen colors of set and clear pixels.
	Lit   color.RGBA
	Unlit color.RGBA
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	if cfg.Lit == (color.RGBA{}) && cfg.Unlit == (color.RGBA{}) {
		cfg.Lit = color.RGBA{R: 0xd8, G: 0xdc, B: 0xd0, A: 0xff}
		cfg.Unlit = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	g := &hostGame{h: h, step: step, lit: cfg.Lit, unlit: cfg.Unlit}
	ebiten.SetWindowTitle("lpmview (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error

	lit, unlit color.RGBA
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step(time.Now())
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.scratch)

	dst := g.img.Pix
	for y := 0; y < fb.height; y++ {
		row := g.scratch[y*fb.stride:]
		for x := 0; x < fb.width; x++ {
			c := g.unlit
			if row[x/8]&(0x80>>(uint(x)%8)) != 0 {
				c = g.lit
			}
			j := (y*fb.width + x) * 4
			dst[j+0] = c.R
			dst[j+1] = c.G
			dst[j+2] = c.B
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
