//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/sharpmem"
)

type tinyGoHAL struct {
	logger *serialLogger
	led    *pinLED
	fb     Framebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a nice!nano (nRF52840) HAL driving a nice!view panel.
//
// Panel: Sharp LS011B7DH03 on SPI0, SCK P0.20, SDO P0.17, CS P0.06.
// Logs go to the USB CDC console.
func New() HAL {
	logger := &serialLogger{out: machine.Serial}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	h := &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		kbd:    &stubKeyboard{},
		t:      newTinyGoTime(),
	}

	panel, err := initNiceView()
	if err != nil {
		logger.WriteLineString("hal: display init failed: " + err.Error())
		h.fb = newMonoFramebuffer(int(sharpmem.ConfigLS011B7DH03.Width), int(sharpmem.ConfigLS011B7DH03.Height), nil)
		return h
	}
	w, ht := panel.Size()
	h.fb = newMonoFramebuffer(int(w), int(ht), func(f *monoFramebuffer) error {
		return flushSharp(panel, f)
	})
	return h
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time       { return h.t }

func initNiceView() (*sharpmem.Device, error) {
	machine.P0_06.Configure(machine.PinConfig{Mode: machine.PinOutput})
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 2000000,
		SCK:       machine.P0_20,
		SDO:       machine.P0_17,
		SDI:       machine.P0_25,
		Mode:      0,
		LSBFirst:  true,
	})
	if err != nil {
		return nil, err
	}
	d := sharpmem.New(machine.SPI0, machine.P0_06)
	d.Configure(sharpmem.ConfigLS011B7DH03)
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return &d, nil
}

var (
	sharpWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	sharpBlack = color.RGBA{A: 0xff}
)

func flushSharp(d *sharpmem.Device, f *monoFramebuffer) error {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := sharpBlack
			if f.Lit(x, y) {
				c = sharpWhite
			}
			d.SetPixel(int16(x), int16(y), c)
		}
	}
	return d.Display()
}
