// Command lpmrender paints one status widget from a TOML state file and
// writes it as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	xdraw "golang.org/x/image/draw"

	"lpmview/zmk/display/canvas"
	"lpmview/zmk/display/widgets/status"
	"lpmview/zmk/transport"
)

// stateFile is the on-disk form of status.State.
type stateFile struct {
	Battery  uint8 `toml:"battery"`
	Charging bool  `toml:"charging"`

	// Endpoint is "usb" or "ble"; the BLE profile is Active.
	Endpoint  string `toml:"endpoint"`
	Active    int    `toml:"active"`
	Connected []int  `toml:"connected"`
	Bonded    []int  `toml:"bonded"`

	Layer      uint8  `toml:"layer"`
	LayerLabel string `toml:"layer_label"`

	WPM uint8 `toml:"wpm"`
}

func main() {
	var (
		statePath = flag.String("state", "", "TOML state file (empty = all defaults).")
		outPath   = flag.String("o", "status.png", "Output PNG.")
		scale     = flag.Int("scale", 4, "Integer upscale factor.")
		inverted  = flag.Bool("inverted", false, "Draw white on black.")
	)
	flag.Parse()

	st := status.State{}
	if *statePath != "" {
		f, err := os.Open(*statePath)
		if err != nil {
			fatalf("state: %v", err)
		}
		st, err = readState(f)
		_ = f.Close()
		if err != nil {
			fatalf("state: %v", err)
		}
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fatalf("output: %v", err)
	}
	if err := writePNG(out, render(st, *inverted), *scale); err != nil {
		_ = out.Close()
		fatalf("encode: %v", err)
	}
	if err := out.Close(); err != nil {
		fatalf("output: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func readState(r io.Reader) (status.State, error) {
	var sf stateFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return status.State{}, err
	}
	return sf.toState()
}

func (sf stateFile) toState() (status.State, error) {
	if sf.Active < 0 || sf.Active >= status.ProfileCount {
		return status.State{}, fmt.Errorf("active profile %d out of range", sf.Active)
	}
	st := status.State{
		Battery:            sf.Battery,
		Charging:           sf.Charging,
		ActiveProfileIndex: sf.Active,
		LayerIndex:         sf.Layer,
		LayerLabel:         sf.LayerLabel,
		WPM:                sf.WPM,
	}
	switch strings.ToLower(sf.Endpoint) {
	case "", "usb":
		st.SelectedEndpoint = transport.Endpoint{Transport: transport.USB}
	case "ble":
		st.SelectedEndpoint = transport.Endpoint{Transport: transport.BLE, BLEProfileIndex: sf.Active}
	default:
		return status.State{}, fmt.Errorf("unknown endpoint %q", sf.Endpoint)
	}
	for _, set := range []struct {
		idx []int
		dst *[status.ProfileCount]bool
	}{{sf.Connected, &st.ProfilesConnected}, {sf.Bonded, &st.ProfilesBonded}} {
		for _, i := range set.idx {
			if i < 0 || i >= status.ProfileCount {
				return status.State{}, fmt.Errorf("profile %d out of range", i)
			}
			set.dst[i] = true
		}
	}
	st.ActiveProfileConnected = st.ProfilesConnected[sf.Active]
	st.ActiveProfileBonded = st.ProfilesBonded[sf.Active]
	return st, nil
}

// render paints a detached widget and returns its root area as a gray image.
func render(st status.State, inverted bool) *image.Gray {
	w := status.New(nil, nil)
	w.SetInverted(inverted)
	w.SetState(st)

	dst := canvas.New(status.RootWidth, status.RootHeight)
	bg := canvas.White
	if inverted {
		bg = canvas.Black
	}
	dst.FillBG(bg)
	w.Obj().Render(dst)

	img := image.NewGray(image.Rect(0, 0, status.RootWidth, status.RootHeight))
	for y := int16(0); y < status.RootHeight; y++ {
		for x := int16(0); x < status.RootWidth; x++ {
			img.Set(int(x), int(y), dst.At(x, y))
		}
	}
	return img
}

func writePNG(w io.Writer, src *image.Gray, scale int) error {
	if scale < 1 {
		return fmt.Errorf("scale %d must be positive", scale)
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return png.Encode(w, dst)
}
