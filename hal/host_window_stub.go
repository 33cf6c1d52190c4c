//go:build !tinygo && !cgo

package hal

import (
	"errors"
	"image/color"
)

// WindowConfig controls the desktop simulator window.
type WindowConfig struct {
	Host  HostConfig
	Scale int
	Lit   color.RGBA
	Unlit color.RGBA
}

func RunWindow(_ WindowConfig, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
