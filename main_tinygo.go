//go:build tinygo

package main

import (
	"lpmview/app"
	"lpmview/hal"
	"lpmview/internal/config"
)

func main() {
	cfg := config.Default()
	cfg.Demo.Enabled = true
	app.RunWithConfig(hal.New(), cfg)
}
