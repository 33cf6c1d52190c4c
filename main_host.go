//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"lpmview/app"
	"lpmview/hal"
	"lpmview/internal/config"
)

func main() {
	var (
		configPath string
		headless   bool
		dumpConfig bool
		scale      int
		debug      bool
		hcfg       hal.HeadlessConfig
	)
	flag.StringVar(&configPath, "config", "lpmview.toml", "TOML config file (missing file = defaults).")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&hcfg.Keys, "keys", "", "Keys to type in headless mode, one every -key-interval.")
	flag.DurationVar(&hcfg.KeyInterval, "key-interval", 100*time.Millisecond, "Delay between scripted keys.")
	flag.IntVar(&scale, "scale", 0, "Window scale override (0 = from config).")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging.")
	flag.BoolVar(&dumpConfig, "dump-config", false, "Print the effective config as TOML and exit.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if scale > 0 {
		cfg.Display.Scale = scale
	}
	if debug {
		cfg.DebugLogging = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if dumpConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	host := hal.HostConfig{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Debug:  cfg.DebugLogging,
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if headless {
		hcfg.Host = host
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{Host: host, Scale: cfg.Display.Scale}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
