//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	// Hz is the frame rate (default 60).
	Hz int
	// Ticks stops the runner after this many frames; 0 runs until ctx ends.
	Ticks uint64
	// Keys is typed into the keyboard, one rune every KeyInterval.
	Keys        string
	KeyInterval time.Duration
	// Done, when set, receives the framebuffer after the last frame.
	Done func(Framebuffer) error
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.KeyInterval <= 0 {
		cfg.KeyInterval = 100 * time.Millisecond
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	g, ctx := errgroup.WithContext(ctx)
	frames := make(chan struct{})

	g.Go(func() error {
		defer close(frames)
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-t.C:
				h.t.step(now)
				if step != nil {
					if err := step(); err != nil {
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					if cfg.Done != nil {
						return cfg.Done(h.fb)
					}
					return nil
				}
			}
		}
	})

	if cfg.Keys != "" {
		g.Go(func() error {
			t := time.NewTicker(cfg.KeyInterval)
			defer t.Stop()
			for _, r := range cfg.Keys {
				select {
				case <-ctx.Done():
					return nil
				case <-frames:
					return nil
				case <-t.C:
				}
				h.kbd.inject(KeyEvent{Press: true, Rune: r})
			}
			return nil
		})
	}

	return g.Wait()
}
