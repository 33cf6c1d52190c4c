//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSplitComponent(t *testing.T) {
	cases := []struct {
		in, c, m string
	}{
		{"event: queue full", "event", "queue full"},
		{"no component here", "", "no component here"},
		{"two words: x", "", "two words: x"},
		{": empty", "", ": empty"},
	}
	for _, tc := range cases {
		c, m := splitComponent(tc.in)
		if c != tc.c || m != tc.m {
			t.Fatalf("splitComponent(%q)=%q,%q want %q,%q", tc.in, c, m, tc.c, tc.m)
		}
	}
}

func TestHostLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newHostLogger(&buf, false)
	l.WriteLineString("app: started")
	Debug(l, "app: hidden")
	out := buf.String()
	if !strings.Contains(out, "started") || !strings.Contains(out, "component=app") {
		t.Fatalf("info line missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %q", out)
	}

	buf.Reset()
	l = newHostLogger(&buf, true)
	Debug(l, "app: shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestHostTimeAccumulates(t *testing.T) {
	ht := newHostTime(time.Millisecond)
	start := time.Unix(0, 0)
	ht.step(start)
	ht.step(start.Add(2500 * time.Microsecond))
	ht.step(start.Add(3 * time.Millisecond))

	var got []uint64
	for len(ht.Ticks()) > 0 {
		got = append(got, <-ht.Ticks())
	}
	if len(got) != 4 || got[3] != 4 {
		t.Fatalf("ticks=%v, want 1..4", got)
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var done Framebuffer
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error {
			steps++
			h.Display().Framebuffer().Clear(true)
			return nil
		}
	}, HeadlessConfig{
		Host:  HostConfig{Width: 16, Height: 8, LogOutput: io.Discard},
		Hz:    1000,
		Ticks: 3,
		Done: func(fb Framebuffer) error {
			done = fb
			return nil
		},
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps=%d, want 3", steps)
	}
	if done == nil || done.Width() != 16 || done.Buffer()[0] != 0xff {
		t.Fatalf("final framebuffer not delivered")
	}
}

func TestRunHeadlessPropagatesStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Host: HostConfig{LogOutput: io.Discard}, Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}
}

func TestRunHeadlessTypesKeys(t *testing.T) {
	var got []rune
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := RunHeadless(ctx, func(h HAL) func() error {
		kbd := h.Input().Keyboard()
		return func() error {
			for {
				select {
				case ev := <-kbd.Events():
					got = append(got, ev.Rune)
					if len(got) == 3 {
						return errStop
					}
				default:
					return nil
				}
			}
		}
	}, HeadlessConfig{
		Host:        HostConfig{LogOutput: io.Discard},
		Hz:          1000,
		Keys:        "c1b",
		KeyInterval: time.Millisecond,
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("err=%v", err)
	}
	if string(got) != "c1b" {
		t.Fatalf("keys=%q", string(got))
	}
}

var errStop = errors.New("stop")
