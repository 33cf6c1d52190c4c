package usb

import (
	"testing"

	"lpmview/zmk/event"
)

type counter struct{ n int }

func (c *counter) Raise(event.Event) error {
	c.n++
	return nil
}

func TestConnState(t *testing.T) {
	c := &counter{}
	u := New(c)
	if u.IsPowered() || u.IsReady() {
		t.Fatalf("new USB reports powered/ready")
	}

	u.SetConnState(event.USBConnPowered)
	if !u.IsPowered() || u.IsReady() {
		t.Fatalf("powered state: IsPowered=%v IsReady=%v", u.IsPowered(), u.IsReady())
	}
	u.SetConnState(event.USBConnPowered)
	if c.n != 1 {
		t.Fatalf("raised %d events, want 1", c.n)
	}

	u.Cycle()
	if got := u.ConnState(); got != event.USBConnHID {
		t.Fatalf("ConnState() = %s, want hid", got)
	}
	u.Cycle()
	if got := u.ConnState(); got != event.USBConnNone {
		t.Fatalf("ConnState() = %s, want none", got)
	}
}
