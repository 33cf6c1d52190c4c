// Package transport names the output endpoints a keyboard can send reports to.
package transport

import "fmt"

// Kind is an output transport.
type Kind uint8

const (
	USB Kind = iota
	BLE
)

func (k Kind) String() string {
	switch k {
	case USB:
		return "usb"
	case BLE:
		return "ble"
	default:
		return fmt.Sprintf("transport(%d)", uint8(k))
	}
}

// Endpoint is one concrete output: USB, or BLE on a given profile.
type Endpoint struct {
	Transport       Kind
	BLEProfileIndex int
}

// Equal reports whether two endpoints address the same output. The profile
// index is ignored for USB.
func (e Endpoint) Equal(o Endpoint) bool {
	if e.Transport != o.Transport {
		return false
	}
	return e.Transport != BLE || e.BLEProfileIndex == o.BLEProfileIndex
}

func (e Endpoint) String() string {
	if e.Transport == BLE {
		return fmt.Sprintf("ble:%d", e.BLEProfileIndex)
	}
	return e.Transport.String()
}
