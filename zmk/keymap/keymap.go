// Package keymap tracks which keymap layers are active and their display
// names.
package keymap

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/jonboulle/clockwork"

	"lpmview/zmk/event"
)

// MaxLayers is the size of the layer state bitmask.
const MaxLayers = 32

// ErrInvalidLayer is returned for a layer outside the keymap.
var ErrInvalidLayer = errors.New("keymap: invalid layer")

// Keymap holds the layer names and the active layer bitmask. Layer 0 is the
// default layer and is always active.
type Keymap struct {
	mu    sync.Mutex
	names []string
	order []uint8 // index -> id
	state uint32
	clock clockwork.Clock
	ev    event.Raiser
}

// New returns a keymap with one layer per name. A nil clock uses the real one.
func New(ev event.Raiser, names []string, clock clockwork.Clock) (*Keymap, error) {
	if len(names) == 0 || len(names) > MaxLayers {
		return nil, fmt.Errorf("keymap: %d layers: %w", len(names), ErrInvalidLayer)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	order := make([]uint8, len(names))
	for i := range order {
		order[i] = uint8(i)
	}
	return &Keymap{
		names: append([]string(nil), names...),
		order: order,
		state: 1,
		clock: clock,
		ev:    ev,
	}, nil
}

// LayerCount returns the number of layers.
func (k *Keymap) LayerCount() int { return len(k.names) }

// LayerState returns the active layer bitmask.
func (k *Keymap) LayerState() uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// LayerActive reports whether layer i is active.
func (k *Keymap) LayerActive(i uint8) bool {
	return i < MaxLayers && k.LayerState()&(1<<i) != 0
}

// HighestLayerActive returns the index of the highest active layer.
func (k *Keymap) HighestLayerActive() uint8 {
	return uint8(bits.Len32(k.LayerState()) - 1)
}

// LayerIndexToID maps a layer index to its stable id.
func (k *Keymap) LayerIndexToID(i uint8) uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()
	if int(i) >= len(k.order) {
		return i
	}
	return k.order[i]
}

// LayerName returns the configured name of layer id, or "" when the layer
// has no name.
func (k *Keymap) LayerName(id uint8) string {
	if int(id) >= len(k.names) {
		return ""
	}
	return k.names[id]
}

// SetLayerOrder replaces the index -> id mapping.
func (k *Keymap) SetLayerOrder(ids []uint8) error {
	if len(ids) != len(k.names) {
		return fmt.Errorf("keymap: order has %d entries, want %d: %w", len(ids), len(k.names), ErrInvalidLayer)
	}
	seen := make([]bool, len(ids))
	for _, id := range ids {
		if int(id) >= len(ids) || seen[id] {
			return fmt.Errorf("keymap: bad layer id %d in order: %w", id, ErrInvalidLayer)
		}
		seen[id] = true
	}
	k.mu.Lock()
	copy(k.order, ids)
	k.mu.Unlock()
	return nil
}

// LayerActivate turns layer i on.
func (k *Keymap) LayerActivate(i uint8) error {
	return k.set(i, true)
}

// LayerDeactivate turns layer i off. The default layer cannot be turned off.
func (k *Keymap) LayerDeactivate(i uint8) error {
	return k.set(i, false)
}

// LayerToggle flips layer i.
func (k *Keymap) LayerToggle(i uint8) error {
	return k.set(i, !k.LayerActive(i))
}

// LayerTo deactivates every layer except the default and i.
func (k *Keymap) LayerTo(i uint8) error {
	if int(i) >= len(k.names) {
		return fmt.Errorf("layer to %d: %w", i, ErrInvalidLayer)
	}
	for l := len(k.names) - 1; l > 0; l-- {
		if uint8(l) == i {
			continue
		}
		if err := k.set(uint8(l), false); err != nil {
			return err
		}
	}
	return k.set(i, true)
}

func (k *Keymap) set(i uint8, on bool) error {
	if int(i) >= len(k.names) {
		return fmt.Errorf("layer %d: %w", i, ErrInvalidLayer)
	}
	if i == 0 && !on {
		return nil
	}
	k.mu.Lock()
	prev := k.state
	if on {
		k.state |= 1 << i
	} else {
		k.state &^= 1 << i
	}
	changed := prev != k.state
	k.mu.Unlock()

	if changed && k.ev != nil {
		_ = k.ev.Raise(event.LayerStateChanged{
			Layer:     i,
			State:     on,
			Timestamp: k.clock.Now().UnixMilli(),
		})
	}
	return nil
}
