// Package display glues event delivery to widget redraws.
package display

import "lpmview/zmk/event"

// Listener turns events of a set of classes into state snapshots and hands
// them to an update function. A nil event asks extract for the current
// state, which is what Init does.
type Listener[S any] struct {
	name    string
	extract func(event.Event) S
	update  func(S)
}

// Listen subscribes a listener named name to classes on sub.
func Listen[S any](sub event.Subscriber, name string, extract func(event.Event) S, update func(S), classes ...event.Class) *Listener[S] {
	l := &Listener[S]{name: name, extract: extract, update: update}
	sub.Subscribe(name, l.handle, classes...)
	return l
}

func (l *Listener[S]) Name() string { return l.name }

// Init pushes the current state once.
func (l *Listener[S]) Init() {
	l.update(l.extract(nil))
}

func (l *Listener[S]) handle(ev event.Event) error {
	l.update(l.extract(ev))
	return nil
}
