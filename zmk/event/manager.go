package event

import (
	"errors"
	"fmt"
	"sync/atomic"

	"lpmview/kernel"
)

var (
	// ErrQueueFull is returned by Raise when the pending queue has no room.
	ErrQueueFull = errors.New("event: queue full")

	// ErrHandled may be returned by a handler to stop delivery of the event
	// to the remaining subscribers.
	ErrHandled = errors.New("event: handled")
)

// Handler is invoked once per matching event on the dispatch context.
type Handler func(Event) error

// Raiser publishes events. Subsystems only need this half of the Manager.
type Raiser interface {
	Raise(Event) error
}

// Subscriber registers handlers.
type Subscriber interface {
	Subscribe(name string, h Handler, classes ...Class)
}

// Logger receives dispatch diagnostics. hal.Logger satisfies it.
type Logger interface {
	WriteLineString(s string)
}

type listener struct {
	name string
	h    Handler
}

// Manager queues raised events and delivers them to subscribers in
// subscription order. Raise may be called from any goroutine; Dispatch and
// RaiseNow must only be called from the single dispatch goroutine.
type Manager struct {
	queue *kernel.Mailbox[Event]
	subs  [classCount][]listener
	log   Logger

	dispatched atomic.Uint64
	dropped    atomic.Uint64
}

// NewManager creates a manager with a queue of the given depth.
func NewManager(depth int, log Logger) *Manager {
	return &Manager{
		queue: kernel.NewMailbox[Event](depth),
		log:   log,
	}
}

// Subscribe adds h for each of the given classes. Subscriptions are expected
// to happen during bring-up, before events flow.
func (m *Manager) Subscribe(name string, h Handler, classes ...Class) {
	for _, c := range classes {
		if c == ClassUnknown || c >= classCount {
			continue
		}
		m.subs[c] = append(m.subs[c], listener{name: name, h: h})
	}
}

// Subscribers returns the listener names subscribed to c, in order.
func (m *Manager) Subscribers(c Class) []string {
	if c >= classCount {
		return nil
	}
	names := make([]string, 0, len(m.subs[c]))
	for _, l := range m.subs[c] {
		names = append(names, l.name)
	}
	return names
}

// Raise queues ev for delivery on the next Dispatch.
func (m *Manager) Raise(ev Event) error {
	if ev == nil {
		return nil
	}
	if !m.queue.TrySend(ev) {
		m.dropped.Add(1)
		m.logf("event: dropped %s: queue full", ev.Class())
		return ErrQueueFull
	}
	return nil
}

// RaiseNow delivers ev immediately, bypassing the queue.
func (m *Manager) RaiseNow(ev Event) {
	if ev == nil {
		return
	}
	c := ev.Class()
	if c >= classCount {
		return
	}
	m.dispatched.Add(1)
	for _, l := range m.subs[c] {
		err := l.h(ev)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrHandled) {
			return
		}
		m.logf("event: %s listener %s: %v", c, l.name, err)
	}
}

// Dispatch drains the queue, fully delivering each event before the next is
// dequeued. It returns the number of events delivered.
func (m *Manager) Dispatch() int {
	n := 0
	for {
		ev, ok := m.queue.TryRecv()
		if !ok {
			return n
		}
		m.RaiseNow(ev)
		n++
	}
}

// Pending returns the number of queued events.
func (m *Manager) Pending() int { return m.queue.Len() }

// Stats returns the delivered and dropped event counters.
func (m *Manager) Stats() (dispatched, dropped uint64) {
	return m.dispatched.Load(), m.dropped.Load()
}

func (m *Manager) logf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.WriteLineString(fmt.Sprintf(format, args...))
}
