package kernel

import (
	"runtime"
	"sync/atomic"
)

// DefaultMailboxSlots is the queue depth used when NewMailbox is given zero.
const DefaultMailboxSlots = 16

type slot[T any] struct {
	seq atomic.Uint32
	v   T
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is designed for bare-metal use: no allocations after construction,
// busy-wait with Gosched().
type Mailbox[T any] struct {
	_     [0]func() // prevent accidental copying.
	mask  uint32
	head  atomic.Uint32
	tail  atomic.Uint32
	slots []slot[T]
}

// NewMailbox returns a mailbox with room for n values. n is rounded up to a
// power of two.
func NewMailbox[T any](n int) *Mailbox[T] {
	if n <= 0 {
		n = DefaultMailboxSlots
	}
	size := 1
	for size < n {
		size <<= 1
	}
	mb := &Mailbox[T]{
		mask:  uint32(size - 1),
		slots: make([]slot[T], size),
	}
	for i := range mb.slots {
		mb.slots[i].seq.Store(uint32(i))
	}
	return mb
}

// Cap returns the number of slots.
func (mb *Mailbox[T]) Cap() int { return len(mb.slots) }

// Len returns the number of queued values. It is only exact when no sender
// is active.
func (mb *Mailbox[T]) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}

// TrySend attempts to enqueue a value, returning false if the mailbox is full.
func (mb *Mailbox[T]) TrySend(v T) bool {
	for {
		head := mb.head.Load()
		s := &mb.slots[head&mb.mask]
		seq := s.seq.Load()
		switch diff := int32(seq - head); {
		case diff == 0:
			// Reserve the slot, then publish it by bumping its sequence.
			if mb.head.CompareAndSwap(head, head+1) {
				s.v = v
				s.seq.Store(head + 1)
				return true
			}
		case diff < 0:
			return false
		default:
			// Another producer took this slot; reload head.
		}
	}
}

// Send enqueues a value, blocking until it succeeds.
func (mb *Mailbox[T]) Send(v T) {
	for !mb.TrySend(v) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one value, returning false if empty.
// Only one goroutine may receive at a time.
func (mb *Mailbox[T]) TryRecv() (T, bool) {
	var zero T
	tail := mb.tail.Load()
	s := &mb.slots[tail&mb.mask]
	if s.seq.Load() != tail+1 {
		return zero, false
	}
	v := s.v
	s.v = zero
	s.seq.Store(tail + mb.mask + 1)
	mb.tail.Store(tail + 1)
	return v, true
}

// Recv blocks until one value is available.
func (mb *Mailbox[T]) Recv() T {
	for {
		v, ok := mb.TryRecv()
		if ok {
			return v
		}
		runtime.Gosched()
	}
}
