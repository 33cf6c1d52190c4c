package kernel

import (
	"encoding/binary"
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	mb := NewMailbox[int](4)

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxRoundsUpCapacity(t *testing.T) {
	if got := NewMailbox[int](5).Cap(); got != 8 {
		t.Fatalf("Cap() = %d, want 8", got)
	}
	if got := NewMailbox[int](0).Cap(); got != DefaultMailboxSlots {
		t.Fatalf("Cap() = %d, want %d", got, DefaultMailboxSlots)
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	mb := NewMailbox[int](8)

	for i := 0; i < mb.Cap(); i++ {
		if ok := mb.TrySend(i); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(99); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}
	if got := mb.Len(); got != mb.Cap() {
		t.Fatalf("Len() = %d, want %d", got, mb.Cap())
	}

	for i := 0; i < mb.Cap(); i++ {
		v, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if v != i {
			t.Fatalf("TryRecv() = %d, want %d", v, i)
		}
	}
}

func TestMailboxWrapsAround(t *testing.T) {
	mb := NewMailbox[int](2)
	for i := 0; i < 100; i++ {
		if !mb.TrySend(i) {
			t.Fatalf("TrySend(%d) failed", i)
		}
		if v := mb.Recv(); v != i {
			t.Fatalf("Recv() = %d, want %d", v, i)
		}
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	mb := NewMailbox[[4]byte](8)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				var msg [4]byte
				binary.LittleEndian.PutUint32(msg[:], uint32(producerID*perProd+i))
				mb.Send(msg)
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		msg := mb.Recv()
		id := binary.LittleEndian.Uint32(msg[:])
		if int(id) >= total {
			t.Fatalf("Recv() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("Recv() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

func TestSystemTickTo(t *testing.T) {
	s := NewSystem()
	s.TickTo(10)
	s.TickTo(5)
	if got := s.Ticks(); got != 10 {
		t.Fatalf("Ticks() = %d, want 10", got)
	}
	if got := s.Elapsed().Milliseconds(); got != 10 {
		t.Fatalf("Elapsed() = %dms, want 10ms", got)
	}
}
