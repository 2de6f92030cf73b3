package events

import (
	"sync/atomic"
)

const (
	// QueueSize is the ring capacity, power of two
	QueueSize = 256
	ringMask  = QueueSize - 1
)

// EventQueue is a bounded MPSC ring of scene events
// Producers push lock-free from the simulation and input goroutines; the frame loop is the only consumer
// When full the oldest unread event is overwritten and counted in Dropped
type EventQueue struct {
	slots [QueueSize]GameEvent
	ready [QueueSize]atomic.Bool
	read  atomic.Uint64
	write atomic.Uint64
	drops atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push reserves a slot by CAS on the write index, fills it, then marks it ready
func (q *EventQueue) Push(ev GameEvent) {
	for {
		w := q.write.Load()
		if !q.write.CompareAndSwap(w, w+1) {
			continue
		}

		idx := w & ringMask
		q.slots[idx] = ev
		q.ready[idx].Store(true)

		if r := q.read.Load(); w+1-r > QueueSize {
			if q.read.CompareAndSwap(r, w+1-QueueSize) {
				q.drops.Add(1)
			}
		}
		return
	}
}

// Consume drains every ready event in FIFO order
// Stops early at a slot whose producer has not finished writing; it is picked up next call
func (q *EventQueue) Consume() []GameEvent {
	for {
		r := q.read.Load()
		w := q.write.Load()
		if r == w {
			return nil
		}

		n := w - r
		if n > QueueSize {
			n = QueueSize
			r = w - QueueSize
		}

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (r + i) & ringMask
			if !q.ready[idx].Load() {
				break
			}
			out = append(out, q.slots[idx])
			q.ready[idx].Store(false)
		}

		if q.read.CompareAndSwap(r, r+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the number of unread events
func (q *EventQueue) Len() int {
	n := q.write.Load() - q.read.Load()
	if n > QueueSize {
		n = QueueSize
	}
	return int(n)
}

// Dropped returns how many unread events were overwritten since creation
func (q *EventQueue) Dropped() uint64 {
	return q.drops.Load()
}
