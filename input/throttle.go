package input

import (
	"sync"
	"time"
)

// Clock is the time source of a Throttle
type Clock interface {
	Now() time.Time
}

// Throttle lets one action through per interval and drops the rest
type Throttle struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	last     time.Time
	primed   bool
}

// NewThrottle creates a throttle, interval 0 allows everything
func NewThrottle(clock Clock, interval time.Duration) *Throttle {
	return &Throttle{clock: clock, interval: interval}
}

// Allow reports whether an action may run now and records it if so
func (t *Throttle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if t.primed && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.primed = true
	return true
}
