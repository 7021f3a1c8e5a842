package schedule

import (
	"sync"
	"time"
)

// DefaultThrottleInterval matches the scroll throttle of the feed list.
const DefaultThrottleInterval = 200 * time.Millisecond

// Throttle admits at most one event per interval. The first event of a
// window passes; the rest are dropped until the window closes.
type Throttle struct {
	sched    Scheduler
	interval time.Duration

	mu      sync.Mutex
	blocked bool
	timer   Timer
}

// NewThrottle creates a throttle. A non-positive interval admits everything.
func NewThrottle(s Scheduler, interval time.Duration) *Throttle {
	return &Throttle{sched: s, interval: interval}
}

// Allow reports whether the current event may pass.
func (t *Throttle) Allow() bool {
	if t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.blocked {
		return false
	}
	t.blocked = true
	t.timer = t.sched.AfterFunc(t.interval, t.reopen)
	return true
}

func (t *Throttle) reopen() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.blocked = false
	t.timer = nil
}

// Stop cancels the open window.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.blocked = false
}
