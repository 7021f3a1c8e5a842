package schedule

import (
	"sync"
	"time"
)

// Group is a Scheduler that remembers every pending handle it created so
// they can all be cancelled on teardown. After StopAll, new callbacks are
// never scheduled.
type Group struct {
	sched Scheduler

	mu      sync.Mutex
	pending map[*groupTimer]struct{}
	stopped bool
}

type groupTimer struct {
	g     *Group
	inner Timer
}

// NewGroup wraps s.
func NewGroup(s Scheduler) *Group {
	return &Group{
		sched:   s,
		pending: make(map[*groupTimer]struct{}),
	}
}

func (g *Group) AfterFunc(d time.Duration, fn func()) Timer {
	g.mu.Lock()
	defer g.mu.Unlock()

	gt := &groupTimer{g: g}
	if g.stopped {
		return gt
	}
	// Registered before scheduling: a zero delay may fire before AfterFunc
	// returns, and release must find the handle.
	g.pending[gt] = struct{}{}
	gt.inner = g.sched.AfterFunc(d, func() {
		if g.release(gt) {
			fn()
		}
	})
	return gt
}

func (g *Group) release(gt *groupTimer) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pending[gt]; !ok {
		return false
	}
	delete(g.pending, gt)
	return true
}

func (t *groupTimer) Stop() bool {
	t.g.mu.Lock()
	_, ok := t.g.pending[t]
	delete(t.g.pending, t)
	inner := t.inner
	t.g.mu.Unlock()

	if !ok {
		return false
	}
	if inner != nil {
		inner.Stop()
	}
	return true
}

// StopAll cancels every pending callback and refuses new ones.
func (g *Group) StopAll() {
	g.mu.Lock()
	g.stopped = true
	timers := make([]Timer, 0, len(g.pending))
	for gt := range g.pending {
		if gt.inner != nil {
			timers = append(timers, gt.inner)
		}
	}
	clear(g.pending)
	g.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// Pending returns the number of tracked callbacks that have not fired.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
