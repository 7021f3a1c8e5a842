// Package search turns raw keystrokes into settled queries and matches
// posts against them locally.
package search

import (
	"strings"
	"sync"
	"time"

	"github.com/CrestNiraj12/terminalfeed/app/schedule"
)

const (
	// DefaultQuietPeriod is how long input must pause before a query settles.
	DefaultQuietPeriod = 300 * time.Millisecond

	// MaxQueryLength caps the search box input, in characters.
	MaxQueryLength = 100
)

// Debouncer emits a settled query at most once per quiet period. Clearing
// and explicit submission bypass the delay. emit may be called from a
// scheduler goroutine; callers hand the value to their own event loop.
type Debouncer struct {
	sched schedule.Scheduler
	quiet time.Duration
	emit  func(query string)

	mu      sync.Mutex
	pending schedule.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A non-positive quiet period falls back
// to DefaultQuietPeriod.
func NewDebouncer(s schedule.Scheduler, quiet time.Duration, emit func(query string)) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{sched: s, quiet: quiet, emit: emit}
}

// Input records a keystroke-rate query change. An empty (or blank) query is
// emitted immediately; anything else replaces the pending emission.
func (d *Debouncer) Input(raw string) {
	q := strings.TrimSpace(raw)
	if q == "" {
		d.emitNow("")
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()
	seq := d.seq
	d.pending = d.sched.AfterFunc(d.quiet, func() { d.fire(seq, q) })
}

// Submit emits the query immediately, dropping any pending emission. A
// blank query is ignored.
func (d *Debouncer) Submit(raw string) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return
	}
	d.emitNow(q)
}

// Clear emits the empty query immediately.
func (d *Debouncer) Clear() {
	d.emitNow("")
}

// Stop cancels the pending emission. Nothing is emitted afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.cancelLocked()
}

// Pending reports whether a query is waiting for its quiet period.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) emitNow(q string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.mu.Unlock()
	d.emit(q)
}

// fire runs on the scheduler. A callback whose sequence was superseded
// (already fired on a timer goroutine but lost the race with a cancel) is
// dropped.
func (d *Debouncer) fire(seq uint64, q string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()
	d.emit(q)
}

// cancelLocked invalidates the pending emission. Caller holds mu.
func (d *Debouncer) cancelLocked() {
	d.seq++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
