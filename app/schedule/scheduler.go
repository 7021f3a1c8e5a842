// Package schedule provides the timer capability injected into the
// controllers, plus helpers built on it (handle tracking, throttling) and a
// deterministic implementation for tests.
package schedule

import "time"

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

// Real returns a Scheduler backed by time.AfterFunc. Callbacks run on their
// own goroutine.
func Real() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
