package common

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers a message into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Relay hands messages to the program without blocking the caller, in the
// order they were sent. Program.Send blocks until the event loop receives,
// so calling it from inside Update would deadlock; Relay queues instead.
// Messages sent before Attach are dropped.
type Relay struct {
	mu      sync.Mutex
	to      Sender
	queue   []tea.Msg
	pumping bool
}

// Attach sets the destination program.
func (r *Relay) Attach(s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = s
}

// Send queues msg for delivery. Safe on a nil Relay.
func (r *Relay) Send(msg tea.Msg) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.to == nil {
		return
	}
	r.queue = append(r.queue, msg)
	if r.pumping {
		return
	}
	r.pumping = true
	go r.pump(r.to)
}

func (r *Relay) pump(to Sender) {
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.pumping = false
			r.mu.Unlock()
			return
		}
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		to.Send(msg)
	}
}
