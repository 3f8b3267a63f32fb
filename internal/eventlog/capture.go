package eventlog

import "sync"

// Capture is a Sink that records events in memory. It backs tests and the
// interactive CLI, which has no log output of its own.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

// Emit records the event.
func (c *Capture) Emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

// Events returns a copy of everything recorded so far.
func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Last returns the most recent event and whether one exists.
func (c *Capture) Last() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		return Event{}, false
	}
	return c.events[len(c.events)-1], true
}
