// Package faketimers provides a manually advanced timers.Clock for tests.
// Callbacks run synchronously on the goroutine calling Advance, in due order.
package faketimers

import (
	"sync"
	"time"

	"github.com/colonyops/alertle/internal/core/timers"
)

// Clock is a deterministic timers.Clock.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*timer
}

var _ timers.Clock = (*Clock)(nil)

// New creates a clock starting at start. A zero start uses a fixed date.
func New(start time.Time) *Clock {
	if start.IsZero() {
		start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return &Clock{now: start}
}

type timer struct {
	clock   *Clock
	seq     uint64
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	c.removeLocked(t)
	return true
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) timers.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{
		clock: c,
		seq:   c.seq,
		due:   c.now.Add(d),
		fn:    f,
	}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Timers scheduled by a callback are fired too when they fall inside the window.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.due.After(c.now) {
			c.now = next.due
		}
		next.fired = true
		c.removeLocked(next)
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Clock) nextDueLocked(target time.Time) *timer {
	var next *timer
	for _, t := range c.pending {
		if t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Clock) removeLocked(t *timer) {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}
