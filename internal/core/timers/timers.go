// Package timers owns the per-key expiry delays used by the alert registry.
// Each key has at most one outstanding handle; a handle fires at most once
// and never after it has been cancelled.
package timers

import (
	"sync"
	"time"
)

// Timer is a pending delay that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock is the time source for scheduling. RealClock is used outside of tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Handle identifies one scheduled expiry.
type Handle struct {
	key   string
	delay time.Duration
	due   time.Time
	timer Timer
}

// Key returns the key the handle was scheduled for.
func (h *Handle) Key() string { return h.key }

// Delay returns the requested delay.
func (h *Handle) Delay() time.Duration { return h.delay }

// Due returns the time the handle is expected to fire.
func (h *Handle) Due() time.Time { return h.due }

// Manager tracks one handle per key.
type Manager struct {
	clock Clock

	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool
}

// NewManager creates a manager on the given clock. A nil clock uses RealClock.
func NewManager(clock Clock) *Manager {
	if clock == nil {
		clock = RealClock()
	}
	return &Manager{
		clock:   clock,
		handles: make(map[string]*Handle),
	}
}

// Clock returns the manager's time source.
func (m *Manager) Clock() Clock { return m.clock }

// Schedule arranges for onFire to run after d. Any handle already held for
// key is cancelled first. After Close, Schedule returns nil and nothing fires.
func (m *Manager) Schedule(key string, d time.Duration, onFire func(*Handle)) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	if prev, ok := m.handles[key]; ok {
		prev.timer.Stop()
		delete(m.handles, key)
	}

	h := &Handle{
		key:   key,
		delay: d,
		due:   m.clock.Now().Add(d),
	}
	h.timer = m.clock.AfterFunc(d, func() {
		if !m.Active(h) {
			return
		}
		onFire(h)
	})
	m.handles[key] = h
	return h
}

// Active reports whether h is still the current handle for its key.
func (m *Manager) Active(h *Handle) bool {
	if h == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handles[h.key] == h
}

// Current returns the outstanding handle for key, or nil.
func (m *Manager) Current(key string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handles[key]
}

// Cancel stops h and drops it. Returns false when h was not outstanding.
func (m *Manager) Cancel(h *Handle) bool {
	if h == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handles[h.key] != h {
		return false
	}
	h.timer.Stop()
	delete(m.handles, h.key)
	return true
}

// CancelKey cancels whatever handle is outstanding for key.
func (m *Manager) CancelKey(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.handles[key]
	if !ok {
		return false
	}
	h.timer.Stop()
	delete(m.handles, key)
	return true
}

// Release drops the association for h without stopping it. Used from the
// fire path, where the timer has already elapsed.
func (m *Manager) Release(h *Handle) bool {
	if h == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handles[h.key] != h {
		return false
	}
	delete(m.handles, h.key)
	return true
}

// Len returns the number of outstanding handles.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}

// Close cancels every outstanding handle. Later calls to Schedule are inert.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, h := range m.handles {
		h.timer.Stop()
		delete(m.handles, key)
	}
	m.closed = true
}
