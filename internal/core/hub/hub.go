// Package hub is a synchronous change-notification hub. Listeners carry no
// payload; a call is the cue to re-read whatever state they observe.
package hub

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// Listener is invoked on every NotifyAll.
type Listener func()

type entry struct {
	id uint64
	fn Listener
}

// Hub dispatches to listeners inline, in registration order.
type Hub struct {
	logger zerolog.Logger

	mu        sync.Mutex
	seq       uint64
	listeners []entry
}

// New creates a hub. Recovered listener panics are logged to logger.
func New(logger zerolog.Logger) *Hub {
	return &Hub{logger: logger}
}

// Subscribe registers fn and returns a disposer that removes it. Calling the
// disposer more than once is safe.
func (h *Hub) Subscribe(fn Listener) (unsubscribe func()) {
	h.mu.Lock()
	h.seq++
	id := h.seq
	h.listeners = append(h.listeners, entry{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.listeners {
		if e.id == id {
			h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
			return
		}
	}
}

// NotifyAll calls every listener registered at the time of the call. A
// listener that panics is recovered so the rest still run.
func (h *Hub) NotifyAll() {
	h.mu.Lock()
	subs := make([]entry, len(h.listeners))
	copy(subs, h.listeners)
	h.mu.Unlock()

	for _, e := range subs {
		h.call(e)
	}
}

func (h *Hub) call(e entry) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn().
				Uint64("listener", e.id).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("recovered panic in listener")
		}
	}()
	e.fn()
}

// Len returns the number of registered listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Clear drops every listener.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = nil
}
