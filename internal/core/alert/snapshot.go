package alert

import (
	"iter"
	"slices"
)

// Snapshot is an immutable, insertion-ordered view of the live alerts.
// Every registry mutation produces a new Snapshot; held snapshots never
// change.
type Snapshot struct {
	keys   []string
	alerts map[string]Alert
}

// Len returns the number of alerts.
func (s Snapshot) Len() int { return len(s.keys) }

// Get returns the alert stored under key.
func (s Snapshot) Get(key string) (Alert, bool) {
	a, ok := s.alerts[key]
	return a, ok
}

// Has reports whether key is live in the snapshot.
func (s Snapshot) Has(key string) bool {
	_, ok := s.alerts[key]
	return ok
}

// Keys returns the keys in insertion order.
func (s Snapshot) Keys() []string {
	return slices.Clone(s.keys)
}

// Alerts returns the alerts in insertion order.
func (s Snapshot) Alerts() []Alert {
	out := make([]Alert, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.alerts[k])
	}
	return out
}

// All iterates key/alert pairs in insertion order.
func (s Snapshot) All() iter.Seq2[string, Alert] {
	return func(yield func(string, Alert) bool) {
		for _, k := range s.keys {
			if !yield(k, s.alerts[k]) {
				return
			}
		}
	}
}

// with returns a copy holding a under its key. A key already present keeps
// its position.
func (s Snapshot) with(a Alert) Snapshot {
	next := Snapshot{
		keys:   s.keys,
		alerts: make(map[string]Alert, len(s.alerts)+1),
	}
	for k, v := range s.alerts {
		next.alerts[k] = v
	}
	if _, ok := s.alerts[a.Key]; !ok {
		next.keys = append(slices.Clip(s.keys), a.Key)
	}
	next.alerts[a.Key] = a
	return next
}

// without returns a copy with key removed.
func (s Snapshot) without(key string) Snapshot {
	if _, ok := s.alerts[key]; !ok {
		return s
	}
	next := Snapshot{
		keys:   make([]string, 0, len(s.keys)-1),
		alerts: make(map[string]Alert, len(s.alerts)-1),
	}
	for _, k := range s.keys {
		if k == key {
			continue
		}
		next.keys = append(next.keys, k)
		next.alerts[k] = s.alerts[k]
	}
	return next
}
