package alert

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/alertle/internal/core/hub"
	"github.com/colonyops/alertle/internal/core/logging"
	"github.com/colonyops/alertle/internal/core/timers"
)

// ErrNegativeDefault is returned when a default expiry below zero is configured.
var ErrNegativeDefault = errors.New("default expiry cannot be negative")

// Config holds registry settings.
type Config struct {
	// DefaultExpiresIn applies when a notify call leaves ExpiresIn unset.
	// Unset here means such alerts never expire.
	DefaultExpiresIn Expiry
}

func (c Config) validate() error {
	if d, ok := c.DefaultExpiresIn.Duration(); ok && d < 0 {
		return ErrNegativeDefault
	}
	return nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the time source used for creation times and expiry.
func WithClock(c timers.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithLogger sets the registry logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// UpdateParams lists the fields that may change after creation. Unset or
// nil fields are left alone.
type UpdateParams struct {
	ExpiresIn    Expiry
	OnExpire     Callback
	IsDuplicate  *bool
	OnDuplicated Callback
}

func (p UpdateParams) apply(a Alert) Alert {
	if p.ExpiresIn.IsSet() {
		a.ExpiresIn = p.ExpiresIn.resolve()
	}
	if p.OnExpire != nil {
		a.OnExpire = p.OnExpire
	}
	if p.OnDuplicated != nil {
		a.OnDuplicated = p.OnDuplicated
	}
	if p.IsDuplicate != nil {
		a.IsDuplicate = *p.IsDuplicate
	}
	return a
}

// Registry owns the live alerts. Mutations are serialized; callbacks and
// listeners run after the mutation has been committed, so they may call back
// into the registry. Listeners may be invoked from a timer goroutine.
type Registry struct {
	logger zerolog.Logger
	clock  timers.Clock
	timers *timers.Manager
	hub    *hub.Hub

	mu            sync.Mutex
	defaultExpiry Expiry
	snap          Snapshot
	closed        bool
}

// NewRegistry creates a registry. Call Close to release its timers.
func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		logger:        logging.Component("alerts"),
		clock:         timers.RealClock(),
		defaultExpiry: cfg.DefaultExpiresIn,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.timers = timers.NewManager(r.clock)
	r.hub = hub.New(r.logger)
	return r, nil
}

// Notify creates an alert from p and adds it.
func (r *Registry) Notify(p Params) Alert {
	r.mu.Lock()
	a := New(p, r.clock.Now(), r.defaultExpiry)
	if r.closed {
		r.mu.Unlock()
		r.logger.Debug().Str("key", a.Key).Msg("notify on closed registry ignored")
		return a
	}
	a, duplicate, stored := r.addLocked(a)
	r.mu.Unlock()

	if duplicate && a.OnDuplicated != nil {
		a.OnDuplicated(a)
	}
	if a.OnNotify != nil {
		a.OnNotify(a)
	}
	if stored {
		r.hub.NotifyAll()
	}
	return a
}

// NotifySuccess adds a success alert.
func (r *Registry) NotifySuccess(p TypedParams) Alert { return r.Notify(p.withType(TypeSuccess)) }

// NotifyError adds an error alert.
func (r *Registry) NotifyError(p TypedParams) Alert { return r.Notify(p.withType(TypeError)) }

// NotifyWarning adds a warning alert.
func (r *Registry) NotifyWarning(p TypedParams) Alert { return r.Notify(p.withType(TypeWarning)) }

// NotifyInfo adds an info alert.
func (r *Registry) NotifyInfo(p TypedParams) Alert { return r.Notify(p.withType(TypeInfo)) }

// addLocked inserts a, merging by key with any live alert. It reports whether
// a duplicated a live alert and whether a was stored.
func (r *Registry) addLocked(a Alert) (Alert, bool, bool) {
	duplicate := r.snap.Has(a.Key)
	if duplicate {
		a.IsDuplicate = true
	}

	log := r.logger.Debug().
		Str("key", a.Key).
		Str("id", a.ID).
		Bool("duplicate", duplicate)

	switch {
	case a.ExpiresIn == nil:
		if duplicate {
			r.timers.CancelKey(a.Key)
		}
		r.snap = r.snap.with(a)
		log.Msg("alert added")
		return a, duplicate, true

	case *a.ExpiresIn == 0:
		// Never stored. A live alert with the same key keeps its timer since
		// nothing replaces it.
		log.Msg("alert dropped, zero expiry")
		return a, duplicate, false

	default:
		if duplicate {
			r.timers.CancelKey(a.Key)
		}
		r.timers.Schedule(a.Key, *a.ExpiresIn, r.fire)
		r.snap = r.snap.with(a)
		log.Dur("expires_in", *a.ExpiresIn).Msg("alert added")
		return a, duplicate, true
	}
}

// fire is the timer path. The handle must still be current; a handle that
// was cancelled or replaced after its delay elapsed is ignored.
func (r *Registry) fire(h *timers.Handle) {
	r.mu.Lock()
	if r.closed || !r.timers.Release(h) {
		r.mu.Unlock()
		return
	}
	a, ok := r.snap.Get(h.Key())
	if !ok {
		r.mu.Unlock()
		return
	}
	r.snap = r.snap.without(a.Key)
	r.mu.Unlock()

	r.logger.Debug().Str("key", a.Key).Str("id", a.ID).Msg("alert expired by timer")
	r.expired(a)
}

// Expire removes a's key if it is live. Expiring an alert that is already
// gone does nothing.
func (r *Registry) Expire(a Alert) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	stored, ok := r.snap.Get(a.Key)
	if !ok {
		r.mu.Unlock()
		return
	}
	r.snap = r.snap.without(a.Key)
	r.timers.CancelKey(a.Key)
	r.mu.Unlock()

	r.logger.Debug().Str("key", stored.Key).Str("id", stored.ID).Msg("alert expired")
	r.expired(stored)
}

// ExpireAll removes every live alert, firing each OnExpire, then notifies
// listeners once.
func (r *Registry) ExpireAll() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	alerts := r.snap.Alerts()
	for _, a := range alerts {
		r.timers.CancelKey(a.Key)
	}
	r.snap = Snapshot{}
	r.mu.Unlock()

	if len(alerts) == 0 {
		return
	}
	for _, a := range alerts {
		if a.OnExpire != nil {
			a.OnExpire(a)
		}
	}
	r.logger.Debug().Int("count", len(alerts)).Msg("all alerts expired")
	r.hub.NotifyAll()
}

func (r *Registry) expired(a Alert) {
	if a.OnExpire != nil {
		a.OnExpire(a)
	}
	r.hub.NotifyAll()
}

// Update applies p to the live alert stored under a's key and returns the
// result. A new ExpiresIn restarts the expiry from now; Never clears it; zero
// expires the alert immediately. When the key is not live the merged alert
// is returned and nothing is stored.
func (r *Registry) Update(a Alert, p UpdateParams) Alert {
	r.mu.Lock()
	current, ok := r.snap.Get(a.Key)
	if !ok || r.closed {
		r.mu.Unlock()
		return p.apply(a)
	}

	next := p.apply(current)
	if p.ExpiresIn.IsSet() {
		r.timers.CancelKey(next.Key)

		if next.ExpiresIn != nil && *next.ExpiresIn == 0 {
			r.snap = r.snap.without(next.Key)
			r.mu.Unlock()

			r.logger.Debug().Str("key", next.Key).Msg("alert expired by update")
			r.expired(next)
			return next
		}
		if next.ExpiresIn != nil {
			r.timers.Schedule(next.Key, *next.ExpiresIn, r.fire)
		}
	}
	r.snap = r.snap.with(next)
	r.mu.Unlock()

	r.logger.Debug().
		Str("key", next.Key).
		Stringer("expires_in", p.ExpiresIn).
		Msg("alert updated")
	r.hub.NotifyAll()
	return next
}

// Snapshot returns the current alerts. The result is never modified.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Subscribe registers fn to run after every visible change. The returned
// disposer is safe to call more than once.
func (r *Registry) Subscribe(fn func()) (unsubscribe func()) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return func() {}
	}
	return r.hub.Subscribe(fn)
}

// Deadline returns when the alert under key is due to expire.
func (r *Registry) Deadline(key string) (time.Time, bool) {
	h := r.timers.Current(key)
	if h == nil {
		return time.Time{}, false
	}
	return h.Due(), true
}

// Now returns the registry clock's current time.
func (r *Registry) Now() time.Time { return r.clock.Now() }

// Len returns the number of live alerts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Len()
}

// Pending returns the number of scheduled expiries.
func (r *Registry) Pending() int { return r.timers.Len() }

// DefaultExpiresIn returns the expiry applied to alerts created without one.
func (r *Registry) DefaultExpiresIn() Expiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defaultExpiry
}

// SetDefaultExpiresIn replaces the default expiry. Live alerts are unaffected.
func (r *Registry) SetDefaultExpiresIn(e Expiry) error {
	if err := (Config{DefaultExpiresIn: e}).validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultExpiry = e
	return nil
}

// Close cancels every pending expiry and drops all listeners. OnExpire is
// not called for alerts still live. Close is idempotent.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.timers.Close()
	r.snap = Snapshot{}
	r.mu.Unlock()

	r.hub.Clear()
	r.logger.Debug().Msg("registry closed")
}
