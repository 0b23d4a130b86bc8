package tui

import (
	"time"

	"github.com/colonyops/alertle/internal/core/alert"
)

const (
	defaultMaxToasts  = 5
	toastTickInterval = 250 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	alert     alert.Alert
	remaining time.Duration
	timed     bool
}

// ToastController projects the registry's live alerts into the toast stack.
// Alerts are owned by the registry; the controller only caps how many are
// shown and computes their remaining lifetime for display.
type ToastController struct {
	reg        *alert.Registry
	maxVisible int
	snap       alert.Snapshot
	ticking    bool
}

func NewToastController(reg *alert.Registry, maxVisible int) *ToastController {
	if maxVisible <= 0 {
		maxVisible = defaultMaxToasts
	}
	return &ToastController{reg: reg, maxVisible: maxVisible}
}

// Sync refreshes the controller from the registry.
func (c *ToastController) Sync() {
	c.snap = c.reg.Snapshot()
}

// SetMaxVisible changes the display cap. Non-positive values are ignored.
func (c *ToastController) SetMaxVisible(n int) {
	if n > 0 {
		c.maxVisible = n
	}
}

// Toasts returns the visible toasts, oldest first. When more alerts are live
// than the cap allows, the newest ones are shown.
func (c *ToastController) Toasts() []toast {
	alerts := c.snap.Alerts()
	if len(alerts) > c.maxVisible {
		alerts = alerts[len(alerts)-c.maxVisible:]
	}

	now := c.reg.Now()
	toasts := make([]toast, 0, len(alerts))
	for _, a := range alerts {
		t := toast{alert: a}
		if deadline, ok := c.reg.Deadline(a.Key); ok {
			t.timed = true
			t.remaining = max(deadline.Sub(now), 0)
		}
		toasts = append(toasts, t)
	}
	return toasts
}

// Hidden returns how many live alerts are beyond the display cap.
func (c *ToastController) Hidden() int {
	return max(c.snap.Len()-c.maxVisible, 0)
}

// Len returns the number of live alerts.
func (c *ToastController) Len() int {
	return c.snap.Len()
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return c.snap.Len() > 0
}

// HasTimed returns true if any live alert has a pending expiry.
func (c *ToastController) HasTimed() bool {
	for _, a := range c.snap.All() {
		if a.Expires() {
			return true
		}
	}
	return false
}

// Newest returns the most recently inserted live alert.
func (c *ToastController) Newest() (alert.Alert, bool) {
	keys := c.snap.Keys()
	if len(keys) == 0 {
		return alert.Alert{}, false
	}
	return c.snap.Get(keys[len(keys)-1])
}

// Dismiss expires the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if a, ok := c.Newest(); ok {
		c.reg.Expire(a)
	}
	c.Sync()
}

// DismissAll expires every live alert.
func (c *ToastController) DismissAll() {
	c.reg.ExpireAll()
	c.Sync()
}

// Pin stops the newest toast from expiring.
func (c *ToastController) Pin() {
	if a, ok := c.Newest(); ok {
		c.reg.Update(a, alert.UpdateParams{ExpiresIn: alert.Never()})
	}
	c.Sync()
}

// Rearm restarts the newest toast's expiry with the registry default.
func (c *ToastController) Rearm() {
	if a, ok := c.Newest(); ok {
		expiry := c.reg.DefaultExpiresIn()
		if !expiry.IsSet() {
			expiry = alert.Never()
		}
		c.reg.Update(a, alert.UpdateParams{ExpiresIn: expiry})
	}
	c.Sync()
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
