package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/alertle/internal/core/alert"
)

func TestToastController_Sync_reflects_registry(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.After(5*time.Second))
	c := NewToastController(reg, 5)

	reg.Notify(info("hello", "world"))
	assert.False(t, c.HasToasts(), "controller only changes on Sync")

	c.Sync()
	assert.True(t, c.HasToasts())
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].alert.Title)
}

func TestToastController_Toasts_caps_to_newest(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 3)

	for i := range 5 {
		reg.Notify(info("t", fmt.Sprintf("msg %d", i)))
	}
	c.Sync()

	toasts := c.Toasts()
	require.Len(t, toasts, 3)
	assert.Equal(t, "msg 2", toasts[0].alert.Message)
	assert.Equal(t, "msg 4", toasts[2].alert.Message)
	assert.Equal(t, 2, c.Hidden())
	assert.Equal(t, 5, c.Len())
}

func TestToastController_remaining_time(t *testing.T) {
	reg, clock := newTestRegistry(t, alert.After(5*time.Second))
	c := NewToastController(reg, 5)

	reg.Notify(info("timed", "m"))
	reg.Notify(alert.Params{Type: alert.TypeError, Message: "sticky", ExpiresIn: alert.Never()})
	clock.Advance(2 * time.Second)
	c.Sync()

	toasts := c.Toasts()
	require.Len(t, toasts, 2)
	assert.True(t, toasts[0].timed)
	assert.Equal(t, 3*time.Second, toasts[0].remaining)
	assert.False(t, toasts[1].timed)
	assert.True(t, c.HasTimed())
}

func TestToastController_HasTimed_false_when_all_pinned(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)

	reg.Notify(info("a", "b"))
	c.Sync()

	assert.True(t, c.HasToasts())
	assert.False(t, c.HasTimed())
}

func TestToastController_Dismiss(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)

	reg.Notify(info("first", "1"))
	reg.Notify(info("second", "2"))
	c.Sync()

	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].alert.Title)
	assert.Equal(t, 1, reg.Len())
}

func TestToastController_Dismiss_empty(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)

	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastController_DismissAll(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.After(time.Second))
	c := NewToastController(reg, 5)

	reg.Notify(info("a", "1"))
	reg.Notify(info("b", "2"))
	c.Sync()

	c.DismissAll()

	assert.False(t, c.HasToasts())
	assert.Zero(t, reg.Pending())
}

func TestToastController_Pin_and_Rearm(t *testing.T) {
	reg, clock := newTestRegistry(t, alert.After(5*time.Second))
	c := NewToastController(reg, 5)

	reg.Notify(info("pin me", "m"))
	c.Sync()

	c.Pin()
	require.Len(t, c.Toasts(), 1)
	assert.False(t, c.Toasts()[0].timed)

	clock.Advance(time.Minute)
	c.Sync()
	require.True(t, c.HasToasts(), "pinned toast survives")

	c.Rearm()
	require.Len(t, c.Toasts(), 1)
	assert.True(t, c.Toasts()[0].timed)
	assert.Equal(t, 5*time.Second, c.Toasts()[0].remaining)

	clock.Advance(5 * time.Second)
	c.Sync()
	assert.False(t, c.HasToasts())
}

func TestToastController_Rearm_without_default_pins(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Expiry{})
	c := NewToastController(reg, 5)

	reg.Notify(alert.Params{Type: alert.TypeInfo, Message: "m", ExpiresIn: alert.After(time.Second)})
	c.Sync()

	c.Rearm()
	require.Len(t, c.Toasts(), 1)
	assert.False(t, c.Toasts()[0].timed)
}

func TestToastController_SetMaxVisible_ignores_non_positive(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 0)
	assert.Equal(t, defaultMaxToasts, c.maxVisible)

	c.SetMaxVisible(-1)
	assert.Equal(t, defaultMaxToasts, c.maxVisible)

	c.SetMaxVisible(2)
	assert.Equal(t, 2, c.maxVisible)
}
