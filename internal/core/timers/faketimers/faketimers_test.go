package faketimers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Advance_fires_in_due_order(t *testing.T) {
	c := New(time.Time{})

	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a2") })

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Equal(t, 1, c.Pending())

	c.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, order)
}

func TestClock_Now_tracks_firing_time(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := New(start)

	var seen time.Time
	c.AfterFunc(40*time.Millisecond, func() { seen = c.Now() })

	c.Advance(time.Second)
	assert.Equal(t, start.Add(40*time.Millisecond), seen)
	assert.Equal(t, start.Add(time.Second), c.Now())
}

func TestClock_nested_schedule_inside_window(t *testing.T) {
	c := New(time.Time{})

	fired := 0
	c.AfterFunc(10*time.Millisecond, func() {
		c.AfterFunc(10*time.Millisecond, func() { fired++ })
	})

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestTimer_Stop(t *testing.T) {
	c := New(time.Time{})

	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())

	c.Advance(time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, c.Pending())
}
