package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/core/styles"
	"github.com/colonyops/alertle/pkg/tuitest"
)

func newTestModel(t *testing.T, defaultExpiry alert.Expiry) (Model, *alert.Registry) {
	t.Helper()

	reg, _ := newTestRegistry(t, defaultExpiry)
	m := New(Options{Registry: reg, Logger: zerolog.Nop()})
	t.Cleanup(m.Close)
	return m, reg
}

func press(t *testing.T, m Model, keys ...rune) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(tuitest.KeyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestModel_raise_demo_alerts(t *testing.T) {
	m, reg := newTestModel(t, alert.After(5*time.Second))

	m, cmd := press(t, m, 's', 'e', 'w', 'i')

	require.Equal(t, 4, reg.Len())
	types := make([]alert.Type, 0, 4)
	for _, a := range reg.Snapshot().Alerts() {
		types = append(types, a.Type)
	}
	assert.Equal(t, []alert.Type{alert.TypeSuccess, alert.TypeError, alert.TypeWarning, alert.TypeInfo}, types)
	assert.Len(t, m.toasts.Toasts(), 4)
	assert.True(t, m.toasts.Ticking())
	assert.Nil(t, cmd, "tick chain already running")
}

func TestModel_repeat_marks_duplicate(t *testing.T) {
	m, reg := newTestModel(t, alert.After(5*time.Second))

	m, _ = press(t, m, 'n')
	assert.Equal(t, "nothing to repeat yet", m.status)

	m, _ = press(t, m, 'e', 'n')

	require.Equal(t, 1, reg.Len())
	newest, ok := m.toasts.Newest()
	require.True(t, ok)
	assert.True(t, newest.IsDuplicate)
	assert.Contains(t, m.status, "suppressed")
}

func TestModel_demo_cycles_messages(t *testing.T) {
	m, reg := newTestModel(t, alert.Never())

	press(t, m, 's', 's')

	assert.Equal(t, 2, reg.Len(), "consecutive presses raise distinct alerts")
}

func TestModel_dismiss_keys(t *testing.T) {
	m, reg := newTestModel(t, alert.Never())

	m, _ = press(t, m, 's', 'e', 'w')
	m, _ = press(t, m, 'd')
	require.Equal(t, 2, reg.Len())
	newest, _ := m.toasts.Newest()
	assert.Equal(t, alert.TypeError, newest.Type)

	m, _ = press(t, m, 'D')
	assert.Zero(t, reg.Len())
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_pin_then_rearm(t *testing.T) {
	m, reg := newTestModel(t, alert.After(5*time.Second))

	m, _ = press(t, m, 'i', 'p')
	newest, _ := m.toasts.Newest()
	assert.False(t, newest.Expires())
	assert.Zero(t, reg.Pending())

	m, _ = press(t, m, 'r')
	newest, _ = m.toasts.Newest()
	assert.True(t, newest.Expires())
	assert.Equal(t, 1, reg.Pending())
}

func TestModel_zero_default_drops_alerts(t *testing.T) {
	m, reg := newTestModel(t, alert.After(0))

	m, _ = press(t, m, 'w')

	assert.Zero(t, reg.Len())
	assert.Contains(t, m.status, "expired immediately")
}

func TestModel_timer_expiry_reaches_view(t *testing.T) {
	reg, clock := newTestRegistry(t, alert.After(2*time.Second))
	m := New(Options{Registry: reg, Logger: zerolog.Nop()})
	t.Cleanup(m.Close)

	m, _ = press(t, m, 's')
	require.True(t, m.toasts.HasToasts())

	// Drain the change produced by the key press.
	assert.IsType(t, alertsChangedMsg{}, m.feed.wait()())

	clock.Advance(2 * time.Second)
	assert.Zero(t, reg.Len())
	assert.True(t, m.toasts.HasToasts(), "view is stale until the change message arrives")

	msg := m.feed.wait()()
	require.IsType(t, alertsChangedMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.False(t, m.toasts.HasToasts())
	assert.NotNil(t, cmd, "re-arms the change feed")
}

func TestModel_feed_coalesces(t *testing.T) {
	m, reg := newTestModel(t, alert.Never())

	reg.Notify(info("a", "1"))
	reg.Notify(info("b", "2"))
	reg.Notify(info("c", "3"))

	assert.IsType(t, alertsChangedMsg{}, m.feed.wait()())
	assert.Empty(t, m.feed.ch)
}

func TestModel_feed_close_releases_waiters(t *testing.T) {
	m, reg := newTestModel(t, alert.Never())

	m.Close()
	m.Close()

	assert.Nil(t, m.feed.wait()())

	reg.Notify(info("after", "close"))
	assert.Empty(t, m.feed.ch, "unsubscribed from the registry")
}

func TestModel_tick_stops_without_timed_alerts(t *testing.T) {
	m, _ := newTestModel(t, alert.Never())

	m, _ = press(t, m, 's')
	assert.False(t, m.toasts.Ticking())

	next, cmd := m.Update(toastTickMsg(time.Now()))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.toasts.Ticking())
}

func TestModel_tick_continues_with_timed_alerts(t *testing.T) {
	m, _ := newTestModel(t, alert.After(time.Minute))

	m, _ = press(t, m, 's')
	require.True(t, m.toasts.Ticking())

	next, cmd := m.Update(toastTickMsg(time.Now()))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.toasts.Ticking())
}

func TestModel_config_reload(t *testing.T) {
	t.Cleanup(func() { styles.SetThemeByName(styles.DefaultTheme) })

	m, _ := newTestModel(t, alert.Never())
	m, _ = press(t, m, 's', 'e', 'w')

	cfg := config.DefaultConfig()
	cfg.TUI.Theme = "gruvbox"
	cfg.TUI.MaxVisible = 1
	cfg.TUI.Width = 30

	next, _ := m.Update(configReloadedMsg{cfg: &cfg})
	m = next.(Model)

	palette, _ := styles.GetPalette("gruvbox")
	assert.Equal(t, palette, styles.CurrentPalette)
	assert.Len(t, m.toasts.Toasts(), 1)
	assert.Equal(t, 2, m.toasts.Hidden())
	assert.Equal(t, 30, m.view.width)
	assert.Equal(t, "config reloaded", m.status)
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel(t, alert.Never())

	_, cmd := press(t, m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tuitest.KeyCtrlC())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, alert.After(5*time.Second))

	next, _ := m.Update(tuitest.WindowSize(100, 24))
	m = next.(Model)
	m, _ = press(t, m, 'e')

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "alertle")
	assert.Contains(t, out, "1 active")
	assert.Contains(t, out, "default expiry 5s")
	assert.Contains(t, out, "Build failed")
	assert.Contains(t, out, "quit")
}
