package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/styles"
	"github.com/colonyops/alertle/pkg/tuitest"
)

func TestToastView_View_empty(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	v := NewToastView(NewToastController(reg, 5), 50)

	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_type(t *testing.T) {
	tests := []struct {
		typ  alert.Type
		icon string
	}{
		{alert.TypeSuccess, styles.IconNotifySuccess},
		{alert.TypeError, styles.IconNotifyError},
		{alert.TypeWarning, styles.IconNotifyWarning},
		{alert.TypeInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			reg, _ := newTestRegistry(t, alert.After(5*time.Second))
			c := NewToastController(reg, 5)
			v := NewToastView(c, 50)

			reg.Notify(alert.Params{Type: tt.typ, Title: "Heads up", Message: "test msg"})
			c.Sync()

			out := tuitest.StripANSI(v.View())
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "Heads up")
			assert.Contains(t, out, "test msg")
			assert.Contains(t, out, "5s")
		})
	}
}

func TestToastView_View_untitled_uses_type(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)
	v := NewToastView(c, 50)

	reg.Notify(alert.Params{Type: alert.TypeWarning, Message: "no title"})
	c.Sync()

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, styles.IconPinned)
}

func TestToastView_View_stacks_oldest_first(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)
	v := NewToastView(c, 50)

	reg.Notify(info("first", "a"))
	reg.Notify(alert.Params{Type: alert.TypeError, Title: "second", Message: "b"})
	c.Sync()

	out := v.View()
	firstIdx := strings.Index(out, "first")
	secondIdx := strings.Index(out, "second")

	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx)
}

func TestToastView_View_marks_duplicates(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)
	v := NewToastView(c, 50)

	reg.Notify(info("again", "m"))
	c.Sync()
	assert.NotContains(t, v.View(), styles.IconDuplicate)

	reg.Notify(info("again", "m"))
	c.Sync()
	assert.Contains(t, v.View(), styles.IconDuplicate)
}

func TestToastView_View_shows_hidden_count(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 1)
	v := NewToastView(c, 50)

	reg.Notify(info("one", "1"))
	reg.Notify(info("two", "2"))
	reg.Notify(info("three", "3"))
	c.Sync()

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "+2 more")
	assert.Contains(t, out, "three")
	assert.NotContains(t, out, "one")
}

func TestToastView_width(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)
	v := NewToastView(c, 40)

	reg.Notify(info("w", "m"))
	c.Sync()

	// Width plus the left and right border.
	assert.Equal(t, 42, lipgloss.Width(v.View()))

	v.SetWidth(0)
	assert.Equal(t, 42, lipgloss.Width(v.View()))
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{300 * time.Millisecond, "1s"},
		{time.Second, "1s"},
		{4*time.Second + time.Millisecond, "5s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, formatRemaining(tt.in))
		})
	}
}

func TestToastView_Overlay_empty_returns_content(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	v := NewToastView(NewToastController(reg, 5), 50)

	content := "background content"
	assert.Equal(t, content, v.Overlay(content, 80, 24))
}

func TestToastView_Overlay_positions_lower_right(t *testing.T) {
	reg, _ := newTestRegistry(t, alert.Never())
	c := NewToastController(reg, 5)
	v := NewToastView(c, 30)

	reg.Notify(info("positioned", "bottom right"))
	c.Sync()

	width, height := 100, 20
	out := v.Overlay("header", width, height)

	assert.Equal(t, height, lipgloss.Height(out))

	lines := strings.Split(tuitest.StripANSI(out), "\n")
	last := lines[len(lines)-1]
	assert.Equal(t, width, lipgloss.Width(last), "toast is flush with the right edge")
	assert.True(t, strings.HasPrefix(last, "   "), "toast is not on the left edge")
	assert.True(t, strings.HasPrefix(lines[0], "header"))
}
