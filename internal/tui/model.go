// Package tui implements the alertle toast container.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/core/styles"
)

// Options configures the TUI behavior.
type Options struct {
	Registry      *alert.Registry
	Config        *config.Config
	ConfigUpdates <-chan *config.Config // reloaded configs (optional)
	Logger        zerolog.Logger
}

// Model is the Bubble Tea model for the toast container.
type Model struct {
	reg     *alert.Registry
	logger  zerolog.Logger
	keys    keyMap
	help    help.Model
	toasts  *ToastController
	view    *ToastView
	feed    *changeFeed
	demo    *demoCycler
	updates <-chan *config.Config

	last   *alert.Params
	status string
	width  int
	height int
}

// New creates the toast container model. The model subscribes to the
// registry immediately; call Close when the program exits.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	toasts := NewToastController(opts.Registry, cfg.TUI.MaxVisible)
	toasts.Sync()

	return Model{
		reg:     opts.Registry,
		logger:  opts.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		toasts:  toasts,
		view:    NewToastView(toasts, cfg.TUI.Width),
		feed:    newChangeFeed(opts.Registry),
		demo:    newDemoCycler(),
		updates: opts.ConfigUpdates,
	}
}

// Close detaches the model from the registry.
func (m Model) Close() {
	m.feed.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.feed.wait(), waitForConfig(m.updates), m.ensureToastTick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case alertsChangedMsg:
		m.toasts.Sync()
		return m, tea.Batch(m.feed.wait(), m.ensureToastTick())

	case toastTickMsg:
		m.toasts.SetTicking(false)
		m.toasts.Sync()
		return m, m.ensureToastTick()

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, tea.Batch(waitForConfig(m.updates), m.ensureToastTick())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Success):
		return m.raise(m.demo.params(alert.TypeSuccess))
	case key.Matches(msg, m.keys.Error):
		return m.raise(m.demo.params(alert.TypeError))
	case key.Matches(msg, m.keys.Warning):
		return m.raise(m.demo.params(alert.TypeWarning))
	case key.Matches(msg, m.keys.Info):
		return m.raise(m.demo.params(alert.TypeInfo))
	case key.Matches(msg, m.keys.Repeat):
		if m.last == nil {
			m.status = "nothing to repeat yet"
			return m, nil
		}
		return m.raise(*m.last)
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
		m.status = ""
	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
		m.status = ""
	case key.Matches(msg, m.keys.Pin):
		m.toasts.Pin()
		m.status = "pinned newest alert"
	case key.Matches(msg, m.keys.Rearm):
		m.toasts.Rearm()
		m.status = "re-armed newest alert"
	default:
		return m, nil
	}
	return m, m.ensureToastTick()
}

// raise adds an alert to the registry and records the outcome in the
// status line.
func (m Model) raise(p alert.Params) (tea.Model, tea.Cmd) {
	logger := m.logger
	p.OnExpire = func(a alert.Alert) {
		logger.Debug().Str("key", a.Key).Msg("toast expired")
	}
	p.OnDuplicated = func(a alert.Alert) {
		logger.Debug().Str("key", a.Key).Msg("toast suppressed as duplicate")
	}
	m.last = &p

	a := m.reg.Notify(p)
	m.toasts.Sync()

	switch {
	case a.IsDuplicate:
		m.status = fmt.Sprintf("duplicate of %q suppressed", a.Key)
	case !m.toasts.snap.Has(a.Key):
		m.status = fmt.Sprintf("%q expired immediately", a.Key)
	default:
		m.status = ""
	}
	return m, m.ensureToastTick()
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !styles.SetThemeByName(cfg.TUI.Theme) {
		m.logger.Warn().Str("theme", cfg.TUI.Theme).Msg("unknown theme in reloaded config")
	}
	m.toasts.SetMaxVisible(cfg.TUI.MaxVisible)
	m.view.SetWidth(cfg.TUI.Width)
	m.toasts.Sync()
	m.status = "config reloaded"
}

// ensureToastTick starts the countdown tick while any toast has a pending
// expiry. Only one tick chain runs at a time.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.toasts.Ticking() || !m.toasts.HasTimed() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render("alertle"))
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(
		"  %d active · default expiry %s",
		m.toasts.Len(), m.reg.DefaultExpiresIn(),
	)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styles.MutedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))

	header := lipgloss.NewStyle().Padding(0, 1).Render(b.String())
	return m.view.Overlay(header, m.width, m.height)
}
