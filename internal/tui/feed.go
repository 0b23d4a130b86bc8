package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/config"
)

// alertsChangedMsg signals that the registry's live set changed.
type alertsChangedMsg struct{}

// configReloadedMsg carries a config that was reloaded from disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// changeFeed turns registry notifications, which may arrive from timer
// goroutines, into messages for the update loop. Notifications coalesce: any
// number of changes between two reads produce one message.
type changeFeed struct {
	ch          chan struct{}
	done        chan struct{}
	unsubscribe func()
}

func newChangeFeed(reg *alert.Registry) *changeFeed {
	f := &changeFeed{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	f.unsubscribe = reg.Subscribe(func() {
		select {
		case f.ch <- struct{}{}:
		default:
		}
	})
	return f
}

// wait returns a command that blocks until the next change.
func (f *changeFeed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ch:
			return alertsChangedMsg{}
		case <-f.done:
			return nil
		}
	}
}

func (f *changeFeed) close() {
	select {
	case <-f.done:
		return
	default:
	}
	f.unsubscribe()
	close(f.done)
}

// waitForConfig returns a command that blocks until a reloaded config arrives.
func waitForConfig(updates <-chan *config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}
