package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Success    key.Binding
	Error      key.Binding
	Warning    key.Binding
	Info       key.Binding
	Repeat     key.Binding
	Dismiss    key.Binding
	DismissAll key.Binding
	Pin        key.Binding
	Rearm      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "repeat last"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "dismiss newest"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("D", "X"),
			key.WithHelp("D", "dismiss all"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin newest"),
		),
		Rearm: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-arm newest"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.Repeat, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Error, k.Warning, k.Info, k.Repeat},
		{k.Dismiss, k.DismissAll, k.Pin, k.Rearm},
		{k.Help, k.Quit},
	}
}
