// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Info:       lipgloss.Color("#7dcfff"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
		Info:       lipgloss.Color("#83a598"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastInfoStyle    lipgloss.Style

	ToastTitleStyle   lipgloss.Style
	ToastMessageStyle lipgloss.Style
	ToastMetaStyle    lipgloss.Style

	HeaderStyle lipgloss.Style
	MutedStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// CLI output
	SuccessTextStyle lipgloss.Style
	ErrorTextStyle   lipgloss.Style
	WarningTextStyle lipgloss.Style
	InfoTextStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(p.Foreground)

	ToastSuccessStyle = toast.BorderForeground(p.Success)
	ToastErrorStyle = toast.BorderForeground(p.Error)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastInfoStyle = toast.BorderForeground(p.Info)

	ToastTitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	ToastMessageStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	ToastMetaStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	SuccessTextStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorTextStyle = lipgloss.NewStyle().Foreground(p.Error)
	WarningTextStyle = lipgloss.NewStyle().Foreground(p.Warning)
	InfoTextStyle = lipgloss.NewStyle().Foreground(p.Info)
}

// SetThemeByName activates the named theme. It reports false and leaves the
// current theme in place when the name is unknown.
func SetThemeByName(name string) bool {
	p, ok := themes[name]
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
