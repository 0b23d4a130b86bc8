package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and places them in the lower-right
// corner of the screen.
type ToastView struct {
	controller *ToastController
	width      int
}

func NewToastView(controller *ToastController, width int) *ToastView {
	if width <= 0 {
		width = toastWidth
	}
	return &ToastView{controller: controller, width: width}
}

// SetWidth changes the toast width. Non-positive values are ignored.
func (v *ToastView) SetWidth(width int) {
	if width > 0 {
		v.width = width
	}
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts)+1)
	if hidden := v.controller.Hidden(); hidden > 0 {
		more := styles.ToastMetaStyle.Render(fmt.Sprintf("+%d more", hidden))
		rendered = append(rendered, lipgloss.PlaceHorizontal(v.width+2, lipgloss.Right, more))
	}
	for _, t := range toasts {
		rendered = append(rendered, v.renderToast(t))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func toastStyle(t alert.Type) (string, lipgloss.Style) {
	switch t {
	case alert.TypeSuccess:
		return styles.IconNotifySuccess, styles.ToastSuccessStyle
	case alert.TypeError:
		return styles.IconNotifyError, styles.ToastErrorStyle
	case alert.TypeWarning:
		return styles.IconNotifyWarning, styles.ToastWarningStyle
	default:
		return styles.IconNotifyInfo, styles.ToastInfoStyle
	}
}

func (v *ToastView) renderToast(t toast) string {
	icon, style := toastStyle(t.alert.Type)

	title := t.alert.Title
	if title == "" {
		title = string(t.alert.Type)
	}
	left := icon + " " + styles.ToastTitleStyle.Render(title)

	var meta []string
	if t.alert.IsDuplicate {
		meta = append(meta, styles.IconDuplicate)
	}
	if t.timed {
		meta = append(meta, formatRemaining(t.remaining))
	} else {
		meta = append(meta, styles.IconPinned)
	}
	right := styles.ToastMetaStyle.Render(strings.Join(meta, " "))

	// Width includes horizontal padding but not the border.
	inner := v.width - 2
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	header := left + strings.Repeat(" ", gap) + right

	body := header
	if t.alert.Message != "" {
		body += "\n" + styles.ToastMessageStyle.Render(t.alert.Message)
	}

	return style.Width(v.width).Render(body)
}

// formatRemaining rounds up to whole seconds so a toast never reads 0s
// while it is still on screen.
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return (d + time.Second - 1).Truncate(time.Second).String()
}

// Overlay places the toast stack in the lower-right corner of a width x height
// area below the given content.
func (v *ToastView) Overlay(content string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" || width <= 0 || height <= 0 {
		if toastContent == "" {
			return content
		}
		return lipgloss.JoinVertical(lipgloss.Left, content, toastContent)
	}

	remaining := max(height-lipgloss.Height(content), lipgloss.Height(toastContent))
	placed := lipgloss.Place(width, remaining, lipgloss.Right, lipgloss.Bottom, toastContent)
	return lipgloss.JoinVertical(lipgloss.Left, content, placed)
}
