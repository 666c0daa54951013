package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mtlreq/internal/submission"
)

type toast struct {
	id       int
	severity submission.Severity
	message  string
	shown    time.Time
}

type toastExpiredMsg struct{ id int }

func expireToastCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// pushToasts appends new toasts, keeping at most MaxToasts, and returns the
// expiry commands for them.
func (m *Model) pushToasts(incoming []toast) tea.Cmd {
	if len(incoming) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(incoming))
	for _, t := range incoming {
		m.toasts = append(m.toasts, t)
		cmds = append(cmds, expireToastCmd(t.id, ToastLifetime))
	}
	if overflow := len(m.toasts) - MaxToasts; overflow > 0 {
		m.toasts = append([]toast(nil), m.toasts[overflow:]...)
	}
	return tea.Batch(cmds...)
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

// renderToasts renders stacked notifications, newest last.
func (m Model) renderToasts(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		var (
			icon  string
			style lipgloss.Style
		)
		switch t.severity {
		case submission.SeverityError:
			icon, style = "✗", styles.DangerText
		case submission.SeveritySuccess:
			icon, style = "✓", styles.SuccessText
		default:
			icon, style = "•", styles.InfoText
		}
		text := truncate(singleLine(t.message), maxInt(width-6, 10))
		lines = append(lines, style.Render(icon)+" "+styles.Text.Render(text))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(maxInt(width-2, 12)).
		Render(strings.Join(lines, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
