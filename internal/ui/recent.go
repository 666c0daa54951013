package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderRecent renders the recent submissions panel.
func (m Model) renderRecent(width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Recent requests"))
	b.WriteString("\n")

	recent := m.ctrl.Recent()
	switch {
	case !m.historyEnabled:
		b.WriteString(styles.FaintText.Render("History is disabled."))
	case len(recent) == 0:
		b.WriteString(styles.FaintText.Render("No requests yet."))
	default:
		inner := maxInt(width-4, 16)
		for _, sub := range recent {
			when := sub.CreatedAt.Local().Format("01-02 15:04")
			id := "#" + sub.NovelID
			b.WriteString(styles.FaintText.Render(when))
			b.WriteString(" ")
			b.WriteString(styles.InfoText.Render(id))
			b.WriteString("\n  ")
			label := sub.URL
			if sub.Title != "" {
				label = sub.Title
			}
			b.WriteString(styles.Text.Render(truncateMiddle(label, inner-2)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(maxInt(width-2, 12)).
		Render(strings.TrimRight(b.String(), "\n"))
}
