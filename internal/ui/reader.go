package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderReader renders the view shown after a successful submission. The
// actual reader lives in the web app; this view hands over the link.
func (m Model) renderReader() string {
	styles := m.theme.Styles()
	id := strings.TrimPrefix(m.route, "/read/")

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("Ingestion started"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(padRight("Novel", 10)))
	b.WriteString(styles.Text.Render(id))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(padRight("Reader", 10)))
	b.WriteString(styles.AccentText.Render(m.readerURL(m.route)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc: back to form  •  ctrl+c: quit"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Success)).
		Padding(1, 2).
		Width(minInt(maxInt(m.width-8, 30), 72))

	return lipgloss.Place(
		m.width,
		maxInt(m.height-2, 1),
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
