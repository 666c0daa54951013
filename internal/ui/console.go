package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// consoleHeight returns the console body height for the current terminal.
func (m Model) consoleHeight() int {
	h := m.height / 3
	if h < ConsoleMinHeight {
		h = ConsoleMinHeight
	}
	if h > ConsoleMaxHeight {
		h = ConsoleMaxHeight
	}
	return h
}

func (m *Model) initConsole() {
	m.console = viewport.New(maxInt(m.width-4, 10), m.consoleHeight())
	m.console.Style = lipgloss.NewStyle()
}

// syncConsole refreshes the console content when the buffer changed. It does
// not scroll; scrolling waits for scrollToBottomMsg.
func (m *Model) syncConsole() {
	if m.console.Width == 0 {
		m.initConsole()
	}
	m.console.Width = maxInt(m.width-4, 10)
	m.console.Height = m.consoleHeight()
	m.console.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if v := m.log.Version(); v != m.consoleVersion || !m.consoleRendered {
		m.console.SetContent(m.renderConsoleContent())
		m.consoleVersion = v
		m.consoleRendered = true
	}
}

func (m Model) renderConsoleContent() string {
	entries := m.log.Entries()
	if len(entries) == 0 {
		return m.theme.Styles().FaintText.Render("Console is empty.")
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		msgStyle := styles.Text
		switch {
		case strings.HasPrefix(e.Message, "Network error"),
			strings.HasPrefix(e.Message, "Ingestion API error"),
			strings.HasPrefix(e.Message, "Validation failed"),
			strings.HasPrefix(e.Message, "Error "):
			msgStyle = styles.DangerText
		case strings.HasPrefix(e.Message, "Ingestion successful"):
			msgStyle = styles.SuccessText
		case strings.HasPrefix(e.Message, "Payload:"):
			msgStyle = styles.MutedText
		}
		lines = append(lines, styles.FaintText.Render("["+e.Timestamp()+"]")+" "+msgStyle.Render(e.Message))
	}
	return strings.Join(lines, "\n")
}

// renderConsole renders the debug console panel.
func (m Model) renderConsole() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Console")
	count := styles.FaintText.Render(
		fmt.Sprintf(" %d/%d  ctrl+x clear  pgup/pgdown scroll", m.log.Len(), m.log.Limit()))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(maxInt(m.width-2, 12)).
		Render(title + count + "\n" + m.console.View())
}
