package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHeader renders the top status bar: logo, endpoint, site preset and
// submission state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	state := m.ctrl.State().String()

	b := newBar(m.theme.Surface, "  ").
		add("mtlreq", styles.Logo).
		add("API "+truncateMiddle(m.endpoint, 48), styles.MutedText).
		add("site "+m.siteName, styles.InfoText).
		addRaw(m.theme.Styles().StateStyle(state).Render(strings.ToUpper(state)))
	if n := len(m.ctrl.Recent()); n > 0 {
		b.add(fmt.Sprintf("recent %d", n), styles.FaintText)
	}
	return b.line(m.width)
}

// renderCommandBar renders key hints, dropping trailing hints that do not fit.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	if m.view == viewReader {
		bindings = []key.Binding{m.keys.Escape, m.keys.Quit}
	}

	b := newBar(m.theme.Surface, " • ")
	for _, kb := range bindings {
		h := kb.Help()
		if !b.fits(h.Key+" "+h.Desc, m.width) {
			break
		}
		b.addPair(h.Key, h.Desc, styles.WarningText, styles.MutedText)
	}
	return b.line(m.width)
}
