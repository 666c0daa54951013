package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar assembles one row of styled segments on a shared background. Lipgloss
// resets between segments leave unstyled gaps, so every space and separator
// is painted explicitly.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type bar struct {
	bg       lipgloss.Color
	fill     lipgloss.Style
	sep      string
	segments []string
}

func newBar(bgColor, sep string) *bar {
	bg := lipgloss.Color(bgColor)
	fill := lipgloss.NewStyle().Background(bg)
	return &bar{bg: bg, fill: fill, sep: fill.Render(sep)}
}

// paint renders text with style, keeping the background under each space.
func (b *bar) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	word := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return word.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = word.Render(w)
		}
	}
	return strings.Join(words, b.fill.Render(" "))
}

// add appends a painted segment. Blank text is skipped.
func (b *bar) add(text string, style lipgloss.Style) *bar {
	if s := b.paint(text, style); s != "" {
		b.segments = append(b.segments, s)
	}
	return b
}

// addRaw appends a segment that already carries its own background.
func (b *bar) addRaw(rendered string) *bar {
	if rendered != "" {
		b.segments = append(b.segments, rendered)
	}
	return b
}

// addPair appends a key hint such as "ctrl+s submit" as one segment.
func (b *bar) addPair(k, desc string, keyStyle, descStyle lipgloss.Style) *bar {
	b.segments = append(b.segments, b.paint(k, keyStyle)+b.fill.Render(" ")+b.paint(desc, descStyle))
	return b
}

// fits reports whether one more segment of the given rendered text would
// keep the row within width.
func (b *bar) fits(next string, width int) bool {
	if len(b.segments) == 0 {
		return true
	}
	return lipgloss.Width(b.String())+lipgloss.Width(b.sep)+lipgloss.Width(next) <= width
}

func (b *bar) String() string {
	return strings.Join(b.segments, b.sep)
}

// line renders the row as a single line of exactly width cells.
func (b *bar) line(width int) string {
	if width <= 0 {
		return b.String()
	}
	return b.fill.Width(width).MaxWidth(width).MaxHeight(1).Render(b.String())
}
