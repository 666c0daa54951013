package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/submission"
)

var fieldPlaceholders = map[form.Field]string{
	form.ChapterPattern: "p1.html",
	form.ImageURL:       "https://example.com/cover.jpg",
	form.TitleEn:        "Battle Through the Heavens",
	form.TitleZh:        "斗破苍穹",
	form.Author:         "天蚕土豆",
	form.Synopsis:       "Short description",
	form.Genres:         "Fantasy, Romance",
	form.Tags:           "cultivation, revenge",
}

type fieldInput struct {
	field form.Field
	input textinput.Model
}

func newFieldInputs(bookURLExample string, state form.State) []fieldInput {
	fields := form.Fields()
	inputs := make([]fieldInput, 0, len(fields))
	for _, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 2000
		ti.Width = 40
		ti.Placeholder = fieldPlaceholders[f]
		if f == form.BookURL {
			ti.Placeholder = bookURLExample
		}
		ti.SetValue(state.Get(f))
		inputs = append(inputs, fieldInput{field: f, input: ti})
	}
	return inputs
}

// focusIndex moves focus to the i-th input, wrapping around.
func (m *Model) focusIndex(i int) tea.Cmd {
	n := len(m.inputs)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	for j := range m.inputs {
		m.inputs[j].input.Blur()
	}
	m.focused = i
	return m.inputs[i].input.Focus()
}

func (m *Model) focusField(f form.Field) tea.Cmd {
	for i, in := range m.inputs {
		if in.field == f {
			return m.focusIndex(i)
		}
	}
	return nil
}

// syncInputs copies the form snapshot into the inputs. The controller may
// change the form (clearing the book URL after success) behind the inputs.
func (m *Model) syncInputs() {
	state := m.form.Snapshot()
	for i := range m.inputs {
		want := state.Get(m.inputs[i].field)
		if m.inputs[i].input.Value() != want {
			m.inputs[i].input.SetValue(want)
		}
	}
}

// updateFocusedInput forwards msg to the focused input and mirrors any edit
// into the form model.
func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	in := &m.inputs[m.focused]
	before := in.input.Value()
	var cmd tea.Cmd
	in.input, cmd = in.input.Update(msg)
	if after := in.input.Value(); after != before {
		if err := m.form.SetField(in.field, after); err != nil {
			m.logger.Warn("form update rejected", "field", in.field, "error", err)
		}
		delete(m.fieldErrs, in.field)
	}
	return m, cmd
}

func (m *Model) resizeInputs(width int) {
	w := maxInt(width-FieldLabelWidth-6, 12)
	for i := range m.inputs {
		m.inputs[i].input.Width = w
	}
}

// renderForm renders the labelled inputs.
func (m Model) renderForm(width int) string {
	styles := m.theme.Styles()
	rules := m.ctrl.Rules()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Request a novel"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", maxInt(width-4, 10))))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := in.field.Label()
		if rules.Required(in.field) {
			label += " *"
		}
		labelStyle := styles.MutedText
		inputBg := m.theme.SurfaceAlt
		if i == m.focused {
			labelStyle = styles.AccentText.Bold(true)
			inputBg = m.theme.FocusBg
		}
		row := labelStyle.Render(padRight(label, FieldLabelWidth)) +
			lipgloss.NewStyle().Background(lipgloss.Color(inputBg)).Render(in.input.View())
		b.WriteString(row)
		b.WriteString("\n")
		if msg, ok := m.fieldErrs[in.field]; ok {
			b.WriteString(strings.Repeat(" ", FieldLabelWidth))
			b.WriteString(styles.DangerText.Render(truncate(msg, maxInt(width-FieldLabelWidth-4, 10))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.ctrl.State() == submission.Submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.WarningText.Render(" Submitting..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter: submit  •  ctrl+f: fetch metadata  •  * required"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(maxInt(width-2, 20)).
		Render(b.String())
}
