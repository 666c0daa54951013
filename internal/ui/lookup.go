package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/metadata"
	"github.com/five82/mtlreq/internal/sites"
	"github.com/five82/mtlreq/internal/submission"
	"github.com/five82/mtlreq/internal/validate"
)

type metadataMsg struct {
	url  string
	meta metadata.Metadata
	err  error
}

// lookup fetches metadata for the current book URL. Only empty fields are
// filled when it returns.
func (m Model) lookup() (Model, tea.Cmd) {
	if m.lookingUp || m.fetcher == nil {
		return m, nil
	}
	if m.site.Metadata.Empty() {
		m.effects.Notify(submission.SeverityInfo, fmt.Sprintf("Site %q has no metadata selectors.", m.siteName))
		return m, nil
	}
	bookURL := strings.TrimSpace(m.form.Snapshot().Get(form.BookURL))
	if err := validate.BookURL(m.ctrl.Rules(), bookURL); err != nil {
		m.fieldErrs[form.BookURL] = err.Error()
		return m, m.focusField(form.BookURL)
	}

	m.lookingUp = true
	m.log.Append("Fetching metadata from " + bookURL + "...")
	return m, tea.Batch(m.spinner.Tick, lookupCmd(m.ctx, m.fetcher, bookURL, m.site.Metadata))
}

func lookupCmd(ctx context.Context, f MetadataFetcher, url string, sel sites.Selectors) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
		defer cancel()
		meta, err := f.Lookup(ctx, url, sel)
		return metadataMsg{url: url, meta: meta, err: err}
	}
}

// applyMetadata fills blank fields from a lookup result. A result for a book
// URL that is no longer in the form is dropped.
func (m *Model) applyMetadata(msg metadataMsg) {
	if current := strings.TrimSpace(m.form.Snapshot().Get(form.BookURL)); current != msg.url {
		m.log.Append("Discarded metadata for " + msg.url)
		m.logger.Info("stale metadata lookup dropped", "url", msg.url, "current", current)
		return
	}
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		m.log.Append("Error fetching metadata: " + msg.err.Error())
		m.effects.Notify(submission.SeverityError, "Metadata lookup failed: "+msg.err.Error())
		m.logger.Warn("metadata lookup failed", "url", msg.url, "error", msg.err)
		return
	}
	if msg.meta.Empty() {
		m.log.Append("No metadata found at " + msg.url)
		m.effects.Notify(submission.SeverityInfo, "No metadata found.")
		return
	}

	state := m.form.Snapshot()
	var filled []string
	fill := func(f form.Field, value string) {
		value = strings.TrimSpace(value)
		if value == "" || strings.TrimSpace(state.Get(f)) != "" {
			return
		}
		if err := m.form.SetField(f, value); err != nil {
			m.logger.Warn("metadata prefill rejected", "field", f, "error", err)
			return
		}
		filled = append(filled, f.Label())
	}

	fill(titleField(msg.meta.Title), msg.meta.Title)
	fill(form.Author, msg.meta.Author)
	fill(form.ImageURL, msg.meta.CoverURL)
	fill(form.Synopsis, msg.meta.Synopsis)

	if len(filled) == 0 {
		m.log.Append("Fetched metadata; all fields already set.")
		return
	}
	m.log.Append("Fetched metadata: " + strings.Join(filled, ", "))
	m.effects.Notify(submission.SeverityInfo, "Filled "+strings.Join(filled, ", ")+".")
}

// titleField routes a scraped title to the Chinese title when it contains Han
// characters.
func titleField(title string) form.Field {
	for _, r := range title {
		if unicode.Is(unicode.Han, r) {
			return form.TitleZh
		}
	}
	return form.TitleEn
}
