package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mtlreq/internal/history"
	"github.com/five82/mtlreq/internal/prefs"
	"github.com/five82/mtlreq/internal/submission"
)

// Disk and database work runs in commands; results return as messages and
// are applied on the loop.

type recentLoadedMsg submission.RecentLoad

type prefsSavedMsg struct {
	err error
}

func persistCmd(ctx context.Context, ctrl *submission.Controller, sub history.Submission) tea.Cmd {
	return func() tea.Msg {
		return recentLoadedMsg(ctrl.Persist(ctx, sub))
	}
}

// refreshRecent logs the fetch on the loop and loads the list in a command.
func (m Model) refreshRecent() tea.Cmd {
	if !m.ctrl.StartRefresh() {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return recentLoadedMsg(ctrl.LoadRecent(ctx))
	}
}

// prefsWriter serialises preference saves. A save queued behind a newer one
// is skipped so the file never regresses to an older toggle.
type prefsWriter struct {
	mu      sync.Mutex
	queued  uint64
	written uint64
}

func (w *prefsWriter) next() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queued++
	return w.queued
}

func (w *prefsWriter) save(seq uint64, path string, fn func(*prefs.Prefs)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.written {
		return nil
	}
	w.written = seq
	_, err := prefs.Update(path, fn)
	return err
}

// savePrefs snapshots the current toggles and writes them from a command.
func (m Model) savePrefs() tea.Cmd {
	if m.prefsPath == "" || m.prefsOut == nil {
		return nil
	}
	w, path := m.prefsOut, m.prefsPath
	theme, consoleOpen, site := m.theme.Name, m.consoleOpen, m.siteName
	seq := w.next()
	return func() tea.Msg {
		err := w.save(seq, path, func(p *prefs.Prefs) {
			p.Theme = theme
			p.ConsoleOpen = consoleOpen
			p.LastSite = site
		})
		return prefsSavedMsg{err: err}
	}
}
