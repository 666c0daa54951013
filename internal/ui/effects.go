package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mtlreq/internal/logbuf"
	"github.com/five82/mtlreq/internal/submission"
)

// Effects collects side effects requested by the core packages while the
// model handles a message. Update drains it afterwards and turns each effect
// into model state or a command, so callbacks never touch the model directly.
//
// It implements logbuf.ScrollScheduler, submission.Notifier and
// submission.Navigator.
type Effects struct {
	scroll   bool
	toasts   []toast
	navigate string
	now      func() time.Time
	nextID   int
}

var (
	_ logbuf.ScrollScheduler = (*Effects)(nil)
	_ submission.Notifier    = (*Effects)(nil)
	_ submission.Navigator   = (*Effects)(nil)
)

// NewEffects returns an empty effect queue.
func NewEffects() *Effects {
	return &Effects{now: time.Now}
}

// ScheduleScroll asks for the console to follow its newest line once the
// current frame has been drawn.
func (e *Effects) ScheduleScroll() {
	e.scroll = true
}

// Notify queues a toast.
func (e *Effects) Notify(severity submission.Severity, message string) {
	e.nextID++
	e.toasts = append(e.toasts, toast{
		id:       e.nextID,
		severity: severity,
		message:  message,
		shown:    e.now(),
	})
}

// Navigate queues a route change. Only the latest one is kept.
func (e *Effects) Navigate(path string) {
	e.navigate = path
}

type drained struct {
	scroll   bool
	toasts   []toast
	navigate string
}

func (e *Effects) drain() drained {
	d := drained{scroll: e.scroll, toasts: e.toasts, navigate: e.navigate}
	e.scroll = false
	e.toasts = nil
	e.navigate = ""
	return d
}

// scrollToBottomMsg arrives after the frame that drew new console lines.
type scrollToBottomMsg struct{}

func scrollAfterRenderCmd() tea.Cmd {
	return func() tea.Msg { return scrollToBottomMsg{} }
}
