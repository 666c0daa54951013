package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/history"
	"github.com/five82/mtlreq/internal/ingest"
	"github.com/five82/mtlreq/internal/logbuf"
	"github.com/five82/mtlreq/internal/validate"
)

// State is the controller's position in the submission cycle.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Severity tags a user-facing notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows a message to the user. Fire and forget.
type Notifier interface {
	Notify(severity Severity, message string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(Severity, string)

func (f NotifyFunc) Notify(severity Severity, message string) { f(severity, message) }

// Navigator moves the user to another view, such as /read/42.
type Navigator interface {
	Navigate(path string)
}

// NavigateFunc adapts a function to Navigator.
type NavigateFunc func(string)

func (f NavigateFunc) Navigate(path string) { f(path) }

// History stores successful submissions. Optional.
type History interface {
	Record(ctx context.Context, sub history.Submission) (history.Submission, error)
	Recent(ctx context.Context, limit int) ([]history.Submission, error)
}

// ErrInFlight is returned by Begin while a submission is already running.
var ErrInFlight = errors.New("submission already in flight")

// Deps wires a Controller to its collaborators. Client, Log and Form are
// required; the rest may be nil.
type Deps struct {
	Client        ingest.Submitter
	Log           *logbuf.Buffer
	Form          *form.Model
	Rules         validate.Rules
	Notifier      Notifier
	Navigator     Navigator
	History       History
	Logger        *slog.Logger
	OnStateChange func(from, to State)
}

// Controller runs validate, POST and result handling for one form.
//
// Begin and Finish mutate state and must run on the owner's event loop. Send
// only reads the immutable Pending value and the client, so it may run
// elsewhere while the loop stays responsive.
type Controller struct {
	deps   Deps
	logger *slog.Logger
	state  State
	seq    uint64
	recent []history.Submission
}

// Pending is a validated submission waiting to be sent.
type Pending struct {
	Seq     uint64
	Request ingest.Request
	started time.Time
}

// Result is what came back from Send.
type Result struct {
	Pending  Pending
	Response ingest.Response
	Err      error
	Elapsed  time.Duration
}

// Outcome is the consumed result of a submission: a novel id on success or a
// message on failure.
type Outcome struct {
	NovelID string
	Route   string
	Message string
	Err     error
	// Record is the history row still to be written, set on success when
	// history is configured. Pass it to Persist.
	Record *history.Submission
}

// RecentLoad carries history I/O done away from the event loop back to
// ApplyRecent.
type RecentLoad struct {
	RecordErr error
	Recent    []history.Submission
	Err       error
}

// Succeeded reports whether the backend accepted the submission.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.NovelID != ""
}

// New builds a Controller in the Idle state.
func New(deps Deps) (*Controller, error) {
	if deps.Client == nil {
		return nil, errors.New("submission: client is required")
	}
	if deps.Log == nil {
		return nil, errors.New("submission: log buffer is required")
	}
	if deps.Form == nil {
		return nil, errors.New("submission: form model is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{deps: deps, logger: logger.With("component", "submission")}, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Recent returns the last fetched recent submissions.
func (c *Controller) Recent() []history.Submission {
	out := make([]history.Submission, len(c.recent))
	copy(out, c.recent)
	return out
}

// SetRules swaps the validation rules, for example after a site preset change.
func (c *Controller) SetRules(rules validate.Rules) {
	c.deps.Rules = rules
}

// Rules returns the active validation rules.
func (c *Controller) Rules() validate.Rules {
	return c.deps.Rules
}

// Route returns the reader path for a novel id.
func Route(novelID string) string {
	return "/read/" + url.PathEscape(novelID)
}

// Begin validates state and, when it passes, moves to Submitting and returns
// the request to send. While a submission is in flight it returns ErrInFlight
// without side effects. A validation failure is notified, logged once and
// returned as a *validate.Error.
func (c *Controller) Begin(state form.State) (Pending, error) {
	if c.state == Submitting {
		c.logger.Debug("submit ignored while in flight")
		return Pending{}, ErrInFlight
	}

	if err := validate.Form(c.deps.Rules, state); err != nil {
		reason := err.Error()
		c.deps.Log.Append("Validation failed: " + reason)
		c.notify(SeverityError, reason)
		c.logger.Info("submission rejected", "reason", reason)
		return Pending{}, err
	}

	c.transition(Submitting)
	c.seq++
	pending := Pending{Seq: c.seq, Request: BuildRequest(state), started: time.Now()}

	c.deps.Log.Append("Form submitted")
	if payload, err := json.Marshal(pending.Request); err == nil {
		c.deps.Log.Append("Payload: " + string(payload))
	}
	c.deps.Log.Append("Sending to ingestion API...")
	c.logger.Info("submission started", "seq", pending.Seq, "url", pending.Request.URL)
	return pending, nil
}

// Send issues the single POST for p.
func (c *Controller) Send(ctx context.Context, p Pending) Result {
	resp, err := c.deps.Client.Submit(ctx, p.Request)
	elapsed := time.Duration(0)
	if !p.started.IsZero() {
		elapsed = time.Since(p.started)
	}
	return Result{Pending: p, Response: resp, Err: err, Elapsed: elapsed}
}

// Finish applies a Result: logs, notifies, navigates and returns the
// controller to Idle. It does no history I/O; a successful Outcome carries
// the Record for Persist.
func (c *Controller) Finish(ctx context.Context, r Result) Outcome {
	if c.state != Submitting || r.Pending.Seq != c.seq {
		c.logger.Warn("stale submission result dropped", "seq", r.Pending.Seq, "current", c.seq)
		return Outcome{Err: errors.New("stale submission result")}
	}

	if r.Err != nil {
		return c.fail(r)
	}

	id := r.Response.NovelID.String()
	route := Route(id)
	c.transition(Succeeded)
	c.deps.Log.Append("Ingestion successful, novel_id=" + id)
	c.notify(SeveritySuccess, fmt.Sprintf("Ingestion started for novel %s.", id))
	c.logger.Info("submission succeeded",
		"seq", r.Pending.Seq,
		"novel_id", id,
		"request_id", r.Response.RequestID,
		"elapsed", r.Elapsed.Round(time.Millisecond),
	)

	if err := c.deps.Form.SetField(form.BookURL, ""); err != nil {
		c.logger.Warn("clear book url failed", "error", err)
	}
	if c.deps.Navigator != nil {
		c.deps.Navigator.Navigate(route)
	}
	c.transition(Idle)
	return Outcome{NovelID: id, Route: route, Record: c.historyRecord(r)}
}

// Submit runs Begin, Send and Finish back to back. The returned error is set
// only when nothing was sent: ErrInFlight or a *validate.Error.
func (c *Controller) Submit(ctx context.Context, state form.State) (Outcome, error) {
	pending, err := c.Begin(state)
	if err != nil {
		return Outcome{Message: err.Error(), Err: err}, err
	}
	out := c.Finish(ctx, c.Send(ctx, pending))
	if out.Record != nil {
		c.ApplyRecent(c.Persist(ctx, *out.Record))
	}
	return out, nil
}

// StartRefresh logs the start of a recent-list fetch. It reports false when
// history is disabled and there is nothing to load.
func (c *Controller) StartRefresh() bool {
	if c.deps.History == nil {
		return false
	}
	c.deps.Log.Append("Fetching recent requests...")
	return true
}

// Persist writes sub to history and reloads the recent list. It touches no
// controller state, so it may run off the event loop.
func (c *Controller) Persist(ctx context.Context, sub history.Submission) RecentLoad {
	if c.deps.History == nil {
		return RecentLoad{}
	}
	if _, err := c.deps.History.Record(ctx, sub); err != nil {
		return RecentLoad{RecordErr: err}
	}
	return c.LoadRecent(ctx)
}

// LoadRecent reads the recent list. Like Persist it is safe off the loop.
func (c *Controller) LoadRecent(ctx context.Context) RecentLoad {
	if c.deps.History == nil {
		return RecentLoad{}
	}
	recent, err := c.deps.History.Recent(ctx, history.DefaultRecent)
	return RecentLoad{Recent: recent, Err: err}
}

// ApplyRecent logs l and replaces the recent list when the load succeeded.
func (c *Controller) ApplyRecent(l RecentLoad) {
	switch {
	case l.RecordErr != nil:
		c.deps.Log.Append("Error recording request: " + l.RecordErr.Error())
		c.logger.Warn("record submission failed", "error", l.RecordErr)
	case l.Err != nil:
		c.deps.Log.Append("Error fetching recent requests: " + l.Err.Error())
		c.logger.Warn("fetch recent submissions failed", "error", l.Err)
	default:
		c.recent = l.Recent
		c.deps.Log.Append(fmt.Sprintf("Fetched %d recent requests.", len(l.Recent)))
	}
}

func (c *Controller) fail(r Result) Outcome {
	c.transition(Failed)

	var (
		msg    string
		notice string
		be     *ingest.BackendError
	)
	switch {
	case errors.As(r.Err, &be):
		msg = backendMessage(be)
		c.deps.Log.Append("Ingestion API error: " + msg)
		notice = "Failed to ingest: " + msg
		c.logger.Warn("submission failed",
			"seq", r.Pending.Seq,
			"status", be.Status,
			"reason", msg,
			"request_id", r.Response.RequestID,
			"error", r.Err,
		)
	default:
		msg = transportMessage(r.Err)
		c.deps.Log.Append("Network error: " + msg)
		notice = "Network error: " + msg
		c.logger.Warn("submission transport error", "seq", r.Pending.Seq, "error", r.Err)
	}

	c.notify(SeverityError, notice)
	c.transition(Idle)
	return Outcome{Message: msg, Err: r.Err}
}

func (c *Controller) historyRecord(r Result) *history.Submission {
	if c.deps.History == nil {
		return nil
	}
	title := r.Pending.Request.TitleEn
	if title == "" {
		title = r.Pending.Request.TitleZh
	}
	return &history.Submission{
		URL:     r.Pending.Request.URL,
		NovelID: r.Response.NovelID.String(),
		Title:   strings.TrimSpace(title),
	}
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if c.deps.OnStateChange != nil && from != to {
		c.deps.OnStateChange(from, to)
	}
}

func (c *Controller) notify(severity Severity, message string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(severity, message)
	}
}

func backendMessage(be *ingest.BackendError) string {
	if be.Message != "" {
		return be.Message
	}
	if errors.Is(be, ingest.ErrMissingNovelID) {
		return "response did not include a novel_id"
	}
	if be.Status >= 200 && be.Status < 300 {
		return "unreadable response from ingestion API"
	}
	return be.Error()
}

// transportMessage unwraps url.Error so the text reads like the cause, not
// the whole request line.
func transportMessage(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
