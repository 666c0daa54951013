package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mtlreq/internal/config"
	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/logbuf"
	"github.com/five82/mtlreq/internal/metadata"
	"github.com/five82/mtlreq/internal/prefs"
	"github.com/five82/mtlreq/internal/sites"
	"github.com/five82/mtlreq/internal/submission"
	"github.com/five82/mtlreq/internal/validate"
)

// View represents the current active view.
type View int

const (
	viewForm View = iota
	viewReader
)

// MetadataFetcher looks up book metadata for form prefill.
type MetadataFetcher interface {
	Lookup(ctx context.Context, pageURL string, sel sites.Selectors) (metadata.Metadata, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *submission.Controller
	Form       *form.Model
	Log        *logbuf.Buffer
	// Effects must be the same queue the controller and log buffer report to.
	Effects        *Effects
	Fetcher        MetadataFetcher
	Site           sites.Site
	Config         config.Config
	Endpoint       string
	HistoryEnabled bool
	ThemeName      string
	PrefsPath      string
	ConsoleOpen    bool
	Logger         *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *submission.Controller
	form      *form.Model
	log       *logbuf.Buffer
	effects   *Effects
	fetcher   MetadataFetcher
	site      sites.Site
	cfg       config.Config
	logger    *slog.Logger
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	view     View
	width    int
	height   int
	ready    bool
	showHelp bool

	// Header
	endpoint       string
	siteName       string
	historyEnabled bool

	// Form state
	inputs    []fieldInput
	focused   int
	fieldErrs map[form.Field]string
	spinner   spinner.Model
	lookingUp bool

	// Console state
	consoleOpen     bool
	console         viewport.Model
	consoleVersion  uint64
	consoleRendered bool

	toasts []toast
	route  string

	prefsOut *prefsWriter
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	effects := opts.Effects
	if effects == nil {
		effects = NewEffects()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	siteName := opts.Site.Name
	if siteName == "" {
		siteName = sites.DefaultName
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:            ctx,
		ctrl:           opts.Controller,
		form:           opts.Form,
		log:            opts.Log,
		effects:        effects,
		fetcher:        opts.Fetcher,
		site:           opts.Site,
		cfg:            opts.Config,
		logger:         logger,
		prefsPath:      prefsPath,
		theme:          GetTheme(opts.ThemeName),
		keys:           DefaultKeyMap(),
		view:           viewForm,
		endpoint:       opts.Endpoint,
		siteName:       siteName,
		historyEnabled: opts.HistoryEnabled,
		inputs:         newFieldInputs(opts.Site.BookURLExample, opts.Form.Snapshot()),
		fieldErrs:      make(map[form.Field]string),
		spinner:        sp,
		consoleOpen:    opts.ConsoleOpen,
		prefsOut:       &prefsWriter{},
	}
	m.spinner.Style = m.theme.Styles().WarningText
	m.focusIndex(0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.historyEnabled {
		cmds = append(cmds, func() tea.Msg { return refreshRecentMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Every message is followed by draining the
// effects the core packages queued while it was handled.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.update(msg)
	return m.applyEffects(cmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initConsole()
		}
		m.ready = true
		m.resizeInputs(m.formWidth())
		m.consoleRendered = false
		m.syncConsole()
		m.console.GotoBottom()
		return m, nil

	case submitResultMsg:
		outcome := m.ctrl.Finish(m.ctx, submission.Result(msg))
		var cmds []tea.Cmd
		if outcome.Succeeded() {
			m.fieldErrs = make(map[form.Field]string)
			cmds = append(cmds, m.savePrefs())
		}
		if outcome.Record != nil {
			cmds = append(cmds, persistCmd(m.ctx, m.ctrl, *outcome.Record))
		}
		return m, tea.Batch(cmds...)

	case refreshRecentMsg:
		return m, m.refreshRecent()

	case recentLoadedMsg:
		m.ctrl.ApplyRecent(submission.RecentLoad(msg))
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", msg.err)
		}
		return m, nil

	case metadataMsg:
		m.lookingUp = false
		m.applyMetadata(msg)
		return m, nil

	case scrollToBottomMsg:
		m.syncConsole()
		m.console.GotoBottom()
		return m, nil

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.view == viewForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

// applyEffects turns queued toasts, navigation and scroll requests into model
// state and commands.
func (m Model) applyEffects(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	d := m.effects.drain()

	cmds = append(cmds, m.pushToasts(d.toasts))
	if d.navigate != "" {
		m.route = d.navigate
		m.view = viewReader
		m.logger.Info("navigated", "route", d.navigate)
	}
	m.syncInputs()
	if m.ready {
		m.syncConsole()
	}
	if d.scroll {
		cmds = append(cmds, scrollAfterRenderCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) busy() bool {
	return m.lookingUp || (m.ctrl != nil && m.ctrl.State() == submission.Submitting)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().WarningText
		m.consoleRendered = false
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.ToggleConsole):
		m.consoleOpen = !m.consoleOpen
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.ClearConsole):
		m.log.Clear()
		return m, nil

	case key.Matches(msg, m.keys.ConsoleUp):
		m.console.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.ConsoleDown):
		m.console.HalfPageDown()
		return m, nil
	}

	if m.view == viewReader {
		if key.Matches(msg, m.keys.Escape) {
			m.view = viewForm
			m.route = ""
			return m, m.focusIndex(0)
		}
		return m, nil
	}
	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextField):
		return m, m.focusIndex(m.focused + 1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusIndex(m.focused - 1)

	case key.Matches(msg, m.keys.Lookup):
		return m.lookup()

	case key.Matches(msg, m.keys.ClearForm):
		m.form.Reset()
		m.fieldErrs = make(map[form.Field]string)
		return m, m.focusIndex(0)

	case key.Matches(msg, m.keys.Refresh):
		if m.historyEnabled {
			return m, m.refreshRecent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// submit starts a submission. The request is sent from a command so the
// event loop keeps drawing the spinner; the result comes back as a message.
func (m Model) submit() (Model, tea.Cmd) {
	pending, err := m.ctrl.Begin(m.form.Snapshot())
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			m.fieldErrs = map[form.Field]string{verr.Field: verr.Reason}
			return m, m.focusField(verr.Field)
		}
		return m, nil
	}
	m.fieldErrs = make(map[form.Field]string)
	return m, tea.Batch(m.spinner.Tick, sendCmd(m.ctx, m.ctrl, pending))
}

func (m Model) readerURL(route string) string {
	return m.cfg.ReaderURL(route)
}

func (m Model) formWidth() int {
	if m.width >= LayoutWideWidth {
		return m.width - RecentPanelWidth
	}
	return m.width
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.view == viewReader {
		b.WriteString(m.renderReader())
	} else {
		b.WriteString(m.renderBody())
	}

	if t := m.renderToasts(minInt(m.width, 80)); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
	}
	if m.consoleOpen {
		b.WriteString("\n")
		b.WriteString(m.renderConsole())
	}
	return b.String()
}

func (m Model) renderBody() string {
	if m.width >= LayoutWideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderForm(m.formWidth()),
			m.renderRecent(RecentPanelWidth),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderForm(m.width),
		m.renderRecent(m.width),
	)
}

// Messages

type submitResultMsg submission.Result

type refreshRecentMsg struct{}

// Commands

func sendCmd(ctx context.Context, ctrl *submission.Controller, p submission.Pending) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg(ctrl.Send(ctx, p))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
