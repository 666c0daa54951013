package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/mtlreq/internal/config"
	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/history"
	"github.com/five82/mtlreq/internal/ingest"
	"github.com/five82/mtlreq/internal/logbuf"
	"github.com/five82/mtlreq/internal/logging"
	"github.com/five82/mtlreq/internal/metadata"
	"github.com/five82/mtlreq/internal/prefs"
	"github.com/five82/mtlreq/internal/sites"
	"github.com/five82/mtlreq/internal/submission"
	"github.com/five82/mtlreq/internal/ui"
	"github.com/five82/mtlreq/internal/validate"
)

// Options configure the mtlreq application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mtlreq/prefs.toml
	APIBase    string // overrides api_base when set
	Site       string // overrides site when set
	NoHistory  bool

	// LogToStderr mirrors the log file to stderr. The TUI leaves it off.
	LogToStderr bool

	Scheduler logbuf.ScrollScheduler
	Notifier  submission.Notifier
	Navigator submission.Navigator
}

// App holds the wired components shared by the TUI and the CLI commands.
type App struct {
	Config     config.Config
	Catalog    *sites.Catalog
	Site       sites.Site
	Client     *ingest.Client
	Log        *logbuf.Buffer
	Form       *form.Model
	Controller *submission.Controller
	History    *history.Store // nil when history is disabled
	Fetcher    *metadata.Fetcher
	Logger     *logging.Logger
}

// Build loads configuration and wires every component.
func Build(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(opts.Site); v != "" {
		cfg.Site = v
	}

	logger, err := logging.NewFromConfig(cfg, opts.LogToStderr)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	a := &App{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	a.Catalog, err = sites.Load(cfg.SitesFile)
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}
	site, found := a.Catalog.Get(cfg.Site)
	if !found {
		logger.Warn("unknown site preset, using default", "site", cfg.Site, "default", site.Name)
	}
	a.Site = site

	rules, err := site.Rules(validate.Options{
		RequireTitles:         cfg.Form.RequireTitles,
		RequireAuthor:         cfg.Form.RequireAuthor,
		RequireChapterPattern: cfg.Form.RequireChapterPattern,
	})
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", site.Name, err)
	}

	a.Client, err = ingest.NewClient(cfg.APIBase,
		ingest.WithIngestPath(cfg.IngestPath),
		ingest.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("init ingest client: %w", err)
	}

	var hist submission.History
	if !opts.NoHistory && strings.TrimSpace(cfg.HistoryDB) != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("history disabled", "path", cfg.HistoryDB, "error", err)
		} else {
			a.History = store
			hist = store
		}
	}

	bufOpts := []logbuf.Option{logbuf.WithLogger(logger.With("component", "console"))}
	if opts.Scheduler != nil {
		bufOpts = append(bufOpts, logbuf.WithScheduler(opts.Scheduler))
	}
	a.Log = logbuf.New(logbuf.DefaultLimit, bufOpts...)
	a.Form = form.NewModel()
	a.Fetcher = metadata.NewFetcher(nil)

	a.Controller, err = submission.New(submission.Deps{
		Client:    a.Client,
		Log:       a.Log,
		Form:      a.Form,
		Rules:     rules,
		Notifier:  opts.Notifier,
		Navigator: opts.Navigator,
		History:   hist,
		Logger:    logger.Logger,
		OnStateChange: func(from, to submission.State) {
			logger.Debug("submission state changed", "from", from, "to", to)
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("mtlreq ready",
		"endpoint", a.Client.Endpoint(),
		"site", site.Name,
		"history", a.History != nil,
	)
	ok = true
	return a, nil
}

// Close releases the history database and log files.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.History != nil {
		errs = append(errs, a.History.Close())
		a.History = nil
	}
	if a.Logger != nil {
		errs = append(errs, a.Logger.Close())
	}
	return errors.Join(errs...)
}

// Slog returns the application logger.
func (a *App) Slog() *slog.Logger {
	if a == nil || a.Logger == nil {
		return logging.Discard()
	}
	return a.Logger.Logger
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	effects := ui.NewEffects()
	opts.Scheduler = effects
	opts.Notifier = effects
	opts.Navigator = effects
	opts.LogToStderr = false

	userPrefs, prefsErr := prefs.Load(opts.PrefsPath)
	if strings.TrimSpace(opts.Site) == "" {
		opts.Site = userPrefs.LastSite
	}

	a, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if prefsErr != nil {
		a.Slog().Warn("load preferences failed", "error", prefsErr)
	}

	return ui.Run(ui.Options{
		Context:        ctx,
		Controller:     a.Controller,
		Form:           a.Form,
		Log:            a.Log,
		Effects:        effects,
		Fetcher:        a.Fetcher,
		Site:           a.Site,
		Config:         a.Config,
		Endpoint:       a.Client.Endpoint(),
		HistoryEnabled: a.History != nil,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		ConsoleOpen:    userPrefs.ConsoleOpen,
		Logger:         a.Slog(),
	})
}
