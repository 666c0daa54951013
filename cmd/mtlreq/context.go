package main

import (
	"strings"

	"github.com/five82/mtlreq/internal/app"
)

type commandContext struct {
	configPath string
	prefsPath  string
	apiBase    string
	site       string
	noHistory  bool
}

func (c *commandContext) appOptions() app.Options {
	return app.Options{
		ConfigPath: strings.TrimSpace(c.configPath),
		PrefsPath:  strings.TrimSpace(c.prefsPath),
		APIBase:    c.apiBase,
		Site:       c.site,
		NoHistory:  c.noHistory,
	}
}

// withApp builds the application for a one-shot command and closes it after fn.
func (c *commandContext) withApp(opts app.Options, fn func(*app.App) error) error {
	a, err := app.Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

// readOnlyOptions skips the history database for commands that never need it.
func (c *commandContext) readOnlyOptions() app.Options {
	opts := c.appOptions()
	opts.NoHistory = true
	return opts
}
