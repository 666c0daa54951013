package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/mtlreq/internal/app"
	"github.com/five82/mtlreq/internal/config"
)

const sampleConfig = `# mtlreq configuration

# Base URL of the ingestion API. The request is POSTed to api_base + ingest_path.
api_base = "http://127.0.0.1:8000"
ingest_path = "/api/ingest"

# Reader site used to turn /read/{novel_id} into a full link. Optional.
# reader_base = "http://127.0.0.1:3000"

# Scraping a whole book can take a while.
request_timeout_seconds = 120

# Source site preset; see "mtlreq sites".
site = "generic"
sites_file = "~/.config/mtlreq/sites.yaml"

history_db = "~/.local/share/mtlreq/history.db"
log_dir = "~/.local/share/mtlreq/logs"
log_level = "info"

[form]
require_titles = false
require_author = false
require_chapter_pattern = false
`

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(ctx.readOnlyOptions(), func(a *app.App) error {
				cfg := a.Config
				reader := cfg.ReaderBase
				if reader == "" {
					reader = "(routes only)"
				}
				rows := [][]string{
					{"endpoint", a.Client.Endpoint()},
					{"reader_base", reader},
					{"request_timeout", cfg.RequestTimeout.String()},
					{"site", a.Site.Name},
					{"sites_file", cfg.SitesFile},
					{"history_db", cfg.HistoryDB},
					{"log_file", cfg.LogPath()},
					{"log_level", cfg.LogLevel},
					{"require_titles", yesNo(cfg.Form.RequireTitles)},
					{"require_author", yesNo(cfg.Form.RequireAuthor)},
					{"require_chapter_pattern", yesNo(cfg.Form.RequireChapterPattern)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{{header: "Key"}, {header: "Value"}}, rows))
				return nil
			})
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = config.DefaultPath()
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			target = expanded

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
