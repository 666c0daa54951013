package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/mtlreq/internal/app"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "mtlreq",
		Short:         "Request novels from the ingestion service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), ctx.appOptions())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.prefsPath, "prefs", "", "Preferences file path")
	flags.StringVar(&ctx.apiBase, "api", "", "Ingestion API base URL (overrides api_base)")
	flags.StringVar(&ctx.site, "site", "", "Source site preset (overrides site)")
	flags.BoolVar(&ctx.noHistory, "no-history", false, "Do not read or write the history database")

	rootCmd.AddCommand(newTUICommand(ctx))
	rootCmd.AddCommand(newSubmitCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newSitesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))

	return rootCmd
}

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive request form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), ctx.appOptions())
		},
	}
}
