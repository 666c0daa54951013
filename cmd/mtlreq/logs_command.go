package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/mtlreq/internal/config"
	"github.com/five82/mtlreq/internal/logtail"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the mtlreq log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(ctx.appOptions().ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			keep, err := logtail.MinLevel(level)
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			out, err := logtail.Read(path, lines, keep)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out) == 0 {
				fmt.Fprintf(w, "No log entries in %s\n", path)
				return nil
			}
			for _, line := range out {
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show (debug, info, warn, error)")
	return cmd
}
