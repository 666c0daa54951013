package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/mtlreq/internal/app"
	"github.com/five82/mtlreq/internal/history"
	"github.com/five82/mtlreq/internal/submission"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent successful requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.appOptions()
			if opts.NoHistory {
				return errors.New("history is disabled by --no-history")
			}
			return ctx.withApp(opts, func(a *app.App) error {
				if a.History == nil {
					return fmt.Errorf("history database %s is unavailable", a.Config.HistoryDB)
				}
				subs, err := a.History.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(subs) == 0 {
					fmt.Fprintln(out, "No requests recorded yet.")
					return nil
				}
				fmt.Fprintln(out, renderHistory(subs, a.Config.ReaderURL))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultRecent, "Number of requests to show")
	return cmd
}

func renderHistory(subs []history.Submission, readerURL func(string) string) string {
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		title := sub.Title
		if title == "" {
			title = "-"
		}
		rows = append(rows, []string{
			strconv.FormatInt(sub.ID, 10),
			sub.NovelID,
			title,
			sub.URL,
			readerURL(submission.Route(sub.NovelID)),
			sub.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable([]column{
		{header: "#", align: alignRight},
		{header: "Novel", align: alignRight},
		{header: "Title", maxWidth: 32},
		{header: "Book URL", maxWidth: 48},
		{header: "Reader"},
		{header: "Submitted"},
	}, rows)
}
