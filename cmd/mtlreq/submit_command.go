package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/mtlreq/internal/app"
	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/submission"
)

type submitFlags struct {
	chapterPattern string
	imageURL       string
	titleEn        string
	titleZh        string
	author         string
	synopsis       string
	genres         string
	tags           string
	verbose        bool
}

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags

	cmd := &cobra.Command{
		Use:   "submit <book-url>",
		Short: "Submit one ingestion request and print the reader link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var notices []string
			var route string
			opts := ctx.appOptions()
			opts.Notifier = submission.NotifyFunc(func(sev submission.Severity, msg string) {
				if sev != submission.SeverityError {
					notices = append(notices, msg)
				}
			})
			opts.Navigator = submission.NavigateFunc(func(path string) { route = path })

			return ctx.withApp(opts, func(a *app.App) error {
				state := flags.state(args[0])
				outcome, err := a.Controller.Submit(cmd.Context(), state)
				if flags.verbose {
					for _, line := range a.Log.Lines() {
						fmt.Fprintln(cmd.ErrOrStderr(), line)
					}
				}
				if err != nil {
					return err
				}
				if !outcome.Succeeded() {
					if outcome.Message != "" {
						return errors.New(outcome.Message)
					}
					return outcome.Err
				}

				for _, msg := range notices {
					fmt.Fprintln(out, msg)
				}
				if route == "" {
					route = outcome.Route
				}
				fmt.Fprintf(out, "Reader: %s\n", a.Config.ReaderURL(route))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.chapterPattern, "chapter-pattern", "", "Chapter file name pattern, e.g. p1.html")
	f.StringVar(&flags.imageURL, "image-url", "", "Cover image URL")
	f.StringVar(&flags.titleEn, "title-en", "", "English title")
	f.StringVar(&flags.titleZh, "title-zh", "", "Chinese title")
	f.StringVar(&flags.author, "author", "", "Author")
	f.StringVar(&flags.synopsis, "synopsis", "", "Synopsis")
	f.StringVar(&flags.genres, "genres", "", "Comma-separated genres")
	f.StringVar(&flags.tags, "tags", "", "Comma-separated tags")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Print the console trail to stderr")
	return cmd
}

func (f submitFlags) state(bookURL string) form.State {
	return form.NewState(map[form.Field]string{
		form.BookURL:        strings.TrimSpace(bookURL),
		form.ChapterPattern: f.chapterPattern,
		form.ImageURL:       f.imageURL,
		form.TitleEn:        f.titleEn,
		form.TitleZh:        f.titleZh,
		form.Author:         f.author,
		form.Synopsis:       f.synopsis,
		form.Genres:         f.genres,
		form.Tags:           f.tags,
	})
}
