package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/mtlreq/internal/app"
	"github.com/five82/mtlreq/internal/sites"
)

func newSitesCommand(ctx *commandContext) *cobra.Command {
	sitesCmd := &cobra.Command{
		Use:   "sites",
		Short: "List source site presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(ctx.readOnlyOptions(), func(a *app.App) error {
				rows := make([][]string, 0)
				for _, name := range a.Catalog.Names() {
					site, _ := a.Catalog.Get(name)
					marker := ""
					if site.Name == a.Site.Name {
						marker = "*"
					}
					rows = append(rows, []string{marker, site.Name, site.BookURLExample, yesNo(!site.Metadata.Empty())})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
					{header: ""},
					{header: "Site"},
					{header: "Example"},
					{header: "Metadata"},
				}, rows))
				return nil
			})
		},
	}

	sitesCmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print one preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(ctx.readOnlyOptions(), func(a *app.App) error {
				site, ok := a.Catalog.Get(args[0])
				if !ok {
					return fmt.Errorf("unknown site %q (known: %s)", args[0], strings.Join(a.Catalog.Names(), ", "))
				}
				data, err := yaml.Marshal(map[string]sites.Site{site.Name: site})
				if err != nil {
					return fmt.Errorf("encode site: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	})

	return sitesCmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
