package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newIfaceCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iface",
		Aliases: []string{"interface"},
		Short:   "Inspect registered script interfaces",
	}
	cmd.AddCommand(newIfaceListCommand(ctx))
	return cmd
}

func newIfaceListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interfaces loaded from the manifests directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
				modelIDs, err := ws.store.NotetypeIDs(c)
				if err != nil {
					return err
				}
				installs := make(map[string]int)
				for _, id := range modelIDs {
					for _, ref := range ws.registry.MetaScripts(id) {
						installs[ref.Tag]++
					}
				}

				if asJSON {
					type row struct {
						Tag       string   `json:"tag"`
						Manifest  string   `json:"manifest"`
						Store     []string `json:"store"`
						Readonly  []string `json:"readonly"`
						Reset     bool     `json:"reset"`
						Installed int      `json:"installed"`
					}
					rows := make([]row, 0, len(ws.manifests))
					for _, d := range ws.manifests {
						rows = append(rows, row{
							Tag:       d.Tag(),
							Manifest:  d.Path(),
							Store:     d.Store().Names(),
							Readonly:  d.Readonly().Names(),
							Reset:     d.Resettable(),
							Installed: installs[d.Tag()],
						})
					}
					return writeJSON(cmd, rows)
				}

				out := cmd.OutOrStdout()
				if len(ws.manifests) == 0 {
					fmt.Fprintf(out, "No interfaces found in %s\n", ws.cfg.Paths.InterfacesDir)
					return nil
				}
				rows := make([][]string, 0, len(ws.manifests))
				for _, d := range ws.manifests {
					rows = append(rows, []string{
						d.Tag(),
						strings.Join(d.Store().Names(), ", "),
						strings.Join(d.Readonly().Names(), ", "),
						yesNo(d.Resettable()),
						strconv.Itoa(installs[d.Tag()]),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Tag", "Stored", "Read only", "Reset", "Installed"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
