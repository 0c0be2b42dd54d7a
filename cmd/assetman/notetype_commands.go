package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"assetman/internal/script"
)

func newNotetypeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notetype",
		Aliases: []string{"model"},
		Short:   "Manage note types",
	}
	cmd.AddCommand(newNotetypeAddCommand(ctx))
	cmd.AddCommand(newNotetypeListCommand(ctx))
	return cmd
}

func newNotetypeAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Register a note type and write its default settings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note type id %q", args[0])
			}
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := ws.store.AddNotetype(c, id, args[1])
				if err != nil {
					return err
				}
				// The registry was built before the note type existed, so
				// install the manifests again to pick up its meta scripts.
				if err := installFor(ws, nt.ID); err != nil {
					return err
				}
				scripts, err := ws.repo.Codec().DeserializeSetting(nt.ID, map[string]any{})
				if err != nil {
					return err
				}
				if err := ws.repo.WriteAll(c, nt.ID, script.DefaultHTMLSetting(), scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added note type %d (%s) with %d script(s)\n", nt.ID, nt.Name, len(scripts.Scripts))
				return nil
			})
		},
	}
}

func newNotetypeListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List note types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
				notetypes, err := ws.store.Notetypes(c)
				if err != nil {
					return err
				}
				if asJSON {
					type row struct {
						ID      int64  `json:"id"`
						Name    string `json:"name"`
						Scripts int    `json:"scripts"`
					}
					rows := make([]row, 0, len(notetypes))
					for _, nt := range notetypes {
						s, err := ws.repo.Scripts(c, nt.ID)
						if err != nil {
							return fmt.Errorf("note type %d: %w", nt.ID, err)
						}
						rows = append(rows, row{ID: nt.ID, Name: nt.Name, Scripts: len(s.Scripts)})
					}
					return writeJSON(cmd, rows)
				}
				if len(notetypes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No note types registered")
					return nil
				}
				rows := make([][]string, 0, len(notetypes))
				for _, nt := range notetypes {
					s, err := ws.repo.Scripts(c, nt.ID)
					if err != nil {
						return fmt.Errorf("note type %d: %w", nt.ID, err)
					}
					rows = append(rows, []string{
						strconv.FormatInt(nt.ID, 10),
						nt.Name,
						strconv.Itoa(len(s.Scripts)),
						yesNo(s.Enabled),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"ID", "Name", "Scripts", "Enabled"}, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
