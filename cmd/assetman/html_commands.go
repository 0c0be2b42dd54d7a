package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"assetman/internal/editor"
	"assetman/internal/script"
)

func newHTMLCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Manage HTML fragments of a note type",
	}
	cmd.AddCommand(newHTMLShowCommand(ctx))
	cmd.AddCommand(newHTMLAddCommand(ctx))
	cmd.AddCommand(newHTMLUpdateCommand(ctx))
	cmd.AddCommand(newHTMLRemoveCommand(ctx))
	return cmd
}

func newHTMLShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "List the HTML fragments of a note type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				html, err := ws.repo.HTML(c, nt.ID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Note type: %d (%s)\n", nt.ID, nt.Name)
				fmt.Fprintf(out, "Enabled:   %s\n", yesNo(html.Enabled))
				fmt.Fprintf(out, "Minify:    %s\n", yesNo(html.Minify))
				if len(html.Fragments) == 0 {
					fmt.Fprintln(out, "No fragments configured")
					return nil
				}
				rows := make([][]string, 0, len(html.Fragments))
				for i, fragment := range html.Fragments {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						fragment.Name,
						yesNo(fragment.Enabled),
						fragment.Version,
						strconv.Itoa(len(fragment.Conditions)),
						strconv.Itoa(len(fragment.Code)),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"#", "Name", "Enabled", "Version", "Conditions", "Bytes"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func newHTMLAddCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var codeFile string
	cmd := &cobra.Command{
		Use:   "add <model>",
		Short: "Append a new HTML fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := codeAssignments(sets, codeFile)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				html, err := ws.repo.HTML(c, nt.ID)
				if err != nil {
					return err
				}
				fragment, err := editFragment(ws, script.DefaultConcreteHTML(), assignments)
				if err != nil {
					return err
				}
				html.Fragments = append(html.Fragments, fragment)
				if err := ws.repo.WriteHTML(c, nt.ID, html); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added fragment %d to note type %d\n", len(html.Fragments), nt.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment field=value (repeatable, applied in order)")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "Read the fragment HTML from a file")
	return cmd
}

func newHTMLUpdateCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var codeFile string
	cmd := &cobra.Command{
		Use:   "update <model> <index>",
		Short: "Edit an HTML fragment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := codeAssignments(sets, codeFile)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				html, err := ws.repo.HTML(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(html.Fragments))
				if err != nil {
					return err
				}
				fragment, err := editFragment(ws, html.Fragments[idx], assignments)
				if err != nil {
					return err
				}
				html.Fragments[idx] = fragment
				if err := ws.repo.WriteHTML(c, nt.ID, html); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated fragment %d of note type %d\n", idx+1, nt.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment field=value (repeatable, applied in order)")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "Read the fragment HTML from a file")
	return cmd
}

func newHTMLRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model> <index>",
		Short: "Remove an HTML fragment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				html, err := ws.repo.HTML(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(html.Fragments))
				if err != nil {
					return err
				}
				html.Fragments = append(html.Fragments[:idx], html.Fragments[idx+1:]...)
				if err := ws.repo.WriteHTML(c, nt.ID, html); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed fragment %d from note type %d\n", idx+1, nt.ID)
				return nil
			})
		},
	}
}

func codeAssignments(sets []string, codeFile string) ([]assignment, error) {
	assignments, err := parseAssignments(sets)
	if err != nil {
		return nil, err
	}
	if codeFile != "" {
		code, err := readCodeFile(codeFile)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment{field: "code", value: code})
	}
	return assignments, nil
}

func editFragment(ws *workspace, fragment script.ConcreteHTML, assignments []assignment) (script.ConcreteHTML, error) {
	session, err := editor.OpenHTML(ws.validator, fragment)
	if err != nil {
		return script.ConcreteHTML{}, err
	}
	if err := applyAssignments(session, assignments); err != nil {
		return script.ConcreteHTML{}, err
	}
	return session.Export()
}
