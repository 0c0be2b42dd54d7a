package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"assetman/internal/editor"
	"assetman/internal/logging"
	"assetman/internal/script"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Add, edit, reset and remove scripts of a note type",
	}
	cmd.AddCommand(newScriptShowCommand(ctx))
	cmd.AddCommand(newScriptAddCommand(ctx))
	cmd.AddCommand(newScriptUpdateCommand(ctx))
	cmd.AddCommand(newScriptResetCommand(ctx))
	cmd.AddCommand(newScriptRemoveCommand(ctx))
	return cmd
}

func newScriptShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model> <index>",
		Short: "Show one script as the editor sees it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				scripts, err := ws.repo.Scripts(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(scripts.Scripts))
				if err != nil {
					return err
				}
				session, err := editor.Open(ws.registry, ws.validator, scripts.Scripts[idx])
				if err != nil {
					return err
				}
				printForm(cmd, session)
				return nil
			})
		},
	}
}

func printForm(cmd *cobra.Command, session *editor.Session) {
	out := cmd.OutOrStdout()
	form := session.Form()
	marker := func(f script.Field) string {
		if session.Editable(f) {
			return ""
		}
		return " (read only)"
	}
	fmt.Fprintf(out, "%s\n", session.Title())
	fmt.Fprintf(out, "  name:        %s%s\n", form.Name, marker(script.FieldName))
	fmt.Fprintf(out, "  enabled:     %s%s\n", yesNo(form.Enabled), marker(script.FieldEnabled))
	fmt.Fprintf(out, "  type:        %s%s\n", form.Type.DisplayName(), marker(script.FieldType))
	fmt.Fprintf(out, "  version:     %s%s\n", form.Version, marker(script.FieldVersion))
	fmt.Fprintf(out, "  description: %s%s\n", form.Description, marker(script.FieldDescription))
	fmt.Fprintf(out, "  position:    %s%s\n", form.Position.DisplayName(), marker(script.FieldPosition))
	fmt.Fprintf(out, "  conditions:  %s%s\n", form.Conditions, marker(script.FieldConditions))
	fmt.Fprintf(out, "  reset:       %s\n", yesNo(session.CanReset()))
	fmt.Fprintf(out, "  code%s:\n%s\n", marker(script.FieldCode), form.Code)
}

func newScriptAddCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var codeFile string
	cmd := &cobra.Command{
		Use:   "add <model>",
		Short: "Append a new script",
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
				scripts, err := ws.repo.Scripts(c, nt.ID)
				if err != nil {
					return err
				}
				fresh := script.DefaultConcreteScript()
				exported, err := editScript(c, cmd, ws, &fresh, assignments)
				if err != nil {
					return err
				}
				scripts.Scripts = append(scripts.Scripts, exported)
				if err := ws.repo.WriteScripts(c, nt.ID, scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added script %d to note type %d\n", len(scripts.Scripts), nt.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment field=value (repeatable, applied in order)")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "Read the script code from a file")
	return cmd
}

func newScriptUpdateCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var codeFile string
	cmd := &cobra.Command{
		Use:   "update <model> <index>",
		Short: "Edit an existing script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := codeAssignments(sets, codeFile)
			if err != nil {
				return err
			}
			if len(assignments) == 0 {
				return errors.New("nothing to update: pass --set field=value or --code-file")
			}
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				scripts, err := ws.repo.Scripts(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(scripts.Scripts))
				if err != nil {
					return err
				}
				exported, err := editScript(c, cmd, ws, scripts.Scripts[idx], assignments)
				if err != nil {
					return err
				}
				scripts.Scripts[idx] = exported
				if err := ws.repo.WriteScripts(c, nt.ID, scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated script %d of note type %d\n", idx+1, nt.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment field=value (repeatable, applied in order)")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "Read the script code from a file")
	return cmd
}

// editScript runs an edit session over s and returns the record to store.
func editScript(c context.Context, cmd *cobra.Command, ws *workspace, s script.Script, assignments []assignment) (script.Script, error) {
	session, err := editor.Open(ws.registry, ws.validator, s)
	if err != nil {
		return nil, err
	}
	if err := applyAssignments(session, assignments); err != nil {
		return nil, err
	}
	if ws.cfg.Editor.CheckCode {
		reportCodeIssues(c, cmd, ws.logger, session)
	}
	return session.Export()
}

// reportCodeIssues prints syntax problems as warnings. They never block the
// save.
func reportCodeIssues(c context.Context, cmd *cobra.Command, logger *slog.Logger, session *editor.Session) {
	issues, err := session.CheckCode(c)
	if err != nil {
		logger.Debug("code check failed", logging.Error(err))
		return
	}
	if len(issues) == 0 {
		return
	}
	logging.WarnWithContext(logger, "script code has syntax errors", "code_check",
		logging.String("script", session.Title()),
		logging.Int("issues", len(issues)),
	)
	errOut := cmd.ErrOrStderr()
	for _, issue := range issues {
		fmt.Fprintf(errOut, "warning: %s: %s\n", session.Title(), issue)
	}
}

func newScriptResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <model> <index>",
		Short: "Reset a meta script through its interface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				scripts, err := ws.repo.Scripts(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(scripts.Scripts))
				if err != nil {
					return err
				}
				session, err := editor.Open(ws.registry, ws.validator, scripts.Scripts[idx])
				if err != nil {
					return err
				}
				if err := session.Reset(); err != nil {
					return fmt.Errorf("reset script %d: %w", idx+1, err)
				}
				exported, err := session.Export()
				if err != nil {
					return err
				}
				scripts.Scripts[idx] = exported
				if err := ws.repo.WriteScripts(c, nt.ID, scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset script %d of note type %d\n", idx+1, nt.ID)
				return nil
			})
		},
	}
}

func newScriptRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model> <index>",
		Short: "Remove a concrete script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				scripts, err := ws.repo.Scripts(c, nt.ID)
				if err != nil {
					return err
				}
				idx, err := parseIndex(args[1], len(scripts.Scripts))
				if err != nil {
					return err
				}
				if meta, ok := scripts.Scripts[idx].(*script.MetaScript); ok {
					return managedScriptError(ws, idx, meta)
				}
				scripts.Scripts = append(scripts.Scripts[:idx], scripts.Scripts[idx+1:]...)
				if err := ws.repo.WriteScripts(c, nt.ID, scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed script %d from note type %d\n", idx+1, nt.ID)
				return nil
			})
		},
	}
}

// managedScriptError explains why a meta script cannot be removed. The
// disable hint is only given when the interface persists an editable enabled
// flag.
func managedScriptError(ws *workspace, idx int, meta *script.MetaScript) error {
	iface, err := ws.registry.Interface(meta.Tag)
	if err == nil && iface.Store().Has(script.FieldEnabled) && !iface.Readonly().Has(script.FieldEnabled) {
		return fmt.Errorf("script %d is managed by interface %q; disable it with --set enabled=false instead", idx+1, meta.Tag)
	}
	return fmt.Errorf("script %d is managed by interface %q and cannot be removed", idx+1, meta.Tag)
}

func readCodeFile(path string) (string, error) {
	data, err := readInput(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
