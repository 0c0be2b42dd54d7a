package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"assetman/internal/fileutil"
	"assetman/internal/registry"
	"assetman/internal/script"
	"assetman/internal/setting"
	"assetman/internal/store"
)

func newSettingCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Inspect, export and import note type settings",
	}
	cmd.AddCommand(newSettingShowCommand(ctx))
	cmd.AddCommand(newSettingSetCommand(ctx))
	cmd.AddCommand(newSettingExportCommand(ctx))
	cmd.AddCommand(newSettingImportCommand(ctx))
	return cmd
}

func newSettingShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "Show the scripts configured for a note type",
		Args:  cobra.ExactArgs(1),
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
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Note type:   %d (%s)\n", nt.ID, nt.Name)
				fmt.Fprintf(out, "Enabled:     %s\n", yesNo(scripts.Enabled))
				fmt.Fprintf(out, "Insert stub: %s\n", yesNo(scripts.InsertStub))
				fmt.Fprintf(out, "Indent size: %d\n", scripts.IndentSize)
				if len(scripts.Scripts) == 0 {
					fmt.Fprintln(out, "No scripts configured")
					return nil
				}
				rows, err := scriptRows(ws.registry, scripts)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"#", "Kind", "Name", "Enabled", "Type", "Position", "Version"},
					rows,
					[]columnAlignment{alignRight},
				))
				return nil
			})
		},
	}
}

func scriptRows(reg *registry.Registry, s script.ScriptSetting) ([][]string, error) {
	rows := make([][]string, 0, len(s.Scripts))
	for i, entry := range s.Scripts {
		resolved, err := setting.Resolve(reg, entry)
		if err != nil {
			return nil, fmt.Errorf("script %d: %w", i+1, err)
		}
		name := resolved.Name
		if meta, ok := entry.(*script.MetaScript); ok {
			iface, err := reg.Interface(meta.Tag)
			if err != nil {
				return nil, err
			}
			name = registry.Label(iface, meta.ID, meta.Storage)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(entry.Kind()),
			name,
			yesNo(resolved.Enabled),
			resolved.Type.DisplayName(),
			resolved.Position.DisplayName(),
			resolved.Version,
		})
	}
	return rows, nil
}

func newSettingSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <model> <key=value>...",
		Short: "Change setting-level options (enabled, insertStub, indentSize, html.enabled, html.minify)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args[1:])
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
				html, err := ws.repo.HTML(c, nt.ID)
				if err != nil {
					return err
				}
				for _, a := range assignments {
					if err := applySettingOption(&scripts, &html, a); err != nil {
						return err
					}
				}
				if err := ws.repo.WriteAll(c, nt.ID, html, scripts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated settings for note type %d\n", nt.ID)
				return nil
			})
		},
	}
}

func applySettingOption(scripts *script.ScriptSetting, html *script.HTMLSetting, a assignment) error {
	parseBool := func() (bool, error) {
		v, err := strconv.ParseBool(strings.TrimSpace(a.value))
		if err != nil {
			return false, fmt.Errorf("%s: %q is not a boolean", a.field, a.value)
		}
		return v, nil
	}
	var err error
	switch a.field {
	case "enabled":
		scripts.Enabled, err = parseBool()
	case "insertStub":
		scripts.InsertStub, err = parseBool()
	case "indentSize":
		n, convErr := strconv.Atoi(strings.TrimSpace(a.value))
		if convErr != nil || n < 0 || n > script.MaxIndentSize {
			return fmt.Errorf("indentSize must be an integer between 0 and %d, got %q", script.MaxIndentSize, a.value)
		}
		scripts.IndentSize = n
	case "html.enabled":
		html.Enabled, err = parseBool()
	case "html.minify":
		html.Minify, err = parseBool()
	default:
		return fmt.Errorf("unknown setting option %q", a.field)
	}
	return err
}

func newSettingExportCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var selector string
	var output string

	cmd := &cobra.Command{
		Use:   "export <model>",
		Short: "Print a note type setting as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				var doc any
				switch kind {
				case store.KindHTML:
					html, err := ws.repo.HTML(c, nt.ID)
					if err != nil {
						return err
					}
					doc = setting.SerializeHTMLSetting(html)
				default:
					scripts, err := ws.repo.Scripts(c, nt.ID)
					if err != nil {
						return err
					}
					doc = setting.SerializeSetting(scripts)
				}
				if selector != "" {
					matches, err := selectJSON(doc, selector)
					if err != nil {
						return err
					}
					doc = matches
				}
				if output == "" {
					return writeJSON(cmd, doc)
				}
				data, err := marshalJSON(doc)
				if err != nil {
					return err
				}
				if err := fileutil.WriteFile(output, data); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s setting of note type %d to %s\n", kind, nt.ID, output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", string(store.KindScripts), "Setting kind (scripts or html)")
	cmd.Flags().StringVar(&selector, "select", "", "JSONPath expression selecting part of the setting")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newSettingImportCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "import <model> <file>",
		Short: "Replace a note type setting with a JSON document",
		Long: "Replace a note type setting with a JSON document. The document is validated " +
			"against the setting schema first; on any error the stored setting is left untouched.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			data, err := readInput(args[1])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, true, func(c context.Context, ws *workspace) error {
				nt, err := resolveModel(c, ws.store, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch kind {
				case store.KindHTML:
					html, err := ws.repo.ImportHTML(c, nt.ID, data)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d fragment(s) into note type %d\n", len(html.Fragments), nt.ID)
				default:
					scripts, err := ws.repo.ImportScripts(c, nt.ID, data)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d script(s) into note type %d\n", len(scripts.Scripts), nt.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", string(store.KindScripts), "Setting kind (scripts or html)")
	return cmd
}
