package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"assetman/internal/config"
	"assetman/internal/fileutil"
	"assetman/internal/logging"
	"assetman/internal/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var templateName string
	var sideFlag string
	var assetsDir string
	var applyPath string

	cmd := &cobra.Command{
		Use:   "render <model>",
		Short: "Render the script and HTML block for a card template",
		Long: "Render the script and HTML block for a card template. By default the block is " +
			"printed; --apply replaces the stub block inside a template file and --assets-dir " +
			"writes external script files.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := render.ParseSide(sideFlag)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd, false, func(c context.Context, ws *workspace) error {
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

				renderer := render.NewFromConfig(ws.registry, ws.cfg, logging.WithContext(logging.WithModelID(c, nt.ID), ws.logger))
				result, err := renderer.Render(scripts, html, render.Target{Model: nt.Name, Template: templateName, Side: side})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if assetsDir != "" {
					dir, err := config.ExpandPath(assetsDir)
					if err != nil {
						return err
					}
					for _, asset := range result.Assets {
						if err := fileutil.WriteFile(filepath.Join(dir, asset.Name), []byte(asset.Content)); err != nil {
							return fmt.Errorf("write asset %s: %w", asset.Name, err)
						}
					}
					fmt.Fprintf(out, "Wrote %d asset(s) to %s\n", len(result.Assets), dir)
				}

				if applyPath == "" {
					fmt.Fprintln(out, result.Block)
					return nil
				}
				path, err := config.ExpandPath(applyPath)
				if err != nil {
					return err
				}
				current, err := readInput(path)
				if err != nil {
					return err
				}
				updated := renderer.Apply(string(current), result)
				if err := fileutil.WriteFile(path, []byte(updated+"\n")); err != nil {
					return fmt.Errorf("write template %s: %w", path, err)
				}
				fmt.Fprintf(out, "Updated %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&templateName, "template", "t", "Card 1", "Card template name")
	cmd.Flags().StringVarP(&sideFlag, "side", "s", string(render.SideFront), "Card side (front or back)")
	cmd.Flags().StringVar(&assetsDir, "assets-dir", "", "Directory to write external script files into")
	cmd.Flags().StringVar(&applyPath, "apply", "", "Template file whose stub block is replaced in place")
	return cmd
}
