package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sketch"
	"github.com/phanxgames/sketch/scenefile"
)

const version = "0.1.0"

type globalFlags struct {
	debug bool
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "sketch",
		Short: "Render and inspect sketch scene files",
		Long: `sketch works with YAML scene files describing shapes, labels, images
and nested compounds. Scenes can be validated, rasterized to PNG, exported
to SVG, hit-tested from the command line, or shown in a window.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				sketch.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
				sketch.SetDebugMode(true)
			} else {
				sketch.SetLogger(nil)
				sketch.SetDebugMode(false)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging and scene checks")

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newSVGCommand())
	cmd.AddCommand(newHitCommand())
	cmd.AddCommand(newShowCommand())

	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene.yaml>",
		Short: "Check a scene file against the scene schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "✗ Scene invalid")
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Scene valid: %d top-level objects, %gx%g\n",
				len(scene.Objects), scene.Width, scene.Height)
			return nil
		},
	}
}

// background resolves the scene's background color, white when unset.
func background(scene *scenefile.Scene) (color.Color, error) {
	if scene.Background == "" {
		return color.White, nil
	}
	c, err := sketch.ParseColor(scene.Background)
	if err != nil {
		return nil, fmt.Errorf("scene background: %w", err)
	}
	return c, nil
}
