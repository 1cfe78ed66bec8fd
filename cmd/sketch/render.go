package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sketch/backend/raster"
	"github.com/phanxgames/sketch/scenefile"
)

func newRenderCommand() *cobra.Command {
	var (
		output     string
		scriptPath string
		shotDir    string
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Rasterize a scene to PNG",
		Long: `Rasterize a scene to PNG.

A JSON input script can drive the scene before the final image is written.
Script screenshots are saved to --screenshots.

Examples:
  sketch render scene.yaml -o scene.png
  sketch render scene.yaml --scale 2 -o scene@2x.png
  sketch render scene.yaml --script clicks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			if scale > 0 {
				scene.Scale = scale
			}
			bg, err := background(scene)
			if err != nil {
				return err
			}

			s := raster.New(raster.Options{
				Width:         int(math.Ceil(scene.Width * scene.Scale)),
				Height:        int(math.Ceil(scene.Height * scene.Scale)),
				Background:    bg,
				ScreenshotDir: shotDir,
			})
			w, err := scene.NewWindow(s, scenefile.Options{Measurer: s.Measurer()})
			if err != nil {
				return err
			}
			defer w.Close()

			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				script, err := raster.LoadScript(data)
				if err != nil {
					return err
				}
				shots, err := script.Run(s, w)
				for _, shot := range shots {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "screenshot %s\n", shot)
				}
				if err != nil {
					return err
				}
			}

			if err := s.SavePNG(output); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, s.Image().Bounds().Dx(), s.Image().Bounds().Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "scene.png", "PNG file to write")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to run before writing")
	cmd.Flags().StringVar(&shotDir, "screenshots", "screenshots", "Directory for script screenshots")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Override the scene's scale factor")

	return cmd
}
