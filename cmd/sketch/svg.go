package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sketch/backend/svgexport"
	"github.com/phanxgames/sketch/scenefile"
)

func newSVGCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "svg <scene.yaml>",
		Short: "Export a scene as an SVG document",
		Long: `Export a scene as an SVG document. Use "-o -" to write to stdout.

Images are embedded as PNG data URIs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			s := svgexport.New()
			w, err := scene.NewWindow(s, scenefile.Options{})
			if err != nil {
				return err
			}
			defer w.Close()

			if output == "-" {
				_, err := s.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := s.SaveFile(output); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "scene.svg", `SVG file to write, or "-" for stdout`)
	return cmd
}
