package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sketch"
	"github.com/phanxgames/sketch/backend/raster"
	"github.com/phanxgames/sketch/console"
	"github.com/phanxgames/sketch/scenefile"
)

func newHitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hit <scene.yaml> [x y]",
		Short: "Report the topmost object at a point",
		Long: `Report the topmost top-level object containing a point, in window
coordinates (after the scene's scale factor).

Without coordinates, points are read from standard input, one "x y" pair
per line, until end of input.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return errors.New("expected <scene.yaml> or <scene.yaml> <x> <y>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			// The raster surface measures labels with the fonts it would
			// draw them with, so hit boxes match rendered output.
			s := raster.New(raster.Options{})
			w, err := scene.NewWindow(s, scenefile.Options{Measurer: s.Measurer()})
			if err != nil {
				return err
			}
			defer w.Close()

			if len(args) == 3 {
				x, y, err := parsePoint(args[1], args[2])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), describeHit(w, x, y))
				return nil
			}
			return hitLoop(cmd.Context(), console.New(cmd.InOrStdin(), cmd.OutOrStdout()), w)
		},
	}
	return cmd
}

// hitLoop answers "x y" queries until the input ends.
func hitLoop(ctx context.Context, con *console.Console, w *sketch.Window) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var handle func(string)
	handle = func(line string) {
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
		case len(fields) != 2:
			con.Println(`expected "x y"`)
		default:
			x, y, err := parsePoint(fields[0], fields[1])
			if err != nil {
				con.Println(err.Error())
				break
			}
			con.Println(describeHit(w, x, y))
		}
		con.RequestInput("x y> ", handle)
	}
	con.RequestInput("x y> ", handle)

	for {
		err := con.Next(ctx)
		if errors.Is(err, io.EOF) {
			con.Println("")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func parsePoint(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y %q: %w", ys, err)
	}
	return x, y, nil
}

func describeHit(w *sketch.Window, x, y float64) string {
	obj := w.ElementAt(x, y)
	if obj == nil {
		return fmt.Sprintf("%g,%g: nothing", x, y)
	}
	kind := strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", obj), "*sketch."))
	name := obj.Name()
	if name == "" {
		name = "(unnamed)"
	}
	b := obj.Bounds()
	return fmt.Sprintf("%g,%g: %s %s at (%g, %g) size %gx%g", x, y, kind, name, b.X, b.Y, b.Width, b.Height)
}
