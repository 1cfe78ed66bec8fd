package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sketch"
	"github.com/phanxgames/sketch/backend/ebitenbackend"
	"github.com/phanxgames/sketch/console"
	"github.com/phanxgames/sketch/scenefile"
)

func newShowCommand() *cobra.Command {
	var (
		showFPS   bool
		resizable bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "show <scene.yaml>",
		Short: "Display a scene in a window",
		Long: `Display a scene in a window. Clicking reports the object under the
pointer on standard output; dragging moves top-level objects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			bg, err := background(scene)
			if err != nil {
				return err
			}
			title := scene.Title
			if title == "" {
				title = args[0]
			}

			s := ebitenbackend.New(ebitenbackend.Config{
				Title:      title,
				Width:      int(math.Ceil(scene.Width * scene.Scale)),
				Height:     int(math.Ceil(scene.Height * scene.Scale)),
				Background: bg,
				ShowFPS:    showFPS,
				Resizable:  resizable,
			})
			w, err := scene.NewWindow(s, scenefile.Options{
				Measurer: s.Measurer(),
				Loader:   s.Loader(),
			})
			if err != nil {
				return err
			}

			con := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			attachInteraction(w, con, verbose)
			return s.Run()
		},
	}

	cmd.Flags().BoolVar(&showFPS, "fps", false, "Show FPS and TPS (toggle with F3)")
	cmd.Flags().BoolVar(&resizable, "resizable", false, "Allow resizing the window")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report every mouse event")
	return cmd
}

// attachInteraction reports clicks and lets the user drag top-level objects.
func attachInteraction(w *sketch.Window, con *console.Console, verbose bool) {
	var (
		dragging     sketch.Object
		lastX, lastY float64
	)
	w.AddEventListener(sketch.EventMouseDown, func(ev sketch.MouseEvent) {
		dragging = w.ElementAt(ev.X, ev.Y)
		lastX, lastY = ev.X, ev.Y
	})
	w.AddEventListener(sketch.EventDrag, func(ev sketch.MouseEvent) {
		if dragging == nil {
			return
		}
		s := w.ScaleFactor()
		dragging.Move((ev.X-lastX)/s, (ev.Y-lastY)/s)
		lastX, lastY = ev.X, ev.Y
	})
	w.AddEventListener(sketch.EventMouseUp, func(sketch.MouseEvent) {
		dragging = nil
	})
	w.AddEventListener(sketch.EventClick, func(ev sketch.MouseEvent) {
		con.Println(describeHit(w, ev.X, ev.Y))
	})
	w.AddEventListener(sketch.EventDoubleClick, func(ev sketch.MouseEvent) {
		if obj := w.ElementAt(ev.X, ev.Y); obj != nil {
			obj.SendToFront()
			con.Println(fmt.Sprintf("%s sent to front", describeHit(w, ev.X, ev.Y)))
		}
	})
	if verbose {
		for _, kind := range []sketch.EventKind{sketch.EventMouseDown, sketch.EventMouseUp, sketch.EventMouseMove, sketch.EventDrag} {
			w.AddEventListener(kind, func(ev sketch.MouseEvent) {
				con.Printf("%s %g,%g button=%d\n", ev.Kind, ev.X, ev.Y, ev.Button)
			})
		}
	}
}
