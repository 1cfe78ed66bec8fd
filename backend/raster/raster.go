// Package raster is a headless sketch.Surface that paints frames into an
// in-memory NRGBA image using golang.org/x/image/vector. It is used for
// tests, PNG export and scripted visual checks.
//
// Self-intersecting polygons are filled with the even-odd rule, matching
// hit-testing. Labels are drawn unrotated at their transformed origin.
package raster

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/phanxgames/sketch"
)

// Options configures a Surface.
type Options struct {
	// Width and Height are the initial canvas size in pixels. The canvas is
	// resized to each painted frame's scaled size.
	Width, Height int
	// Background fills the canvas before each paint. Defaults to opaque
	// white.
	Background color.Color
	// Segments is the number of segments used to flatten a full ellipse.
	// Defaults to 96.
	Segments int
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Surface paints sketch frames into an image and accepts synthetic input.
type Surface struct {
	opts     Options
	canvas   *image.NRGBA
	frames   int
	closed   bool
	measurer *Measurer

	listeners sketch.Listeners
	tracker   *sketch.PointerTracker
	clock     time.Time
}

// New creates a Surface.
func New(opts Options) *Surface {
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Segments <= 0 {
		opts.Segments = 96
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	s := &Surface{
		opts:     opts,
		canvas:   image.NewNRGBA(image.Rect(0, 0, max(opts.Width, 0), max(opts.Height, 0))),
		measurer: NewMeasurer(),
		tracker:  sketch.NewPointerTracker(),
		clock:    time.Unix(0, 0),
	}
	s.clear()
	return s
}

// Measurer returns the text measurer whose fonts the surface draws labels
// with. Pass it to sketch.NewLabel so metrics match the rendering.
func (s *Surface) Measurer() *Measurer {
	return s.measurer
}

// Paint implements sketch.Surface.
func (s *Surface) Paint(f *sketch.Frame) error {
	if s.closed {
		return errClosed
	}
	w := int(math.Ceil(f.Width * f.Scale))
	h := int(math.Ceil(f.Height * f.Scale))
	if w != s.canvas.Rect.Dx() || h != s.canvas.Rect.Dy() {
		s.canvas = image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}
	s.clear()
	for i := range f.Commands {
		if err := s.paintCommand(&f.Commands[i]); err != nil {
			return err
		}
	}
	s.frames++
	return nil
}

// AddEventListener implements sketch.Surface.
func (s *Surface) AddEventListener(kind sketch.EventKind, fn func(sketch.MouseEvent)) sketch.ListenerHandle {
	return s.listeners.Add(kind, fn)
}

// Close implements sketch.Surface.
func (s *Surface) Close() error {
	s.closed = true
	s.listeners.Clear()
	return nil
}

// Image returns the canvas as of the last paint.
func (s *Surface) Image() *image.NRGBA {
	return s.canvas
}

// Frames returns the number of frames painted so far.
func (s *Surface) Frames() int {
	return s.frames
}

func (s *Surface) clear() {
	bg := color.NRGBAModel.Convert(s.opts.Background).(color.NRGBA)
	pix := s.canvas.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
}
