package sketch

import (
	"image"
	"image/color"
	"math"

	"github.com/phanxgames/sketch/gmath"
)

// ShapeKind identifies the geometry carried by a DrawCommand.
type ShapeKind uint8

const (
	KindLine    ShapeKind = iota // Points[0] -> Points[1]
	KindRect                     // Frame
	KindOval                     // ellipse inscribed in Frame
	KindPolygon                  // closed Points
	KindArc                      // elliptical arc in Frame from Start sweeping Sweep degrees
	KindLabel                    // Text on the baseline at the native origin
	KindImage                    // Image scaled into Frame
)

var kindNames = [...]string{"line", "rect", "oval", "polygon", "arc", "label", "image"}

// String returns the lower-case kind name.
func (k ShapeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// DrawCommand is a single draw instruction emitted during scene traversal.
// Geometry is untransformed (native); Transform maps it to device pixels and
// already includes every ancestor frame and the window scale factor.
type DrawCommand struct {
	Kind      ShapeKind
	Transform Transform
	Stroke    color.NRGBA
	Fill      color.NRGBA
	Filled    bool
	LineWidth float64
	Name      string

	// Frame is the native bounding frame of rects, ovals, arcs and images,
	// and the text box of labels.
	Frame Rectangle
	// Points holds line endpoints or polygon vertices.
	Points []Point
	// Start and Sweep are arc angles in degrees, counterclockwise.
	Start, Sweep float64

	// Label fields.
	Text    string
	Font    string
	Metrics TextMetrics

	// Image holds the bitmap for KindImage.
	Image image.Image
}

// Frame is everything a Surface needs to paint one repaint.
type Frame struct {
	Width, Height float64
	Scale         float64
	Commands      []DrawCommand
}

// Outline flattens the command's geometry into device-space points. Curves
// are approximated with the given number of segments per full turn (64 when
// segments <= 0). closed reports whether the last point joins the first.
// Labels and images return their frame corners.
func (c *DrawCommand) Outline(segments int) (pts []Point, closed bool) {
	if segments <= 0 {
		segments = 64
	}
	m := c.Transform
	apply := func(x, y float64) {
		tx, ty := m.Apply(x, y)
		pts = append(pts, Point{X: tx, Y: ty})
	}
	switch c.Kind {
	case KindLine:
		for _, p := range c.Points {
			apply(p.X, p.Y)
		}
		return pts, false
	case KindPolygon:
		for _, p := range c.Points {
			apply(p.X, p.Y)
		}
		return pts, true
	case KindOval:
		cx, cy, rx, ry := ellipseOf(c.Frame)
		for i := 0; i < segments; i++ {
			a := 360 * float64(i) / float64(segments)
			apply(cx+rx*gmath.CosDegrees(a), cy-ry*gmath.SinDegrees(a))
		}
		return pts, true
	case KindArc:
		cx, cy, rx, ry := ellipseOf(c.Frame)
		// A sweep of a full turn or more covers the whole ellipse.
		if math.Abs(c.Sweep) >= 360 {
			for i := 0; i < segments; i++ {
				a := c.Start + 360*float64(i)/float64(segments)
				apply(cx+rx*gmath.CosDegrees(a), cy-ry*gmath.SinDegrees(a))
			}
			return pts, true
		}
		n := int(math.Ceil(math.Abs(c.Sweep) / 360 * float64(segments)))
		if n < 1 {
			n = 1
		}
		for i := 0; i <= n; i++ {
			a := c.Start + c.Sweep*float64(i)/float64(n)
			apply(cx+rx*gmath.CosDegrees(a), cy-ry*gmath.SinDegrees(a))
		}
		if c.Filled {
			apply(cx, cy)
			return pts, true
		}
		return pts, false
	default:
		f := c.Frame
		apply(f.X, f.Y)
		apply(f.X+f.Width, f.Y)
		apply(f.X+f.Width, f.Y+f.Height)
		apply(f.X, f.Y+f.Height)
		return pts, true
	}
}

// ellipseOf returns the center and radii of the ellipse inscribed in r.
func ellipseOf(r Rectangle) (cx, cy, rx, ry float64) {
	return r.X + r.Width/2, r.Y + r.Height/2, r.Width / 2, r.Height / 2
}
