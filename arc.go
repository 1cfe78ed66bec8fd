package sketch

import (
	"fmt"
	"math"

	"github.com/phanxgames/sketch/gmath"
)

// ArcTolerance is how far, in native units, a point may lie from the curve
// of an unfilled arc and still be contained by it.
const ArcTolerance = 2.5

// Arc is an elliptical arc inscribed in a frame rectangle whose upper-left
// corner is the arc's origin. Angles are in degrees, counterclockwise from the
// +x axis: a start of 0 begins due east of the center, 90 due north, and a
// negative sweep runs clockwise.
//
// A filled arc is a pie wedge: it contains every point of the ellipse
// interior within the angular span. An unfilled arc contains points within
// ArcTolerance of the curve itself.
type Arc struct {
	object
	box
	start, sweep float64
}

// NewArc creates an arc inscribed in the rectangle at (x, y) of the given
// size, beginning at start and extending sweep degrees.
func NewArc(x, y, width, height, start, sweep float64) (*Arc, error) {
	if err := validateBox("new arc", x, y, width, height); err != nil {
		return nil, err
	}
	if !finite(start, sweep) {
		return nil, fmt.Errorf("sketch: new arc angles (%v, %v): %w", start, sweep, ErrInvalidGeometry)
	}
	a := &Arc{box: box{width: width, height: height}, start: start, sweep: sweep}
	a.init(a, a, x, y)
	return a, nil
}

// StartAngle returns the start angle in degrees.
func (a *Arc) StartAngle() float64 { return a.start }

// SetStartAngle sets the start angle in degrees.
func (a *Arc) SetStartAngle(angle float64) {
	a.start = angle
	a.changed()
}

// SweepAngle returns the sweep angle in degrees.
func (a *Arc) SweepAngle() float64 { return a.sweep }

// SetSweepAngle sets the sweep angle in degrees.
func (a *Arc) SetSweepAngle(angle float64) {
	a.sweep = angle
	a.changed()
}

// StartPoint returns the point where the arc begins, in the parent's frame,
// ignoring any transform.
func (a *Arc) StartPoint() Point {
	return a.pointAt(a.start)
}

// EndPoint returns the point where the arc ends, in the parent's frame,
// ignoring any transform.
func (a *Arc) EndPoint() Point {
	return a.pointAt(a.start + a.sweep)
}

func (a *Arc) pointAt(angle float64) Point {
	cx, cy, rx, ry := ellipseOf(a.frame())
	return Point{
		X: a.x + cx + rx*gmath.CosDegrees(angle),
		Y: a.y + cy - ry*gmath.SinDegrees(angle),
	}
}

// FrameRectangle returns the rectangle the full ellipse is inscribed in, in
// the parent's frame.
func (a *Arc) FrameRectangle() Rectangle {
	return a.frame().Translate(a.x, a.y)
}

// SetFrameRectangle moves and resizes the arc's frame.
func (a *Arc) SetFrameRectangle(x, y, width, height float64) error {
	if err := validateBox("arc set frame", x, y, width, height); err != nil {
		return err
	}
	a.width = width
	a.height = height
	a.x = x
	a.y = y
	a.changed()
	return nil
}

func (a *Arc) extentUnder(m Transform) Rectangle {
	return arcExtent(m, a.frame(), a.start, a.sweep, a.filled)
}

func (a *Arc) containsLocal(x, y float64) bool {
	cx, cy, rx, ry := ellipseOf(a.frame())
	if rx == 0 || ry == 0 {
		return false
	}
	u := (x - cx) / rx
	v := (cy - y) / ry
	dist := math.Hypot(u, v)
	if a.filled {
		if dist > 1 {
			return false
		}
	} else if math.Abs(dist-1) > ArcTolerance/math.Min(rx, ry) {
		return false
	}
	if dist == 0 {
		return a.filled
	}
	return angleInSweep(gmath.Angle(u, v), a.start, a.sweep)
}

func (a *Arc) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	cmd := a.command(KindArc, world)
	cmd.Frame = a.frame()
	cmd.Start = a.start
	cmd.Sweep = a.sweep
	return append(dst, cmd)
}

// angleInSweep reports whether theta lies within the span that begins at
// start and extends sweep degrees (either direction).
func angleInSweep(theta, start, sweep float64) bool {
	if math.Abs(sweep) >= 360 {
		return true
	}
	if sweep < 0 {
		start += sweep
		sweep = -sweep
	}
	d := math.Mod(theta-start, 360)
	if d < 0 {
		d += 360
	}
	return d <= sweep+1e-9 || d >= 360-1e-9
}

// arcExtent returns the bounding box, under m, of the elliptical arc inscribed
// in frame. The box is exact: besides the endpoints it includes the points
// where the mapped curve is horizontally or vertically extreme, when those
// fall inside the sweep. withCenter adds the ellipse center (pie wedges).
func arcExtent(m Transform, frame Rectangle, start, sweep float64, withCenter bool) Rectangle {
	cx, cy, rx, ry := ellipseOf(frame)
	at := func(angle float64) (float64, float64) {
		return m.Apply(cx+rx*gmath.CosDegrees(angle), cy-ry*gmath.SinDegrees(angle))
	}

	var e extent
	e.add(at(start))
	e.add(at(start + sweep))

	// X(t) = A*rx*cos t - B*ry*sin t, extreme where tan t = -B*ry / (A*rx);
	// likewise Y(t) with C and D.
	tx := gmath.ToDegrees(math.Atan2(-m.B*ry, m.A*rx))
	ty := gmath.ToDegrees(math.Atan2(-m.D*ry, m.C*rx))
	for _, t := range [4]float64{tx, tx + 180, ty, ty + 180} {
		if angleInSweep(t, start, sweep) {
			e.add(at(t))
		}
	}
	if withCenter {
		e.add(m.Apply(cx, cy))
	}
	return e.rect()
}
