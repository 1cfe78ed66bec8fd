package sketch

import "fmt"

// LineTolerance is how far, in native units, a point may lie from a line
// segment and still be contained by it.
const LineTolerance = 1.5

// Line is a segment whose origin is its start point.
type Line struct {
	object
	dx, dy float64 // end point relative to the start
}

// NewLine creates a line from (x0, y0) to (x1, y1).
func NewLine(x0, y0, x1, y1 float64) (*Line, error) {
	if !finite(x0, y0, x1, y1) {
		return nil, fmt.Errorf("sketch: new line (%v, %v)-(%v, %v): %w", x0, y0, x1, y1, ErrInvalidGeometry)
	}
	l := &Line{dx: x1 - x0, dy: y1 - y0}
	l.init(l, l, x0, y0)
	return l, nil
}

// StartPoint returns the start of the line, which is also its origin.
func (l *Line) StartPoint() Point {
	return Point{X: l.x, Y: l.y}
}

// EndPoint returns the end of the line in its parent's frame, ignoring any
// transform.
func (l *Line) EndPoint() Point {
	return Point{X: l.x + l.dx, Y: l.y + l.dy}
}

// SetStartPoint moves the start point and origin to (x, y) without moving
// the end point.
func (l *Line) SetStartPoint(x, y float64) {
	end := l.EndPoint()
	l.dx = end.X - x
	l.dy = end.Y - y
	l.x = x
	l.y = y
	l.changed()
}

// SetEndPoint moves the end point to (x, y) without moving the start point.
func (l *Line) SetEndPoint(x, y float64) {
	l.dx = x - l.x
	l.dy = y - l.y
	l.changed()
}

// DistanceSquared returns the squared length of the line.
func (l *Line) DistanceSquared() float64 {
	return l.dx*l.dx + l.dy*l.dy
}

func (l *Line) extentUnder(m Transform) Rectangle {
	var e extent
	e.add(m.Apply(0, 0))
	e.add(m.Apply(l.dx, l.dy))
	return e.rect()
}

// containsLocal measures the distance from (x, y) to the segment.
func (l *Line) containsLocal(x, y float64) bool {
	lenSq := l.DistanceSquared()
	var t float64
	if lenSq > 0 {
		t = (x*l.dx + y*l.dy) / lenSq
		t = max(0, min(1, t))
	}
	px := x - t*l.dx
	py := y - t*l.dy
	return px*px+py*py <= LineTolerance*LineTolerance
}

func (l *Line) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	cmd := l.command(KindLine, world)
	cmd.Points = []Point{{}, {X: l.dx, Y: l.dy}}
	return append(dst, cmd)
}
