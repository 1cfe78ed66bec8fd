package sketch

import (
	"fmt"

	"github.com/phanxgames/sketch/gmath"
)

// Polygon is a closed shape built one vertex at a time. Vertices are stored
// relative to the polygon's origin. Containment uses the even-odd rule.
type Polygon struct {
	object
	vertices []Point
	current  Point
}

// NewPolygon creates an empty polygon with its origin at (x, y).
func NewPolygon(x, y float64) (*Polygon, error) {
	if !finite(x, y) {
		return nil, fmt.Errorf("sketch: new polygon (%v, %v): %w", x, y, ErrInvalidGeometry)
	}
	p := &Polygon{}
	p.init(p, p, x, y)
	return p, nil
}

// AddVertex adds a vertex at (x, y) relative to the polygon's origin.
func (p *Polygon) AddVertex(x, y float64) {
	p.current = Point{X: x, Y: y}
	p.vertices = append(p.vertices, p.current)
	p.changed()
}

// AddEdge adds a vertex displaced by (dx, dy) from the previous vertex, or
// from the origin when the polygon is empty.
func (p *Polygon) AddEdge(dx, dy float64) {
	p.AddVertex(p.current.X+dx, p.current.Y+dy)
}

// AddPolarEdge adds a vertex r units from the previous vertex in direction
// theta, measured in degrees counterclockwise from the +x axis. Note that
// this is the opposite sense from MovePolar.
func (p *Polygon) AddPolarEdge(r, theta float64) {
	p.AddEdge(r*gmath.CosDegrees(theta), -r*gmath.SinDegrees(theta))
}

// CurrentPoint returns the last vertex added, relative to the origin.
func (p *Polygon) CurrentPoint() Point {
	return p.current
}

// Vertices returns the vertices relative to the origin. The returned slice
// MUST NOT be mutated by the caller.
func (p *Polygon) Vertices() []Point {
	return p.vertices
}

func (p *Polygon) extentUnder(m Transform) Rectangle {
	if len(p.vertices) == 0 {
		x, y := m.Apply(0, 0)
		return Rectangle{X: x, Y: y}
	}
	var e extent
	for _, v := range p.vertices {
		e.add(m.Apply(v.X, v.Y))
	}
	return e.rect()
}

// containsLocal applies the even-odd rule: a ray cast toward +x crosses the
// boundary an odd number of times for interior points.
func (p *Polygon) containsLocal(x, y float64) bool {
	n := len(p.vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.vertices[i], p.vertices[j]
		if (vi.Y > y) != (vj.Y > y) {
			xCross := vi.X + (y-vi.Y)*(vj.X-vi.X)/(vj.Y-vi.Y)
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func (p *Polygon) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	if len(p.vertices) == 0 {
		return dst
	}
	cmd := p.command(KindPolygon, world)
	cmd.Points = append([]Point(nil), p.vertices...)
	return append(dst, cmd)
}
