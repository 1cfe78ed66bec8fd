package sketch

import "math"

// Point is an (X, Y) location. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Dimension is a width/height pair.
type Dimension struct {
	Width, Height float64
}

// Dim is shorthand for Dimension{Width: w, Height: h}.
func Dim(w, h float64) Dimension {
	return Dimension{Width: w, Height: h}
}

// Rectangle is an axis-aligned rectangle given by its upper-left corner and
// its size.
type Rectangle struct {
	X, Y, Width, Height float64
}

// NewRectangle is shorthand for Rectangle{X: x, Y: y, Width: w, Height: h}.
func NewRectangle(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// Location returns the upper-left corner.
func (r Rectangle) Location() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the width and height.
func (r Rectangle) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height}
}

// Translate returns r moved by (dx, dy).
func (r Rectangle) Translate(dx, dy float64) Rectangle {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty reports whether r has no area.
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other. Unlike a
// pure area union, degenerate rectangles still contribute their corner, so
// the union of two zero-size boxes spans both points.
func (r Rectangle) Union(other Rectangle) Rectangle {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// extent accumulates points into an axis-aligned bounding box.
type extent struct {
	minX, minY, maxX, maxY float64
	any                    bool
}

func (e *extent) add(x, y float64) {
	if !e.any {
		e.minX, e.maxX, e.minY, e.maxY = x, x, y, y
		e.any = true
		return
	}
	e.minX = math.Min(e.minX, x)
	e.maxX = math.Max(e.maxX, x)
	e.minY = math.Min(e.minY, y)
	e.maxY = math.Max(e.maxY, y)
}

func (e *extent) addRect(r Rectangle) {
	e.add(r.X, r.Y)
	e.add(r.X+r.Width, r.Y+r.Height)
}

func (e *extent) rect() Rectangle {
	return Rectangle{X: e.minX, Y: e.minY, Width: e.maxX - e.minX, Height: e.maxY - e.minY}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
