package sketch

import (
	"errors"
	"image/color"

	"github.com/phanxgames/sketch/gmath"
)

// ErrTransformed is returned by size and bounds mutators of Rect and Oval
// once the object has been rotated, scaled, sheared or translated. The
// object is left unchanged.
var ErrTransformed = errors.New("sketch: object has been transformed")

// ErrInvalidGeometry is returned by constructors given negative or
// non-finite sizes or coordinates, or otherwise malformed arguments.
var ErrInvalidGeometry = errors.New("sketch: invalid geometry")

// DefaultColor is the stroke color of newly constructed objects.
var DefaultColor = color.NRGBA{A: 0xff}

// Positionable is implemented by everything that has a location and an
// extent in its parent's coordinate frame.
type Positionable interface {
	Location() Point
	SetLocation(x, y float64)
	X() float64
	Y() float64
	Move(dx, dy float64)
	MovePolar(r, theta float64)
	Size() Dimension
	Width() float64
	Height() float64
	Bounds() Rectangle
	Contains(x, y float64) bool
}

// Transformable is implemented by objects that accumulate an affine
// transform around their origin.
type Transformable interface {
	Rotate(theta float64)
	Scale(sx, sy float64)
	Shear(shx, shy float64)
	Translate(dx, dy float64)
	Transform() Transform
	Transformed() bool
}

// Colorable is implemented by objects with stroke and fill styling.
type Colorable interface {
	Color() color.NRGBA
	SetColor(c color.Color)
	FillColor() color.NRGBA
	SetFillColor(c color.Color)
	Filled() bool
	SetFilled(filled bool)
	LineWidth() float64
	SetLineWidth(width float64)
}

// Containable is implemented by objects that live inside a Compound.
type Containable interface {
	Parent() *Compound
	SendToFront()
	SendToBack()
	SendForward()
	SendBackward()
	Visible() bool
	SetVisible(visible bool)
}

// Object is a drawable element of the scene graph. All implementations are
// provided by this package: Line, Rect, Oval, Polygon, Arc, Label, Image and
// Compound.
type Object interface {
	Positionable
	Transformable
	Colorable
	Containable
	Name() string
	SetName(name string)

	base() *object
}

// Sizable is implemented by objects whose native size can be set directly.
// For Rect and Oval both methods fail with ErrTransformed after any
// transform operation.
type Sizable interface {
	Object
	SetSize(width, height float64) error
	SetBounds(x, y, width, height float64) error
}

// shape supplies the variant-specific geometry behind an object.
type shape interface {
	// extentUnder returns the bounding box of the native geometry mapped
	// through m.
	extentUnder(m Transform) Rectangle
	// containsLocal tests a point given in native coordinates.
	containsLocal(x, y float64) bool
	// appendCommands emits draw commands with native->device transform world.
	appendCommands(dst []DrawCommand, world Transform) []DrawCommand
}

// object holds the state shared by every variant. Variants embed it and
// register themselves through init so the shared methods can reach their
// geometry.
type object struct {
	self        Object
	geom        shape
	name        string
	x, y        float64
	transform   Transform
	transformed bool

	stroke    color.NRGBA
	fill      color.NRGBA
	fillSet   bool
	filled    bool
	lineWidth float64
	visible   bool

	parent *Compound
	window *Window // set only on a window's root compound
}

func (o *object) init(self Object, geom shape, x, y float64) {
	o.self = self
	o.geom = geom
	o.x = x
	o.y = y
	o.transform = IdentityTransform
	o.stroke = DefaultColor
	o.lineWidth = 1
	o.visible = true
}

func (o *object) base() *object { return o }

// --- Identity ---

// Name returns the optional name used in logs and scene files.
func (o *object) Name() string { return o.name }

// SetName sets the object's name.
func (o *object) SetName(name string) { o.name = name }

// --- Location ---

// Location returns the object's origin in its parent's frame.
func (o *object) Location() Point { return Point{X: o.x, Y: o.y} }

// X returns the x coordinate of the origin.
func (o *object) X() float64 { return o.x }

// Y returns the y coordinate of the origin.
func (o *object) Y() float64 { return o.y }

// SetLocation moves the origin to (x, y).
func (o *object) SetLocation(x, y float64) {
	if o.x == x && o.y == y {
		return
	}
	o.x = x
	o.y = y
	o.changed()
}

// Move displaces the origin by (dx, dy).
func (o *object) Move(dx, dy float64) {
	o.SetLocation(o.x+dx, o.y+dy)
}

// MovePolar moves the object r units in direction theta, measured in degrees
// clockwise from the +x axis.
func (o *object) MovePolar(r, theta float64) {
	o.Move(r*gmath.CosDegrees(theta), r*gmath.SinDegrees(theta))
}

// --- Extent ---

// Bounds returns the smallest axis-aligned rectangle covering the rendered,
// transformed object in its parent's frame.
func (o *object) Bounds() Rectangle {
	return o.geom.extentUnder(o.localToParent())
}

// Size returns the width and height of Bounds.
func (o *object) Size() Dimension { return o.Bounds().Size() }

// Width returns the width of Bounds.
func (o *object) Width() float64 { return o.Bounds().Width }

// Height returns the height of Bounds.
func (o *object) Height() float64 { return o.Bounds().Height }

// Contains reports whether (x, y), in the parent's frame, hits the object.
// Invisible objects contain nothing.
func (o *object) Contains(x, y float64) bool {
	if !o.visible {
		return false
	}
	lx, ly, ok := o.parentToLocal(x, y)
	if !ok {
		return false
	}
	return o.geom.containsLocal(lx, ly)
}

// --- Styling ---

// Color returns the stroke color.
func (o *object) Color() color.NRGBA { return o.stroke }

// SetColor sets the stroke color. Until SetFillColor is called the fill color
// follows the stroke color.
func (o *object) SetColor(c color.Color) {
	o.stroke = toNRGBA(c)
	o.changed()
}

// FillColor returns the fill color.
func (o *object) FillColor() color.NRGBA {
	if !o.fillSet {
		return o.stroke
	}
	return o.fill
}

// SetFillColor sets the fill color and decouples it from the stroke color.
func (o *object) SetFillColor(c color.Color) {
	o.fill = toNRGBA(c)
	o.fillSet = true
	o.changed()
}

// Filled reports whether the object's interior is painted.
func (o *object) Filled() bool { return o.filled }

// SetFilled sets whether the object's interior is painted.
func (o *object) SetFilled(filled bool) {
	if o.filled == filled {
		return
	}
	o.filled = filled
	o.changed()
}

// LineWidth returns the stroke width.
func (o *object) LineWidth() float64 { return o.lineWidth }

// SetLineWidth sets the stroke width.
func (o *object) SetLineWidth(width float64) {
	if o.lineWidth == width {
		return
	}
	o.lineWidth = width
	o.changed()
}

// Visible reports whether the object is drawn and hit-testable.
func (o *object) Visible() bool { return o.visible }

// SetVisible shows or hides the object.
func (o *object) SetVisible(visible bool) {
	if o.visible == visible {
		return
	}
	o.visible = visible
	o.changed()
}

// --- Containment ---

// Parent returns the owning compound, or nil when detached.
func (o *object) Parent() *Compound { return o.parent }

// SendToFront moves the object in front of all its siblings.
func (o *object) SendToFront() {
	if o.parent != nil {
		o.parent.reorder(o.self, zFront)
	}
}

// SendToBack moves the object behind all its siblings.
func (o *object) SendToBack() {
	if o.parent != nil {
		o.parent.reorder(o.self, zBack)
	}
}

// SendForward moves the object one step toward the front.
func (o *object) SendForward() {
	if o.parent != nil {
		o.parent.reorder(o.self, zForward)
	}
}

// SendBackward moves the object one step toward the back.
func (o *object) SendBackward() {
	if o.parent != nil {
		o.parent.reorder(o.self, zBackward)
	}
}

// changed notifies the owning window, if any, that the object needs to be
// repainted.
func (o *object) changed() {
	for p := o; p != nil; {
		if p.window != nil {
			p.window.requestRepaint()
			return
		}
		if p.parent == nil {
			return
		}
		p = &p.parent.object
	}
}

// command returns a draw command carrying the object's style.
func (o *object) command(kind ShapeKind, world Transform) DrawCommand {
	return DrawCommand{
		Kind:      kind,
		Transform: world,
		Stroke:    o.stroke,
		Fill:      o.FillColor(),
		Filled:    o.filled,
		LineWidth: o.lineWidth,
		Name:      o.name,
	}
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return DefaultColor
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
