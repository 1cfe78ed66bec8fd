package sketch

import "fmt"

// box is the native geometry shared by Rect and Oval: a width/height frame at
// the object's origin.
type box struct {
	width, height float64
}

func (b *box) frame() Rectangle {
	return Rectangle{Width: b.width, Height: b.height}
}

// resize implements SetSize/SetBounds for boxed variants. It fails without
// side effects when the owner has been transformed or the size is invalid.
func (b *box) resize(o *object, op string, x, y, w, h float64) error {
	if o.transformed {
		return fmt.Errorf("sketch: %s: %w", op, ErrTransformed)
	}
	if err := validateBox(op, x, y, w, h); err != nil {
		return err
	}
	b.width = w
	b.height = h
	o.x = x
	o.y = y
	o.changed()
	return nil
}

func validateBox(op string, x, y, w, h float64) error {
	if !finite(x, y, w, h) || w < 0 || h < 0 {
		return fmt.Errorf("sketch: %s (%v, %v, %v, %v): %w", op, x, y, w, h, ErrInvalidGeometry)
	}
	return nil
}

// --- Rect ---

// Rect is an axis-aligned rectangle whose origin is its upper-left corner.
type Rect struct {
	object
	box
}

// NewRect creates a rectangle with its upper-left corner at (x, y).
func NewRect(x, y, width, height float64) (*Rect, error) {
	if err := validateBox("new rect", x, y, width, height); err != nil {
		return nil, err
	}
	r := &Rect{box: box{width: width, height: height}}
	r.init(r, r, x, y)
	return r, nil
}

// SetSize changes the rectangle's native size. It returns ErrTransformed,
// leaving the rectangle unchanged, once a transform has been applied.
func (r *Rect) SetSize(width, height float64) error {
	return r.resize(&r.object, "rect set size", r.x, r.y, width, height)
}

// SetBounds changes the rectangle's location and native size at once. It
// returns ErrTransformed, leaving the rectangle unchanged, once a transform
// has been applied.
func (r *Rect) SetBounds(x, y, width, height float64) error {
	return r.resize(&r.object, "rect set bounds", x, y, width, height)
}

func (r *Rect) extentUnder(m Transform) Rectangle {
	return m.TransformRect(r.frame())
}

func (r *Rect) containsLocal(x, y float64) bool {
	return r.frame().Contains(x, y)
}

func (r *Rect) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	cmd := r.command(KindRect, world)
	cmd.Frame = r.frame()
	return append(dst, cmd)
}

// --- Oval ---

// Oval is an ellipse inscribed in a rectangle whose upper-left corner is the
// oval's origin.
type Oval struct {
	object
	box
}

// NewOval creates an oval that fits the rectangle at (x, y) of the given
// size.
func NewOval(x, y, width, height float64) (*Oval, error) {
	if err := validateBox("new oval", x, y, width, height); err != nil {
		return nil, err
	}
	o := &Oval{box: box{width: width, height: height}}
	o.init(o, o, x, y)
	return o, nil
}

// SetSize changes the size of the oval's frame. It returns ErrTransformed,
// leaving the oval unchanged, once a transform has been applied.
func (o *Oval) SetSize(width, height float64) error {
	return o.resize(&o.object, "oval set size", o.x, o.y, width, height)
}

// SetBounds changes the oval's frame. It returns ErrTransformed, leaving the
// oval unchanged, once a transform has been applied.
func (o *Oval) SetBounds(x, y, width, height float64) error {
	return o.resize(&o.object, "oval set bounds", x, y, width, height)
}

func (o *Oval) extentUnder(m Transform) Rectangle {
	return arcExtent(m, o.frame(), 0, 360, false)
}

func (o *Oval) containsLocal(x, y float64) bool {
	cx, cy, rx, ry := ellipseOf(o.frame())
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return dx*dx+dy*dy <= 1
}

func (o *Oval) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	cmd := o.command(KindOval, world)
	cmd.Frame = o.frame()
	return append(dst, cmd)
}
