package sketch

import (
	"math"

	"github.com/phanxgames/sketch/gmath"
)

// Transform is a 2D affine map:
//
//	x' = A*x + B*y + TX
//	y' = C*x + D*y + TY
//
// The zero value is the degenerate all-zero map; use Identity for the
// identity transform.
type Transform struct {
	A, B, C, D float64
	TX, TY     float64
}

// IdentityTransform is the identity affine map.
var IdentityTransform = Transform{A: 1, D: 1}

// Identity returns the identity transform.
func Identity() Transform {
	return IdentityTransform
}

// Rotation returns a rotation by theta degrees using the standard matrix
//
//	| cos  -sin |
//	| sin   cos |
//
// With Y pointing down, positive angles turn clockwise on screen.
func Rotation(theta float64) Transform {
	sin := gmath.SinDegrees(theta)
	cos := gmath.CosDegrees(theta)
	return Transform{A: cos, B: -sin, C: sin, D: cos}
}

// Scaling returns a scale by sx horizontally and sy vertically.
func Scaling(sx, sy float64) Transform {
	return Transform{A: sx, D: sy}
}

// Shearing returns a shear with x' = x + shx*y and y' = shy*x + y.
func Shearing(shx, shy float64) Transform {
	return Transform{A: 1, B: shx, C: shy, D: 1}
}

// Translation returns a translation by (dx, dy).
func Translation(dx, dy float64) Transform {
	return Transform{A: 1, D: 1, TX: dx, TY: dy}
}

// Mul returns t ∘ u: the transform that applies u first and then t.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		A:  t.A*u.A + t.B*u.C,
		B:  t.A*u.B + t.B*u.D,
		C:  t.C*u.A + t.D*u.C,
		D:  t.C*u.B + t.D*u.D,
		TX: t.A*u.TX + t.B*u.TY + t.TX,
		TY: t.C*u.TX + t.D*u.TY + t.TY,
	}
}

// Then returns op ∘ t: t followed by op. This is how every transform
// operation on an object composes onto its existing transform.
func (t Transform) Then(op Transform) Transform {
	return op.Mul(t)
}

// Apply maps the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.TX, t.C*x + t.D*y + t.TY
}

// Determinant returns A*D - B*C.
func (t Transform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Invert returns the inverse transform. ok is false when t is singular, in
// which case the identity is returned.
func (t Transform) Invert() (inv Transform, ok bool) {
	det := t.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform, false
	}
	invDet := 1.0 / det
	a := t.D * invDet
	b := -t.B * invDet
	c := -t.C * invDet
	d := t.A * invDet
	return Transform{
		A: a, B: b, C: c, D: d,
		TX: -(a*t.TX + b*t.TY),
		TY: -(c*t.TX + d*t.TY),
	}, true
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == IdentityTransform
}

// LinearScale returns the geometric mean scale of the linear part. Backends
// use it to scale stroke widths.
func (t Transform) LinearScale() float64 {
	return math.Sqrt(math.Abs(t.Determinant()))
}

// TransformRect maps the four corners of r and returns their bounding box.
func (t Transform) TransformRect(r Rectangle) Rectangle {
	var e extent
	e.add(t.Apply(r.X, r.Y))
	e.add(t.Apply(r.X+r.Width, r.Y))
	e.add(t.Apply(r.X+r.Width, r.Y+r.Height))
	e.add(t.Apply(r.X, r.Y+r.Height))
	return e.rect()
}

// --- Object transform operations ---

// Rotate rotates the object by theta degrees around its origin and marks it
// as transformed.
func (o *object) Rotate(theta float64) {
	o.applyTransform(Rotation(theta))
}

// Scale scales the object around its origin and marks it as transformed.
// Pass the same value twice for a uniform scale.
func (o *object) Scale(sx, sy float64) {
	o.applyTransform(Scaling(sx, sy))
}

// Shear shears the object around its origin and marks it as transformed.
func (o *object) Shear(shx, shy float64) {
	o.applyTransform(Shearing(shx, shy))
}

// Translate offsets how the object is drawn without moving its logical
// origin, and marks it as transformed.
func (o *object) Translate(dx, dy float64) {
	o.applyTransform(Translation(dx, dy))
}

// Transform returns the object's accumulated transform, excluding its
// location.
func (o *object) Transform() Transform {
	return o.transform
}

// Transformed reports whether any transform operation has been applied.
func (o *object) Transformed() bool {
	return o.transformed
}

func (o *object) applyTransform(op Transform) {
	o.transform = o.transform.Then(op)
	o.transformed = true
	o.changed()
}

// localToParent maps native shape coordinates into the parent's frame:
// translate(location) ∘ transform.
func (o *object) localToParent() Transform {
	return o.transform.Then(Translation(o.x, o.y))
}

// parentToLocal maps parent-frame coordinates into native coordinates.
// ok is false when the object's transform is singular.
func (o *object) parentToLocal(x, y float64) (lx, ly float64, ok bool) {
	inv, ok := o.localToParent().Invert()
	if !ok {
		return 0, 0, false
	}
	lx, ly = inv.Apply(x, y)
	return lx, ly, true
}
