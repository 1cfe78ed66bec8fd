package sketch

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertRect(t *testing.T, name string, got, want Rectangle) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon ||
		math.Abs(got.Width-want.Width) > epsilon || math.Abs(got.Height-want.Height) > epsilon {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func assertTransform(t *testing.T, name string, got, want Transform) {
	t.Helper()
	g := [6]float64{got.A, got.B, got.C, got.D, got.TX, got.TY}
	w := [6]float64{want.A, want.B, want.C, want.D, want.TX, want.TY}
	for i := range g {
		if math.Abs(g[i]-w[i]) > epsilon {
			t.Errorf("%s = %+v, want %+v", name, got, want)
			return
		}
	}
}

func mustRect(t *testing.T, x, y, w, h float64) *Rect {
	t.Helper()
	r, err := NewRect(x, y, w, h)
	if err != nil {
		t.Fatalf("NewRect: %v", err)
	}
	return r
}

// --- Transform values ---

func TestZeroTransformIsNotIdentity(t *testing.T) {
	var zero Transform
	if zero.IsIdentity() {
		t.Error("zero Transform should not be the identity")
	}
	if !Identity().IsIdentity() {
		t.Error("Identity() should be the identity")
	}
}

func TestRotation90IsExact(t *testing.T) {
	r := Rotation(90)
	if r != (Transform{A: 0, B: -1, C: 1, D: 0}) {
		t.Errorf("Rotation(90) = %+v", r)
	}
	x, y := r.Apply(1, 0)
	if x != 0 || y != 1 {
		t.Errorf("Rotation(90).Apply(1,0) = (%v,%v), want (0,1)", x, y)
	}
}

func TestThenAppliesReceiverFirst(t *testing.T) {
	// Scale then translate: (1,1) -> (2,2) -> (12,2).
	m := Scaling(2, 2).Then(Translation(10, 0))
	x, y := m.Apply(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)

	// Translate then scale: (1,1) -> (11,1) -> (22,2).
	m = Translation(10, 0).Then(Scaling(2, 2))
	x, y = m.Apply(1, 1)
	assertNear(t, "x", x, 22)
	assertNear(t, "y", y, 2)
}

func TestShearing(t *testing.T) {
	x, y := Shearing(0.5, 0).Apply(2, 4)
	assertNear(t, "x", x, 4)
	assertNear(t, "y", y, 4)
}

func TestInvertRoundTrip(t *testing.T) {
	m := Rotation(30).Then(Scaling(2, 3)).Then(Shearing(0.25, -0.5)).Then(Translation(7, -4))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported singular")
	}
	assertTransform(t, "m * inv", m.Mul(inv), IdentityTransform)
	x, y := inv.Apply(m.Apply(3, 5))
	assertNear(t, "x", x, 3)
	assertNear(t, "y", y, 5)
}

func TestInvertSingular(t *testing.T) {
	if _, ok := Scaling(0, 1).Invert(); ok {
		t.Error("Invert of a zero scale should fail")
	}
}

func TestTransformRect(t *testing.T) {
	got := Rotation(90).TransformRect(NewRectangle(0, 0, 10, 20))
	assertRect(t, "rotated", got, NewRectangle(-20, 0, 20, 10))
}

// --- Object transforms ---

func TestRotateScaleBounds(t *testing.T) {
	r := mustRect(t, 10, 10, 10, 20)
	r.Rotate(90)
	r.Scale(2, 2)

	if !r.Transformed() {
		t.Fatal("Transformed should be true")
	}
	assertRect(t, "Bounds", r.Bounds(), NewRectangle(-30, 10, 40, 20))
	assertNear(t, "Width", r.Width(), 40)
	assertNear(t, "Height", r.Height(), 20)
	if r.Location() != Pt(10, 10) {
		t.Errorf("Location = %v, transforms must not move the origin", r.Location())
	}

	r.Scale(0.5, 0.5)
	r.Rotate(-90)
	assertRect(t, "Bounds after inverse", r.Bounds(), NewRectangle(10, 10, 10, 20))
}

func TestContainsUsesInverseTransform(t *testing.T) {
	r := mustRect(t, 10, 10, 10, 20)
	r.Rotate(90)
	r.Scale(2, 2)

	// (0, 20) maps back to native (5, 5).
	if !r.Contains(0, 20) {
		t.Error("Contains(0,20) = false, want true")
	}
	// Inside the untransformed rectangle but outside the transformed one.
	if r.Contains(15, 15) {
		t.Error("Contains(15,15) = true, want false")
	}
	if r.Contains(15, 20) {
		t.Error("Contains(15,20) = true, want false")
	}
}

func TestTransformsAccumulate(t *testing.T) {
	r := mustRect(t, 0, 0, 10, 10)
	r.Rotate(45)
	r.Rotate(45)
	assertTransform(t, "Transform", r.Transform(), Rotation(90))
	r.Scale(2, 2)
	r.Scale(0.5, 0.5)
	assertTransform(t, "Transform", r.Transform(), Rotation(90))
}

func TestTranslateOffsetsWithoutMoving(t *testing.T) {
	r := mustRect(t, 5, 5, 10, 10)
	r.Translate(100, 0)
	if r.Location() != Pt(5, 5) {
		t.Errorf("Location = %v, want (5,5)", r.Location())
	}
	assertRect(t, "Bounds", r.Bounds(), NewRectangle(105, 5, 10, 10))
	if r.Contains(7, 7) {
		t.Error("translated rect should not contain its original area")
	}
	if !r.Contains(107, 7) {
		t.Error("translated rect should contain its offset area")
	}
}

func TestSingularTransformContainsNothing(t *testing.T) {
	r := mustRect(t, 0, 0, 10, 10)
	r.Scale(0, 1)
	if r.Contains(0, 5) {
		t.Error("degenerate transform should contain nothing")
	}
}

func TestSetSizeFailsAfterTransform(t *testing.T) {
	ops := map[string]func(Object){
		"rotate":    func(o Object) { o.Rotate(10) },
		"scale":     func(o Object) { o.Scale(2, 2) },
		"shear":     func(o Object) { o.Shear(1, 0) },
		"translate": func(o Object) { o.Translate(1, 1) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			r := mustRect(t, 1, 2, 10, 20)
			o, _ := NewOval(1, 2, 10, 20)
			for _, s := range []Sizable{r, o} {
				op(s)
				before := s.Bounds()
				if err := s.SetSize(5, 5); !errors.Is(err, ErrTransformed) {
					t.Errorf("SetSize err = %v, want ErrTransformed", err)
				}
				if err := s.SetBounds(0, 0, 5, 5); !errors.Is(err, ErrTransformed) {
					t.Errorf("SetBounds err = %v, want ErrTransformed", err)
				}
				if s.Bounds() != before {
					t.Errorf("Bounds changed to %v after failed resize", s.Bounds())
				}
				if s.Location() != Pt(1, 2) {
					t.Errorf("Location changed to %v after failed resize", s.Location())
				}
			}
		})
	}
}

func TestSetSizeBeforeTransform(t *testing.T) {
	r := mustRect(t, 0, 0, 10, 10)
	if err := r.SetSize(30, 40); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if r.Size() != Dim(30, 40) {
		t.Errorf("Size = %v, want 30x40", r.Size())
	}
	if err := r.SetBounds(1, 2, 3, 4); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if r.Bounds() != NewRectangle(1, 2, 3, 4) {
		t.Errorf("Bounds = %v", r.Bounds())
	}
	if err := r.SetSize(-1, 4); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("negative SetSize err = %v, want ErrInvalidGeometry", err)
	}
}
