package sketch

import "testing"

func TestPointEquality(t *testing.T) {
	a := Pt(1, 2)
	b := Point{X: 1, Y: 2}
	if a != b {
		t.Errorf("%v != %v", a, b)
	}
	if a == Pt(2, 1) {
		t.Error("points with swapped components should differ")
	}
	var zero Point
	if zero != Pt(0, 0) {
		t.Errorf("zero Point = %v", zero)
	}
}

func TestPointTranslateIsValue(t *testing.T) {
	p := Pt(1, 1)
	q := p.Translate(2, 3)
	if q != Pt(3, 4) {
		t.Errorf("Translate = %v, want (3,4)", q)
	}
	if p != Pt(1, 1) {
		t.Error("Translate should not modify the receiver")
	}
}

func TestDimensionEquality(t *testing.T) {
	if Dim(3, 4) != (Dimension{Width: 3, Height: 4}) {
		t.Error("Dim(3,4) should equal Dimension{3,4}")
	}
	if Dim(3, 4) == Dim(4, 3) {
		t.Error("Dim(3,4) should not equal Dim(4,3)")
	}
}

func TestRectangleAccessors(t *testing.T) {
	r := NewRectangle(1, 2, 3, 4)
	if r.Location() != Pt(1, 2) {
		t.Errorf("Location = %v", r.Location())
	}
	if r.Size() != Dim(3, 4) {
		t.Errorf("Size = %v", r.Size())
	}
	if r.Translate(1, 1) != NewRectangle(2, 3, 3, 4) {
		t.Errorf("Translate = %v", r.Translate(1, 1))
	}
	copied := r
	copied.X = 100
	if r.X != 1 {
		t.Error("rectangles should have value semantics")
	}
}

func TestRectangleContains(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)
	if !r.Contains(0, 0) || !r.Contains(10, 10) || !r.Contains(5, 5) {
		t.Error("edges and interior should be contained")
	}
	if r.Contains(-0.1, 5) || r.Contains(5, 10.1) {
		t.Error("outside points should not be contained")
	}
}

func TestRectangleUnion(t *testing.T) {
	got := NewRectangle(0, 0, 10, 10).Union(NewRectangle(5, -5, 10, 5))
	if got != NewRectangle(0, -5, 15, 15) {
		t.Errorf("Union = %v", got)
	}
	got = NewRectangle(1, 1, 0, 0).Union(NewRectangle(4, 5, 0, 0))
	if got != NewRectangle(1, 1, 3, 4) {
		t.Errorf("degenerate Union = %v", got)
	}
}
