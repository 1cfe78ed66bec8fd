package sketch

import (
	"errors"
	"testing"
)

// fakeSurface records paints and holds listeners.
type fakeSurface struct {
	Listeners
	paints  int
	last    Frame
	closed  bool
	failing bool
}

func (s *fakeSurface) Paint(f *Frame) error {
	s.paints++
	s.last = Frame{Width: f.Width, Height: f.Height, Scale: f.Scale}
	s.last.Commands = append([]DrawCommand(nil), f.Commands...)
	if s.failing {
		return errors.New("paint failed")
	}
	return nil
}

func (s *fakeSurface) AddEventListener(kind EventKind, fn func(MouseEvent)) ListenerHandle {
	return s.Add(kind, fn)
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

func newTestWindow(t *testing.T) (*Window, *fakeSurface) {
	t.Helper()
	s := &fakeSurface{}
	w, err := NewWindow(s, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	return w, s
}

func TestNewWindowValidation(t *testing.T) {
	if _, err := NewWindow(nil, 10, 10); !errors.Is(err, ErrNilSurface) {
		t.Errorf("err = %v, want ErrNilSurface", err)
	}
	if _, err := NewWindow(&fakeSurface{}, -1, 10); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestWindowAddRemove(t *testing.T) {
	w, _ := newTestWindow(t)
	r := mustRect(t, 0, 0, 10, 10)
	w.Add(r)
	if w.ElementCount() != 1 {
		t.Fatalf("ElementCount = %d, want 1", w.ElementCount())
	}
	if r.Parent() != w.Root() {
		t.Error("parent should be the root compound")
	}
	if !w.Remove(r) {
		t.Error("Remove = false")
	}
	if w.ElementCount() != 0 || r.Parent() != nil {
		t.Error("Remove should detach")
	}
}

func TestWindowClear(t *testing.T) {
	w, _ := newTestWindow(t)
	a := mustRect(t, 0, 0, 1, 1)
	b := mustRect(t, 0, 0, 1, 1)
	w.Add(a, b)
	w.Clear()
	if w.ElementCount() != 0 || a.Parent() != nil || b.Parent() != nil {
		t.Error("Clear should detach every element")
	}
}

func TestWindowAddCoalescesRepaint(t *testing.T) {
	w, s := newTestWindow(t)
	a := mustRect(t, 0, 0, 1, 1)
	b := mustRect(t, 0, 0, 1, 1)
	c := mustRect(t, 0, 0, 1, 1)
	w.Add(a, b, c)
	if s.paints != 1 {
		t.Errorf("paints = %d, want 1 for a multi-object Add", s.paints)
	}
	if len(s.last.Commands) != 3 {
		t.Errorf("commands = %d, want 3", len(s.last.Commands))
	}
}

func TestWindowMutationRepaints(t *testing.T) {
	w, s := newTestWindow(t)
	r := mustRect(t, 0, 0, 1, 1)
	w.Add(r)
	s.paints = 0

	r.Move(1, 1)
	r.SetFilled(true)
	r.Rotate(10)
	if s.paints != 3 {
		t.Errorf("paints = %d, want 3", s.paints)
	}

	r.SetFilled(true) // unchanged
	if s.paints != 3 {
		t.Errorf("no-op setter repainted: paints = %d", s.paints)
	}
}

func TestWindowNestedMutationRepaints(t *testing.T) {
	w, s := newTestWindow(t)
	c := NewCompound(0, 0)
	r := mustRect(t, 0, 0, 1, 1)
	c.Add(r)
	w.Add(c)
	s.paints = 0
	r.SetColor(MustParseColor("red"))
	if s.paints != 1 {
		t.Errorf("paints = %d, want 1", s.paints)
	}
	c.Remove(r)
	s.paints = 0
	r.SetColor(MustParseColor("blue"))
	if s.paints != 0 {
		t.Errorf("detached change repainted: paints = %d", s.paints)
	}
}

func TestWindowBatch(t *testing.T) {
	w, s := newTestWindow(t)
	r := mustRect(t, 0, 0, 1, 1)
	w.Batch(func() {
		w.Add(r)
		r.Move(5, 5)
		w.Batch(func() {
			r.SetLineWidth(3)
		})
		if s.paints != 0 {
			t.Errorf("painted inside a batch: paints = %d", s.paints)
		}
	})
	if s.paints != 1 {
		t.Errorf("paints = %d, want 1", s.paints)
	}
	w.Batch(func() {})
	if s.paints != 1 {
		t.Errorf("empty batch repainted: paints = %d", s.paints)
	}
}

func TestWindowAutoRepaintOff(t *testing.T) {
	w, s := newTestWindow(t)
	w.SetAutoRepaint(false)
	r := mustRect(t, 0, 0, 1, 1)
	w.Add(r)
	r.Move(1, 1)
	if s.paints != 0 {
		t.Errorf("paints = %d, want 0 with auto-repaint off", s.paints)
	}
	w.Repaint()
	if s.paints != 1 {
		t.Errorf("paints = %d after Repaint, want 1", s.paints)
	}
	w.SetAutoRepaint(true)
	if s.paints != 2 {
		t.Errorf("paints = %d after re-enabling, want 2", s.paints)
	}
}

func TestWindowScaleFactor(t *testing.T) {
	w, s := newTestWindow(t)
	r := mustRect(t, 10, 10, 10, 10)
	w.Add(r)
	if err := w.SetScaleFactor(2); err != nil {
		t.Fatal(err)
	}
	if w.ElementAt(30, 30) != Object(r) {
		t.Error("ElementAt should divide by the scale factor")
	}
	if w.ElementAt(15, 15) != nil {
		t.Error("ElementAt(15,15) should miss at scale 2")
	}
	if s.last.Scale != 2 {
		t.Errorf("frame scale = %v, want 2", s.last.Scale)
	}
	assertTransform(t, "command transform", s.last.Commands[0].Transform, Transform{A: 2, D: 2, TX: 20, TY: 20})
	if err := w.SetScaleFactor(0); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestWindowSize(t *testing.T) {
	w, s := newTestWindow(t)
	if w.Size() != Dim(200, 100) {
		t.Errorf("Size = %v", w.Size())
	}
	if err := w.SetSize(300, 150); err != nil {
		t.Fatal(err)
	}
	if w.Width() != 300 || w.Height() != 150 {
		t.Errorf("Width,Height = %v,%v", w.Width(), w.Height())
	}
	if s.last.Width != 300 {
		t.Errorf("frame width = %v, want 300", s.last.Width)
	}
}

func TestWindowPaintOrder(t *testing.T) {
	w, s := newTestWindow(t)
	a := mustRect(t, 0, 0, 1, 1)
	b, _ := NewOval(0, 0, 1, 1)
	a.SetName("a")
	b.SetName("b")
	w.Add(a, b)
	if s.last.Commands[0].Kind != KindRect || s.last.Commands[1].Kind != KindOval {
		t.Errorf("commands not back to front: %v, %v", s.last.Commands[0].Kind, s.last.Commands[1].Kind)
	}
	a.SendToFront()
	if s.last.Commands[1].Name != "a" {
		t.Error("SendToFront should paint last")
	}
}

func TestWindowListenersAndClose(t *testing.T) {
	w, s := newTestWindow(t)
	var clicks int
	w.AddEventListener(EventClick, func(MouseEvent) { clicks++ })
	s.Dispatch(MouseEvent{Kind: EventClick})
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.closed {
		t.Error("Close should close the surface")
	}
	s.Dispatch(MouseEvent{Kind: EventClick})
	if clicks != 1 {
		t.Error("listeners should be removed on Close")
	}
	paints := s.paints
	w.Add(mustRect(t, 0, 0, 1, 1))
	if s.paints != paints {
		t.Error("closed window should not repaint")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestWindowPaintErrorIsLogged(t *testing.T) {
	w, s := newTestWindow(t)
	s.failing = true
	w.Add(mustRect(t, 0, 0, 1, 1))
	if s.paints != 1 {
		t.Errorf("paints = %d", s.paints)
	}
}

func TestWindowRootCannotBeAdded(t *testing.T) {
	w, _ := newTestWindow(t)
	c := NewCompound(0, 0)
	expectPanic(t, "window root", func() { c.Add(w.Root()) })
}
