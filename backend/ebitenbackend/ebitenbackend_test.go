package ebitenbackend

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/sketch"
)

func TestGeoMMatchesTransform(t *testing.T) {
	m := sketch.Rotation(30).Then(sketch.Scaling(2, 3)).Then(sketch.Translation(5, -7))
	g := geoM(m)
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {3.5, -2}} {
		wx, wy := m.Apply(p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("Apply(%v) = (%v, %v), want (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestTTFFor(t *testing.T) {
	tests := []struct {
		font string
		want string
	}{
		{"12px sans-serif", "regular"},
		{"bold 12px serif", "bold"},
		{"italic 12px serif", "italic"},
		{"italic bold 12px serif", "bolditalic"},
		{"12px monospace", "mono"},
		{"bold 12px 'Courier New'", "mono"},
	}
	for _, tt := range tests {
		spec, err := sketch.ParseFont(tt.font)
		if err != nil {
			t.Fatalf("ParseFont(%q): %v", tt.font, err)
		}
		if got := ttfFor(spec); got != tt.want {
			t.Errorf("ttfFor(%q) = %q, want %q", tt.font, got, tt.want)
		}
	}
}

func TestMeasurer(t *testing.T) {
	m := NewMeasurer()
	short, err := m.MeasureText("16px sans-serif", "hi")
	if err != nil {
		t.Fatal(err)
	}
	long, err := m.MeasureText("16px sans-serif", "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if short.Width <= 0 || long.Width <= short.Width {
		t.Errorf("widths = %v, %v, want 0 < short < long", short.Width, long.Width)
	}
	if short.Ascent <= 0 || short.Descent <= 0 {
		t.Errorf("ascent/descent = %v/%v, want positive", short.Ascent, short.Descent)
	}
	big, err := m.MeasureText("32px sans-serif", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(big.Width-2*short.Width) > 1 {
		t.Errorf("32px width = %v, want about %v", big.Width, 2*short.Width)
	}
	if _, err := m.MeasureText("sans-serif", "x"); !errors.Is(err, sketch.ErrInvalidFont) {
		t.Errorf("err = %v, want ErrInvalidFont", err)
	}
}

func TestLoaderDeliversOnDrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dot.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := NewLoader()
	var got image.Image
	calls := 0
	l.LoadImage(path, func(img image.Image, err error) {
		calls++
		if err != nil {
			t.Errorf("load: %v", err)
		}
		got = img
	})
	l.LoadImage(filepath.Join(t.TempDir(), "missing.png"), func(_ image.Image, err error) {
		calls++
		if err == nil {
			t.Error("missing file loaded without error")
		}
	})
	l.Wait()
	if calls != 0 {
		t.Fatalf("callbacks ran before drain: %d", calls)
	}
	if n := l.drain(); n != 2 {
		t.Fatalf("drain = %d, want 2", n)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if got == nil || got.Bounds().Dx() != 2 || got.Bounds().Dy() != 3 {
		t.Errorf("image = %v, want 2x3", got)
	}
	if n := l.drain(); n != 0 {
		t.Errorf("second drain = %d, want 0", n)
	}
}

func TestImageThroughLoader(t *testing.T) {
	l := NewLoader()
	l.decode = func(string) (image.Image, error) {
		return image.NewNRGBA(image.Rect(0, 0, 4, 5)), nil
	}
	im, err := sketch.NewImage(l, "any.png", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	l.Wait()
	if im.Loaded() {
		t.Fatal("image loaded before drain")
	}
	l.drain()
	if !im.Loaded() {
		t.Fatal("image not loaded after drain")
	}
	if w, h := im.Width(), im.Height(); w != 4 || h != 5 {
		t.Errorf("size = %vx%v, want 4x5", w, h)
	}
}

func TestSurfacePaintAndLayout(t *testing.T) {
	s := New(Config{Width: 100, Height: 50})
	if w, h := s.Layout(800, 600); w != 100 || h != 50 {
		t.Errorf("Layout = %dx%d, want 100x50", w, h)
	}
	win, err := sketch.NewWindow(s, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	if err := win.SetScaleFactor(2); err != nil {
		t.Fatal(err)
	}
	r, err := sketch.NewRect(1, 1, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	win.Add(r)
	if len(s.commands) != 1 {
		t.Fatalf("retained %d commands, want 1", len(s.commands))
	}
	if w, h := s.Layout(800, 600); w != 200 || h != 100 {
		t.Errorf("Layout = %dx%d, want 200x100", w, h)
	}

	var clicks int
	win.AddEventListener(sketch.EventClick, func(sketch.MouseEvent) { clicks++ })
	if s.listeners.Len(sketch.EventClick) != 1 {
		t.Errorf("listeners = %d, want 1", s.listeners.Len(sketch.EventClick))
	}
	if err := win.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(&sketch.Frame{}); !errors.Is(err, errClosed) {
		t.Errorf("Paint after close = %v, want errClosed", err)
	}
}
