package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/phanxgames/sketch"
)

var errClosed = errors.New("raster: surface closed")

func (s *Surface) paintCommand(cmd *sketch.DrawCommand) error {
	switch cmd.Kind {
	case sketch.KindImage:
		s.drawImage(cmd)
		return nil
	case sketch.KindLabel:
		return s.drawLabel(cmd)
	}

	pts, closed := cmd.Outline(s.opts.Segments)
	if len(pts) == 0 {
		return nil
	}
	if cmd.Filled && closed && len(pts) >= 3 {
		if cmd.Kind == sketch.KindPolygon && selfIntersecting(pts) {
			s.fillEvenOdd(pts, cmd.Fill)
		} else {
			s.fillPath(pts, cmd.Fill)
		}
	}
	width := cmd.LineWidth * cmd.Transform.LinearScale()
	if width > 0 {
		s.strokePath(pts, closed, width, cmd.Stroke)
	}
	return nil
}

func (s *Surface) rasterizer() *vector.Rasterizer {
	b := s.canvas.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func (s *Surface) fillPath(pts []sketch.Point, c color.NRGBA) {
	z := s.rasterizer()
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// fillEvenOdd fills a self-intersecting outline with the even-odd rule.
// vector.Rasterizer only accumulates nonzero coverage, so the outline is
// split into a fan of triangles whose signed coverages are summed per pixel
// and folded mod 2.
func (s *Surface) fillEvenOdd(pts []sketch.Point, c color.NRGBA) {
	b := s.canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	acc := make([]float32, w*h)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	p0 := pts[0]
	for i := 1; i+1 < len(pts); i++ {
		p1, p2 := pts[i], pts[i+1]
		cross := (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
		if cross == 0 {
			continue
		}
		r := triangleBounds(p0, p1, p2).Intersect(mask.Rect)
		if r.Empty() {
			continue
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			clear(mask.Pix[y*mask.Stride+r.Min.X : y*mask.Stride+r.Max.X])
		}
		z := vector.NewRasterizer(w, h)
		z.MoveTo(float32(p0.X), float32(p0.Y))
		z.LineTo(float32(p1.X), float32(p1.Y))
		z.LineTo(float32(p2.X), float32(p2.Y))
		z.ClosePath()
		z.Draw(mask, r, image.Opaque, image.Point{})
		sign := float32(1)
		if cross < 0 {
			sign = -1
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if a := mask.Pix[y*mask.Stride+x]; a != 0 {
					acc[y*w+x] += sign * float32(a) / 255
				}
			}
		}
	}
	for i, v := range acc {
		v = float32(math.Mod(math.Abs(float64(v)), 2))
		if v > 1 {
			v = 2 - v
		}
		mask.Pix[i] = uint8(v*255 + 0.5)
	}
	draw.DrawMask(s.canvas, b, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func triangleBounds(a, b, c sketch.Point) image.Rectangle {
	minX := math.Floor(math.Min(a.X, math.Min(b.X, c.X)))
	minY := math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y)))
	maxX := math.Ceil(math.Max(a.X, math.Max(b.X, c.X)))
	maxY := math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y)))
	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1)
}

// selfIntersecting reports whether any two non-adjacent edges of the closed
// outline cross.
func selfIntersecting(pts []sketch.Point) bool {
	n := len(pts)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsCross(a1, a2, pts[j], pts[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(p1, p2, q1, q2 sketch.Point) bool {
	orient := func(a, b, c sketch.Point) float64 {
		return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	}
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// strokePath fills one quad per segment plus a square at every joint. All
// pieces share one winding so overlaps do not cancel.
func (s *Surface) strokePath(pts []sketch.Point, closed bool, width float64, c color.NRGBA) {
	z := s.rasterizer()
	hw := width / 2
	quad := func(a, b sketch.Point) {
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		nx, ny := -dy/l*hw, dx/l*hw
		z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		z.ClosePath()
	}
	joint := func(p sketch.Point) {
		z.MoveTo(float32(p.X-hw), float32(p.Y-hw))
		z.LineTo(float32(p.X-hw), float32(p.Y+hw))
		z.LineTo(float32(p.X+hw), float32(p.Y+hw))
		z.LineTo(float32(p.X+hw), float32(p.Y-hw))
		z.ClosePath()
	}
	for i := 1; i < len(pts); i++ {
		quad(pts[i-1], pts[i])
	}
	if closed && len(pts) > 2 {
		quad(pts[len(pts)-1], pts[0])
	}
	if width > 2 {
		for _, p := range pts {
			joint(p)
		}
	}
	z.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// drawImage maps the bitmap into the command's frame through its transform.
func (s *Surface) drawImage(cmd *sketch.DrawCommand) {
	src := cmd.Image
	if src == nil {
		return
	}
	sr := src.Bounds()
	if sr.Empty() || cmd.Frame.Width == 0 || cmd.Frame.Height == 0 {
		return
	}
	kx := cmd.Frame.Width / float64(sr.Dx())
	ky := cmd.Frame.Height / float64(sr.Dy())
	m := cmd.Transform
	ox := cmd.Frame.X - kx*float64(sr.Min.X)
	oy := cmd.Frame.Y - ky*float64(sr.Min.Y)
	s2d := f64.Aff3{
		m.A * kx, m.B * ky, m.A*ox + m.B*oy + m.TX,
		m.C * kx, m.D * ky, m.C*ox + m.D*oy + m.TY,
	}
	draw.BiLinear.Transform(s.canvas, s2d, src, sr, draw.Over, nil)
}

// drawLabel draws text at the transformed baseline origin. The font is
// scaled by the transform's linear scale; rotation and shear are not
// applied to glyphs.
func (s *Surface) drawLabel(cmd *sketch.DrawCommand) error {
	if cmd.Text == "" {
		return nil
	}
	face, err := s.measurer.face(cmd.Font, cmd.Transform.LinearScale())
	if err != nil {
		return fmt.Errorf("raster: label %q: %w", cmd.Text, err)
	}
	x, y := cmd.Transform.Apply(0, 0)
	d := font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(cmd.Stroke),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(cmd.Text)
	return nil
}
