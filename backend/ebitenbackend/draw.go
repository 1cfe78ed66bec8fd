package ebitenbackend

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sketch"
)

var errClosed = errors.New("ebitenbackend: surface closed")

// segments is the number of segments per full turn used to flatten curves.
const segments = 96

var whiteSubImage *ebiten.Image

// solid returns a 1x1 white source image for untextured triangles.
func solid() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

func (s *Surface) drawCommand(screen *ebiten.Image, cmd *sketch.DrawCommand) {
	switch cmd.Kind {
	case sketch.KindImage:
		s.drawImage(screen, cmd)
		return
	case sketch.KindLabel:
		s.drawLabel(screen, cmd)
		return
	}

	pts, closed := cmd.Outline(segments)
	if len(pts) == 0 {
		return
	}
	path := pathOf(pts, closed)
	if cmd.Filled && closed {
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		setVertexColor(vs, cmd.Fill)
		screen.DrawTriangles(vs, is, solid(), &ebiten.DrawTrianglesOptions{
			AntiAlias: true,
			FillRule:  ebiten.FillRuleEvenOdd,
		})
	}
	width := float32(cmd.LineWidth * cmd.Transform.LinearScale())
	if width <= 0 {
		return
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinMiter,
		LineCap:  vector.LineCapButt,
	})
	setVertexColor(vs, cmd.Stroke)
	screen.DrawTriangles(vs, is, solid(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func pathOf(pts []sketch.Point, closed bool) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
			continue
		}
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	if closed {
		p.Close()
	}
	return &p
}

func setVertexColor(vs []ebiten.Vertex, c color.NRGBA) {
	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255
	a := float32(c.A) / 255
	for i := range vs {
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}

// geoM converts a sketch transform to an ebiten.GeoM.
func geoM(m sketch.Transform) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.B)
	g.SetElement(0, 2, m.TX)
	g.SetElement(1, 0, m.C)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.TY)
	return g
}

func (s *Surface) drawImage(screen *ebiten.Image, cmd *sketch.DrawCommand) {
	if cmd.Image == nil {
		return
	}
	img := s.images.get(cmd.Image)
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(cmd.Frame.Width/float64(sw), cmd.Frame.Height/float64(sh))
	op.GeoM.Translate(cmd.Frame.X, cmd.Frame.Y)
	op.GeoM.Concat(geoM(cmd.Transform))
	screen.DrawImage(img, op)
}

// drawLabel renders the text with its baseline on the native origin. The
// full transform applies, so rotated and sheared labels are drawn as such.
func (s *Surface) drawLabel(screen *ebiten.Image, cmd *sketch.DrawCommand) {
	face, err := s.measurer.face(cmd.Font)
	if err != nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(0, -face.Metrics().HAscent)
	op.GeoM.Concat(geoM(cmd.Transform))
	op.ColorScale.ScaleWithColor(cmd.Stroke)
	op.Filter = ebiten.FilterLinear
	text.Draw(screen, cmd.Text, face, op)
}

// imageCache maps decoded bitmaps to GPU images.
type imageCache map[image.Image]*ebiten.Image

func (c imageCache) get(src image.Image) *ebiten.Image {
	if img, ok := c[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	c[src] = img
	return img
}

func (c imageCache) dispose() {
	for k, img := range c {
		img.Deallocate()
		delete(c, k)
	}
}
