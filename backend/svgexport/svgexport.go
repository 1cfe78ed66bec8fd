// Package svgexport is a sketch.Surface that renders each frame as an SVG
// document with github.com/ajstarks/svgo. Geometry is written untransformed
// with a matrix transform attribute per element, so curves stay exact.
package svgexport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/phanxgames/sketch"
	"github.com/phanxgames/sketch/gmath"
)

// Surface keeps the SVG document of the most recently painted frame.
// Input is not supported: listeners can be registered but never fire.
type Surface struct {
	doc       bytes.Buffer
	frames    int
	listeners sketch.Listeners
}

// New creates an empty Surface.
func New() *Surface {
	return &Surface{}
}

// Paint implements sketch.Surface.
func (s *Surface) Paint(f *sketch.Frame) error {
	s.doc.Reset()
	if err := Encode(&s.doc, f); err != nil {
		return err
	}
	s.frames++
	return nil
}

// AddEventListener implements sketch.Surface.
func (s *Surface) AddEventListener(kind sketch.EventKind, fn func(sketch.MouseEvent)) sketch.ListenerHandle {
	return s.listeners.Add(kind, fn)
}

// Close implements sketch.Surface.
func (s *Surface) Close() error {
	s.listeners.Clear()
	return nil
}

// Frames returns the number of frames painted so far.
func (s *Surface) Frames() int { return s.frames }

// Bytes returns the last document. The slice is reused by the next Paint.
func (s *Surface) Bytes() []byte { return s.doc.Bytes() }

// WriteTo writes the last document to w.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.doc.Bytes())
	return int64(n), err
}

// SaveFile writes the last document to path.
func (s *Surface) SaveFile(path string) error {
	if err := os.WriteFile(path, s.doc.Bytes(), 0o644); err != nil {
		return fmt.Errorf("svgexport: %w", err)
	}
	return nil
}

// Encode writes f as a standalone SVG document, one element per command.
func Encode(w io.Writer, f *sketch.Frame) error {
	width := int(math.Ceil(f.Width * f.Scale))
	height := int(math.Ceil(f.Height * f.Scale))
	canvas := svg.New(w)
	canvas.Start(width, height)
	for i := range f.Commands {
		if err := encodeCommand(canvas, &f.Commands[i]); err != nil {
			return err
		}
	}
	canvas.End()
	return nil
}

func encodeCommand(canvas *svg.SVG, cmd *sketch.DrawCommand) error {
	attrs := []string{transformAttr(cmd.Transform)}
	if cmd.Name != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, escapeAttr(cmd.Name)))
	}

	switch cmd.Kind {
	case sketch.KindLabel:
		style := fmt.Sprintf("font:%s;%s", cmd.Font, paint("fill", cmd.Stroke))
		canvas.Text(0, 0, cmd.Text, append(attrs, style)...)
		return nil
	case sketch.KindImage:
		return encodeImage(canvas, cmd, attrs)
	}

	d, closed := pathData(cmd)
	if d == "" {
		return nil
	}
	fill := "fill:none"
	if cmd.Filled && closed {
		fill = paint("fill", cmd.Fill)
		if cmd.Kind == sketch.KindPolygon {
			fill += ";fill-rule:evenodd"
		}
	}
	style := fmt.Sprintf("%s;%s;stroke-width:%s", fill, paint("stroke", cmd.Stroke), num(cmd.LineWidth))
	canvas.Path(d, append(attrs, style)...)
	return nil
}

// pathData returns the SVG path of the command's native geometry.
func pathData(cmd *sketch.DrawCommand) (d string, closed bool) {
	var b strings.Builder
	switch cmd.Kind {
	case sketch.KindLine, sketch.KindPolygon:
		if len(cmd.Points) == 0 {
			return "", false
		}
		for i, p := range cmd.Points {
			op := "L"
			if i == 0 {
				op = "M"
			}
			fmt.Fprintf(&b, "%s%s %s ", op, num(p.X), num(p.Y))
		}
		if cmd.Kind == sketch.KindPolygon {
			b.WriteString("Z")
			return strings.TrimSpace(b.String()), true
		}
		return strings.TrimSpace(b.String()), false

	case sketch.KindRect:
		r := cmd.Frame
		fmt.Fprintf(&b, "M%s %s H%s V%s H%s Z",
			num(r.X), num(r.Y), num(r.X+r.Width), num(r.Y+r.Height), num(r.X))
		return b.String(), true

	case sketch.KindOval:
		return ellipsePath(cmd.Frame), true

	case sketch.KindArc:
		if math.Abs(cmd.Sweep) >= 360 {
			return ellipsePath(cmd.Frame), cmd.Filled
		}
		cx, cy := cmd.Frame.X+cmd.Frame.Width/2, cmd.Frame.Y+cmd.Frame.Height/2
		rx, ry := cmd.Frame.Width/2, cmd.Frame.Height/2
		end := cmd.Start + cmd.Sweep
		large := 0
		if math.Abs(cmd.Sweep) > 180 {
			large = 1
		}
		// Positive sweeps run counterclockwise on screen, which is SVG's
		// negative-angle direction.
		sweepFlag := 0
		if cmd.Sweep < 0 {
			sweepFlag = 1
		}
		fmt.Fprintf(&b, "M%s %s A%s %s 0 %d %d %s %s",
			num(cx+rx*gmath.CosDegrees(cmd.Start)), num(cy-ry*gmath.SinDegrees(cmd.Start)),
			num(rx), num(ry), large, sweepFlag,
			num(cx+rx*gmath.CosDegrees(end)), num(cy-ry*gmath.SinDegrees(end)))
		if cmd.Filled {
			fmt.Fprintf(&b, " L%s %s Z", num(cx), num(cy))
			return b.String(), true
		}
		return b.String(), false
	}
	return "", false
}

func ellipsePath(r sketch.Rectangle) string {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	rx, ry := r.Width/2, r.Height/2
	return fmt.Sprintf("M%s %s A%s %s 0 1 0 %s %s A%s %s 0 1 0 %s %s Z",
		num(cx-rx), num(cy), num(rx), num(ry), num(cx+rx), num(cy),
		num(rx), num(ry), num(cx-rx), num(cy))
}

// encodeImage embeds the bitmap as a PNG data URI at its natural size and
// scales it into the frame through the transform.
func encodeImage(canvas *svg.SVG, cmd *sketch.DrawCommand, attrs []string) error {
	if cmd.Image == nil {
		return nil
	}
	sr := cmd.Image.Bounds()
	if sr.Empty() {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, cmd.Image); err != nil {
		return fmt.Errorf("svgexport: encode image: %w", err)
	}
	kx := cmd.Frame.Width / float64(sr.Dx())
	ky := cmd.Frame.Height / float64(sr.Dy())
	m := sketch.Scaling(kx, ky).Then(sketch.Translation(cmd.Frame.X, cmd.Frame.Y)).Then(cmd.Transform)
	attrs[0] = transformAttr(m)
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	canvas.Image(0, 0, sr.Dx(), sr.Dy(), href, attrs...)
	return nil
}

func transformAttr(m sketch.Transform) string {
	// SVG's matrix(a b c d e f) maps x' = a*x + c*y + e, y' = b*x + d*y + f.
	return fmt.Sprintf(`transform="matrix(%s %s %s %s %s %s)"`,
		num(m.A), num(m.C), num(m.B), num(m.D), num(m.TX), num(m.TY))
}

func paint(prop string, c color.NRGBA) string {
	rgb := fmt.Sprintf("%s:#%02x%02x%02x", prop, c.R, c.G, c.B)
	if c.A == 0xff {
		return rgb
	}
	return fmt.Sprintf("%s;%s-opacity:%s", rgb, prop, num(float64(c.A)/255))
}

// num formats v with at most four decimals.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
