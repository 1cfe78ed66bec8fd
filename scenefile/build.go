package scenefile

import (
	"fmt"
	"path/filepath"

	"github.com/phanxgames/sketch"
)

// Options supplies the collaborators used while building a scene. Nil fields
// fall back to sketch.ApproxMeasurer and sketch.FileLoader.
type Options struct {
	Measurer sketch.TextMeasurer
	Loader   sketch.ImageLoader
}

// NewWindow creates a window on surface sized and scaled as the scene asks,
// then builds the scene into it.
func (s *Scene) NewWindow(surface sketch.Surface, opts Options) (*sketch.Window, error) {
	w, err := sketch.NewWindow(surface, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if s.Scale != 0 {
		if err := w.SetScaleFactor(s.Scale); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	if err := s.Build(w, opts); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Build creates the scene's objects and adds them to w with a single repaint.
// Nothing is added when any object fails to build.
func (s *Scene) Build(w *sketch.Window, opts Options) error {
	objs, err := s.Elements(opts)
	if err != nil {
		return err
	}
	w.Add(objs...)
	sketch.Logger().Debug("scene built", "objects", len(objs), "title", s.Title)
	return nil
}

// Elements creates the scene's top-level objects without attaching them.
func (s *Scene) Elements(opts Options) ([]sketch.Object, error) {
	b := builder{opts: opts, dir: s.Dir}
	objs := make([]sketch.Object, 0, len(s.Objects))
	for i := range s.Objects {
		obj, err := b.build(&s.Objects[i], fmt.Sprintf("objects[%d]", i))
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

type builder struct {
	opts Options
	dir  string
}

func (b *builder) build(o *Object, path string) (sketch.Object, error) {
	obj, err := b.create(o, path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s (%s): %w", path, o.Type, err)
	}
	if err := style(obj, o); err != nil {
		return nil, fmt.Errorf("scenefile: %s (%s): %w", path, o.Type, err)
	}
	for _, op := range o.Transform {
		switch {
		case op.Rotate != nil:
			obj.Rotate(*op.Rotate)
		case op.Scale != nil:
			obj.Scale(op.Scale[0], op.Scale[1])
		case op.Shear != nil:
			obj.Shear(op.Shear[0], op.Shear[1])
		case op.Translate != nil:
			obj.Translate(op.Translate[0], op.Translate[1])
		}
	}
	return obj, nil
}

func (b *builder) create(o *Object, path string) (sketch.Object, error) {
	switch o.Type {
	case "line":
		return sketch.NewLine(o.X, o.Y, o.X1, o.Y1)
	case "rect":
		return sketch.NewRect(o.X, o.Y, o.Width, o.Height)
	case "oval":
		return sketch.NewOval(o.X, o.Y, o.Width, o.Height)
	case "arc":
		return sketch.NewArc(o.X, o.Y, o.Width, o.Height, o.Start, o.Sweep)
	case "polygon":
		p, err := sketch.NewPolygon(o.X, o.Y)
		if err != nil {
			return nil, err
		}
		for _, pt := range o.Points {
			p.AddVertex(pt[0], pt[1])
		}
		return p, nil
	case "label":
		l, err := sketch.NewLabel(b.opts.Measurer, o.Text, o.X, o.Y)
		if err != nil {
			return nil, err
		}
		if o.Font != "" {
			if err := l.SetFont(o.Font); err != nil {
				return nil, err
			}
		}
		return l, nil
	case "image":
		src := o.Source
		if b.dir != "" && !filepath.IsAbs(src) {
			src = filepath.Join(b.dir, src)
		}
		img, err := sketch.NewImage(b.opts.Loader, src, o.X, o.Y)
		if err != nil {
			return nil, err
		}
		if o.Width > 0 && o.Height > 0 {
			if err := img.SetSize(o.Width, o.Height); err != nil {
				return nil, err
			}
		}
		return img, nil
	case "compound":
		c := sketch.NewCompound(o.X, o.Y)
		for i := range o.Children {
			child, err := b.build(&o.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			c.Add(child)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown object type %q", o.Type)
}

func style(obj sketch.Object, o *Object) error {
	if o.Name != "" {
		obj.SetName(o.Name)
	}
	if o.Color != "" {
		c, err := sketch.ParseColor(o.Color)
		if err != nil {
			return err
		}
		obj.SetColor(c)
	}
	if o.Fill != "" {
		c, err := sketch.ParseColor(o.Fill)
		if err != nil {
			return err
		}
		obj.SetFillColor(c)
	}
	if o.Filled {
		obj.SetFilled(true)
	}
	if o.LineWidth != nil {
		obj.SetLineWidth(*o.LineWidth)
	}
	if o.Visible != nil {
		obj.SetVisible(*o.Visible)
	}
	return nil
}
