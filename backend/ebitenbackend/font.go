package ebitenbackend

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/sketch"
)

var goFonts = map[string][]byte{
	"regular":    goregular.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
	"mono":       gomono.TTF,
}

// Measurer implements sketch.TextMeasurer with text/v2 and the Go fonts.
// It is also the face cache used to draw labels, so measured and drawn
// text always agree.
type Measurer struct {
	sources map[string]*text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// NewMeasurer creates an empty Measurer.
func NewMeasurer() *Measurer {
	return &Measurer{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[string]*text.GoTextFace),
	}
}

// MeasureText implements sketch.TextMeasurer.
func (m *Measurer) MeasureText(fontDesc, s string) (sketch.TextMetrics, error) {
	face, err := m.face(fontDesc)
	if err != nil {
		return sketch.TextMetrics{}, err
	}
	w, _ := text.Measure(s, face, 0)
	metrics := face.Metrics()
	return sketch.TextMetrics{
		Width:   w,
		Ascent:  metrics.HAscent,
		Descent: metrics.HDescent,
	}, nil
}

func (m *Measurer) face(fontDesc string) (*text.GoTextFace, error) {
	if f, ok := m.faces[fontDesc]; ok {
		return f, nil
	}
	spec, err := sketch.ParseFont(fontDesc)
	if err != nil {
		return nil, err
	}
	ttf := ttfFor(spec)
	src, ok := m.sources[ttf]
	if !ok {
		src, err = text.NewGoTextFaceSource(bytes.NewReader(goFonts[ttf]))
		if err != nil {
			return nil, fmt.Errorf("ebitenbackend: parse %s font: %w", ttf, err)
		}
		m.sources[ttf] = src
	}
	f := &text.GoTextFace{Source: src, Size: spec.Size}
	m.faces[fontDesc] = f
	return f, nil
}

// ttfFor picks the Go font closest to spec. Families containing "mono" or
// "courier" use Go Mono; everything else uses Go Regular in the requested
// weight and style.
func ttfFor(spec sketch.FontSpec) string {
	family := strings.ToLower(spec.Family)
	if family == "monospace" || strings.Contains(family, "mono") || strings.Contains(family, "courier") {
		return "mono"
	}
	switch {
	case spec.Bold() && spec.Italic():
		return "bolditalic"
	case spec.Bold():
		return "bold"
	case spec.Italic():
		return "italic"
	}
	return "regular"
}
