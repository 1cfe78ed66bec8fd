package raster

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/phanxgames/sketch"
)

// Measurer implements sketch.TextMeasurer with the Go font family. Every
// CSS family maps onto Go Regular, Bold, Italic or Bold Italic, except
// monospace families which map onto Go Mono.
type Measurer struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	ttf  string
	size float64
}

// NewMeasurer creates a Measurer. Font data is parsed lazily.
func NewMeasurer() *Measurer {
	return &Measurer{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// MeasureText implements sketch.TextMeasurer.
func (m *Measurer) MeasureText(fontDesc, text string) (sketch.TextMetrics, error) {
	face, err := m.face(fontDesc, 1)
	if err != nil {
		return sketch.TextMetrics{}, err
	}
	metrics := face.Metrics()
	return sketch.TextMetrics{
		Width:   float64(font.MeasureString(face, text)) / 64,
		Ascent:  float64(metrics.Ascent) / 64,
		Descent: float64(metrics.Descent) / 64,
	}, nil
}

func (m *Measurer) face(fontDesc string, scale float64) (font.Face, error) {
	spec, err := sketch.ParseFont(fontDesc)
	if err != nil {
		return nil, err
	}
	ttf := ttfFor(spec)
	key := faceKey{ttf: ttf, size: spec.Size * scale}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	parsed, ok := m.fonts[ttf]
	if !ok {
		parsed, err = opentype.Parse(goFonts[ttf])
		if err != nil {
			return nil, fmt.Errorf("raster: parse %s: %w", ttf, err)
		}
		m.fonts[ttf] = parsed
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: face %s %vpx: %w", ttf, key.size, err)
	}
	m.faces[key] = f
	return f, nil
}

var goFonts = map[string][]byte{
	"regular":    goregular.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
	"mono":       gomono.TTF,
}

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
