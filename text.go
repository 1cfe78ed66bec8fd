package sketch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidFont is returned when a font descriptor cannot be parsed.
var ErrInvalidFont = errors.New("sketch: invalid font")

const (
	// DefaultFontFamily is the family of labels created without SetFont.
	DefaultFontFamily = "sans-serif"
	// DefaultFontSize is the pixel size of labels created without SetFont.
	DefaultFontSize = 12.0
)

// DefaultFont is the descriptor of labels created without SetFont.
var DefaultFont = FontSpec{Family: DefaultFontFamily, Size: DefaultFontSize}

// TextMetrics holds the measured extent of a run of text in pixels.
type TextMetrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// TextMeasurer computes text metrics for a font descriptor. Backends provide
// implementations backed by real font data.
type TextMeasurer interface {
	MeasureText(font, text string) (TextMetrics, error)
}

// TextMeasurerFunc adapts a plain function to TextMeasurer.
type TextMeasurerFunc func(font, text string) (TextMetrics, error)

// MeasureText calls f(font, text).
func (f TextMeasurerFunc) MeasureText(font, text string) (TextMetrics, error) {
	return f(font, text)
}

// ApproxMeasurer estimates metrics from the font size alone: each rune is
// 0.6em wide, ascent is 0.8em and descent 0.2em. It is used when no backend
// measurer is available.
type ApproxMeasurer struct{}

// MeasureText implements TextMeasurer.
func (ApproxMeasurer) MeasureText(font, text string) (TextMetrics, error) {
	spec, err := ParseFont(font)
	if err != nil {
		return TextMetrics{}, err
	}
	n := float64(utf8.RuneCountInString(text))
	return TextMetrics{
		Width:   0.6 * spec.Size * n,
		Ascent:  0.8 * spec.Size,
		Descent: 0.2 * spec.Size,
	}, nil
}

// FontSpec is a parsed CSS font shorthand such as "bold 24px 'Helvetica Neue'".
type FontSpec struct {
	Style  string // "normal", "italic" or "oblique"
	Weight string // "normal", "bold", or a numeric weight
	Size   float64
	Family string
}

// Bold reports whether the weight is bold or at least 600.
func (f FontSpec) Bold() bool {
	switch f.Weight {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(f.Weight)
	return err == nil && w >= 600
}

// Italic reports whether the style is italic or oblique.
func (f FontSpec) Italic() bool {
	return f.Style == "italic" || f.Style == "oblique"
}

// String formats the spec back into CSS shorthand. Families containing
// spaces are single-quoted.
func (f FontSpec) String() string {
	var b strings.Builder
	if f.Style != "" && f.Style != "normal" {
		b.WriteString(f.Style)
		b.WriteByte(' ')
	}
	if f.Weight != "" && f.Weight != "normal" {
		b.WriteString(f.Weight)
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	b.WriteString("px ")
	if strings.ContainsRune(f.Family, ' ') {
		b.WriteByte('\'')
		b.WriteString(f.Family)
		b.WriteByte('\'')
	} else {
		b.WriteString(f.Family)
	}
	return b.String()
}

// fontUnits maps CSS length units to pixels.
var fontUnits = map[string]float64{
	"px": 1,
	"pt": 4.0 / 3.0,
	"pc": 16,
	"em": DefaultFontSize,
	"":   1,
}

// ParseFont parses a CSS font shorthand:
//
//	[style] [variant] [weight] size[/line-height] family[, fallback...]
//
// Only the first family is kept. Sizes may be given in px, pt, pc or em.
func ParseFont(s string) (FontSpec, error) {
	spec := FontSpec{Style: "normal", Weight: "normal"}
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return FontSpec{}, fmt.Errorf("sketch: parse font %q: empty: %w", s, ErrInvalidFont)
	}

	i := 0
	for ; i < len(fields); i++ {
		f := strings.ToLower(fields[i])
		switch f {
		case "normal", "small-caps":
			continue
		case "italic", "oblique":
			spec.Style = f
			continue
		case "bold", "bolder", "lighter":
			spec.Weight = f
			continue
		}
		if n, err := strconv.Atoi(f); err == nil && n >= 100 && n <= 900 && n%100 == 0 {
			spec.Weight = f
			continue
		}
		break
	}
	if i >= len(fields) {
		return FontSpec{}, fmt.Errorf("sketch: parse font %q: missing size: %w", s, ErrInvalidFont)
	}

	size, err := parseFontSize(fields[i])
	if err != nil {
		return FontSpec{}, fmt.Errorf("sketch: parse font %q: %w", s, err)
	}
	spec.Size = size

	family := strings.Join(fields[i+1:], " ")
	if comma := strings.IndexByte(family, ','); comma >= 0 {
		family = family[:comma]
	}
	family = strings.Trim(strings.TrimSpace(family), `'"`)
	if family == "" {
		return FontSpec{}, fmt.Errorf("sketch: parse font %q: missing family: %w", s, ErrInvalidFont)
	}
	spec.Family = family
	return spec, nil
}

func parseFontSize(tok string) (float64, error) {
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		tok = tok[:slash]
	}
	end := len(tok)
	for end > 0 && (tok[end-1] < '0' || tok[end-1] > '9') && tok[end-1] != '.' {
		end--
	}
	scale, ok := fontUnits[strings.ToLower(tok[end:])]
	if !ok {
		return 0, fmt.Errorf("unknown unit in %q: %w", tok, ErrInvalidFont)
	}
	v, err := strconv.ParseFloat(tok[:end], 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("bad size %q: %w", tok, ErrInvalidFont)
	}
	return v * scale, nil
}
