package sketch

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("sketch: invalid color")

// ParseColor parses an SVG/CSS color name ("red", "cornflowerblue") or a hex
// string in one of the forms "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA". The
// leading '#' is optional for hex forms.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hex := strings.TrimPrefix(name, "#")

	var digits [8]uint8
	if len(hex) != 3 && len(hex) != 4 && len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("sketch: parse color %q: %w", s, ErrInvalidColor)
	}
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return color.NRGBA{}, fmt.Errorf("sketch: parse color %q: %w", s, ErrInvalidColor)
		}
		digits[i] = d
	}

	c := color.NRGBA{A: 0xff}
	switch len(hex) {
	case 3, 4: // RGB, RGBA
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
		if len(hex) == 4 {
			c.A = digits[3] * 17
		}
	case 6, 8: // RRGGBB, RRGGBBAA
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(hex) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	}
	return c, nil
}

// MustParseColor is like ParseColor but panics on error. It is intended for
// color literals in examples and tests.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatColor returns c as "#RRGGBB", or "#RRGGBBAA" when it is not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
