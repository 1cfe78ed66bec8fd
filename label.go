package sketch

import (
	"fmt"
	"log/slog"
)

// Label is a run of text. Its origin is the left end of the baseline, so the
// text occupies (0, -ascent) to (width, descent) in native coordinates.
// Metrics always come from the label's TextMeasurer.
type Label struct {
	object
	text     string
	font     string
	measurer TextMeasurer
	metrics  TextMetrics
}

// NewLabel creates a label whose baseline starts at (x, y). A nil measurer
// selects ApproxMeasurer.
func NewLabel(m TextMeasurer, text string, x, y float64) (*Label, error) {
	if !finite(x, y) {
		return nil, fmt.Errorf("sketch: new label (%v, %v): %w", x, y, ErrInvalidGeometry)
	}
	if m == nil {
		m = ApproxMeasurer{}
	}
	l := &Label{text: text, font: DefaultFont.String(), measurer: m}
	l.init(l, l, x, y)
	metrics, err := m.MeasureText(l.font, text)
	if err != nil {
		return nil, fmt.Errorf("sketch: new label: %w", err)
	}
	l.metrics = metrics
	return l, nil
}

// Font returns the font descriptor in CSS shorthand.
func (l *Label) Font() string { return l.font }

// SetFont sets the font from a CSS shorthand such as "24px 'Helvetica Neue'".
// On error the label keeps its previous font.
func (l *Label) SetFont(font string) error {
	spec, err := ParseFont(font)
	if err != nil {
		return err
	}
	normalized := spec.String()
	metrics, err := l.measurer.MeasureText(normalized, l.text)
	if err != nil {
		return fmt.Errorf("sketch: label set font: %w", err)
	}
	l.font = normalized
	l.metrics = metrics
	l.changed()
	return nil
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// SetLabel replaces the displayed text and re-measures it.
func (l *Label) SetLabel(text string) {
	metrics, err := l.measurer.MeasureText(l.font, text)
	if err != nil {
		Logger().Warn("label measure failed", slog.String("font", l.font), slog.Any("error", err))
		metrics = TextMetrics{Ascent: l.metrics.Ascent, Descent: l.metrics.Descent}
	}
	l.text = text
	l.metrics = metrics
	l.changed()
}

// Ascent returns the distance from the baseline to the top of the text.
func (l *Label) Ascent() float64 { return l.metrics.Ascent }

// Descent returns the distance from the baseline to the bottom of the text.
func (l *Label) Descent() float64 { return l.metrics.Descent }

// Metrics returns the measured text metrics.
func (l *Label) Metrics() TextMetrics { return l.metrics }

func (l *Label) textBox() Rectangle {
	return Rectangle{
		Y:      -l.metrics.Ascent,
		Width:  l.metrics.Width,
		Height: l.metrics.Ascent + l.metrics.Descent,
	}
}

func (l *Label) extentUnder(m Transform) Rectangle {
	return m.TransformRect(l.textBox())
}

func (l *Label) containsLocal(x, y float64) bool {
	return l.textBox().Contains(x, y)
}

func (l *Label) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	cmd := l.command(KindLabel, world)
	cmd.Frame = l.textBox()
	cmd.Text = l.text
	cmd.Font = l.font
	cmd.Metrics = l.metrics
	return append(dst, cmd)
}
