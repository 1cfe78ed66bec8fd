package sketch

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values simultaneously and applies them to its
// target in a single call per Update, so an attached object repaints once per
// step. Create one via the convenience constructors (TweenLocation,
// TweenColor, ...) and call Update(dt) each frame.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v *[4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the new values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(&g.values)
}

func newTweenGroup(from, to []float64, duration float32, fn ease.TweenFunc, apply func(v *[4]float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(from), apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenLocation animates obj's location to (toX, toY).
func TweenLocation(obj Object, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{obj.X(), obj.Y()}, []float64{toX, toY}, duration, fn,
		func(v *[4]float64) { obj.SetLocation(v[0], v[1]) },
	)
}

// TweenLineWidth animates obj's stroke width.
func TweenLineWidth(obj Object, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{obj.LineWidth()}, []float64{to}, duration, fn,
		func(v *[4]float64) { obj.SetLineWidth(v[0]) },
	)
}

// TweenColor animates all four components of obj's stroke color.
func TweenColor(obj Object, to color.NRGBA, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := obj.Color()
	return newTweenGroup(
		[]float64{float64(from.R), float64(from.G), float64(from.B), float64(from.A)},
		[]float64{float64(to.R), float64(to.G), float64(to.B), float64(to.A)},
		duration, fn,
		func(v *[4]float64) {
			obj.SetColor(color.NRGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: channel(v[3])})
		},
	)
}

// TweenRotation rotates obj by a total of degrees over the duration. Each
// step composes only the increment onto the existing transform.
func TweenRotation(obj Object, degrees float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	applied := 0.0
	return newTweenGroup(
		[]float64{0}, []float64{degrees}, duration, fn,
		func(v *[4]float64) {
			if d := v[0] - applied; d != 0 {
				obj.Rotate(d)
				applied = v[0]
			}
		},
	)
}

// TweenScaleFactor animates a window's scale factor.
func TweenScaleFactor(w *Window, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{w.ScaleFactor()}, []float64{to}, duration, fn,
		func(v *[4]float64) {
			if v[0] > 0 {
				_ = w.SetScaleFactor(v[0])
			}
		},
	)
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
