// Package sketch is a retained-mode 2D vector-graphics object model.
//
// Sketch provides positionable, transformable shapes (lines, rectangles,
// ovals, polygons, arcs, labels and images), a recursive [Compound]
// container, and a [Window] that paints the tree through a pluggable
// [Surface] and answers point hit-tests. Rendering backends live in
// sketch/backend: an interactive Ebitengine surface, a headless rasterizer
// and an SVG writer.
//
// # Quick start
//
//	surface := raster.New(raster.Options{Width: 400, Height: 300})
//	win, _ := sketch.NewWindow(surface, 400, 300)
//
//	r, _ := sketch.NewRect(50, 50, 100, 60)
//	r.SetFilled(true)
//	r.SetFillColor(sketch.MustParseColor("cornflowerblue"))
//	win.Add(r)
//
//	if hit := win.ElementAt(75, 75); hit == r {
//		// ...
//	}
//
// # Coordinates and transforms
//
// The origin is the top-left corner with Y increasing downward. Every object
// has a location in its parent's frame plus an accumulated affine
// [Transform] around that location. [Object.Rotate], Scale, Shear and
// Translate compose onto the existing transform; nothing resets it. Once a
// [Rect] or [Oval] has been transformed its SetSize and SetBounds return
// [ErrTransformed].
//
// Angles are in degrees. [Object.MovePolar] measures clockwise from the +x
// axis (screen convention) while [Polygon.AddPolarEdge] and [Arc] angles
// measure counterclockwise (math convention).
//
// # Hit-testing and z-order
//
// Children paint back to front in insertion order. [Compound.ElementAt] and
// [Window.ElementAt] return the frontmost direct child containing a point;
// SendToFront, SendToBack, SendForward and SendBackward reorder siblings.
// Invisible objects neither paint nor hit.
//
// # Repainting
//
// Any change to an object attached to a window repaints it, unless
// [Window.SetAutoRepaint] is off. [Window.Add] with several objects and
// [Window.Batch] coalesce their changes into one repaint.
//
// # Concurrency
//
// Sketch is single-threaded. The tree, windows and listeners must only be
// used from one goroutine; image loaders and surfaces deliver callbacks on
// that goroutine. Only [SetLogger] and [Logger] are safe for concurrent use.
//
// Tweens (via [gween]) animate locations, colors, line widths, rotations and
// window scale; call [TweenGroup.Update] from your frame loop.
//
// [gween]: https://github.com/tanema/gween
package sketch
