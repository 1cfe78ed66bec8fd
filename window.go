package sketch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNilSurface is returned by NewWindow when no surface is given.
var ErrNilSurface = errors.New("sketch: nil surface")

const defaultCommandCap = 256

// Surface is the backing store a Window paints into and receives input from.
// Implementations live in the backend packages.
type Surface interface {
	// Paint renders a complete frame. The frame and its command slice are
	// only valid for the duration of the call.
	Paint(f *Frame) error
	// AddEventListener registers fn for mouse events of the given kind.
	AddEventListener(kind EventKind, fn func(MouseEvent)) ListenerHandle
	// Close releases the surface's resources.
	Close() error
}

// Window is the top-level viewport. It owns a root Compound and repaints its
// Surface whenever something in the tree changes, unless auto-repaint is
// disabled. Repaints are coalesced: Add with several objects, Batch, and
// every other single call each paint at most once.
type Window struct {
	surface Surface
	root    *Compound

	width, height float64
	scale         float64
	autoRepaint   bool

	batchDepth int
	pending    bool
	closed     bool

	handles  []ListenerHandle
	commands []DrawCommand
}

// NewWindow creates a window of the given size painting into s.
func NewWindow(s Surface, width, height float64) (*Window, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	if !finite(width, height) || width < 0 || height < 0 {
		return nil, fmt.Errorf("sketch: new window (%v x %v): %w", width, height, ErrInvalidGeometry)
	}
	w := &Window{
		surface:     s,
		root:        NewCompound(0, 0),
		width:       width,
		height:      height,
		scale:       1,
		autoRepaint: true,
		commands:    make([]DrawCommand, 0, defaultCommandCap),
	}
	w.root.name = "root"
	w.root.window = w
	return w, nil
}

// Root returns the window's root compound.
func (w *Window) Root() *Compound {
	return w.root
}

// Add appends objects to the window, each in front of the previous one. The
// window repaints once for the whole call.
func (w *Window) Add(objs ...Object) {
	w.Batch(func() {
		for _, o := range objs {
			w.root.Add(o)
		}
	})
}

// AddAt moves obj to (x, y) and adds it.
func (w *Window) AddAt(obj Object, x, y float64) {
	w.root.AddAt(obj, x, y)
}

// Remove detaches obj and reports whether it was a top-level element.
func (w *Window) Remove(obj Object) bool {
	return w.root.Remove(obj)
}

// RemoveAll detaches every top-level element.
func (w *Window) RemoveAll() {
	w.root.RemoveAll()
}

// Clear is an alias for RemoveAll.
func (w *Window) Clear() {
	w.root.RemoveAll()
}

// ElementCount returns the number of top-level elements.
func (w *Window) ElementCount() int {
	return w.root.ElementCount()
}

// Element returns the top-level element at index i, or nil.
func (w *Window) Element(i int) Object {
	return w.root.Element(i)
}

// ElementAt returns the frontmost top-level element containing the surface
// point (x, y), or nil. The point is divided by the scale factor first, so
// raw MouseEvent coordinates can be passed directly.
func (w *Window) ElementAt(x, y float64) Object {
	lx, ly, ok := w.root.parentToLocal(x/w.scale, y/w.scale)
	if !ok || !w.root.visible {
		return nil
	}
	return w.root.ElementAt(lx, ly)
}

// SetSize sets the declared viewport size.
func (w *Window) SetSize(width, height float64) error {
	if !finite(width, height) || width < 0 || height < 0 {
		return fmt.Errorf("sketch: window set size (%v x %v): %w", width, height, ErrInvalidGeometry)
	}
	w.width = width
	w.height = height
	w.requestRepaint()
	return nil
}

// Size returns the declared viewport size.
func (w *Window) Size() Dimension {
	return Dimension{Width: w.width, Height: w.height}
}

// Width returns the declared viewport width.
func (w *Window) Width() float64 { return w.width }

// Height returns the declared viewport height.
func (w *Window) Height() float64 { return w.height }

// ScaleFactor returns the factor every frame is scaled by.
func (w *Window) ScaleFactor() float64 { return w.scale }

// SetScaleFactor sets the factor every frame is scaled by. It must be
// positive and finite.
func (w *Window) SetScaleFactor(s float64) error {
	if !finite(s) || s <= 0 {
		return fmt.Errorf("sketch: window scale factor %v: %w", s, ErrInvalidGeometry)
	}
	if s == w.scale {
		return nil
	}
	w.scale = s
	w.requestRepaint()
	return nil
}

// AutoRepaint reports whether changes repaint the window automatically.
func (w *Window) AutoRepaint() bool { return w.autoRepaint }

// SetAutoRepaint enables or disables automatic repainting. Re-enabling it
// repaints immediately.
func (w *Window) SetAutoRepaint(enabled bool) {
	if w.autoRepaint == enabled {
		return
	}
	w.autoRepaint = enabled
	if enabled {
		w.requestRepaint()
	}
}

// Batch runs fn and repaints at most once afterwards, however many changes fn
// makes. Batches nest; only the outermost one repaints.
func (w *Window) Batch(fn func()) {
	w.batchDepth++
	defer func() {
		w.batchDepth--
		if w.batchDepth == 0 && w.pending {
			w.pending = false
			w.paint()
		}
	}()
	fn()
}

// Repaint paints the window now, regardless of the auto-repaint setting.
func (w *Window) Repaint() {
	w.paint()
}

// AddEventListener registers fn with the surface for events of the given
// kind. Listeners are removed when the window closes.
func (w *Window) AddEventListener(kind EventKind, fn func(MouseEvent)) ListenerHandle {
	h := w.surface.AddEventListener(kind, fn)
	w.handles = append(w.handles, h)
	return h
}

// Frame builds the current draw list without painting it. The returned frame
// owns its command slice.
func (w *Window) Frame() *Frame {
	return w.buildFrame(nil)
}

// Closed reports whether Close has been called.
func (w *Window) Closed() bool { return w.closed }

// Close removes the window's listeners and closes its surface. Further
// changes no longer repaint.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	for _, h := range w.handles {
		h.Remove()
	}
	w.handles = nil
	if err := w.surface.Close(); err != nil {
		return fmt.Errorf("sketch: close surface: %w", err)
	}
	return nil
}

// requestRepaint is called by objects in the tree when they change.
func (w *Window) requestRepaint() {
	if w.closed || !w.autoRepaint {
		return
	}
	if w.batchDepth > 0 {
		w.pending = true
		return
	}
	w.paint()
}

func (w *Window) buildFrame(dst []DrawCommand) *Frame {
	f := &Frame{Width: w.width, Height: w.height, Scale: w.scale}
	if w.root.visible {
		world := w.root.localToParent().Then(Scaling(w.scale, w.scale))
		dst = w.root.appendCommands(dst, world)
	}
	f.Commands = dst
	return f
}

func (w *Window) paint() {
	if w.closed {
		return
	}
	var stats repaintStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	f := w.buildFrame(w.commands[:0])
	w.commands = f.Commands

	if globalDebug {
		stats.traverseTime = time.Since(t0)
		stats.count(f.Commands)
		t0 = time.Now()
	}
	if err := w.surface.Paint(f); err != nil {
		Logger().Warn("surface paint failed", slog.Any("error", err))
	}
	if globalDebug {
		stats.paintTime = time.Since(t0)
		stats.log()
	}
}
