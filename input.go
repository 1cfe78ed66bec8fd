package sketch

import (
	"log/slog"
	"math"
	"time"
)

const (
	defaultDragDeadZone      = 4.0 // pixels
	defaultDoubleClickWindow = 400 * time.Millisecond
)

// EventKind identifies a kind of mouse event.
type EventKind uint8

const (
	EventClick       EventKind = iota // press and release on the same spot without dragging
	EventDoubleClick                  // second click within the double-click window
	EventMouseDown                    // button pressed
	EventMouseUp                      // button released
	EventDrag                         // pointer moved with a button held
	EventMouseMove                    // pointer moved with no button held
	eventKindCount
)

var eventKindNames = [...]string{"click", "dblclick", "mousedown", "mouseup", "drag", "mousemove"}

// String returns the DOM-style event name.
func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return "unknown"
}

// ParseEventKind returns the kind named by s, as produced by String.
func ParseEventKind(s string) (EventKind, bool) {
	for i, name := range eventKindNames {
		if name == s {
			return EventKind(i), true
		}
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseEvent is delivered to listeners. X and Y are raw surface coordinates;
// divide by Window.ScaleFactor (or use Window.ElementAt) to reach scene
// coordinates.
type MouseEvent struct {
	Kind   EventKind
	X, Y   float64
	Button MouseButton
}

type listener struct {
	id uint32
	fn func(MouseEvent)
}

// Listeners is a registry of mouse event callbacks, one list per kind.
// Surfaces embed it to implement AddEventListener.
type Listeners struct {
	byKind [eventKindCount][]listener
	nextID uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id   uint32
	reg  *Listeners
	kind EventKind
}

// Remove unregisters the listener so it no longer fires. Removing twice, or
// removing the zero handle, does nothing.
func (h ListenerHandle) Remove() {
	if h.reg == nil || h.kind >= eventKindCount {
		return
	}
	s := h.reg.byKind[h.kind]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byKind[h.kind] = s[:len(s)-1]
			return
		}
	}
}

// Add registers fn for events of the given kind.
func (l *Listeners) Add(kind EventKind, fn func(MouseEvent)) ListenerHandle {
	if fn == nil || kind >= eventKindCount {
		return ListenerHandle{}
	}
	l.nextID++
	id := l.nextID
	l.byKind[kind] = append(l.byKind[kind], listener{id: id, fn: fn})
	Logger().Debug("listener added", slog.String("kind", kind.String()), slog.Uint64("id", uint64(id)))
	return ListenerHandle{id: id, reg: l, kind: kind}
}

// Dispatch calls every listener registered for ev.Kind in registration
// order. Listeners may remove themselves while being dispatched.
func (l *Listeners) Dispatch(ev MouseEvent) {
	if ev.Kind >= eventKindCount {
		return
	}
	s := l.byKind[ev.Kind]
	if len(s) == 0 {
		return
	}
	snapshot := make([]listener, len(s))
	copy(snapshot, s)
	for _, h := range snapshot {
		h.fn(ev)
	}
}

// Len returns the number of listeners registered for kind.
func (l *Listeners) Len(kind EventKind) int {
	if kind >= eventKindCount {
		return 0
	}
	return len(l.byKind[kind])
}

// Clear removes every listener.
func (l *Listeners) Clear() {
	for i := range l.byKind {
		l.byKind[i] = nil
	}
}

// PointerTracker turns raw pointer samples into mouse events. Backends feed
// it one sample per frame (or per injected event) and it dispatches the
// resulting events to its Listeners.
type PointerTracker struct {
	// DragDeadZone is the distance the pointer must travel while pressed
	// before drag events fire and the press stops counting as a click.
	DragDeadZone float64
	// DoubleClickWindow is the longest gap between two clicks that still
	// produces a double click.
	DoubleClickWindow time.Duration

	down           bool
	dragging       bool
	button         MouseButton
	startX, startY float64
	lastX, lastY   float64
	sampled        bool
	lastClick      time.Time
	lastClickX     float64
	lastClickY     float64
}

// NewPointerTracker returns a tracker with the default dead zone and
// double-click window.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{
		DragDeadZone:      defaultDragDeadZone,
		DoubleClickWindow: defaultDoubleClickWindow,
	}
}

// Update runs the pointer state machine for one sample and dispatches the
// resulting events to l.
func (p *PointerTracker) Update(l *Listeners, x, y float64, pressed bool, button MouseButton, now time.Time) {
	emit := func(kind EventKind, b MouseButton) {
		l.Dispatch(MouseEvent{Kind: kind, X: x, Y: y, Button: b})
	}
	movedSinceLast := !p.sampled || x != p.lastX || y != p.lastY

	switch {
	case pressed && !p.down:
		p.down = true
		p.dragging = false
		p.button = button
		p.startX, p.startY = x, y
		emit(EventMouseDown, button)

	case !pressed && p.down:
		p.down = false
		emit(EventMouseUp, p.button)
		if !p.dragging {
			emit(EventClick, p.button)
			if !p.lastClick.IsZero() && now.Sub(p.lastClick) <= p.DoubleClickWindow &&
				math.Hypot(x-p.lastClickX, y-p.lastClickY) <= p.DragDeadZone {
				emit(EventDoubleClick, p.button)
				p.lastClick = time.Time{}
			} else {
				p.lastClick = now
				p.lastClickX, p.lastClickY = x, y
			}
		}
		p.dragging = false

	case pressed && p.down:
		if movedSinceLast {
			if !p.dragging && math.Hypot(x-p.startX, y-p.startY) > p.DragDeadZone {
				p.dragging = true
			}
			if p.dragging {
				emit(EventDrag, p.button)
			}
		}

	default:
		if movedSinceLast && p.sampled {
			emit(EventMouseMove, button)
		}
	}
	p.lastX, p.lastY = x, y
	p.sampled = true
}
