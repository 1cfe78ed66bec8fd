package sketch

import (
	"testing"
	"time"
)

func TestEventKindNames(t *testing.T) {
	for k := EventClick; k < eventKindCount; k++ {
		back, ok := ParseEventKind(k.String())
		if !ok || back != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), back, ok)
		}
	}
	if _, ok := ParseEventKind("keydown"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestListenersDispatchAndRemove(t *testing.T) {
	var l Listeners
	var got []string
	h1 := l.Add(EventClick, func(MouseEvent) { got = append(got, "first") })
	l.Add(EventClick, func(MouseEvent) { got = append(got, "second") })
	l.Add(EventMouseMove, func(MouseEvent) { got = append(got, "move") })

	l.Dispatch(MouseEvent{Kind: EventClick})
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("got %v, want registration order", got)
	}

	h1.Remove()
	h1.Remove()
	got = nil
	l.Dispatch(MouseEvent{Kind: EventClick})
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("after Remove got %v", got)
	}
	if l.Len(EventClick) != 1 || l.Len(EventMouseMove) != 1 {
		t.Errorf("Len = %d, %d", l.Len(EventClick), l.Len(EventMouseMove))
	}

	l.Clear()
	got = nil
	l.Dispatch(MouseEvent{Kind: EventMouseMove})
	if len(got) != 0 {
		t.Error("Clear should remove every listener")
	}
	ListenerHandle{}.Remove()
}

func TestListenerRemovesItselfDuringDispatch(t *testing.T) {
	var l Listeners
	var calls int
	var h ListenerHandle
	h = l.Add(EventDrag, func(MouseEvent) {
		calls++
		h.Remove()
	})
	l.Add(EventDrag, func(MouseEvent) { calls++ })
	l.Dispatch(MouseEvent{Kind: EventDrag})
	l.Dispatch(MouseEvent{Kind: EventDrag})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

type eventLog struct {
	Listeners
	kinds []EventKind
}

func newEventLog() *eventLog {
	e := &eventLog{}
	for k := EventClick; k < eventKindCount; k++ {
		e.Add(k, func(ev MouseEvent) { e.kinds = append(e.kinds, ev.Kind) })
	}
	return e
}

func (e *eventLog) take() []EventKind {
	k := e.kinds
	e.kinds = nil
	return k
}

func kindsEqual(a, b []EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPointerTrackerClick(t *testing.T) {
	log := newEventLog()
	p := NewPointerTracker()
	now := time.Unix(0, 0)

	p.Update(&log.Listeners, 10, 10, false, MouseButtonLeft, now)
	p.Update(&log.Listeners, 10, 10, true, MouseButtonLeft, now)
	p.Update(&log.Listeners, 11, 10, true, MouseButtonLeft, now)
	p.Update(&log.Listeners, 11, 10, false, MouseButtonLeft, now)

	want := []EventKind{EventMouseDown, EventMouseUp, EventClick}
	if got := log.take(); !kindsEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestPointerTrackerDrag(t *testing.T) {
	log := newEventLog()
	p := NewPointerTracker()
	now := time.Unix(0, 0)

	p.Update(&log.Listeners, 0, 0, true, MouseButtonLeft, now)
	p.Update(&log.Listeners, 20, 0, true, MouseButtonLeft, now)
	p.Update(&log.Listeners, 20, 0, true, MouseButtonLeft, now) // no movement
	p.Update(&log.Listeners, 30, 0, true, MouseButtonLeft, now)
	p.Update(&log.Listeners, 30, 0, false, MouseButtonLeft, now)

	want := []EventKind{EventMouseDown, EventDrag, EventDrag, EventMouseUp}
	if got := log.take(); !kindsEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestPointerTrackerDoubleClick(t *testing.T) {
	log := newEventLog()
	p := NewPointerTracker()
	t0 := time.Unix(0, 0)

	click := func(at time.Time) {
		p.Update(&log.Listeners, 5, 5, true, MouseButtonLeft, at)
		p.Update(&log.Listeners, 5, 5, false, MouseButtonLeft, at)
	}
	click(t0)
	click(t0.Add(100 * time.Millisecond))
	want := []EventKind{
		EventMouseDown, EventMouseUp, EventClick,
		EventMouseDown, EventMouseUp, EventClick, EventDoubleClick,
	}
	if got := log.take(); !kindsEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	click(t0.Add(2 * time.Second))
	click(t0.Add(3 * time.Second))
	for _, k := range log.take() {
		if k == EventDoubleClick {
			t.Error("slow clicks should not double-click")
		}
	}
}

func TestPointerTrackerHoverMove(t *testing.T) {
	log := newEventLog()
	p := NewPointerTracker()
	now := time.Unix(0, 0)
	p.Update(&log.Listeners, 0, 0, false, MouseButtonLeft, now)
	p.Update(&log.Listeners, 0, 0, false, MouseButtonLeft, now)
	p.Update(&log.Listeners, 3, 4, false, MouseButtonLeft, now)
	want := []EventKind{EventMouseMove}
	if got := log.take(); !kindsEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
