package raster

import (
	"time"

	"github.com/phanxgames/sketch"
)

// injectStep is the simulated time between two injected samples.
const injectStep = 16 * time.Millisecond

// inject feeds one synthetic pointer sample through the surface's pointer
// tracker. Listeners run before inject returns.
func (s *Surface) inject(x, y float64, pressed bool) {
	s.clock = s.clock.Add(injectStep)
	s.tracker.Update(&s.listeners, x, y, pressed, sketch.MouseButtonLeft, s.clock)
}

// InjectPress simulates pressing the left button at (x, y) in surface
// coordinates.
func (s *Surface) InjectPress(x, y float64) {
	s.inject(x, y, true)
}

// InjectMove simulates moving the pointer to (x, y) with the button held
// down. Use this between InjectPress and InjectRelease to simulate a drag.
func (s *Surface) InjectMove(x, y float64) {
	s.inject(x, y, true)
}

// InjectHover simulates moving the pointer to (x, y) with no button held.
func (s *Surface) InjectHover(x, y float64) {
	s.inject(x, y, false)
}

// InjectRelease simulates releasing the button at (x, y).
func (s *Surface) InjectRelease(x, y float64) {
	s.inject(x, y, false)
}

// InjectClick is a press followed by a release at the same point.
func (s *Surface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDoubleClick is two clicks in quick succession.
func (s *Surface) InjectDoubleClick(x, y float64) {
	s.InjectClick(x, y)
	s.InjectClick(x, y)
}

// InjectDrag simulates a full drag: press at (fromX, fromY), steps-2
// linearly interpolated moves, a move to (toX, toY) and the release there.
// Minimum steps is 2.
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 2 {
		steps = 2
	}
	s.InjectPress(fromX, fromY)
	moves := steps - 2
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMove(toX, toY)
	s.InjectRelease(toX, toY)
}

// Wait advances the simulated clock, for example to separate two clicks
// beyond the double-click window.
func (s *Surface) Wait(d time.Duration) {
	s.clock = s.clock.Add(d)
}
