package sketch

import (
	"log/slog"
	"time"
)

// globalDebug enables tree sanity checks and per-repaint statistics.
var globalDebug bool

// SetDebugMode enables or disables debug checks. When enabled, deep trees and
// crowded compounds are reported as warnings and every repaint logs its
// timing at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return globalDebug
}

// repaintStats holds per-repaint timing and draw-list metrics.
type repaintStats struct {
	traverseTime time.Duration
	paintTime    time.Duration
	commandCount int
	kinds        [KindImage + 1]int
}

func (s *repaintStats) count(commands []DrawCommand) {
	s.commandCount = len(commands)
	for i := range commands {
		if k := commands[i].Kind; int(k) < len(s.kinds) {
			s.kinds[k]++
		}
	}
}

func (s *repaintStats) log() {
	Logger().Debug("repaint",
		slog.Duration("traverse", s.traverseTime),
		slog.Duration("paint", s.paintTime),
		slog.Int("commands", s.commandCount),
		slog.Int("lines", s.kinds[KindLine]),
		slog.Int("rects", s.kinds[KindRect]+s.kinds[KindOval]),
		slog.Int("polygons", s.kinds[KindPolygon]+s.kinds[KindArc]),
		slog.Int("labels", s.kinds[KindLabel]),
		slog.Int("images", s.kinds[KindImage]),
	)
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns when o sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(o *object) {
	depth := 0
	for p := o; p != nil; {
		depth++
		if p.parent == nil {
			break
		}
		p = &p.parent.object
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth), slog.String("name", o.name))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns when c holds more than debugMaxChildCount
// children.
func debugCheckChildCount(c *Compound) {
	if len(c.children) > debugMaxChildCount {
		Logger().Warn("compound child count exceeds threshold",
			slog.Int("children", len(c.children)), slog.Int("threshold", debugMaxChildCount), slog.String("name", c.name))
	}
}
