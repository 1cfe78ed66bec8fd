package raster

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/sketch"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Name   string  `json:"name,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	Millis int     `json:"ms,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input, hit-test expectations and screenshots
// against a window painted by a Surface. It is the headless counterpart of
// clicking through a demo by hand.
//
//	{"steps": [
//	  {"action": "click", "x": 40, "y": 40},
//	  {"action": "expectHit", "x": 40, "y": 40, "name": "box"},
//	  {"action": "screenshot", "label": "after-click"}
//	]}
type Script struct {
	steps []scriptStep
}

// ErrExpectation is wrapped by Run when an expectHit step fails.
var ErrExpectation = errors.New("raster: expectation failed")

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "dblclick", "press", "move", "hover", "release", "drag", "wait", "screenshot", "expectHit", "repaint":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// Len returns the number of steps.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// Run executes every step in order. Screenshots are written by s; the paths
// written are returned.
func (sc *Script) Run(s *Surface, w *sketch.Window) ([]string, error) {
	var shots []string
	for i, st := range sc.steps {
		switch st.Action {
		case "click":
			s.InjectClick(st.X, st.Y)
		case "dblclick":
			s.InjectDoubleClick(st.X, st.Y)
		case "press":
			s.InjectPress(st.X, st.Y)
		case "move":
			s.InjectMove(st.X, st.Y)
		case "hover":
			s.InjectHover(st.X, st.Y)
		case "release":
			s.InjectRelease(st.X, st.Y)
		case "drag":
			s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Steps)
		case "wait":
			s.Wait(time.Duration(st.Millis) * time.Millisecond)
		case "repaint":
			w.Repaint()
		case "screenshot":
			path, err := s.Screenshot(st.Label)
			if err != nil {
				return shots, fmt.Errorf("step %d: %w", i, err)
			}
			shots = append(shots, path)
		case "expectHit":
			got := ""
			if hit := w.ElementAt(st.X, st.Y); hit != nil {
				got = hit.Name()
			}
			if got != st.Name {
				return shots, fmt.Errorf("step %d: hit at (%v, %v) = %q, want %q: %w",
					i, st.X, st.Y, got, st.Name, ErrExpectation)
			}
		}
	}
	return shots, nil
}
