// Package scenefile loads scene descriptions written in YAML and builds them
// into a sketch.Window.
//
// A scene file looks like:
//
//	width: 320
//	height: 200
//	background: white
//	objects:
//	  - type: rect
//	    name: box
//	    x: 10
//	    y: 10
//	    width: 60
//	    height: 40
//	    color: navy
//	    fill: "#ffcc00"
//	    filled: true
//	    transform:
//	      - rotate: 15
//	  - type: compound
//	    x: 200
//	    y: 100
//	    children:
//	      - {type: oval, x: -20, y: -20, width: 40, height: 40}
//
// Documents are validated against an embedded JSON schema (see Schema)
// before they are decoded.
package scenefile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scene is a decoded scene document.
type Scene struct {
	Title      string   `yaml:"title,omitempty"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	Scale      float64  `yaml:"scale,omitempty"`
	Background string   `yaml:"background,omitempty"`
	Objects    []Object `yaml:"objects,omitempty"`

	// Dir resolves relative image sources. Load sets it to the directory of
	// the scene file.
	Dir string `yaml:"-"`
}

// Object describes one scene element. Which fields apply depends on Type.
type Object struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`

	X  float64 `yaml:"x,omitempty"`
	Y  float64 `yaml:"y,omitempty"`
	X1 float64 `yaml:"x1,omitempty"`
	Y1 float64 `yaml:"y1,omitempty"`

	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	Start float64 `yaml:"start,omitempty"`
	Sweep float64 `yaml:"sweep,omitempty"`

	Points [][2]float64 `yaml:"points,omitempty"`

	Text   string `yaml:"text,omitempty"`
	Font   string `yaml:"font,omitempty"`
	Source string `yaml:"source,omitempty"`

	Color     string   `yaml:"color,omitempty"`
	Fill      string   `yaml:"fill,omitempty"`
	Filled    bool     `yaml:"filled,omitempty"`
	LineWidth *float64 `yaml:"lineWidth,omitempty"`
	Visible   *bool    `yaml:"visible,omitempty"`

	Transform []Op     `yaml:"transform,omitempty"`
	Children  []Object `yaml:"children,omitempty"`
}

// Op is a single transform step. Exactly one field is set.
type Op struct {
	Rotate    *float64    `yaml:"rotate,omitempty"`
	Scale     *[2]float64 `yaml:"scale,omitempty"`
	Shear     *[2]float64 `yaml:"shear,omitempty"`
	Translate *[2]float64 `yaml:"translate,omitempty"`
}

// Parse validates and decodes a YAML scene document.
func Parse(data []byte) (*Scene, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}
	if s.Scale == 0 {
		s.Scale = 1
	}
	return &s, nil
}

// Load reads, validates and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Marshal encodes the scene back to YAML.
func (s *Scene) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("scenefile: encode: %w", err)
	}
	return out, nil
}
