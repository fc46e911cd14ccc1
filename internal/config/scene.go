package config

import (
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/scrollrig/internal/orbit"
)

// Scene is the YAML scene file. Empty fields leave the Config untouched.
type Scene struct {
	Points  []math32.Vector3 `yaml:"points"`
	Closed  bool             `yaml:"closed"`
	Tension float32          `yaml:"tension,omitempty"`

	Shot    string `yaml:"shot,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Reveal  string `yaml:"reveal,omitempty"`

	Focus  []orbit.Target  `yaml:"focus,omitempty"`
	Custom *math32.Vector3 `yaml:"custom,omitempty"`

	Grid Grid `yaml:"grid,omitempty"`
}

type Grid struct {
	Size     int     `yaml:"size,omitempty"`
	Spacing  float32 `yaml:"spacing,omitempty"`
	Variants int     `yaml:"variants,omitempty"`
}

// DefaultTargets frames the four faces of the showcase model.
func DefaultTargets() []orbit.Target {
	return []orbit.Target{
		{Point: math32.Vec3(0, 2, 0), AngleDeg: 0},
		{Point: math32.Vec3(5.5, 1, 0), AngleDeg: 90},
		{Point: math32.Vec3(0, 4, -5.5), AngleDeg: 180},
		{Point: math32.Vec3(-5.5, 1, 0), AngleDeg: 270},
	}
}

// Apply copies every field the scene sets into cfg.
func (s *Scene) Apply(cfg *Config) {
	if s.Tension > 0 {
		cfg.Tension = s.Tension
	}
	if s.Shot != "" {
		cfg.Shot = s.Shot
	}
	if s.Pattern != "" {
		cfg.Pattern = s.Pattern
	}
	if s.Reveal != "" {
		cfg.RevealStyle = s.Reveal
	}
	if s.Grid.Size > 0 {
		cfg.GridSize = s.Grid.Size
	}
	if s.Grid.Spacing > 0 {
		cfg.GridSpacing = s.Grid.Spacing
	}
	if s.Grid.Variants > 0 {
		cfg.Variants = s.Grid.Variants
	}
}

// Targets returns the scene's focus targets, or DefaultTargets when it names
// none.
func (s *Scene) Targets() []orbit.Target {
	if len(s.Focus) == 0 {
		return DefaultTargets()
	}
	return s.Focus
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if len(scene.Points) > 0 && len(scene.Points) < 2 {
		return nil, fmt.Errorf("%w: scene %s has %d control points, need at least 2", ErrInvalidConfig, path, len(scene.Points))
	}
	return &scene, nil
}

func WriteScene(scene *Scene, path string) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
