// Package source supplies the authored inputs a scene is built from: path
// control points and the road geometry laid along them.
package source

import (
	"fmt"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/path"
)

// Source supplies the control points of a camera path.
type Source interface {
	Points() ([]math32.Vector3, error)
	Closed() bool
}

// DefaultAnchors is the reference road: a gentle S-bend about 22 units long.
func DefaultAnchors() []math32.Vector3 {
	return []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(0.25, 0.02, 5),
		math32.Vec3(0.35, -0.01, 10),
		math32.Vec3(0.25, 0.02, 14.5),
		math32.Vec3(0.1, 0, 19),
		math32.Vec3(0.05, -0.01, 22),
	}
}

// RoadSource perturbs a set of anchors so every run drives a slightly
// different road. The first anchor stays fixed.
type RoadSource struct {
	Anchors []math32.Vector3
	Spread  math32.Vector3 // full width of the perturbation per axis
	closed  bool
	rng     *rand.Rand
}

// NewRoadSource returns the reference road with a seeded perturbation.
func NewRoadSource(seed uint64) *RoadSource {
	return &RoadSource{
		Anchors: DefaultAnchors(),
		Spread:  math32.Vec3(0.15, 0.1, 0.3),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *RoadSource) Points() ([]math32.Vector3, error) {
	if len(s.Anchors) < 2 {
		return nil, fmt.Errorf("road source: %d anchors: %w", len(s.Anchors), path.ErrTooFewPoints)
	}
	points := make([]math32.Vector3, len(s.Anchors))
	for i, p := range s.Anchors {
		if i == 0 {
			points[i] = p
			continue
		}
		points[i] = p.Add(math32.Vec3(
			(s.rng.Float32()-0.5)*s.Spread.X,
			(s.rng.Float32()-0.5)*s.Spread.Y,
			(s.rng.Float32()-0.5)*s.Spread.Z,
		))
	}
	return points, nil
}

func (s *RoadSource) Closed() bool { return s.closed }

// StaticSource returns fixed points, as loaded from a scene file.
type StaticSource struct {
	points []math32.Vector3
	closed bool
}

// NewStaticSource wraps points.
func NewStaticSource(points []math32.Vector3, closed bool) *StaticSource {
	return &StaticSource{points: append([]math32.Vector3(nil), points...), closed: closed}
}

func (s *StaticSource) Points() ([]math32.Vector3, error) {
	return append([]math32.Vector3(nil), s.points...), nil
}

func (s *StaticSource) Closed() bool { return s.closed }

// Curve builds the path for src.
func Curve(src Source, tension float32) (*path.Curve, error) {
	points, err := src.Points()
	if err != nil {
		return nil, err
	}
	return path.New(points, src.Closed(), tension)
}
