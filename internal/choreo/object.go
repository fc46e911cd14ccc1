package choreo

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"
)

// Reveal offsets: objects start sunk below the floor and rise to rest.
const (
	Hidden float32 = -14
	Rest   float32 = 1
)

// Object is one member of the animated population. The host owns the slice;
// the choreographer only writes Offset.
type Object struct {
	Base         math32.Vector3
	GridI, GridJ int
	Variant      int // model variant the host draws
	Offset       float32
}

// Position is Base raised by the current offset.
func (o Object) Position() math32.Vector3 {
	return math32.Vec3(o.Base.X, o.Base.Y+o.Offset, o.Base.Z)
}

// GridOrigin is where the host places a size×size grid so that it sits in
// front of the reference camera.
func GridOrigin(size int) math32.Vector3 {
	s := float32(size)
	return math32.Vec3(-s-10, 1, -s-10)
}

// NewGrid lays out size×size objects at the given spacing, each with a
// variant drawn from rng. A nil rng leaves every variant at 0.
func NewGrid(size int, spacing float32, variants int, rng *rand.Rand) []Object {
	objects := make([]Object, 0, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			o := Object{
				Base:   math32.Vec3(float32(i)*spacing, 0, float32(j)*spacing),
				GridI:  i,
				GridJ:  j,
				Offset: Hidden,
			}
			if rng != nil && variants > 1 {
				o.Variant = rng.IntN(variants)
			}
			objects = append(objects, o)
		}
	}
	return objects
}
