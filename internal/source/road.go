package source

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/path"
)

// roadLift keeps the road surface just above the ground.
const roadLift = 0.02

// Road is the strip laid along a path: its two edges and center line.
type Road struct {
	Left, Right, Center []math32.Vector3
}

// BuildRoad samples c at segments+1 evenly spaced points and offsets them by
// half the width along the path frame.
func BuildRoad(c *path.Curve, width float32, segments int) Road {
	segments = max(segments, 1)
	road := Road{
		Left:   make([]math32.Vector3, segments+1),
		Right:  make([]math32.Vector3, segments+1),
		Center: make([]math32.Vector3, segments+1),
	}
	half := width / 2
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		if c.Closed() && i == segments {
			u = 0
		}
		p, f := c.Sample(u)
		road.Left[i] = f.Offset(p, half, roadLift, 0)
		road.Right[i] = f.Offset(p, -half, roadLift, 0)
		road.Center[i] = f.Offset(p, 0, roadLift, 0)
	}
	return road
}
