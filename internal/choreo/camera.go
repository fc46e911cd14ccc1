package choreo

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/shot"
	"github.com/ivlev/scrollrig/internal/tween"
)

// Reference camera placements for the object field.
var (
	CameraHome  = math32.Vec3(3, 16, 111)
	CameraFlyIn = math32.Vec3(20, 24, 130)
)

const (
	spiralRadius = 120
	spiralHeight = 24
	spiralSpeed  = 0.08
)

// cameraCue is the field camera. It always looks at the origin.
type cameraCue struct {
	pos   math32.Vector3
	orbit bool
}

func newCameraCue() cameraCue {
	return cameraCue{pos: CameraHome}
}

func (cc *cameraCue) cue(g *tween.Group, p Pattern) {
	cc.orbit = p == Spiral
	switch p {
	case Spiral:
		// positioned every frame by follow
	case FlyIn:
		cc.moveTo(g, CameraFlyIn, 6, tween.InOutSine)
	default:
		cc.moveTo(g, CameraHome, 1.2, tween.OutQuad)
	}
}

func (cc *cameraCue) moveTo(g *tween.Group, to math32.Vector3, duration float32, ease tween.Ease) {
	axes := []struct {
		v  *float32
		to float32
	}{
		{&cc.pos.X, to.X},
		{&cc.pos.Y, to.Y},
		{&cc.pos.Z, to.Z},
	}
	for _, a := range axes {
		g.Start(tween.Spec{Target: a.v, From: *a.v, To: a.to, Duration: duration, Ease: ease})
	}
}

func (cc *cameraCue) follow(clock float32) {
	if !cc.orbit {
		return
	}
	a := clock * spiralSpeed
	cc.pos = math32.Vec3(math32.Cos(a)*spiralRadius, spiralHeight, math32.Sin(a)*spiralRadius)
}

func (cc *cameraCue) pose() shot.Pose {
	return shot.Pose{Position: cc.pos, LookAt: math32.Vector3{}}
}

// CameraPose is where the field camera sits this frame.
func (c *Choreographer) CameraPose() shot.Pose {
	return c.cam.pose()
}
