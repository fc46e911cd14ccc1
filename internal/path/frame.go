package path

import "cogentcore.org/core/math32"

// Up is the fixed world-up reference used to build frames.
var Up = math32.Vec3(0, 1, 0)

// Frame is an orthonormal basis attached to a point on a curve.
// Binormal is the lateral axis, Normal the vertical one.
type Frame struct {
	Tangent  math32.Vector3
	Normal   math32.Vector3
	Binormal math32.Vector3
}

// FrameFromTangent builds a frame around dir using the world-up reference.
// When dir is parallel to Up the binormal falls back to +X.
func FrameFromTangent(dir math32.Vector3) Frame {
	tangent := math32.Vec3(0, 0, 1)
	if dir.LengthSquared() > 1e-12 {
		tangent = dir.Normal()
	}

	binormal := tangent.Cross(Up)
	if binormal.LengthSquared() < 1e-6 {
		binormal = math32.Vec3(1, 0, 0)
	}
	binormal = binormal.Normal()
	normal := binormal.Cross(tangent).Normal()

	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}

// Offset returns origin displaced along the frame axes: lateral along the
// binormal, vertical along the normal and forward along the tangent.
func (f Frame) Offset(origin math32.Vector3, lateral, vertical, forward float32) math32.Vector3 {
	return origin.
		Add(f.Binormal.MulScalar(lateral)).
		Add(f.Normal.MulScalar(vertical)).
		Add(f.Tangent.MulScalar(forward))
}
