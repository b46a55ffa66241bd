package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rotation about the origin applied to mesh vertices.
// The zero value of Transform is the identity.
type Transform struct {
	m *r3.Mat
}

// Transform applies the rotation to v.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	if t.m == nil {
		return v
	}
	return t.m.MulVec(v)
}

// Inv returns the inverse rotation, which is the transpose.
func (t Transform) Inv() Transform {
	if t.m == nil {
		return t
	}
	m := r3.NewMat(nil)
	m.CloneFrom(t.m.T())
	return Transform{m: m}
}

// Det returns the determinant, 1 for a proper rotation.
func (t Transform) Det() float64 {
	if t.m == nil {
		return 1
	}
	return t.m.Det()
}

// Rotation returns the Transform rotating points by angle radians
// about the axis through the origin. Rotation follows the right hand rule.
func Rotation(axis r3.Vec, angle float64) Transform {
	return Transform{m: r3.NewRotation(angle, r3.Unit(axis)).Mat()}
}

// AlignZ returns the rotation that takes the +Z direction onto dir.
func AlignZ(dir r3.Vec) Transform {
	return RotateToVec(r3.Vec{Z: 1}, dir)
}

// RotateToVec returns the rotation Transform that takes the direction
// of a onto the direction of b.
func RotateToVec(a, b r3.Vec) Transform {
	const epsilon = 1e-12
	if EqualWithin(a, r3.Vec{}, epsilon) || EqualWithin(b, r3.Vec{}, epsilon) {
		return Transform{}
	}
	a = r3.Unit(a)
	b = r3.Unit(b)
	if EqualWithin(a, b, epsilon) {
		return Transform{}
	}
	if EqualWithin(r3.Scale(-1, a), b, epsilon) {
		// Half turn about any axis perpendicular to a.
		perp := r3.Cross(a, r3.Vec{X: 1})
		if r3.Norm2(perp) < 1e-6 {
			perp = r3.Cross(a, r3.Vec{Y: 1})
		}
		return Rotation(perp, math.Pi)
	}
	// See: https://math.stackexchange.com/questions/180418/calculate-rotation-matrix-to-align-vector-a-to-vector-b-in-3d
	v := r3.Cross(a, b)
	vx := r3.Skew(v)
	k := 1 / (1 + r3.Dot(a, b))
	vx2 := r3.NewMat(nil)
	vx2.Mul(vx, vx)
	vx2.Scale(k, vx2)
	vx.Add(vx, r3.Eye())
	vx.Add(vx, vx2)
	return Transform{m: vx}
}
