package pmesh

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis is one of the three cardinal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec returns the unit vector along the axis.
func (a Axis) Vec() r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisZ:
		return r3.Vec{Z: 1}
	}
	panic("invalid axis")
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "invalid"
}

// component returns the coordinate of v along the axis.
func (a Axis) component(v r3.Vec) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

// RotatedVector returns v rotated by angle radians about a cardinal
// axis through the origin. Positive angles follow the right hand rule.
func RotatedVector(v r3.Vec, angle float64, axis Axis) r3.Vec {
	s, c := math.Sincos(angle)
	switch axis {
	case AxisX:
		return r3.Vec{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
	case AxisY:
		return r3.Vec{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
	case AxisZ:
		return r3.Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
	}
	panic("invalid axis")
}

const (
	// parallelTol is the squared cross product length under which
	// two segment directions are considered parallel.
	parallelTol = 1e-18
	// segmentTol widens the [0,1] parameter range accepted as on-segment.
	segmentTol = 1e-9
)

// ErrNoIntersection is returned by constructions whose helper lines fail
// to meet where the geometry requires them to.
var ErrNoIntersection = errors.New("construction lines do not intersect")

// FindIntersection intersects the segments p1-p2 and q1-q2.
// It returns the intersection point and its parameter t along p1-p2,
// so that point = p1 + t*(p2-p1). ok is false when the segments are
// parallel, skew, or meet outside either segment.
func FindIntersection(p1, p2, q1, q2 r3.Vec) (point r3.Vec, t float64, ok bool) {
	r := r3.Sub(p2, p1)
	s := r3.Sub(q2, q1)
	rxs := r3.Cross(r, s)
	den := r3.Norm2(rxs)
	if den < parallelTol {
		return r3.Vec{}, 0, false
	}
	qp := r3.Sub(q1, p1)
	// Lines that are not coplanar never meet.
	if skew := math.Abs(r3.Dot(qp, rxs)) / math.Sqrt(den); skew > 1e-6*(1+r3.Norm(r)+r3.Norm(s)) {
		return r3.Vec{}, 0, false
	}
	t = r3.Dot(r3.Cross(qp, s), rxs) / den
	u := r3.Dot(r3.Cross(qp, r), rxs) / den
	if t < -segmentTol || t > 1+segmentTol || u < -segmentTol || u > 1+segmentTol {
		return r3.Vec{}, 0, false
	}
	return r3.Add(p1, r3.Scale(t, r)), t, true
}

// LineIntersection intersects the infinite lines through p1-p2 and q1-q2.
// ok is false for parallel or skew lines.
func LineIntersection(p1, p2, q1, q2 r3.Vec) (point r3.Vec, ok bool) {
	r := r3.Sub(p2, p1)
	s := r3.Sub(q2, q1)
	rxs := r3.Cross(r, s)
	den := r3.Norm2(rxs)
	if den < parallelTol {
		return r3.Vec{}, false
	}
	qp := r3.Sub(q1, p1)
	if skew := math.Abs(r3.Dot(qp, rxs)) / math.Sqrt(den); skew > 1e-6*(1+r3.Norm(r)+r3.Norm(s)) {
		return r3.Vec{}, false
	}
	t := r3.Dot(r3.Cross(qp, s), rxs) / den
	return r3.Add(p1, r3.Scale(t, r)), true
}

// MirrorPoint reflects p across the plane through the origin with normal n.
// n need not be unit length.
func MirrorPoint(p, n r3.Vec) r3.Vec {
	n = r3.Unit(n)
	return r3.Sub(p, r3.Scale(2*r3.Dot(p, n), n))
}

// ProjectToPlane returns the orthogonal projection of p onto the plane
// through origin with normal n.
func ProjectToPlane(p, origin, n r3.Vec) r3.Vec {
	n = r3.Unit(n)
	return r3.Sub(p, r3.Scale(r3.Dot(r3.Sub(p, origin), n), n))
}
