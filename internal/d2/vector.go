package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Area returns the signed area of the closed polygon a.
// Counter-clockwise polygons have positive area.
func (a Set) Area() float64 {
	var sum float64
	for i := range a {
		p, q := a[i], a[(i+1)%len(a)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// PolarToXY converts polar to cartesian coordinates.
func PolarToXY(r, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: r * c, Y: r * s}
}

// Rotate rotates v counter-clockwise by angle radians about the origin.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// Intersect returns the intersection of the segments p0-p1 and q0-q1.
// ok is false for parallel segments or when the crossing lies outside
// either segment.
func Intersect(p0, p1, q0, q1 r2.Vec) (v r2.Vec, ok bool) {
	r := r2.Sub(p1, p0)
	s := r2.Sub(q1, q0)
	den := r2.Cross(r, s)
	if den == 0 {
		return r2.Vec{}, false
	}
	qp := r2.Sub(q0, p0)
	t := r2.Cross(qp, s) / den
	u := r2.Cross(qp, r) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return r2.Vec{}, false
	}
	return r2.Add(p0, r2.Scale(t, r)), true
}

// Mirror reflects v across the line through the origin with normal n.
func Mirror(v, n r2.Vec) r2.Vec {
	n = r2.Unit(n)
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}
