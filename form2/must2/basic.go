// Package must2 generates 2d outlines and panics on invalid parameters.
// Use the form2 package for the error returning versions.
package must2

import (
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

// SweepArc returns segments+1 points from start, rotating counter-clockwise
// about center by the positive angle that reaches the direction of end.
// The radius is the distance from center to start.
func SweepArc(center, start, end r2.Vec, segments int) d2.Set {
	if segments < 1 {
		panic("segments < 1")
	}
	radius := r2.Norm(r2.Sub(start, center))
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	diff := a1 - a0
	if diff <= 0 {
		diff += 2 * math.Pi
	}
	v := make(d2.Set, segments+1)
	for i := range v {
		v[i] = r2.Add(center, d2.PolarToXY(radius, a0+diff*float64(i)/float64(segments)))
	}
	return v
}

// Arc returns n points strictly inside the arc of the given radius about
// center that starts at startAngle and sweeps angle radians.
func Arc(radius float64, n int, center r2.Vec, startAngle, angle float64) d2.Set {
	if radius < 0 {
		panic("radius < 0")
	}
	if n < 0 {
		panic("n < 0")
	}
	v := make(d2.Set, n)
	for i := range v {
		a := startAngle + angle*float64(i+1)/float64(n+1)
		v[i] = r2.Add(center, d2.PolarToXY(radius, a))
	}
	return v
}

// dedupe drops points closer than tol to their predecessor, including
// the last point when it closes onto the first.
func dedupe(v d2.Set, tol float64) d2.Set {
	out := make(d2.Set, 0, len(v))
	for _, p := range v {
		if len(out) > 0 && d2.EqualWithin(out[len(out)-1], p, tol) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && d2.EqualWithin(out[0], out[len(out)-1], tol) {
		out = out[:len(out)-1]
	}
	return out
}
