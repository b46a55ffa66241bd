package pmesh

import (
	"math"

	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ArcVertices returns segments+1 points of the arc that starts at start and
// sweeps angle radians about the line through center with direction axis.
// Every point lies at distance |start-center| from center.
func ArcVertices(start, center, axis r3.Vec, angle float64, segments int) []r3.Vec {
	if segments < 1 {
		segments = 1
	}
	rel := r3.Sub(start, center)
	axis = r3.Unit(axis)
	out := make([]r3.Vec, segments+1)
	for i := range out {
		a := angle * float64(i) / float64(segments)
		out[i] = r3.Add(center, r3.NewRotation(a, axis).Rotate(rel))
	}
	return out
}

// CircleVertices returns n points evenly spaced on the circle of the given
// radius around center in the plane normal to normal. For normal +Z the
// first point is at angle zero on +X and points advance counter-clockwise.
func CircleVertices(radius float64, n int, center, normal r3.Vec) []r3.Vec {
	out := make([]r3.Vec, n)
	t := d3.AlignZ(normal)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i] = r3.Add(center, t.Transform(r3.Vec{X: radius * c, Y: radius * s}))
	}
	return out
}

// CircleArcXY returns n points on an arc of the circle centered at center in
// the XY plane, starting at startAngle and sweeping angle radians. The arc
// end points are excluded so the points can be spliced between neighbouring
// curves sharing them.
func CircleArcXY(radius float64, n int, center r3.Vec, startAngle, angle float64) []r3.Vec {
	out := make([]r3.Vec, n)
	for i := range out {
		a := startAngle + angle*float64(i+1)/float64(n+1)
		s, c := math.Sincos(a)
		out[i] = r3.Add(center, r3.Vec{X: radius * c, Y: radius * s})
	}
	return out
}
