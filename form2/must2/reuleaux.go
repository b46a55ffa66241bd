package must2

import (
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// ReuleauxPolygon returns the outline of a Reuleaux polygon built on the
// regular polygon of the given circumradius. Each side becomes an arc of
// segments facets centered on the opposite vertex, or on the midpoint of the
// opposite side when sides is even. The outline has sides*segments points,
// runs counter-clockwise and has a vertex on +Y.
func ReuleauxPolygon(sides int, radius float64, segments int) d2.Set {
	if sides < 3 {
		panic("sides < 3")
	}
	if radius <= 0 {
		panic("radius <= 0")
	}
	if segments < 1 {
		panic("segments < 1")
	}
	poly := Nagon(sides, radius)
	half := sides / 2
	out := make(d2.Set, 0, sides*segments)
	for i := 0; i < sides; i++ {
		center := poly[i]
		if sides%2 == 0 {
			center = r2.Scale(0.5, r2.Add(poly[i], poly[(i+1)%sides]))
		}
		start := poly[(i+half)%sides]
		end := poly[(i+half+1)%sides]
		arc := SweepArc(center, start, end, segments)
		// The last point starts the next arc.
		out = append(out, arc[:segments]...)
	}
	for i := range out {
		out[i] = d2.Rotate(out[i], math.Pi/2)
	}
	return out
}
