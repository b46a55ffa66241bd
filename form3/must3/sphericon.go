package must3

import (
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphericon returns a sphericon built from a regular polygon of the given
// number of vertices and circumscribed diameter. The polygon lies in the
// YZ plane with a vertex on +Z. Its half on +Y is revolved half a turn
// about Z and joined to a copy turned half a turn about Z and then
// rotation polygon steps about X.
func Sphericon(vertices, rotation int, diameter float64, segments int) pmesh.Mesh {
	switch {
	case vertices < 3:
		panic("vertices < 3")
	case rotation < 0:
		panic("rotation < 0")
	case diameter <= 0:
		panic("diameter <= 0")
	case segments < 2:
		panic("segments < 2")
	}
	r := diameter / 2
	poly := make([]r3.Vec, 0, 2*vertices)
	for i := 0; i < vertices; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(vertices))
		poly = append(poly, r3.Vec{Y: r * sin, Z: r * cos})
	}
	if vertices%2 == 1 {
		// The far side crosses the axis mid edge. Splitting every edge keeps
		// the seams of both halves on the same points after the turn about X.
		split := make([]r3.Vec, 0, 2*vertices)
		for i, p := range poly {
			split = append(split, p, d3.Mid(p, poly[(i+1)%vertices]))
		}
		poly = split
	}
	// Points run from +Z through +Y to -Z.
	half := poly[:len(poly)/2+1]
	var a pmesh.Mesh
	a.AddVertices(half...)
	a.AddRevolvedSurface(len(half), pmesh.RevolveOpts{Segments: segments, Degrees: 180})
	b := a.Clone()
	b.Rotate(math.Pi, pmesh.AxisZ)
	b.Rotate(2*math.Pi/float64(vertices)*float64(rotation), pmesh.AxisX)
	a.Append(b)
	a.Cleanup()
	return a
}
