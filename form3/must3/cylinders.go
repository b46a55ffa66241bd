package must3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Donut returns a tube of the given outer and hole radius. A hole radius
// of zero gives a solid cylinder. When amount is below a full turn only a
// pie of that angle is kept, starting at +Y turned by rotation and running
// counter-clockwise, with flat caps at both ends. origin is OriginTop,
// OriginMiddle or OriginBottom.
func Donut(radius, holeRadius, height float64, segments int, amount, rotation float64, origin Origin) pmesh.Mesh {
	switch {
	case radius <= 0 || height <= 0:
		panic("donut size <= 0")
	case holeRadius < 0:
		panic("hole radius < 0")
	case holeRadius >= radius:
		panic("hole radius must be smaller than radius")
	case segments < 3:
		panic("segments < 3")
	case amount <= 0 || amount > 2*math.Pi+1e-9:
		panic("amount must lie in (0, 2pi]")
	}
	var z0 float64
	switch origin {
	case OriginTop:
		z0 = -height
	case OriginMiddle:
		z0 = -height / 2
	case OriginBottom:
	default:
		panic(fmt.Sprintf("bad donut origin %q", origin))
	}
	full := amount >= 2*math.Pi-1e-9
	steps := segments
	if !full {
		steps = max(1, int(math.Round(float64(segments)*amount/(2*math.Pi))))
	}
	sin, cos := math.Sincos(math.Pi/2 + rotation)
	at := func(r, z float64) r3.Vec { return r3.Vec{X: r * cos, Y: r * sin, Z: z} }
	var m pmesh.Mesh
	m.AddVertices(
		at(holeRadius, z0),
		at(radius, z0),
		at(radius, z0+height),
		at(holeRadius, z0+height),
	)
	m.AddRevolvedSurface(4, pmesh.RevolveOpts{
		Segments: steps,
		Close:    true,
		Degrees:  amount * 180 / math.Pi,
		CCW:      true,
	})
	if !full {
		n := m.Len()
		m.AddFace(3, 2, 1, 0)
		m.AddFace(n-4, n-3, n-2, n-1)
	}
	m.Cleanup()
	return m
}
