package must2

import (
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Hexagon returns a regular hexagon of circumradius radius with a vertex on
// +Y, counter-clockwise. With bevelSegments > 0 every corner is rounded as
// in HexagonBeveled with a bevel radius of radius/20.
func Hexagon(radius float64, bevelSegments int) d2.Set {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if bevelSegments <= 0 {
		v := Nagon(6, radius)
		for i := range v {
			v[i] = d2.Rotate(v[i], math.Pi/2)
		}
		return v
	}
	corner := HexagonBeveled(radius, radius/20, bevelSegments)
	out := make(d2.Set, 0, 6*len(corner))
	for i := 0; i < 6; i++ {
		for _, v := range corner {
			out = append(out, d2.Rotate(v, float64(i)*math.Pi/3))
		}
	}
	return out
}

// HexagonBeveled returns the rounded corner of a hexagon of circumradius
// radius at its +Y vertex. The arc of segments facets is tangent to both
// edges and touches them bevelRadius away from the sharp vertex. The points
// run counter-clockwise.
func HexagonBeveled(radius, bevelRadius float64, segments int) d2.Set {
	if bevelRadius <= 0 {
		panic("bevel radius <= 0")
	}
	if segments < 1 {
		panic("segments < 1")
	}
	p := NewPolygon()
	// The neighbours only steer the tangents of the smoothed +Y vertex.
	p.Add(radius*math.Cos(math.Pi/6), radius*math.Sin(math.Pi/6))
	// The fillet touches each edge bevelRadius away from a 120 degree corner.
	p.Add(0, radius).Smooth(bevelRadius*math.Tan(math.Pi/3), segments)
	p.Add(-radius*math.Cos(math.Pi/6), radius*math.Sin(math.Pi/6))
	p.Close()
	v := p.Vertices()
	return v[1 : len(v)-1]
}

// Cross returns the outline of a plus sign centered on the origin. The
// horizontal bar is hLength by hThickness and the vertical bar vLength by
// vThickness. A bar of zero thickness is left out.
func Cross(hLength, hThickness, vLength, vThickness float64) d2.Set {
	if hThickness < 0 || vThickness < 0 {
		panic("thickness < 0")
	}
	if hThickness == 0 && vThickness == 0 {
		panic("both bars have zero thickness")
	}
	ht, vt := hThickness/2, vThickness/2
	hl, vl := hLength/2, vLength/2
	p := NewPolygon()
	if vThickness > 0 {
		p.Add(-vt, vl)
	}
	p.Add(-vt, ht)
	if hThickness > 0 {
		p.Add(-hl, ht)
		p.Add(-hl, -ht)
	}
	p.Add(-vt, -ht)
	if vThickness > 0 {
		p.Add(-vt, -vl)
		p.Add(vt, -vl)
	}
	p.Add(vt, -ht)
	if hThickness > 0 {
		p.Add(hl, -ht)
		p.Add(hl, ht)
	}
	p.Add(vt, ht)
	if vThickness > 0 {
		p.Add(vt, vl)
	}
	p.Close()
	// Zero thickness bars leave doubled points behind.
	return dedupe(p.Vertices(), tolerance)
}

// Phillips returns the cross section of a Phillips recess of the given
// diameter. Its wings are 0.16 diameters wide.
func Phillips(diameter float64) d2.Set {
	if diameter <= 0 {
		panic("diameter <= 0")
	}
	w := diameter * 0.16
	return Cross(diameter, w, diameter, w)
}

// Scale returns pts scaled about the origin.
func Scale(pts d2.Set, k float64) d2.Set {
	out := make(d2.Set, len(pts))
	for i, v := range pts {
		out[i] = r2.Scale(k, v)
	}
	return out
}
