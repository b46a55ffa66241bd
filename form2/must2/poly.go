package must2

import (
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// PolygonBuilder collects outline vertices, some of which may be rounded
// off when the outline is read back with Vertices.
type PolygonBuilder struct {
	closed bool
	verts  []polygonVertex
}

type polygonVertex struct {
	pos    r2.Vec
	radius float64 // fillet radius, 0 keeps the corner sharp
	facets int
}

// NewPolygon returns an empty polygon.
func NewPolygon() *PolygonBuilder { return &PolygonBuilder{} }

// Add appends the vertex (x, y).
func (p *PolygonBuilder) Add(x, y float64) *polygonVertex {
	p.verts = append(p.verts, polygonVertex{pos: r2.Vec{X: x, Y: y}})
	return &p.verts[len(p.verts)-1]
}

// Smooth replaces the vertex with facets+1 points on the arc of the given
// radius tangent to both adjoining edges.
func (v *polygonVertex) Smooth(radius float64, facets int) *polygonVertex {
	if radius > 0 && facets > 0 {
		v.radius, v.facets = radius, facets
	}
	return v
}

// Close joins the last vertex to the first, so the first and last
// vertices may be smoothed too.
func (p *PolygonBuilder) Close() { p.closed = true }

// Vertices returns the outline with every smoothed corner expanded.
// A fillet that does not fit between its neighbours is left sharp.
func (p *PolygonBuilder) Vertices() d2.Set {
	if len(p.verts) == 0 {
		panic("empty polygon")
	}
	n := len(p.verts)
	out := make(d2.Set, 0, n)
	for i, v := range p.verts {
		if v.radius == 0 || (!p.closed && (i == 0 || i == n-1)) {
			out = append(out, v.pos)
			continue
		}
		prev := p.verts[(i+n-1)%n].pos
		next := p.verts[(i+1)%n].pos
		out = append(out, fillet(prev, v.pos, next, v.radius, v.facets)...)
	}
	return out
}

// fillet returns the facets+1 points of the arc rounding corner b of the
// path a, b, c.
func fillet(a, b, c r2.Vec, radius float64, facets int) []r2.Vec {
	u0 := r2.Unit(r2.Sub(a, b))
	u1 := r2.Unit(r2.Sub(c, b))
	theta := math.Acos(clamp1(r2.Dot(u0, u1)))
	// tangent points lie this far from the corner
	t := radius / math.Tan(theta/2)
	if t > r2.Norm(r2.Sub(a, b)) || t > r2.Norm(r2.Sub(c, b)) {
		return []r2.Vec{b}
	}
	center := r2.Add(b, r2.Scale(radius/math.Sin(theta/2), r2.Unit(r2.Add(u0, u1))))
	step := sign(r2.Cross(u1, u0)) * (math.Pi - theta) / float64(facets)
	rv := r2.Sub(r2.Add(b, r2.Scale(t, u0)), center)
	pts := make([]r2.Vec, facets+1)
	for i := range pts {
		pts[i] = r2.Add(center, rv)
		rv = d2.Rotate(rv, step)
	}
	return pts
}

// Nagon return the vertices of a N sided regular polygon, the first
// one on +X.
func Nagon(n int, radius float64) d2.Set {
	if n < 3 {
		panic("n < 3")
	}
	step := 2 * math.Pi / float64(n)
	v := make(d2.Set, n)
	p := r2.Vec{X: radius}
	for i := range v {
		v[i] = p
		p = d2.Rotate(p, step)
	}
	return v
}

func sign(f float64) float64 {
	if f == 0 {
		return 0
	}
	return math.Copysign(1, f)
}

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
