package must3

import (
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

type hullFace struct {
	v    [3]int
	n    r3.Vec
	off  float64
	dead bool
}

func newHullFace(pts []r3.Vec, a, b, c int) hullFace {
	n := r3.Unit(r3.Cross(r3.Sub(pts[b], pts[a]), r3.Sub(pts[c], pts[a])))
	return hullFace{v: [3]int{a, b, c}, n: n, off: r3.Dot(n, pts[a])}
}

func (f *hullFace) dist(p r3.Vec) float64 { return r3.Dot(f.n, p) - f.off }

// ConvexHull returns the triangulated convex hull of pts. Points inside
// the hull or on its faces are left out. It panics when the points do
// not span a volume.
func ConvexHull(pts []r3.Vec) pmesh.Mesh {
	if len(pts) < 4 {
		panic("convex hull needs 4 or more points")
	}
	box := d3.BoxOf(pts)
	eps := 1e-10 * math.Max(1, r3.Norm(box.Size()))

	// Seed with a tetrahedron of extreme points.
	i0, i1 := 0, 0
	for i, p := range pts {
		if p.X < pts[i0].X {
			i0 = i
		}
		if p.X > pts[i1].X {
			i1 = i
		}
	}
	if i0 == i1 {
		i1 = farthest(pts, func(p r3.Vec) float64 { return r3.Norm(r3.Sub(p, pts[i0])) })
	}
	dir := r3.Unit(r3.Sub(pts[i1], pts[i0]))
	i2 := farthest(pts, func(p r3.Vec) float64 {
		v := r3.Sub(p, pts[i0])
		return r3.Norm(r3.Sub(v, r3.Scale(r3.Dot(v, dir), dir)))
	})
	base := newHullFace(pts, i0, i1, i2)
	i3 := farthest(pts, func(p r3.Vec) float64 { return math.Abs(base.dist(p)) })
	if math.Abs(base.dist(pts[i3])) <= eps {
		panic("convex hull points are coplanar")
	}
	if base.dist(pts[i3]) > 0 {
		i1, i2 = i2, i1
	}
	faces := []hullFace{
		newHullFace(pts, i0, i1, i2),
		newHullFace(pts, i0, i3, i1),
		newHullFace(pts, i1, i3, i2),
		newHullFace(pts, i2, i3, i0),
	}

	for p := range pts {
		if p == i0 || p == i1 || p == i2 || p == i3 {
			continue
		}
		edges := make(map[[2]int]bool)
		for fi := range faces {
			f := &faces[fi]
			if f.dead || f.dist(pts[p]) <= eps {
				continue
			}
			f.dead = true
			edges[[2]int{f.v[0], f.v[1]}] = true
			edges[[2]int{f.v[1], f.v[2]}] = true
			edges[[2]int{f.v[2], f.v[0]}] = true
		}
		for e := range edges {
			if !edges[[2]int{e[1], e[0]}] {
				faces = append(faces, newHullFace(pts, e[0], e[1], p))
			}
		}
	}

	var m pmesh.Mesh
	m.AddVertices(pts...)
	for _, f := range faces {
		if !f.dead {
			m.AddFace(f.v[:]...)
		}
	}
	// Drops the unused points.
	m.Weld(pmesh.WeldTolerance)
	return m
}

func farthest(pts []r3.Vec, metric func(r3.Vec) float64) int {
	best, bi := math.Inf(-1), 0
	for i, p := range pts {
		if d := metric(p); d > best {
			best, bi = d, i
		}
	}
	return bi
}

// Oloid returns the convex hull of two circles of the given radius, each
// passing through the center of the other at right angles. The first lies
// in the XY plane centered on the origin, the second in the XZ plane
// centered on (radius, 0, 0).
func Oloid(radius float64, segments int) pmesh.Mesh {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	pts := make([]r3.Vec, 0, 2*segments)
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(math.Pi + 2*math.Pi*float64(i)/float64(segments))
		pts = append(pts, r3.Vec{X: radius * cos, Y: radius * sin})
	}
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		pts = append(pts, r3.Vec{X: radius*cos + radius, Z: radius * sin})
	}
	m := ConvexHull(pts)
	m.RecalcNormals()
	return m
}
