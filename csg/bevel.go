package csg

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ sdf.SDF3 = (*bevelSDF)(nil)

// mitreCos is the cosine of the largest turn between two weighted edges
// whose cuts are joined on their bisecting plane.
var mitreCos = math.Cos(math.Pi / 4)

// bevelSDF is the union of the material removed along weighted edges.
// Subtracting it from the base solid gives the bevelled solid.
type bevelSDF struct {
	cuts []edgeCut
	bb   sdf.Box3
}

// edgeCut is the sliver between one convex edge and its chamfer or round.
// Cross section vectors are relative to the edge line.
type edgeCut struct {
	a, b   r3.Vec
	u      r3.Vec
	start  r3.Vec // normal of the plane bounding the cut at a, along u
	end    r3.Vec // same at b
	t1, t2 r3.Vec // directions from the edge into each face
	m      r3.Vec // unit bisector of the face normals, pointing out
	width  float64
	radius float64 // zero for a chamfer
	center r3.Vec  // round center offset from the edge line
	box    r3.Box
}

// newBevelSDF returns the cuts for the weighted edges of m, the base mesh
// of a part. Flat, concave and non-manifold edges are skipped and
// counted. cut is nil when no edge is cut.
func newBevelSDF(m pmesh.Mesh, b pmesh.Bevel) (cut *bevelSDF, skipped int) {
	ef := m.EdgeFaces()
	dirs := make(map[int][]r3.Vec)
	type weighted struct {
		e pmesh.Edge
		w float64
	}
	var edges []weighted
	for e, w := range b.Weights {
		if w <= 0 || e.A >= len(m.Vertices) || e.B >= len(m.Vertices) {
			continue
		}
		w = math.Min(w, 1)
		edges = append(edges, weighted{e, w})
		d := r3.Unit(r3.Sub(m.Vertices[e.B], m.Vertices[e.A]))
		dirs[e.A] = append(dirs[e.A], d)
		dirs[e.B] = append(dirs[e.B], r3.Scale(-1, d))
	}
	cut = &bevelSDF{}
	for _, we := range edges {
		c, ok := newEdgeCut(&m, ef, we.e, b.Width*we.w, b.Segments > 1)
		if !ok {
			skipped++
			continue
		}
		c.start = mitre(c.u, dirs[we.e.A])
		c.end = mitre(c.u, dirs[we.e.B])
		cut.cuts = append(cut.cuts, c)
	}
	if len(cut.cuts) == 0 {
		return nil, skipped
	}
	bb := cut.cuts[0].box
	for _, c := range cut.cuts[1:] {
		bb = bb.Union(c.box)
	}
	cut.bb = sdf.Box3{Min: toV3(bb.Min), Max: toV3(bb.Max)}
	return cut, skipped
}

func newEdgeCut(m *pmesh.Mesh, ef map[pmesh.Edge][]int, e pmesh.Edge, width float64, round bool) (edgeCut, bool) {
	faces := ef[e]
	if len(faces) != 2 || width <= 0 {
		return edgeCut{}, false
	}
	a, b := m.Vertices[e.A], m.Vertices[e.B]
	length := r3.Norm(r3.Sub(b, a))
	if length == 0 {
		return edgeCut{}, false
	}
	u := r3.Scale(1/length, r3.Sub(b, a))
	n1, n2 := m.FaceNormal(faces[0]), m.FaceNormal(faces[1])
	dot := r3.Dot(n1, n2)
	if dot > 1-1e-9 || r3.Dot(r3.Sub(m.FaceCenter(faces[1]), a), n1) > -1e-9 {
		return edgeCut{}, false
	}
	inFace := func(n r3.Vec, face int) r3.Vec {
		t := r3.Unit(r3.Cross(n, u))
		if r3.Dot(t, r3.Sub(m.FaceCenter(face), a)) < 0 {
			t = r3.Scale(-1, t)
		}
		return t
	}
	c := edgeCut{
		a:     a,
		b:     b,
		u:     u,
		t1:    inFace(n1, faces[0]),
		t2:    inFace(n2, faces[1]),
		m:     r3.Unit(r3.Add(n1, n2)),
		width: width,
	}
	if round {
		// Half the interior angle between the faces.
		half := (math.Pi - math.Acos(math.Max(-1, dot))) / 2
		c.radius = width * math.Tan(half)
		c.center = r3.Scale(-width/math.Cos(half), c.m)
	}
	pad := r3.Vec{X: 2 * width, Y: 2 * width, Z: 2 * width}
	c.box = r3.Box{
		Min: r3.Sub(r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}, pad),
		Max: r3.Add(r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}, pad),
	}
	return c, true
}

// mitre returns the normal of the plane ending a cut along u at a vertex
// where other weighted edges leave in directions out. A nearly straight
// continuation shares the bisecting plane so consecutive cuts meet.
func mitre(u r3.Vec, out []r3.Vec) r3.Vec {
	best, next := mitreCos, r3.Vec{}
	for _, d := range out {
		// Continuing edges leave along u or arrive against it.
		for _, cand := range []r3.Vec{d, r3.Scale(-1, d)} {
			if c := r3.Dot(cand, u); c > best && c < 1-1e-12 {
				best, next = c, cand
			}
		}
	}
	if next == (r3.Vec{}) {
		return u
	}
	return r3.Unit(r3.Add(u, next))
}

// eval is negative inside the cut.
func (c *edgeCut) eval(p r3.Vec) float64 {
	d := r3.Sub(p, c.a)
	perp := r3.Sub(d, r3.Scale(r3.Dot(d, c.u), c.u))
	dist := math.Max(-r3.Dot(d, c.start), r3.Dot(r3.Sub(p, c.b), c.end))
	dist = math.Max(dist, r3.Norm(perp)-c.width)
	if c.radius == 0 {
		return math.Max(dist, -r3.Dot(r3.Sub(perp, r3.Scale(c.width, c.t1)), c.m))
	}
	dist = math.Max(dist, r3.Dot(perp, c.t1)-c.width)
	dist = math.Max(dist, r3.Dot(perp, c.t2)-c.width)
	return math.Max(dist, c.radius-r3.Norm(r3.Sub(perp, c.center)))
}

func (s *bevelSDF) Evaluate(p v3.Vec) float64 {
	q := toR3(p)
	best := math.Inf(1)
	for i := range s.cuts {
		c := &s.cuts[i]
		if d := boxDistance(q, c.box); d > 0 {
			best = math.Min(best, d)
			continue
		}
		best = math.Min(best, c.eval(q))
	}
	return best
}

func (s *bevelSDF) BoundingBox() sdf.Box3 { return s.bb }

// boxDistance is the distance from p to b, zero inside.
func boxDistance(p r3.Vec, b r3.Box) float64 {
	d := r3.Vec{
		X: math.Max(0, math.Max(b.Min.X-p.X, p.X-b.Max.X)),
		Y: math.Max(0, math.Max(b.Min.Y-p.Y, p.Y-b.Max.Y)),
		Z: math.Max(0, math.Max(b.Min.Z-p.Z, p.Z-b.Max.Z)),
	}
	return r3.Norm(d)
}
