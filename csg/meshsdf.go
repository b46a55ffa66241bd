package csg

import (
	"errors"
	"math"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ sdf.SDF3         = (*meshSDF)(nil)
	_ kdtree.Interface = kdTriangles{}
)

// candidates is the number of triangles, nearest by centroid, that seed
// the closest point search.
const candidates = 12

// largeRadius is the multiple of the median triangle radius above which a
// triangle is searched directly instead of through the centroid tree.
const largeRadius = 4

var errEmptyMesh = errors.New("mesh has no faces")

// meshSDF is the signed distance to a closed triangle mesh. The sign is
// taken from the angle weighted pseudo-normal of the closest feature, so
// points near edges and corners are classified correctly.
//
// Every point of a triangle lies within its radius of its centroid, so
// once a closest distance d is known only centroids nearer than d plus
// the largest radius in the tree can hold a closer triangle. Triangles
// much larger than the rest are kept out of the tree to keep that bound
// tight.
type meshSDF struct {
	tris  []r3.Triangle
	face  []r3.Vec
	vert  []r3.Vec
	edge  map[pmesh.Edge]r3.Vec
	index [][3]int
	tree  *kdtree.Tree
	large []int
	// reach is the largest centroid to vertex distance in the tree.
	reach float64
	bb    sdf.Box3
	// closed is false when some edge is not shared by exactly two
	// faces. The sign is unreliable near such edges.
	closed bool
}

// newMeshSDF welds and triangulates a copy of m and indexes its triangles.
func newMeshSDF(m pmesh.Mesh) (*meshSDF, error) {
	m = m.Clone()
	m.Cleanup()
	m.Triangulate()
	s := &meshSDF{
		vert:   make([]r3.Vec, len(m.Vertices)),
		edge:   make(map[pmesh.Edge]r3.Vec),
		closed: m.IsManifold(),
	}
	var radii []float64
	for _, f := range m.Faces {
		t := r3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
		if t.IsDegenerate(1e-12) {
			continue
		}
		n := r3.Unit(t.Normal())
		for i := 0; i < 3; i++ {
			s.vert[f[i]] = r3.Add(s.vert[f[i]], r3.Scale(d3.InteriorAngle(t, i), n))
			e := pmesh.NewEdge(f[i], f[(i+1)%3])
			s.edge[e] = r3.Add(s.edge[e], n)
		}
		radii = append(radii, radius(t))
		s.tris = append(s.tris, t)
		s.face = append(s.face, n)
		s.index = append(s.index, [3]int{f[0], f[1], f[2]})
	}
	if len(s.tris) == 0 {
		return nil, errEmptyMesh
	}
	sorted := append([]float64(nil), radii...)
	sort.Float64s(sorted)
	limit := largeRadius * sorted[len(sorted)/2]
	kd := make(kdTriangles, 0, len(s.tris))
	for i, t := range s.tris {
		if radii[i] > limit {
			s.large = append(s.large, i)
			continue
		}
		kd = append(kd, kdTriangle{c: t.Centroid(), i: i})
		s.reach = math.Max(s.reach, radii[i])
	}
	if len(kd) > 0 {
		s.tree = kdtree.New(kd, false)
	}
	b := m.Bounds()
	// Marching cubes needs a margin of empty space around the surface.
	pad := 0.02 * d3.Max(r3.Sub(b.Max, b.Min))
	s.bb = sdf.Box3{
		Min: toV3(r3.Sub(b.Min, d3.Elem(pad))),
		Max: toV3(r3.Add(b.Max, d3.Elem(pad))),
	}
	return s, nil
}

func (s *meshSDF) BoundingBox() sdf.Box3 { return s.bb }

func (s *meshSDF) Evaluate(p v3.Vec) float64 {
	q := toR3(p)
	best := math.Inf(1)
	var closest, normal r3.Vec
	visit := func(ti int) {
		pt, feat := d3.Closest(s.tris[ti], q)
		d := r3.Norm2(r3.Sub(q, pt))
		if d >= best {
			return
		}
		best, closest = d, pt
		normal = s.pseudoNormal(ti, feat)
	}
	for _, ti := range s.large {
		visit(ti)
	}
	if s.tree != nil {
		query := kdTriangle{c: q, i: -1}
		seed := kdtree.NewNKeeper(candidates)
		s.tree.NearestSet(seed, query)
		visitKept(seed.Heap, visit)
		bound := math.Sqrt(best) + s.reach
		rest := kdtree.NewDistKeeper(bound * bound)
		s.tree.NearestSet(rest, query)
		visitKept(rest.Heap, visit)
	}
	dist := math.Sqrt(best)
	if r3.Dot(r3.Sub(q, closest), normal) < 0 {
		return -dist
	}
	return dist
}

func visitKept(h kdtree.Heap, visit func(int)) {
	for _, c := range h {
		if c.Comparable != nil {
			visit(c.Comparable.(kdTriangle).i)
		}
	}
}

// radius is the largest distance from the centroid of t to a vertex.
func radius(t r3.Triangle) float64 {
	c := t.Centroid()
	var r float64
	for _, v := range t {
		r = math.Max(r, r3.Norm(r3.Sub(v, c)))
	}
	return r
}

func (s *meshSDF) pseudoNormal(ti int, f d3.Feature) r3.Vec {
	idx := s.index[ti]
	switch {
	case f.IsVertex():
		return s.vert[idx[f-d3.FeatureV0]]
	case f.IsEdge():
		i := int(f - d3.FeatureE0)
		return s.edge[pmesh.NewEdge(idx[i], idx[(i+1)%3])]
	}
	return s.face[ti]
}

// kdTriangles indexes triangles by centroid.
type kdTriangles []kdTriangle

type kdTriangle struct {
	c r3.Vec
	i int
}

func (k kdTriangles) Index(i int) kdtree.Comparable { return k[i] }
func (k kdTriangles) Len() int                      { return len(k) }

func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (k kdTriangles) Slice(start, end int) kdtree.Interface { return k[start:end] }

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdTriangle), d)
}

func (kdTriangle) Dims() int { return 3 }

// Distance returns the squared distance between centroids.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.c, b.(kdTriangle).c))
}

func kdComp(a, b kdTriangle, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return a.c.X - b.c.X
	case 1:
		return a.c.Y - b.c.Y
	}
	return a.c.Z - b.c.Z
}

type kdPlane struct {
	dim       kdtree.Dim
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i], p.triangles[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int { return len(p.triangles) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}

func toV3(v r3.Vec) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func toR3(v v3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
