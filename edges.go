package pmesh

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is an undirected mesh edge. A is always the smaller index.
type Edge struct {
	A, B int
}

// NewEdge returns the edge joining vertices a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeFaces maps every edge to the faces that use it.
func (m *Mesh) EdgeFaces() map[Edge][]int {
	ef := make(map[Edge][]int, 2*len(m.Faces))
	for fi, f := range m.Faces {
		for j := range f {
			e := NewEdge(f[j], f[(j+1)%len(f)])
			ef[e] = append(ef[e], fi)
		}
	}
	return ef
}

// Edges returns the edges of the mesh sorted by vertex index.
func (m *Mesh) Edges() []Edge {
	ef := m.EdgeFaces()
	edges := make([]Edge, 0, len(ef))
	for e := range ef {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// IsEdgeAlongAxis reports whether edge e runs parallel to a cardinal axis,
// that is both of its other coordinates agree within tol.
func (m *Mesh) IsEdgeAlongAxis(e Edge, axis Axis, tol float64) bool {
	a, b := m.Vertices[e.A], m.Vertices[e.B]
	d := r3.Sub(b, a)
	switch axis {
	case AxisX:
		return math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
	case AxisY:
		return math.Abs(d.X) <= tol && math.Abs(d.Z) <= tol
	}
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol
}

// LinkedFaceDot returns the dot product of the normals of the two faces
// sharing edge e. ok is false when the edge is not shared by exactly two faces.
func (m *Mesh) LinkedFaceDot(ef map[Edge][]int, e Edge) (dot float64, ok bool) {
	faces := ef[e]
	if len(faces) != 2 {
		return 0, false
	}
	return r3.Dot(m.FaceNormal(faces[0]), m.FaceNormal(faces[1])), true
}

// flatCos is the cosine of the dihedral angle under which
// two faces are treated as one flat surface.
var flatCos = math.Cos(0.1 * math.Pi / 180)

// IsSharpEdge reports whether the faces sharing e meet at more than 0.1°.
func (m *Mesh) IsSharpEdge(ef map[Edge][]int, e Edge) bool {
	dot, ok := m.LinkedFaceDot(ef, e)
	return ok && dot < flatCos
}

// FairSurfaceEdges returns the edges lying inside a flat surface, where
// both adjacent faces are coplanar within 0.1°.
func (m *Mesh) FairSurfaceEdges() []Edge {
	ef := m.EdgeFaces()
	var out []Edge
	for _, e := range m.Edges() {
		if dot, ok := m.LinkedFaceDot(ef, e); ok && dot >= flatCos {
			out = append(out, e)
		}
	}
	return out
}

// EdgeWeights are per-edge bevel weights in [0,1].
type EdgeWeights map[Edge]float64

// TagEdges returns weight w for every edge of m matching pred.
func (m *Mesh) TagEdges(w float64, pred func(e Edge) bool) EdgeWeights {
	weights := make(EdgeWeights)
	for _, e := range m.Edges() {
		if pred(e) {
			weights[e] = w
		}
	}
	return weights
}

// EdgeAtZ reports whether both ends of e sit at height z within tol.
func (m *Mesh) EdgeAtZ(e Edge, z, tol float64) bool {
	return math.Abs(m.Vertices[e.A].Z-z) <= tol && math.Abs(m.Vertices[e.B].Z-z) <= tol
}

// EdgeAtXY reports whether e is a vertical edge through the point (x, y).
func (m *Mesh) EdgeAtXY(e Edge, x, y, tol float64) bool {
	a, b := m.Vertices[e.A], m.Vertices[e.B]
	return math.Abs(a.X-x) <= tol && math.Abs(a.Y-y) <= tol &&
		math.Abs(b.X-x) <= tol && math.Abs(b.Y-y) <= tol
}
