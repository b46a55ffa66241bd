// Package pmesh builds closed polygon meshes of parametric mechanical parts.
//
// A Mesh is a vertex list plus faces given as vertex index lists. Faces may
// be triangles, quads or n-gons. Generators append to a Mesh in place and
// finish with Cleanup, which welds coincident vertices and makes the face
// winding consistent.
package pmesh

import (
	"errors"
	"fmt"

	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed polygon mesh.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][]int
}

// Len returns the number of vertices in the mesh.
func (m *Mesh) Len() int { return len(m.Vertices) }

// AddVertices appends vertices to the mesh and returns the index
// of the first one added.
func (m *Mesh) AddVertices(v ...r3.Vec) int {
	first := len(m.Vertices)
	m.Vertices = append(m.Vertices, v...)
	return first
}

// AddFace appends a face built from vertex indices.
func (m *Mesh) AddFace(idx ...int) {
	f := make([]int, len(idx))
	copy(f, idx)
	m.Faces = append(m.Faces, f)
}

// AddPolygon appends the vertices and a single face joining them in order.
// It returns the indices of the new face.
func (m *Mesh) AddPolygon(v ...r3.Vec) []int {
	first := m.AddVertices(v...)
	face := make([]int, len(v))
	for i := range face {
		face[i] = first + i
	}
	m.Faces = append(m.Faces, face)
	return face
}

// Append joins b into m, offsetting b's face indices.
func (m *Mesh) Append(b Mesh) {
	off := len(m.Vertices)
	m.Vertices = append(m.Vertices, b.Vertices...)
	for _, f := range b.Faces {
		nf := make([]int, len(f))
		for i, idx := range f {
			nf[i] = idx + off
		}
		m.Faces = append(m.Faces, nf)
	}
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	c := Mesh{
		Vertices: append([]r3.Vec(nil), m.Vertices...),
		Faces:    make([][]int, len(m.Faces)),
	}
	for i, f := range m.Faces {
		c.Faces[i] = append([]int(nil), f...)
	}
	return c
}

var errEmptyMesh = errors.New("mesh has no faces")

// Validate checks every face references existing vertices
// and has at least three corners.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return errEmptyMesh
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("face %d has %d vertices", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d index %d out of range [0,%d)", i, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis aligned bounding box of the vertices.
func (m *Mesh) Bounds() r3.Box {
	return r3.Box(d3.BoxOf(m.Vertices))
}

// Translate moves every vertex by v.
func (m *Mesh) Translate(v r3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i] = r3.Add(m.Vertices[i], v)
	}
}

// Scale multiplies vertex components by s.
func (m *Mesh) Scale(s r3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i] = d3.MulElem(m.Vertices[i], s)
	}
	if s.X*s.Y*s.Z < 0 {
		m.FlipFaces()
	}
}

// Rotate rotates every vertex about a cardinal axis through the origin.
func (m *Mesh) Rotate(angle float64, axis Axis) {
	for i := range m.Vertices {
		m.Vertices[i] = RotatedVector(m.Vertices[i], angle, axis)
	}
}

// RotateFrom rotates vertices starting at index from about a cardinal axis.
func (m *Mesh) RotateFrom(from int, angle float64, axis Axis) {
	for i := from; i < len(m.Vertices); i++ {
		m.Vertices[i] = RotatedVector(m.Vertices[i], angle, axis)
	}
}

// TranslateFrom moves vertices starting at index from by v.
func (m *Mesh) TranslateFrom(from int, v r3.Vec) {
	for i := from; i < len(m.Vertices); i++ {
		m.Vertices[i] = r3.Add(m.Vertices[i], v)
	}
}

// FlipFaces reverses the winding of every face.
func (m *Mesh) FlipFaces() {
	for _, f := range m.Faces {
		reverse(f)
	}
}

// Triangles returns the mesh faces split into triangles.
// Planar n-gons are ear clipped so concave caps triangulate correctly.
func (m *Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, 0, 2*len(m.Faces))
	for _, f := range m.Faces {
		for _, t := range triangulateFace(m.Vertices, f) {
			tris = append(tris, r3.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]})
		}
	}
	return tris
}

// Triangulate replaces every face of more than three corners with the
// triangles Triangles would return for it. Vertices are unchanged.
func (m *Mesh) Triangulate() {
	faces := make([][]int, 0, 2*len(m.Faces))
	for _, f := range m.Faces {
		if len(f) == 3 {
			faces = append(faces, f)
			continue
		}
		for _, t := range triangulateFace(m.Vertices, f) {
			faces = append(faces, []int{t[0], t[1], t[2]})
		}
	}
	m.Faces = faces
}

// FaceNormal returns the unit normal of face i computed with Newell's method.
func (m *Mesh) FaceNormal(i int) r3.Vec {
	return newellNormal(m.Vertices, m.Faces[i])
}

// FaceCenter returns the mean of the vertices of face i.
func (m *Mesh) FaceCenter(i int) r3.Vec {
	var c r3.Vec
	for _, idx := range m.Faces[i] {
		c = r3.Add(c, m.Vertices[idx])
	}
	return r3.Scale(1/float64(len(m.Faces[i])), c)
}

// Volume returns the signed volume enclosed by the mesh.
// Closed meshes with outward facing normals have positive volume.
func (m *Mesh) Volume() float64 {
	var vol float64
	for _, t := range m.Triangles() {
		vol += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return vol / 6
}

func newellNormal(v []r3.Vec, f []int) r3.Vec {
	var n r3.Vec
	for i := range f {
		a, b := v[f[i]], v[f[(i+1)%len(f)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if r3.Norm2(n) == 0 {
		return n
	}
	return r3.Unit(n)
}

func reverse(f []int) {
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}
