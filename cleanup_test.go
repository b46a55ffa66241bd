package pmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestWeld(t *testing.T) {
	var m Mesh
	m.AddPolygon(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1})
	m.AddPolygon(r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{X: 2, Y: 1}, r3.Vec{X: 1 + 1e-6, Y: 1})
	// collapses to a segment
	m.AddPolygon(r3.Vec{Z: 5}, r3.Vec{Z: 5 + 1e-7}, r3.Vec{X: 1, Z: 5})
	m.Weld(WeldTolerance)
	if m.Len() != 6 {
		t.Errorf("got %d vertices, want 6", m.Len())
	}
	if len(m.Faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(m.Faces))
	}
	ef := m.EdgeFaces()
	if len(ef) != 7 {
		t.Errorf("got %d edges, want 7", len(ef))
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}

func TestRemapFaceWrap(t *testing.T) {
	remap := []int{0, 1, 2, 0}
	got := remapFace([]int{0, 1, 2, 3}, remap)
	if len(got) != 3 {
		t.Errorf("got %v, want three indices", got)
	}
	if remapFace([]int{0, 1, 3}, remap) != nil {
		t.Error("face with two distinct indices survived")
	}
}

func TestRecalcNormals(t *testing.T) {
	for _, flip := range [][]int{{0}, {2, 4}, {0, 1, 2, 3, 4, 5}} {
		m := BoxMesh(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 5})
		for _, i := range flip {
			reverse(m.Faces[i])
		}
		m.RecalcNormals()
		if v := m.Volume(); math.Abs(v-6) > 1e-9 {
			t.Errorf("flipped %v: volume %g, want 6", flip, v)
		}
		for fi := range m.Faces {
			n := m.FaceNormal(fi)
			out := r3.Sub(m.FaceCenter(fi), r3.Vec{X: 5})
			if r3.Dot(n, out) <= 0 {
				t.Errorf("flipped %v: face %d points inward", flip, fi)
			}
		}
	}
}

func TestRecalcNormalsShells(t *testing.T) {
	a := BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	b := BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 3})
	b.FlipFaces()
	a.Append(b)
	a.RecalcNormals()
	if v := a.Volume(); math.Abs(v-2) > 1e-9 {
		t.Errorf("volume %g, want 2", v)
	}
}

func TestRemoveInternalFaces(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	m.Append(BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 1}))
	m.Weld(WeldTolerance)
	if m.Len() != 12 {
		t.Fatalf("got %d vertices after weld", m.Len())
	}
	m.RemoveInternalFaces()
	if len(m.Faces) != 10 {
		t.Errorf("got %d faces, want 10", len(m.Faces))
	}
	if !m.IsManifold() {
		t.Error("joined boxes not closed")
	}
	if v := m.Volume(); math.Abs(v-2) > 1e-9 {
		t.Errorf("volume %g, want 2", v)
	}
}

func TestTriangulateConcave(t *testing.T) {
	var m Mesh
	// L shape starting at a vertex that cannot see the whole polygon.
	m.AddPolygon(
		r3.Vec{X: 1, Y: 2}, r3.Vec{Y: 2}, r3.Vec{},
		r3.Vec{X: 2}, r3.Vec{X: 2, Y: 1}, r3.Vec{X: 1, Y: 1},
	)
	tris := m.Triangles()
	if len(tris) != 4 {
		t.Fatalf("got %d triangles, want 4", len(tris))
	}
	var area float64
	for i, tri := range tris {
		if n := tri.Normal(); n.Z <= 0 {
			t.Errorf("triangle %d flipped: %v", i, tri)
		}
		area += tri.Area()
	}
	if math.Abs(area-3) > 1e-12 {
		t.Errorf("area %g, want 3", area)
	}

	m.FlipFaces()
	for i, tri := range m.Triangles() {
		if n := tri.Normal(); n.Z >= 0 {
			t.Errorf("flipped face triangle %d points up", i)
		}
	}
}

func TestCleanupSphere(t *testing.T) {
	m, err := SphereSolid{Radius: 2}.Mesh(32)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Fatal("sphere not closed")
	}
	want := 4.0 / 3 * math.Pi * 8
	if v := m.Volume(); v <= 0 || math.Abs(v-want)/want > 0.05 {
		t.Errorf("volume %g, want about %g", v, want)
	}
}
