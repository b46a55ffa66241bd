package pmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxEdges(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 2, Y: 2, Z: 2}, r3.Vec{})
	edges := m.Edges()
	if len(edges) != 12 {
		t.Fatalf("got %d edges, want 12", len(edges))
	}
	ef := m.EdgeFaces()
	var vertical int
	for _, e := range edges {
		if m.IsEdgeAlongAxis(e, AxisZ, 1e-9) {
			vertical++
		}
		dot, ok := m.LinkedFaceDot(ef, e)
		if !ok || math.Abs(dot) > 1e-12 {
			t.Errorf("edge %v: dot %g ok %v", e, dot, ok)
		}
		if !m.IsSharpEdge(ef, e) {
			t.Errorf("edge %v not sharp", e)
		}
	}
	if vertical != 4 {
		t.Errorf("got %d vertical edges, want 4", vertical)
	}
	if fair := m.FairSurfaceEdges(); len(fair) != 0 {
		t.Errorf("box has fair edges %v", fair)
	}
}

func TestFairSurfaceEdges(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 2, Y: 2, Z: 2}, r3.Vec{})
	top := m.Faces[5]
	m.Faces[5] = []int{top[0], top[1], top[2]}
	m.AddFace(top[0], top[2], top[3])
	fair := m.FairSurfaceEdges()
	if len(fair) != 1 || fair[0] != NewEdge(top[0], top[2]) {
		t.Errorf("got %v, want the top diagonal", fair)
	}
}

func TestTagEdges(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 2, Y: 4, Z: 6}, r3.Vec{Z: 3})
	w := m.TagEdges(0.5, func(e Edge) bool { return m.EdgeAtZ(e, 6, 0.01) })
	if len(w) != 4 {
		t.Fatalf("got %d top edges, want 4", len(w))
	}
	for e, v := range w {
		if v != 0.5 {
			t.Errorf("edge %v weight %g", e, v)
		}
	}
	corner := m.TagEdges(1, func(e Edge) bool { return m.EdgeAtXY(e, 1, 2, 1e-9) })
	if len(corner) != 1 {
		t.Errorf("got %d corner edges, want 1", len(corner))
	}
}

func TestNewEdgeOrder(t *testing.T) {
	if NewEdge(5, 2) != NewEdge(2, 5) || NewEdge(5, 2).A != 2 {
		t.Error("edges are not normalized")
	}
}
