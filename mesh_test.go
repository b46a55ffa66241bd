package pmesh

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestValidate(t *testing.T) {
	var m Mesh
	if err := m.Validate(); !errors.Is(err, errEmptyMesh) {
		t.Errorf("empty mesh: got %v", err)
	}
	m.AddVertices(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	m.AddFace(0, 1)
	if m.Validate() == nil {
		t.Error("two vertex face accepted")
	}
	m.Faces[0] = []int{0, 1, 3}
	if m.Validate() == nil {
		t.Error("out of range index accepted")
	}
	m.Faces[0] = []int{0, 1, 2}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMirrorScaleKeepsOrientation(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1})
	m.Scale(r3.Vec{X: -1, Y: 1, Z: 1})
	if v := m.Volume(); math.Abs(v-6) > 1e-9 {
		t.Errorf("volume after mirror %g, want 6", v)
	}
	b := m.Bounds()
	if math.Abs(b.Min.X+1.5) > 1e-12 || math.Abs(b.Max.X+0.5) > 1e-12 {
		t.Errorf("bounds %v", b)
	}
}

func TestClone(t *testing.T) {
	m := BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	c := m.Clone()
	c.Translate(r3.Vec{Z: 10})
	c.Faces[0][0] = 7
	if m.Vertices[0].Z != -0.5 || m.Faces[0][0] == 7 {
		t.Error("clone shares storage with original")
	}
}

func TestRotateFrom(t *testing.T) {
	var m Mesh
	m.AddVertices(r3.Vec{X: 1}, r3.Vec{X: 1})
	m.RotateFrom(1, math.Pi, AxisZ)
	m.TranslateFrom(1, r3.Vec{Z: 1})
	if m.Vertices[0] != (r3.Vec{X: 1}) {
		t.Errorf("vertex before index moved: %v", m.Vertices[0])
	}
	if got := m.Vertices[1]; math.Abs(got.X+1) > 1e-12 || got.Z != 1 {
		t.Errorf("got %v", got)
	}
}

func TestCylinderMesh(t *testing.T) {
	const n = 24
	m := CylinderMesh(2, 3, n)
	if !m.IsManifold() {
		t.Fatal("cylinder not closed")
	}
	want := n / 2.0 * math.Sin(2*math.Pi/n) * 4 * 3
	if v := m.Volume(); math.Abs(v-want) > 1e-9 {
		t.Errorf("volume %g, want %g", v, want)
	}
}
