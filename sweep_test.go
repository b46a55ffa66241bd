package pmesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestExtrudeFace(t *testing.T) {
	var m Mesh
	m.AddVertices(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{Y: 1})
	m.AddFace(3, 2, 1, 0)
	m.ExtrudeFace([]int{0, 1, 2, 3}, r3.Vec{Z: 2}, true)
	if m.Len() != 8 || len(m.Faces) != 6 {
		t.Fatalf("got %d vertices %d faces", m.Len(), len(m.Faces))
	}
	if !m.IsManifold() {
		t.Error("extruded square is not closed")
	}
	if v := m.Volume(); math.Abs(v-2) > 1e-12 {
		t.Errorf("volume %g, want 2", v)
	}
	top := m.FaceNormal(5)
	if math.Abs(top.Z-1) > 1e-12 {
		t.Errorf("cap normal %v, want +Z", top)
	}
}

func TestAddRevolvedSurface(t *testing.T) {
	const k, segments = 4, 16
	var m Mesh
	m.AddVertices(r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{X: 2, Z: 1}, r3.Vec{X: 1, Z: 1})
	m.AddRevolvedSurface(k, RevolveOpts{Segments: segments, Close: true})
	if got := m.Len(); got != k*(segments+1) {
		t.Errorf("got %d vertices, want %d", got, k*(segments+1))
	}
	if got := len(m.Faces); got != k*segments {
		t.Errorf("got %d faces, want %d", got, k*segments)
	}
	// Last ring lands back on the profile.
	for j := 0; j < k; j++ {
		a, b := m.Vertices[j], m.Vertices[segments*k+j]
		if r3.Norm(r3.Sub(a, b)) > 1e-9 {
			t.Errorf("ring did not close at %d: %v != %v", j, a, b)
		}
	}
	m.Cleanup()
	if m.Len() != k*segments {
		t.Errorf("after weld got %d vertices, want %d", m.Len(), k*segments)
	}
	if !m.IsManifold() {
		t.Error("revolved ring is not closed")
	}
	want := float64(segments) / 2 * math.Sin(2*math.Pi/segments) * (4 - 1)
	if v := m.Volume(); math.Abs(v-want) > 1e-9 {
		t.Errorf("volume %g, want %g", v, want)
	}
}

func TestRevolveHelicalOffset(t *testing.T) {
	var m Mesh
	m.AddVertices(r3.Vec{X: 1}, r3.Vec{X: 1, Z: 0.5})
	m.AddRevolvedSurface(2, RevolveOpts{Segments: 8, ZOffset: 2, Degrees: 720, CCW: true})
	last := m.Vertices[m.Len()-2]
	if math.Abs(last.Z-2) > 1e-9 || math.Abs(last.X-1) > 1e-9 {
		t.Errorf("helix end %v, want (1,0,2)", last)
	}
	// first step of a ccw sweep moves towards +Y.
	if m.Vertices[2].Y <= 0 {
		t.Errorf("ccw sweep moved to %v", m.Vertices[2])
	}
	var cw Mesh
	cw.AddVertices(r3.Vec{X: 1}, r3.Vec{X: 1, Z: 0.5})
	cw.AddRevolvedSurface(2, RevolveOpts{Segments: 8})
	if cw.Vertices[2].Y >= 0 {
		t.Errorf("default sweep moved to %v, want clockwise", cw.Vertices[2])
	}
}

func TestArray(t *testing.T) {
	box := BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	arr := Array(box, 3, r3.Vec{X: 2})
	if arr.Len() != 24 || len(arr.Faces) != 18 {
		t.Fatalf("got %d vertices %d faces", arr.Len(), len(arr.Faces))
	}
	b := arr.Bounds()
	if math.Abs(b.Max.X-4.5) > 1e-12 || math.Abs(b.Min.X+0.5) > 1e-12 {
		t.Errorf("bounds %v", b)
	}
	if v := arr.Volume(); math.Abs(v-3) > 1e-12 {
		t.Errorf("volume %g", v)
	}
}

func TestFan(t *testing.T) {
	var m Mesh
	ring := make([]int, 6)
	first := m.AddVertices(CircleVertices(1, 6, r3.Vec{}, r3.Vec{Z: 1})...)
	for i := range ring {
		ring[i] = first + i
	}
	m.Fan(ring, r3.Vec{Z: 1})
	m.AddFace(5, 4, 3, 2, 1, 0)
	if !m.IsManifold() || len(m.Faces) != 7 {
		t.Fatalf("pyramid not closed: %d faces", len(m.Faces))
	}
	if m.Volume() <= 0 {
		t.Errorf("volume %g", m.Volume())
	}
}

func TestPrism(t *testing.T) {
	square := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}}
	for _, h := range []float64{3, -3} {
		m := Prism(square, 1, h)
		if m.Len() != 8 || len(m.Faces) != 6 {
			t.Fatalf("height %g: got %d vertices %d faces", h, m.Len(), len(m.Faces))
		}
		if !m.IsManifold() {
			t.Errorf("height %g: prism is not closed", h)
		}
		if v := m.Volume(); math.Abs(v-12) > 1e-12 {
			t.Errorf("height %g: volume %g, want 12", h, v)
		}
	}
}
