package pmesh

import (
	"math"
	"testing"

	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestArcVertices(t *testing.T) {
	center := r3.Vec{X: 1, Y: 1, Z: 1}
	start := r3.Vec{X: 3, Y: 1, Z: 1}
	arc := ArcVertices(start, center, r3.Vec{Z: 1}, math.Pi/2, 4)
	if len(arc) != 5 {
		t.Fatalf("got %d points, want 5", len(arc))
	}
	for i, p := range arc {
		if r := r3.Norm(r3.Sub(p, center)); math.Abs(r-2) > 1e-9 {
			t.Errorf("point %d at radius %g", i, r)
		}
	}
	if !d3.EqualWithin(arc[0], start, 1e-12) {
		t.Errorf("first point %v, want %v", arc[0], start)
	}
	if !d3.EqualWithin(arc[4], r3.Vec{X: 1, Y: 3, Z: 1}, 1e-9) {
		t.Errorf("last point %v", arc[4])
	}
	chord := r3.Norm(r3.Sub(arc[1], arc[0]))
	for i := 2; i < len(arc); i++ {
		if c := r3.Norm(r3.Sub(arc[i], arc[i-1])); math.Abs(c-chord) > 1e-9 {
			t.Errorf("uneven spacing at %d: %g != %g", i, c, chord)
		}
	}
}

func TestCircleVertices(t *testing.T) {
	const n = 8
	c := r3.Vec{Z: 1}
	pts := CircleVertices(2, n, c, r3.Vec{Z: 1})
	if !d3.EqualWithin(pts[0], r3.Vec{X: 2, Z: 1}, 1e-12) {
		t.Errorf("first point %v", pts[0])
	}
	if !d3.EqualWithin(pts[1], r3.Vec{X: math.Sqrt2, Y: math.Sqrt2, Z: 1}, 1e-12) {
		t.Errorf("second point %v, want counter-clockwise order", pts[1])
	}
	tilted := CircleVertices(1.5, n, r3.Vec{}, r3.Vec{X: 1, Y: 1})
	normal := r3.Unit(r3.Vec{X: 1, Y: 1})
	for i, p := range tilted {
		if r := r3.Norm(p); math.Abs(r-1.5) > 1e-9 {
			t.Errorf("point %d at radius %g", i, r)
		}
		if d := r3.Dot(p, normal); math.Abs(d) > 1e-9 {
			t.Errorf("point %d off plane by %g", i, d)
		}
	}
}

func TestCircleArcXYExcludesEnds(t *testing.T) {
	pts := CircleArcXY(1, 3, r3.Vec{}, 0, math.Pi/2)
	if len(pts) != 3 {
		t.Fatalf("got %d points", len(pts))
	}
	want := r3.Vec{X: math.Cos(math.Pi / 4), Y: math.Sin(math.Pi / 4)}
	if !d3.EqualWithin(pts[1], want, 1e-12) {
		t.Errorf("middle point %v, want %v", pts[1], want)
	}
}
