package pmesh

import (
	"math"
	"testing"

	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestRotatedVector(t *testing.T) {
	for _, test := range []struct {
		v    r3.Vec
		axis Axis
		want r3.Vec
	}{
		{v: r3.Vec{X: 1}, axis: AxisZ, want: r3.Vec{Y: 1}},
		{v: r3.Vec{Y: 1}, axis: AxisX, want: r3.Vec{Z: 1}},
		{v: r3.Vec{Z: 1}, axis: AxisY, want: r3.Vec{X: 1}},
		{v: r3.Vec{X: 2, Y: 3, Z: 4}, axis: AxisZ, want: r3.Vec{X: -3, Y: 2, Z: 4}},
	} {
		got := RotatedVector(test.v, math.Pi/2, test.axis)
		if !d3.EqualWithin(got, test.want, tol) {
			t.Errorf("rotate %v about %s: got %v, want %v", test.v, test.axis, got, test.want)
		}
		back := RotatedVector(got, -math.Pi/2, test.axis)
		if !d3.EqualWithin(back, test.v, tol) {
			t.Errorf("inverse rotation of %v about %s: got %v", test.v, test.axis, back)
		}
	}
}

func TestFindIntersection(t *testing.T) {
	p, param, ok := FindIntersection(r3.Vec{}, r3.Vec{X: 2, Y: 2}, r3.Vec{Y: 2}, r3.Vec{X: 2})
	if !ok {
		t.Fatal("diagonals do not intersect")
	}
	if !d3.EqualWithin(p, r3.Vec{X: 1, Y: 1}, 1e-6) {
		t.Errorf("got %v, want (1,1,0)", p)
	}
	if math.Abs(param-0.5) > 1e-9 {
		t.Errorf("param: got %g, want 0.5", param)
	}

	for name, seg := range map[string][4]r3.Vec{
		"parallel": {{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		"skew":     {{}, {X: 1}, {X: 0.5, Y: -1, Z: 1}, {X: 0.5, Y: 1, Z: 1}},
		"beyond":   {{}, {X: 1}, {X: 2, Y: -1}, {X: 2, Y: 1}},
	} {
		if _, _, ok := FindIntersection(seg[0], seg[1], seg[2], seg[3]); ok {
			t.Errorf("%s segments reported an intersection", name)
		}
	}
}

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2, Y: -1}, r3.Vec{X: 2, Y: 1})
	if !ok || !d3.EqualWithin(p, r3.Vec{X: 2}, 1e-9) {
		t.Errorf("got %v %v, want (2,0,0)", p, ok)
	}
}

func TestMirrorPoint(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	n := r3.Vec{Z: 2}
	m := MirrorPoint(p, n)
	if !d3.EqualWithin(m, r3.Vec{X: 1, Y: 2, Z: -3}, tol) {
		t.Errorf("got %v", m)
	}
	if got := MirrorPoint(m, n); !d3.EqualWithin(got, p, tol) {
		t.Errorf("mirroring twice: got %v, want %v", got, p)
	}
	diag := r3.Vec{X: 1, Y: 1, Z: 1}
	if got := MirrorPoint(MirrorPoint(p, diag), diag); !d3.EqualWithin(got, p, 1e-12) {
		t.Errorf("mirroring twice across diagonal plane: got %v", got)
	}
}

func TestProjectToPlane(t *testing.T) {
	got := ProjectToPlane(r3.Vec{X: 1, Y: 2, Z: 5}, r3.Vec{Z: 1}, r3.Vec{Z: 3})
	if !d3.EqualWithin(got, r3.Vec{X: 1, Y: 2, Z: 1}, tol) {
		t.Errorf("got %v", got)
	}
}
