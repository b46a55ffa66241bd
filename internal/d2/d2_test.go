package d2

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestIntersect(t *testing.T) {
	v, ok := Intersect(r2.Vec{X: -1}, r2.Vec{X: 1}, r2.Vec{Y: -1}, r2.Vec{Y: 1})
	if !ok || !EqualWithin(v, r2.Vec{}, 1e-12) {
		t.Errorf("got %v %v", v, ok)
	}
	if _, ok := Intersect(r2.Vec{X: -1}, r2.Vec{X: 1}, r2.Vec{X: 2, Y: -1}, r2.Vec{X: 2, Y: 1}); ok {
		t.Error("crossing beyond the first segment")
	}
	if _, ok := Intersect(r2.Vec{}, r2.Vec{X: 1}, r2.Vec{Y: 1}, r2.Vec{X: 1, Y: 1}); ok {
		t.Error("parallel segments")
	}
	v, ok = Intersect(r2.Vec{}, r2.Vec{X: 2, Y: 2}, r2.Vec{X: 2}, r2.Vec{Y: 2})
	if !ok || !EqualWithin(v, r2.Vec{X: 1, Y: 1}, 1e-12) {
		t.Errorf("diagonal crossing %v %v", v, ok)
	}
}

func TestRotateMirror(t *testing.T) {
	v := Rotate(r2.Vec{X: 1}, math.Pi/2)
	if !EqualWithin(v, r2.Vec{Y: 1}, 1e-12) {
		t.Errorf("rotate %v", v)
	}
	m := Mirror(r2.Vec{X: 2, Y: 3}, r2.Vec{X: -1})
	if !EqualWithin(m, r2.Vec{X: -2, Y: 3}, 1e-12) {
		t.Errorf("mirror %v", m)
	}
}

func TestSetArea(t *testing.T) {
	sq := Set{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if a := sq.Area(); a != 4 {
		t.Errorf("area %g", a)
	}
}
