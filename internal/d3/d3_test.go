package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRotateToVec(t *testing.T) {
	for _, test := range []struct{ a, b r3.Vec }{
		{r3.Vec{Z: 1}, r3.Vec{X: 1}},
		{r3.Vec{Z: 1}, r3.Vec{X: 1, Y: 2, Z: 3}},
		{r3.Vec{Z: 1}, r3.Vec{Z: -2}},
		{r3.Vec{X: 1}, r3.Vec{X: -1}},
		{r3.Vec{Y: 3}, r3.Vec{Y: 1}},
	} {
		tf := RotateToVec(test.a, test.b)
		got := tf.Transform(r3.Unit(test.a))
		if !EqualWithin(got, r3.Unit(test.b), 1e-9) {
			t.Errorf("%v -> %v: got %v", test.a, test.b, got)
		}
		if d := tf.Det(); math.Abs(d-1) > 1e-9 {
			t.Errorf("%v -> %v: determinant %g", test.a, test.b, d)
		}
	}
}

func TestTransformInv(t *testing.T) {
	tf := Rotation(r3.Vec{X: 1, Y: 1}, 0.7)
	inv := tf.Inv()
	for _, v := range []r3.Vec{{X: 1}, {Y: -2, Z: 3}, {X: 3, Y: 1, Z: -1}} {
		if got := inv.Transform(tf.Transform(v)); !EqualWithin(got, v, 1e-12) {
			t.Errorf("inverse of rotation moves %v to %v", v, got)
		}
	}
	if v := (r3.Vec{X: 1, Z: 2}); (Transform{}).Inv().Transform(v) != v {
		t.Error("zero transform is not the identity")
	}
}

func TestClosest(t *testing.T) {
	tri := r3.Triangle{{}, {X: 2}, {Y: 2}}
	for _, test := range []struct {
		p    r3.Vec
		want r3.Vec
		feat Feature
	}{
		{r3.Vec{X: 0.5, Y: 0.5, Z: 3}, r3.Vec{X: 0.5, Y: 0.5}, FeatureFace},
		{r3.Vec{X: -1, Y: -1}, r3.Vec{}, FeatureV0},
		{r3.Vec{X: 3, Y: -1}, r3.Vec{X: 2}, FeatureV1},
		{r3.Vec{X: 1, Y: -1, Z: 1}, r3.Vec{X: 1}, FeatureE0},
		{r3.Vec{X: 2, Y: 2}, r3.Vec{X: 1, Y: 1}, FeatureE1},
		{r3.Vec{X: -1, Y: 1}, r3.Vec{Y: 1}, FeatureE2},
	} {
		got, feat := Closest(tri, test.p)
		if !EqualWithin(got, test.want, 1e-12) || feat != test.feat {
			t.Errorf("closest to %v: got %v %v, want %v %v", test.p, got, feat, test.want, test.feat)
		}
	}
}

func TestInteriorAngle(t *testing.T) {
	tri := r3.Triangle{{}, {X: 1}, {Y: 1}}
	if a := InteriorAngle(tri, 0); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("got %g", a)
	}
	var sum float64
	for i := 0; i < 3; i++ {
		sum += InteriorAngle(tri, i)
	}
	if math.Abs(sum-math.Pi) > 1e-12 {
		t.Errorf("angles sum to %g", sum)
	}
}

func TestBoxOf(t *testing.T) {
	b := BoxOf(Set{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4}, {Z: -5}})
	if b.Min != (r3.Vec{X: -1, Y: -2, Z: -5}) || b.Max != (r3.Vec{X: 1, Y: 4, Z: 3}) {
		t.Errorf("box %v", b)
	}
	if s := b.Size(); s != (r3.Vec{X: 2, Y: 6, Z: 8}) {
		t.Errorf("size %v", s)
	}
	if (BoxOf(nil) != Box{}) {
		t.Error("empty set should give the zero box")
	}
}
