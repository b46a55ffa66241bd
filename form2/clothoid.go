package form2

import (
	"runtime/debug"

	"github.com/romly/pmesh/form2/must2"
	"github.com/romly/pmesh/internal/d2"
)

// ClothoidCurve is a sampled Euler spiral with the osculating circle at
// its end.
type ClothoidCurve = must2.ClothoidCurve

// ClothoidRectangle is a rectangle with clothoid corners.
type ClothoidRectangle = must2.ClothoidRectangle

// ClothoidTMax returns the curve parameter reached after length.
func ClothoidTMax(a, length float64) float64 { return must2.ClothoidTMax(a, length) }

// ClothoidT45 returns the curve parameter of the 45 degree tangent.
func ClothoidT45(a float64) float64 { return must2.ClothoidT45(a) }

// Clothoid samples the Euler spiral of parameter a at n+1 parameters in [0, tMax].
func Clothoid(a, tMax float64, n int) (c ClothoidCurve, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &shapeErr{
				panicObj: r,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Clothoid(a, tMax, n), err
}

// ClothoidCorner returns a 90 degree corner of two mirrored clothoids.
func ClothoidCorner(a float64, n int) (s d2.Set, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &shapeErr{
				panicObj: r,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.ClothoidCorner(a, n), err
}

// ClothoidArcCorner returns a 90 degree corner of clothoid, arc and
// mirrored clothoid plus the arc angle.
func ClothoidArcCorner(a, length float64, n, arcPoints int) (s d2.Set, arcAngle float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &shapeErr{
				panicObj: r,
				stack:    string(debug.Stack()),
			}
		}
	}()
	s, arcAngle = must2.ClothoidArcCorner(a, length, n, arcPoints)
	return s, arcAngle, err
}

// NewClothoidRectangle returns a w by h rectangle with clothoid corners.
func NewClothoidRectangle(a, length float64, n, arcPoints int, w, h float64) (r ClothoidRectangle, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &shapeErr{
				panicObj: p,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.NewClothoidRectangle(a, length, n, arcPoints, w, h), err
}
