package must2

import (
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// ClothoidStep is the parameter step of the Euler integration.
const ClothoidStep = 0.01

// ClothoidCurve is a sampled Euler spiral leaving the origin along +X.
// Radius, Center and Angle describe the osculating circle and the tangent
// direction at the last sample.
type ClothoidCurve struct {
	Points d2.Set
	Radius float64
	Center r2.Vec
	Angle  float64
}

// ClothoidTMax returns the curve parameter reached by a clothoid of
// parameter a after the given length.
func ClothoidTMax(a, length float64) float64 {
	return length * length / (a * a * math.Pi)
}

// ClothoidT45 returns the curve parameter at which the tangent of the
// clothoid has turned 45 degrees.
func ClothoidT45(a float64) float64 {
	return math.Sqrt(2 * (math.Pi / 4) / a)
}

// Clothoid samples the Euler spiral x' = cos(a t²/2), y' = sin(a t²/2)
// at n+1 evenly spaced parameters in [0, tMax]. Positions are integrated
// with fixed steps of ClothoidStep.
func Clothoid(a, tMax float64, n int) ClothoidCurve {
	if a <= 0 {
		panic("clothoid parameter <= 0")
	}
	if tMax < 0 {
		panic("tMax < 0")
	}
	if n < 1 {
		panic("n < 1")
	}
	var c ClothoidCurve
	c.Points = make(d2.Set, n+1)
	step := tMax / float64(n)
	var p r2.Vec
	done := 0
	for i := range c.Points {
		t := float64(i) * step
		// Samples share the integration prefix of their predecessor.
		for steps := int(t / ClothoidStep); done < steps; done++ {
			k := float64(done) * ClothoidStep
			s, co := math.Sincos(0.5 * a * k * k)
			p.X += co * ClothoidStep
			p.Y += s * ClothoidStep
		}
		c.Points[i] = p
		if t > 0 {
			ty, tx := math.Sincos(0.5 * a * t * t)
			c.Radius = 1 / (a * t)
			c.Center = r2.Vec{X: p.X - c.Radius*ty, Y: p.Y + c.Radius*tx}
			c.Angle = math.Atan2(ty, tx)
		}
	}
	return c
}

// mirror45 reverses pts and reflects them across the line y = -x, turning a
// curve that leaves the origin along +X into one that arrives heading +Y.
func mirror45(pts d2.Set) d2.Set {
	out := make(d2.Set, len(pts))
	for i, v := range pts {
		out[len(pts)-1-i] = r2.Vec{X: -v.Y, Y: -v.X}
	}
	return out
}

func translate(pts d2.Set, off r2.Vec) d2.Set {
	out := make(d2.Set, len(pts))
	for i, v := range pts {
		out[i] = r2.Add(v, off)
	}
	return out
}

// ClothoidCorner returns a 90 degree corner made of a clothoid running to
// its 45 degree point followed by its mirror image. The corner leaves the
// origin heading +X and ends heading +Y.
func ClothoidCorner(a float64, n int) d2.Set {
	c := Clothoid(a, ClothoidT45(a), n)
	last := c.Points[len(c.Points)-1]
	end := mirror45(c.Points)
	end = translate(end, r2.Sub(last, end[0]))
	return append(c.Points, end[1:]...)
}

// ClothoidArcCorner returns a 90 degree corner made of a clothoid of the
// given length, a circular arc of arcPoints interior points on its
// osculating circle and the mirrored clothoid. When the clothoid of that
// length would turn past 45 degrees the corner is ClothoidCorner and the
// arc angle is zero.
func ClothoidArcCorner(a, length float64, n, arcPoints int) (pts d2.Set, arcAngle float64) {
	tMax := ClothoidTMax(a, length)
	if ClothoidT45(a) < tMax {
		return ClothoidCorner(a, n), 0
	}
	c := Clothoid(a, tMax, n)
	arcAngle = (math.Pi/4 - c.Angle) * 2
	endStart := r2.Add(c.Center, d2.Rotate(r2.Vec{Y: -c.Radius}, c.Angle+arcAngle))
	pts = append(pts, c.Points...)
	if arcAngle > 0 {
		pts = append(pts, Arc(c.Radius, arcPoints, c.Center, 1.5*math.Pi+c.Angle, arcAngle)...)
	}
	end := mirror45(c.Points)
	end = translate(end, r2.Sub(endStart, end[0]))
	if d2.EqualWithin(end[0], pts[len(pts)-1], tolerance) {
		end = end[1:]
	}
	return append(pts, end...), arcAngle
}

// ClothoidRectangle is a rectangle whose corners are clothoid corners.
type ClothoidRectangle struct {
	// Points is the counter-clockwise outline centered on the origin.
	Points d2.Set
	// ArcAngle is the arc angle of each corner.
	ArcAngle float64
	// CornerWidth is the width of an unscaled corner.
	CornerWidth float64
	// CornerScale is the factor the corners were shrunk by to fit.
	CornerScale float64
}

// NewClothoidRectangle returns a w by h rectangle with ClothoidArcCorner
// corners. Corners wider than half the shorter side are scaled down to fit.
func NewClothoidRectangle(a, length float64, n, arcPoints int, w, h float64) ClothoidRectangle {
	if w <= 0 || h <= 0 {
		panic("rectangle size <= 0")
	}
	corner, arc := ClothoidArcCorner(a, length, n, arcPoints)
	r := ClothoidRectangle{ArcAngle: arc, CornerScale: 1}
	r.CornerWidth = corner[len(corner)-1].X
	if lim := math.Min(w/2, h/2); r.CornerWidth > lim {
		r.CornerScale = lim / r.CornerWidth
		for i := range corner {
			corner[i] = r2.Scale(r.CornerScale, corner[i])
		}
	}
	last := corner[len(corner)-1]
	sw := w - 2*last.X
	sh := h - 2*last.Y
	top := 2*last.Y + sh
	pts := make(d2.Set, 0, 4*len(corner))
	for _, v := range corner {
		pts = append(pts, r2.Vec{X: v.X + sw/2, Y: v.Y})
	}
	for i := len(corner) - 1; i >= 0; i-- {
		v := corner[i]
		pts = append(pts, r2.Vec{X: v.X + sw/2, Y: -v.Y + top})
	}
	for _, v := range corner {
		pts = append(pts, r2.Vec{X: -v.X - sw/2, Y: -v.Y + top})
	}
	for i := len(corner) - 1; i >= 0; i-- {
		v := corner[i]
		pts = append(pts, r2.Vec{X: -v.X - sw/2, Y: v.Y})
	}
	r.Points = dedupe(translate(pts, r2.Vec{Y: -h / 2}), 1e-9)
	return r
}
