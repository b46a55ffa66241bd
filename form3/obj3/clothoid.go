package obj3

import (
	"fmt"
	"math"
	"strings"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form2"
	"github.com/romly/pmesh/internal/d2"
)

// ClothoidMethod selects which two of radius R, length L and clothoid
// parameter A define a clothoid. The third follows from A² = R·L.
type ClothoidMethod string

const (
	ByRadiusLength ClothoidMethod = "R_and_L"
	ByLengthParam  ClothoidMethod = "L_and_A"
	ByRadiusParam  ClothoidMethod = "R_and_A"
)

// ClothoidSpec holds the clothoid elements. Only the two named by Method
// are read.
type ClothoidSpec struct {
	Method ClothoidMethod `yaml:"method"`
	Radius float64        `yaml:"radius"`
	Length float64        `yaml:"length"`
	Param  float64        `yaml:"param"`
}

// Resolve fills in the element not named by Method.
func (c ClothoidSpec) Resolve() (ClothoidSpec, error) {
	switch c.Method {
	case ByRadiusLength, "":
		if c.Radius <= 0 || c.Length <= 0 {
			return c, invalid("radius", "radius and length must be positive")
		}
		c.Param = math.Sqrt(c.Radius * c.Length)
	case ByLengthParam:
		if c.Param <= 0 || c.Length <= 0 {
			return c, invalid("param", "parameter and length must be positive")
		}
		c.Radius = c.Param * c.Param / c.Length
	case ByRadiusParam:
		if c.Param <= 0 || c.Radius <= 0 {
			return c, invalid("param", "parameter and radius must be positive")
		}
		c.Length = c.Param * c.Param / c.Radius
	default:
		return c, invalid("method", "unknown clothoid method %q", c.Method)
	}
	return c, nil
}

// ClothoidCurveParms defines an open clothoid starting at the origin
// along +X.
type ClothoidCurveParms struct {
	Spec     ClothoidSpec `yaml:"spec"`
	Vertices int          `yaml:"vertices"`
}

// ClothoidCurveDefaults returns R = 1, L = 10 sampled at 64 points.
func ClothoidCurveDefaults() ClothoidCurveParms {
	return ClothoidCurveParms{
		Spec:     ClothoidSpec{Method: ByRadiusLength, Radius: 1, Length: 10, Param: 1},
		Vertices: 64,
	}
}

// ClothoidCurveName returns "Clothoid Curve A3.162" style names.
func ClothoidCurveName(c ClothoidSpec) string {
	return pmesh.Name("Clothoid Curve", "A"+dim(c.Param))
}

// ClothoidCurve returns the sampled curve. It is a path and not a solid;
// export it as a profile.
func ClothoidCurve(k ClothoidCurveParms) (form2.ClothoidCurve, error) {
	spec, err := k.Spec.Resolve()
	if err != nil {
		return form2.ClothoidCurve{}, err
	}
	if k.Vertices < 3 {
		return form2.ClothoidCurve{}, invalid("vertices", "need at least 3")
	}
	a := math.Sqrt(spec.Radius * spec.Length)
	c, err := form2.Clothoid(a, form2.ClothoidTMax(a, spec.Length), k.Vertices)
	if err != nil {
		return c, fmt.Errorf("clothoid curve: %w", err)
	}
	return c, nil
}

// ClothoidPlateParms defines a flat plate whose outline is a rectangle
// with clothoid-arc-clothoid corners.
type ClothoidPlateParms struct {
	Spec        ClothoidSpec `yaml:"spec"`
	Width       float64      `yaml:"width"`
	Height      float64      `yaml:"height"`
	Thickness   float64      `yaml:"thickness"`
	Vertices    int          `yaml:"vertices"`
	ArcVertices int          `yaml:"arc_vertices"`
}

// ClothoidPlateDefaults returns a 2 by 2 plate 0.1 thick.
func ClothoidPlateDefaults() ClothoidPlateParms {
	return ClothoidPlateParms{
		Spec:        ClothoidSpec{Method: ByRadiusLength, Radius: 2, Length: 3.4, Param: 1},
		Width:       2,
		Height:      2,
		Thickness:   0.1,
		Vertices:    12,
		ArcVertices: 16,
	}
}

// ClothoidPlateName returns "Clothoid Corner Rectangle 2x2" style names.
func ClothoidPlateName(k ClothoidPlateParms) string {
	return pmesh.Name("Clothoid Corner Rectangle", dim(k.Width)+"x"+dim(k.Height))
}

// ClothoidOutline returns the plate outline, centered on the origin and
// counter-clockwise, together with the corner construction data.
func ClothoidOutline(k ClothoidPlateParms) (form2.ClothoidRectangle, error) {
	spec, err := k.Spec.Resolve()
	if err != nil {
		return form2.ClothoidRectangle{}, err
	}
	switch {
	case k.Width <= 0 || k.Height <= 0:
		return form2.ClothoidRectangle{}, invalid("width", "rectangle size must be positive")
	case k.Vertices < 2 || k.ArcVertices < 3:
		return form2.ClothoidRectangle{}, invalid("vertices", "need 2 curve and 3 arc vertices")
	}
	r, err := form2.NewClothoidRectangle(spec.Param, spec.Length, k.Vertices, k.ArcVertices, k.Width, k.Height)
	if err != nil {
		return r, fmt.Errorf("clothoid outline: %w", err)
	}
	return r, nil
}

// ClothoidPlate returns the outline extruded upward by Thickness. A zero
// thickness gives a single face.
func ClothoidPlate(k ClothoidPlateParms) (*pmesh.Part, error) {
	if k.Thickness < 0 {
		return nil, invalid("thickness", "must not be negative")
	}
	r, err := ClothoidOutline(k)
	if err != nil {
		return nil, err
	}
	m := flatOrPrism(dropClosing(r.Points), 0, k.Thickness)
	return pmesh.NewPart(ClothoidPlateName(k), pmesh.MeshSolid{M: m}), nil
}

// dropClosing removes points repeating their predecessor and a last point
// repeating the first, which the corner construction leaves where arcs
// and straight edges meet.
func dropClosing(s d2.Set) d2.Set {
	out := make(d2.Set, 0, len(s))
	for _, p := range s {
		if len(out) > 0 && d2.EqualWithin(p, out[len(out)-1], 1e-9) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && d2.EqualWithin(out[0], out[len(out)-1], 1e-9) {
		out = out[:len(out)-1]
	}
	return out
}

// ParseClothoidMethod accepts "RL", "R&L" or "R_and_L" and the like.
func ParseClothoidMethod(s string) (ClothoidMethod, error) {
	key := strings.NewReplacer("_and_", "", "&", "", " ", "").Replace(strings.ToUpper(s))
	switch key {
	case "RL", "LR":
		return ByRadiusLength, nil
	case "LA", "AL":
		return ByLengthParam, nil
	case "RA", "AR":
		return ByRadiusParam, nil
	}
	return "", fmt.Errorf("unknown clothoid method %q", s)
}
