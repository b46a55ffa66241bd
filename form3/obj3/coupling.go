package obj3

import (
	"fmt"
	"math"
	"sort"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shaft couplings

// CouplingParms defines a tubular shaft coupling standing on the XY plane.
// D1 is the bore at the top and D2 the bore at the bottom.
type CouplingParms struct {
	Diameter   float64 `yaml:"diameter"`
	Length     float64 `yaml:"length"`
	D1         float64 `yaml:"d1"`
	D2         float64 `yaml:"d2"`
	HoleLength float64 `yaml:"hole_length"`
	// MiddleClearance widens the bore between the two shaft ends.
	MiddleClearance float64 `yaml:"middle_clearance"`

	SetScrew            bool        `yaml:"set_screw"`
	SetScrewSize        thread.Size `yaml:"set_screw_size"`
	SetScrewPosition    float64     `yaml:"set_screw_position"`
	SetScrewAngle       float64     `yaml:"set_screw_angle"` // radians
	SetScrewDiameter    float64     `yaml:"set_screw_diameter"`
	SetScrewThread      bool        `yaml:"set_screw_thread"`
	SetScrewPitch       float64     `yaml:"set_screw_pitch"`
	SetScrewThreadDepth float64     `yaml:"set_screw_thread_depth"`

	Slit          bool    `yaml:"slit"`
	SlitThickness float64 `yaml:"slit_thickness"`
	SlitCount     int     `yaml:"slit_count"`
	SlitInterval  float64 `yaml:"slit_interval"`

	Bevel            float64 `yaml:"bevel"`
	Segments         int     `yaml:"segments"`
	SetScrewSegments int     `yaml:"set_screw_segments"`
	SlitSegments     int     `yaml:"slit_segments"`
}

// CouplingDefaults returns a 5mm to 8mm coupling with M3 set screws and
// a five turn helical slit.
func CouplingDefaults() CouplingParms {
	k := CouplingParms{
		Diameter:         19,
		Length:           25,
		D1:               5,
		D2:               8,
		HoleLength:       7,
		MiddleClearance:  0.5,
		SetScrew:         true,
		SetScrewPosition: 3,
		SetScrewAngle:    math.Pi / 2,
		Slit:             true,
		SlitThickness:    0.3,
		SlitCount:        5,
		SlitInterval:     2,
		Bevel:            0.5,
		Segments:         48,
		SetScrewSegments: 16,
		SlitSegments:     48,
	}
	if err := k.SetSetScrewSize(thread.M3); err != nil {
		panic(err)
	}
	return k
}

// SetSetScrewSize copies the set screw dimensions of size into k.
func (k *CouplingParms) SetSetScrewSize(size thread.Size) error {
	s, err := thread.Lookup(size)
	if err != nil {
		return err
	}
	k.SetScrewSize = size
	k.SetScrewDiameter, k.SetScrewPitch = s.Diameter, s.Pitch
	k.SetScrewThreadDepth = s.ThreadDepth()
	return nil
}

// CouplingName returns "Coupling D19L25" style names.
func CouplingName(k CouplingParms) string {
	return pmesh.Name("Coupling", "D"+dim(k.Diameter)+"L"+dim(k.Length))
}

// Coupling returns the coupling body with its bores, set screw holes and
// helical slit. The rims at both ends carry full bevel weight.
func Coupling(k CouplingParms) (*pmesh.Part, error) {
	switch {
	case k.Diameter <= 0 || k.Length <= 0:
		return nil, invalid("diameter", "diameter and length must be positive")
	case k.D1 <= 0 || k.D2 <= 0:
		return nil, invalid("d1", "bores must be positive")
	case k.D1 >= k.Diameter || k.D2 >= k.Diameter || math.Max(k.D1, k.D2)+k.MiddleClearance >= k.Diameter:
		return nil, invalid("d1", "the hole diameter must be smaller than the coupling diameter")
	case k.HoleLength <= 0 || k.HoleLength > k.Length:
		return nil, invalid("hole_length", "must lie in (0, length]")
	case k.Segments < 3:
		return nil, invalid("segments", "need at least 3")
	case k.SetScrew && (k.SetScrewDiameter <= 0 || k.SetScrewSegments < 3):
		return nil, invalid("set_screw_diameter", "set screw holes need a diameter and 3 or more segments")
	case k.Slit && k.SlitCount > 0 && (k.SlitThickness <= 0 || k.SlitThickness >= k.SlitInterval):
		return nil, invalid("slit_thickness", "must lie in (0, slit_interval)")
	}
	body := pmesh.Revolve(couplingProfile(k), k.Segments)
	p := pmesh.NewPart(CouplingName(k), pmesh.MeshSolid{M: body})
	p.Segments = k.Segments
	if k.Bevel > 0 {
		ef := body.EdgeFaces()
		sharp := math.Cos(pmesh.DtoR(0.1))
		p.Bevel = pmesh.Bevel{
			Width:    k.Bevel,
			Segments: 1,
			Weights: body.TagEdges(1, func(e pmesh.Edge) bool {
				if !body.EdgeAtZ(e, 0, 0.01) && !body.EdgeAtZ(e, k.Length, 0.01) {
					return false
				}
				dot, ok := body.LinkedFaceDot(ef, e)
				return ok && dot < sharp
			}),
		}
	}
	if k.SetScrew {
		tool, err := k.setScrewTool()
		if err != nil {
			return nil, err
		}
		for _, z := range []float64{k.SetScrewPosition, k.Length - k.SetScrewPosition} {
			p.Cut(pmesh.Move(tool, r3.Vec{Z: z}))
			if math.Abs(k.SetScrewAngle) > 0.01 {
				p.Cut(pmesh.Placed{S: tool, Angle: k.SetScrewAngle, Axis: pmesh.AxisZ, Offset: r3.Vec{Z: z}})
			}
		}
	}
	if k.Slit && k.SlitCount > 0 {
		slit, err := form3.HelicalSlit(k.Diameter, k.Length, k.SlitThickness, k.SlitInterval, float64(k.SlitCount), k.SlitSegments)
		if err != nil {
			return nil, fmt.Errorf("coupling slit: %w", err)
		}
		p.Cut(pmesh.MeshSolid{M: slit})
	}
	return p, nil
}

// couplingProfile returns the half section of the coupling as a closed
// loop in the XZ plane: the outer wall and the stepped bore.
func couplingProfile(k CouplingParms) []r3.Vec {
	type bore struct{ r, z0, z1 float64 }
	h, l := k.HoleLength, k.Length
	bores := []bore{{k.D2 / 2, 0, h}, {k.D1 / 2, l - h, l}}
	if l-2*h > 0 {
		bores = append(bores, bore{(math.Max(k.D1, k.D2) + k.MiddleClearance) / 2, h, l - h})
	}
	zs := []float64{0, l}
	for _, b := range bores {
		zs = append(zs, b.z0, b.z1)
	}
	sort.Float64s(zs)
	R := k.Diameter / 2
	profile := []r3.Vec{{X: R, Z: 0}, {X: R, Z: l}}
	radius := func(z float64) float64 {
		var r float64
		for _, b := range bores {
			if z > b.z0 && z < b.z1 {
				r = math.Max(r, b.r)
			}
		}
		return r
	}
	// Walk the bore from the top down, one vertex pair per radius step.
	prev := -1.0
	for i := len(zs) - 1; i > 0; i-- {
		z0, z1 := zs[i-1], zs[i]
		if z1-z0 < 1e-9 {
			continue
		}
		r := radius((z0 + z1) / 2)
		if r != prev {
			profile = append(profile, r3.Vec{X: r, Z: z1})
		}
		profile = append(profile, r3.Vec{X: r, Z: z0})
		prev = r
	}
	return dedupe(profile)
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []r3.Vec) []r3.Vec {
	out := pts[:0]
	for i, p := range pts {
		if i > 0 && r3.Norm(r3.Sub(p, out[len(out)-1])) < 1e-9 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// setScrewTool returns a set screw hole running from the axis out
// along -Y.
func (k CouplingParms) setScrewTool() (pmesh.Solid, error) {
	l := 2 * k.Diameter
	if !k.SetScrewThread {
		return pmesh.CylinderSolid{
			Center: r3.Vec{Y: -l / 2},
			Axis:   pmesh.AxisY,
			Height: l,
			Radius: k.SetScrewDiameter / 2,
		}, nil
	}
	rod, err := form3.ThreadedCylinder(form3.ThreadParms{
		Diameter:      k.SetScrewDiameter,
		Length:        l,
		Pitch:         k.SetScrewPitch,
		Starts:        1,
		Depth:         k.SetScrewThreadDepth,
		Segments:      k.SetScrewSegments,
		BevelSegments: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("set screw thread: %w", err)
	}
	t := pmesh.NewPart("set screw", pmesh.MeshSolid{M: rod})
	t.Keep(slab(k.SetScrewDiameter, -l, 0))
	t.Segments = k.SetScrewSegments
	return pmesh.Placed{S: t, Angle: -math.Pi / 2, Axis: pmesh.AxisX}, nil
}
