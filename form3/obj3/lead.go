package obj3

import (
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Trapezoidal lead screws and their flanged nuts.

// LeadScrewParms defines a multi-start trapezoidal lead screw standing on
// the XY plane.
type LeadScrewParms struct {
	Length        float64 `yaml:"length"`
	MajorDiameter float64 `yaml:"major_diameter"`
	MinorDiameter float64 `yaml:"minor_diameter"`
	Pitch         float64 `yaml:"pitch"`
	Starts        int     `yaml:"starts"`
	ThreadAngle   float64 `yaml:"thread_angle"` // radians
	Segments      int     `yaml:"segments"`
}

// LeadScrewDefaults returns the common 3D printer T8 screw: 8mm, pitch 2,
// four starts for an 8mm lead.
func LeadScrewDefaults() LeadScrewParms {
	return LeadScrewParms{
		Length:        100,
		MajorDiameter: 8,
		MinorDiameter: 6.2,
		Pitch:         2,
		Starts:        4,
		ThreadAngle:   pmesh.DtoR(30),
		Segments:      32,
	}
}

// LeadScrewName returns "Lead Screw T8 100mm" style names.
func LeadScrewName(k LeadScrewParms) string {
	return pmesh.Name("Lead Screw", "T"+dim(k.MajorDiameter)+" "+dim(k.Length)+"mm")
}

// LeadScrew returns a plain rod with the helical teeth of every start cut
// away.
func LeadScrew(k LeadScrewParms) (*pmesh.Part, error) {
	switch {
	case k.Length <= 0:
		return nil, invalid("length", "must be positive")
	case k.MinorDiameter <= 0 || k.MinorDiameter >= k.MajorDiameter:
		return nil, invalid("minor_diameter", "must lie in (0, major_diameter)")
	case k.Segments < 3:
		return nil, invalid("segments", "need at least 3")
	}
	cutter, err := form3.LeadScrewCutter(k.MajorDiameter, k.MinorDiameter, k.Pitch, k.Starts, k.ThreadAngle, k.Length, k.Segments)
	if err != nil {
		return nil, invalid("pitch", "%v", err)
	}
	p := pmesh.NewPart(LeadScrewName(k), pmesh.CylinderSolid{
		Center: r3.Vec{Z: k.Length / 2},
		Axis:   pmesh.AxisZ,
		Height: k.Length,
		Radius: k.MajorDiameter / 2,
	})
	p.Segments = k.Segments
	p.Cut(pmesh.MeshSolid{M: cutter})
	return p, nil
}

// LeadNutParms defines a flanged lead screw nut. The flange bottom lies on
// the XY plane and the shaft hangs below it.
type LeadNutParms struct {
	HoleDiameter   float64 `yaml:"hole_diameter"`
	PlateDiameter  float64 `yaml:"plate_diameter"`
	PlateThickness float64 `yaml:"plate_thickness"`
	// PlateWidth flattens the flange to this width across X. Zero keeps
	// it round.
	PlateWidth       float64 `yaml:"plate_width"`
	ShaftDiameter    float64 `yaml:"shaft_diameter"`
	ShaftLengthAbove float64 `yaml:"shaft_length_above"`
	ShaftLengthBelow float64 `yaml:"shaft_length_below"`

	ScrewHolesPCD        float64 `yaml:"screw_holes_pcd"`
	ScrewHolesDiameter   float64 `yaml:"screw_holes_diameter"`
	ScrewHoleCount       int     `yaml:"screw_hole_count"` // per side
	ScrewHoleAngularStep float64 `yaml:"screw_hole_angle"` // radians

	BevelWidth         float64 `yaml:"bevel_width"`
	Segments           int     `yaml:"segments"`
	ScrewHolesSegments int     `yaml:"screw_holes_segments"`
}

// LeadNutDefaults returns the brass T8 nut.
func LeadNutDefaults() LeadNutParms {
	return LeadNutParms{
		HoleDiameter:         8,
		PlateDiameter:        22,
		PlateThickness:       3.5,
		ShaftDiameter:        10,
		ShaftLengthAbove:     1.5,
		ShaftLengthBelow:     10,
		ScrewHolesPCD:        16,
		ScrewHolesDiameter:   3.5,
		ScrewHoleCount:       2,
		ScrewHoleAngularStep: math.Pi / 2,
		BevelWidth:           0.1,
		Segments:             32,
		ScrewHolesSegments:   16,
	}
}

// LeadNutName returns "Lead Nut T8" style names.
func LeadNutName(k LeadNutParms) string { return pmesh.Name("Lead Nut", "T"+dim(k.HoleDiameter)) }

// LeadNut returns the nut with its bore, optional flat sides and the
// screw holes on the pitch circle. Horizontal rims carry full bevel weight.
func LeadNut(k LeadNutParms) (*pmesh.Part, error) {
	switch {
	case k.HoleDiameter <= 0 || k.HoleDiameter >= k.ShaftDiameter:
		return nil, invalid("hole_diameter", "the hole must be narrower than the shaft")
	case k.Segments < 3:
		return nil, invalid("segments", "need at least 3")
	case k.PlateWidth > 0 && k.PlateWidth <= k.HoleDiameter:
		return nil, invalid("plate_width", "the flats cut into the bore")
	case k.ScrewHoleCount > 0 && (k.ScrewHolesDiameter <= 0 || k.ScrewHolesSegments < 3):
		return nil, invalid("screw_holes_diameter", "screw holes need a diameter and 3 or more segments")
	}
	profile := leadNutProfile(k)
	if len(profile) < 3 {
		return nil, invalid("shaft_length_below", "the nut has no height")
	}
	body := pmesh.Revolve(profile, k.Segments)
	p := pmesh.NewPart(LeadNutName(k), pmesh.MeshSolid{M: body})
	p.Segments = k.Segments
	if k.BevelWidth > 0 {
		ef := body.EdgeFaces()
		sharp := math.Cos(pmesh.DtoR(0.1))
		bore := k.HoleDiameter/2 + 1e-3
		p.Bevel = pmesh.Bevel{
			Width:    k.BevelWidth,
			Segments: 1,
			Weights: body.TagEdges(1, func(e pmesh.Edge) bool {
				a, b := body.Vertices[e.A], body.Vertices[e.B]
				if math.Abs(a.Z-b.Z) > 0.01 || math.Hypot(a.X, a.Y) < bore {
					return false
				}
				dot, ok := body.LinkedFaceDot(ef, e)
				return ok && dot < sharp
			}),
		}
	}
	if k.PlateWidth > 0 && k.PlateThickness > 0 {
		x1, x2 := k.PlateWidth/2, k.PlateDiameter
		y1, z1, z2 := k.PlateDiameter, k.PlateThickness+0.5, -0.5
		p.Cut(cornerBox(r3.Vec{X: -x1, Y: y1, Z: z1}, r3.Vec{X: -x2, Y: -y1, Z: z2}))
		p.Cut(cornerBox(r3.Vec{X: x1, Y: y1, Z: z1}, r3.Vec{X: x2, Y: -y1, Z: z2}))
	}
	if k.ScrewHoleCount > 0 && k.PlateThickness > 0 {
		h := k.PlateThickness + 1
		hole := segmented(pmesh.CylinderSolid{
			Center: r3.Vec{Z: k.PlateThickness / 2},
			Axis:   pmesh.AxisZ,
			Height: h,
			Radius: k.ScrewHolesDiameter / 2,
		}, k.ScrewHolesSegments)
		var holes []pmesh.Solid
		for _, c := range k.screwHoleCenters() {
			holes = append(holes, pmesh.Move(hole, c))
		}
		p.Cut(pmesh.GroupSolid{Members: holes})
	}
	return p, nil
}

// screwHoleCenters returns pairs of opposite holes on the pitch circle,
// ScrewHoleCount per side, spread symmetrically about -Y.
func (k LeadNutParms) screwHoleCenters() []r3.Vec {
	first := r3.Vec{Y: -k.ScrewHolesPCD / 2}
	a := k.ScrewHoleAngularStep * float64(k.ScrewHoleCount-1) / 2
	v := pmesh.RotatedVector(first, -a, pmesh.AxisZ)
	centers := []r3.Vec{v}
	v = pmesh.RotatedVector(v, math.Pi, pmesh.AxisZ)
	centers = append(centers, v)
	for i := 0; i < k.ScrewHoleCount-1; i++ {
		v = pmesh.RotatedVector(v, k.ScrewHoleAngularStep, pmesh.AxisZ)
		centers = append(centers, v)
		v = pmesh.RotatedVector(v, math.Pi, pmesh.AxisZ)
		centers = append(centers, v)
	}
	return centers
}

// leadNutProfile returns the half section of flange, shaft and bore as a
// closed loop in the XZ plane.
func leadNutProfile(k LeadNutParms) []r3.Vec {
	rh, rs := k.HoleDiameter/2, k.ShaftDiameter/2
	t := k.PlateThickness
	bottom := -k.ShaftLengthBelow
	top := t + k.ShaftLengthAbove
	if math.Abs(k.ShaftLengthAbove) < 0.01 {
		top = t / 2
	}
	plate := t > 0 && k.PlateDiameter/2 > rs
	if plate {
		top = math.Max(top, t)
	}
	if top-bottom <= 0 {
		return nil
	}
	pts := []r3.Vec{{X: rh, Z: bottom}, {X: rs, Z: bottom}}
	if plate {
		pts = append(pts, r3.Vec{X: rs, Z: 0}, r3.Vec{X: k.PlateDiameter / 2, Z: 0}, r3.Vec{X: k.PlateDiameter / 2, Z: t})
		if top > t {
			pts = append(pts, r3.Vec{X: rs, Z: t})
		}
	}
	pts = append(pts, r3.Vec{X: rs, Z: top}, r3.Vec{X: rh, Z: top})
	return dedupe(pts)
}
