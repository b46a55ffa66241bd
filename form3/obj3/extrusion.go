package obj3

import (
	"fmt"
	"sort"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form2"
	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r3"
)

// AluminumExtrusionParms defines a T-slot aluminum extrusion standing on
// the XY plane and extruded along +Z.
type AluminumExtrusionParms struct {
	// Preset names the catalog profile Section was filled from.
	Preset  string              `yaml:"preset"`
	Section form2.ExtrusionSpec `yaml:"section"`
	Length  float64             `yaml:"length"`

	CenterHoleDiameter float64 `yaml:"center_hole_diameter"`
	// Corner holes are left out when CornerHoleDiameter is zero.
	CornerHoleDiameter float64 `yaml:"corner_hole_diameter"`
	CornerHoleSpace    float64 `yaml:"corner_hole_space"`
	HoleSegments       int     `yaml:"hole_segments"`

	BevelWidth    float64 `yaml:"bevel_width"`
	BevelSegments int     `yaml:"bevel_segments"`
}

// extrusionPreset fills in the section and holes of a catalog profile.
type extrusionPreset struct {
	base                   float64
	x, y                   int
	middleWall             float64
	slot, wide, core, bone float64
	center, corner, bevel  float64
}

var extrusionPresets = map[string]extrusionPreset{
	"2020": {base: 20, x: 1, y: 1, middleWall: 2, slot: 6, wide: 12, core: 8, bone: 1.5, center: 4.2, bevel: 1},
	"2040": {base: 20, x: 2, y: 1, middleWall: 2, slot: 6, wide: 12, core: 8, bone: 1.5, center: 4.2, bevel: 1},
	"2060": {base: 20, x: 3, y: 1, middleWall: 2, slot: 6, wide: 12, core: 8, bone: 1.5, center: 4.2, bevel: 1},
	"3030": {base: 30, x: 1, y: 1, middleWall: 2, slot: 8, wide: 16.5, core: 12, bone: 2, center: 6.8, corner: 4.2, bevel: 2},
	"3060": {base: 30, x: 2, y: 1, middleWall: 3, slot: 8, wide: 16.5, core: 12, bone: 2, center: 6.8, corner: 4.2, bevel: 2},
	"3090": {base: 30, x: 3, y: 1, middleWall: 3, slot: 8, wide: 16.5, core: 12, bone: 2, center: 6.8, corner: 4.2, bevel: 2},
	"6090": {base: 30, x: 3, y: 2, middleWall: 3, slot: 8, wide: 16.5, core: 12, bone: 2, center: 6.8, corner: 4.2, bevel: 2},
}

// ExtrusionPresets returns the catalog profile names in order.
func ExtrusionPresets() []string {
	names := make([]string, 0, len(extrusionPresets))
	for k := range extrusionPresets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AluminumExtrusionDefaults returns a 100mm 2020 extrusion.
func AluminumExtrusionDefaults() AluminumExtrusionParms {
	k := AluminumExtrusionParms{
		Length:          100,
		CornerHoleSpace: 23.2,
		HoleSegments:    16,
		BevelSegments:   5,
	}
	if err := k.SetPreset("2020"); err != nil {
		panic(err)
	}
	return k
}

// SetPreset copies the dimensions of a catalog profile such as "3060"
// into k. Length and segment counts are kept.
func (k *AluminumExtrusionParms) SetPreset(name string) error {
	p, ok := extrusionPresets[name]
	if !ok {
		return fmt.Errorf("unknown aluminum extrusion preset %q", name)
	}
	k.Preset = name
	k.Section = form2.ExtrusionSpec{
		Size:                p.base,
		XSlots:              p.x,
		YSlots:              p.y,
		SlotWidth:           p.slot,
		SlotWideWidth:       p.wide,
		CoreWidth:           p.core,
		WallThickness:       2,
		MiddleWallThickness: p.middleWall,
		XBoneThickness:      p.bone,
	}
	k.CenterHoleDiameter = p.center
	k.CornerHoleDiameter = p.corner
	k.BevelWidth = p.bevel
	return nil
}

// AluminumExtrusionName returns "Aluminum Extrusion 2040 100mm" style names.
func AluminumExtrusionName(k AluminumExtrusionParms) string {
	s := k.Section
	key := dim(s.Size*float64(s.YSlots)) + dim(s.Size*float64(s.XSlots))
	return pmesh.Name("Aluminum Extrusion", key+" "+dim(k.Length)+"mm")
}

// AluminumExtrusion returns the extruded profile with its center holes
// and, for 30 series profiles, corner holes cut along the whole length.
// The four outer corner edges carry full bevel weight.
func AluminumExtrusion(k AluminumExtrusionParms) (*pmesh.Part, error) {
	if k.Length <= 0 {
		return nil, invalid("length", "must be positive")
	}
	if k.HoleSegments < 3 {
		return nil, invalid("hole_segments", "need at least 3")
	}
	tiles, err := ExtrusionOutline(k)
	if err != nil {
		return nil, err
	}
	var m pmesh.Mesh
	for _, t := range tiles {
		m.Append(pmesh.Prism(t, 0, k.Length))
	}
	m.Weld(1e-4)
	m.RemoveInternalFaces()
	m.RecalcNormals()

	p := pmesh.NewPart(AluminumExtrusionName(k), pmesh.MeshSolid{M: m})
	p.Segments = k.HoleSegments
	hole := func(x, y, d float64) pmesh.Solid {
		return pmesh.CylinderSolid{
			Center: r3.Vec{X: x, Y: y, Z: k.Length / 2},
			Axis:   pmesh.AxisZ,
			Height: 2.1 * k.Length,
			Radius: d / 2,
		}
	}
	if k.CenterHoleDiameter > 0 {
		for _, c := range k.Section.CellCenters() {
			p.Cut(hole(c.X, c.Y, k.CenterHoleDiameter))
		}
	}
	if k.CornerHoleDiameter > 0 {
		for _, c := range k.Section.CornerHoles(k.CornerHoleSpace) {
			p.Cut(hole(c.X, c.Y, k.CornerHoleDiameter))
		}
	}
	if k.BevelWidth > 0 {
		corners := k.Section.OuterCorners()
		p.Bevel = pmesh.Bevel{
			Width:    k.BevelWidth,
			Segments: k.BevelSegments,
			Weights: m.TagEdges(1, func(e pmesh.Edge) bool {
				for _, c := range corners {
					if m.EdgeAtXY(e, c.X, c.Y, 1e-3) {
						return true
					}
				}
				return false
			}),
		}
	}
	return p, nil
}

// ExtrusionOutline returns the cross-section of k as the tiles that
// together cover it, before any hole is cut.
func ExtrusionOutline(k AluminumExtrusionParms) ([]d2.Set, error) {
	tiles, err := form2.ExtrusionSection(k.Section)
	if err != nil {
		return nil, invalid("section", "%v", err)
	}
	return tiles, nil
}
