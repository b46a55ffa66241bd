package obj3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
)

// Miniature linear guides. Rails run along +Z from the origin with their
// mounting face toward -Y and the ball side on the XZ plane. Blocks are
// centered on the origin and ride on the rail.

// LinearGuideRailParms defines a linear guide rail.
type LinearGuideRailParms struct {
	Size              thread.RailSize `yaml:"size"`
	Width             float64         `yaml:"width"`
	Height            float64         `yaml:"height"`
	OuterHoleDiameter float64         `yaml:"outer_hole_diameter"`
	OuterHoleDepth    float64         `yaml:"outer_hole_depth"`
	InnerHoleDiameter float64         `yaml:"inner_hole_diameter"`
	HolePitch         float64         `yaml:"hole_pitch"`

	Length          float64 `yaml:"length"`
	FirstHoleOffset float64 `yaml:"first_hole_offset"`
	HoleSegments    int     `yaml:"hole_segments"`
	// The ball grooves along both rail sides.
	SlitDiameter float64 `yaml:"slit_diameter"`
	SlitOffset   float64 `yaml:"slit_offset"`
	SlitSegments int     `yaml:"slit_segments"`
	BevelWidth   float64 `yaml:"bevel_width"`
}

// LinearGuideRailDefaults returns a 100mm MGN9 rail.
func LinearGuideRailDefaults() LinearGuideRailParms {
	k := LinearGuideRailParms{
		Length:          100,
		FirstHoleOffset: 5,
		HoleSegments:    32,
		SlitDiameter:    1.5,
		SlitOffset:      2,
		SlitSegments:    24,
		BevelWidth:      0.3,
	}
	if err := k.SetSize("mgn09"); err != nil {
		panic(err)
	}
	return k
}

// SetSize copies the catalog dimensions of size into k.
func (k *LinearGuideRailParms) SetSize(size thread.RailSize) error {
	s, err := thread.LookupRail(size)
	if err != nil {
		return err
	}
	k.Size = size
	k.Width, k.Height = s.Width, s.Height
	k.OuterHoleDiameter, k.OuterHoleDepth = s.OuterHoleDiameter, s.OuterHoleDepth
	k.InnerHoleDiameter, k.HolePitch = s.InnerHoleDiameter, s.HolePitch
	return nil
}

func (k LinearGuideRailParms) spec() thread.RailSpec {
	return thread.RailSpec{
		Width:             k.Width,
		Height:            k.Height,
		OuterHoleDiameter: k.OuterHoleDiameter,
		OuterHoleDepth:    k.OuterHoleDepth,
		InnerHoleDiameter: k.InnerHoleDiameter,
		HolePitch:         k.HolePitch,
	}
}

// LinearGuideRailName returns "Linear Guide Rail MGN9 100mm" when the
// dimensions match a catalog rail.
func LinearGuideRailName(k LinearGuideRailParms) string {
	name := "Linear Guide Rail"
	if size, ok := thread.MatchRail(k.spec()); ok {
		name = pmesh.Name(name, size.Label())
	}
	return pmesh.Name(name, dim(k.Length)+"mm")
}

// LinearGuideRail returns a rail with counterbored mounting holes every
// HolePitch starting at FirstHoleOffset.
func LinearGuideRail(k LinearGuideRailParms) (*pmesh.Part, error) {
	switch {
	case k.Width <= 0 || k.Height <= 0:
		return nil, invalid("width", "rail width and height must be positive")
	case k.Length <= 0:
		return nil, invalid("length", "must be positive")
	case k.HolePitch <= 0:
		return nil, invalid("hole_pitch", "must be positive")
	case k.InnerHoleDiameter >= k.Width || k.OuterHoleDiameter >= k.Width:
		return nil, invalid("outer_hole_diameter", "holes must be narrower than the rail")
	case k.HoleSegments < 3 || k.SlitSegments < 3:
		return nil, invalid("hole_segments", "need at least 3")
	}
	w, h, l := k.Width, k.Height, k.Length
	box := pmesh.BoxMesh(r3.Vec{X: w, Y: h, Z: l}, r3.Vec{Y: -h / 2, Z: l / 2})
	p := pmesh.NewPart(LinearGuideRailName(k), pmesh.MeshSolid{M: box})
	p.Segments = k.HoleSegments
	if k.BevelWidth > 0 {
		p.Bevel = pmesh.Bevel{
			Width:    k.BevelWidth,
			Segments: 1,
			Weights: box.TagEdges(1, func(e pmesh.Edge) bool {
				return !box.IsEdgeAlongAxis(e, pmesh.AxisZ, 1e-6)
			}),
		}
	}
	var holes []pmesh.Solid
	for z := k.FirstHoleOffset; z <= l; z += k.HolePitch {
		holes = append(holes,
			pmesh.CylinderSolid{
				Center: r3.Vec{Y: -h, Z: z},
				Axis:   pmesh.AxisY,
				Height: 2 * k.OuterHoleDepth,
				Radius: k.OuterHoleDiameter / 2,
			},
			pmesh.CylinderSolid{
				Center: r3.Vec{Y: 0.1 - (h-0.2)/2, Z: z},
				Axis:   pmesh.AxisY,
				Height: h - 0.2,
				Radius: k.InnerHoleDiameter / 2,
			})
	}
	if len(holes) > 0 {
		p.Cut(pmesh.GroupSolid{Members: holes})
	}
	if k.SlitDiameter > 0 {
		for _, x := range []float64{-w / 2, w / 2} {
			p.Cut(segmented(pmesh.CylinderSolid{
				Center: r3.Vec{X: x, Y: -h + k.SlitOffset, Z: l / 2},
				Axis:   pmesh.AxisZ,
				Height: l + 0.2,
				Radius: k.SlitDiameter / 2,
			}, k.SlitSegments))
		}
	}
	return p, nil
}

// LinearGuideBlockParms defines a linear guide block.
type LinearGuideBlockParms struct {
	Size         thread.BlockSize `yaml:"size"`
	Width        float64          `yaml:"width"`
	Length       float64          `yaml:"length"`
	MiddleLength float64          `yaml:"middle_length"`
	Height       float64          `yaml:"height"`
	Lift         float64          `yaml:"lift"`
	SideWidth    float64          `yaml:"side_width"`

	ScrewHoleDiameter float64 `yaml:"screw_hole_diameter"`
	ScrewDepth        float64 `yaml:"screw_depth"`
	ScrewB            float64 `yaml:"screw_b"`
	ScrewC            float64 `yaml:"screw_c"`
	Threading         bool    `yaml:"threading"`
	ScrewPitch        float64 `yaml:"screw_pitch"`
	ScrewThreadDepth  float64 `yaml:"screw_thread_depth"`

	GreaseHoleDiameter float64 `yaml:"grease_hole_diameter"`
	GreaseHolePosition float64 `yaml:"grease_hole_position"`
	RailHeight         float64 `yaml:"rail_height"`

	RailClearance    float64 `yaml:"rail_clearance"`
	EndSealThickness float64 `yaml:"end_seal_thickness"`
	BevelWidth       float64 `yaml:"bevel_width"`
	HoleSegments     int     `yaml:"hole_segments"`
}

// LinearGuideBlockDefaults returns an MGN9C block.
func LinearGuideBlockDefaults() LinearGuideBlockParms {
	k := LinearGuideBlockParms{
		RailClearance:    0.2,
		EndSealThickness: 1,
		BevelWidth:       0.5,
		HoleSegments:     32,
	}
	if err := k.SetSize("mgn09c"); err != nil {
		panic(err)
	}
	return k
}

// SetSize copies the catalog dimensions of size, its screw and its rail into k.
func (k *LinearGuideBlockParms) SetSize(size thread.BlockSize) error {
	s, err := thread.LookupBlock(size)
	if err != nil {
		return err
	}
	screw, err := thread.Lookup(s.Screw)
	if err != nil {
		return fmt.Errorf("block %s: %w", size, err)
	}
	rail, err := thread.LookupRail(s.Rail)
	if err != nil {
		return fmt.Errorf("block %s: %w", size, err)
	}
	k.Size = size
	k.Width, k.Length, k.MiddleLength = s.Width, s.Length, s.MiddleLength
	k.Height, k.Lift, k.SideWidth = s.Height, s.Lift, s.SideWidth
	k.ScrewHoleDiameter, k.ScrewDepth = screw.Diameter, s.ScrewDepth
	k.ScrewPitch, k.ScrewThreadDepth = screw.Pitch, screw.ThreadDepth()
	k.ScrewB, k.ScrewC = s.ScrewB, s.ScrewC
	k.GreaseHoleDiameter, k.GreaseHolePosition = s.GreaseHole, s.GreaseHeight
	k.RailHeight = rail.Height
	return nil
}

func (k LinearGuideBlockParms) spec() thread.BlockSpec {
	return thread.BlockSpec{
		Width:        k.Width,
		Length:       k.Length,
		MiddleLength: k.MiddleLength,
		Height:       k.Height,
		Lift:         k.Lift,
		SideWidth:    k.SideWidth,
		ScrewDepth:   k.ScrewDepth,
		ScrewB:       k.ScrewB,
		ScrewC:       k.ScrewC,
		GreaseHole:   k.GreaseHoleDiameter,
		GreaseHeight: k.GreaseHolePosition,
	}
}

// LinearGuideBlockName returns "Linear Guide Block MGN9C" when the
// dimensions match a catalog block.
func LinearGuideBlockName(k LinearGuideBlockParms) string {
	if size, ok := thread.MatchBlock(k.spec(), k.RailHeight); ok {
		return pmesh.Name("Linear Guide Block", size.Label())
	}
	return "Linear Guide Block"
}

// sizeDiff shrinks the end caps and seals against the steel body.
const sizeDiff = 0.1

// LinearGuideBlock returns a block made of the steel body, two end caps
// and, when EndSealThickness is positive, two end seals. Every member is
// cut by the screw holes and the rail channel.
func LinearGuideBlock(k LinearGuideBlockParms) (*pmesh.Part, error) {
	switch {
	case k.Width <= 0 || k.Length <= 0 || k.Height <= 0:
		return nil, invalid("width", "block dimensions must be positive")
	case k.Lift >= k.Height:
		return nil, invalid("lift", "the block must be taller than its lift")
	case k.MiddleLength <= 0 || k.MiddleLength+2*k.EndSealThickness > k.Length:
		return nil, invalid("middle_length", "end caps and seals do not fit in the block length")
	case 2*k.SideWidth >= k.Width:
		return nil, invalid("side_width", "no room left for the rail")
	case k.ScrewHoleDiameter <= 0 || k.ScrewDepth <= 0:
		return nil, invalid("screw_hole_diameter", "screw holes must have a diameter and depth")
	case k.HoleSegments < 3:
		return nil, invalid("hole_segments", "need at least 3")
	}
	screws, err := k.screwHoles()
	if err != nil {
		return nil, err
	}
	rh := k.RailHeight + k.RailClearance
	rail := pmesh.BoxSolid{
		Center: r3.Vec{Y: -rh / 2},
		Size:   r3.Vec{X: k.Width - 2*k.SideWidth, Y: rh, Z: k.Length + 0.2},
	}
	finish := func(p *pmesh.Part) *pmesh.Part {
		p.Segments = k.HoleSegments
		for _, s := range screws {
			p.Cut(s)
		}
		p.Cut(rail)
		return p
	}

	h := k.Height - k.Lift
	body := finish(guideBlock(blockBox{width: k.Width, height: h, length: k.MiddleLength, lift: k.Lift, bevel: k.BevelWidth}))
	members := []pmesh.Solid{body}
	if k.EndSealThickness > 0 {
		seal := finish(guideBlock(blockBox{
			width:     k.Width - 2*sizeDiff,
			height:    h - sizeDiff,
			length:    k.Length,
			lift:      k.Lift,
			thickness: k.EndSealThickness,
			bevel:     2 * k.BevelWidth,
			graded:    true,
		}))
		if k.GreaseHoleDiameter > 0 {
			seal.Cut(pmesh.CylinderSolid{
				Center: r3.Vec{Y: -k.Height + k.GreaseHolePosition},
				Axis:   pmesh.AxisZ,
				Height: k.Length + 0.2,
				Radius: k.GreaseHoleDiameter / 2,
			})
		}
		members = append(members, seal)
	}
	endCapLength := k.Length - 2*k.EndSealThickness
	endCap := finish(guideBlock(blockBox{
		width:     k.Width - 2*sizeDiff,
		height:    h - sizeDiff,
		length:    endCapLength,
		lift:      k.Lift,
		thickness: (endCapLength - k.MiddleLength) / 2,
		bevel:     k.BevelWidth,
	}))
	members = append(members, endCap)
	p := pmesh.NewPart(LinearGuideBlockName(k), pmesh.GroupSolid{Members: members})
	p.Segments = k.HoleSegments
	return p, nil
}

// screwHoles returns the mounting hole cutters on the block top, in a
// 2x2, 2x1, 1x2 or single pattern depending on ScrewB and ScrewC.
func (k LinearGuideBlockParms) screwHoles() ([]pmesh.Solid, error) {
	y := -k.Height + k.ScrewDepth
	xs, zs := []float64{0}, []float64{0}
	if k.ScrewB > 0 {
		xs = []float64{-k.ScrewB / 2, k.ScrewB / 2}
	}
	if k.ScrewC > 0 {
		zs = []float64{k.ScrewC / 2, -k.ScrewC / 2}
	}
	l := 2 * k.ScrewDepth
	var tool pmesh.Solid = pmesh.CylinderSolid{
		Center: r3.Vec{Y: -l / 2},
		Axis:   pmesh.AxisY,
		Height: l,
		Radius: k.ScrewHoleDiameter / 2,
	}
	if k.Threading {
		rod, err := form3.ThreadedCylinder(form3.ThreadParms{
			Diameter:      k.ScrewHoleDiameter,
			Length:        l,
			Pitch:         k.ScrewPitch,
			Starts:        1,
			Depth:         k.ScrewThreadDepth,
			Segments:      k.HoleSegments,
			BevelSegments: 5,
		})
		if err != nil {
			return nil, fmt.Errorf("block screw thread: %w", err)
		}
		t := pmesh.NewPart("screw thread", pmesh.MeshSolid{M: rod})
		t.Keep(slab(k.ScrewHoleDiameter, -l, 0))
		// The rod hangs below z = 0; turn it to hang below y = 0.
		tool = pmesh.Placed{S: t, Angle: -math.Pi / 2, Axis: pmesh.AxisX}
	}
	var holes []pmesh.Solid
	for _, z := range zs {
		for _, x := range xs {
			holes = append(holes, pmesh.Move(tool, r3.Vec{X: x, Y: y, Z: z}))
		}
	}
	return holes, nil
}

// blockBox is one slice of a guide block: a box hanging lift below the
// XZ plane, optionally hollowed to end plates of the given thickness.
type blockBox struct {
	width, height, length, lift float64
	thickness                   float64
	bevel                       float64
	// graded weights the Z edges instead of the cross edges, the outer
	// ones fully and the inner ones by half.
	graded bool
}

func guideBlock(b blockBox) *pmesh.Part {
	midY := -b.lift - b.height/2
	box := pmesh.BoxMesh(r3.Vec{X: b.width, Y: b.height, Z: b.length}, r3.Vec{Y: midY})
	p := pmesh.NewPart("block", pmesh.MeshSolid{M: box})
	if b.bevel > 0 {
		bevel := pmesh.Bevel{Width: b.bevel, Segments: 1}
		if b.graded {
			bevel.Weights = make(pmesh.EdgeWeights)
			for _, e := range box.Edges() {
				if !box.IsEdgeAlongAxis(e, pmesh.AxisZ, 1e-6) {
					continue
				}
				bevel.Weights[e] = 0.5
				if box.Vertices[e.A].Y < midY {
					bevel.Weights[e] = 1
				}
			}
		} else {
			bevel.Weights = box.TagEdges(1, func(e pmesh.Edge) bool {
				return !box.IsEdgeAlongAxis(e, pmesh.AxisZ, 1e-6)
			})
		}
		p.Bevel = bevel
	}
	if b.thickness > 0 {
		p.Cut(pmesh.BoxSolid{
			Center: r3.Vec{Y: midY},
			Size:   r3.Vec{X: 2 * b.width, Y: 2 * b.height, Z: b.length - 2*b.thickness},
		})
	}
	return p
}
