package obj3

import (
	"fmt"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
)

// NutType is the JIS B 1181 hexagon nut type. Type 1 is chamfered on the
// bearing side only, type 2 on both sides and type 3 is a thin nut
// chamfered on both sides.
type NutType int

const (
	NutType1 NutType = 1 + iota
	NutType2
	NutType3
)

// NutParms defines a JIS hexagon nut. The nut hangs below the XY plane.
type NutParms struct {
	Size thread.Size `yaml:"size"`
	Type NutType     `yaml:"type"`
	// NutDiameter is the hexagon across-corners diameter.
	NutDiameter float64 `yaml:"nut_diameter"`
	// Diameter is the thread major diameter. Zero builds a blank nut.
	Diameter    float64 `yaml:"diameter"`
	Thickness   float64 `yaml:"thickness"`
	Pitch       float64 `yaml:"pitch"`
	Starts      int     `yaml:"starts"`
	ThreadDepth float64 `yaml:"thread_depth"`

	TopChamfer    bool `yaml:"top_chamfer"`
	BottomChamfer bool `yaml:"bottom_chamfer"`

	Segments            int `yaml:"segments"`
	ThreadBevelSegments int `yaml:"thread_bevel_segments"`
	ChamferSegments     int `yaml:"chamfer_segments"`
	BevelSegments       int `yaml:"bevel_segments"`
}

// NutDefaults returns a type 1 M3 nut.
func NutDefaults() NutParms {
	k := NutParms{
		Type:                NutType1,
		Segments:            32,
		ThreadBevelSegments: 5,
		ChamferSegments:     48,
		BevelSegments:       5,
	}
	if err := k.SetSize(thread.M3); err != nil {
		panic(err)
	}
	return k
}

// SetSize copies the catalog dimensions of size into k. The thickness
// and chamfers follow k.Type.
func (k *NutParms) SetSize(size thread.Size) error {
	s, err := thread.Lookup(size)
	if err != nil {
		return err
	}
	k.Size = size
	k.Diameter, k.Pitch, k.Starts = s.Diameter, s.Pitch, 1
	k.ThreadDepth = s.ThreadDepth()
	k.NutDiameter = s.BoltHeadDiameter()
	k.Thickness = s.NutHeight
	if k.Type == NutType3 {
		k.Thickness = s.ThinNutHeight
	}
	k.TopChamfer = k.Type != NutType1
	k.BottomChamfer = true
	return nil
}

// NutName returns the label of a nut such as "Nut M3".
func NutName(k NutParms) string { return pmesh.Name("Nut", "M"+dim(k.Diameter)) }

// Nut returns a JIS hexagon nut with an internal thread.
func Nut(k NutParms) (*pmesh.Part, error) {
	switch {
	case k.Diameter >= k.NutDiameter:
		return nil, invalid("diameter", "the nut hole diameter must be smaller than the nut diameter")
	case k.Thickness <= 0:
		return nil, invalid("thickness", "must be positive")
	}
	body, err := form3.Nut(k.NutDiameter, k.Thickness, k.BevelSegments)
	if err != nil {
		return nil, fmt.Errorf("nut body: %w", err)
	}
	p := pmesh.NewPart(NutName(k), pmesh.MeshSolid{M: body})
	p.Segments = k.Segments
	if k.Diameter > 0 {
		rod, err := form3.ThreadedCylinder(form3.ThreadParms{
			Diameter:      k.Diameter,
			Length:        k.Thickness,
			Pitch:         k.Pitch,
			Starts:        k.Starts,
			Depth:         k.ThreadDepth,
			Segments:      k.Segments,
			BevelSegments: k.ThreadBevelSegments,
		})
		if err != nil {
			return nil, fmt.Errorf("nut thread: %w", err)
		}
		p.Cut(pmesh.MeshSolid{M: rod})
	}
	if k.TopChamfer {
		c, err := form3.NutChamfer(k.NutDiameter, k.ChamferSegments, 0, false)
		if err != nil {
			return nil, fmt.Errorf("nut chamfer: %w", err)
		}
		c.Translate(r3.Vec{Z: 0.001})
		p.Cut(pmesh.MeshSolid{M: c})
	}
	if k.BottomChamfer {
		c, err := form3.NutChamfer(k.NutDiameter, k.ChamferSegments, -k.Thickness, true)
		if err != nil {
			return nil, fmt.Errorf("nut chamfer: %w", err)
		}
		c.Translate(r3.Vec{Z: -0.001})
		p.Cut(pmesh.MeshSolid{M: c})
	}
	return p, nil
}
