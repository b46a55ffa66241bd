package obj3

import (
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3/obj3/thread"
	"github.com/romly/pmesh/helpers/matter"
	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Hex nut traps for 3D printing.

// NutHoleType selects how the screw hole is printed over the nut pocket.
type NutHoleType string

const (
	// SacrificialLayer closes the pocket with one layer drilled out later.
	SacrificialLayer NutHoleType = "sacrificial"
	// BridgeLayer steps from hexagon to slot to round hole one layer at a time.
	BridgeLayer NutHoleType = "bridge"
)

// Slit is a thin box cut to break a print seam or anchor the first layer.
type Slit struct {
	Length    float64 `yaml:"length"`
	Thickness float64 `yaml:"thickness"`
	Height    float64 `yaml:"height"`
}

func (s Slit) ok() bool { return s.Length > 0 && s.Thickness > 0 && s.Height > 0 }

// NutHoleParms defines the cutter of a hexagonal nut pocket with its screw
// hole. The pocket opens downward from z = Depth and the screw hole runs
// up from its top.
type NutHoleParms struct {
	Size           thread.Size `yaml:"size"`
	Type           NutHoleType `yaml:"type"`
	NutDiameter    float64     `yaml:"nut_diameter"` // across corners
	ScrewDiameter  float64     `yaml:"screw_diameter"`
	LayerThickness float64     `yaml:"layer_thickness"`
	ScrewSegments  int         `yaml:"screw_segments"`
	NutClearance   float64     `yaml:"nut_clearance"`
	ScrewClearance float64     `yaml:"screw_clearance"`
	Depth          float64     `yaml:"depth"`
	Surplus        float64     `yaml:"surplus"`
	ScrewLength    float64     `yaml:"screw_length"`

	SeamSlit       Slit    `yaml:"seam_slit"`
	SeamSlitCount  int     `yaml:"seam_slit_count"` // 1 or 6
	FirstLayerSlit Slit    `yaml:"first_layer_slit"`
	FirstLayerTurn float64 `yaml:"first_layer_angle"` // radians
}

// NutHoleDefaults returns an M3 nut pocket with PLA clearances.
func NutHoleDefaults() NutHoleParms {
	k := NutHoleParms{
		Type:           SacrificialLayer,
		LayerThickness: 0.2,
		ScrewSegments:  32,
		NutClearance:   matter.PLA.Clearance(),
		ScrewClearance: matter.PLA.Clearance(),
		Depth:          5,
		Surplus:        10,
		ScrewLength:    30,
		SeamSlit:       Slit{Length: 1, Thickness: 0.1, Height: 1},
		SeamSlitCount:  1,
		FirstLayerSlit: Slit{Length: 10, Thickness: 0.1, Height: 0.5},
	}
	if err := k.SetSize(thread.M3); err != nil {
		panic(err)
	}
	return k
}

// SetSize copies the nut and screw diameters of size into k.
func (k *NutHoleParms) SetSize(size thread.Size) error {
	s, err := thread.Lookup(size)
	if err != nil {
		return err
	}
	k.Size = size
	k.NutDiameter = s.BoltHeadDiameter()
	k.ScrewDiameter = s.Diameter
	return nil
}

// NutHoleName returns "Nut Hole M3" when the nut diameter matches a
// catalog size and "Nut Hole" otherwise.
func NutHoleName(k NutHoleParms) string {
	if size, ok := thread.SizeForNutDiameter(k.NutDiameter); ok {
		return pmesh.Name("Nut Hole", size.Label())
	}
	return "Nut Hole"
}

// nutHoleExtra extends cutters past their final extent before trimming.
const nutHoleExtra = 3

// NutHole returns the nut pocket cutter as a part of its own.
func NutHole(k NutHoleParms) (*pmesh.Part, error) {
	switch {
	case k.NutDiameter <= 0 || k.ScrewDiameter <= 0:
		return nil, invalid("nut_diameter", "nut and screw diameters must be positive")
	case k.ScrewDiameter >= k.NutDiameter:
		return nil, invalid("screw_diameter", "the screw hole must be smaller than the nut")
	case k.Type != SacrificialLayer && k.Type != BridgeLayer:
		return nil, invalid("type", "unknown nut hole type %q", k.Type)
	case k.ScrewSegments < 3:
		return nil, invalid("screw_segments", "need at least 3")
	}
	var (
		nd    = k.NutDiameter + 2*k.NutClearance
		sd    = k.ScrewDiameter + 2*k.ScrewClearance
		depth = k.Depth
		low   = -(k.Surplus + nutHoleExtra)
		layer = k.LayerThickness
		big   = (nd + math.Max(k.SeamSlit.Length, k.FirstLayerSlit.Length)) * 2
	)
	outline := make([]r2.Vec, 6)
	for i := range outline {
		outline[i] = d2.PolarToXY(nd/2, float64(i)*math.Pi/3)
	}
	hex := pmesh.Prism(outline, depth, low-depth)

	p := pmesh.NewPart(NutHoleName(k), pmesh.MeshSolid{M: hex})
	p.Segments = k.ScrewSegments
	seam := k.SeamSlit
	if seam.ok() {
		y0 := 0.0
		if k.SeamSlitCount != 1 {
			y0 = -nd/2 - seam.Length
		}
		p.Join(aboutZ(cornerBox(
			r3.Vec{X: -seam.Thickness / 2, Y: nd/2 + seam.Length, Z: depth},
			r3.Vec{X: seam.Thickness / 2, Y: y0, Z: low}), math.Pi/2))
	}
	screwLen := k.ScrewLength + nutHoleExtra
	p.Join(pmesh.CylinderSolid{
		Center: r3.Vec{Z: depth - 0.1 + screwLen/2},
		Axis:   pmesh.AxisZ,
		Height: screwLen,
		Radius: sd / 2,
	})

	if layer > 0 {
		const enough = 5
		if k.Type == BridgeLayer {
			z := depth - 2*layer
			p.Cut(cornerBox(r3.Vec{X: -nd, Y: nd, Z: z}, r3.Vec{X: -sd / 2, Y: -nd, Z: z + enough}))
			p.Cut(cornerBox(r3.Vec{X: nd, Y: nd, Z: z}, r3.Vec{X: sd / 2, Y: -nd, Z: z + enough}))
		}
		if seam.ok() && k.SeamSlitCount > 1 {
			for i := 1; i < 3; i++ {
				p.Join(aboutZ(cornerBox(
					r3.Vec{X: -seam.Thickness / 2, Y: nd/2 + seam.Length, Z: depth},
					r3.Vec{X: seam.Thickness / 2, Y: -nd/2 - seam.Length, Z: low}),
					math.Pi/2+pmesh.DtoR(60*float64(i))))
			}
		}
		if k.Type == BridgeLayer {
			z := depth - layer
			p.Cut(cornerBox(r3.Vec{X: -nd, Y: nd, Z: z}, r3.Vec{X: nd, Y: sd / 2, Z: z + enough}))
			p.Cut(cornerBox(r3.Vec{X: -nd, Y: -nd, Z: z}, r3.Vec{X: nd, Y: -sd / 2, Z: z + enough}))
		}
	}
	if seam.ok() {
		p.Join(aboutZ(cornerBox(
			r3.Vec{X: -seam.Thickness / 2, Y: sd/2 + seam.Length, Z: depth},
			r3.Vec{X: seam.Thickness / 2, Z: depth + k.ScrewLength + nutHoleExtra}), math.Pi/2))
	}
	if k.Type == SacrificialLayer && layer > 0 {
		p.Cut(cornerBox(r3.Vec{X: -big, Y: big, Z: depth + layer}, r3.Vec{X: big, Y: -big, Z: depth}))
	}
	if fl := k.FirstLayerSlit; fl.ok() {
		p.Join(aboutZ(cornerBox(
			r3.Vec{X: -fl.Thickness / 2, Z: fl.Height},
			r3.Vec{X: fl.Thickness / 2, Y: nd/2 + fl.Length, Z: low}), math.Pi/2+k.FirstLayerTurn))
	}
	bigY := nd/2 + math.Max(seam.Length, k.FirstLayerSlit.Length)*2
	p.Cut(cornerBox(r3.Vec{X: -big, Y: big, Z: depth + k.ScrewLength}, r3.Vec{X: big, Y: -big, Z: depth + k.ScrewLength + 2*nutHoleExtra}))
	p.Cut(cornerBox(r3.Vec{X: -big, Y: bigY, Z: -k.Surplus}, r3.Vec{X: big, Y: -bigY, Z: -k.Surplus - 2*nutHoleExtra}))
	return p, nil
}

// CutNutHole adds the nut pocket of k to target as a difference modifier.
func CutNutHole(target *pmesh.Part, k NutHoleParms) (*pmesh.Part, error) {
	if target == nil {
		return nil, invalid("target", "select the object the nut hole is cut into")
	}
	hole, err := NutHole(k)
	if err != nil {
		return nil, err
	}
	target.Cut(hole)
	return hole, nil
}
