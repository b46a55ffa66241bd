package obj3

import (
	"fmt"
	"sort"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// PinHeaderParms defines a straight pin header with its plastic blocks
// standing on the XY plane. Columns run along X and rows along Y.
type PinHeaderParms struct {
	// Preset names the catalog pitch the fields were filled from.
	Preset    string  `yaml:"preset"`
	Pitch     float64 `yaml:"pitch"`
	BlockSize r3.Vec  `yaml:"block_size"`
	// Concave is the notch cut into the underside of each block. It is
	// left out unless every side is positive.
	Concave         r3.Vec  `yaml:"concave"`
	PinThickness    float64 `yaml:"pin_thickness"`
	PinLengthTop    float64 `yaml:"pin_length_top"`
	PinLengthBottom float64 `yaml:"pin_length_bottom"`
	Columns         int     `yaml:"columns"`
	Rows            int     `yaml:"rows"`
}

type pinHeaderPreset struct {
	pitch       float64
	block       r3.Vec
	concave     r3.Vec
	pin         float64
	top, bottom float64
}

var pinHeaderPresets = map[string]pinHeaderPreset{
	"1.27": {pitch: 1.27, block: r3.Vec{X: 1.27, Y: 2.1, Z: 1.5}, pin: 0.4, top: 3, bottom: 2.3},
	"2.00": {pitch: 2, block: r3.Vec{X: 2, Y: 2, Z: 2}, concave: r3.Vec{X: 3, Y: 1.4, Z: 0.3}, pin: 0.5, top: 4, bottom: 2.8},
	"2.54": {pitch: 2.54, block: r3.Vec{X: 2.54, Y: 2.5, Z: 2.5}, concave: r3.Vec{X: 3, Y: 1.6, Z: 0.4}, pin: 0.64, top: 6.1, bottom: 3},
}

// PinHeaderPresets returns the catalog pitches in order.
func PinHeaderPresets() []string {
	names := make([]string, 0, len(pinHeaderPresets))
	for k := range pinHeaderPresets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PinHeaderDefaults returns a single row of four 2.54mm pins.
func PinHeaderDefaults() PinHeaderParms {
	k := PinHeaderParms{Columns: 4, Rows: 1}
	if err := k.SetPreset("2.54"); err != nil {
		panic(err)
	}
	return k
}

// SetPreset copies the pitch and pin dimensions of a catalog pitch such
// as "2.00" into k. Columns and rows are kept.
func (k *PinHeaderParms) SetPreset(name string) error {
	p, ok := pinHeaderPresets[name]
	if !ok {
		return fmt.Errorf("unknown pin header pitch %q", name)
	}
	k.Preset = name
	k.Pitch = p.pitch
	k.BlockSize = p.block
	k.Concave = p.concave
	k.PinThickness = p.pin
	k.PinLengthTop, k.PinLengthBottom = p.top, p.bottom
	return nil
}

// PinHeaderName returns "Pin Header 2.54mm 1x4" style names, rows first.
func PinHeaderName(k PinHeaderParms) string {
	return pmesh.Name("Pin Header", fmt.Sprintf("%smm %dx%d", dim(k.Pitch), k.Rows, k.Columns))
}

// PinHeader returns one pin in its block, arrayed over the columns and
// rows. The vertical block edges are chamfered by 15% of the block depth
// and the pin ends by 30% of its thickness.
func PinHeader(k PinHeaderParms) (*pmesh.Part, error) {
	b := k.BlockSize
	switch {
	case k.Pitch <= 0:
		return nil, invalid("pitch", "must be positive")
	case b.X <= 0 || b.Y <= 0 || b.Z <= 0:
		return nil, invalid("block_size", "every side must be positive")
	case k.PinThickness <= 0 || k.PinThickness >= b.X || k.PinThickness >= b.Y:
		return nil, invalid("pin_thickness", "must be positive and thinner than the block")
	case k.PinLengthTop <= 0 || k.PinLengthBottom <= 0:
		return nil, invalid("pin_length_top", "pin lengths must be positive")
	case k.Concave.X < 0 || k.Concave.Y < 0 || k.Concave.Z < 0:
		return nil, invalid("concave", "may not be negative")
	case k.Concave.Z >= b.Z:
		return nil, invalid("concave", "deeper than the block")
	case k.Columns < 1 || k.Rows < 1:
		return nil, invalid("columns", "need at least one column and one row")
	}

	blockMesh := pmesh.BoxMesh(b, r3.Vec{Z: b.Z / 2})
	block := pmesh.NewPart("block", pmesh.MeshSolid{M: blockMesh})
	block.Bevel = pmesh.Bevel{
		Width:    0.15 * b.Y,
		Segments: 1,
		Weights: blockMesh.TagEdges(1, func(e pmesh.Edge) bool {
			return blockMesh.IsEdgeAlongAxis(e, pmesh.AxisZ, 1e-9)
		}),
	}
	if k.Concave.X > 0 && k.Concave.Y > 0 && k.Concave.Z > 0 {
		block.Cut(pmesh.BoxSolid{Center: r3.Vec{Z: k.Concave.Z / 2}, Size: k.Concave})
	}

	l := k.PinLengthTop + b.Z + k.PinLengthBottom
	pinMesh := pmesh.BoxMesh(r3.Vec{X: k.PinThickness, Y: k.PinThickness, Z: l}, r3.Vec{Z: l/2 - k.PinLengthBottom})
	pin := pmesh.NewPart("pin", pmesh.MeshSolid{M: pinMesh})
	pin.Bevel = pmesh.Bevel{
		Width:    0.3 * k.PinThickness,
		Segments: 1,
		Weights: pinMesh.TagEdges(1, func(e pmesh.Edge) bool {
			return !pinMesh.IsEdgeAlongAxis(e, pmesh.AxisZ, 1e-9)
		}),
	}

	p := pmesh.NewPart(PinHeaderName(k), pmesh.GroupSolid{Members: []pmesh.Solid{block, pin}})
	p.Arrays = []pmesh.ArrayMod{
		{Count: k.Columns, Offset: r3.Vec{X: k.Pitch}},
		{Count: k.Rows, Offset: r3.Vec{Y: k.Pitch}},
	}
	return p, nil
}
