package obj3

import (
	"fmt"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
)

// CompressionSpringParms defines a compression spring. A positive
// FreeLength fixes the height; otherwise ActiveCoils does.
type CompressionSpringParms = form3.SpringParms

// CompressionSpringDefaults returns a 10mm long spring of 1mm wire.
func CompressionSpringDefaults() CompressionSpringParms {
	return CompressionSpringParms{
		WireDiameter:    1,
		OuterDiameter:   10,
		Pitch:           3,
		ActiveCoils:     10,
		FreeLength:      10,
		DeadCoilsTop:    1,
		DeadCoilsBottom: 1,
		WireSegments:    16,
		Segments:        32,
	}
}

// springHeight is the height a spring of k is cut to when its ends are ground.
func springHeight(k CompressionSpringParms) float64 {
	if k.FreeLength > 0 {
		return k.FreeLength
	}
	return k.Height()
}

// CompressionSpringName returns "Compression Spring D10L10" style names.
func CompressionSpringName(k CompressionSpringParms) string {
	return pmesh.Name("Compression Spring", "D"+dim(k.OuterDiameter)+"L"+dim(springHeight(k)))
}

// CompressionSpring returns the wound wire. With GroundEnds the wire is
// flattened at z = 0 and at the free length.
func CompressionSpring(k CompressionSpringParms) (*pmesh.Part, error) {
	if k.WireDiameter <= 0 || k.OuterDiameter <= 2*k.WireDiameter {
		return nil, invalid("outer_diameter", "must exceed twice the wire diameter")
	}
	coil, err := form3.SpringCoil(k)
	if err != nil {
		return nil, fmt.Errorf("spring coil: %w", err)
	}
	p := pmesh.NewPart(CompressionSpringName(k), pmesh.MeshSolid{M: coil})
	p.Segments = k.Segments
	if k.GroundEnds {
		big := 2 * k.OuterDiameter
		w := k.WireDiameter
		p.Cut(slab(big, 0, -2*w))
		z := springHeight(k)
		p.Cut(slab(big, z, z+2*w))
	}
	return p, nil
}
