package thread

import (
	"math"
	"strings"
)

// Size is the key of a metric screw in the lookup table, for example "m3".
type Size string

const (
	M2   Size = "m2"
	M2p5 Size = "m2_5"
	M3   Size = "m3"
	M4   Size = "m4"
	M5   Size = "m5"
	M6   Size = "m6"
	M8   Size = "m8"
)

// Label returns the display form of a size: "m2_5" becomes "M2.5".
func (s Size) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", "."))
}

// ScrewSpec holds the JIS dimensions of a metric coarse screw and the
// heads and nuts made for it. All lengths are in millimetres.
type ScrewSpec struct {
	Size     Size
	Diameter float64 // nominal major diameter
	Pitch    float64 // coarse thread pitch

	PanHeadDiameter float64 // dk
	PanHeadHeight   float64 // k

	PhillipsSize  float64 // cross recess width across its arms
	PhillipsDepth float64

	FlatHeadDiameter float64
	FlatHeadEdge     float64 // thickness of the cylindrical rim of a countersunk head

	BoltHeadF2F    float64 // hexagon across flats, shared by bolt heads and nuts
	BoltHeadHeight float64
	NutHeight      float64
	ThinNutHeight  float64
}

// ThreadDepth returns the diametral depth of a basic metric profile,
// major minus minor diameter.
func (s ScrewSpec) ThreadDepth() float64 {
	return 1.082532 * s.Pitch
}

// BoltHeadDiameter returns the hexagon across-corners diameter.
func (s ScrewSpec) BoltHeadDiameter() float64 {
	return s.BoltHeadF2F / math.Cos(30*math.Pi/180)
}

// HexRadius returns the hexagon circumradius.
func (s ScrewSpec) HexRadius() float64 {
	return s.BoltHeadDiameter() / 2
}

// UnthreadedLength returns the length of plain shank left on a half
// threaded screw of total length l. Screws shorter than the standard
// thread length are threaded over their whole length and return 0.
func (s ScrewSpec) UnthreadedLength(l float64) float64 {
	var threaded float64
	switch {
	case l <= 129:
		threaded = 2*s.Diameter + 6
	case l <= 219:
		threaded = 2*s.Diameter + 12
	default:
		threaded = 2*s.Diameter + 25
	}
	if threaded <= l {
		return l - threaded
	}
	return 0
}
