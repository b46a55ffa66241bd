package thread

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RailSize is the key of a miniature linear guide rail, for example "mgn09".
type RailSize string

// BlockSize is the key of a linear guide block, for example "mgn09c".
type BlockSize string

// Label returns the display form of a rail size: "mgn09" becomes "MGN9".
func (r RailSize) Label() string { return guideLabel(string(r)) }

// Label returns the display form of a block size: "mgn09c" becomes "MGN9C".
func (b BlockSize) Label() string { return guideLabel(string(b)) }

func guideLabel(key string) string {
	s := strings.ToUpper(key)
	if len(s) > 4 && s[3] == '0' {
		s = s[:3] + s[4:]
	}
	return s
}

// RailSpec holds the dimensions of a linear guide rail.
type RailSpec struct {
	Size              RailSize
	Width             float64 // Wr
	Height            float64 // Hr
	OuterHoleDiameter float64 // counterbore diameter
	OuterHoleDepth    float64 // counterbore depth from the rail bottom
	InnerHoleDiameter float64 // through hole diameter
	HolePitch         float64
	Weight            float64 // kg per metre, informational
}

// BlockSpec holds the dimensions of a linear guide block.
type BlockSpec struct {
	Size         BlockSize
	Width        float64 // W
	Length       float64 // L
	MiddleLength float64 // L1, steel body length without end caps and seals
	Height       float64 // H, from rail bottom to block top
	Lift         float64 // H1, gap between rail bottom and block bottom
	SideWidth    float64 // N, block width beside the rail
	Screw        Size
	ScrewDepth   float64 // l
	ScrewB       float64 // hole spacing across the block, zero for one column
	ScrewC       float64 // hole spacing along the block, zero for one row
	Rail         RailSize
	GreaseHole   float64 // Gn
	GreaseHeight float64 // H2, grease hole distance below the block top
	Weight       float64 // kg, informational
}

var railDB = map[RailSize]RailSpec{
	"mgn05": {Width: 5, Height: 3.6, OuterHoleDiameter: 3.6, OuterHoleDepth: 0.8, InnerHoleDiameter: 2.4, HolePitch: 15, Weight: 0.15},
	"mgn07": {Width: 7, Height: 4.8, OuterHoleDiameter: 4.2, OuterHoleDepth: 2.3, InnerHoleDiameter: 2.4, HolePitch: 15, Weight: 0.22},
	"mgn09": {Width: 9, Height: 6.5, OuterHoleDiameter: 6, OuterHoleDepth: 3.5, InnerHoleDiameter: 3.5, HolePitch: 20, Weight: 0.38},
	"mgn12": {Width: 12, Height: 8, OuterHoleDiameter: 6, OuterHoleDepth: 4.5, InnerHoleDiameter: 3.5, HolePitch: 25, Weight: 0.65},
	"mgn15": {Width: 15, Height: 10, OuterHoleDiameter: 6, OuterHoleDepth: 4.5, InnerHoleDiameter: 3.5, HolePitch: 40, Weight: 1.06},
	"mgw05": {Width: 10, Height: 4, OuterHoleDiameter: 5.5, OuterHoleDepth: 1.6, InnerHoleDiameter: 3, HolePitch: 20, Weight: 0.34},
	"mgw07": {Width: 14, Height: 5.2, OuterHoleDiameter: 6, OuterHoleDepth: 3.2, InnerHoleDiameter: 3.5, HolePitch: 30, Weight: 0.51},
	"mgw09": {Width: 18, Height: 7, OuterHoleDiameter: 6, OuterHoleDepth: 4.5, InnerHoleDiameter: 3.5, HolePitch: 30, Weight: 0.91},
	"mgw12": {Width: 24, Height: 8.5, OuterHoleDiameter: 8, OuterHoleDepth: 4.5, InnerHoleDiameter: 4.5, HolePitch: 40, Weight: 1.49},
	"mgw15": {Width: 42, Height: 9.5, OuterHoleDiameter: 8, OuterHoleDepth: 4.5, InnerHoleDiameter: 4.5, HolePitch: 40, Weight: 2.86},
}

var blockDB = map[BlockSize]BlockSpec{
	"mgn05c":  {Width: 12, Length: 16, MiddleLength: 9.6, Height: 6, Lift: 1.5, SideWidth: 3.5, Screw: M2, ScrewDepth: 1.5, ScrewB: 8, Rail: "mgn05", GreaseHole: 0.8, GreaseHeight: 1, Weight: 0.008},
	"mgn05h":  {Width: 12, Length: 19, MiddleLength: 12.6, Height: 6, Lift: 1.5, SideWidth: 3.5, Screw: M2, ScrewDepth: 1.5, ScrewB: 8, Rail: "mgn05", GreaseHole: 0.8, GreaseHeight: 1, Weight: 0.01},
	"mgn07c":  {Width: 17, Length: 22.5, MiddleLength: 13.5, Height: 8, Lift: 1.5, SideWidth: 5, Screw: M2, ScrewDepth: 2.5, ScrewB: 12, ScrewC: 8, Rail: "mgn07", GreaseHole: 1.2, GreaseHeight: 1.5, Weight: 0.01},
	"mgn07h":  {Width: 17, Length: 30.8, MiddleLength: 21.8, Height: 8, Lift: 1.5, SideWidth: 5, Screw: M2, ScrewDepth: 2.5, ScrewB: 12, ScrewC: 13, Rail: "mgn07", GreaseHole: 1.2, GreaseHeight: 1.5, Weight: 0.02},
	"mgn09c":  {Width: 20, Length: 28.9, MiddleLength: 18.9, Height: 10, Lift: 2, SideWidth: 5.5, Screw: M3, ScrewDepth: 3, ScrewB: 15, ScrewC: 10, Rail: "mgn09", GreaseHole: 1.4, GreaseHeight: 1.8, Weight: 0.02},
	"mgn09h":  {Width: 20, Length: 39.9, MiddleLength: 29.9, Height: 10, Lift: 2, SideWidth: 5.5, Screw: M3, ScrewDepth: 3, ScrewB: 15, ScrewC: 16, Rail: "mgn09", GreaseHole: 1.4, GreaseHeight: 1.8, Weight: 0.03},
	"mgn12c":  {Width: 27, Length: 34.7, MiddleLength: 21.7, Height: 13, Lift: 3, SideWidth: 7.5, Screw: M3, ScrewDepth: 3.5, ScrewB: 20, ScrewC: 15, Rail: "mgn12", GreaseHole: 2, GreaseHeight: 2.5, Weight: 0.03},
	"mgn12h":  {Width: 27, Length: 45.4, MiddleLength: 32.4, Height: 13, Lift: 3, SideWidth: 7.5, Screw: M3, ScrewDepth: 3.5, ScrewB: 20, ScrewC: 20, Rail: "mgn12", GreaseHole: 2, GreaseHeight: 2.5, Weight: 0.05},
	"mgn15c":  {Width: 32, Length: 42.1, MiddleLength: 26.7, Height: 16, Lift: 4, SideWidth: 8.5, Screw: M3, ScrewDepth: 4, ScrewB: 25, ScrewC: 20, Rail: "mgn15", GreaseHole: 3, GreaseHeight: 3, Weight: 0.06},
	"mgn15h":  {Width: 32, Length: 58.8, MiddleLength: 43.4, Height: 16, Lift: 4, SideWidth: 8.5, Screw: M3, ScrewDepth: 4, ScrewB: 25, ScrewC: 25, Rail: "mgn15", GreaseHole: 3, GreaseHeight: 3, Weight: 0.09},
	"mgw05c":  {Width: 17, Length: 20.5, MiddleLength: 14.1, Height: 6.5, Lift: 1.5, SideWidth: 3.5, Screw: M2p5, ScrewDepth: 1.5, ScrewB: 13, Rail: "mgw05", GreaseHole: 0.8, GreaseHeight: 1, Weight: 0.016},
	"mgw05cl": {Width: 17, Length: 20.5, MiddleLength: 14.1, Height: 6.5, Lift: 1.5, SideWidth: 3.5, Screw: M3, ScrewDepth: 10, ScrewC: 6.5, Rail: "mgw05", GreaseHole: 0.8, GreaseHeight: 1, Weight: 0.016},
	"mgw07c":  {Width: 25, Length: 31.2, MiddleLength: 21, Height: 9, Lift: 1.9, SideWidth: 5.5, Screw: M3, ScrewDepth: 3, ScrewB: 19, ScrewC: 10, Rail: "mgw07", GreaseHole: 1.2, GreaseHeight: 1.85, Weight: 0.02},
	"mgw07h":  {Width: 25, Length: 41, MiddleLength: 30.8, Height: 9, Lift: 1.9, SideWidth: 5.5, Screw: M3, ScrewDepth: 3, ScrewB: 19, ScrewC: 19, Rail: "mgw07", GreaseHole: 1.2, GreaseHeight: 1.85, Weight: 0.029},
	"mgw09c":  {Width: 30, Length: 39.3, MiddleLength: 27.5, Height: 12, Lift: 2.9, SideWidth: 6, Screw: M3, ScrewDepth: 3, ScrewB: 12, ScrewC: 12, Rail: "mgw09", GreaseHole: 1.2, GreaseHeight: 2.4, Weight: 0.04},
	"mgw09h":  {Width: 30, Length: 50.7, MiddleLength: 38.5, Height: 12, Lift: 2.9, SideWidth: 6, Screw: M3, ScrewDepth: 3, ScrewB: 23, ScrewC: 24, Rail: "mgw09", GreaseHole: 1.2, GreaseHeight: 2.4, Weight: 0.057},
	"mgw12c":  {Width: 40, Length: 46.1, MiddleLength: 31.3, Height: 14, Lift: 3.4, SideWidth: 8, Screw: M3, ScrewDepth: 3.6, ScrewB: 28, ScrewC: 15, Rail: "mgw12", GreaseHole: 1.2, GreaseHeight: 2.8, Weight: 0.071},
	"mgw12h":  {Width: 40, Length: 60.4, MiddleLength: 45.6, Height: 14, Lift: 3.4, SideWidth: 8, Screw: M3, ScrewDepth: 3.6, ScrewB: 28, ScrewC: 28, Rail: "mgw12", GreaseHole: 1.2, GreaseHeight: 2.8, Weight: 0.103},
	"mgw15c":  {Width: 60, Length: 54.8, MiddleLength: 38, Height: 16, Lift: 3.4, SideWidth: 9, Screw: M4, ScrewDepth: 4.2, ScrewB: 45, ScrewC: 20, Rail: "mgw15", GreaseHole: 3, GreaseHeight: 3.2, Weight: 0.143},
	"mgw15h":  {Width: 60, Length: 73.8, MiddleLength: 57, Height: 16, Lift: 3.4, SideWidth: 9, Screw: M4, ScrewDepth: 4.2, ScrewB: 45, ScrewC: 35, Rail: "mgw15", GreaseHole: 3, GreaseHeight: 3.2, Weight: 0.215},
}

// LookupRail returns the rail spec for size.
func LookupRail(size RailSize) (RailSpec, error) {
	s, ok := railDB[size]
	if !ok {
		return RailSpec{}, fmt.Errorf("rail size %q: %w", size, ErrUnknownSize)
	}
	s.Size = size
	return s, nil
}

// LookupBlock returns the block spec for size.
func LookupBlock(size BlockSize) (BlockSpec, error) {
	s, ok := blockDB[size]
	if !ok {
		return BlockSpec{}, fmt.Errorf("block size %q: %w", size, ErrUnknownSize)
	}
	s.Size = size
	return s, nil
}

// RailSizes returns the rail keys in catalog order.
func RailSizes() []RailSize {
	out := make([]RailSize, 0, len(railDB))
	for k := range railDB {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BlockSizes returns the block keys in catalog order.
func BlockSizes() []BlockSize {
	out := make([]BlockSize, 0, len(blockDB))
	for k := range blockDB {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MatchRail returns the catalog rail whose dimensions equal r, ignoring
// weight. It is used to name rails built from edited dimensions.
func MatchRail(r RailSpec) (RailSize, bool) {
	const tol = 1e-9
	for _, k := range RailSizes() {
		s := railDB[k]
		if near(s.Width, r.Width, tol) && near(s.Height, r.Height, tol) &&
			near(s.OuterHoleDiameter, r.OuterHoleDiameter, tol) && near(s.OuterHoleDepth, r.OuterHoleDepth, tol) &&
			near(s.InnerHoleDiameter, r.InnerHoleDiameter, tol) && near(s.HolePitch, r.HolePitch, tol) {
			return k, true
		}
	}
	return "", false
}

// MatchBlock returns the catalog block whose dimensions equal b within
// 0.01 mm and whose rail has height railHeight.
func MatchBlock(b BlockSpec, railHeight float64) (BlockSize, bool) {
	const tol = 0.01
	for _, k := range BlockSizes() {
		s := blockDB[k]
		if near(s.Width, b.Width, tol) && near(s.Length, b.Length, tol) && near(s.MiddleLength, b.MiddleLength, tol) &&
			near(s.Height, b.Height, tol) && near(s.Lift, b.Lift, tol) && near(s.SideWidth, b.SideWidth, tol) &&
			near(s.ScrewDepth, b.ScrewDepth, tol) && near(s.ScrewB, b.ScrewB, tol) && near(s.ScrewC, b.ScrewC, tol) &&
			near(railDB[s.Rail].Height, railHeight, tol) {
			return k, true
		}
	}
	return "", false
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
