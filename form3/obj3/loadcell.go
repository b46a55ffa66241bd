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

// LoadCellOrigin picks the point along Y that becomes the origin of a
// load cell.
type LoadCellOrigin string

const (
	OriginCenter           LoadCellOrigin = "center"
	OriginFrontScrew1      LoadCellOrigin = "front_screw_1"
	OriginFrontScrewCenter LoadCellOrigin = "front_screw_center"
	OriginFrontScrew2      LoadCellOrigin = "front_screw_2"
	OriginBackScrew1       LoadCellOrigin = "back_screw_1"
	OriginBackScrewCenter  LoadCellOrigin = "back_screw_center"
	OriginBackScrew2       LoadCellOrigin = "back_screw_2"
)

// LoadCellParms defines a bar load cell lying along Y with its strain
// cutout bored through along X and its mounting holes along Z.
type LoadCellParms struct {
	// Preset names the catalog cell the fields were filled from.
	Preset string `yaml:"preset"`
	Size   r3.Vec `yaml:"size"`
	// The sides are cut back to ThinWidth over ThinLength when
	// ThinLength is positive.
	ThinWidth  float64 `yaml:"thin_width"`
	ThinLength float64 `yaml:"thin_length"`

	HoleDiameter float64 `yaml:"hole_diameter"`
	// HoleDistance is the Y distance between the two cutout holes.
	// Zero bores a single hole.
	HoleDistance       float64 `yaml:"hole_distance"`
	HoleBridgeHeight   float64 `yaml:"hole_bridge_height"`
	CenterHoleDiameter float64 `yaml:"center_hole_diameter"`
	HoleSegments       int     `yaml:"hole_segments"`

	// ScrewDistanceA is between the innermost front and back holes,
	// ScrewDistanceB between the two holes at one end and ScrewDistanceX
	// between side by side holes.
	ScrewDistanceA float64     `yaml:"screw_distance_a"`
	ScrewDistanceB float64     `yaml:"screw_distance_b"`
	ScrewDistanceX float64     `yaml:"screw_distance_x"`
	FrontScrew     thread.Size `yaml:"front_screw"`
	BackScrew      thread.Size `yaml:"back_screw"`
	FrontThreaded  bool        `yaml:"front_threaded"`
	BackThreaded   bool        `yaml:"back_threaded"`
	// Threading must be set for FrontThreaded and BackThreaded to apply.
	Threading     bool `yaml:"threading"`
	ScrewSegments int  `yaml:"screw_segments"`

	OriginY LoadCellOrigin `yaml:"origin_y"`
	OriginZ Align          `yaml:"origin_z"`
}

type loadCellPreset struct {
	size                       r3.Vec
	thinWidth, thinLength      float64
	hole, center, dist, bridge float64
	a, b, x                    float64
	front, back                thread.Size
	frontTapped, backTapped    bool
}

var loadCellPresets = map[string]loadCellPreset{
	"normal": {
		size: r3.Vec{X: 12.7, Y: 80, Z: 12.7}, hole: 11, dist: 7,
		a: 40, b: 15, front: thread.M4, back: thread.M5, frontTapped: true, backTapped: true,
	},
	"small": {
		size: r3.Vec{X: 12.7, Y: 75, Z: 12.7}, hole: 11, dist: 7,
		a: 44, b: 10, front: thread.M4, back: thread.M4, frontTapped: true, backTapped: true,
	},
	"tiny": {
		size: r3.Vec{X: 9, Y: 45, Z: 6}, hole: 5, center: 3, dist: 7,
		a: 22, b: 7.5, front: thread.M3, back: thread.M3, frontTapped: true, backTapped: true,
	},
	"i-shape": {
		size: r3.Vec{X: 12, Y: 47, Z: 6}, thinWidth: 7.5, thinLength: 34,
		hole: 5.3, dist: 20, bridge: 2,
		a: 40, x: 6, front: thread.M3, back: thread.M3, backTapped: true,
	},
}

// LoadCellPresets returns the catalog cell names in order.
func LoadCellPresets() []string {
	names := make([]string, 0, len(loadCellPresets))
	for k := range loadCellPresets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LoadCellDefaults returns the 5kg "normal" cell with its origin on the
// outermost back screw hole.
func LoadCellDefaults() LoadCellParms {
	k := LoadCellParms{
		HoleSegments:  32,
		ScrewSegments: 32,
		OriginY:       OriginBackScrew2,
		OriginZ:       AlignCenter,
	}
	if err := k.SetPreset("normal"); err != nil {
		panic(err)
	}
	return k
}

// SetPreset copies the dimensions of a catalog cell into k. Segment
// counts, origins and Threading are kept.
func (k *LoadCellParms) SetPreset(name string) error {
	p, ok := loadCellPresets[name]
	if !ok {
		return fmt.Errorf("unknown load cell preset %q", name)
	}
	k.Preset = name
	k.Size = p.size
	k.ThinWidth, k.ThinLength = p.thinWidth, p.thinLength
	k.HoleDiameter = p.hole
	k.HoleDistance = p.dist
	k.HoleBridgeHeight = p.bridge
	k.CenterHoleDiameter = p.center
	k.ScrewDistanceA, k.ScrewDistanceB, k.ScrewDistanceX = p.a, p.b, p.x
	k.FrontScrew, k.BackScrew = p.front, p.back
	k.FrontThreaded, k.BackThreaded = p.frontTapped, p.backTapped
	return nil
}

// LoadCellName returns "Load Cell 80mm" style names keyed on the length.
func LoadCellName(k LoadCellParms) string {
	return pmesh.Name("Load Cell", dim(k.Size.Y)+"mm")
}

// origin returns the offset moving the chosen origin point to (0, 0, 0).
func (k LoadCellParms) origin() (r3.Vec, error) {
	var y float64
	switch k.OriginY {
	case OriginCenter, "":
	case OriginFrontScrew1, OriginBackScrew1:
		y = k.ScrewDistanceA / 2
	case OriginFrontScrewCenter, OriginBackScrewCenter:
		y = k.ScrewDistanceA/2 + k.ScrewDistanceB/2
	case OriginFrontScrew2, OriginBackScrew2:
		y = k.ScrewDistanceA/2 + k.ScrewDistanceB
	default:
		return r3.Vec{}, invalid("origin_y", "unknown origin %q", k.OriginY)
	}
	switch k.OriginY {
	case OriginBackScrew1, OriginBackScrewCenter, OriginBackScrew2:
		y = -y
	}
	z, err := k.OriginZ.shift(k.Size.Z)
	if err != nil {
		return r3.Vec{}, invalid("origin_z", "%v", err)
	}
	return r3.Vec{Y: y, Z: z}, nil
}

func (k LoadCellParms) validate() error {
	switch {
	case k.Size.X <= 0 || k.Size.Y <= 0 || k.Size.Z <= 0:
		return invalid("size", "every side must be positive")
	case k.ThinLength < 0 || k.ThinLength >= k.Size.Y:
		return invalid("thin_length", "must be in [0, %s)", dim(k.Size.Y))
	case k.ThinLength > 0 && (k.ThinWidth <= 0 || k.ThinWidth >= k.Size.X):
		return invalid("thin_width", "must be in (0, %s)", dim(k.Size.X))
	case k.HoleDiameter < 0 || k.HoleDiameter >= k.Size.Z:
		return invalid("hole_diameter", "must be in [0, %s)", dim(k.Size.Z))
	case k.HoleDistance < 0 || k.HoleBridgeHeight < 0 || k.CenterHoleDiameter < 0:
		return invalid("hole_distance", "cutout dimensions may not be negative")
	case k.ScrewDistanceA < 0 || k.ScrewDistanceB < 0 || k.ScrewDistanceX < 0:
		return invalid("screw_distance_a", "screw distances may not be negative")
	case k.HoleSegments < 3:
		return invalid("hole_segments", "need at least 3")
	case k.ScrewSegments < 3:
		return invalid("screw_segments", "need at least 3")
	}
	return nil
}

// LoadCell returns the bar with its cutout holes bored along X and the
// front (-Y) and back (+Y) screw holes along Z, tapped where requested.
func LoadCell(k LoadCellParms) (*pmesh.Part, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	at, err := k.origin()
	if err != nil {
		return nil, err
	}
	s := k.Size
	p := pmesh.NewPart(LoadCellName(k), pmesh.BoxSolid{Center: at, Size: s})
	p.Segments = k.HoleSegments
	cut := func(tool pmesh.Solid, offset r3.Vec) { p.Cut(pmesh.Move(tool, r3.Add(at, offset))) }

	if k.ThinLength > 0 {
		for _, side := range []float64{-1, 1} {
			box := cornerBox(
				r3.Vec{X: side * k.ThinWidth / 2, Y: -k.ThinLength / 2, Z: -s.Z},
				r3.Vec{X: side * s.X, Y: k.ThinLength / 2, Z: s.Z},
			)
			// Rounding every edge of the cutter only shows on its
			// inner vertical edges; the rest lie outside the bar.
			box.Round = math.Min(1.5, 0.5*math.Min(box.Size.X, math.Min(box.Size.Y, box.Size.Z)))
			cut(box, r3.Vec{})
		}
	}

	if k.HoleDiameter > 0 {
		bore := func(d float64) pmesh.Solid {
			return pmesh.CylinderSolid{Axis: pmesh.AxisX, Height: 2 * s.X, Radius: d / 2}
		}
		cut(bore(k.HoleDiameter), r3.Vec{Y: -k.HoleDistance / 2})
		if k.HoleDistance > 0 {
			cut(bore(k.HoleDiameter), r3.Vec{Y: k.HoleDistance / 2})
		}
		if k.HoleBridgeHeight > 0 && k.HoleDistance > k.HoleDiameter {
			cut(pmesh.BoxSolid{Size: r3.Vec{X: 2 * s.X, Y: k.HoleDistance, Z: k.HoleBridgeHeight}}, r3.Vec{})
		}
		if k.CenterHoleDiameter > 0 {
			cut(bore(k.CenterHoleDiameter), r3.Vec{})
		}
	}

	for _, end := range []struct {
		size   thread.Size
		tapped bool
		dir    float64
	}{
		{k.FrontScrew, k.FrontThreaded && k.Threading, -1},
		{k.BackScrew, k.BackThreaded && k.Threading, 1},
	} {
		if end.size == "" {
			continue
		}
		tool, err := k.screwTool(end.size, end.tapped)
		if err != nil {
			return nil, err
		}
		xs := []float64{0}
		if k.ScrewDistanceX > 0 {
			xs = []float64{-k.ScrewDistanceX / 2, k.ScrewDistanceX / 2}
		}
		ys := []float64{k.ScrewDistanceA / 2}
		if k.ScrewDistanceB > 0 {
			ys = append(ys, k.ScrewDistanceA/2+k.ScrewDistanceB)
		}
		for _, x := range xs {
			for _, y := range ys {
				cut(tool, r3.Vec{X: x, Y: y * end.dir})
			}
		}
	}
	return p, nil
}

// screwTool returns a hole through the bar along Z centered on the
// origin, threaded when tapped.
func (k LoadCellParms) screwTool(size thread.Size, tapped bool) (pmesh.Solid, error) {
	spec, err := thread.Lookup(size)
	if err != nil {
		return nil, fmt.Errorf("screw holes: %w", err)
	}
	if !tapped {
		return pmesh.CylinderSolid{Axis: pmesh.AxisZ, Height: 2 * k.Size.Z, Radius: spec.Diameter / 2}, nil
	}
	l := k.Size.Z + 2
	rod, err := form3.ThreadedCylinder(form3.ThreadParms{
		Diameter:      spec.Diameter,
		Length:        l,
		Pitch:         spec.Pitch,
		Starts:        1,
		Depth:         spec.ThreadDepth(),
		Segments:      k.ScrewSegments,
		BevelSegments: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("load cell screw thread: %w", err)
	}
	t := pmesh.NewPart("screw thread", pmesh.MeshSolid{M: rod})
	t.Keep(slab(spec.Diameter, -l, 0))
	t.Segments = k.ScrewSegments
	// The rod hangs below z = 0.
	return pmesh.Move(t, r3.Vec{Z: l / 2}), nil
}
