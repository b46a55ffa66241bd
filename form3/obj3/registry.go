package obj3

import (
	"fmt"
	"sort"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d2"
	"gopkg.in/yaml.v3"
)

// BuildFunc builds a part from YAML parameters. Fields missing from the
// node keep their defaults; a nil node builds the default part.
type BuildFunc func(params *yaml.Node) (*pmesh.Part, error)

// ProfileFunc builds a set of planar outlines from YAML parameters.
type ProfileFunc func(params *yaml.Node) ([]d2.Set, error)

// presetter is a parameter struct with a catalog key, such as a screw
// size, that fills in many other fields.
type presetter interface {
	applyPreset() error
}

func (k *ScrewParms) applyPreset() error            { return k.SetSize(k.Size) }
func (k *NutParms) applyPreset() error              { return k.SetSize(k.Size) }
func (k *NutHoleParms) applyPreset() error          { return k.SetSize(k.Size) }
func (k *CouplingParms) applyPreset() error         { return k.SetSetScrewSize(k.SetScrewSize) }
func (k *LinearGuideRailParms) applyPreset() error  { return k.SetSize(k.Size) }
func (k *LinearGuideBlockParms) applyPreset() error { return k.SetSize(k.Size) }
func (k *AluminumExtrusionParms) applyPreset() error {
	if k.Preset == "" {
		return nil
	}
	return k.SetPreset(k.Preset)
}
func (k *LoadCellParms) applyPreset() error {
	if k.Preset == "" {
		return nil
	}
	return k.SetPreset(k.Preset)
}
func (k *PinHeaderParms) applyPreset() error {
	if k.Preset == "" {
		return nil
	}
	return k.SetPreset(k.Preset)
}

// decode overlays params onto the defaults of a parameter struct. A
// catalog key in params is applied first so explicit fields override
// the catalog values.
func decode[T any](defaults func() T, params *yaml.Node) (T, error) {
	k := defaults()
	if params == nil || params.Kind == 0 {
		return k, nil
	}
	if err := params.Decode(&k); err != nil {
		return k, fmt.Errorf("decoding parameters: %w", err)
	}
	if p, ok := any(&k).(presetter); ok {
		if err := p.applyPreset(); err != nil {
			return k, err
		}
		if err := params.Decode(&k); err != nil {
			return k, fmt.Errorf("decoding parameters: %w", err)
		}
	}
	return k, nil
}

func builder[T any](defaults func() T, build func(T) (*pmesh.Part, error)) BuildFunc {
	return func(params *yaml.Node) (*pmesh.Part, error) {
		k, err := decode(defaults, params)
		if err != nil {
			return nil, err
		}
		return build(k)
	}
}

var parts = map[string]BuildFunc{
	"aluminum_extrusion":   builder(AluminumExtrusionDefaults, AluminumExtrusion),
	"box":                  builder(BoxDefaults, Box),
	"clothoid_plate":       builder(ClothoidPlateDefaults, ClothoidPlate),
	"compression_spring":   builder(CompressionSpringDefaults, CompressionSpring),
	"coupling":             builder(CouplingDefaults, Coupling),
	"cross_extrusion":      builder(CrossExtrusionDefaults, CrossExtrusion),
	"donut_cylinder":       builder(DonutCylinderDefaults, DonutCylinder),
	"lead_nut":             builder(LeadNutDefaults, LeadNut),
	"lead_screw":           builder(LeadScrewDefaults, LeadScrew),
	"linear_guide_block":   builder(LinearGuideBlockDefaults, LinearGuideBlock),
	"linear_guide_rail":    builder(LinearGuideRailDefaults, LinearGuideRail),
	"load_cell":            builder(LoadCellDefaults, LoadCell),
	"nut":                  builder(NutDefaults, Nut),
	"nut_hole":             builder(NutHoleDefaults, NutHole),
	"oloid":                builder(OloidDefaults, Oloid),
	"pin_header":           builder(PinHeaderDefaults, PinHeader),
	"reuleaux_polygon":     builder(ReuleauxPolygonDefaults, ReuleauxPolygon),
	"reuleaux_tetrahedron": builder(ReuleauxTetrahedronDefaults, ReuleauxTetrahedron),
	"screw":                builder(ScrewDefaults, Screw),
	"sphericon":            builder(SphericonDefaults, Sphericon),
}

var profiles = map[string]ProfileFunc{
	"clothoid_curve": func(params *yaml.Node) ([]d2.Set, error) {
		k, err := decode(ClothoidCurveDefaults, params)
		if err != nil {
			return nil, err
		}
		c, err := ClothoidCurve(k)
		return []d2.Set{c.Points}, err
	},
	"clothoid_plate": func(params *yaml.Node) ([]d2.Set, error) {
		k, err := decode(ClothoidPlateDefaults, params)
		if err != nil {
			return nil, err
		}
		r, err := ClothoidOutline(k)
		return []d2.Set{r.Points}, err
	},
	"aluminum_extrusion": func(params *yaml.Node) ([]d2.Set, error) {
		k, err := decode(AluminumExtrusionDefaults, params)
		if err != nil {
			return nil, err
		}
		return ExtrusionOutline(k)
	},
	"reuleaux_polygon": func(params *yaml.Node) ([]d2.Set, error) {
		k, err := decode(ReuleauxPolygonDefaults, params)
		if err != nil {
			return nil, err
		}
		s, err := ReuleauxOutline(k)
		return []d2.Set{s}, err
	},
}

// Parts returns the names accepted by Build in order.
func Parts() []string { return sortedKeys(parts) }

// Profiles returns the names accepted by Profile in order.
func Profiles() []string { return sortedKeys(profiles) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Build builds the named part, such as "coupling", from YAML parameters.
func Build(name string, params *yaml.Node) (*pmesh.Part, error) {
	b, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("unknown part %q", name)
	}
	p, err := b(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// Profile builds the planar outlines of the named part.
func Profile(name string, params *yaml.Node) ([]d2.Set, error) {
	f, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("no profile for %q", name)
	}
	s, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("%s profile: %w", name, err)
	}
	return s, nil
}

// ClosedProfile reports whether the outlines of the named profile are
// closed polygons. Curves such as the clothoid are open polylines.
func ClosedProfile(name string) bool { return name != "clothoid_curve" }
