package obj3

import (
	"errors"
	"math"
	"testing"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

func isValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func within(got, want, frac float64) bool {
	return math.Abs(got-want) <= frac*math.Abs(want)
}

func TestDefaultsBuild(t *testing.T) {
	for _, name := range Parts() {
		p, err := Build(name, nil)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if p.Name == "" {
			t.Errorf("%s: part has no name", name)
		}
		if p.Base == nil {
			t.Errorf("%s: part has no base solid", name)
		}
	}
}

func TestNames(t *testing.T) {
	for _, test := range []struct {
		got, want string
	}{
		{ScrewName(ScrewDefaults()), "Pan Head Screw M3x10mm"},
		{NutName(NutDefaults()), "Nut M3"},
		{NutHoleName(NutHoleDefaults()), "Nut Hole M3"},
		{CouplingName(CouplingDefaults()), "Coupling D19L25"},
		{LeadScrewName(LeadScrewDefaults()), "Lead Screw T8 100mm"},
		{LeadNutName(LeadNutDefaults()), "Lead Nut T8"},
		{CompressionSpringName(CompressionSpringDefaults()), "Compression Spring D10L10"},
		{AluminumExtrusionName(AluminumExtrusionDefaults()), "Aluminum Extrusion 2020 100mm"},
		{LinearGuideRailName(LinearGuideRailDefaults()), "Linear Guide Rail MGN9 100mm"},
		{LinearGuideBlockName(LinearGuideBlockDefaults()), "Linear Guide Block MGN9C"},
		{DonutCylinderName(DonutCylinderDefaults()), "Donut Cylinder 1/0.5"},
		{ClothoidPlateName(ClothoidPlateDefaults()), "Clothoid Corner Rectangle 2x2"},
		{BoxName(BoxDefaults()), "Cube"},
		{ClothoidCurveName(ClothoidSpec{Param: 3.162}), "Clothoid Curve A3.162"},
		{BoxName(BoxParms{Size: r3.Vec{X: 1, Y: 2, Z: 1}}), "Cuboid"},
		{ReuleauxTetrahedronName(ReuleauxTetrahedronDefaults()), "Reuleaux Tetrahedron"},
		{LoadCellName(LoadCellDefaults()), "Load Cell 80mm"},
		{PinHeaderName(PinHeaderDefaults()), "Pin Header 2.54mm 1x4"},
	} {
		if test.got != test.want {
			t.Errorf("got name %q, want %q", test.got, test.want)
		}
	}
}

func TestBox(t *testing.T) {
	k := BoxParms{Size: r3.Vec{X: 10, Y: 20, Z: 5}, OriginX: AlignMin, OriginZ: AlignMax}
	p, err := Box(k)
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	b := m.Bounds()
	if math.Abs(b.Min.X) > 1e-12 || math.Abs(b.Max.Z) > 1e-12 || math.Abs(b.Min.Y+10) > 1e-12 {
		t.Errorf("bad box bounds %v", b)
	}
	if v := m.Volume(); math.Abs(v-1000) > 1e-9 {
		t.Errorf("volume %g, want 1000", v)
	}
	if _, err := Box(BoxParms{Size: r3.Vec{X: 1, Y: -1, Z: 1}}); !isValidation(err) {
		t.Errorf("negative size: got %v, want validation error", err)
	}
	if _, err := Box(BoxParms{Size: r3.Vec{X: 1, Y: 1, Z: 1}, OriginY: "front"}); !isValidation(err) {
		t.Errorf("bad alignment: got %v, want validation error", err)
	}
}

func TestDonutCylinder(t *testing.T) {
	k := DonutCylinderDefaults()
	p, err := DonutCylinder(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Booleans) != 0 {
		t.Fatalf("matching segment counts should not need booleans, got %d", len(p.Booleans))
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pi * (0.25 - 0.0625)
	if v := m.Volume(); !within(v, want, 0.03) {
		t.Errorf("volume %g, want about %g", v, want)
	}
	if b := m.Bounds(); math.Abs(b.Min.Z) > 1e-9 {
		t.Errorf("bottom origin tube starts at z=%g", b.Min.Z)
	}

	k.HoleSegments = 12
	p, err = DonutCylinder(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Booleans) != 1 || p.Booleans[0].Op != pmesh.Difference {
		t.Errorf("own hole segments should cut the hole, got %v", p.Booleans)
	}

	for _, bad := range []DonutCylinderParms{
		{Method: DonutDiameterHole, Diameter: 1, HoleDiameter: 1, Height: 1, Segments: 8, Amount: math.Pi},
		{Method: DonutDiameterThickness, Diameter: 1, Thickness: 0.6, Height: 1, Segments: 8, Amount: math.Pi},
		{Method: DonutHoleThickness, HoleDiameter: 1, Thickness: 0.5, Height: 0, Segments: 8, Amount: math.Pi},
		{Method: "radius", Diameter: 1, Height: 1, Segments: 8, Amount: math.Pi},
	} {
		if _, err := DonutCylinder(bad); !isValidation(err) {
			t.Errorf("%+v: got %v, want validation error", bad, err)
		}
	}
}

func TestCrossExtrusion(t *testing.T) {
	k := CrossExtrusionDefaults()
	k.Origin = form3.OriginTop
	p, err := CrossExtrusion(k)
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	if v := m.Volume(); math.Abs(v-5) > 1e-9 {
		t.Errorf("volume %g, want 5", v)
	}
	if b := m.Bounds(); math.Abs(b.Max.Z) > 1e-12 {
		t.Errorf("top origin cross reaches z=%g", b.Max.Z)
	}
	k.Height = 0
	p, err = CrossExtrusion(k)
	if err != nil {
		t.Fatal(err)
	}
	m, _ = p.Build()
	if len(m.Faces) != 1 {
		t.Errorf("flat cross has %d faces, want 1", len(m.Faces))
	}
	k.HLength = 0.5
	if _, err := CrossExtrusion(k); !isValidation(err) {
		t.Errorf("short bar: got %v, want validation error", err)
	}
}

func TestReuleauxPolygon(t *testing.T) {
	for _, test := range []struct {
		sides int
		name  string
	}{
		{3, "Reuleaux Triangle"},
		{4, "Reuleaux-ish Square"},
		{21, "Reuleaux Polygon"},
	} {
		k := ReuleauxPolygonDefaults()
		k.Sides = test.sides
		p, err := ReuleauxPolygon(k)
		if err != nil {
			t.Fatal(err)
		}
		if p.Name != test.name {
			t.Errorf("%d sides: got %q, want %q", test.sides, p.Name, test.name)
		}
	}
	k := ReuleauxPolygonDefaults()
	k.Plane = PlaneYZ
	p, err := ReuleauxPolygon(k)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := p.Build()
	if b := m.Bounds(); b.Max.X-b.Min.X > 1e-9 || b.Max.Z-b.Min.Z < 1 {
		t.Errorf("polygon not on the YZ plane: %v", b)
	}
	k.Plane = PlaneXY
	k.Thickness = 0.5
	p, _ = ReuleauxPolygon(k)
	m, _ = p.Build()
	if !m.IsManifold() {
		t.Error("Reuleaux plate not closed")
	}
}

func TestReuleauxTetrahedron(t *testing.T) {
	k := ReuleauxTetrahedronDefaults()
	p, err := ReuleauxTetrahedron(k)
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range m.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d corners after triangulation", i, len(f))
		}
	}

	k.Subdivisions = 0
	p, _ = ReuleauxTetrahedron(k)
	if p.Name != "Regular Tetrahedron" {
		t.Errorf("got %q for zero subdivisions", p.Name)
	}

	k = ReuleauxTetrahedronDefaults()
	k.Method = TetraUVSpheres
	k.Segments, k.Rings = 16, 8
	p, err = ReuleauxTetrahedron(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Booleans) != 3 {
		t.Fatalf("got %d booleans, want 3", len(p.Booleans))
	}
	for _, b := range p.Booleans {
		if b.Op != pmesh.Intersect {
			t.Errorf("sphere combined with %v", b.Op)
		}
	}
	k.Method = "cubes"
	if _, err := ReuleauxTetrahedron(k); !isValidation(err) {
		t.Errorf("bad method: got %v, want validation error", err)
	}
}

func TestOloidSphericon(t *testing.T) {
	o, err := Oloid(OloidDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Build(); err != nil {
		t.Error(err)
	}
	s, err := Sphericon(SphericonDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Build(); err != nil {
		t.Error(err)
	}
	if _, err := Sphericon(SphericonParms{Vertices: 2, Diameter: 1, Segments: 8}); !isValidation(err) {
		t.Errorf("two vertices: got %v, want validation error", err)
	}
}

func TestClothoidResolve(t *testing.T) {
	for _, test := range []struct {
		in      ClothoidSpec
		r, l, a float64
	}{
		{ClothoidSpec{Method: ByRadiusLength, Radius: 2, Length: 3.4}, 2, 3.4, math.Sqrt(6.8)},
		{ClothoidSpec{Method: ByLengthParam, Length: 4, Param: 2}, 1, 4, 2},
		{ClothoidSpec{Method: ByRadiusParam, Radius: 4, Param: 2}, 4, 1, 2},
	} {
		got, err := test.in.Resolve()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got.Radius-test.r) > 1e-12 || math.Abs(got.Length-test.l) > 1e-12 || math.Abs(got.Param-test.a) > 1e-12 {
			t.Errorf("%s: got R=%g L=%g A=%g", test.in.Method, got.Radius, got.Length, got.Param)
		}
	}
	if _, err := (ClothoidSpec{Method: "XY", Radius: 1, Length: 1}).Resolve(); !isValidation(err) {
		t.Errorf("bad method: got %v", err)
	}
	for s, want := range map[string]ClothoidMethod{"RL": ByRadiusLength, "l&a": ByLengthParam, "R_and_A": ByRadiusParam} {
		got, err := ParseClothoidMethod(s)
		if err != nil || got != want {
			t.Errorf("ParseClothoidMethod(%q) = %q, %v", s, got, err)
		}
	}
}

func TestClothoidCurveAndPlate(t *testing.T) {
	k := ClothoidCurveDefaults()
	c, err := ClothoidCurve(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != k.Vertices+1 {
		t.Errorf("got %d points, want %d", len(c.Points), k.Vertices+1)
	}
	if c.Points[0].X != 0 || c.Points[0].Y != 0 {
		t.Errorf("curve starts at %v", c.Points[0])
	}

	pk := ClothoidPlateDefaults()
	p, err := ClothoidPlate(pk)
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	b := m.Bounds()
	if math.Abs(b.Max.Z-pk.Thickness) > 1e-12 || b.Max.X > pk.Width/2+1e-9 || b.Max.Y > pk.Height/2+1e-9 {
		t.Errorf("plate bounds %v", b)
	}
	if v := m.Volume(); v <= 0 || v > pk.Width*pk.Height*pk.Thickness {
		t.Errorf("plate volume %g", v)
	}
}

func TestSpring(t *testing.T) {
	k := CompressionSpringDefaults()
	k.GroundEnds = true
	p, err := CompressionSpring(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Booleans) != 2 {
		t.Errorf("ground spring has %d cuts, want 2", len(p.Booleans))
	}
	k.OuterDiameter = 1.5
	if _, err := CompressionSpring(k); !isValidation(err) {
		t.Errorf("thin spring: got %v, want validation error", err)
	}
}

func TestLeadNutScrewHoles(t *testing.T) {
	k := LeadNutDefaults()
	centers := k.screwHoleCenters()
	if len(centers) != 2*k.ScrewHoleCount {
		t.Fatalf("got %d holes, want %d", len(centers), 2*k.ScrewHoleCount)
	}
	for i, c := range centers {
		if r := r3.Norm(c); math.Abs(r-k.ScrewHolesPCD/2) > 1e-9 {
			t.Errorf("hole %d at radius %g", i, r)
		}
	}
	if d := r3.Norm(r3.Add(centers[0], centers[1])); d > 1e-9 {
		t.Errorf("first pair not opposite: %v %v", centers[0], centers[1])
	}
	p, err := LeadNut(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Bevel.Weights) == 0 {
		t.Error("lead nut has no bevel weights")
	}
	k.HoleDiameter = 12
	if _, err := LeadNut(k); !isValidation(err) {
		t.Errorf("wide hole: got %v, want validation error", err)
	}
}

func TestCoupling(t *testing.T) {
	k := CouplingDefaults()
	p, err := Coupling(k)
	if err != nil {
		t.Fatal(err)
	}
	// Two set screw positions each with a turned copy, and the slit.
	if len(p.Booleans) != 5 {
		t.Errorf("got %d booleans, want 5", len(p.Booleans))
	}
	if len(p.Bevel.Weights) == 0 {
		t.Error("coupling rims carry no bevel weight")
	}
	body := pmesh.Revolve(couplingProfile(k), 48)
	if !body.IsManifold() {
		t.Fatal("coupling body not closed")
	}
	want := math.Pi * (9.5*9.5*25 - 16*7 - 6.25*7 - 4.25*4.25*11)
	if v := body.Volume(); !within(v, want, 0.03) {
		t.Errorf("body volume %g, want about %g", v, want)
	}
	k.D2 = 19
	if _, err := Coupling(k); !isValidation(err) {
		t.Errorf("bore as wide as coupling: got %v, want validation error", err)
	}
}

func TestAluminumExtrusion(t *testing.T) {
	names := ExtrusionPresets()
	if len(names) != 7 || names[0] != "2020" {
		t.Fatalf("presets %v", names)
	}
	k := AluminumExtrusionDefaults()
	if err := k.SetPreset("3030"); err != nil {
		t.Fatal(err)
	}
	p, err := AluminumExtrusion(k)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Booleans) < 2 {
		t.Errorf("3030 should cut center and corner holes, got %d cuts", len(p.Booleans))
	}
	if len(p.Bevel.Weights) == 0 {
		t.Error("no corner bevel weights")
	}
	if err := k.SetPreset("1515"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestLoadCell(t *testing.T) {
	names := LoadCellPresets()
	if len(names) != 4 || names[0] != "i-shape" {
		t.Fatalf("presets %v", names)
	}
	for _, test := range []struct {
		preset string
		cuts   int
	}{
		{"normal", 6},
		{"small", 6},
		{"tiny", 7},    // cutout holes, center hole, two screws at each end
		{"i-shape", 9}, // thin part, cutout holes, bridge, side by side screws
	} {
		k := LoadCellDefaults()
		if err := k.SetPreset(test.preset); err != nil {
			t.Fatal(err)
		}
		p, err := LoadCell(k)
		if err != nil {
			t.Fatalf("%s: %v", test.preset, err)
		}
		if len(p.Booleans) != test.cuts {
			t.Errorf("%s: got %d cuts, want %d", test.preset, len(p.Booleans), test.cuts)
		}
		if _, err := p.Build(); !errors.Is(err, pmesh.ErrNeedsCSG) {
			t.Errorf("%s: got %v, want ErrNeedsCSG", test.preset, err)
		}
	}

	// The default origin is the outermost back screw hole.
	k := LoadCellDefaults()
	p, err := LoadCell(k)
	if err != nil {
		t.Fatal(err)
	}
	base := p.Base.(pmesh.BoxSolid)
	if base.Center != (r3.Vec{Y: -35}) {
		t.Errorf("base centered at %v, want y=-35", base.Center)
	}
	last := p.Booleans[len(p.Booleans)-1].Tool.(pmesh.Placed)
	if r3.Norm(last.Offset) > 1e-12 {
		t.Errorf("outer back screw hole at %v, want origin", last.Offset)
	}
	if _, ok := last.S.(pmesh.CylinderSolid); !ok {
		t.Errorf("untapped hole is %T", last.S)
	}

	k.OriginY = OriginCenter
	k.OriginZ = AlignMax
	k.Threading = true
	p, err = LoadCell(k)
	if err != nil {
		t.Fatal(err)
	}
	if c := p.Base.(pmesh.BoxSolid).Center; c != (r3.Vec{Z: -6.35}) {
		t.Errorf("top origin base centered at %v", c)
	}
	tapped := p.Booleans[len(p.Booleans)-1].Tool.(pmesh.Placed)
	if rod, ok := tapped.S.(pmesh.Placed); !ok {
		t.Errorf("tapped hole is %T", tapped.S)
	} else if _, ok := rod.S.(*pmesh.Part); !ok {
		t.Errorf("tapped hole wraps %T, want threaded part", rod.S)
	}

	for _, test := range []struct {
		field string
		edit  func(*LoadCellParms)
	}{
		{"size", func(k *LoadCellParms) { k.Size.Z = 0 }},
		{"hole_diameter", func(k *LoadCellParms) { k.HoleDiameter = 13 }},
		{"thin_width", func(k *LoadCellParms) { k.ThinLength, k.ThinWidth = 20, 0 }},
		{"origin_y", func(k *LoadCellParms) { k.OriginY = "side" }},
		{"hole_segments", func(k *LoadCellParms) { k.HoleSegments = 2 }},
	} {
		k := LoadCellDefaults()
		test.edit(&k)
		_, err := LoadCell(k)
		var v *ValidationError
		if !errors.As(err, &v) || v.Field != test.field {
			t.Errorf("%s: got %v", test.field, err)
		}
	}
	k = LoadCellDefaults()
	k.BackScrew = "m99"
	if _, err := LoadCell(k); !errors.Is(err, thread.ErrUnknownSize) {
		t.Errorf("got %v, want unknown size", err)
	}
	if err := k.SetPreset("50kg"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestPinHeader(t *testing.T) {
	if names := PinHeaderPresets(); len(names) != 3 || names[0] != "1.27" {
		t.Fatalf("presets %v", names)
	}
	k := PinHeaderDefaults()
	p, err := PinHeader(k)
	if err != nil {
		t.Fatal(err)
	}
	members := p.Base.(pmesh.GroupSolid).Members
	block, pin := members[0].(*pmesh.Part), members[1].(*pmesh.Part)
	if len(block.Booleans) != 1 {
		t.Errorf("2.54mm block has %d cuts, want the underside notch", len(block.Booleans))
	}
	if n := len(block.Bevel.Weights); n != 4 {
		t.Errorf("block has %d weighted edges, want the 4 vertical ones", n)
	}
	if n := len(pin.Bevel.Weights); n != 8 {
		t.Errorf("pin has %d weighted edges, want the 8 end edges", n)
	}
	if _, err := p.Build(); !errors.Is(err, pmesh.ErrNeedsCSG) {
		t.Errorf("got %v, want ErrNeedsCSG", err)
	}

	// Without the chamfers a 1.27mm header is plain blocks and pins.
	if err := k.SetPreset("1.27"); err != nil {
		t.Fatal(err)
	}
	k.Rows = 2
	p, err = PinHeader(k)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Pin Header 1.27mm 2x4" {
		t.Errorf("got name %q", p.Name)
	}
	for _, s := range p.Base.(pmesh.GroupSolid).Members {
		s.(*pmesh.Part).ClearBevelWeights()
	}
	m, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := 8 * (1.27*2.1*1.5 + 0.4*0.4*6.8)
	if v := m.Volume(); !within(v, want, 1e-9) {
		t.Errorf("volume %g, want %g", v, want)
	}
	b := m.Bounds()
	if math.Abs(b.Max.X-4.445) > 1e-9 || math.Abs(b.Max.Y-2.32) > 1e-9 || math.Abs(b.Min.Z+2.3) > 1e-9 || math.Abs(b.Max.Z-4.5) > 1e-9 {
		t.Errorf("bad header bounds %v", b)
	}

	k.Columns = 0
	if _, err := PinHeader(k); !isValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
	k = PinHeaderDefaults()
	k.PinThickness = 3
	if _, err := PinHeader(k); !isValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestLinearGuide(t *testing.T) {
	rail, err := LinearGuideRail(LinearGuideRailDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if len(rail.Bevel.Weights) == 0 {
		t.Error("rail has no bevel weights")
	}
	if _, err := LinearGuideBlock(LinearGuideBlockDefaults()); err != nil {
		t.Fatal(err)
	}
	k := LinearGuideRailDefaults()
	k.Length = 0
	if _, err := LinearGuideRail(k); !isValidation(err) {
		t.Errorf("zero length rail: got %v, want validation error", err)
	}
}

func TestScrewValidation(t *testing.T) {
	k := ScrewDefaults()
	k.Thread = ManualThread
	k.UnthreadedLength = k.Length + 1
	if _, err := Screw(k); !isValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
	n := NutDefaults()
	n.Diameter = n.NutDiameter
	if _, err := Nut(n); !isValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func node(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		t.Fatal(err)
	}
	return &n
}

func TestBuildFromYAML(t *testing.T) {
	p, err := Build("box", node(t, "size: {x: 1, y: 2, z: 3}"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Cuboid" {
		t.Errorf("got %q", p.Name)
	}

	// The size fills in the catalog values and explicit fields win.
	p, err = Build("screw", node(t, "size: m5\nlength: 20\nhead: flat"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Flat Head Screw M5x20mm" {
		t.Errorf("got %q", p.Name)
	}

	p, err = Build("aluminum_extrusion", node(t, "preset: \"2040\"\nlength: 50"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Aluminum Extrusion 2040 50mm" {
		t.Errorf("got %q", p.Name)
	}

	p, err = Build("load_cell", node(t, "preset: tiny\norigin_y: center"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Load Cell 45mm" {
		t.Errorf("got %q", p.Name)
	}

	p, err = Build("pin_header", node(t, "preset: \"2.00\"\ncolumns: 10"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Pin Header 2mm 1x10" {
		t.Errorf("got %q", p.Name)
	}

	if _, err := Build("box", node(t, "size: {x: -1, y: 1, z: 1}")); !isValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
	if _, err := Build("gear", nil); err == nil {
		t.Error("unknown part accepted")
	}
	if _, err := Build("screw", node(t, "size: m99")); !errors.Is(err, thread.ErrUnknownSize) {
		t.Errorf("got %v, want unknown size", err)
	}
}

func TestProfiles(t *testing.T) {
	for _, name := range Profiles() {
		sets, err := Profile(name, nil)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(sets) == 0 || len(sets[0]) < 3 {
			t.Errorf("%s: empty profile", name)
		}
	}
}

func TestCutNutHole(t *testing.T) {
	plate, err := Box(BoxDefaults())
	if err != nil {
		t.Fatal(err)
	}
	hole, err := CutNutHole(plate, NutHoleDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if len(plate.Booleans) != 1 || plate.Booleans[0].Op != pmesh.Difference || plate.Booleans[0].Tool != pmesh.Solid(hole) {
		t.Errorf("plate booleans %+v", plate.Booleans)
	}
	if _, err := CutNutHole(nil, NutHoleDefaults()); !isValidation(err) {
		t.Errorf("want validation error without a target, got %v", err)
	}
}

func TestClosedProfile(t *testing.T) {
	if ClosedProfile("clothoid_curve") {
		t.Error("clothoid curve is an open path")
	}
	if !ClosedProfile("reuleaux_polygon") {
		t.Error("reuleaux polygon outline is closed")
	}
}
