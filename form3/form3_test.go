package form3

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func m3Thread(bevel int) ThreadParms {
	return ThreadParms{
		Diameter:      3,
		Length:        4,
		Pitch:         0.5,
		Starts:        1,
		Depth:         0.541,
		Segments:      16,
		BevelSegments: bevel,
	}
}

func TestThreadedCylinder(t *testing.T) {
	for _, test := range []struct {
		name  string
		parms ThreadParms
	}{
		{"sharp", m3Thread(0)},
		{"rounded", m3Thread(3)},
		{"left", func() ThreadParms { p := m3Thread(0); p.LeftHand = true; return p }()},
		{"double", func() ThreadParms { p := m3Thread(0); p.Starts = 2; return p }()},
	} {
		m, err := ThreadedCylinder(test.parms)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if !m.IsManifold() {
			t.Errorf("%s: thread is not manifold", test.name)
		}
		rMin := test.parms.MinorDiameter() / 2
		rMaj := test.parms.Diameter / 2
		lead := test.parms.Lead()
		turns := math.Ceil(test.parms.Length/lead) + 2
		h := turns * lead
		v := m.Volume()
		if lo, hi := math.Pi*rMin*rMin*(h-lead), math.Pi*rMaj*rMaj*(h+lead); v < lo || v > hi {
			t.Errorf("%s: volume %g outside (%g, %g)", test.name, v, lo, hi)
		}
		b := m.Bounds()
		if b.Max.X > rMaj+1e-9 || b.Min.X < -rMaj-1e-9 {
			t.Errorf("%s: thread wider than major diameter: %v", test.name, b)
		}
		if b.Min.Z > -test.parms.Length {
			t.Errorf("%s: thread ends at z=%g above -length", test.name, b.Min.Z)
		}
	}
}

func TestThreadedCylinderBadParms(t *testing.T) {
	p := m3Thread(0)
	p.Depth = 3
	if _, err := ThreadedCylinder(p); err == nil {
		t.Error("want error for depth reaching the axis")
	}
	p = m3Thread(0)
	p.Segments = 2
	if _, err := ThreadedCylinder(p); err == nil {
		t.Error("want error for 2 segments")
	}
}

func TestNutAcrossFlats(t *testing.T) {
	const flats, thick = 5.5, 2.4
	d := flats / math.Cos(math.Pi/6)
	m, err := Nut(d, thick, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 12 || len(m.Faces) != 8 {
		t.Fatalf("nut has %d vertices and %d faces, want 12 and 8", len(m.Vertices), len(m.Faces))
	}
	b := m.Bounds()
	size := r3.Sub(b.Max, b.Min)
	if math.Abs(size.X-flats) > 1e-9 {
		t.Errorf("across flats %g, want %g", size.X, flats)
	}
	if math.Abs(size.Y/2-3.175) > 1e-3 {
		t.Errorf("circumradius %g, want 3.175", size.Y/2)
	}
	if b.Max.Z != 0 || math.Abs(b.Min.Z+thick) > 1e-12 {
		t.Errorf("nut spans z %g..%g, want %g..0", b.Min.Z, b.Max.Z, -thick)
	}
	area := 3 * math.Sqrt(3) / 2 * (d / 2) * (d / 2)
	if v := m.Volume(); math.Abs(v-area*thick) > 1e-9 {
		t.Errorf("volume %g, want %g", v, area*thick)
	}
	if !m.IsManifold() {
		t.Error("nut is not manifold")
	}
}

func TestBeveledNut(t *testing.T) {
	m, err := Nut(10, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("beveled nut is not manifold")
	}
	sharp, _ := Nut(10, 3, 0)
	if m.Volume() >= sharp.Volume() {
		t.Errorf("beveled volume %g not below sharp %g", m.Volume(), sharp.Volume())
	}
}

func TestHeads(t *testing.T) {
	pan, err := PanHead(5.5, 2.1, 32, 4)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := FlatHead(6, 0.5, 32, 3)
	if err != nil {
		t.Fatal(err)
	}
	sharpFlat, err := FlatHead(6, 0, 32, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name       string
		m          pmesh.Mesh
		zmin, zmax float64
		r          float64
	}{
		{"pan", pan, 0, 2.1, 2.75},
		{"flat", flat, -3.5, 0, 3},
		{"sharp flat", sharpFlat, -3, 0, 3},
	} {
		if !test.m.IsManifold() {
			t.Errorf("%s head is not manifold", test.name)
		}
		b := test.m.Bounds()
		if math.Abs(b.Min.Z-test.zmin) > 1e-9 || math.Abs(b.Max.Z-test.zmax) > 1e-9 {
			t.Errorf("%s head spans z %g..%g, want %g..%g", test.name, b.Min.Z, b.Max.Z, test.zmin, test.zmax)
		}
		if b.Max.X > test.r+1e-9 || b.Max.X < test.r*0.99 {
			t.Errorf("%s head radius %g, want %g", test.name, b.Max.X, test.r)
		}
		if test.m.Volume() <= 0 {
			t.Errorf("%s head has volume %g", test.name, test.m.Volume())
		}
	}
}

func TestPhillipsRecess(t *testing.T) {
	const d, depth = 3, 1.5
	m, err := PhillipsRecess(d, depth)
	if err != nil {
		t.Fatal(err)
	}
	b := m.Bounds()
	if math.Abs(b.Min.Z+depth) > 1e-12 || b.Max.Z != 0 {
		t.Errorf("recess spans z %g..%g", b.Min.Z, b.Max.Z)
	}
	if math.Abs(b.Max.X-d/2) > 1e-12 {
		t.Errorf("recess top half width %g, want %g", b.Max.X, d/2)
	}
	for _, v := range m.Vertices {
		if v.Z < 0 && math.Abs(v.X) > d/2*(1-math.Tan(26.5*math.Pi/180))+1e-12 {
			t.Fatalf("bottom vertex %v not shrunk", v)
		}
	}
	if !m.IsManifold() || m.Volume() <= 0 {
		t.Error("recess is not a closed solid")
	}
}

func TestNutChamfer(t *testing.T) {
	for _, bottom := range []bool{false, true} {
		m, err := NutChamfer(10, 32, 0, bottom)
		if err != nil {
			t.Fatal(err)
		}
		if !m.IsManifold() || m.Volume() <= 0 {
			t.Errorf("bottom=%v: chamfer is not a closed solid", bottom)
		}
		// The cutter reaches past the corners and only comes inside the
		// inscribed circle beyond the chamfered face.
		in := math.Sqrt(3) / 2 * 5
		b := m.Bounds()
		if b.Max.X < 5 {
			t.Errorf("bottom=%v: cutter reaches %g, short of the corners", bottom, b.Max.X)
		}
		for _, v := range m.Vertices {
			if math.Hypot(v.X, v.Y) >= in {
				continue
			}
			if (bottom && v.Z >= 0) || (!bottom && v.Z <= 0) {
				t.Fatalf("bottom=%v: cutter vertex %v inside the nut", bottom, v)
			}
		}
	}
}

func TestHelixTube(t *testing.T) {
	square := []r3.Vec{{X: -2, Z: 0}, {X: -3, Z: 0}, {X: -3, Z: 1}, {X: -2, Z: 1}}
	m, err := HelixTube(square, []Coil{{Turns: 1.5, Rise: 2}}, 24, true)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("helix tube is not manifold")
	}
	b := m.Bounds()
	if math.Abs(b.Max.Z-4) > 1e-9 {
		t.Errorf("tube top at %g, want 4", b.Max.Z)
	}
	if _, err := HelixTube(square[:2], nil, 24, true); err == nil {
		t.Error("want error for a two point profile")
	}
}

func TestSpringCoil(t *testing.T) {
	s := SpringParms{
		WireDiameter:  1,
		OuterDiameter: 10,
		Pitch:         3,
		ActiveCoils:   4,
		WireSegments:  8,
		Segments:      24,
	}
	m, err := SpringCoil(s)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("spring is not manifold")
	}
	b := m.Bounds()
	if h := b.Max.Z - b.Min.Z; math.Abs(h-s.Height()) > 1e-6 {
		t.Errorf("spring height %g, want %g", h, s.Height())
	}

	// Dead coils touch the next turn.
	s.DeadCoilsTop, s.DeadCoilsBottom = 1, 1
	m, err = SpringCoil(s)
	if err != nil {
		t.Fatal(err)
	}
	b = m.Bounds()
	if h := b.Max.Z - b.Min.Z; math.Abs(h-s.Height()) > 1e-6 {
		t.Errorf("spring height with dead coils %g, want %g", h, s.Height())
	}

	s.FreeLength = 10
	top, bottom, active := s.Coils()
	if top != 1 || bottom != 1 || math.Abs(active-7.0/3) > 1e-12 {
		t.Errorf("coils %g %g %g, want 1 1 2.333", top, bottom, active)
	}
	s.ActiveCoils = active
	if h := s.Height(); math.Abs(h-10) > 1e-12 {
		t.Errorf("free length round trip %g, want 10", h)
	}
	s.FreeLength = 1.5
	top, bottom, active = s.Coils()
	if bottom != 0.5 || top != 0 || active != 0 {
		t.Errorf("short spring coils %g %g %g, want 0 0.5 0", top, bottom, active)
	}
}

func TestLeadScrewCutter(t *testing.T) {
	m, err := LeadScrewCutter(8, 6, 2, 2, 30*math.Pi/180, 10, 24)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("cutter is not manifold")
	}
	b := m.Bounds()
	if b.Min.Z > 0 || b.Max.Z < 10 {
		t.Errorf("cutter spans z %g..%g, want to cover 0..10", b.Min.Z, b.Max.Z)
	}
	if _, err := LeadScrewCutter(8, 6, 2, 1, 170*math.Pi/180, 10, 24); err == nil {
		t.Error("want error for a thread angle too wide for the pitch")
	}
}

func TestHelicalSlit(t *testing.T) {
	m, err := HelicalSlit(20, 25, 1, 3, 2, 24)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("slit is not manifold")
	}
	b := m.Bounds()
	mid := (b.Min.Z + b.Max.Z) / 2
	if math.Abs(mid-12.5) > 1e-9 {
		t.Errorf("slit centered at %g, want 12.5", mid)
	}
}

func TestTetrahedron(t *testing.T) {
	const edge = 2.0
	for _, origin := range []Origin{OriginCenter, OriginBottom, OriginApex} {
		m, err := Tetrahedron(edge, origin)
		if err != nil {
			t.Fatal(err)
		}
		want := edge * edge * edge / (6 * math.Sqrt2)
		if v := m.Volume(); math.Abs(v-want) > 1e-12 {
			t.Errorf("%s: volume %g, want %g", origin, v, want)
		}
		b := m.Bounds()
		switch origin {
		case OriginBottom:
			if math.Abs(b.Min.Z) > 1e-12 {
				t.Errorf("bottom origin: min z %g", b.Min.Z)
			}
		case OriginApex:
			if math.Abs(b.Max.Z) > 1e-12 {
				t.Errorf("apex origin: max z %g", b.Max.Z)
			}
		}
	}
	if _, err := Tetrahedron(1, "side"); err == nil {
		t.Error("want error for unknown origin")
	}
}

func TestReuleauxTetrahedron(t *testing.T) {
	const edge = 1.0
	corners, err := TetraVertices(edge, OriginCenter)
	if err != nil {
		t.Fatal(err)
	}
	for _, sub := range []int{1, 3} {
		m, err := ReuleauxTetrahedron(edge, OriginCenter, sub)
		if err != nil {
			t.Fatal(err)
		}
		if !m.IsManifold() {
			t.Errorf("subdivisions %d: not manifold", sub)
		}
		for i, v := range m.Vertices {
			onSphere := false
			for _, c := range corners {
				d := r3.Norm(r3.Sub(v, c))
				if d > edge+1e-9 {
					t.Fatalf("subdivisions %d: vertex %d %v is %g from corner %v", sub, i, v, d, c)
				}
				if math.Abs(d-edge) < 1e-9 {
					onSphere = true
				}
			}
			if !onSphere {
				t.Errorf("subdivisions %d: vertex %d off every sphere", sub, i)
			}
		}
		tetra := edge * edge * edge / (6 * math.Sqrt2)
		if v := m.Volume(); v <= tetra || v > 0.4222 {
			t.Errorf("subdivisions %d: volume %g outside (%g, 0.4222)", sub, v, tetra)
		}
	}
}

func TestSphereIntersection(t *testing.T) {
	c1, c2 := r3.Vec{}, r3.Vec{X: 1}
	start := r3.Vec{X: 0.5, Y: 1}
	end := r3.Vec{X: 0.5, Z: 1}
	pts, err := SphereIntersection(c1, 1, c2, 1, start, end, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 9 {
		t.Fatalf("want 9 points, got %d", len(pts))
	}
	r := math.Sqrt(3) / 2
	for i, p := range pts {
		if math.Abs(r3.Norm(p)-1) > 1e-12 || math.Abs(r3.Norm(r3.Sub(p, c2))-1) > 1e-12 {
			t.Errorf("point %d %v not on both spheres", i, p)
		}
	}
	if d := r3.Norm(r3.Sub(pts[0], r3.Vec{X: 0.5, Y: r})); d > 1e-12 {
		t.Errorf("arc starts at %v", pts[0])
	}
	if d := r3.Norm(r3.Sub(pts[8], r3.Vec{X: 0.5, Z: r})); d > 1e-12 {
		t.Errorf("arc ends at %v", pts[8])
	}
	_, err = SphereIntersection(c1, 1, r3.Vec{X: 5}, 1, start, end, 8)
	if !errors.Is(err, pmesh.ErrNoIntersection) {
		t.Errorf("distant spheres: got %v, want ErrNoIntersection", err)
	}
}

func TestIcoSphere(t *testing.T) {
	m, err := IcoSphere(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 162 || len(m.Faces) != 320 {
		t.Errorf("ico sphere has %d vertices and %d faces, want 162 and 320", len(m.Vertices), len(m.Faces))
	}
	for _, v := range m.Vertices {
		if math.Abs(r3.Norm(v)-2) > 1e-12 {
			t.Fatalf("vertex %v off the sphere", v)
		}
	}
	if !m.IsManifold() || m.Volume() <= 0 {
		t.Error("ico sphere is not a closed solid")
	}
}

func TestConvexHull(t *testing.T) {
	var pts []r3.Vec
	for i := 0; i < 8; i++ {
		pts = append(pts, r3.Vec{X: float64(i & 1), Y: float64(i >> 1 & 1), Z: float64(i >> 2 & 1)})
	}
	pts = append(pts, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, r3.Vec{X: 0.5, Y: 0.5, Z: 1})
	m, err := ConvexHull(pts)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 8 {
		t.Errorf("hull keeps %d vertices, want 8", len(m.Vertices))
	}
	if v := m.Volume(); math.Abs(v-1) > 1e-12 {
		t.Errorf("hull volume %g, want 1", v)
	}
	if !m.IsManifold() {
		t.Error("hull is not manifold")
	}
	flat := []r3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}
	if _, err := ConvexHull(flat); err == nil {
		t.Error("want error for coplanar points")
	}
	if _, err := ConvexHull(flat[:3]); err == nil || !strings.Contains(err.Error(), "ConvexHull") {
		t.Errorf("want error naming ConvexHull, got %v", err)
	}
}

func TestOloid(t *testing.T) {
	const r = 1.5
	m, err := Oloid(r, 64)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsManifold() {
		t.Error("oloid is not manifold")
	}
	want := 3.0524184684 * r * r * r
	if v := m.Volume(); v > want || v < 0.97*want {
		t.Errorf("volume %g, want about %g", v, want)
	}
	b := m.Bounds()
	if math.Abs(b.Min.X+r) > 1e-12 || math.Abs(b.Max.X-2*r) > 1e-12 {
		t.Errorf("oloid spans x %g..%g, want %g..%g", b.Min.X, b.Max.X, -r, 2*r)
	}
}

func TestSphericon(t *testing.T) {
	const diag = 2.0
	for _, test := range []struct {
		n, k int
	}{
		{4, 1},
		{4, 0},
		{3, 1},
		{5, 2},
		{6, 1},
	} {
		m, err := Sphericon(test.n, test.k, diag, 32)
		if err != nil {
			t.Fatal(err)
		}
		if !m.IsManifold() {
			t.Errorf("%d/%d: not manifold", test.n, test.k)
		}
		for _, v := range m.Vertices {
			if r3.Norm(v) > diag/2+1e-9 {
				t.Fatalf("%d/%d: vertex %v outside the circumsphere", test.n, test.k, v)
			}
		}
		if test.n == 4 {
			bicone := 2 * math.Pi / 3
			if v := m.Volume(); v > bicone || v < 0.99*bicone {
				t.Errorf("%d/%d: volume %g, want about %g", test.n, test.k, v, bicone)
			}
		}
	}
}

func TestDonut(t *testing.T) {
	const R, r, h = 2.0, 1.0, 3.0
	polygon := 64 * math.Sin(2*math.Pi/64) / 2
	for _, test := range []struct {
		hole   float64
		amount float64
		origin Origin
		zmin   float64
	}{
		{r, 2 * math.Pi, OriginBottom, 0},
		{r, math.Pi, OriginTop, -h},
		{0, 2 * math.Pi, OriginMiddle, -h / 2},
		{0, math.Pi / 2, OriginBottom, 0},
	} {
		m, err := Donut(R, test.hole, h, 64, test.amount, 0, test.origin)
		if err != nil {
			t.Fatal(err)
		}
		if !m.IsManifold() {
			t.Errorf("hole %g amount %g: not manifold", test.hole, test.amount)
		}
		want := polygon * (R*R - test.hole*test.hole) * h * test.amount / (2 * math.Pi)
		if v := m.Volume(); math.Abs(v-want) > 1e-9 {
			t.Errorf("hole %g amount %g: volume %g, want %g", test.hole, test.amount, v, want)
		}
		if b := m.Bounds(); math.Abs(b.Min.Z-test.zmin) > 1e-12 {
			t.Errorf("origin %s: min z %g, want %g", test.origin, b.Min.Z, test.zmin)
		}
	}
	if _, err := Donut(1, 1, 1, 32, 2*math.Pi, 0, OriginBottom); err == nil {
		t.Error("want error for hole as wide as the donut")
	}
}
