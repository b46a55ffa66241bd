package obj3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form2"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simple solids and curiosities: boxes, tubes, crosses, Reuleaux shapes,
// the oloid and the sphericon.

// Align places the origin on one side of a shape along an axis.
type Align string

const (
	AlignMin    Align = "min" // left, front or bottom face
	AlignCenter Align = "center"
	AlignMax    Align = "max" // right, back or top face
)

// shift returns the offset along an axis of extent size that moves the
// aligned face onto the origin.
func (a Align) shift(size float64) (float64, error) {
	switch a {
	case AlignMin:
		return size / 2, nil
	case AlignCenter, "":
		return 0, nil
	case AlignMax:
		return -size / 2, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", a)
}

// BoxParms defines an axis aligned box.
type BoxParms struct {
	Size    r3.Vec `yaml:"size"`
	OriginX Align  `yaml:"origin_x"`
	OriginY Align  `yaml:"origin_y"`
	OriginZ Align  `yaml:"origin_z"`
}

// BoxDefaults returns a centered 10mm cube.
func BoxDefaults() BoxParms {
	return BoxParms{Size: r3.Vec{X: 10, Y: 10, Z: 10}}
}

// BoxName returns "Cube" when all sides are equal and "Cuboid" otherwise.
func BoxName(k BoxParms) string {
	if k.Size.X == k.Size.Y && k.Size.Y == k.Size.Z {
		return "Cube"
	}
	return "Cuboid"
}

// Box returns the box with its origin on the chosen faces.
func Box(k BoxParms) (*pmesh.Part, error) {
	if k.Size.X <= 0 || k.Size.Y <= 0 || k.Size.Z <= 0 {
		return nil, invalid("size", "every side must be positive")
	}
	var c r3.Vec
	var err error
	if c.X, err = k.OriginX.shift(k.Size.X); err != nil {
		return nil, invalid("origin_x", "%v", err)
	}
	if c.Y, err = k.OriginY.shift(k.Size.Y); err != nil {
		return nil, invalid("origin_y", "%v", err)
	}
	if c.Z, err = k.OriginZ.shift(k.Size.Z); err != nil {
		return nil, invalid("origin_z", "%v", err)
	}
	return pmesh.NewPart(BoxName(k), pmesh.BoxSolid{Center: c, Size: k.Size}), nil
}

// DonutMethod selects which two of outer diameter, hole diameter and
// wall thickness size a donut cylinder.
type DonutMethod string

const (
	DonutDiameterHole      DonutMethod = "diameter/hole"
	DonutDiameterThickness DonutMethod = "diameter/thickness"
	DonutHoleThickness     DonutMethod = "hole/thickness"
)

// DonutCylinderParms defines a tube, optionally cut down to a pie.
type DonutCylinderParms struct {
	Method       DonutMethod `yaml:"method"`
	Diameter     float64     `yaml:"diameter"`
	HoleDiameter float64     `yaml:"hole_diameter"`
	Thickness    float64     `yaml:"thickness"`
	Height       float64     `yaml:"height"`
	// Origin is form3.OriginTop, OriginMiddle or OriginBottom.
	Origin       form3.Origin `yaml:"origin"`
	Amount       float64      `yaml:"amount"`   // radians kept
	Rotation     float64      `yaml:"rotation"` // radians
	Segments     int          `yaml:"segments"`
	HoleSegments int          `yaml:"hole_segments"`
}

// DonutCylinderDefaults returns a full 1 by 0.5 tube standing on the XY plane.
func DonutCylinderDefaults() DonutCylinderParms {
	return DonutCylinderParms{
		Method:       DonutDiameterHole,
		Diameter:     1,
		HoleDiameter: 0.5,
		Thickness:    0.25,
		Height:       1,
		Origin:       form3.OriginBottom,
		Amount:       2 * math.Pi,
		Segments:     32,
		HoleSegments: 32,
	}
}

// radii resolves the outer and hole radius from the sizing method.
func (k DonutCylinderParms) radii() (outer, hole float64, err error) {
	switch k.Method {
	case DonutDiameterHole, "":
		outer, hole = k.Diameter/2, k.HoleDiameter/2
	case DonutDiameterThickness:
		outer = k.Diameter / 2
		hole = outer - k.Thickness
	case DonutHoleThickness:
		hole = k.HoleDiameter / 2
		outer = hole + k.Thickness
	default:
		return 0, 0, invalid("method", "unknown sizing method %q", k.Method)
	}
	switch {
	case hole >= outer:
		return 0, 0, invalid("hole_diameter", "the hole diameter must be smaller than the outer diameter")
	case hole < 0:
		return 0, 0, invalid("hole_diameter", "the hole diameter must not be negative")
	}
	return outer, hole, nil
}

// DonutCylinderName returns "Donut Cylinder 1/0.5" style names.
func DonutCylinderName(k DonutCylinderParms) string {
	outer, hole, err := k.radii()
	if err != nil {
		return "Donut Cylinder"
	}
	return pmesh.Name("Donut Cylinder", dim(2*outer)+"/"+dim(2*hole))
}

// DonutCylinder returns the tube. When the hole has its own facet count it
// is cut from a solid cylinder; otherwise the tube is revolved directly.
func DonutCylinder(k DonutCylinderParms) (*pmesh.Part, error) {
	outer, hole, err := k.radii()
	if err != nil {
		return nil, err
	}
	switch {
	case k.Height <= 0:
		return nil, invalid("height", "must be positive")
	case k.Segments < 3:
		return nil, invalid("segments", "need at least 3")
	case k.Amount <= 0 || k.Amount > 2*math.Pi+1e-9:
		return nil, invalid("amount", "must lie in (0, 2pi]")
	}
	holeSegments := k.HoleSegments
	if holeSegments <= 0 {
		holeSegments = k.Segments
	}
	inner := hole
	if holeSegments != k.Segments {
		inner = 0
	}
	m, err := form3.Donut(outer, inner, k.Height, k.Segments, k.Amount, k.Rotation, k.Origin)
	if err != nil {
		return nil, invalid("origin", "%v", err)
	}
	p := pmesh.NewPart(DonutCylinderName(k), pmesh.MeshSolid{M: m})
	p.Segments = k.Segments
	if inner != hole && hole > 0 {
		b := m.Bounds()
		p.Cut(segmented(pmesh.CylinderSolid{
			Center: r3.Vec{Z: (b.Min.Z + b.Max.Z) / 2},
			Axis:   pmesh.AxisZ,
			Height: 2 * k.Height,
			Radius: hole,
		}, holeSegments))
	}
	return p, nil
}

// CrossExtrusionParms defines a plus shaped bar. A zero thickness leaves
// out that bar.
type CrossExtrusionParms struct {
	HLength    float64      `yaml:"h_length"`
	HThickness float64      `yaml:"h_thickness"`
	VLength    float64      `yaml:"v_length"`
	VThickness float64      `yaml:"v_thickness"`
	Height     float64      `yaml:"height"`
	Origin     form3.Origin `yaml:"origin"`
}

// CrossExtrusionDefaults returns a 3 by 3 cross of 1 wide bars.
func CrossExtrusionDefaults() CrossExtrusionParms {
	return CrossExtrusionParms{HLength: 3, HThickness: 1, VLength: 3, VThickness: 1, Height: 1, Origin: form3.OriginBottom}
}

// CrossExtrusion returns the cross outline extruded by Height. A zero
// height gives a single face.
func CrossExtrusion(k CrossExtrusionParms) (*pmesh.Part, error) {
	switch {
	case k.Height < 0:
		return nil, invalid("height", "must not be negative")
	case k.HThickness > 0 && k.HLength <= k.VThickness:
		return nil, invalid("h_length", "the horizontal bar must be longer than the vertical bar is wide")
	case k.VThickness > 0 && k.VLength <= k.HThickness:
		return nil, invalid("v_length", "the vertical bar must be longer than the horizontal bar is wide")
	}
	outline, err := form2.Cross(k.HLength, k.HThickness, k.VLength, k.VThickness)
	if err != nil {
		return nil, invalid("h_thickness", "%v", err)
	}
	var z0 float64
	switch k.Origin {
	case form3.OriginTop:
		z0 = -k.Height
	case form3.OriginMiddle:
		z0 = -k.Height / 2
	case form3.OriginBottom, "":
	default:
		return nil, invalid("origin", "unknown origin %q", k.Origin)
	}
	return pmesh.NewPart("Cross Extrusion", pmesh.MeshSolid{M: flatOrPrism(outline, z0, k.Height)}), nil
}

// flatOrPrism extrudes outline from z0 by height, or returns it as a
// single face when height is zero.
func flatOrPrism(outline []r2.Vec, z0, height float64) pmesh.Mesh {
	var m pmesh.Mesh
	if height > 0 {
		m = pmesh.Prism(outline, z0, height)
		m.Cleanup()
		return m
	}
	face := make([]r3.Vec, len(outline))
	for i, p := range outline {
		face[i] = r3.Vec{X: p.X, Y: p.Y, Z: z0}
	}
	m.AddPolygon(face...)
	return m
}

// Plane is the coordinate plane a flat shape is built on.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneYZ Plane = "yz"
	PlaneZX Plane = "zx"
)

// ReuleauxPolygonParms defines a Reuleaux polygon. Even side counts give
// shapes that are not of constant width.
type ReuleauxPolygonParms struct {
	Sides     int     `yaml:"sides"`
	Radius    float64 `yaml:"radius"` // circumradius
	Segments  int     `yaml:"segments"`
	Plane     Plane   `yaml:"plane"`
	Thickness float64 `yaml:"thickness"`
}

// ReuleauxPolygonDefaults returns a flat Reuleaux triangle.
func ReuleauxPolygonDefaults() ReuleauxPolygonParms {
	return ReuleauxPolygonParms{Sides: 3, Radius: 1, Segments: 16, Plane: PlaneXY}
}

// ReuleauxPolygon returns the polygon as a face on Plane, or as a plate
// when Thickness is positive. The plate rises along the plane normal.
func ReuleauxPolygon(k ReuleauxPolygonParms) (*pmesh.Part, error) {
	switch {
	case k.Sides < 3 || k.Sides > 100:
		return nil, invalid("sides", "must lie in [3, 100]")
	case k.Thickness < 0:
		return nil, invalid("thickness", "must not be negative")
	}
	outline, err := ReuleauxOutline(k)
	if err != nil {
		return nil, err
	}
	m := flatOrPrism(outline, 0, k.Thickness)
	switch k.Plane {
	case PlaneXY, "":
	case PlaneYZ:
		m.Rotate(math.Pi/2, pmesh.AxisY)
		m.Rotate(math.Pi/2, pmesh.AxisX)
	case PlaneZX:
		m.Rotate(math.Pi/2, pmesh.AxisX)
	default:
		return nil, invalid("plane", "unknown plane %q", k.Plane)
	}
	return pmesh.NewPart(form2.ReuleauxName(k.Sides), pmesh.MeshSolid{M: m}), nil
}

// ReuleauxOutline returns the polygon outline on the XY plane.
func ReuleauxOutline(k ReuleauxPolygonParms) (d2.Set, error) {
	s, err := form2.ReuleauxPolygon(k.Sides, k.Radius, k.Segments)
	if err != nil {
		return nil, invalid("radius", "%v", err)
	}
	return s, nil
}

// TetraMethod selects how a Reuleaux tetrahedron is built.
type TetraMethod string

const (
	// TetraUVSpheres intersects four UV spheres.
	TetraUVSpheres TetraMethod = "uv_spheres"
	// TetraIcoSpheres intersects four icospheres.
	TetraIcoSpheres TetraMethod = "ico_spheres"
	// TetraVertices computes the surface directly and never collapses at
	// low resolution.
	TetraVertices TetraMethod = "vertices"
)

// ReuleauxTetrahedronParms defines a Reuleaux tetrahedron of sphere
// radius Radius, which is also the edge of the underlying tetrahedron.
type ReuleauxTetrahedronParms struct {
	Radius       float64      `yaml:"radius"`
	Method       TetraMethod  `yaml:"method"`
	Segments     int          `yaml:"segments"`
	Rings        int          `yaml:"rings"`
	Subdivisions int          `yaml:"subdivisions"`
	Triangulate  bool         `yaml:"triangulate"`
	Origin       form3.Origin `yaml:"origin"`
}

// ReuleauxTetrahedronDefaults returns the directly computed tetrahedron
// with three subdivisions.
func ReuleauxTetrahedronDefaults() ReuleauxTetrahedronParms {
	return ReuleauxTetrahedronParms{
		Radius:       1,
		Method:       TetraVertices,
		Segments:     48,
		Rings:        48,
		Subdivisions: 3,
		Triangulate:  true,
		Origin:       form3.OriginCenter,
	}
}

const minTetraRings = 7

// degenerate reports whether the resolution is too low for any rounding,
// in which case a plain tetrahedron is built.
func (k ReuleauxTetrahedronParms) degenerate() bool {
	switch k.Method {
	case TetraUVSpheres:
		return k.Segments <= 4 || k.Rings <= minTetraRings
	default:
		return k.Subdivisions == 0
	}
}

// ReuleauxTetrahedronName returns "Reuleaux Tetrahedron", or "Regular
// Tetrahedron" when the resolution leaves the faces flat.
func ReuleauxTetrahedronName(k ReuleauxTetrahedronParms) string {
	if k.degenerate() {
		return "Regular Tetrahedron"
	}
	return "Reuleaux Tetrahedron"
}

// ReuleauxTetrahedron returns the solid. The sphere methods give a base
// sphere kept by the three others.
func ReuleauxTetrahedron(k ReuleauxTetrahedronParms) (*pmesh.Part, error) {
	switch {
	case k.Radius <= 0:
		return nil, invalid("radius", "must be positive")
	case k.Subdivisions < 0 || k.Subdivisions > 6:
		return nil, invalid("subdivisions", "must lie in [0, 6]")
	}
	switch k.Method {
	case TetraUVSpheres, TetraIcoSpheres, TetraVertices:
	default:
		return nil, invalid("method", "unknown build method %q", k.Method)
	}
	name := ReuleauxTetrahedronName(k)
	finish := func(m pmesh.Mesh) *pmesh.Part {
		if k.Triangulate {
			m.Triangulate()
		}
		return pmesh.NewPart(name, pmesh.MeshSolid{M: m})
	}
	if k.degenerate() {
		m, err := form3.Tetrahedron(k.Radius, k.Origin)
		if err != nil {
			return nil, invalid("origin", "%v", err)
		}
		return finish(m), nil
	}
	if k.Method == TetraVertices {
		m, err := form3.ReuleauxTetrahedron(k.Radius, k.Origin, k.Subdivisions)
		if err != nil {
			return nil, invalid("origin", "%v", err)
		}
		return finish(m), nil
	}
	centers, err := form3.TetraVertices(k.Radius, k.Origin)
	if err != nil {
		return nil, invalid("origin", "%v", err)
	}
	var sphere pmesh.Mesh
	if k.Method == TetraUVSpheres {
		sphere = uvSphere(k.Radius, k.Segments, k.Rings)
	} else if sphere, err = form3.IcoSphere(k.Radius, k.Subdivisions); err != nil {
		return nil, fmt.Errorf("icosphere: %w", err)
	}
	at := func(c r3.Vec) pmesh.Solid {
		m := sphere.Clone()
		m.Translate(c)
		return pmesh.MeshSolid{M: m}
	}
	p := pmesh.NewPart(name, at(centers[0]))
	for _, c := range centers[1:] {
		p.Keep(at(c))
	}
	return p, nil
}

// uvSphere returns a sphere of segments meridians and rings bands.
func uvSphere(radius float64, segments, rings int) pmesh.Mesh {
	profile := make([]r3.Vec, rings+1)
	for i := range profile {
		s, c := math.Sincos(math.Pi * float64(i) / float64(rings))
		profile[i] = r3.Vec{X: radius * s, Z: -radius * c}
	}
	return pmesh.Revolve(profile, segments)
}

// OloidParms defines an oloid, the convex hull of two perpendicular
// circles each passing through the center of the other.
type OloidParms struct {
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
}

// OloidDefaults returns a unit oloid.
func OloidDefaults() OloidParms { return OloidParms{Radius: 1, Segments: 32} }

// Oloid returns the oloid.
func Oloid(k OloidParms) (*pmesh.Part, error) {
	m, err := form3.Oloid(k.Radius, k.Segments)
	if err != nil {
		return nil, invalid("radius", "%v", err)
	}
	return pmesh.NewPart("Oloid", pmesh.MeshSolid{M: m}), nil
}

// SphericonParms defines a sphericon: a solid of revolution of a regular
// polygon cut in half and rejoined with a twist of Rotation vertices.
type SphericonParms struct {
	Vertices int     `yaml:"vertices"`
	Rotation int     `yaml:"rotation"`
	Diameter float64 `yaml:"diameter"` // diagonal
	Segments int     `yaml:"segments"`
}

// SphericonDefaults returns the classic square sphericon.
func SphericonDefaults() SphericonParms {
	return SphericonParms{Vertices: 4, Rotation: 1, Diameter: 1, Segments: 32}
}

// Sphericon returns the sphericon.
func Sphericon(k SphericonParms) (*pmesh.Part, error) {
	if k.Vertices < 3 || k.Vertices > 32 {
		return nil, invalid("vertices", "must lie in [3, 32]")
	}
	m, err := form3.Sphericon(k.Vertices, k.Rotation, k.Diameter, k.Segments)
	if err != nil {
		return nil, invalid("diameter", "%v", err)
	}
	return pmesh.NewPart("Sphericon", pmesh.MeshSolid{M: m}), nil
}
