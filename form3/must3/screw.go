package must3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form2/must2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ThreadParms describes an external thread swept into a cylinder.
type ThreadParms struct {
	// Diameter is the major diameter.
	Diameter float64 `yaml:"diameter"`
	Length   float64 `yaml:"length"`
	Pitch    float64 `yaml:"pitch"`
	// Starts is the number of thread starts. The thread advances
	// Starts*Pitch per turn.
	Starts int `yaml:"starts"`
	// Depth is the radial depth of both flanks together, so that the
	// minor diameter is Diameter-Depth.
	Depth float64 `yaml:"depth"`
	// Segments is the number of steps per turn.
	Segments int `yaml:"segments"`
	// BevelSegments rounds crests and roots when positive.
	BevelSegments int  `yaml:"bevel_segments"`
	LeftHand      bool `yaml:"left_hand"`
}

// Lead returns the axial advance per turn.
func (t ThreadParms) Lead() float64 { return float64(t.Starts) * t.Pitch }

// MinorDiameter returns the root diameter of the thread.
func (t ThreadParms) MinorDiameter() float64 { return t.Diameter - t.Depth }

func (t ThreadParms) check() {
	switch {
	case t.Diameter <= 0:
		panic("diameter <= 0")
	case t.Length <= 0:
		panic("length <= 0")
	case t.Pitch <= 0:
		panic("pitch <= 0")
	case t.Starts < 1:
		panic("starts < 1")
	case t.Depth <= 0 || t.Depth >= t.Diameter:
		panic("depth must lie in (0, diameter)")
	case t.Segments < 3:
		panic("segments < 3")
	case t.BevelSegments < 0:
		panic("bevel segments < 0")
	}
}

// ThreadedCylinder returns a closed threaded rod. The top of the thread
// is a helical ramp starting at z = Lead and the rod extends downward far
// enough that cutting it at z = 0 and z = -Length leaves a full thread.
// The tooth profile lies at -X in the XZ plane and is swept Starts*Pitch
// per turn, downward while turning clockwise for a right hand thread.
func ThreadedCylinder(t ThreadParms) pmesh.Mesh {
	t.check()
	var profile []r3.Vec
	if t.BevelSegments > 0 {
		profile = roundedTeeth(t)
	} else {
		profile = sharpTeeth(t)
	}
	lead := t.Lead()
	k := len(profile)
	var m pmesh.Mesh
	m.AddVertices(profile...)
	turns := int(math.Ceil(t.Length/lead)) + 2
	for i := 0; i < turns; i++ {
		m.AddRevolvedSurface(k, pmesh.RevolveOpts{Segments: t.Segments, ZOffset: -lead, CCW: t.LeftHand})
	}
	last := m.Len() - 1
	bottomZ := m.Vertices[last].Z

	// The top ramp is closed by a fan from the axis to the first profile
	// vertex of each ring in the first turn plus the profile itself.
	lid := m.AddVertices(r3.Vec{Z: m.Vertices[0].Z})
	for i := 0; i < t.Segments; i++ {
		m.AddFace(lid, k*i, k*(i+1))
	}
	face := make([]int, 0, k+1)
	for i := 0; i < k; i++ {
		face = append(face, i)
	}
	m.AddFace(append(face, lid)...)

	bottom := m.AddVertices(r3.Vec{Z: bottomZ})
	for i := 0; i < t.Segments; i++ {
		m.AddFace(bottom, last-k*i, last-k*(i+1))
	}
	face = face[:0]
	for i := last - k + 1; i <= last; i++ {
		face = append(face, i)
	}
	m.AddFace(append(face, bottom)...)

	m.Weld(pmesh.WeldTolerance)
	// Sharp profiles reach the axis and successive turns overlap on the
	// ramps between them.
	m.RemoveInternalFaces()
	m.RecalcNormals()
	return m
}

// sharpTeeth returns the triangular profile of one lead, closed on the axis.
func sharpTeeth(t ThreadParms) []r3.Vec {
	rMaj := t.Diameter / 2
	rMin := t.MinorDiameter() / 2
	lead := t.Lead()
	profile := []r3.Vec{{Z: lead}}
	z := lead - t.Pitch
	for i := 0; i < t.Starts; i++ {
		profile = append(profile,
			r3.Vec{X: -rMin, Z: z + t.Pitch},
			r3.Vec{X: -rMaj, Z: z + t.Pitch/2},
			r3.Vec{X: -rMin, Z: z},
		)
		z -= t.Pitch
	}
	return append(profile, r3.Vec{})
}

// roundedTeeth returns one lead of teeth with rounded roots and crests.
// The profile stays H/4 outside the minor radius, H being the flank depth.
func roundedTeeth(t ThreadParms) []r3.Vec {
	rMaj := t.Diameter / 2
	rMin := t.MinorDiameter() / 2
	h := rMaj - rMin
	n := t.BevelSegments
	var profile []r3.Vec
	z := t.Lead() - t.Pitch
	for i := 0; i < t.Starts; i++ {
		// Root: a curve through the valley of the previous tooth,
		// stepped by equal dz with the tangent turning from 30 to 150 degrees.
		rh := math.Tan(math.Pi/6) * h / 4
		start := r3.Vec{X: -rMin - h/4, Z: z + t.Pitch - rh}
		end := r3.Vec{X: start.X, Z: z + t.Pitch + rh}
		root := []r3.Vec{start}
		pt := start
		da := 120.0 / float64(n+1)
		angle := 30 + da
		dz := math.Abs(end.Z-start.Z) / float64(n)
		for j := 0; j < n-1; j++ {
			pt.X += dz / math.Tan(angle*math.Pi/180)
			pt.Z += dz
			root = append(root, pt)
			angle += da
		}
		root = append(root, end)
		for j := len(root) - 1; j >= 0; j-- {
			profile = append(profile, root[j])
		}

		// Crest: a fillet tangent to both flanks H/8 from the sharp peak.
		base1 := r3.Vec{X: -rMin, Z: z + t.Pitch}
		peak := r3.Vec{X: -rMaj, Z: z + t.Pitch/2}
		base2 := r3.Vec{X: -rMin, Z: z}
		peakAngle := vertexAngle(peak, base1, base2)
		rh = math.Tan(peakAngle/2) * h / 8
		bevelStart := r3.Vec{X: -rMaj + h/8, Z: z + t.Pitch/2 + rh}
		perp := r3.Add(bevelStart, pmesh.RotatedVector(r3.Sub(peak, bevelStart), -math.Pi/2, pmesh.AxisY))
		center, _, ok := pmesh.FindIntersection(bevelStart, perp, peak, r3.Vec{Z: z + t.Pitch/2})
		if !ok {
			panic(fmt.Errorf("thread crest fillet: %w", pmesh.ErrNoIntersection))
		}
		profile = append(profile, pmesh.ArcVertices(bevelStart, center, r3.Vec{Y: 1}, -(math.Pi-peakAngle), n)...)

		rh = math.Tan(math.Pi/6) * h / 4
		profile = append(profile, r3.Vec{X: -rMin - h/4, Z: z + rh})
		z -= t.Pitch
	}
	return profile
}

// vertexAngle returns the angle at peak between the directions to p1 and p2.
func vertexAngle(peak, p1, p2 r3.Vec) float64 {
	v1 := r3.Sub(p1, peak)
	v2 := r3.Sub(p2, peak)
	return math.Acos(r3.Dot(v1, v2) / (r3.Norm(v1) * r3.Norm(v2)))
}

// PanHead returns a pan screw head of the given diameter standing on the
// XY plane. With rSegments > 0 the bottom rim is rounded with radius
// height/6 and the top rim with radius 3*height/4.
func PanHead(diameter, height float64, segments, rSegments int) pmesh.Mesh {
	if diameter <= 0 || height <= 0 {
		panic("pan head size <= 0")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	r := diameter / 2
	profile := []r3.Vec{{}}
	if rSegments > 0 {
		top := height / 4 * 3
		bottom := height / 6
		y := r3.Vec{Y: 1}
		profile = append(profile, pmesh.ArcVertices(r3.Vec{X: -r + bottom}, r3.Vec{X: -r + bottom, Z: bottom}, y, math.Pi/2, rSegments)...)
		profile = append(profile, pmesh.ArcVertices(r3.Vec{X: -r, Z: height - top}, r3.Vec{X: -r + top, Z: height - top}, y, math.Pi/2, rSegments)...)
	} else {
		profile = append(profile, r3.Vec{X: -r}, r3.Vec{X: -r, Z: height})
	}
	profile = append(profile, r3.Vec{Z: height})
	return pmesh.Revolve(profile, segments)
}

// FlatHead returns a countersunk head whose flat top lies on the XY plane
// and whose 90 degree cone points down. A positive edgeThickness keeps a
// cylindrical rim of that height, its top edge rounded with rSegments steps.
func FlatHead(diameter, edgeThickness float64, segments, rSegments int) pmesh.Mesh {
	if diameter <= 0 {
		panic("diameter <= 0")
	}
	if edgeThickness < 0 {
		panic("edge thickness < 0")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	r := diameter / 2
	var profile []r3.Vec
	if edgeThickness > 0 {
		br := edgeThickness * 0.3
		profile = append(profile, r3.Vec{X: -r + br})
		for i := 0; i < rSegments; i++ {
			v := pmesh.RotatedVector(r3.Vec{Z: br}, -math.Pi/2/float64(rSegments)*float64(i), pmesh.AxisY)
			profile = append(profile, r3.Add(v, r3.Vec{X: -r + br, Z: -br}))
		}
		profile = append(profile, r3.Vec{X: -r, Z: -edgeThickness})
	} else {
		profile = append(profile, r3.Vec{X: -r})
	}
	profile = append(profile, r3.Vec{Z: -r - edgeThickness})
	k := len(profile)
	var m pmesh.Mesh
	m.AddVertices(profile...)
	m.AddRevolvedSurface(k, pmesh.RevolveOpts{Segments: segments})
	top := make([]int, segments)
	for i := range top {
		top[i] = i * k
	}
	m.AddFace(top...)
	m.Cleanup()
	return m
}

// PhillipsRecess returns the cutter of a cross recess of the given
// diameter reaching depth below the XY plane. Its bottom is shrunk so the
// walls lean in by 26.5 degrees.
func PhillipsRecess(diameter, depth float64) pmesh.Mesh {
	if depth <= 0 {
		panic("depth <= 0")
	}
	cross := must2.Phillips(diameter)
	m := pmesh.Prism(cross, -depth, depth)
	scale := 1 - math.Tan(26.5*math.Pi/180)
	for i := range cross {
		m.Vertices[i].X *= scale
		m.Vertices[i].Y *= scale
	}
	return m
}

// Nut returns a hexagonal prism of the given across-corners diameter with
// its top on the XY plane, extending thickness downward. Corners are
// rounded with radius diameter/40 when bevelSegments > 0.
func Nut(diameter, thickness float64, bevelSegments int) pmesh.Mesh {
	if thickness <= 0 {
		panic("thickness <= 0")
	}
	hex := must2.Hexagon(diameter/2, bevelSegments)
	m := pmesh.Prism(hex, 0, -thickness)
	m.Cleanup()
	return m
}

// NutChamfer returns a ring cutter that chamfers the corners of a hexagon
// of the given across-corners diameter at height z. The 30 degree cone
// touches the inscribed circle at z. bottom selects a chamfer facing down.
func NutChamfer(diameter float64, segments int, z float64, bottom bool) pmesh.Mesh {
	if diameter <= 0 {
		panic("diameter <= 0")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	in := math.Sqrt(3) / 2 * (diameter / 2)
	contact := r3.Vec{X: -in, Z: z}
	tilt := -math.Pi / 6
	if bottom {
		tilt = -tilt
	}
	v1 := pmesh.RotatedVector(r3.Vec{X: -in}, tilt, pmesh.AxisY)
	v2 := pmesh.RotatedVector(v1, math.Pi, pmesh.AxisY)
	v1 = r3.Add(v1, contact)
	v2 = r3.Add(v2, contact)
	var m pmesh.Mesh
	m.AddVertices(v1, r3.Vec{X: v1.X, Z: v2.Z}, v2)
	m.AddRevolvedSurface(3, pmesh.RevolveOpts{Segments: segments, Close: true})
	m.Cleanup()
	return m
}
