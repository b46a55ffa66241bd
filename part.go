package pmesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is geometry that can be the base of a Part or the tool of a
// boolean modifier. Implementations are MeshSolid, BoxSolid,
// CylinderSolid, SphereSolid, GroupSolid, Placed and *Part.
type Solid interface {
	// Mesh returns a closed polygon mesh of the solid.
	// Curved surfaces use segments facets per turn.
	Mesh(segments int) (Mesh, error)
	solid()
}

// MeshSolid wraps an explicit mesh.
type MeshSolid struct {
	M Mesh
}

func (s MeshSolid) Mesh(int) (Mesh, error) { return s.M.Clone(), nil }
func (MeshSolid) solid()                   {}

// GroupSolid combines solids into one object without merging them.
// Its mesh is the concatenation of the member meshes. A CSG backend
// treats it as their union.
type GroupSolid struct {
	Members []Solid
}

func (g GroupSolid) Mesh(segments int) (Mesh, error) {
	var out Mesh
	for _, s := range g.Members {
		m, err := s.Mesh(segments)
		if err != nil {
			return Mesh{}, err
		}
		out.Append(m)
	}
	return out, nil
}
func (GroupSolid) solid() {}

// BoxSolid is an axis aligned box. Round is the radius every edge and
// corner is rounded with; it may not exceed half the smallest side.
type BoxSolid struct {
	Center r3.Vec
	Size   r3.Vec
	Round  float64
}

func (s BoxSolid) Mesh(segments int) (Mesh, error) {
	side := math.Min(s.Size.X, math.Min(s.Size.Y, s.Size.Z))
	switch {
	case side <= 0:
		return Mesh{}, fmt.Errorf("box size %v: sides must be positive", s.Size)
	case s.Round < 0 || 2*s.Round > side:
		return Mesh{}, fmt.Errorf("box round %g: must lie in [0, %g]", s.Round, side/2)
	case s.Round == 0:
		return BoxMesh(s.Size, s.Center), nil
	}
	return RoundedBoxMesh(s.Size, s.Center, s.Round, segments), nil
}
func (BoxSolid) solid() {}

// CylinderSolid is a cylinder of the given height centered on Center
// with its axis along Axis. The zero Axis is AxisX. Round rounds both
// rims with that radius.
type CylinderSolid struct {
	Center r3.Vec
	Axis   Axis
	Height float64
	Radius float64
	Round  float64
}

func (s CylinderSolid) Mesh(segments int) (Mesh, error) {
	switch {
	case s.Radius <= 0 || s.Height <= 0:
		return Mesh{}, fmt.Errorf("cylinder r=%g h=%g: must be positive", s.Radius, s.Height)
	case s.Round < 0 || s.Round > s.Radius || 2*s.Round > s.Height:
		return Mesh{}, fmt.Errorf("cylinder round %g: must lie in [0, %g]", s.Round, math.Min(s.Radius, s.Height/2))
	}
	var m Mesh
	if s.Round > 0 {
		m = RoundedCylinderMesh(s.Radius, s.Height, s.Round, segments)
	} else {
		m = CylinderMesh(s.Radius, s.Height, segments)
	}
	switch s.Axis {
	case AxisX:
		m.Rotate(math.Pi/2, AxisY)
	case AxisY:
		m.Rotate(-math.Pi/2, AxisX)
	}
	m.Translate(s.Center)
	return m, nil
}
func (CylinderSolid) solid() {}

// SphereSolid is a sphere.
type SphereSolid struct {
	Center r3.Vec
	Radius float64
}

func (s SphereSolid) Mesh(segments int) (Mesh, error) {
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}
	profile := make([]r3.Vec, rings+1)
	for i := range profile {
		a := math.Pi * float64(i) / float64(rings)
		sn, cs := math.Sincos(a)
		profile[i] = r3.Vec{X: sn, Z: -cs}
	}
	m := Revolve(profile, segments)
	m.Scale(r3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius})
	m.Translate(s.Center)
	return m, nil
}
func (SphereSolid) solid() {}

// Placed is a solid rotated by Angle about Axis through the origin and
// then moved by Offset.
type Placed struct {
	S      Solid
	Angle  float64
	Axis   Axis
	Offset r3.Vec
}

// Move returns s translated by offset.
func Move(s Solid, offset r3.Vec) Placed { return Placed{S: s, Axis: AxisZ, Offset: offset} }

func (p Placed) Mesh(segments int) (Mesh, error) {
	m, err := p.S.Mesh(segments)
	if err != nil {
		return Mesh{}, err
	}
	if p.Angle != 0 {
		m.Rotate(p.Angle, p.Axis)
	}
	m.Translate(p.Offset)
	return m, nil
}
func (Placed) solid() {}

// BoxMesh returns an axis aligned box mesh of 8 vertices and 6 quads.
func BoxMesh(size, center r3.Vec) Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	var m Mesh
	m.AddVertices(
		r3.Vec{X: -hx, Y: -hy, Z: -hz}, r3.Vec{X: hx, Y: -hy, Z: -hz},
		r3.Vec{X: hx, Y: hy, Z: -hz}, r3.Vec{X: -hx, Y: hy, Z: -hz},
	)
	m.AddFace(3, 2, 1, 0)
	m.ExtrudeFace([]int{0, 1, 2, 3}, r3.Vec{Z: size.Z}, true)
	m.Translate(center)
	return m
}

// RoundedBoxMesh returns an axis aligned box whose edges are quarter
// cylinders and whose corners are sphere octants of the given radius.
// Each quarter turn uses segments/4 facets.
func RoundedBoxMesh(size, center r3.Vec, radius float64, segments int) Mesh {
	n := segments / 4
	if n < 1 {
		n = 1
	}
	half := r3.Sub(r3.Scale(0.5, size), r3.Vec{X: radius, Y: radius, Z: radius})
	// Quadrant q spans longitudes q*90 to (q+1)*90 degrees counter-clockwise from +X.
	sx := [4]float64{1, -1, -1, 1}
	sy := [4]float64{1, 1, -1, -1}
	cols := 4 * (n + 1)
	var m Mesh
	for hemi := 0; hemi < 2; hemi++ {
		sz := float64(2*hemi - 1)
		for l := 0; l <= n; l++ {
			lat := (float64(hemi) - 1 + float64(l)/float64(n)) * math.Pi / 2
			sl, cl := math.Sincos(lat)
			for q := 0; q < 4; q++ {
				corner := r3.Vec{X: sx[q] * half.X, Y: sy[q] * half.Y, Z: sz * half.Z}
				for k := 0; k <= n; k++ {
					lon := (float64(q) + float64(k)/float64(n)) * math.Pi / 2
					so, co := math.Sincos(lon)
					m.AddVertices(r3.Add(corner, r3.Scale(radius, r3.Vec{X: cl * co, Y: cl * so, Z: sl})))
				}
			}
		}
	}
	rows := 2 * (n + 1)
	at := func(i, j int) int { return j*cols + i%cols }
	for j := 0; j < rows-1; j++ {
		for i := 0; i < cols; i++ {
			m.AddFace(at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1))
		}
	}
	// The poles collapse to one point per quadrant; the caps join them.
	var top, bottom []int
	for q := 0; q < 4; q++ {
		top = append(top, at(q*(n+1), rows-1))
		bottom = append(bottom, at((3-q)*(n+1), 0))
	}
	m.AddFace(top...)
	m.AddFace(bottom...)
	m.Cleanup()
	m.Translate(center)
	return m
}

// RoundedCylinderMesh returns a cylinder of n sides centered on the origin
// with its axis along Z and both rims rounded by radius round.
func RoundedCylinderMesh(radius, height, round float64, n int) Mesh {
	steps := n / 4
	if steps < 1 {
		steps = 1
	}
	h := height / 2
	profile := []r3.Vec{{Z: -h}}
	for i := 0; i <= steps; i++ {
		s, c := math.Sincos(-math.Pi/2 + math.Pi/2*float64(i)/float64(steps))
		profile = append(profile, r3.Vec{X: radius - round + round*c, Z: -h + round + round*s})
	}
	for i := 0; i <= steps; i++ {
		s, c := math.Sincos(math.Pi / 2 * float64(i) / float64(steps))
		profile = append(profile, r3.Vec{X: radius - round + round*c, Z: h - round + round*s})
	}
	profile = append(profile, r3.Vec{Z: h})
	return Revolve(profile, n)
}

// CylinderMesh returns a capped cylinder of n sides centered on the origin
// with its axis along Z.
func CylinderMesh(radius, height float64, n int) Mesh {
	var m Mesh
	ring := CircleVertices(radius, n, r3.Vec{Z: -height / 2}, r3.Vec{Z: 1})
	m.AddVertices(ring...)
	bottom := make([]int, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
		bottom[i] = n - 1 - i
	}
	m.AddFace(bottom...)
	m.ExtrudeFace(idx, r3.Vec{Z: height}, true)
	return m
}

// BoolOp is a mesh boolean operation.
type BoolOp int

const (
	Difference BoolOp = iota
	Union
	Intersect
)

func (op BoolOp) String() string {
	switch op {
	case Difference:
		return "difference"
	case Union:
		return "union"
	case Intersect:
		return "intersect"
	}
	return "invalid"
}

// Boolean is a configured boolean modifier.
type Boolean struct {
	Op   BoolOp
	Tool Solid
}

// Bevel is a weight limited bevel modifier. Weights index the edges of
// the base solid's mesh. Each weighted convex edge is cut back by
// Width*weight along both adjacent faces; one segment gives a flat
// chamfer and more give a round.
type Bevel struct {
	Width    float64
	Segments int
	Weights  EdgeWeights
}

// Active reports whether the bevel changes the part.
func (b Bevel) Active() bool {
	if b.Width <= 0 {
		return false
	}
	for _, w := range b.Weights {
		if w > 0 {
			return true
		}
	}
	return false
}

// ArrayMod repeats the finished part Count times, each copy displaced
// by Offset from the previous one.
type ArrayMod struct {
	Count  int
	Offset r3.Vec
}

// FixedCountArray returns an ArrayMod spreading count copies evenly over span.
func FixedCountArray(count int, span r3.Vec) ArrayMod {
	if count < 2 {
		return ArrayMod{Count: 1}
	}
	return ArrayMod{Count: count, Offset: r3.Scale(1/float64(count-1), span)}
}

// Part is a named solid plus the modifiers that finish it.
type Part struct {
	Name     string
	Base     Solid
	Booleans []Boolean
	Bevel    Bevel
	Arrays   []ArrayMod
	// Segments is the facet count used when curved solids are meshed.
	Segments int
}

// NewPart returns a part with a base solid and no modifiers.
func NewPart(name string, base Solid) *Part {
	return &Part{Name: name, Base: base, Segments: 32}
}

// Cut adds a difference modifier.
func (p *Part) Cut(tool Solid) { p.Booleans = append(p.Booleans, Boolean{Op: Difference, Tool: tool}) }

// Join adds a union modifier.
func (p *Part) Join(tool Solid) { p.Booleans = append(p.Booleans, Boolean{Op: Union, Tool: tool}) }

// Keep adds an intersect modifier.
func (p *Part) Keep(tool Solid) { p.Booleans = append(p.Booleans, Boolean{Op: Intersect, Tool: tool}) }

// ClearBevelWeights removes every bevel weight from the part.
func (p *Part) ClearBevelWeights() { p.Bevel.Weights = nil }

// ErrNeedsCSG is returned by (*Part).Mesh when the part, or a part nested
// in it, carries boolean or bevel modifiers that need a CSG backend to apply.
var ErrNeedsCSG = errors.New("part has boolean or bevel modifiers")

// Build returns the finished mesh of p using its own segment count.
func (p *Part) Build() (Mesh, error) { return p.Mesh(0) }

// Mesh returns the finished mesh of a part without boolean or bevel modifiers.
// A positive p.Segments takes precedence over segments. A part used as
// the tool or base of another part is meshed this way.
func (p *Part) Mesh(segments int) (Mesh, error) {
	if len(p.Booleans) > 0 || p.Bevel.Active() {
		return Mesh{}, ErrNeedsCSG
	}
	if p.Base == nil {
		return Mesh{}, errEmptyMesh
	}
	if p.Segments > 0 || segments <= 0 {
		segments = p.segments()
	}
	m, err := p.Base.Mesh(segments)
	if err != nil {
		return Mesh{}, err
	}
	m = p.ApplyArrays(m)
	return m, m.Validate()
}

func (*Part) solid() {}

// ApplyArrays applies the array modifiers of p to m in order.
func (p *Part) ApplyArrays(m Mesh) Mesh {
	for _, a := range p.Arrays {
		if a.Count > 1 {
			m = Array(m, a.Count, a.Offset)
		}
	}
	return m
}

// BaseSegments is the facet count the base solid is meshed with,
// which is the mesh bevel weights refer to.
func (p *Part) BaseSegments() int { return p.segments() }

func (p *Part) segments() int {
	if p.Segments <= 0 {
		return 32
	}
	return p.Segments
}
