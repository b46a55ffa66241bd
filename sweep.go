package pmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ExtrudeFace appends translated copies of the vertices referenced by
// indices and one quad joining each edge of the original loop to its copy.
// When cap is true the copied loop is closed with a face in loop order, so
// it agrees with the side quads. The input loop must be a simple polygon.
// A loop wound counter-clockwise around offset yields outward facing sides.
func (m *Mesh) ExtrudeFace(indices []int, offset r3.Vec, cap bool) {
	n := len(indices)
	for _, i := range indices {
		m.Vertices = append(m.Vertices, r3.Add(m.Vertices[i], offset))
	}
	l := len(m.Vertices)
	for i := 0; i < n; i++ {
		if i == n-1 {
			m.AddFace(indices[i], indices[0], l-n, l-n+i)
		} else {
			m.AddFace(indices[i], indices[i+1], l-n+i+1, l-n+i)
		}
	}
	if cap {
		top := make([]int, n)
		for i := range top {
			top[i] = l - n + i
		}
		m.Faces = append(m.Faces, top)
	}
}

// RevolveOpts configures AddRevolvedSurface.
type RevolveOpts struct {
	// Segments is the number of rotation steps.
	Segments int
	// Close joins the last and first profile vertices of each ring,
	// for profiles that form a closed loop.
	Close bool
	// ZOffset is the total displacement along Z over all steps.
	// Helical sweeps such as threads use it.
	ZOffset float64
	// Degrees is the total sweep. Zero means a full turn.
	Degrees float64
	// CCW sweeps counter-clockwise seen from +Z. The default sweep is clockwise.
	CCW bool
}

func (o RevolveOpts) stepAngle() float64 {
	deg := o.Degrees
	if deg == 0 {
		deg = 360
	}
	a := deg * math.Pi / 180 / float64(o.Segments)
	if !o.CCW {
		a = -a
	}
	return a
}

// AddRevolvedSurface sweeps the last k vertices of the mesh about the Z axis.
// Each step rotates the previous ring, lifts it by ZOffset/Segments and adds
// k-1 quads to the previous ring, plus a seam quad when Close is set.
// After the call the mesh has Segments*k more vertices.
func (m *Mesh) AddRevolvedSurface(k int, opts RevolveOpts) {
	if k < 2 || opts.Segments < 1 {
		return
	}
	angle := opts.stepAngle()
	dz := opts.ZOffset / float64(opts.Segments)
	for i := 0; i < opts.Segments; i++ {
		start := len(m.Vertices) - k
		for j := 0; j < k; j++ {
			v := m.Vertices[start+j]
			v.Z += dz
			m.Vertices = append(m.Vertices, RotatedVector(v, angle, AxisZ))
		}
		n := len(m.Vertices)
		for j := 0; j < k-1; j++ {
			m.AddFace(n-2*k+j, n-2*k+1+j, n-k+1+j, n-k+j)
		}
		if opts.Close {
			m.AddFace(n-k-1, n-2*k, n-k, n-1)
		}
	}
}

// Revolve returns a closed solid of revolution of profile about Z.
// The profile is a closed loop in the XZ half plane x >= 0. Vertices on
// the Z axis are shared by every ring and welded by Cleanup.
func Revolve(profile []r3.Vec, segments int) Mesh {
	var m Mesh
	m.AddVertices(profile...)
	m.AddRevolvedSurface(len(profile), RevolveOpts{Segments: segments, Close: true})
	m.Cleanup()
	return m
}

// Array returns count copies of m each displaced by offset from the previous.
// Copies are not merged.
func Array(m Mesh, count int, offset r3.Vec) Mesh {
	var out Mesh
	for i := 0; i < count; i++ {
		c := m.Clone()
		c.Translate(r3.Scale(float64(i), offset))
		out.Append(c)
	}
	return out
}

// Fan closes a ring of vertices with triangles meeting at apex,
// which is appended to the mesh.
func (m *Mesh) Fan(ring []int, apex r3.Vec) {
	a := m.AddVertices(apex)
	for i := range ring {
		m.AddFace(ring[i], ring[(i+1)%len(ring)], a)
	}
}

// Prism extrudes a simple outline in the XY plane, placed at height z0,
// by height along Z. Both ends are capped with a single n-gon and the
// faces point outward whatever the outline winding or sign of height.
func Prism(outline []r2.Vec, z0, height float64) Mesh {
	var m Mesh
	n := len(outline)
	idx := make([]int, n)
	for i, p := range outline {
		idx[i] = m.AddVertices(r3.Vec{X: p.X, Y: p.Y, Z: z0})
	}
	bottom := make([]int, n)
	for i := range bottom {
		bottom[i] = idx[n-1-i]
	}
	m.AddFace(bottom...)
	m.ExtrudeFace(idx, r3.Vec{Z: height}, true)
	m.RecalcNormals()
	return m
}
