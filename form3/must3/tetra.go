package must3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Origin selects which point of a shape ends up at the origin.
type Origin string

const (
	OriginCenter Origin = "center"
	OriginBottom Origin = "bottom"
	OriginApex   Origin = "apex"
	OriginTop    Origin = "top"
	OriginMiddle Origin = "middle"
)

// tetraFaces lists the faces of the tetrahedron with outward winding and
// tetraOpposite the vertex opposite each face.
var (
	tetraFaces    = [4][3]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}
	tetraOpposite = [4]int{3, 2, 0, 1}
)

// TetraVertices returns the corners of a regular tetrahedron of the given
// edge length. Corners 0, 1 and 2 form the bottom face, corner 3 is the apex.
// origin is one of OriginCenter, OriginBottom or OriginApex.
func TetraVertices(edge float64, origin Origin) d3.Set {
	if edge <= 0 {
		panic("edge <= 0")
	}
	v := d3.Set{
		{},
		{X: edge},
		{X: edge / 2, Y: math.Sqrt(3) / 2 * edge},
		{X: edge / 2, Y: math.Sqrt(3) / 6 * edge, Z: math.Sqrt(6) / 3 * edge},
	}
	var off r3.Vec
	switch origin {
	case OriginCenter:
		off = v.Centroid()
	case OriginBottom:
		off = v[:3].Centroid()
	case OriginApex:
		off = v[3]
	default:
		panic(fmt.Sprintf("bad tetrahedron origin %q", origin))
	}
	for i := range v {
		v[i] = r3.Sub(v[i], off)
	}
	return v
}

// Tetrahedron returns the regular tetrahedron of TetraVertices.
func Tetrahedron(edge float64, origin Origin) pmesh.Mesh {
	var m pmesh.Mesh
	m.AddVertices(TetraVertices(edge, origin)...)
	for _, f := range tetraFaces {
		m.AddFace(f[:]...)
	}
	return m
}

// SphereIntersection returns segments+1 points on the circle where the
// spheres (c1, r1) and (c2, r2) meet, running counter-clockwise about
// c2-c1 from the direction of start to the direction of end.
func SphereIntersection(c1 r3.Vec, r1 float64, c2 r3.Vec, r2 float64, start, end r3.Vec, segments int) []r3.Vec {
	if segments < 1 {
		panic("segments < 1")
	}
	axis := r3.Sub(c2, c1)
	d := r3.Norm(axis)
	if d == 0 || d > r1+r2 || d < math.Abs(r1-r2) {
		panic(fmt.Errorf("spheres %v r=%g and %v r=%g: %w", c1, r1, c2, r2, pmesh.ErrNoIntersection))
	}
	d1 := (r1*r1 - r2*r2 + d*d) / (2 * d)
	r := math.Sqrt(r1*r1 - d1*d1)
	n := r3.Scale(1/d, axis)
	center := r3.Add(c1, r3.Scale(d1, n))
	align := d3.AlignZ(n)
	inv := align.Inv()
	s := inv.Transform(r3.Sub(start, center))
	e := inv.Transform(r3.Sub(end, center))
	a0 := math.Atan2(s.Y, s.X)
	diff := math.Mod(math.Atan2(e.Y, e.X)-a0, 2*math.Pi)
	if diff <= 0 {
		diff += 2 * math.Pi
	}
	pts := make([]r3.Vec, segments+1)
	for i := range pts {
		sin, cos := math.Sincos(a0 + diff/float64(segments)*float64(i))
		pts[i] = r3.Add(align.Transform(r3.Vec{X: r * cos, Y: r * sin}), center)
	}
	return pts
}

// ReuleauxTetrahedron returns the intersection of four balls of radius
// edge centered on the corners of a regular tetrahedron. Each face is a
// grid of 2^subdivisions rows projected onto its sphere. The curved edges
// are sampled where two spheres meet and joined to the faces by strips.
// Zero subdivisions returns the plain tetrahedron.
func ReuleauxTetrahedron(edge float64, origin Origin, subdivisions int) pmesh.Mesh {
	if subdivisions < 0 {
		panic("subdivisions < 0")
	}
	if subdivisions == 0 {
		return Tetrahedron(edge, origin)
	}
	corners := TetraVertices(edge, origin)
	n := 1 << subdivisions
	var m pmesh.Mesh
	// rows[f][c] holds the grid vertices along the face edge starting at
	// corner c of face f, toward the next corner of the face.
	var rows [4][3][]int
	for fi, f := range tetraFaces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		center := corners[tetraOpposite[fi]]
		ab := r3.Sub(b, a)
		ac := r3.Sub(c, a)
		grid := make([][]int, n+1)
		for i := 0; i <= n; i++ {
			grid[i] = make([]int, n+1-i)
			for j := 0; j <= n-i; j++ {
				p := r3.Add(a, r3.Add(r3.Scale(float64(i)/float64(n), ab), r3.Scale(float64(j)/float64(n), ac)))
				p = r3.Add(center, r3.Scale(edge, r3.Unit(r3.Sub(p, center))))
				grid[i][j] = m.AddVertices(p)
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n-i; j++ {
				m.AddFace(grid[i][j], grid[i+1][j], grid[i][j+1])
				if i+j < n-1 {
					m.AddFace(grid[i+1][j], grid[i+1][j+1], grid[i][j+1])
				}
			}
		}
		for k := 0; k <= n; k++ {
			rows[fi][0] = append(rows[fi][0], grid[k][0])   // a to b
			rows[fi][1] = append(rows[fi][1], grid[n-k][k]) // b to c
			rows[fi][2] = append(rows[fi][2], grid[0][n-k]) // c to a
		}
	}

	// Every tetrahedron edge is shared by two faces. Its curved edge lies on
	// the spheres centered on the two corners off that edge.
	type use struct{ face, row int }
	uses := make(map[pmesh.Edge][]use)
	var order []pmesh.Edge
	for fi, f := range tetraFaces {
		for c := 0; c < 3; c++ {
			e := pmesh.NewEdge(f[c], f[(c+1)%3])
			if uses[e] == nil {
				order = append(order, e)
			}
			uses[e] = append(uses[e], use{fi, c})
		}
	}
	for _, e := range order {
		us := uses[e]
		var off []int
		for i := range corners {
			if i != e.A && i != e.B {
				off = append(off, i)
			}
		}
		a, b := corners[e.A], corners[e.B]
		arc := SphereIntersection(corners[off[0]], edge, corners[off[1]], edge, a, b, n)
		if r3.Norm(r3.Sub(arc[n/2], d3.Mid(a, b))) > edge/2 {
			// Took the long way round.
			arc = SphereIntersection(corners[off[0]], edge, corners[off[1]], edge, b, a, n)
			for i, j := 0, len(arc)-1; i < j; i, j = i+1, j-1 {
				arc[i], arc[j] = arc[j], arc[i]
			}
		}
		arcIdx := make([]int, len(arc))
		for i, p := range arc {
			arcIdx[i] = m.AddVertices(p)
		}
		for _, u := range us {
			row := rows[u.face][u.row]
			if tetraFaces[u.face][u.row] != e.A {
				row = reversed(row)
			}
			for j := 0; j < n; j++ {
				m.AddFace(arcIdx[j], arcIdx[j+1], row[j+1], row[j])
			}
		}
	}
	m.Cleanup()
	return m
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// IcoSphere returns a sphere of the given radius centered on the origin
// made by splitting each icosahedron face into four subdivisions times.
func IcoSphere(radius float64, subdivisions int) pmesh.Mesh {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if subdivisions < 0 {
		panic("subdivisions < 0")
	}
	t := (1 + math.Sqrt(5)) / 2
	verts := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for i := range verts {
		verts[i] = r3.Unit(verts[i])
	}
	for s := 0; s < subdivisions; s++ {
		mid := make(map[pmesh.Edge]int)
		midpoint := func(a, b int) int {
			e := pmesh.NewEdge(a, b)
			if i, ok := mid[e]; ok {
				return i
			}
			verts = append(verts, r3.Unit(d3.Mid(verts[a], verts[b])))
			mid[e] = len(verts) - 1
			return mid[e]
		}
		next := make([][3]int, 0, 4*len(faces))
		for _, f := range faces {
			ab, bc, ca := midpoint(f[0], f[1]), midpoint(f[1], f[2]), midpoint(f[2], f[0])
			next = append(next, [3]int{f[0], ab, ca}, [3]int{f[1], bc, ab}, [3]int{f[2], ca, bc}, [3]int{ab, bc, ca})
		}
		faces = next
	}
	var m pmesh.Mesh
	for _, v := range verts {
		m.AddVertices(r3.Scale(radius, v))
	}
	for _, f := range faces {
		m.AddFace(f[:]...)
	}
	m.RecalcNormals()
	return m
}
