package pmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// WeldTolerance is the distance under which Cleanup merges vertices.
const WeldTolerance = 1e-4

// Cleanup welds vertices closer than WeldTolerance, drops faces that
// collapsed and orients every face so normals point out of the solid.
func (m *Mesh) Cleanup() {
	m.Weld(WeldTolerance)
	m.RecalcNormals()
}

// Weld merges vertices closer than tol to each other. Face indices are
// remapped, repeated consecutive indices removed and faces left with fewer
// than three distinct vertices dropped. Unreferenced vertices are removed.
func (m *Mesh) Weld(tol float64) {
	if len(m.Vertices) == 0 {
		return
	}
	inv := 1 / tol
	cache := make(map[[3]int64][]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	var verts []r3.Vec
	key := func(v r3.Vec) [3]int64 {
		return [3]int64{int64(math.Floor(v.X * inv)), int64(math.Floor(v.Y * inv)), int64(math.Floor(v.Z * inv))}
	}
	tol2 := tol * tol
	for i, v := range m.Vertices {
		k := key(v)
		found := -1
	search:
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, cand := range cache[[3]int64{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if r3.Norm2(r3.Sub(verts[cand], v)) <= tol2 {
							found = cand
							break search
						}
					}
				}
			}
		}
		if found < 0 {
			found = len(verts)
			verts = append(verts, v)
			cache[k] = append(cache[k], found)
		}
		remap[i] = found
	}
	m.Vertices = verts
	faces := m.Faces[:0]
	for _, f := range m.Faces {
		nf := remapFace(f, remap)
		if nf != nil {
			faces = append(faces, nf)
		}
	}
	m.Faces = faces
	m.compact()
}

// remapFace applies remap to f and removes repeated consecutive indices,
// including the pair formed by the last and first index. It returns nil
// when fewer than three distinct indices remain.
func remapFace(f []int, remap []int) []int {
	nf := make([]int, 0, len(f))
	for _, idx := range f {
		r := remap[idx]
		if len(nf) > 0 && nf[len(nf)-1] == r {
			continue
		}
		nf = append(nf, r)
	}
	for len(nf) > 1 && nf[0] == nf[len(nf)-1] {
		nf = nf[:len(nf)-1]
	}
	unique := make(map[int]struct{}, len(nf))
	for _, idx := range nf {
		unique[idx] = struct{}{}
	}
	if len(unique) < 3 {
		return nil
	}
	return nf
}

// compact removes vertices not referenced by any face.
func (m *Mesh) compact() {
	used := make([]int, len(m.Vertices))
	for i := range used {
		used[i] = -1
	}
	var verts []r3.Vec
	for _, f := range m.Faces {
		for j, idx := range f {
			if used[idx] < 0 {
				used[idx] = len(verts)
				verts = append(verts, m.Vertices[idx])
			}
			f[j] = used[idx]
		}
	}
	m.Vertices = verts
}

// RemoveInternalFaces deletes every pair of faces built on the same vertex
// set. Such pairs appear where tiled sections touch.
func (m *Mesh) RemoveInternalFaces() {
	count := make(map[string]int, len(m.Faces))
	keys := make([]string, len(m.Faces))
	for i, f := range m.Faces {
		keys[i] = faceKey(f)
		count[keys[i]]++
	}
	faces := m.Faces[:0]
	for i, f := range m.Faces {
		if count[keys[i]] < 2 {
			faces = append(faces, f)
		}
	}
	m.Faces = faces
	m.compact()
}

func faceKey(f []int) string {
	s := append([]int(nil), f...)
	// insertion sort, faces are short.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	b := make([]byte, 0, 8*len(s))
	for _, v := range s {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), ',')
	}
	return string(b)
}

// RecalcNormals makes face winding consistent across shared edges and
// orients each connected shell so its signed volume is positive.
func (m *Mesh) RecalcNormals() {
	adj := make(map[Edge][]halfEdge)
	for fi, f := range m.Faces {
		for j := range f {
			e := NewEdge(f[j], f[(j+1)%len(f)])
			adj[e] = append(adj[e], halfEdge{fi, j})
		}
	}
	visited := make([]bool, len(m.Faces))
	for seed := range m.Faces {
		if visited[seed] {
			continue
		}
		shell := []int{seed}
		visited[seed] = true
		for q := 0; q < len(shell); q++ {
			fi := shell[q]
			f := m.Faces[fi]
			for j := range f {
				a, b := f[j], f[(j+1)%len(f)]
				for _, h := range adj[NewEdge(a, b)] {
					if visited[h.face] {
						continue
					}
					g := m.Faces[h.face]
					// A consistently wound neighbour walks the shared edge b->a.
					if g[h.pos] == a && g[(h.pos+1)%len(g)] == b {
						reverse(g)
						reindex(adj, h.face, g)
					}
					visited[h.face] = true
					shell = append(shell, h.face)
				}
			}
		}
		var vol float64
		for _, fi := range shell {
			for _, t := range triangulateFace(m.Vertices, m.Faces[fi]) {
				vol += r3.Dot(m.Vertices[t[0]], r3.Cross(m.Vertices[t[1]], m.Vertices[t[2]]))
			}
		}
		if vol < 0 {
			for _, fi := range shell {
				reverse(m.Faces[fi])
				reindex(adj, fi, m.Faces[fi])
			}
		}
	}
}

// halfEdge is the use of an edge by a face, starting at position pos.
type halfEdge struct{ face, pos int }

// reindex updates the half edge positions of face fi after its indices
// were reversed.
func reindex(adj map[Edge][]halfEdge, fi int, f []int) {
	for j := range f {
		hs := adj[NewEdge(f[j], f[(j+1)%len(f)])]
		for k := range hs {
			if hs[k].face == fi {
				hs[k].pos = j
			}
		}
	}
}

// IsManifold reports whether every edge is shared by exactly two faces.
func (m *Mesh) IsManifold() bool {
	for _, faces := range m.EdgeFaces() {
		if len(faces) != 2 {
			return false
		}
	}
	return len(m.Faces) > 0
}

// triangulateFace splits face f into triangles. Triangles and quads are
// fanned, larger planar polygons are ear clipped in their projection plane.
func triangulateFace(v []r3.Vec, f []int) [][3]int {
	switch len(f) {
	case 3:
		return [][3]int{{f[0], f[1], f[2]}}
	case 4:
		return [][3]int{{f[0], f[1], f[2]}, {f[0], f[2], f[3]}}
	}
	n := newellNormal(v, f)
	if r3.Norm2(n) == 0 {
		return fan(f)
	}
	// Project onto the plane most perpendicular to n.
	proj := make([]r2.Vec, len(f))
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	for i, idx := range f {
		p := v[idx]
		switch {
		case az >= ax && az >= ay:
			proj[i] = r2.Vec{X: p.X, Y: p.Y}
			if n.Z < 0 {
				proj[i].X = -proj[i].X
			}
		case ax >= ay:
			proj[i] = r2.Vec{X: p.Y, Y: p.Z}
			if n.X < 0 {
				proj[i].X = -proj[i].X
			}
		default:
			proj[i] = r2.Vec{X: p.Z, Y: p.X}
			if n.Y < 0 {
				proj[i].X = -proj[i].X
			}
		}
	}
	tris, ok := earClip(proj)
	if !ok {
		return fan(f)
	}
	out := make([][3]int, len(tris))
	for i, t := range tris {
		out[i] = [3]int{f[t[0]], f[t[1]], f[t[2]]}
	}
	return out
}

func fan(f []int) [][3]int {
	out := make([][3]int, 0, len(f)-2)
	for i := 1; i < len(f)-1; i++ {
		out = append(out, [3]int{f[0], f[i], f[i+1]})
	}
	return out
}

// earClip triangulates a counter-clockwise simple polygon.
func earClip(p []r2.Vec) ([][3]int, bool) {
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = i
	}
	var out [][3]int
	guard := 0
	for len(idx) > 3 {
		if guard > len(idx) {
			return nil, false
		}
		clipped := false
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			if cross2(p[a], p[b], p[c]) <= 0 {
				continue // reflex or collinear
			}
			ear := true
			for _, o := range idx {
				if o == a || o == b || o == c {
					continue
				}
				if inTriangle2(p[o], p[a], p[b], p[c]) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			out = append(out, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			guard++
			// Drop a collinear vertex if one blocks progress.
			for i := range idx {
				a := idx[(i+len(idx)-1)%len(idx)]
				b := idx[i]
				c := idx[(i+1)%len(idx)]
				if math.Abs(cross2(p[a], p[b], p[c])) < 1e-14 {
					idx = append(idx[:i], idx[i+1:]...)
					clipped = true
					break
				}
			}
			if !clipped {
				return nil, false
			}
		}
	}
	out = append(out, [3]int{idx[0], idx[1], idx[2]})
	return out, true
}

func cross2(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, b))
}

func inTriangle2(p, a, b, c r2.Vec) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}
