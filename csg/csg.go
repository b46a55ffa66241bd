// Package csg applies the boolean modifiers of a pmesh.Part. Solids are
// converted to signed distance functions, combined, and meshed back with
// marching cubes.
package csg

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/romly/pmesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultCells is the marching cubes resolution along the longest side
// of the bounding box.
const DefaultCells = 200

// ErrEmptyResult is returned when the booleans remove the whole solid.
var ErrEmptyResult = errors.New("boolean result is empty")

// Renderer meshes parts with boolean modifiers.
type Renderer struct {
	// Cells is the number of marching cubes cells along the longest
	// side of the part. Zero means DefaultCells.
	Cells int
	Log   *zap.Logger
}

// New returns a renderer. A nil logger discards output.
func New(cells int, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Cells: cells, Log: log}
}

var defaultRenderer = New(DefaultCells, nil)

// Apply applies every modifier of p with the default renderer.
func Apply(p *pmesh.Part) (pmesh.Mesh, error) { return defaultRenderer.Apply(p) }

// Apply returns the finished mesh of p. Parts without boolean or bevel
// modifiers, nested or not, are meshed exactly by p.Build. Otherwise the
// part is sampled as a distance field.
func (r *Renderer) Apply(p *pmesh.Part) (pmesh.Mesh, error) {
	log := r.logger().With(zap.String("part", p.Name))
	m, err := p.Build()
	if !errors.Is(err, pmesh.ErrNeedsCSG) {
		return m, err
	}
	log.Debug("sampling distance field", zap.Int("booleans", len(p.Booleans)), zap.Bool("bevel", p.Bevel.Active()))
	start := time.Now()
	s, err := r.partSDF(p, false)
	if err != nil {
		return pmesh.Mesh{}, fmt.Errorf("%s: %w", p.Name, err)
	}
	m = r.mesh(s)
	if len(m.Faces) == 0 {
		return pmesh.Mesh{}, fmt.Errorf("%s: %w", p.Name, ErrEmptyResult)
	}
	m = p.ApplyArrays(m)
	log.Debug("booleans applied",
		zap.Int("booleans", len(p.Booleans)),
		zap.Int("cells", r.cells()),
		zap.Int("faces", len(m.Faces)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, m.Validate()
}

// SDF returns the signed distance function of a solid. Curved primitives
// are exact; mesh solids are sampled from their triangles.
func (r *Renderer) SDF(s pmesh.Solid) (sdf.SDF3, error) {
	switch s := s.(type) {
	case pmesh.BoxSolid:
		b, err := sdf.Box3D(toV3(s.Size), s.Round)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(b, sdf.Translate3d(toV3(s.Center))), nil
	case pmesh.CylinderSolid:
		c, err := sdf.Cylinder3D(s.Height, s.Radius, s.Round)
		if err != nil {
			return nil, err
		}
		m := sdf.Translate3d(toV3(s.Center))
		switch s.Axis {
		case pmesh.AxisX:
			m = m.Mul(sdf.RotateY(math.Pi / 2))
		case pmesh.AxisY:
			m = m.Mul(sdf.RotateX(-math.Pi / 2))
		}
		return sdf.Transform3D(c, m), nil
	case pmesh.SphereSolid:
		sp, err := sdf.Sphere3D(s.Radius)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(sp, sdf.Translate3d(toV3(s.Center))), nil
	case pmesh.Placed:
		inner, err := r.SDF(s.S)
		if err != nil {
			return nil, err
		}
		m := sdf.Translate3d(toV3(s.Offset)).Mul(rotation(s.Angle, s.Axis))
		return sdf.Transform3D(inner, m), nil
	case pmesh.GroupSolid:
		members := make([]sdf.SDF3, 0, len(s.Members))
		for _, g := range s.Members {
			ms, err := r.SDF(g)
			if err != nil {
				return nil, err
			}
			members = append(members, ms)
		}
		if len(members) == 0 {
			return nil, errEmptyMesh
		}
		return sdf.Union3D(members...), nil
	case *pmesh.Part:
		return r.partSDF(s, true)
	case pmesh.MeshSolid:
		return r.meshSDF(s.M)
	}
	// Unknown solids are sampled from their mesh.
	m, err := s.Mesh(32)
	if err != nil {
		return nil, err
	}
	return r.meshSDF(m)
}

func (r *Renderer) meshSDF(m pmesh.Mesh) (sdf.SDF3, error) {
	ms, err := newMeshSDF(m)
	if err != nil {
		return nil, err
	}
	if !ms.closed {
		r.logger().Warn("open mesh used as a boolean operand", zap.Int("vertices", len(m.Vertices)))
	}
	return ms, nil
}

// partSDF combines the base of p with its booleans in order. Arrays are
// included only for nested parts; the top level applies them to the mesh.
func (r *Renderer) partSDF(p *pmesh.Part, arrays bool) (sdf.SDF3, error) {
	if p.Base == nil {
		return nil, errEmptyMesh
	}
	s, err := r.SDF(p.Base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	if p.Bevel.Active() {
		if s, err = r.bevel(p, s); err != nil {
			return nil, err
		}
	}
	for i, b := range p.Booleans {
		tool, err := r.SDF(b.Tool)
		if err != nil {
			return nil, fmt.Errorf("boolean %d (%v): %w", i, b.Op, err)
		}
		switch b.Op {
		case pmesh.Difference:
			s = sdf.Difference3D(s, tool)
		case pmesh.Union:
			s = sdf.Union3D(s, tool)
		case pmesh.Intersect:
			s = sdf.Intersect3D(s, tool)
		default:
			return nil, fmt.Errorf("boolean %d: unknown operation %v", i, b.Op)
		}
	}
	if !arrays {
		return s, nil
	}
	for _, a := range p.Arrays {
		if a.Count < 2 {
			continue
		}
		copies := make([]sdf.SDF3, a.Count)
		for i := range copies {
			off := r3.Scale(float64(i), a.Offset)
			copies[i] = sdf.Transform3D(s, sdf.Translate3d(toV3(off)))
		}
		s = sdf.Union3D(copies...)
	}
	return s, nil
}

// bevel cuts the weighted edges of the base mesh of p out of s.
func (r *Renderer) bevel(p *pmesh.Part, s sdf.SDF3) (sdf.SDF3, error) {
	m, err := p.Base.Mesh(p.BaseSegments())
	if err != nil {
		return nil, fmt.Errorf("bevel: %w", err)
	}
	cut, skipped := newBevelSDF(m, p.Bevel)
	if skipped > 0 {
		r.logger().Debug("bevel edges skipped", zap.String("part", p.Name), zap.Int("skipped", skipped))
	}
	if cut == nil {
		return s, nil
	}
	return sdf.Difference3D(s, cut), nil
}

// mesh runs marching cubes over s and welds the triangle soup.
func (r *Renderer) mesh(s sdf.SDF3) pmesh.Mesh {
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(r.cells()))
	var m pmesh.Mesh
	for _, t := range tris {
		m.AddPolygon(toR3(t[0]), toR3(t[1]), toR3(t[2]))
	}
	m.Cleanup()
	return m
}

func (r *Renderer) cells() int {
	if r.Cells <= 0 {
		return DefaultCells
	}
	return r.Cells
}

func (r *Renderer) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func rotation(angle float64, axis pmesh.Axis) sdf.M44 {
	switch axis {
	case pmesh.AxisX:
		return sdf.RotateX(angle)
	case pmesh.AxisY:
		return sdf.RotateY(angle)
	}
	return sdf.RotateZ(angle)
}
