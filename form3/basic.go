// Package form3 generates the meshes parts are assembled from.
// Functions return an error instead of panicking on invalid parameters.
package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3/must3"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Unwrap exposes errors raised by the generators, such as
// pmesh.ErrNoIntersection.
func (s *shapeErr) Unwrap() error {
	err, _ := s.panicObj.(error)
	return err
}

// Tetrahedron returns a regular tetrahedron of the given edge length.
func Tetrahedron(edge float64, origin Origin) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Tetrahedron(edge, origin), err
}

// TetraVertices returns the corners of a regular tetrahedron.
func TetraVertices(edge float64, origin Origin) (s d3.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.TetraVertices(edge, origin), err
}

// ReuleauxTetrahedron returns the intersection of four balls centered on
// the corners of a regular tetrahedron, computed directly.
func ReuleauxTetrahedron(edge float64, origin Origin, subdivisions int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.ReuleauxTetrahedron(edge, origin, subdivisions), err
}

// SphereIntersection samples the circle where two spheres meet. The error
// wraps pmesh.ErrNoIntersection when the spheres do not meet.
func SphereIntersection(c1 r3.Vec, r1 float64, c2 r3.Vec, r2 float64, start, end r3.Vec, segments int) (pts []r3.Vec, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.SphereIntersection(c1, r1, c2, r2, start, end, segments), err
}

// IcoSphere returns a subdivided icosahedron projected onto a sphere.
func IcoSphere(radius float64, subdivisions int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.IcoSphere(radius, subdivisions), err
}

// ConvexHull returns the triangulated convex hull of pts.
func ConvexHull(pts []r3.Vec) (m pmesh.Mesh, err error) {
	if len(pts) < 4 {
		return m, ErrMsg("convex hull needs at least 4 points")
	}
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.ConvexHull(pts), err
}

// Oloid returns the convex hull of two perpendicular circles.
func Oloid(radius float64, segments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Oloid(radius, segments), err
}

// Sphericon returns a sphericon of a regular polygon.
func Sphericon(vertices, rotation int, diameter float64, segments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Sphericon(vertices, rotation, diameter, segments), err
}

// Donut returns a tube, or a pie of a tube when amount is below a full turn.
func Donut(radius, holeRadius, height float64, segments int, amount, rotation float64, origin Origin) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Donut(radius, holeRadius, height, segments, amount, rotation, origin), err
}
