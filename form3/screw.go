package form3

import (
	"runtime/debug"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ThreadedCylinder returns a closed threaded rod for cutting to length.
func ThreadedCylinder(t ThreadParms) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.ThreadedCylinder(t), err
}

// PanHead returns a pan screw head standing on the XY plane.
func PanHead(diameter, height float64, segments, rSegments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.PanHead(diameter, height, segments, rSegments), err
}

// FlatHead returns a countersunk head hanging below the XY plane.
func FlatHead(diameter, edgeThickness float64, segments, rSegments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.FlatHead(diameter, edgeThickness, segments, rSegments), err
}

// PhillipsRecess returns the cutter of a cross recess.
func PhillipsRecess(diameter, depth float64) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.PhillipsRecess(diameter, depth), err
}

// Nut returns a hexagonal prism hanging below the XY plane.
func Nut(diameter, thickness float64, bevelSegments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Nut(diameter, thickness, bevelSegments), err
}

// NutChamfer returns the ring cutter chamfering a hexagon's corners at z.
func NutChamfer(diameter float64, segments int, z float64, bottom bool) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.NutChamfer(diameter, segments, z, bottom), err
}

// HelixTube sweeps a closed profile along consecutive coils about Z.
func HelixTube(profile []r3.Vec, coils []Coil, segments int, ccw bool) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.HelixTube(profile, coils, segments, ccw), err
}

// SpringCoil returns the wire of a compression spring.
func SpringCoil(s SpringParms) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.SpringCoil(s), err
}

// LeadScrewCutter returns the helical teeth cut from a lead screw rod.
func LeadScrewCutter(major, minor, pitch float64, starts int, threadAngle, length float64, segments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.LeadScrewCutter(major, minor, pitch, starts, threadAngle, length, segments), err
}

// HelicalSlit returns the cutter of a helical slit through a tube.
func HelicalSlit(diameter, length, width, dist, count float64, segments int) (m pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.HelicalSlit(diameter, length, width, dist, count, segments), err
}
