package form2

import (
	"runtime/debug"

	"github.com/romly/pmesh/form2/must2"
	"github.com/romly/pmesh/internal/d2"
)

// Hexagon returns a hexagon of circumradius radius with a vertex on +Y.
// bevelSegments > 0 rounds its corners.
func Hexagon(radius float64, bevelSegments int) (s d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Hexagon(radius, bevelSegments), err
}

// HexagonBeveled returns the rounded +Y corner of a hexagon.
func HexagonBeveled(radius, bevelRadius float64, segments int) (s d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.HexagonBeveled(radius, bevelRadius, segments), err
}

// Cross returns the outline of a plus sign centered on the origin.
func Cross(hLength, hThickness, vLength, vThickness float64) (s d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Cross(hLength, hThickness, vLength, vThickness), err
}

// Phillips returns the cross section of a Phillips recess.
func Phillips(diameter float64) (s d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Phillips(diameter), err
}

// ReuleauxPolygon returns the outline of a Reuleaux polygon of the given
// circumradius with segments facets per side.
func ReuleauxPolygon(sides int, radius float64, segments int) (s d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.ReuleauxPolygon(sides, radius, segments), err
}

var reuleauxNames = map[int]string{
	3:  "Reuleaux Triangle",
	4:  "Reuleaux-ish Square",
	5:  "Reuleaux Pentagon",
	6:  "Reuleaux-ish Hexagon",
	7:  "Reuleaux Heptagon",
	8:  "Reuleaux-ish Octagon",
	9:  "Reuleaux Nonagon",
	10: "Reuleaux-ish Decagon",
	11: "Reuleaux Hendecagon",
	12: "Reuleaux-ish Dodecagon",
	13: "Reuleaux Tridecagon",
	14: "Reuleaux-ish Tetradecagon",
	15: "Reuleaux Pentadecagon",
	16: "Reuleaux-ish Hexadecagon",
	17: "Reuleaux Heptadecagon",
	18: "Reuleaux-ish Octadecagon",
	19: "Reuleaux Enneadecagon",
	20: "Reuleaux-ish Icosagon",
}

// ReuleauxName names the Reuleaux polygon of the given side count. Even
// sided ones are not of constant width and are called Reuleaux-ish.
func ReuleauxName(sides int) string {
	if name, ok := reuleauxNames[sides]; ok {
		return name
	}
	if sides%2 == 1 {
		return "Reuleaux Polygon"
	}
	return "Reuleaux-ish Polygon"
}
