package form2

import (
	"runtime/debug"

	"github.com/romly/pmesh/form2/must2"
	"github.com/romly/pmesh/internal/d2"
)

// ExtrusionSpec holds the cross-section dimensions of a T-slot extrusion.
type ExtrusionSpec = must2.ExtrusionSpec

// ExtrusionSection returns the tiles of the cross-section of spec.
func ExtrusionSection(spec ExtrusionSpec) (tiles []d2.Set, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return spec.Section(), err
}
