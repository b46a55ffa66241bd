package d3

import "gonum.org/v1/gonum/spatial/r3"

// Box is a 3d bounding box.
type Box r3.Box

// BoxOf returns the smallest box containing every point of the set.
// An empty set yields the zero Box.
func BoxOf(s Set) Box {
	if len(s) == 0 {
		return Box{}
	}
	return Box{Min: s.Min(), Max: s.Max()}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}
