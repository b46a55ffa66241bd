package thread

import (
	"errors"
	"fmt"
	"sort"
)

type screwDatabase map[Size]ScrewSpec

var screwDB = initScrewLookup()

// jisAdd adds a coarse metric screw. Head and nut dimensions follow
// JIS B 1111 (cross recessed heads), JIS B 1180 (hexagon bolts) and
// JIS B 1181 (hexagon nuts).
func (m screwDatabase) jisAdd(size Size, diameter, pitch float64, pan [2]float64, phillips [2]float64, flat [2]float64, hex [2]float64, nut [2]float64) {
	m[size] = ScrewSpec{
		Size:             size,
		Diameter:         diameter,
		Pitch:            pitch,
		PanHeadDiameter:  pan[0],
		PanHeadHeight:    pan[1],
		PhillipsSize:     phillips[0],
		PhillipsDepth:    phillips[1],
		FlatHeadDiameter: flat[0],
		FlatHeadEdge:     flat[1],
		BoltHeadF2F:      hex[0],
		BoltHeadHeight:   hex[1],
		NutHeight:        nut[0],
		ThinNutHeight:    nut[1],
	}
}

func initScrewLookup() screwDatabase {
	m := make(screwDatabase)
	// size, d, P, pan {dk, k}, recess {m, depth}, flat {dk, rim}, hex {s, k}, nut {m, thin m}
	m.jisAdd(M2, 2, 0.4, [2]float64{3.5, 1.3}, [2]float64{1.9, 1.0}, [2]float64{3.8, 0.2}, [2]float64{4, 1.4}, [2]float64{1.6, 1.2})
	m.jisAdd(M2p5, 2.5, 0.45, [2]float64{4.5, 1.7}, [2]float64{2.7, 1.3}, [2]float64{4.7, 0.25}, [2]float64{5, 1.7}, [2]float64{2, 1.6})
	m.jisAdd(M3, 3, 0.5, [2]float64{5.5, 2}, [2]float64{3, 1.5}, [2]float64{5.5, 0.3}, [2]float64{5.5, 2}, [2]float64{2.4, 1.8})
	m.jisAdd(M4, 4, 0.7, [2]float64{7, 2.6}, [2]float64{4.4, 1.9}, [2]float64{8.4, 0.35}, [2]float64{7, 2.8}, [2]float64{3.2, 2.4})
	m.jisAdd(M5, 5, 0.8, [2]float64{9, 3.3}, [2]float64{4.9, 2.3}, [2]float64{9.3, 0.4}, [2]float64{8, 3.5}, [2]float64{4, 3.2})
	m.jisAdd(M6, 6, 1, [2]float64{10.5, 3.9}, [2]float64{6.9, 2.8}, [2]float64{11.3, 0.5}, [2]float64{10, 4}, [2]float64{5, 3.6})
	m.jisAdd(M8, 8, 1.25, [2]float64{14, 5.2}, [2]float64{9, 3.6}, [2]float64{15.8, 0.6}, [2]float64{13, 5.3}, [2]float64{6.5, 5})
	return m
}

// ErrUnknownSize is returned by the lookup functions for sizes missing
// from the catalog.
var ErrUnknownSize = errors.New("size not in catalog")

// Lookup returns the screw spec for size.
func Lookup(size Size) (ScrewSpec, error) {
	if s, ok := screwDB[size]; ok {
		return s, nil
	}
	return ScrewSpec{}, fmt.Errorf("screw size %q: %w", size, ErrUnknownSize)
}

// Sizes returns every known screw size, smallest first.
func Sizes() []Size {
	out := make([]Size, 0, len(screwDB))
	for k := range screwDB {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return screwDB[out[i]].Diameter < screwDB[out[j]].Diameter })
	return out
}

// SizeForNutDiameter returns the size whose hexagon across-corners
// diameter matches d within 0.001 mm.
func SizeForNutDiameter(d float64) (Size, bool) {
	for _, size := range Sizes() {
		s := screwDB[size]
		if diff := s.BoltHeadDiameter() - d; diff < 0.001 && diff > -0.001 {
			return size, true
		}
	}
	return "", false
}
