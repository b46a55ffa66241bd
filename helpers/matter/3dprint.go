// Package matter models how printed plastic deviates from the mesh it was
// sliced from, so that holes and mating parts can be compensated.
package matter

import (
	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{Name: "PLA", shrink: 0.2e-2, clearance: 0.4} // 0.2% shrinkage
	// PETG shrinks less but strings more, so holes need a little more room.
	PETG = ViscousMaterial{Name: "PETG", shrink: 0.1e-2, clearance: 0.45}
)

// ViscousMaterial is a printing material.
type ViscousMaterial struct {
	Name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// clearance is the radial play a printed hole needs for a part to fit.
	clearance float64
}

// Lookup returns the named material.
func Lookup(name string) (ViscousMaterial, bool) {
	for _, m := range []ViscousMaterial{PLA, PETG} {
		if m.Name == name {
			return m, true
		}
	}
	return ViscousMaterial{}, false
}

// Clearance returns the radial play of a hole printed in m.
func (m ViscousMaterial) Clearance() float64 { return m.clearance }

// Scale enlarges mesh so that it cools down to its modelled size.
func (m ViscousMaterial) Scale(mesh *pmesh.Mesh) {
	scale := 1 / (1 - m.shrink)
	mesh.Scale(r3.Vec{X: scale, Y: scale, Z: scale})
}

// HoleDiameter returns the diameter to model for a hole that must
// accept a part of diameter real.
func (m ViscousMaterial) HoleDiameter(real float64) float64 {
	if real <= 0 {
		panic("HoleDiameter only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + 2*m.clearance
}
