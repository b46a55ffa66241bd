// Package obj3 assembles complete mechanical parts from the form3
// generators. Each part has a parameter struct with yaml tags, a function
// returning its defaults and a builder returning a *pmesh.Part whose
// boolean, bevel and array modifiers describe how to finish it.
package obj3

import (
	"fmt"
	"math"
	"strings"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ValidationError reports a parameter combination that cannot be built.
// Builders check their parameters before producing any geometry.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// HeadStyle selects the head of a screw.
type HeadStyle int

const (
	HeadNone HeadStyle = iota
	HeadPan
	HeadFlat
	HeadHex
)

func (h HeadStyle) String() (str string) {
	switch h {
	case HeadNone:
		str = "none"
	case HeadPan:
		str = "pan"
	case HeadFlat:
		str = "flat"
	case HeadHex:
		str = "bolt"
	default:
		str = "unknown"
	}
	return str
}

// MarshalText implements encoding.TextMarshaler.
func (h HeadStyle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HeadStyle) UnmarshalText(b []byte) error {
	for _, s := range []HeadStyle{HeadNone, HeadPan, HeadFlat, HeadHex} {
		if strings.EqualFold(string(b), s.String()) {
			*h = s
			return nil
		}
	}
	return fmt.Errorf("unknown head style %q", b)
}

// Direction is the direction a screw points, named by the axis its
// shaft runs along. "z" points the tip down toward -Z.
type Direction string

const (
	DirZ    Direction = "z"
	DirNegZ Direction = "-z"
	DirX    Direction = "x"
	DirNegX Direction = "-x"
	DirY    Direction = "y"
	DirNegY Direction = "-y"
)

// place rotates s from the default downward pointing pose into d.
func (d Direction) place(s pmesh.Solid) (pmesh.Solid, error) {
	p := pmesh.Placed{S: s, Axis: pmesh.AxisZ}
	switch d {
	case DirZ, "":
		return s, nil
	case DirNegZ:
		p.Angle, p.Axis = math.Pi, pmesh.AxisY
	case DirX:
		p.Angle, p.Axis = -math.Pi/2, pmesh.AxisY
	case DirNegX:
		p.Angle, p.Axis = math.Pi/2, pmesh.AxisY
	case DirY:
		p.Angle, p.Axis = math.Pi/2, pmesh.AxisX
	case DirNegY:
		p.Angle, p.Axis = -math.Pi/2, pmesh.AxisX
	default:
		return nil, invalid("direction", "unknown direction %q", d)
	}
	return p, nil
}

// slab returns a square box of side 2*half spanning z0 to z1 about the Z axis.
// Boolean cutters use it to trim parts at a height.
func slab(half, z0, z1 float64) pmesh.BoxSolid {
	lo, hi := math.Min(z0, z1), math.Max(z0, z1)
	return pmesh.BoxSolid{
		Center: r3.Vec{Z: (lo + hi) / 2},
		Size:   r3.Vec{X: 2 * half, Y: 2 * half, Z: hi - lo},
	}
}

func dim(v float64) string { return pmesh.FormatDimension(v) }

// cornerBox returns the axis aligned box with opposite corners a and b.
func cornerBox(a, b r3.Vec) pmesh.BoxSolid {
	return pmesh.BoxSolid{
		Center: r3.Scale(0.5, r3.Add(a, b)),
		Size:   r3.Vec{X: math.Abs(b.X - a.X), Y: math.Abs(b.Y - a.Y), Z: math.Abs(b.Z - a.Z)},
	}
}

// aboutZ returns s rotated by angle about the Z axis.
func aboutZ(s pmesh.Solid, angle float64) pmesh.Placed {
	return pmesh.Placed{S: s, Angle: angle, Axis: pmesh.AxisZ}
}

// segmented meshes s with its own facet count regardless of the part
// it ends up in.
func segmented(s pmesh.Solid, segments int) pmesh.Solid {
	m, err := s.Mesh(segments)
	if err != nil {
		return s
	}
	return pmesh.MeshSolid{M: m}
}
