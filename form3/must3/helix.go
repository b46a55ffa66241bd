package must3

import (
	"math"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Coil is a run of a helical sweep.
type Coil struct {
	// Turns may be fractional.
	Turns float64
	// Rise is the advance along Z per full turn.
	Rise float64
}

// HelixTube sweeps the closed profile loop about Z through coils, one run
// after the other, and caps both ends. Each step turns 360/segments
// degrees. A fractional turn takes proportionally fewer steps and rises
// proportionally less.
func HelixTube(profile []r3.Vec, coils []Coil, segments int, ccw bool) pmesh.Mesh {
	if len(profile) < 3 {
		panic("profile needs 3 or more vertices")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	k := len(profile)
	var m pmesh.Mesh
	m.AddVertices(profile...)
	for _, c := range coils {
		if c.Turns < 0 {
			panic("turns < 0")
		}
		full := math.Floor(c.Turns)
		for i := 0; i < int(full); i++ {
			m.AddRevolvedSurface(k, pmesh.RevolveOpts{Segments: segments, Close: true, ZOffset: c.Rise, CCW: ccw})
		}
		rem := c.Turns - full
		if rem < 1e-9 {
			continue
		}
		steps := max(1, int(math.Round(rem*float64(segments))))
		m.AddRevolvedSurface(k, pmesh.RevolveOpts{
			Segments: steps,
			Close:    true,
			ZOffset:  c.Rise * rem,
			Degrees:  rem * 360,
			CCW:      ccw,
		})
	}
	start := make([]int, k)
	end := make([]int, k)
	n := m.Len()
	for i := 0; i < k; i++ {
		start[i] = k - 1 - i
		end[i] = n - k + i
	}
	m.AddFace(start...)
	m.AddFace(end...)
	m.Cleanup()
	return m
}

// SpringParms describes a compression spring wound upward from the XY plane.
type SpringParms struct {
	WireDiameter  float64 `yaml:"wire_diameter"`
	OuterDiameter float64 `yaml:"outer_diameter"`
	// Pitch is the rise per active coil.
	Pitch float64 `yaml:"pitch"`
	// ActiveCoils is used when FreeLength is zero.
	ActiveCoils float64 `yaml:"coils"`
	// FreeLength, when positive, fixes the total height and the active
	// coils are derived from it.
	FreeLength      float64 `yaml:"free_length"`
	DeadCoilsTop    float64 `yaml:"dead_coils_top"`
	DeadCoilsBottom float64 `yaml:"dead_coils_bottom"`
	LeftHand        bool    `yaml:"left_hand"`
	GroundEnds      bool    `yaml:"ground_ends"`
	WireSegments    int     `yaml:"wire_segments"`
	Segments        int     `yaml:"outer_diameter_segments"`
}

// Height returns the free length of a spring given by its coil counts.
// Ground ends lose one wire diameter.
func (s SpringParms) Height() float64 {
	h := s.Pitch*s.ActiveCoils + s.WireDiameter*(s.DeadCoilsTop+s.DeadCoilsBottom) + s.WireDiameter
	if s.GroundEnds {
		h -= s.WireDiameter
	}
	return h
}

// Coils returns the dead and active coil counts that fit in FreeLength.
// Dead coils are shortened when the length cannot hold them, bottom first.
func (s SpringParms) Coils() (top, bottom, active float64) {
	w := s.WireDiameter
	remain := s.FreeLength
	if s.GroundEnds {
		remain += w
	}
	bottom = math.Max(0, math.Min(s.DeadCoilsBottom, (remain-w)/w))
	remain -= bottom * w
	top = math.Max(0, math.Min(s.DeadCoilsTop, (remain-w)/w))
	remain -= top * w
	active = math.Max(0, (remain-w)/s.Pitch)
	return top, bottom, active
}

func (s SpringParms) check() {
	switch {
	case s.WireDiameter <= 0:
		panic("wire diameter <= 0")
	case s.OuterDiameter <= 2*s.WireDiameter:
		panic("outer diameter must exceed twice the wire diameter")
	case s.Pitch <= 0:
		panic("pitch <= 0")
	case s.ActiveCoils < 0 || s.FreeLength < 0 || s.DeadCoilsTop < 0 || s.DeadCoilsBottom < 0:
		panic("negative coil count or length")
	case s.WireSegments < 3 || s.Segments < 3:
		panic("segments < 3")
	}
}

// SpringCoil returns the unground wire of the spring. The wire starts at
// -X for a right hand spring and at +X for a left hand one. A right hand
// spring turns counter-clockwise as it rises.
func SpringCoil(s SpringParms) pmesh.Mesh {
	s.check()
	cx := s.OuterDiameter/2 - s.WireDiameter/2
	if !s.LeftHand {
		cx = -cx
	}
	wire := pmesh.CircleVertices(s.WireDiameter/2, s.WireSegments, r3.Vec{X: cx}, r3.Vec{Y: -1})
	top, bottom, active := s.DeadCoilsTop, s.DeadCoilsBottom, s.ActiveCoils
	if s.FreeLength > 0 {
		top, bottom, active = s.Coils()
	}
	coils := []Coil{
		{Turns: bottom, Rise: s.WireDiameter},
		{Turns: active, Rise: s.Pitch},
		{Turns: top, Rise: s.WireDiameter},
	}
	return HelixTube(wire, coils, s.Segments, !s.LeftHand)
}

// LeadScrewCutter returns the helical trapezoid teeth cut from a lead
// screw rod of the given major diameter. The teeth cover z in
// [-lead, length+lead] so the rod is cut over its whole length.
func LeadScrewCutter(major, minor, pitch float64, starts int, threadAngle, length float64, segments int) pmesh.Mesh {
	switch {
	case minor <= 0 || major <= minor:
		panic("major diameter must exceed minor diameter")
	case pitch <= 0:
		panic("pitch <= 0")
	case starts < 1:
		panic("starts < 1")
	case threadAngle <= 0 || threadAngle >= math.Pi:
		panic("thread angle must lie in (0, pi)")
	case length <= 0:
		panic("length <= 0")
	}
	depth := (major - minor) / 2
	flank := math.Tan(threadAngle/2) * depth
	land := (pitch - 2*flank) / 2
	if land <= 0 {
		panic("thread angle too wide for pitch")
	}
	overhang := land * math.Tan(math.Pi/2-threadAngle/2)
	r := major / 2
	rMin := minor / 2
	lead := float64(starts) * pitch
	turns := math.Ceil(length/lead) + 2
	var m pmesh.Mesh
	for i := 0; i < starts; i++ {
		z := float64(i) * pitch
		tooth := []r3.Vec{
			{X: -r - overhang, Z: z},
			{X: -rMin, Z: z + land/2 + flank},
			{X: -rMin, Z: z + land/2 + flank + land},
			{X: -r - overhang, Z: z + pitch},
		}
		m.Append(HelixTube(tooth, []Coil{{Turns: turns, Rise: lead}}, segments, true))
	}
	m.Translate(r3.Vec{Z: -lead})
	return m
}

// HelicalSlit returns the cutter of a helical slit of the given width
// through a tube of the given diameter, count turns dist apart, centered
// along a body of the given length.
func HelicalSlit(diameter, length, width, dist, count float64, segments int) pmesh.Mesh {
	switch {
	case diameter <= 0 || length <= 0:
		panic("size <= 0")
	case width <= 0 || width >= dist:
		panic("slit width must lie in (0, dist)")
	case count <= 0:
		panic("count <= 0")
	}
	z := length/2 - dist*count/2
	profile := []r3.Vec{
		{X: -diameter, Z: z + width/2},
		{X: -diameter, Z: z - width/2},
		{X: -0.1, Z: z - width/2},
		{X: -0.1, Z: z + width/2},
	}
	return HelixTube(profile, []Coil{{Turns: count, Rise: dist}}, segments, false)
}
