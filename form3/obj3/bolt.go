package obj3

import (
	"fmt"
	"math"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3"
	"github.com/romly/pmesh/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
)

// ThreadStyle selects how much of a screw shaft is threaded.
type ThreadStyle string

const (
	FullThread   ThreadStyle = "all thread"
	HalfThread   ThreadStyle = "half thread"
	ManualThread ThreadStyle = "half thread manual"
)

// booleanOffset lifts cutters clear of coplanar faces.
const booleanOffset = 0.01

// ScrewParms defines a JIS machine screw. The screw points down with the
// bearing face of the head on the XY plane before Direction is applied.
type ScrewParms struct {
	Size thread.Size `yaml:"size"`
	Head HeadStyle   `yaml:"head"`

	PanHeadDiameter  float64 `yaml:"pan_head_diameter"`
	PanHeadHeight    float64 `yaml:"pan_head_height"`
	FlatHeadDiameter float64 `yaml:"flat_head_diameter"`
	FlatHeadEdge     float64 `yaml:"flat_head_edge"`
	BoltHeadDiameter float64 `yaml:"bolt_head_diameter"` // across corners
	BoltHeadHeight   float64 `yaml:"bolt_head_height"`

	PhillipsSize     float64 `yaml:"phillips_size"`
	PhillipsDepth    float64 `yaml:"phillips_depth"`
	PhillipsRotation float64 `yaml:"phillips_rotation"` // radians

	Diameter         float64     `yaml:"diameter"`
	Length           float64     `yaml:"length"`
	Pitch            float64     `yaml:"pitch"`
	Starts           int         `yaml:"starts"`
	ThreadDepth      float64     `yaml:"thread_depth"`
	Thread           ThreadStyle `yaml:"thread"`
	UnthreadedLength float64     `yaml:"unthreaded_length"`
	Direction        Direction   `yaml:"direction"`

	Segments            int `yaml:"segments"`
	HeadBevelSegments   int `yaml:"head_bevel_segments"`
	ThreadBevelSegments int `yaml:"thread_bevel_segments"`
	ChamferSegments     int `yaml:"chamfer_segments"`
}

// ScrewDefaults returns an M3x10 pan head screw.
func ScrewDefaults() ScrewParms {
	k := ScrewParms{
		Head:                HeadPan,
		PhillipsRotation:    math.Pi / 4,
		Length:              10,
		Thread:              FullThread,
		Direction:           DirZ,
		Segments:            32,
		HeadBevelSegments:   10,
		ThreadBevelSegments: 5,
		ChamferSegments:     48,
	}
	if err := k.SetSize(thread.M3); err != nil {
		panic(err)
	}
	return k
}

// SetSize copies the catalog dimensions of size into k.
func (k *ScrewParms) SetSize(size thread.Size) error {
	s, err := thread.Lookup(size)
	if err != nil {
		return err
	}
	k.Size = size
	k.Diameter, k.Pitch, k.Starts = s.Diameter, s.Pitch, 1
	k.ThreadDepth = s.ThreadDepth()
	k.PanHeadDiameter, k.PanHeadHeight = s.PanHeadDiameter, s.PanHeadHeight
	k.PhillipsSize, k.PhillipsDepth = s.PhillipsSize, s.PhillipsDepth
	k.FlatHeadDiameter, k.FlatHeadEdge = s.FlatHeadDiameter, s.FlatHeadEdge
	k.BoltHeadDiameter, k.BoltHeadHeight = s.BoltHeadDiameter(), s.BoltHeadHeight
	return nil
}

// ScrewName returns the label of a screw such as "Pan Head Screw M3x10mm".
func ScrewName(k ScrewParms) string {
	var name string
	switch k.Head {
	case HeadPan:
		name = "Pan Head Screw"
	case HeadFlat:
		name = "Flat Head Screw"
	case HeadHex:
		name = "Hexagon Head Screw"
	default:
		name = "Screw"
	}
	return fmt.Sprintf("%s M%sx%smm", name, dim(k.Diameter), dim(k.Length))
}

// unthreaded returns the plain shank length implied by the thread style.
func (k ScrewParms) unthreaded() float64 {
	switch k.Thread {
	case HalfThread:
		return thread.ScrewSpec{Diameter: k.Diameter}.UnthreadedLength(k.Length)
	case ManualThread:
		return k.UnthreadedLength
	}
	return 0
}

func (k ScrewParms) headHeight() float64 {
	switch k.Head {
	case HeadPan:
		return k.PanHeadHeight
	case HeadFlat:
		// A countersunk head is as deep as its diameter requires.
		return k.FlatHeadDiameter
	case HeadHex:
		return k.BoltHeadHeight
	}
	return 0
}

// Screw returns a JIS screw with a pan, flat or hexagon head or none.
func Screw(k ScrewParms) (*pmesh.Part, error) {
	switch {
	case k.Diameter <= 0:
		return nil, invalid("diameter", "must be positive")
	case k.Length < 0:
		return nil, invalid("length", "must not be negative")
	case k.Thread == ManualThread && k.UnthreadedLength > k.Length:
		return nil, invalid("unthreaded_length", "the unthreaded part cannot be longer than the total length")
	}
	unthreaded := k.unthreaded()
	var members []pmesh.Solid
	if k.Length > 0 {
		topCut := 0.0
		if k.Head == HeadFlat {
			topCut = k.PhillipsDepth
		}
		shaft, err := screwShaft(k, unthreaded, topCut)
		if err != nil {
			return nil, err
		}
		members = append(members, shaft)
	}
	if k.Head != HeadNone && k.headHeight() > 0 {
		head, err := screwHead(k)
		if err != nil {
			return nil, err
		}
		members = append(members, head)
	}
	if len(members) == 0 {
		return nil, invalid("length", "screw has neither shaft nor head")
	}
	base, err := k.Direction.place(pmesh.GroupSolid{Members: members})
	if err != nil {
		return nil, err
	}
	p := pmesh.NewPart(ScrewName(k), base)
	p.Segments = k.Segments
	return p, nil
}

// screwShaft returns the shaft hanging below the XY plane: the threaded
// rod trimmed to its length under a plain shank of length unthreaded.
// topCut removes that much of the shaft top for a countersunk recess.
func screwShaft(k ScrewParms, unthreaded, topCut float64) (pmesh.Solid, error) {
	threaded := math.Max(0, k.Length-unthreaded)
	var members []pmesh.Solid
	if threaded > 0 {
		rod, err := form3.ThreadedCylinder(form3.ThreadParms{
			Diameter:      k.Diameter,
			Length:        threaded,
			Pitch:         k.Pitch,
			Starts:        k.Starts,
			Depth:         k.ThreadDepth,
			Segments:      k.Segments,
			BevelSegments: k.ThreadBevelSegments,
		})
		if err != nil {
			return nil, fmt.Errorf("screw thread: %w", err)
		}
		rod.Translate(r3.Vec{Z: -unthreaded})
		t := pmesh.NewPart("thread", pmesh.MeshSolid{M: rod})
		t.Keep(slab(k.Diameter, -unthreaded-threaded, -unthreaded))
		members = append(members, t)
	}
	if unthreaded > 0 {
		members = append(members, pmesh.CylinderSolid{
			Center: r3.Vec{Z: -unthreaded / 2},
			Axis:   pmesh.AxisZ,
			Height: unthreaded,
			Radius: k.Diameter / 2,
		})
	}
	shaft := pmesh.NewPart("shaft", pmesh.GroupSolid{Members: members})
	if topCut > 0 {
		shaft.Cut(slab(k.Diameter, -topCut, k.Diameter))
	}
	return shaft, nil
}

// screwHead returns the head resting on the XY plane with its recess.
func screwHead(k ScrewParms) (pmesh.Solid, error) {
	var (
		m   pmesh.Mesh
		top float64
		err error
	)
	var cutters []pmesh.Solid
	switch k.Head {
	case HeadPan:
		m, err = form3.PanHead(k.PanHeadDiameter, k.PanHeadHeight, k.Segments, k.HeadBevelSegments)
		top = k.PanHeadHeight
	case HeadFlat:
		m, err = form3.FlatHead(k.FlatHeadDiameter, k.FlatHeadEdge, k.Segments, k.HeadBevelSegments)
	case HeadHex:
		m, err = form3.Nut(k.BoltHeadDiameter, k.BoltHeadHeight, k.HeadBevelSegments)
		if err == nil {
			var chamfer pmesh.Mesh
			chamfer, err = form3.NutChamfer(k.BoltHeadDiameter, k.ChamferSegments, 0, false)
			chamfer.Translate(r3.Vec{Z: k.BoltHeadHeight + 0.001})
			cutters = append(cutters, pmesh.MeshSolid{M: chamfer})
		}
		m.Translate(r3.Vec{Z: k.BoltHeadHeight})
		top = k.BoltHeadHeight
	}
	if err != nil {
		return nil, fmt.Errorf("%s head: %w", k.Head, err)
	}
	head := pmesh.NewPart(k.Head.String()+" head", pmesh.MeshSolid{M: m})
	for _, c := range cutters {
		head.Cut(c)
	}
	if k.PhillipsDepth > 0 && k.PhillipsSize > 0 {
		recess, err := form3.PhillipsRecess(k.PhillipsSize, k.PhillipsDepth+booleanOffset)
		if err != nil {
			return nil, fmt.Errorf("phillips recess: %w", err)
		}
		head.Cut(pmesh.Placed{
			S:      pmesh.MeshSolid{M: recess},
			Angle:  k.PhillipsRotation,
			Axis:   pmesh.AxisZ,
			Offset: r3.Vec{Z: top + booleanOffset},
		})
	}
	return head, nil
}
