package must2

import (
	"fmt"
	"math"

	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// ExtrusionSpec holds the cross-section dimensions of a T-slot aluminum
// extrusion made of XSlots by YSlots square cells of side Size.
type ExtrusionSpec struct {
	Size                float64 `yaml:"size"`
	XSlots              int     `yaml:"x_slots"`
	YSlots              int     `yaml:"y_slots"`
	SlotWidth           float64 `yaml:"slot_width"`
	SlotWideWidth       float64 `yaml:"slot_wide_width"`
	CoreWidth           float64 `yaml:"core_width"`
	WallThickness       float64 `yaml:"wall_thickness"`
	MiddleWallThickness float64 `yaml:"middle_wall_thickness"`
	XBoneThickness      float64 `yaml:"x_bone_thickness"`
}

// reach is the length of the construction rays cast to locate brace ends.
const reach = 1000

// Check panics when the dimensions cannot form a cross-section.
func (s ExtrusionSpec) Check() {
	switch {
	case s.Size <= 0:
		panic("size <= 0")
	case s.XSlots < 1 || s.YSlots < 1:
		panic("slot count < 1")
	case s.SlotWidth <= 0 || s.SlotWideWidth <= s.SlotWidth:
		panic("slot wide width must exceed slot width")
	case s.CoreWidth <= 0 || s.CoreWidth >= s.Size:
		panic("core width must lie in (0, size)")
	case s.WallThickness <= 0 || s.MiddleWallThickness <= 0 || s.XBoneThickness <= 0:
		panic("wall thickness <= 0")
	case s.SlotWideWidth >= s.Size-2*s.WallThickness:
		panic("slot too wide for size")
	}
}

// braceWidth is the horizontal width of the 45 degree brace.
func (s ExtrusionSpec) braceWidth() float64 {
	return s.XBoneThickness / math.Sqrt2 * 2
}

func mustIntersect(p0, p1, q0, q1 r2.Vec) r2.Vec {
	v, ok := d2.Intersect(p0, p1, q0, q1)
	if !ok {
		panic(fmt.Sprintf("extrusion brace %v-%v misses %v-%v", p0, p1, q0, q1))
	}
	return v
}

// TopMiddleLeft returns the tile right of the cell center and above it:
// core quarter, brace and the top wall up to the cell edge. middle selects
// the middle wall thickness at the cell edge. Without core the tile leaves
// the center hollow and starts XBoneThickness under the core top.
func (s ExtrusionSpec) TopMiddleLeft(middle, core bool) d2.Set {
	bw := s.braceWidth()
	root := r2.Vec{X: s.CoreWidth/2 - bw/2, Y: s.CoreWidth / 2}
	tip := mustIntersect(root, r2.Add(root, r2.Vec{X: reach, Y: reach}),
		r2.Vec{X: s.SlotWideWidth / 2, Y: reach}, r2.Vec{X: s.SlotWideWidth / 2})
	half := s.Size / 2
	wall := s.WallThickness
	if middle {
		wall = s.MiddleWallThickness
	}
	inner := s.CoreWidth/2 - s.XBoneThickness
	var v d2.Set
	if core {
		v = append(v, r2.Vec{})
	} else {
		v = append(v, r2.Vec{Y: inner})
	}
	v = append(v,
		r2.Vec{Y: s.CoreWidth / 2},
		root,
		tip,
		r2.Vec{X: s.SlotWideWidth / 2, Y: half - s.WallThickness},
		r2.Vec{X: s.SlotWidth / 2, Y: half - s.WallThickness},
		r2.Vec{X: s.SlotWidth / 2, Y: half},
		r2.Vec{X: half, Y: half},
		r2.Vec{X: half, Y: half - wall},
		r2.Vec{X: s.SlotWideWidth/2 + bw, Y: half - wall},
	)
	tipRight := r2.Add(tip, r2.Vec{X: bw})
	v = append(v, tipRight)
	if core {
		v = append(v,
			r2.Add(root, r2.Vec{X: bw / 2, Y: -bw / 2}),
			r2.Vec{X: s.CoreWidth / 2},
		)
	} else {
		v = append(v, mustIntersect(r2.Vec{Y: inner}, r2.Vec{X: reach, Y: inner},
			tipRight, r2.Add(tipRight, r2.Vec{X: -reach, Y: -reach})))
	}
	return v
}

// TopMiddleRight is TopMiddleLeft mirrored onto the left of the cell center.
func (s ExtrusionSpec) TopMiddleRight(middle, core bool) d2.Set {
	return mirror(s.TopMiddleLeft(middle, core), r2.Vec{X: -1})
}

// TopLeft returns the tile of the upper left outer corner of a cell.
func (s ExtrusionSpec) TopLeft() d2.Set {
	half := s.Size / 2
	bw := s.braceWidth()
	v1 := r2.Vec{X: -s.CoreWidth / 2, Y: s.CoreWidth/2 - bw/2}
	v2 := r2.Vec{X: -s.CoreWidth/2 + bw/2, Y: s.CoreWidth / 2}
	return d2.Set{
		{},
		{X: -s.CoreWidth / 2},
		v1,
		mustIntersect(v1, r2.Add(v1, r2.Vec{X: -reach, Y: reach}),
			r2.Vec{X: -reach, Y: s.SlotWideWidth / 2}, r2.Vec{Y: s.SlotWideWidth / 2}),
		{X: -half + s.WallThickness, Y: s.SlotWideWidth / 2},
		{X: -half + s.WallThickness, Y: s.SlotWidth / 2},
		{X: -half, Y: s.SlotWidth / 2},
		{X: -half, Y: half},
		{X: -s.SlotWidth / 2, Y: half},
		{X: -s.SlotWidth / 2, Y: half - s.WallThickness},
		{X: -s.SlotWideWidth / 2, Y: half - s.WallThickness},
		mustIntersect(v2, r2.Add(v2, r2.Vec{X: -reach, Y: reach}),
			r2.Vec{X: -s.SlotWideWidth / 2, Y: reach}, r2.Vec{X: -s.SlotWideWidth / 2}),
		v2,
		{Y: s.CoreWidth / 2},
	}
}

// TopRight is TopLeft mirrored across the Y axis.
func (s ExtrusionSpec) TopRight() d2.Set {
	return mirror(s.TopLeft(), r2.Vec{X: -1})
}

// LeftMiddleTop is the tile joining two vertically stacked cells on the
// left, below the upper cell center.
func (s ExtrusionSpec) LeftMiddleTop() d2.Set {
	return mirror(s.TopMiddleLeft(false, true), r2.Vec{X: 1, Y: 1})
}

// LeftMiddleBottom is LeftMiddleTop mirrored across the X axis.
func (s ExtrusionSpec) LeftMiddleBottom() d2.Set {
	return mirror(s.LeftMiddleTop(), r2.Vec{Y: 1})
}

// Section returns the tiles of the whole cross-section. Tiles share edges
// exactly where they touch, so extruding each and removing coincident faces
// leaves the closed profile. The section is centered on the origin.
func (s ExtrusionSpec) Section() []d2.Set {
	s.Check()
	var tiles []d2.Set
	place := func(tile d2.Set, off, n r2.Vec) {
		t := make(d2.Set, len(tile))
		for i, v := range tile {
			t[i] = r2.Add(v, off)
		}
		tiles = append(tiles, t, mirror(t, n))
	}
	middle := s.XSlots >= 3
	off := r2.Vec{X: -s.Size * float64(s.XSlots-1) / 2, Y: s.Size * float64(s.YSlots-1) / 2}
	down := r2.Vec{Y: -1}
	for i := 0; i < s.XSlots; i++ {
		core := !(s.YSlots >= 2 && s.XSlots >= 3 && 0 < i && i < s.XSlots-1)
		if i == 0 {
			place(s.TopLeft(), off, down)
		} else {
			place(s.TopMiddleRight(middle, core), off, down)
		}
		if i < s.XSlots-1 {
			place(s.TopMiddleLeft(middle, core), off, down)
		} else {
			place(s.TopRight(), off, down)
		}
		off.X += s.Size
	}
	off = r2.Vec{X: -s.Size * float64(s.XSlots-1) / 2, Y: s.Size*float64(s.YSlots-1)/2 - s.Size}
	left := r2.Vec{X: -1}
	for i := 1; i < s.YSlots; i++ {
		place(s.LeftMiddleTop(), r2.Add(off, r2.Vec{Y: s.Size}), left)
		place(s.LeftMiddleBottom(), off, left)
		off.Y -= s.Size
	}
	return tiles
}

// CellCenters returns the center of every cell, row by row from the top left.
func (s ExtrusionSpec) CellCenters() d2.Set {
	var c d2.Set
	for x := 0; x < s.XSlots; x++ {
		for y := 0; y < s.YSlots; y++ {
			c = append(c, r2.Vec{
				X: s.Size*float64(x) - 0.5*s.Size*float64(s.XSlots-1),
				Y: -s.Size*float64(y) + 0.5*s.Size*float64(s.YSlots-1),
			})
		}
	}
	return c
}

// OuterCorners returns the four outer corners of the section.
func (s ExtrusionSpec) OuterCorners() d2.Set {
	hx := s.Size * float64(s.XSlots) / 2
	hy := s.Size * float64(s.YSlots) / 2
	return d2.Set{{X: -hx, Y: hy}, {X: hx, Y: hy}, {X: -hx, Y: -hy}, {X: hx, Y: -hy}}
}

// CornerHoles returns the centers of the four corner holes spaced space
// apart within a corner cell.
func (s ExtrusionSpec) CornerHoles(space float64) d2.Set {
	hx := space/2 + s.Size/2*float64(s.XSlots-1)
	hy := space/2 + s.Size/2*float64(s.YSlots-1)
	return d2.Set{{X: -hx, Y: hy}, {X: hx, Y: hy}, {X: -hx, Y: -hy}, {X: hx, Y: -hy}}
}

func mirror(pts d2.Set, n r2.Vec) d2.Set {
	out := make(d2.Set, len(pts))
	for i, v := range pts {
		out[i] = d2.Mirror(v, n)
	}
	return out
}
