package render

import (
	"errors"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/romly/pmesh/internal/d2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
	"gonum.org/v1/gonum/spatial/r2"
)

var errNoProfile = errors.New("profile has no points")

// WriteDXF writes each outline of sets as line segments to a DXF file.
// Closed outlines get a segment from the last point back to the first.
func WriteDXF(path string, sets []d2.Set, closed bool) error {
	if profileLen(sets) == 0 {
		return errNoProfile
	}
	d := dxf.NewDrawing()
	if _, err := d.AddLayer("Profile", color.White, table.LT_CONTINUOUS, true); err != nil {
		return err
	}
	for _, s := range sets {
		err := segments(s, closed, func(a, b r2.Vec) error {
			_, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
			return err
		})
		if err != nil {
			return err
		}
	}
	return d.SaveAs(path)
}

// svgUnits is the number of user units per millimetre in SVG output.
const svgUnits = 100

// WriteSVG draws the outlines of sets to w. Coordinates are millimetres
// with Y pointing up as in the profile.
func WriteSVG(w io.Writer, sets []d2.Set, closed bool) error {
	if profileLen(sets) == 0 {
		return errNoProfile
	}
	var bb d2.Box
	first := true
	for _, s := range sets {
		if len(s) == 0 {
			continue
		}
		b := d2.BoxOf(s)
		if first {
			bb, first = b, false
		} else {
			bb = bb.Extend(b)
		}
	}
	margin := 0.05 * math.Max(bb.Size().X, bb.Size().Y)
	bb = bb.Enlarge(r2.Vec{X: 2 * margin, Y: 2 * margin})
	sz := bb.Size()
	const pxPerMM = 96 / 25.4
	canvas := svg.New(w)
	canvas.Startview(
		int(math.Ceil(sz.X*pxPerMM)), int(math.Ceil(sz.Y*pxPerMM)),
		svgCoord(bb.Min.X), svgCoord(-bb.Max.Y), svgCoord(sz.X), svgCoord(sz.Y),
	)
	style := "fill:none;stroke:black;stroke-width:" + strconv.Itoa(svgUnits/10)
	for _, s := range sets {
		if len(s) < 2 {
			continue
		}
		xs := make([]int, len(s))
		ys := make([]int, len(s))
		for i, p := range s {
			xs[i], ys[i] = svgCoord(p.X), svgCoord(-p.Y)
		}
		if closed {
			canvas.Polygon(xs, ys, style)
		} else {
			canvas.Polyline(xs, ys, style)
		}
	}
	canvas.End()
	return nil
}

func svgCoord(v float64) int { return int(math.Round(v * svgUnits)) }

func profileLen(sets []d2.Set) (n int) {
	for _, s := range sets {
		n += len(s)
	}
	return n
}

func segments(s d2.Set, closed bool, f func(a, b r2.Vec) error) error {
	for i := 1; i < len(s); i++ {
		if err := f(s[i-1], s[i]); err != nil {
			return err
		}
	}
	if closed && len(s) > 2 && !d2.EqualWithin(s[0], s[len(s)-1], 1e-9) {
		return f(s[len(s)-1], s[0])
	}
	return nil
}
