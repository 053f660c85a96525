package drag

import (
	"math"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

// Line is the guide drawn from the dragged connection to the candidate
// while an input outline or a replacement fade is shown. Both ends stop at
// the edge of the indicator dots.
type Line struct {
	// Active is set while an outline or fade preview owns a line.
	Active bool
	// Hidden is set when the two indicators overlap and only the dots are
	// drawn.
	Hidden bool
	// From and To are the line ends in workspace coordinates.
	From, To geom.Point
	// Indicator is the center of the dot drawn on the candidate connection.
	Indicator geom.Point
}

// Visible reports whether the line segment itself should be drawn.
func (l Line) Visible() bool { return l.Active && !l.Hidden }

// connectionLine computes the line between local, displaced by dxy, and
// closest.
func connectionLine(local, closest *blocks.Connection, dxy geom.Point, r float64) Line {
	start := local.Position().Add(dxy)
	end := closest.Position()
	l := Line{Active: true, Indicator: end}

	d := end.Sub(start)
	if d.Len() < 2*r+1 {
		l.Hidden = true
		return l
	}
	angle := math.Atan2(d.Y, d.X)
	off := geom.Pt(math.Cos(angle)*r, math.Sin(angle)*r)
	l.From = start.Add(off)
	l.To = end.Sub(off)
	return l
}
