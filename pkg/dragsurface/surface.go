// Package dragsurface implements the isolated transform layer that holds
// the blocks being dragged.
//
// While a drag is in progress the dragged stack is taken off the main canvas
// and put on a [Surface]. Moving the pointer then only changes the
// surface's translation, which is cheap, instead of re-laying out the
// canvas. When the drag ends the stack is handed back to a [Container] (or
// dropped, if it was deleted).
//
// The surface works in two coordinate systems. The group transform places
// the held group relative to the surface in workspace units scaled by the
// workspace zoom; the surface transform moves the whole surface in screen
// pixels. Both are kept on whole pixels.
package dragsurface

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

// Group is a renderable subtree, typically the root block of a dragged
// stack.
type Group interface {
	ID() string
}

// Container takes back a group when the surface is cleared.
type Container interface {
	Adopt(g Group)
}

// Overflow values of the surface element.
const (
	OverflowHidden  = "hidden"
	OverflowVisible = "visible"
)

// Options configures a [Surface].
type Options struct {
	// Opacity of the held group, between 0 and 1. Defaults to 1.
	Opacity float64
	// Logger receives debug output. Defaults to a discard logger.
	Logger *log.Logger
}

// Surface holds at most one group at a time.
//
// The zero value is not usable; create surfaces with [New].
type Surface struct {
	logger *log.Logger

	group    Group
	visible  bool
	overflow string
	opacity  float64

	scale     float64
	surfaceXY *geom.Point // screen pixels, nil while hidden
	childXY   geom.Point  // group offset, whole units

	groupTransform string
	cssTransform   string
}

// New returns an empty, hidden surface.
func New(opts Options) *Surface {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = 1
	}
	return &Surface{
		logger:   opts.Logger,
		overflow: OverflowHidden,
		opacity:  opts.Opacity,
		scale:    1,
	}
}

// Show puts g on the surface and makes it visible. The surface translation
// starts at the origin. Showing while a group is held is an invariant
// violation.
func (s *Surface) Show(g Group) error {
	if s.group != nil {
		return errors.Invariant("drag surface already holds %s", s.group.ID())
	}
	s.group = g
	s.visible = true
	s.overflow = OverflowVisible
	s.surfaceXY = &geom.Point{}
	s.logger.Debug("drag surface shown", "group", g.ID())
	return nil
}

// TranslateAndScaleGroup positions the held group inside the surface and
// sets the workspace scale. x and y are rounded to whole pixels.
func (s *Surface) TranslateAndScaleGroup(x, y, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
	s.childXY = geom.Pt(x, y).Round()
	s.groupTransform = fmt.Sprintf("translate(%s,%s) scale(%s)",
		fmtInt(s.childXY.X), fmtInt(s.childXY.Y), fmtFloat(scale))
}

// TranslateBy moves the surface by a screen-pixel delta.
func (s *Surface) TranslateBy(dx, dy float64) {
	base := geom.Point{}
	if s.surfaceXY != nil {
		base = *s.surfaceXY
	}
	next := base.Add(geom.Pt(dx, dy))
	s.surfaceXY = &next
	s.applySurfaceTransform()
}

// TranslateSurface moves the surface to a position given in workspace
// units; it is converted to screen pixels with the current scale.
func (s *Surface) TranslateSurface(x, y float64) {
	p := geom.Pt(x, y).Scale(s.scale)
	s.surfaceXY = &p
	s.applySurfaceTransform()
}

func (s *Surface) applySurfaceTransform() {
	p := s.surfaceXY.Round()
	s.cssTransform = fmt.Sprintf("translate3d(%spx, %spx, 0px)", fmtInt(p.X), fmtInt(p.Y))
}

// Translation returns the applied surface translation in workspace units.
func (s *Surface) Translation() geom.Point {
	if s.surfaceXY == nil {
		return geom.Point{}
	}
	return s.surfaceXY.Round().Scale(1 / s.scale)
}

// WorkspaceTranslation returns a copy of the group offset set by the last
// [Surface.TranslateAndScaleGroup].
func (s *Surface) WorkspaceTranslation() geom.Point {
	return s.childXY
}

// ClearAndReturnTo hands the held group to c, or drops it when c is nil,
// then hides the surface and restores the default overflow.
func (s *Surface) ClearAndReturnTo(c Container) {
	if s.group == nil {
		s.logger.Debug("drag surface already empty")
	} else if c != nil {
		c.Adopt(s.group)
	}
	s.group = nil
	s.visible = false
	s.overflow = OverflowHidden
	s.surfaceXY = nil
	s.cssTransform = ""
}

// SetOpacity sets the opacity of the held group, clamped to [0, 1].
func (s *Surface) SetOpacity(v float64) {
	s.opacity = math.Min(math.Max(v, 0), 1)
}

// Opacity returns the group opacity.
func (s *Surface) Opacity() float64 { return s.opacity }

// Group returns the held group, or nil.
func (s *Surface) Group() Group { return s.group }

// Visible reports whether the surface is shown.
func (s *Surface) Visible() bool { return s.visible }

// Overflow returns the current overflow value of the surface element.
func (s *Surface) Overflow() string { return s.overflow }

// Scale returns the workspace scale.
func (s *Surface) Scale() float64 { return s.scale }

// GroupTransform returns the SVG transform attribute of the held group.
func (s *Surface) GroupTransform() string { return s.groupTransform }

// CSSTransform returns the CSS transform of the surface element, or "" while
// hidden.
func (s *Surface) CSSTransform() string { return s.cssTransform }

func fmtInt(v float64) string { return fmt.Sprintf("%d", int64(v)) }

func fmtFloat(v float64) string { return fmt.Sprintf("%g", v) }
