package drag

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/dragsurface"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/events"
	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/observability"
)

// ControllerOptions configures a [Controller].
type ControllerOptions struct {
	// Session configures each drag session.
	Session Options

	// DeadZone is how far, in workspace units, the pointer must travel
	// before a press turns into a drag.
	DeadZone float64

	// HealStack lets the rest of a stack close the gap when a block is
	// dragged out of its middle. Without it the blocks below come along.
	HealStack bool

	// Surface holds the dragged stack while it moves. Optional.
	Surface *dragsurface.Surface
}

// Result describes how a drag ended.
type Result struct {
	BlockID string `json:"blockId"`
	// Dragged is false when the pointer never left the dead zone.
	Dragged   bool `json:"dragged"`
	Connected bool `json:"connected"`
	Deleted   bool `json:"deleted"`
	// Target names the connection the stack was attached to.
	Target string `json:"target,omitempty"`
	// Group is the history group of the drag.
	Group  string     `json:"group,omitempty"`
	Offset geom.Point `json:"offset"`
}

// Controller turns pointer gestures into drag sessions: press selects a
// block, moves beyond the dead zone start a session, release ends it.
//
// The controller owns the selection, the history group of the drag and
// the drag surface.
type Controller struct {
	// Selected is the block last pressed.
	Selected *blocks.DocumentBlock

	ws      *blocks.Workspace
	opts    ControllerOptions
	logger  *log.Logger
	hooks   observability.DragHooks
	surface *dragsurface.Surface

	session  *Session
	dxy      geom.Point
	startPos geom.Point
	group    string
	endGroup func()
}

// NewController returns a controller for ws.
func NewController(ws *blocks.Workspace, opts ControllerOptions) (*Controller, error) {
	if ws == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "controller requires a workspace")
	}
	if opts.DeadZone < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dead zone must not be negative, got %g", opts.DeadZone)
	}
	if err := opts.Session.ValidateAndSetDefaults(ws.Logger()); err != nil {
		return nil, err
	}
	return &Controller{
		ws:      ws,
		opts:    opts,
		logger:  opts.Session.Logger,
		hooks:   opts.Session.Hooks,
		surface: opts.Surface,
	}, nil
}

// Press selects b. The drag starts with the first [Controller.Move] beyond
// the dead zone.
func (c *Controller) Press(b *blocks.DocumentBlock) error {
	if c.session != nil {
		return errors.New(errors.ErrCodeInvalidInput, "drag of %s in progress", c.session.Top().ID())
	}
	if b == nil || b.Disposed() {
		return errors.New(errors.ErrCodeInvalidInput, "press requires a live block")
	}
	c.Selected = b
	c.dxy = geom.Point{}
	return nil
}

// Move reports the pointer at offset dxy from the press, in workspace
// units, over target. target may be nil.
func (c *Controller) Move(dxy geom.Point, target blocks.Component) error {
	if c.Selected == nil {
		return errors.New(errors.ErrCodeInvalidInput, "move without a pressed block")
	}
	c.dxy = dxy
	if c.session == nil {
		if dxy.Len() <= c.opts.DeadZone {
			return nil
		}
		if err := c.start(); err != nil {
			return err
		}
	}
	if c.surface != nil {
		p := c.startPos.Add(dxy)
		c.surface.TranslateSurface(p.X, p.Y)
	}
	return c.session.Update(dxy, target)
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.session != nil }

// Session returns the active session, or nil.
func (c *Controller) Session() *Session { return c.session }

// Offset returns the last reported pointer offset.
func (c *Controller) Offset() geom.Point { return c.dxy }

// Group returns the history group of the active drag, or "".
func (c *Controller) Group() string { return c.group }

func (c *Controller) start() error {
	top := c.Selected
	c.group, c.endGroup = c.ws.Events().BeginGroup()
	c.ws.Events().Emit(events.Event{Type: events.TypeDragOutside, BlockID: top.ID(), OldPosition: top.Position()})

	if top.Parent() != nil {
		if err := top.Unplug(c.opts.HealStack); err != nil {
			c.closeGroup()
			return err
		}
	}
	c.startPos = top.Position()

	s, err := Begin(top, c.opts.Session)
	if err != nil {
		c.closeGroup()
		return err
	}
	c.session = s
	if c.surface != nil {
		if err := c.surface.Show(top); err != nil {
			s.Dispose()
			c.session = nil
			c.closeGroup()
			return err
		}
		c.surface.TranslateSurface(c.startPos.X, c.startPos.Y)
	}
	c.logger.Debug("drag", "block", top.ID(), "group", c.group)
	return nil
}

// Release ends the gesture. A drag over a delete area deletes the stack;
// otherwise the stack is moved by the last offset and connected to the
// current candidate, if any.
func (c *Controller) Release() (Result, error) {
	if c.Selected == nil {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "release without a pressed block")
	}
	res := Result{BlockID: c.Selected.ID(), Offset: c.dxy}
	if c.session == nil {
		return res, nil
	}
	s := c.session
	top := c.Selected
	res.Dragged = true
	res.Group = c.group
	defer c.finish()

	if s.WouldDeleteBlock() {
		if c.surface != nil {
			c.surface.ClearAndReturnTo(nil)
		}
		if err := s.Dispose(); err != nil {
			return res, err
		}
		if err := c.ws.Dispose(top, false); err != nil {
			return res, err
		}
		c.Selected = nil
		res.Deleted = true
		c.hooks.OnDelete(res.BlockID)
		return res, nil
	}

	top.MoveBy(c.dxy)
	if c.surface != nil {
		c.surface.ClearAndReturnTo(canvas{c.ws})
	}
	if s.WouldConnect() {
		res.Target = s.Preview().Closest.Name()
		if err := s.Commit(); err != nil {
			s.Dispose()
			return res, err
		}
		res.Connected = true
	} else if !c.dxy.IsZero() {
		c.ws.Events().Emit(events.Event{
			Type:        events.TypeMove,
			BlockID:     top.ID(),
			OldPosition: c.startPos,
			NewPosition: top.Position(),
		})
	}
	return res, s.Dispose()
}

// Cancel abandons the drag. The preview is removed and the stack stays
// where the drag started.
func (c *Controller) Cancel() error {
	if c.session == nil {
		return nil
	}
	defer c.finish()
	if c.surface != nil {
		c.surface.ClearAndReturnTo(canvas{c.ws})
	}
	return c.session.Dispose()
}

func (c *Controller) finish() {
	if c.session != nil {
		c.ws.Events().Emit(events.Event{Type: events.TypeDragOutside, BlockID: c.session.Top().ID(), NewPosition: c.session.Top().Position()})
	}
	c.session = nil
	c.dxy = geom.Point{}
	c.closeGroup()
}

func (c *Controller) closeGroup() {
	if c.endGroup != nil {
		c.endGroup()
	}
	c.group, c.endGroup = "", nil
}

// canvas hands dragged stacks back to the workspace.
type canvas struct{ ws *blocks.Workspace }

func (cv canvas) Adopt(g dragsurface.Group) {
	if b, ok := cv.ws.Block(g.ID()); ok {
		cv.ws.BringToFront(b)
	}
}
