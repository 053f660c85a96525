package drag

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/observability"
	"github.com/matzehuels/blocksnap/pkg/render"
)

// Session tracks one drag of a stack of blocks. It finds the connection
// the stack would snap to if released, keeps the matching preview on
// screen and applies the connection on release.
//
// A Session is not safe for concurrent use. Once any method returns an
// error with code [errors.ErrCodeInvariant] or
// [errors.ErrCodeMissingStructure] the session is broken and every further
// call returns that error; only [Session.Dispose] still runs.
type Session struct {
	ws     *blocks.Workspace
	top    blocks.Block
	policy render.Policy
	logger *log.Logger
	hooks  observability.DragHooks
	opts   Options
	start  time.Time

	available   []*blocks.Connection
	lastOnStack *blocks.Connection
	firstMarker *blocks.MarkerBlock
	lastMarker  *blocks.MarkerBlock

	// Preview state. At most one of markerConn, outlined and faded is set.
	closest     *blocks.Connection
	local       *blocks.Connection
	mode        render.Mode
	markerConn  *blocks.Connection
	highlighted blocks.Block
	outlined    *blocks.Input
	faded       blocks.Block
	wouldDelete bool
	line        Line

	committed bool
	disposed  bool
	err       error
}

// candidate is the result of one proximity search.
type candidate struct {
	closest *blocks.Connection
	local   *blocks.Connection
	radius  float64
}

// Begin starts a drag of the stack whose top block is top. It creates the
// insertion marker clones, collects the connections the stack can offer
// and takes the stack out of the proximity indexes.
func Begin(top blocks.Block, opts Options) (*Session, error) {
	if top == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "drag requires a block")
	}
	if top.IsInsertionMarker() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "insertion marker %s cannot be dragged", top.ID())
	}
	if top.Disposed() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "block %s is disposed", top.ID())
	}
	ws := top.Workspace()
	if err := opts.ValidateAndSetDefaults(ws.Logger()); err != nil {
		return nil, err
	}
	s := &Session{
		ws:     ws,
		top:    top,
		policy: opts.Policy,
		logger: opts.Logger,
		hooks:  opts.Hooks,
		opts:   opts,
		start:  time.Now(),
	}

	first, err := s.createMarker(top)
	if err != nil {
		return nil, err
	}
	s.firstMarker = first
	if err := s.initAvailableConnections(); err != nil {
		s.disposeMarkers()
		return nil, err
	}
	ws.SetDragging(top, true)
	s.logger.Debug("drag started", "block", top.ID(), "connections", len(s.available))
	s.hooks.OnDragStart(top.ID())
	return s, nil
}

// Top returns the top block of the dragged stack.
func (s *Session) Top() blocks.Block { return s.top }

// Err returns the error that broke the session, or nil.
func (s *Session) Err() error { return s.err }

// AvailableConnections returns the connections of the dragged stack that
// are offered to the proximity search.
func (s *Session) AvailableConnections() []*blocks.Connection {
	return append([]*blocks.Connection(nil), s.available...)
}

// UpdateAvailableConnections recollects the offered connections. Call it
// when the connectivity of the dragged stack itself changed, for example
// after healing a stack the block was torn out of.
func (s *Session) UpdateAvailableConnections() error {
	if err := s.usable(); err != nil {
		return err
	}
	return s.fail(s.initAvailableConnections())
}

// Update recomputes the candidate for a pointer at drag offset dxy, in
// workspace units, over target. target may be nil. Previews change only
// when the candidate pair changes, when a new candidate wins by more than
// the preference margin, or when the drop would now delete the stack.
func (s *Session) Update(dxy geom.Point, target blocks.Component) error {
	if err := s.usable(); err != nil {
		return err
	}
	cand := s.getCandidate(dxy)
	s.wouldDelete = s.shouldDelete(cand, target)

	update := s.wouldDelete
	if !update {
		var err error
		if update, err = s.shouldUpdatePreviews(cand, dxy); err != nil {
			return s.fail(err)
		}
	}
	if update {
		if err := s.fail(s.refreshPreview(cand)); err != nil {
			return err
		}
	}
	s.updateConnectionLine(dxy)
	return nil
}

// WouldDeleteBlock reports whether releasing now would delete the stack.
func (s *Session) WouldDeleteBlock() bool { return s.wouldDelete }

// WouldConnect reports whether releasing now would connect the stack.
func (s *Session) WouldConnect() bool { return s.closest != nil }

// Commit connects the dragged stack to the current candidate. Without a
// candidate it does nothing. The preview is removed silently; the
// connection itself is recorded in the history.
func (s *Session) Commit() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.closest == nil {
		return nil
	}
	local, closest := s.local, s.closest

	release := s.ws.Events().Suppress()
	err := s.hidePreview()
	release()
	if err != nil {
		return s.fail(err)
	}

	if err := s.ws.Connect(local, closest); err != nil {
		return s.fail(errors.Wrap(errors.ErrCodeInvariant, err, "connect %s to %s", local, closest))
	}
	s.committed = true
	if s.top.Rendered() {
		inferior := local
		if local.IsSuperior() {
			inferior = closest
		}
		s.ws.PlayConnectAnimation(inferior.SourceBlock())
		s.ws.BringToFront(s.top.Root())
	}
	s.logger.Debug("drag committed", "block", s.top.ID(), "target", closest.Name())
	s.hooks.OnCommit(s.top.ID(), closest.SourceBlock().ID(), time.Since(s.start))
	return nil
}

// Dispose removes the insertion markers and returns the stack to the
// proximity indexes. A preview still on screen is removed first, so
// disposing without committing leaves the graph as it was. Dispose is
// idempotent and runs even on a broken session.
func (s *Session) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.available = nil

	var err error
	if s.closest != nil && !s.committed && s.err == nil {
		release := s.ws.Events().Suppress()
		err = s.hidePreview()
		release()
		s.clearCandidate()
	}
	if derr := s.disposeMarkers(); err == nil {
		err = derr
	}
	if !s.top.Disposed() {
		s.ws.SetDragging(s.top, false)
	}
	return err
}

// MarkerBlocks returns the live insertion markers: none, the clone of the
// top block, or that clone and the clone of the last block in the stack.
func (s *Session) MarkerBlocks() []*blocks.MarkerBlock {
	var out []*blocks.MarkerBlock
	for _, m := range []*blocks.MarkerBlock{s.firstMarker, s.lastMarker} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// ConnectionLine returns the guide line of the current outline or fade
// preview. The zero Line means there is none.
func (s *Session) ConnectionLine() Line { return s.line }

// Preview describes what a session currently shows.
type Preview struct {
	// Active is set while a candidate pair is recorded.
	Active bool
	Mode   render.Mode

	Closest *blocks.Connection
	Local   *blocks.Connection

	// At most one kind of preview is set: a marker, an outline or a fade.
	Marker       *blocks.MarkerBlock
	OutlinedFor  blocks.Block
	OutlineInput *blocks.Input
	Faded        blocks.Block

	WouldDelete bool
}

// Preview returns a snapshot of the preview state.
func (s *Session) Preview() Preview {
	p := Preview{
		Active:       s.closest != nil,
		Closest:      s.closest,
		Local:        s.local,
		OutlinedFor:  s.highlighted,
		OutlineInput: s.outlined,
		Faded:        s.faded,
		WouldDelete:  s.wouldDelete,
	}
	if p.Active {
		p.Mode = s.mode
	}
	if s.markerConn != nil {
		p.Marker, _ = s.markerConn.SourceBlock().(*blocks.MarkerBlock)
	}
	return p
}

func (s *Session) usable() error {
	if s.err != nil {
		return s.err
	}
	if s.disposed {
		return errors.New(errors.ErrCodeInvalidInput, "drag session of %s is disposed", s.top.ID())
	}
	return nil
}

// fail records fatal errors so the session refuses further use.
func (s *Session) fail(err error) error {
	if err != nil && errors.IsFatal(err) && s.err == nil {
		s.err = err
		s.logger.Error("drag session broken", "block", s.top.ID(), "err", err)
	}
	return err
}

func (s *Session) createMarker(source blocks.Block) (*blocks.MarkerBlock, error) {
	release := s.ws.Events().Suppress()
	defer release()
	return s.ws.NewMarker(source)
}

func (s *Session) disposeMarkers() error {
	release := s.ws.Events().Suppress()
	defer release()
	var first error
	for _, m := range s.MarkerBlocks() {
		if err := s.ws.Dispose(m, true); err != nil && first == nil {
			first = err
		}
	}
	s.firstMarker, s.lastMarker = nil, nil
	return first
}

// initAvailableConnections collects the connections of the top block plus
// the free tail of the stack when that is not the top block's own next
// connection. A tail gets its own marker, replacing any earlier one.
func (s *Session) initAvailableConnections() error {
	available := s.top.Connections(false)
	last := s.top.LastConnectionInStack()
	if last != nil && last != s.top.NextConnection() {
		available = append(available, last)
		if s.lastMarker != nil {
			release := s.ws.Events().Suppress()
			err := s.dropTailPreview()
			if err == nil {
				err = s.ws.Dispose(s.lastMarker, false)
			}
			release()
			if err != nil {
				return err
			}
			s.lastMarker = nil
		}
		s.lastOnStack = last
		m, err := s.createMarker(last.SourceBlock())
		if err != nil {
			return err
		}
		s.lastMarker = m
	}
	s.available = available
	return nil
}

// dropTailPreview hides a preview that hangs off the old stack tail, either
// through the tail marker or through the tail connection itself, so the
// tail marker can be replaced without leaving blocks spliced below it.
func (s *Session) dropTailPreview() error {
	usesTail := s.local != nil && s.local == s.lastOnStack
	if s.markerConn != nil && s.markerConn.SourceBlock() == blocks.Block(s.lastMarker) {
		usesTail = true
	}
	if !usesTail {
		return nil
	}
	err := s.hidePreview()
	s.clearCandidate()
	return err
}

// getCandidate searches around every available connection. While a
// preview is shown the search starts at the larger connecting radius so
// the preview is not lost when the marker shifts the surrounding blocks.
func (s *Session) getCandidate(dxy geom.Point) candidate {
	radius := s.opts.SnapRadius
	if s.closest != nil && s.local != nil {
		radius = s.opts.ConnectingRadius
	}
	var c candidate
	for _, conn := range s.available {
		hit, r := s.ws.DB(conn.Type().Opposite()).SearchForClosest(conn, radius, dxy)
		if hit == nil {
			continue
		}
		if c.closest == nil || r < radius {
			c.closest, c.local = hit, conn
			radius = r
		}
	}
	c.radius = radius
	return c
}

func (s *Session) shouldDelete(c candidate, target blocks.Component) bool {
	if target == nil {
		return false
	}
	if !s.ws.Components().HasCapability(target.ID(), blocks.CapDeleteArea) {
		return false
	}
	area, ok := target.(blocks.DeleteArea)
	if !ok {
		return false
	}
	return area.WouldDelete(s.top, c.closest != nil)
}

func (s *Session) shouldUpdatePreviews(c candidate, dxy geom.Point) (bool, error) {
	if c.local == nil || c.closest == nil {
		return s.local != nil && s.closest != nil, nil
	}
	switch {
	case s.local != nil && s.closest != nil:
		if s.closest == c.closest && s.local == c.local {
			return false, nil
		}
		cur := s.local.DistanceFrom(s.closest, dxy)
		return !(c.radius > cur-s.opts.PreferenceMargin), nil
	case s.local == nil && s.closest == nil:
		return true, nil
	}
	return false, errors.Invariant("only one of the local and closest connections is set")
}

// refreshPreview swaps the preview for c. History is suppressed for the
// whole swap.
func (s *Session) refreshPreview(c candidate) error {
	release := s.ws.Events().Suppress()
	defer release()
	if err := s.maybeHidePreview(c); err != nil {
		return err
	}
	return s.maybeShowPreview(c)
}

func (s *Session) maybeHidePreview(c candidate) error {
	var err error
	if c.closest == nil {
		err = s.hidePreview()
	} else {
		hadPreview := s.closest != nil && s.local != nil
		changed := s.closest != c.closest || s.local != c.local
		if hadPreview && (changed || s.wouldDelete) {
			err = s.hidePreview()
		}
	}
	s.clearCandidate()
	return err
}

func (s *Session) clearCandidate() {
	s.markerConn = nil
	s.closest = nil
	s.local = nil
	s.line = Line{}
}

func (s *Session) maybeShowPreview(c candidate) error {
	if s.wouldDelete || c.closest == nil {
		return nil
	}
	if c.closest == s.closest || c.closest.SourceBlock().IsInsertionMarker() {
		s.logger.Debug("ignoring candidate", "target", c.closest.Name())
		return nil
	}
	s.closest, s.local = c.closest, c.local
	return s.showPreview()
}

func (s *Session) showPreview() error {
	s.mode = s.policy.PreviewMode(s.closest, s.local, s.top)
	var err error
	switch s.mode {
	case render.InputOutline:
		s.showInputOutline()
	case render.InsertionMarker:
		err = s.showInsertionMarker()
	case render.ReplacementFade:
		err = s.showReplacementFade()
	default:
		err = errors.Invariant("unknown preview mode %s", s.mode)
	}
	if err != nil {
		return err
	}
	if s.policy.ShouldHighlight(s.closest) {
		s.closest.Highlight()
	}
	s.hooks.OnPreviewShown(s.mode.String(), s.closest.Name())
	return nil
}

func (s *Session) hidePreview() error {
	if s.closest != nil && s.closest.Highlighted() {
		s.closest.Unhighlight()
	}
	switch {
	case s.faded != nil:
		s.hideReplacementFade()
	case s.highlighted != nil:
		s.hideInputOutline()
	case s.markerConn != nil:
		if err := s.hideInsertionMarker(); err != nil {
			return err
		}
	default:
		s.logger.Debug("no preview to hide", "block", s.top.ID())
		return nil
	}
	s.hooks.OnPreviewHidden()
	return nil
}

func (s *Session) showInsertionMarker() error {
	local, closest := s.local, s.closest
	marker := s.firstMarker
	if s.lastOnStack != nil && local == s.lastOnStack {
		marker = s.lastMarker
	}
	if marker == nil {
		return errors.Invariant("no insertion marker for %s", local)
	}
	imConn := marker.MatchingConnection(local.SourceBlock(), local)
	if imConn == nil {
		return errors.New(errors.ErrCodeMissingStructure,
			"insertion marker %s has no connection matching %s", marker.ID(), local)
	}
	if imConn == s.markerConn {
		return errors.Invariant("insertion marker shown again at %s without change", imConn)
	}

	marker.SetRendered(true)
	marker.SetVisible(true)
	marker.PositionNearConnection(imConn, closest)
	if err := s.ws.Connect(imConn, closest); err != nil {
		return errors.Wrap(errors.ErrCodeInvariant, err, "connect insertion marker to %s", closest)
	}
	s.markerConn = imConn
	return nil
}

// hideInsertionMarker disconnects the marker and puts the surrounding
// blocks back the way they were.
func (s *Session) hideInsertionMarker() error {
	imConn := s.markerConn
	if imConn == nil {
		s.logger.Debug("no insertion marker to disconnect")
		return nil
	}
	marker := imConn.SourceBlock()
	next := marker.NextConnection()
	prev := marker.PreviousConnection()
	out := marker.OutputConnection()

	firstInStatementStack := imConn == next && !(prev != nil && prev.IsConnected())
	firstInOutputStack := imConn.Type() == blocks.InputValue && !(out != nil && out.IsConnected())

	var err error
	switch {
	case firstInStatementStack || firstInOutputStack:
		// Unplugging the marker would take the blocks after it along.
		if b := imConn.TargetBlock(); b != nil {
			err = b.Unplug(false)
		}
	case imConn.Type() == blocks.NextStatement && imConn != next:
		// First statement inside a C-shaped marker.
		err = s.unwrapMarker(marker, imConn)
	default:
		err = marker.Unplug(true)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvariant, err, "disconnect insertion marker")
	}
	if imConn.IsConnected() {
		return errors.Invariant("insertion marker connection %s still connected after disconnecting", imConn)
	}
	s.markerConn = nil
	marker.SetVisible(false)
	return nil
}

func (s *Session) unwrapMarker(marker blocks.Block, imConn *blocks.Connection) error {
	inner := imConn.Target()
	if inner == nil {
		return nil
	}
	if err := inner.SourceBlock().Unplug(false); err != nil {
		return err
	}
	var above *blocks.Connection
	if prev := marker.PreviousConnection(); prev != nil {
		above = prev.Target()
	}
	if err := marker.Unplug(true); err != nil {
		return err
	}
	if above != nil {
		return s.ws.Connect(above, inner)
	}
	return nil
}

func (s *Session) showInputOutline() {
	s.highlighted = s.closest.SourceBlock()
	s.outlined = s.closest.Input()
	if s.outlined != nil {
		s.outlined.SetOutlined(true)
	}
}

func (s *Session) hideInputOutline() {
	if s.outlined != nil {
		s.outlined.SetOutlined(false)
	}
	s.highlighted, s.outlined = nil, nil
	s.line = Line{}
}

func (s *Session) showReplacementFade() error {
	b := s.closest.TargetBlock()
	if b == nil {
		return errors.Invariant("replacement fade for %s without a block to replace", s.closest)
	}
	s.faded = b
	b.SetFaded(true)
	return nil
}

func (s *Session) hideReplacementFade() {
	s.faded.SetFaded(false)
	s.faded = nil
	s.line = Line{}
}

func (s *Session) updateConnectionLine(dxy geom.Point) {
	if s.closest == nil || s.local == nil || (s.highlighted == nil && s.faded == nil) {
		s.line = Line{}
		return
	}
	s.line = connectionLine(s.local, s.closest, dxy, IndicatorRadius)
}
