package blocks

import (
	stderrors "errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/events"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

var (
	// ErrNotConnected is returned by [Workspace.Disconnect] for a connection
	// without a target.
	ErrNotConnected = stderrors.New("connection is not connected")

	// ErrIncompatible is returned by [Workspace.Connect] when the two
	// connections do not have opposite types or belong to the same block.
	ErrIncompatible = stderrors.New("connections are not compatible")

	// ErrForeignBlock is returned when a block from another workspace is
	// passed in.
	ErrForeignBlock = stderrors.New("block belongs to another workspace")
)

// DefaultBumpDelta is how far an orphaned block is moved when it cannot be
// reattached.
const DefaultBumpDelta = 25

// Options configures a [Workspace].
type Options struct {
	// Registry resolves block types. Required.
	Registry *Registry
	// Checker decides connection compatibility. Defaults to DefaultChecker.
	Checker Checker
	// Events receives structural changes. Defaults to a fresh log.
	Events *events.Log
	// Logger receives debug output. Defaults to a discard logger.
	Logger *log.Logger
	// Rendered marks blocks as drawn on screen, which enables connect
	// animations on commit.
	Rendered bool
	// BumpDelta is the distance orphans are moved when they cannot be
	// reattached. Defaults to DefaultBumpDelta.
	BumpDelta float64
}

// BlockOptions configures [Workspace.NewBlock].
type BlockOptions struct {
	// ID is the block id. A random UUID is used when empty.
	ID string
	// Position is the initial top-left corner.
	Position geom.Point
	// State is the initial extra state.
	State ExtraState
	// Silent suppresses the create event.
	Silent bool
}

// Workspace owns a block graph: the blocks, their paint order, the
// connection indexes used for proximity search and the component registry.
//
// A workspace is not safe for concurrent use.
type Workspace struct {
	registry   *Registry
	checker    Checker
	events     *events.Log
	logger     *log.Logger
	components *ComponentManager
	rendered   bool
	bumpDelta  float64

	dbs     [4]*ConnectionDB
	blocks  map[string]*DocumentBlock
	markers map[string]*MarkerBlock
	top     []*DocumentBlock

	animations []string
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(opts Options) (*Workspace, error) {
	if opts.Registry == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "workspace requires a block registry")
	}
	if opts.Checker == nil {
		opts.Checker = DefaultChecker{}
	}
	if opts.Events == nil {
		opts.Events = events.NewLog()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.BumpDelta == 0 {
		opts.BumpDelta = DefaultBumpDelta
	}
	ws := &Workspace{
		registry:   opts.Registry,
		checker:    opts.Checker,
		events:     opts.Events,
		logger:     opts.Logger,
		components: NewComponentManager(),
		rendered:   opts.Rendered,
		bumpDelta:  opts.BumpDelta,
		blocks:     make(map[string]*DocumentBlock),
		markers:    make(map[string]*MarkerBlock),
	}
	for i := range ws.dbs {
		ws.dbs[i] = NewConnectionDB(opts.Checker)
	}
	return ws, nil
}

// Registry returns the block type registry.
func (ws *Workspace) Registry() *Registry { return ws.registry }

// Checker returns the connection checker.
func (ws *Workspace) Checker() Checker { return ws.checker }

// Events returns the structural-change log.
func (ws *Workspace) Events() *events.Log { return ws.events }

// Logger returns the workspace logger.
func (ws *Workspace) Logger() *log.Logger { return ws.logger }

// Components returns the component registry.
func (ws *Workspace) Components() *ComponentManager { return ws.components }

// Rendered reports whether the workspace is drawn on screen.
func (ws *Workspace) Rendered() bool { return ws.rendered }

// DB returns the index holding connections of type t.
func (ws *Workspace) DB(t ConnType) *ConnectionDB { return ws.dbs[t] }

// NewBlock instantiates a document block of the given type.
func (ws *Workspace) NewBlock(typ string, opts BlockOptions) (*DocumentBlock, error) {
	def, err := ws.registry.Lookup(typ)
	if err != nil {
		return nil, err
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, dup := ws.blocks[id]; dup {
		return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate block id %q", id)
	}
	b := &DocumentBlock{}
	n := &b.node
	n.self, n.ws, n.def, n.id = b, ws, def, id
	n.pos = opts.Position
	n.state = opts.State.Clone()
	n.inputsInline = def.InputsInline
	n.rendered = ws.rendered
	n.visible = true
	n.tracking = true
	n.buildConnections()
	if err := n.buildInputs(); err != nil {
		return nil, err
	}
	ws.blocks[id] = b
	ws.top = append(ws.top, b)
	if !opts.Silent {
		ws.events.Emit(events.Event{Type: events.TypeCreate, BlockID: id, NewPosition: n.pos})
	}
	return b, nil
}

// NewMarker creates an insertion marker cloned from source. The clone gets
// source's extra state, the field values of its visible inputs, and its
// collapsed and inline-inputs flags. It starts hidden and unrendered, is
// never indexed for proximity search and never emits events.
//
// A clone whose shape does not match its source is an error with code
// [errors.ErrCodeMissingStructure]. This happens when a definition's
// SaveState drops parts of the extra state that Shape depends on.
func (ws *Workspace) NewMarker(source Block) (*MarkerBlock, error) {
	if source.Workspace() != ws {
		return nil, ErrForeignBlock
	}
	m := &MarkerBlock{sourceID: source.ID()}
	n := &m.node
	n.self, n.ws, n.def = m, ws, source.Definition()
	n.id = "marker-" + uuid.NewString()
	n.pos = source.Position()
	n.state = source.ExtraState()
	if save := n.def.SaveState; save != nil {
		n.state = save(n.state)
	}
	n.buildConnections()
	if err := n.buildInputs(); err != nil {
		return nil, err
	}

	for i, src := range source.Inputs() {
		if src.Name == CollapsedInputName || !src.Visible() {
			continue
		}
		if i >= len(n.inputs) {
			return nil, missingStructure("input", src.Name, source)
		}
		dst := n.inputs[i]
		for j, f := range src.Fields {
			if j >= len(dst.Fields) {
				return nil, missingStructure("field", f.Name, source)
			}
			dst.Fields[j].Value = f.Value
		}
	}
	n.collapsed = source.Collapsed()
	n.inputsInline = source.InputsInline()
	n.visible = false
	ws.markers[n.id] = m
	return m, nil
}

func missingStructure(kind, name string, source Block) error {
	return errors.New(errors.ErrCodeMissingStructure,
		"the insertion marker manager tried to create a marker but the result is missing %s %q "+
			"(source block %s of type %s); if the block has extra state, make sure SaveState keeps everything Shape reads",
		kind, name, source.ID(), source.Type())
}

// Block returns the document block with the given id.
func (ws *Workspace) Block(id string) (*DocumentBlock, bool) {
	b, ok := ws.blocks[id]
	return b, ok
}

// Blocks returns all document blocks: each top block in paint order,
// followed by its descendants.
func (ws *Workspace) Blocks() []*DocumentBlock {
	var out []*DocumentBlock
	for _, t := range ws.top {
		for _, b := range t.Descendants() {
			if d, ok := b.(*DocumentBlock); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// TopBlocks returns the document blocks without a parent in paint order,
// back to front.
func (ws *Workspace) TopBlocks() []*DocumentBlock { return slices.Clone(ws.top) }

// Markers returns the live insertion markers.
func (ws *Workspace) Markers() []*MarkerBlock {
	out := make([]*MarkerBlock, 0, len(ws.markers))
	for _, m := range ws.markers {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *MarkerBlock) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// BringToFront moves the stack containing b to the end of the paint order.
func (ws *Workspace) BringToFront(b Block) {
	root, ok := b.Root().(*DocumentBlock)
	if !ok {
		return
	}
	i := slices.Index(ws.top, root)
	if i < 0 {
		return
	}
	ws.top = append(slices.Delete(ws.top, i, i+1), root)
}

// PlayConnectAnimation records the connect animation for b. The renderer
// reads these through [Workspace.Animations].
func (ws *Workspace) PlayConnectAnimation(b Block) {
	ws.animations = append(ws.animations, b.ID())
}

// Animations returns the ids of blocks a connect animation was played on.
func (ws *Workspace) Animations() []string { return slices.Clone(ws.animations) }

// Dispose removes b and all its descendants. With heal set, a block taken
// from the middle of a stack lets the rest of the stack close the gap.
// Disposing a document block emits one delete event for b. A marker never
// takes other blocks with it: whatever is still plugged into it becomes a
// top block.
func (ws *Workspace) Dispose(b Block, heal bool) error {
	if b.Workspace() != ws {
		return ErrForeignBlock
	}
	if b.Disposed() {
		return nil
	}
	oldPos := b.Position()
	if err := b.Unplug(heal); err != nil {
		return err
	}
	if m, ok := b.(*MarkerBlock); ok {
		for _, c := range m.Connections(true) {
			if c.IsSuperior() && c.IsConnected() {
				if err := ws.Disconnect(c); err != nil {
					return err
				}
			}
		}
	}
	doomed := b.Descendants()
	for _, d := range doomed {
		n := d.core()
		for _, c := range n.Connections(true) {
			ws.untrack(c)
			if c.target != nil && !slices.Contains(doomed, c.target.source) {
				unlink(c)
			}
		}
		n.disposed = true
		switch v := d.(type) {
		case *DocumentBlock:
			delete(ws.blocks, v.id)
			ws.removeTop(v)
		case *MarkerBlock:
			delete(ws.markers, v.id)
		}
	}
	if _, ok := b.(*DocumentBlock); ok {
		ws.events.Emit(events.Event{Type: events.TypeDelete, BlockID: b.ID(), OldPosition: oldPos})
	}
	return nil
}

// SetDragging removes the connections of the stack rooted at b from the
// proximity indexes while it is dragged, so the stack can never snap to
// itself, and restores them afterwards at their current positions.
func (ws *Workspace) SetDragging(b Block, dragging bool) {
	for _, d := range b.Descendants() {
		n := d.core()
		if _, ok := d.(*DocumentBlock); !ok {
			continue
		}
		n.tracking = !dragging
		for _, c := range n.Connections(true) {
			if dragging {
				ws.untrack(c)
			} else {
				ws.track(c)
			}
		}
	}
}

// Connect links a and b. One must be a superior connection (input or next)
// and the other its inferior counterpart. The block owning the inferior
// connection is detached from any previous parent and moved so the two
// connections coincide.
//
// If the superior connection was occupied, the displaced block is
// reattached below the newly connected block when possible: a value block
// goes to the single compatible free input of the new child chain, a
// statement stack to the free tail of the inserted stack. Otherwise it is
// bumped away.
func (ws *Workspace) Connect(a, b *Connection) error {
	if a == nil || b == nil || a.typ.Opposite() != b.typ || a.source == b.source {
		return ErrIncompatible
	}
	if a.source.Workspace() != ws || b.source.Workspace() != ws {
		return ErrForeignBlock
	}
	parent, child := a, b
	if !a.IsSuperior() {
		parent, child = b, a
	}
	if parent.target == child {
		return nil
	}

	childBlock := child.source
	oldParent, oldInput := parentInfo(child)
	oldPos := childBlock.Position()
	if child.target != nil {
		unlink(child)
	}

	var orphan *Connection
	if parent.target != nil {
		orphan = parent.target
		ws.emitMove(orphan.source, parent, orphan.source.Position())
		unlink(parent)
		ws.addTop(orphan.source)
	}

	parent.target, child.target = child, parent
	ws.removeTop(childBlock)
	childBlock.MoveBy(parent.pos.Sub(child.pos))
	ws.emitMoveFrom(childBlock, oldParent, oldInput, oldPos)

	if orphan != nil {
		return ws.reattachOrphan(orphan, childBlock)
	}
	return nil
}

// Disconnect breaks the link on c. The child block stays where it is and
// becomes a top block.
func (ws *Workspace) Disconnect(c *Connection) error {
	if c == nil || c.target == nil {
		return ErrNotConnected
	}
	parent, child := c, c.target
	if !c.IsSuperior() {
		parent, child = child, parent
	}
	ws.emitMove(child.source, parent, child.source.Position())
	unlink(c)
	ws.addTop(child.source)
	return nil
}

func (ws *Workspace) reattachOrphan(orphan *Connection, start Block) error {
	target := ws.OrphanTarget(start, orphan)
	if target == nil {
		ws.bump(orphan.source)
		return nil
	}
	return ws.Connect(target, orphan)
}

// OrphanTarget returns the connection on the stack starting at start that a
// displaced block with connection orphan would be reattached to, or nil if
// it would be bumped. A value block goes to the end of the chain of single
// compatible value inputs; a statement block goes to the free tail of the
// stack.
func (ws *Workspace) OrphanTarget(start Block, orphan *Connection) *Connection {
	switch orphan.typ {
	case OutputValue:
		return ws.orphanValueTarget(start, orphan)
	case PreviousStatement:
		if last := start.LastConnectionInStack(); last != nil && ws.checker.CanConnect(orphan, last, false) {
			return last
		}
	}
	return nil
}

// orphanValueTarget follows the chain of single compatible value inputs
// starting at start and returns the first free one.
func (ws *Workspace) orphanValueTarget(start Block, orphan *Connection) *Connection {
	b := start
	for b != nil {
		var single *Connection
		for _, in := range b.Inputs() {
			c := in.conn
			if c == nil || c.typ != InputValue || !ws.checker.CanConnect(orphan, c, false) {
				continue
			}
			if single != nil {
				return nil
			}
			single = c
		}
		if single == nil {
			return nil
		}
		if single.target == nil {
			return single
		}
		b = single.target.source
	}
	return nil
}

func (ws *Workspace) bump(b Block) {
	ws.logger.Debug("bumping orphan", "block", b.ID())
	b.MoveBy(geom.Pt(ws.bumpDelta, ws.bumpDelta))
}

func (ws *Workspace) track(c *Connection) {
	if _, ok := c.source.(*DocumentBlock); !ok {
		return
	}
	ws.dbs[c.typ].Add(c)
}

func (ws *Workspace) untrack(c *Connection) {
	if c.db != nil {
		c.db.Remove(c)
	}
}

func (ws *Workspace) addTop(b Block) {
	d, ok := b.(*DocumentBlock)
	if !ok || d.disposed || slices.Contains(ws.top, d) {
		return
	}
	ws.top = append(ws.top, d)
}

func (ws *Workspace) removeTop(b Block) {
	d, ok := b.(*DocumentBlock)
	if !ok {
		return
	}
	if i := slices.Index(ws.top, d); i >= 0 {
		ws.top = slices.Delete(ws.top, i, i+1)
	}
}

func (ws *Workspace) emitMove(b Block, oldParent *Connection, pos geom.Point) {
	if b.IsInsertionMarker() {
		return
	}
	e := events.Event{Type: events.TypeMove, BlockID: b.ID(), OldPosition: pos, NewPosition: pos}
	if oldParent != nil {
		if oldParent.source.IsInsertionMarker() {
			return
		}
		e.OldParentID = oldParent.source.ID()
		if oldParent.input != nil {
			e.OldInput = oldParent.input.Name
		}
	}
	ws.events.Emit(e)
}

func (ws *Workspace) emitMoveFrom(b Block, oldParent Block, oldInput string, oldPos geom.Point) {
	if b.IsInsertionMarker() {
		return
	}
	e := events.Event{
		Type:        events.TypeMove,
		BlockID:     b.ID(),
		OldInput:    oldInput,
		OldPosition: oldPos,
		NewPosition: b.Position(),
	}
	if oldParent != nil {
		if oldParent.IsInsertionMarker() {
			return
		}
		e.OldParentID = oldParent.ID()
	}
	if p := b.Parent(); p != nil {
		if p.IsInsertionMarker() {
			return
		}
		e.NewParentID = p.ID()
		if c := inferiorConnection(b); c != nil && c.target != nil && c.target.input != nil {
			e.NewInput = c.target.input.Name
		}
	}
	ws.events.Emit(e)
}

// parentInfo returns the block and input name c is currently attached to.
func parentInfo(c *Connection) (Block, string) {
	if c.target == nil {
		return nil, ""
	}
	name := ""
	if c.target.input != nil {
		name = c.target.input.Name
	}
	return c.target.source, name
}

func inferiorConnection(b Block) *Connection {
	if c := b.OutputConnection(); c != nil && c.target != nil {
		return c
	}
	if c := b.PreviousConnection(); c != nil && c.target != nil {
		return c
	}
	return nil
}

func unlink(c *Connection) {
	if c.target != nil {
		c.target.target = nil
		c.target = nil
	}
}
