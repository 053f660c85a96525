package blocks

import (
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

// Block is a node in the block graph.
//
// The interface is sealed: the only implementations are [*DocumentBlock],
// a permanent part of the user's program, and [*MarkerBlock], a disposable
// preview clone that never appears in exports or history. Code that must
// only ever see real blocks takes *DocumentBlock.
type Block interface {
	ID() string
	Type() string
	Definition() *Definition
	IsInsertionMarker() bool
	Workspace() *Workspace

	Position() geom.Point
	Size() (width, height float64)
	Bounds() geom.Rect
	MoveBy(d geom.Point)
	MoveTo(p geom.Point)

	Inputs() []*Input
	Input(name string) *Input
	OutputConnection() *Connection
	PreviousConnection() *Connection
	NextConnection() *Connection
	Connections(all bool) []*Connection

	Parent() Block
	Root() Block
	NextBlock() Block
	PreviousBlock() Block
	Children() []Block
	Descendants() []Block
	LastConnectionInStack() *Connection
	MatchingConnection(other Block, conn *Connection) *Connection
	PositionNearConnection(own, target *Connection)
	Unplug(heal bool) error

	ExtraState() ExtraState
	Collapsed() bool
	InputsInline() bool
	Rendered() bool
	SetRendered(v bool)
	Visible() bool
	SetVisible(v bool)
	Faded() bool
	SetFaded(v bool)
	Disposed() bool

	core() *node
}

// DocumentBlock is a block that belongs to the user's program.
type DocumentBlock struct{ node }

// IsInsertionMarker always returns false.
func (b *DocumentBlock) IsInsertionMarker() bool { return false }

// MarkerBlock is a translucent clone of a dragged block, shown where the
// dragged block would land. It is created silently and is never tracked for
// proximity search.
type MarkerBlock struct {
	node
	sourceID string
}

// IsInsertionMarker always returns true.
func (b *MarkerBlock) IsInsertionMarker() bool { return true }

// SourceID returns the id of the block the marker was cloned from.
func (b *MarkerBlock) SourceID() string { return b.sourceID }

// node holds the state shared by both block variants.
type node struct {
	self Block
	ws   *Workspace
	def  *Definition
	id   string

	pos           geom.Point
	width, height float64

	inputs   []*Input
	output   *Connection
	previous *Connection
	next     *Connection

	state        ExtraState
	collapsed    bool
	inputsInline bool

	rendered bool
	visible  bool
	faded    bool
	tracking bool
	disposed bool
}

func (n *node) core() *node { return n }

func (n *node) ID() string               { return n.id }
func (n *node) Type() string             { return n.def.Type }
func (n *node) Definition() *Definition  { return n.def }
func (n *node) Workspace() *Workspace    { return n.ws }
func (n *node) Position() geom.Point     { return n.pos }
func (n *node) Size() (float64, float64) { return n.width, n.height }
func (n *node) Inputs() []*Input         { return n.inputs }
func (n *node) ExtraState() ExtraState   { return n.state.Clone() }
func (n *node) Collapsed() bool          { return n.collapsed }
func (n *node) InputsInline() bool       { return n.inputsInline }
func (n *node) Rendered() bool           { return n.rendered }
func (n *node) SetRendered(v bool)       { n.rendered = v }
func (n *node) Visible() bool            { return n.visible }
func (n *node) SetVisible(v bool)        { n.visible = v }
func (n *node) Faded() bool              { return n.faded }
func (n *node) SetFaded(v bool)          { n.faded = v }
func (n *node) Disposed() bool           { return n.disposed }

// OutputConnection returns the output plug, or nil.
func (n *node) OutputConnection() *Connection { return n.output }

// PreviousConnection returns the top statement connection, or nil.
func (n *node) PreviousConnection() *Connection { return n.previous }

// NextConnection returns the bottom statement connection, or nil.
func (n *node) NextConnection() *Connection { return n.next }

// Bounds returns the block's rectangle in workspace coordinates.
func (n *node) Bounds() geom.Rect {
	return geom.Rect{X: n.pos.X, Y: n.pos.Y, Width: n.width, Height: n.height}
}

// Input returns the input with the given name, or nil.
func (n *node) Input(name string) *Input {
	for _, in := range n.inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// Connections returns the block's connections in a fixed order: output,
// previous, next, then input connections top to bottom. Unless all is set,
// connections on hidden inputs and on the inputs of a collapsed block are
// left out.
func (n *node) Connections(all bool) []*Connection {
	var conns []*Connection
	for _, c := range []*Connection{n.output, n.previous, n.next} {
		if c != nil {
			conns = append(conns, c)
		}
	}
	if !all && n.collapsed {
		return conns
	}
	for _, in := range n.inputs {
		if in.conn != nil && (all || in.visible) {
			conns = append(conns, in.conn)
		}
	}
	return conns
}

// Parent returns the block this one is plugged into, or nil for a top
// level block.
func (n *node) Parent() Block {
	if n.output != nil && n.output.target != nil {
		return n.output.target.source
	}
	if n.previous != nil && n.previous.target != nil {
		return n.previous.target.source
	}
	return nil
}

// Root returns the top-most ancestor, which may be the block itself.
func (n *node) Root() Block {
	var b Block = n.self
	for p := b.Parent(); p != nil; p = b.Parent() {
		b = p
	}
	return b
}

// NextBlock returns the block attached below, or nil.
func (n *node) NextBlock() Block {
	if n.next == nil {
		return nil
	}
	return n.next.TargetBlock()
}

// PreviousBlock returns the block attached above through the previous
// connection, or nil. Unlike Parent it ignores output links.
func (n *node) PreviousBlock() Block {
	if n.previous == nil {
		return nil
	}
	return n.previous.TargetBlock()
}

// Children returns the blocks attached to the block's inputs and next
// connection, in connection order.
func (n *node) Children() []Block {
	var out []Block
	for _, in := range n.inputs {
		if in.conn != nil && in.conn.target != nil {
			out = append(out, in.conn.target.source)
		}
	}
	if b := n.NextBlock(); b != nil {
		out = append(out, b)
	}
	return out
}

// Descendants returns the block and everything below it, depth first.
func (n *node) Descendants() []Block {
	out := []Block{n.self}
	for _, c := range n.Children() {
		out = append(out, c.Descendants()...)
	}
	return out
}

// LastConnectionInStack walks down the next-connections and returns the
// first free one, or nil if the stack ends in a block without a next
// connection.
func (n *node) LastConnectionInStack() *Connection {
	c := n.next
	for c != nil {
		b := c.TargetBlock()
		if b == nil {
			return c
		}
		c = b.NextConnection()
	}
	return nil
}

// MatchingConnection returns the connection on this block that sits at the
// same position in the connection list as conn does on other. It is used to
// map a dragged block's connection onto its marker clone.
func (n *node) MatchingConnection(other Block, conn *Connection) *Connection {
	theirs := other.Connections(true)
	mine := n.Connections(true)
	for i, c := range theirs {
		if c == conn {
			if i < len(mine) {
				return mine[i]
			}
			return nil
		}
	}
	return nil
}

// PositionNearConnection moves the block so that own lines up with target.
// Only superior connections move the block; inferior ones are aligned by
// the connect itself.
func (n *node) PositionNearConnection(own, target *Connection) {
	if own.IsSuperior() {
		n.MoveBy(target.pos.Sub(own.pos))
	}
}

// MoveBy translates the block and everything attached below it.
func (n *node) MoveBy(d geom.Point) {
	if d.IsZero() {
		return
	}
	for _, b := range n.Descendants() {
		c := b.core()
		c.pos = c.pos.Add(d)
		c.layoutConnections()
	}
}

// MoveTo moves the block's top-left corner to p.
func (n *node) MoveTo(p geom.Point) { n.MoveBy(p.Sub(n.pos)) }

// Unplug detaches the block from its parent. With heal set, a block taken
// out of the middle of a statement stack lets the blocks below it reattach
// to the block above, and a block taken from a value input hands its only
// value child to the vacated input.
func (n *node) Unplug(heal bool) error {
	switch {
	case n.output != nil && n.output.target != nil:
		return n.unplugFromRow(heal)
	case n.previous != nil:
		return n.unplugFromStack(heal)
	}
	return nil
}

func (n *node) unplugFromRow(heal bool) error {
	parent := n.output.target
	if err := n.ws.Disconnect(n.output); err != nil {
		return err
	}
	if !heal {
		return nil
	}
	only := n.onlyValueConnection()
	if only == nil || only.target == nil {
		return nil
	}
	child := only.target
	if err := n.ws.Disconnect(child); err != nil {
		return err
	}
	if n.ws.checker.CanConnect(child, parent, false) {
		return n.ws.Connect(parent, child)
	}
	n.ws.bump(child.source)
	return nil
}

func (n *node) unplugFromStack(heal bool) error {
	var prevTarget *Connection
	if n.previous.target != nil {
		prevTarget = n.previous.target
		if err := n.ws.Disconnect(n.previous); err != nil {
			return err
		}
	}
	if !heal || n.next == nil || n.next.target == nil {
		return nil
	}
	nextTarget := n.next.target
	if err := n.ws.Disconnect(nextTarget); err != nil {
		return err
	}
	if prevTarget != nil && n.ws.checker.CanConnect(prevTarget, nextTarget, false) {
		return n.ws.Connect(prevTarget, nextTarget)
	}
	return nil
}

// onlyValueConnection returns the block's value input connection if it has
// exactly one.
func (n *node) onlyValueConnection() *Connection {
	var found *Connection
	for _, in := range n.inputs {
		if in.conn == nil || in.conn.typ != InputValue {
			continue
		}
		if found != nil {
			return nil
		}
		found = in.conn
	}
	return found
}

// layoutConnections recomputes connection positions from the block's
// position.
func (n *node) layoutConnections() {
	for _, c := range n.Connections(true) {
		c.setPosition(n.pos.Add(c.offset))
	}
}

// SetExtraState replaces the extra state and rebuilds the input rows the
// definition derives from it. Inputs that survive keep their connections
// and field values. Blocks attached to removed inputs are disconnected.
func (n *node) SetExtraState(state ExtraState) error {
	n.state = state.Clone()
	return n.buildInputs()
}

// SetCollapsed sets the collapsed flag.
func (n *node) SetCollapsed(v bool) { n.collapsed = v }

// SetInputsInline sets the inline-inputs flag.
func (n *node) SetInputsInline(v bool) { n.inputsInline = v }

// SetFieldValue sets a field on the named input.
func (n *node) SetFieldValue(input, field, value string) error {
	in := n.Input(input)
	if in == nil {
		return errors.New(errors.ErrCodeNotFound, "block %s has no input %q", n.id, input)
	}
	f := in.Field(field)
	if f == nil {
		return errors.New(errors.ErrCodeNotFound, "block %s input %q has no field %q", n.id, input, field)
	}
	f.Value = value
	return nil
}

func (n *node) buildConnections() {
	def := n.def
	if def.Output {
		n.output = newConnection(n.self, OutputValue, geom.Point{}, def.OutputCheck)
	}
	if def.Previous {
		n.previous = newConnection(n.self, PreviousStatement, geom.Point{}, def.PreviousCheck)
	}
	if def.Next {
		n.next = newConnection(n.self, NextStatement, geom.Point{}, def.NextCheck)
	}
}

func (n *node) buildInputs() error {
	specs := n.def.Inputs(n.state)
	old := n.inputs
	n.inputs = make([]*Input, 0, len(specs))
	reused := make(map[*Input]bool)
	for _, spec := range specs {
		in := findInput(old, spec.Name)
		if in == nil || in.Kind != spec.Kind {
			in = &Input{Name: spec.Name, Kind: spec.Kind}
			for _, fs := range spec.Fields {
				in.Fields = append(in.Fields, &Field{Name: fs.Name, Value: fs.Value})
			}
			if spec.Kind != DummyInput {
				typ := InputValue
				if spec.Kind == StatementInput {
					typ = NextStatement
				}
				in.conn = newConnection(n.self, typ, geom.Point{}, spec.Check)
				in.conn.input = in
			}
		} else {
			reused[in] = true
		}
		in.visible = !spec.Hidden
		n.inputs = append(n.inputs, in)
	}
	for _, in := range old {
		if reused[in] || in.conn == nil {
			continue
		}
		if in.conn.target != nil {
			if err := n.ws.Disconnect(in.conn); err != nil {
				return err
			}
		}
		n.ws.untrack(in.conn)
	}
	n.layout()
	return nil
}

// layout assigns sizes and connection offsets, then positions.
func (n *node) layout() {
	n.width, n.height = n.def.size(len(n.inputs))
	if n.next != nil {
		n.next.offset = geom.Pt(0, n.height)
	}
	for i, in := range n.inputs {
		if in.conn != nil {
			in.conn.offset = inputOffset(in.Kind, i, n.width)
		}
	}
	n.layoutConnections()
	if n.tracking {
		for _, c := range n.Connections(true) {
			n.ws.track(c)
		}
	}
	for _, in := range n.inputs {
		if child := in.conn; child != nil && child.target != nil {
			child.target.source.MoveBy(child.pos.Sub(child.target.pos))
		}
	}
	if n.next != nil && n.next.target != nil {
		n.next.target.source.MoveBy(n.next.pos.Sub(n.next.target.pos))
	}
}

func findInput(inputs []*Input, name string) *Input {
	for _, in := range inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}
