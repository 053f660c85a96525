package blocks

import (
	"fmt"
	"slices"

	"github.com/matzehuels/blocksnap/pkg/geom"
)

// ConnType is the kind of a connection point.
type ConnType int

const (
	// InputValue is the female side of a value input.
	InputValue ConnType = iota
	// OutputValue is the male plug on the left of an expression block.
	OutputValue
	// NextStatement is the bottom of a statement block, or a statement input.
	NextStatement
	// PreviousStatement is the top of a statement block.
	PreviousStatement
)

var connTypeNames = [...]string{"input-value", "output", "next-statement", "previous-statement"}

func (t ConnType) String() string {
	if int(t) < len(connTypeNames) {
		return connTypeNames[t]
	}
	return fmt.Sprintf("ConnType(%d)", int(t))
}

// Opposite returns the only connection type t can link to.
func (t ConnType) Opposite() ConnType {
	switch t {
	case InputValue:
		return OutputValue
	case OutputValue:
		return InputValue
	case NextStatement:
		return PreviousStatement
	default:
		return NextStatement
	}
}

// IsSuperior reports whether t is the parent side of a link. Input and next
// connections are superior; output and previous connections are inferior.
func (t ConnType) IsSuperior() bool { return t == InputValue || t == NextStatement }

// Connection is a typed attachment point on a block.
//
// The target link is always reciprocal: if a.Target() == b then
// b.Target() == a. Links are only changed through [Workspace.Connect] and
// [Workspace.Disconnect].
type Connection struct {
	typ     ConnType
	source  Block
	input   *Input
	offset  geom.Point // relative to the source block's position
	pos     geom.Point // workspace coordinates
	check   []string
	target  *Connection
	tracked bool
	db      *ConnectionDB

	highlighted bool
}

func newConnection(source Block, typ ConnType, offset geom.Point, check []string) *Connection {
	return &Connection{
		typ:    typ,
		source: source,
		offset: offset,
		check:  slices.Clone(check),
	}
}

// Type returns the connection type.
func (c *Connection) Type() ConnType { return c.typ }

// SourceBlock returns the block owning c.
func (c *Connection) SourceBlock() Block { return c.source }

// Input returns the input c belongs to, or nil for output, previous and
// next connections.
func (c *Connection) Input() *Input { return c.input }

// Position returns the connection's location in workspace coordinates.
func (c *Connection) Position() geom.Point { return c.pos }

// Offset returns the connection's location relative to its block.
func (c *Connection) Offset() geom.Point { return c.offset }

// Check returns the compatibility tags. An empty check accepts anything.
func (c *Connection) Check() []string { return c.check }

// Target returns the linked connection, or nil.
func (c *Connection) Target() *Connection { return c.target }

// TargetBlock returns the block owning the linked connection, or nil.
func (c *Connection) TargetBlock() Block {
	if c.target == nil {
		return nil
	}
	return c.target.source
}

// IsConnected reports whether c is linked to another connection.
func (c *Connection) IsConnected() bool { return c.target != nil }

// IsSuperior reports whether c is on the parent side of a link.
func (c *Connection) IsSuperior() bool { return c.typ.IsSuperior() }

// Tracked reports whether c is currently indexed for proximity search.
func (c *Connection) Tracked() bool { return c.tracked }

// Highlight draws the connection glyph as the drop target.
func (c *Connection) Highlight() { c.highlighted = true }

// Unhighlight removes the drop target glyph.
func (c *Connection) Unhighlight() { c.highlighted = false }

// Highlighted reports whether the drop target glyph is drawn.
func (c *Connection) Highlighted() bool { return c.highlighted }

// DistanceFrom returns the distance between c, displaced by dxy, and other.
func (c *Connection) DistanceFrom(other *Connection, dxy geom.Point) float64 {
	return c.pos.Add(dxy).Distance(other.pos)
}

// Name returns a short human readable identifier such as "b1.next" or
// "b2.input(VALUE)".
func (c *Connection) Name() string {
	id := "?"
	if c.source != nil {
		id = c.source.ID()
	}
	switch {
	case c.input != nil:
		return fmt.Sprintf("%s.input(%s)", id, c.input.Name)
	case c.typ == OutputValue:
		return id + ".output"
	case c.typ == PreviousStatement:
		return id + ".previous"
	default:
		return id + ".next"
	}
}

func (c *Connection) String() string { return c.Name() }

// setPosition moves c, keeping the proximity index sorted.
func (c *Connection) setPosition(p geom.Point) {
	if c.pos == p {
		return
	}
	if db := c.db; c.tracked && db != nil {
		db.Remove(c)
		c.pos = p
		db.Add(c)
		return
	}
	c.pos = p
}

// checksIntersect reports whether two check lists share a tag. An empty list
// matches everything.
func checksIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, t := range a {
		if slices.Contains(b, t) {
			return true
		}
	}
	return false
}
