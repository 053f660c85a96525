package blocks

import "github.com/matzehuels/blocksnap/pkg/geom"

// InputKind distinguishes the three input rows a block can have.
type InputKind int

const (
	// ValueInput holds an expression block plugged into its connection.
	ValueInput InputKind = iota
	// StatementInput holds a nested statement stack (the mouth of a C-block).
	StatementInput
	// DummyInput is a row of fields without a connection.
	DummyInput
)

func (k InputKind) String() string {
	switch k {
	case ValueInput:
		return "value"
	case StatementInput:
		return "statement"
	default:
		return "dummy"
	}
}

// CollapsedInputName is the synthetic input a collapsed block shows.
// Marker clones skip it when copying fields.
const CollapsedInputName = "_TEMP_COLLAPSED_INPUT"

// Field is a named editable value on an input row.
type Field struct {
	Name  string
	Value string
}

// Input is a row on a block. Value and statement inputs own a connection.
type Input struct {
	Name     string
	Kind     InputKind
	Fields   []*Field
	visible  bool
	outlined bool
	conn     *Connection
}

// Connection returns the input's connection, or nil for dummy inputs.
func (in *Input) Connection() *Connection { return in.conn }

// Visible reports whether the input is shown.
func (in *Input) Visible() bool { return in.visible }

// Outlined reports whether an outline preview is drawn on the input.
func (in *Input) Outlined() bool { return in.outlined }

// SetOutlined toggles the outline preview on the input.
func (in *Input) SetOutlined(on bool) { in.outlined = on }

// Field returns the field with the given name, or nil.
func (in *Input) Field(name string) *Field {
	for _, f := range in.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// inputRowHeight is the vertical pitch of input rows.
const inputRowHeight = 24

// statementIndent is the x offset of a C-block's statement input.
const statementIndent = 16

// inputOffset places the i-th input row on a block of the given width.
func inputOffset(kind InputKind, i int, width float64) geom.Point {
	switch kind {
	case StatementInput:
		return geom.Pt(statementIndent, float64(inputRowHeight*(i+1)))
	default:
		return geom.Pt(width, float64(inputRowHeight*i+inputRowHeight/2))
	}
}
