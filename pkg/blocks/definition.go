package blocks

import (
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/matzehuels/blocksnap/pkg/errors"
)

// ExtraState is the mutable payload a block carries beyond its fields, such
// as the number of else-if arms on an if block. Definitions derive the
// block's input rows from it.
type ExtraState map[string]any

// Clone returns a shallow copy of s. A nil state clones to nil.
func (s ExtraState) Clone() ExtraState {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Int returns the integer stored under key, or def if absent. Numbers decoded
// from YAML, TOML or JSON arrive as int, int64 or float64.
func (s ExtraState) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// InputSpec describes one input row of a block type.
type InputSpec struct {
	Name   string
	Kind   InputKind
	Check  []string
	Fields []FieldSpec
	Hidden bool
}

// FieldSpec is a field and its initial value.
type FieldSpec struct {
	Name  string
	Value string
}

// Definition describes a block type.
//
// The connection flags say which of the output, previous and next
// connections a block of this type has. A definition with both Output and
// Previous is rejected by [Registry.Register].
type Definition struct {
	Type string

	Output   bool
	Previous bool
	Next     bool

	OutputCheck   []string
	PreviousCheck []string
	NextCheck     []string

	// Width and Height default to 100 and a height derived from the number
	// of input rows.
	Width  float64
	Height float64

	// StaticInputs is used when Shape is nil.
	StaticInputs []InputSpec

	// Shape derives the input rows from the block's extra state. Blocks
	// whose shape never changes leave it nil.
	Shape func(state ExtraState) []InputSpec

	// SaveState serializes the extra state for copies of the block. Nil
	// copies the state verbatim.
	SaveState func(state ExtraState) ExtraState

	// InputsInline is the default inline-inputs setting.
	InputsInline bool
}

// Inputs returns the input rows for a block in the given state.
func (d *Definition) Inputs(state ExtraState) []InputSpec {
	if d.Shape != nil {
		return d.Shape(state)
	}
	return d.StaticInputs
}

func (d *Definition) size(rows int) (w, h float64) {
	w, h = d.Width, d.Height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = float64(inputRowHeight*max(rows, 1) + inputRowHeight/2)
	}
	return w, h
}

// Registry maps block type names to definitions. It is safe for
// concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry returns a registry holding the given definitions.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition)}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds or replaces a definition.
func (r *Registry) Register(d *Definition) error {
	if d == nil || d.Type == "" {
		return errors.New(errors.ErrCodeInvalidInput, "block definition must have a type")
	}
	if d.Output && d.Previous {
		return errors.New(errors.ErrCodeInvalidInput,
			"block type %s cannot have both an output and a previous connection", d.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[d.Type] = d
	return nil
}

// Lookup returns the definition for typ.
func (r *Registry) Lookup(typ string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[typ]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "unknown block type %q", typ)
	}
	return d, nil
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := slices.Collect(maps.Keys(r.defs))
	sort.Strings(types)
	return types
}
