package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/errors"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported scenario extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
}

// File is a decoded scenario.
type File struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`

	// Renderer overrides the configured preview policy.
	Renderer string `yaml:"renderer,omitempty" toml:"renderer,omitempty"`
	// Rendered enables connect animations.
	Rendered bool `yaml:"rendered,omitempty" toml:"rendered,omitempty"`

	Types  []TypeSpec  `yaml:"types" toml:"types"`
	Blocks []BlockSpec `yaml:"blocks" toml:"blocks"`
	Areas  []AreaSpec  `yaml:"areas,omitempty" toml:"areas,omitempty"`
	Steps  []Step      `yaml:"steps" toml:"steps"`
}

// TypeSpec declares a block type.
type TypeSpec struct {
	Type     string `yaml:"type" toml:"type"`
	Output   bool   `yaml:"output,omitempty" toml:"output,omitempty"`
	Previous bool   `yaml:"previous,omitempty" toml:"previous,omitempty"`
	Next     bool   `yaml:"next,omitempty" toml:"next,omitempty"`

	OutputCheck   []string `yaml:"output_check,omitempty" toml:"output_check,omitempty"`
	PreviousCheck []string `yaml:"previous_check,omitempty" toml:"previous_check,omitempty"`
	NextCheck     []string `yaml:"next_check,omitempty" toml:"next_check,omitempty"`

	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
	Inline bool    `yaml:"inline,omitempty" toml:"inline,omitempty"`

	Inputs []InputSpec `yaml:"inputs,omitempty" toml:"inputs,omitempty"`

	// Repeat appends rows driven by the block's extra state.
	Repeat *RepeatSpec `yaml:"repeat,omitempty" toml:"repeat,omitempty"`

	// LossyState makes copies of the block drop their extra state, which
	// breaks insertion markers of repeated shapes.
	LossyState bool `yaml:"lossy_state,omitempty" toml:"lossy_state,omitempty"`
}

// RepeatSpec repeats Inputs once for every i in 1..state[Key]. "{i}" in
// input names is replaced with i.
type RepeatSpec struct {
	Key    string      `yaml:"key" toml:"key"`
	Inputs []InputSpec `yaml:"inputs" toml:"inputs"`
}

// InputSpec declares an input row.
type InputSpec struct {
	Name   string      `yaml:"name" toml:"name"`
	Kind   string      `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Check  []string    `yaml:"check,omitempty" toml:"check,omitempty"`
	Fields []FieldSpec `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Hidden bool        `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
}

// FieldSpec is a field with its default value.
type FieldSpec struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value,omitempty" toml:"value,omitempty"`
}

// BlockSpec places a block, and the blocks attached to it.
type BlockSpec struct {
	ID        string                       `yaml:"id" toml:"id"`
	Type      string                       `yaml:"type" toml:"type"`
	X         float64                      `yaml:"x,omitempty" toml:"x,omitempty"`
	Y         float64                      `yaml:"y,omitempty" toml:"y,omitempty"`
	State     map[string]any               `yaml:"state,omitempty" toml:"state,omitempty"`
	Fields    map[string]map[string]string `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Collapsed bool                         `yaml:"collapsed,omitempty" toml:"collapsed,omitempty"`
	Inputs    map[string]*BlockSpec        `yaml:"inputs,omitempty" toml:"inputs,omitempty"`
	Next      *BlockSpec                   `yaml:"next,omitempty" toml:"next,omitempty"`
}

// Delete policies of an area.
const (
	DeleteAlways        = "always"
	DeleteUnlessConnect = "unless-connect"
)

// AreaSpec declares a delete area such as a trash can.
type AreaSpec struct {
	ID     string  `yaml:"id" toml:"id"`
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	// Delete is DeleteAlways or DeleteUnlessConnect (the default).
	Delete string `yaml:"delete,omitempty" toml:"delete,omitempty"`
}

// Step is one scripted pointer action. Exactly one of Begin, Move, End and
// Cancel is set.
type Step struct {
	// Begin presses the block with this id.
	Begin string `yaml:"begin,omitempty" toml:"begin,omitempty"`
	// Move is the pointer offset [dx, dy] from where the drag began.
	Move []float64 `yaml:"move,omitempty" toml:"move,omitempty"`
	// Over names the area under the pointer. When empty the area is found
	// from the pointer position.
	Over string `yaml:"over,omitempty" toml:"over,omitempty"`
	// End releases the pointer.
	End bool `yaml:"end,omitempty" toml:"end,omitempty"`
	// Cancel abandons the drag.
	Cancel bool `yaml:"cancel,omitempty" toml:"cancel,omitempty"`

	Expect *Expect `yaml:"expect,omitempty" toml:"expect,omitempty"`
}

// Expect is checked against the state after a step.
type Expect struct {
	Connect *bool  `yaml:"connect,omitempty" toml:"connect,omitempty"`
	Delete  *bool  `yaml:"delete,omitempty" toml:"delete,omitempty"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Closest string `yaml:"closest,omitempty" toml:"closest,omitempty"`
	Markers *int   `yaml:"markers,omitempty" toml:"markers,omitempty"`
	// Parent maps block ids to the id of their expected parent; "" means
	// a top block.
	Parent map[string]string `yaml:"parent,omitempty" toml:"parent,omitempty"`
}

// Action returns a short description such as "move (10, -20) over trash".
func (s Step) Action() string {
	switch {
	case s.Begin != "":
		return "begin " + s.Begin
	case len(s.Move) == 2:
		a := fmt.Sprintf("move (%g, %g)", s.Move[0], s.Move[1])
		if s.Over != "" {
			a += " over " + s.Over
		}
		return a
	case s.End:
		return "end"
	case s.Cancel:
		return "cancel"
	}
	return "invalid"
}

// Read decodes a scenario in the given format and validates it.
func Read(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode yaml")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, invalid("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scenario format %q", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads the scenario file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	f, err := Read(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Validate checks the structure of the file. Block types are resolved
// later, when the scenario is built.
func (f *File) Validate() error {
	if len(f.Types) == 0 {
		return invalid("scenario declares no block types")
	}
	types := make(map[string]bool)
	for _, t := range f.Types {
		if t.Type == "" {
			return invalid("block type without a name")
		}
		if types[t.Type] {
			return invalid("block type %q declared twice", t.Type)
		}
		types[t.Type] = true
		if err := validateInputs(t.Type, t.Inputs); err != nil {
			return err
		}
		if t.Repeat != nil {
			if t.Repeat.Key == "" {
				return invalid("block type %q: repeat needs a key", t.Type)
			}
			if err := validateInputs(t.Type, t.Repeat.Inputs); err != nil {
				return err
			}
		}
	}

	ids := make(map[string]bool)
	var walk func(b *BlockSpec) error
	walk = func(b *BlockSpec) error {
		if b.ID == "" {
			return invalid("block of type %q without an id", b.Type)
		}
		if ids[b.ID] {
			return invalid("block id %q used twice", b.ID)
		}
		ids[b.ID] = true
		if !types[b.Type] {
			return invalid("block %q has undeclared type %q", b.ID, b.Type)
		}
		for _, child := range b.Inputs {
			if child == nil {
				continue
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		if b.Next != nil {
			return walk(b.Next)
		}
		return nil
	}
	for i := range f.Blocks {
		if err := walk(&f.Blocks[i]); err != nil {
			return err
		}
	}

	areas := make(map[string]bool)
	for _, a := range f.Areas {
		if a.ID == "" {
			return invalid("area without an id")
		}
		if areas[a.ID] || ids[a.ID] {
			return invalid("area id %q is not unique", a.ID)
		}
		areas[a.ID] = true
		if a.Delete != "" && a.Delete != DeleteAlways && a.Delete != DeleteUnlessConnect {
			return invalid("area %q: delete must be %q or %q", a.ID, DeleteAlways, DeleteUnlessConnect)
		}
	}

	for i, s := range f.Steps {
		n := 0
		if s.Begin != "" {
			n++
			if !ids[s.Begin] {
				return invalid("step %d: unknown block %q", i+1, s.Begin)
			}
		}
		if s.Move != nil {
			n++
			if len(s.Move) != 2 {
				return invalid("step %d: move needs [dx, dy]", i+1)
			}
		}
		if s.End {
			n++
		}
		if s.Cancel {
			n++
		}
		if n != 1 {
			return invalid("step %d: exactly one of begin, move, end and cancel is required", i+1)
		}
		if s.Over != "" && !areas[s.Over] {
			return invalid("step %d: unknown area %q", i+1, s.Over)
		}
	}
	return nil
}

func validateInputs(typ string, inputs []InputSpec) error {
	for _, in := range inputs {
		if in.Name == "" {
			return invalid("block type %q: input without a name", typ)
		}
		if _, err := inputKind(in.Kind); err != nil {
			return invalid("block type %q input %q: %v", typ, in.Name, err)
		}
	}
	return nil
}

func inputKind(s string) (blocks.InputKind, error) {
	switch strings.ToLower(s) {
	case "", "value":
		return blocks.ValueInput, nil
	case "statement":
		return blocks.StatementInput, nil
	case "dummy":
		return blocks.DummyInput, nil
	}
	return 0, fmt.Errorf("unknown input kind %q", s)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidScenario, format, args...)
}
