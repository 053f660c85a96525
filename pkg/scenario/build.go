package scenario

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/config"
	"github.com/matzehuels/blocksnap/pkg/drag"
	"github.com/matzehuels/blocksnap/pkg/dragsurface"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/observability"
	"github.com/matzehuels/blocksnap/pkg/render/snapshot"
)

// Options configures [Build] and [Run].
type Options struct {
	// Config supplies radii, dead zone and renderer. Nil uses
	// [config.Default]. The scenario's renderer, if set, wins.
	Config *config.Config
	// Logger receives debug output. Defaults to a discard logger.
	Logger *log.Logger
	// Hooks receives drag events. Defaults to [observability.Drag].
	Hooks observability.DragHooks
}

// World is a scenario's workspace together with the controller that
// replays its steps.
type World struct {
	File       *File
	Workspace  *blocks.Workspace
	Controller *drag.Controller
	Surface    *dragsurface.Surface
	Areas      []*Area
	Config     config.Config

	origin geom.Point
	step   int
}

// Build creates the workspace described by f. The history starts empty.
func Build(f *File, opts Options) (*World, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil scenario")
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if f.Renderer != "" {
		cfg.Drag.Renderer = strings.ToLower(f.Renderer)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	reg, err := f.registry()
	if err != nil {
		return nil, err
	}
	ws, err := blocks.NewWorkspace(blocks.Options{
		Registry:  reg,
		Logger:    opts.Logger,
		Rendered:  f.Rendered,
		BumpDelta: cfg.Snap.BumpDelta,
	})
	if err != nil {
		return nil, err
	}

	release := ws.Events().Suppress()
	for i := range f.Blocks {
		if _, err := placeBlock(ws, &f.Blocks[i], geom.Pt(f.Blocks[i].X, f.Blocks[i].Y)); err != nil {
			release()
			return nil, err
		}
	}
	release()

	w := &World{File: f, Workspace: ws, Config: cfg}
	for _, spec := range f.Areas {
		a := NewArea(spec)
		ws.Components().Add(a, blocks.CapDeleteArea, blocks.CapDragTarget)
		w.Areas = append(w.Areas, a)
	}

	sessOpts, err := drag.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	sessOpts.Logger = opts.Logger
	sessOpts.Hooks = opts.Hooks
	w.Surface = dragsurface.New(dragsurface.Options{Opacity: cfg.Surface.Opacity, Logger: opts.Logger})
	w.Controller, err = drag.NewController(ws, drag.ControllerOptions{
		Session:   sessOpts,
		DeadZone:  cfg.Drag.DeadZone,
		HealStack: cfg.Drag.HealStack,
		Surface:   w.Surface,
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// SnapshotOptions returns options that draw the world as the user sees
// it, with a dragged stack at the pointer.
func (w *World) SnapshotOptions() snapshot.Options {
	opts := snapshot.Options{DragOpacity: w.Surface.Opacity()}
	for _, a := range w.Areas {
		opts.Areas = append(opts.Areas, snapshot.Area{Label: a.ID(), Rect: a.Rect()})
	}
	if s := w.Controller.Session(); s != nil {
		opts.Dragged = s.Top()
		opts.DragOffset = w.Controller.Offset()
		opts.Line = s.ConnectionLine()
	}
	return opts
}

// Area returns the area with the given id.
func (w *World) Area(id string) (*Area, bool) {
	for _, a := range w.Areas {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// AreaAt returns the first area containing p.
func (w *World) AreaAt(p geom.Point) (*Area, bool) {
	for _, a := range w.Areas {
		if a.Rect().Contains(p) {
			return a, true
		}
	}
	return nil, false
}

func (f *File) registry() (*blocks.Registry, error) {
	reg, err := blocks.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, t := range f.Types {
		def, err := t.definition()
		if err != nil {
			return nil, err
		}
		if err := reg.Register(def); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "block type %q", t.Type)
		}
	}
	return reg, nil
}

func (t TypeSpec) definition() (*blocks.Definition, error) {
	static, err := inputSpecs(t.Inputs, 0)
	if err != nil {
		return nil, err
	}
	def := &blocks.Definition{
		Type:          t.Type,
		Output:        t.Output,
		Previous:      t.Previous,
		Next:          t.Next,
		OutputCheck:   t.OutputCheck,
		PreviousCheck: t.PreviousCheck,
		NextCheck:     t.NextCheck,
		Width:         t.Width,
		Height:        t.Height,
		StaticInputs:  static,
		InputsInline:  t.Inline,
	}
	if rep := t.Repeat; rep != nil {
		def.Shape = func(state blocks.ExtraState) []blocks.InputSpec {
			rows := slices.Clone(static)
			for i := 1; i <= state.Int(rep.Key, 0); i++ {
				// Kinds were checked by Validate.
				more, _ := inputSpecs(rep.Inputs, i)
				rows = append(rows, more...)
			}
			return rows
		}
	}
	if t.LossyState {
		def.SaveState = func(blocks.ExtraState) blocks.ExtraState { return nil }
	}
	return def, nil
}

// inputSpecs converts specs, replacing "{i}" in names with index when it is
// positive.
func inputSpecs(specs []InputSpec, index int) ([]blocks.InputSpec, error) {
	out := make([]blocks.InputSpec, 0, len(specs))
	for _, in := range specs {
		kind, err := inputKind(in.Kind)
		if err != nil {
			return nil, invalid("input %q: %v", in.Name, err)
		}
		name := in.Name
		if index > 0 {
			name = strings.ReplaceAll(name, "{i}", strconv.Itoa(index))
		}
		fields := make([]blocks.FieldSpec, len(in.Fields))
		for i, fs := range in.Fields {
			fields[i] = blocks.FieldSpec{Name: fs.Name, Value: fs.Value}
		}
		out = append(out, blocks.InputSpec{
			Name:   name,
			Kind:   kind,
			Check:  in.Check,
			Fields: fields,
			Hidden: in.Hidden,
		})
	}
	return out, nil
}

// placeBlock creates spec at pos and attaches its children.
func placeBlock(ws *blocks.Workspace, spec *BlockSpec, pos geom.Point) (*blocks.DocumentBlock, error) {
	b, err := ws.NewBlock(spec.Type, blocks.BlockOptions{
		ID:       spec.ID,
		Position: pos,
		State:    blocks.ExtraState(spec.State),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "block %q", spec.ID)
	}
	for _, input := range slices.Sorted(maps.Keys(spec.Fields)) {
		for field, value := range spec.Fields[input] {
			if err := b.SetFieldValue(input, field, value); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "block %q", spec.ID)
			}
		}
	}
	b.SetCollapsed(spec.Collapsed)

	for _, name := range slices.Sorted(maps.Keys(spec.Inputs)) {
		childSpec := spec.Inputs[name]
		if childSpec == nil {
			continue
		}
		in := b.Input(name)
		if in == nil || in.Connection() == nil {
			return nil, invalid("block %q has no connectable input %q", spec.ID, name)
		}
		child, err := placeBlock(ws, childSpec, pos)
		if err != nil {
			return nil, err
		}
		conn := child.OutputConnection()
		if conn == nil {
			conn = child.PreviousConnection()
		}
		if conn == nil || !ws.Checker().CanConnect(in.Connection(), conn, false) {
			return nil, invalid("block %q cannot be attached to %s", childSpec.ID, in.Connection().Name())
		}
		if err := ws.Connect(in.Connection(), conn); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "attach %q", childSpec.ID)
		}
	}

	if spec.Next != nil {
		if b.NextConnection() == nil {
			return nil, invalid("block %q has no next connection", spec.ID)
		}
		next, err := placeBlock(ws, spec.Next, pos)
		if err != nil {
			return nil, err
		}
		if next.PreviousConnection() == nil || !ws.Checker().CanConnect(b.NextConnection(), next.PreviousConnection(), false) {
			return nil, invalid("block %q cannot follow %q", spec.Next.ID, spec.ID)
		}
		if err := ws.Connect(b.NextConnection(), next.PreviousConnection()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "attach %q", spec.Next.ID)
		}
	}
	return b, nil
}

// Area is a rectangular delete area such as a trash can or the toolbox.
type Area struct {
	id     string
	rect   geom.Rect
	always bool
}

// NewArea returns the area described by spec.
func NewArea(spec AreaSpec) *Area {
	return &Area{
		id:     spec.ID,
		rect:   geom.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height},
		always: spec.Delete == DeleteAlways,
	}
}

func (a *Area) ID() string { return a.id }

// Rect returns the area bounds in workspace coordinates.
func (a *Area) Rect() geom.Rect { return a.rect }

// WouldDelete deletes unconditionally for "always" areas. Other areas keep
// blocks that could connect.
func (a *Area) WouldDelete(_ blocks.Block, couldConnect bool) bool {
	return a.always || !couldConnect
}
