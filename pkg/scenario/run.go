package scenario

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/drag"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

// State is what the engine shows after a step.
type State struct {
	Step     int    `json:"step"`
	Action   string `json:"action"`
	Dragging bool   `json:"dragging"`

	Local        string `json:"local,omitempty"`
	Closest      string `json:"closest,omitempty"`
	Mode         string `json:"mode,omitempty"`
	WouldConnect bool   `json:"wouldConnect"`
	WouldDelete  bool   `json:"wouldDelete"`

	Markers        int        `json:"markers"`
	VisibleMarkers int        `json:"visibleMarkers"`
	Surface        geom.Point `json:"surface"`
	Line           *drag.Line `json:"line,omitempty"`

	// Result is set by end steps.
	Result *drag.Result `json:"result,omitempty"`
	// Failures lists unmet expectations.
	Failures []string `json:"failures,omitempty"`
}

// String returns a one-line summary such as
// "3 move (0, -150): insertion-marker b.previous -> a.next".
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s: ", s.Step, s.Action)
	switch {
	case s.Result != nil && s.Result.Deleted:
		b.WriteString("deleted " + s.Result.BlockID)
	case s.Result != nil && s.Result.Connected:
		b.WriteString("connected to " + s.Result.Target)
	case s.Result != nil:
		fmt.Fprintf(&b, "dropped at offset %v", s.Result.Offset)
	case !s.Dragging:
		b.WriteString("idle")
	case s.WouldDelete:
		b.WriteString("would delete")
	case s.Closest != "":
		fmt.Fprintf(&b, "%s %s -> %s", s.Mode, s.Local, s.Closest)
	default:
		b.WriteString("no candidate")
	}
	return b.String()
}

// Report is the outcome of [Run].
type Report struct {
	Name     string   `json:"name"`
	States   []State  `json:"states"`
	Failures []string `json:"failures,omitempty"`

	World *World `json:"-"`
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool { return len(r.Failures) == 0 }

// Run builds f and replays all of its steps. Unmet expectations are
// collected in the report; an error is returned only when a step cannot be
// applied or ctx is done.
func Run(ctx context.Context, f *File, opts Options) (*Report, error) {
	w, err := Build(f, opts)
	if err != nil {
		return nil, err
	}
	rep := &Report{Name: f.Name, World: w}
	for _, step := range f.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		st, err := w.Apply(step)
		if err != nil {
			return rep, err
		}
		rep.States = append(rep.States, st)
		for _, msg := range st.Failures {
			rep.Failures = append(rep.Failures, fmt.Sprintf("step %d (%s): %s", st.Step, st.Action, msg))
		}
	}
	return rep, nil
}

// Apply performs one step and checks its expectations.
func (w *World) Apply(step Step) (State, error) {
	w.step++
	c := w.Controller
	var res *drag.Result

	switch {
	case step.Begin != "":
		b, ok := w.Workspace.Block(step.Begin)
		if !ok {
			return State{}, w.stepErr(errors.New(errors.ErrCodeNotFound, "no block %q", step.Begin))
		}
		if err := c.Press(b); err != nil {
			return State{}, w.stepErr(err)
		}
		w.origin = b.Position()
	case len(step.Move) == 2:
		dxy := geom.Pt(step.Move[0], step.Move[1])
		if err := c.Move(dxy, w.target(step, dxy)); err != nil {
			return State{}, w.stepErr(err)
		}
	case step.End:
		r, err := c.Release()
		if err != nil {
			return State{}, w.stepErr(err)
		}
		res = &r
	case step.Cancel:
		if err := c.Cancel(); err != nil {
			return State{}, w.stepErr(err)
		}
	default:
		return State{}, w.stepErr(errors.New(errors.ErrCodeInvalidScenario, "empty step"))
	}

	st := w.State()
	st.Action = step.Action()
	st.Result = res
	if step.Expect != nil {
		st.Failures = w.check(st, step.Expect)
	}
	return st, nil
}

// target resolves the component under the pointer. The result is nil, not
// a typed nil, when there is none.
func (w *World) target(step Step, dxy geom.Point) blocks.Component {
	if step.Over != "" {
		if a, ok := w.Area(step.Over); ok {
			return a
		}
		return nil
	}
	if a, ok := w.AreaAt(w.origin.Add(dxy)); ok {
		return a
	}
	return nil
}

func (w *World) stepErr(err error) error {
	return fmt.Errorf("step %d: %w", w.step, err)
}

// State captures the current preview without performing a step.
func (w *World) State() State {
	st := State{Step: w.step, Surface: w.Surface.Translation()}
	for _, m := range w.Workspace.Markers() {
		st.Markers++
		if m.Visible() {
			st.VisibleMarkers++
		}
	}
	s := w.Controller.Session()
	if s == nil {
		return st
	}
	st.Dragging = true
	p := s.Preview()
	st.WouldConnect = s.WouldConnect()
	st.WouldDelete = p.WouldDelete
	if p.Active {
		st.Local = p.Local.Name()
		st.Closest = p.Closest.Name()
		st.Mode = p.Mode.String()
	}
	if line := s.ConnectionLine(); line.Active {
		st.Line = &line
	}
	return st
}

func (w *World) check(st State, e *Expect) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	connected, deleted := st.WouldConnect, st.WouldDelete
	if st.Result != nil {
		connected, deleted = st.Result.Connected, st.Result.Deleted
	}
	if e.Connect != nil && *e.Connect != connected {
		fail("connect = %t, want %t", connected, *e.Connect)
	}
	if e.Delete != nil && *e.Delete != deleted {
		fail("delete = %t, want %t", deleted, *e.Delete)
	}
	if e.Mode != "" && e.Mode != st.Mode {
		fail("mode = %q, want %q", st.Mode, e.Mode)
	}
	if e.Closest != "" && e.Closest != st.Closest {
		fail("closest = %q, want %q", st.Closest, e.Closest)
	}
	if e.Markers != nil && *e.Markers != st.VisibleMarkers {
		fail("visible markers = %d, want %d", st.VisibleMarkers, *e.Markers)
	}
	for _, id := range slices.Sorted(maps.Keys(e.Parent)) {
		want := e.Parent[id]
		b, ok := w.Workspace.Block(id)
		if !ok {
			fail("block %q does not exist", id)
			continue
		}
		got := ""
		if p := b.Parent(); p != nil {
			got = p.ID()
		}
		if got != want {
			fail("parent of %s = %q, want %q", id, got, want)
		}
	}
	return failures
}
