package drag

import (
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

func testRegistry(t *testing.T) *blocks.Registry {
	t.Helper()
	lossyShape := func(state blocks.ExtraState) []blocks.InputSpec {
		var specs []blocks.InputSpec
		for i := 0; i <= state.Int("arms", 0); i++ {
			specs = append(specs, blocks.InputSpec{
				Name:   fmt.Sprintf("IF%d", i),
				Kind:   blocks.ValueInput,
				Fields: []blocks.FieldSpec{{Name: "LABEL", Value: "if"}},
			})
		}
		return specs
	}
	r, err := blocks.NewRegistry(
		&blocks.Definition{Type: "stmt", Previous: true, Next: true, Height: 40},
		&blocks.Definition{Type: "end", Previous: true, Height: 40},
		&blocks.Definition{Type: "value", Output: true, Width: 40, Height: 20},
		&blocks.Definition{Type: "op", Output: true, Width: 60, Height: 40, StaticInputs: []blocks.InputSpec{
			{Name: "A", Kind: blocks.ValueInput},
		}},
		&blocks.Definition{Type: "loop", Previous: true, Next: true, Height: 80, StaticInputs: []blocks.InputSpec{
			{Name: "DO", Kind: blocks.StatementInput},
		}},
		&blocks.Definition{
			Type:      "lossy",
			Previous:  true,
			Next:      true,
			Shape:     lossyShape,
			SaveState: func(blocks.ExtraState) blocks.ExtraState { return nil },
		},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func testWorkspace(t *testing.T, rendered bool) *blocks.Workspace {
	t.Helper()
	ws, err := blocks.NewWorkspace(blocks.Options{Registry: testRegistry(t), Rendered: rendered})
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	return ws
}

func mustBlock(t *testing.T, ws *blocks.Workspace, typ, id string, x, y float64) *blocks.DocumentBlock {
	t.Helper()
	b, err := ws.NewBlock(typ, blocks.BlockOptions{ID: id, Position: geom.Pt(x, y)})
	if err != nil {
		t.Fatalf("NewBlock(%s): %v", typ, err)
	}
	return b
}

func mustConnect(t *testing.T, ws *blocks.Workspace, a, b *blocks.Connection) {
	t.Helper()
	if err := ws.Connect(a, b); err != nil {
		t.Fatalf("Connect(%s, %s): %v", a, b, err)
	}
}

func mustBegin(t *testing.T, top blocks.Block, opts Options) *Session {
	t.Helper()
	s, err := Begin(top, opts)
	if err != nil {
		t.Fatalf("Begin(%s): %v", top.ID(), err)
	}
	return s
}

func mustUpdate(t *testing.T, s *Session, dxy geom.Point, target blocks.Component) {
	t.Helper()
	if err := s.Update(dxy, target); err != nil {
		t.Fatalf("Update(%v): %v", dxy, err)
	}
}

// modalities counts the preview kinds that are on at once.
func modalities(p Preview) int {
	n := 0
	if p.Marker != nil {
		n++
	}
	if p.OutlineInput != nil {
		n++
	}
	if p.Faded != nil {
		n++
	}
	return n
}

func checkOneModality(t *testing.T, s *Session) {
	t.Helper()
	if n := modalities(s.Preview()); n > 1 {
		t.Fatalf("%d preview kinds active at once: %+v", n, s.Preview())
	}
}

// trash is a delete area.
type trash struct {
	id       string
	deleting bool
	calls    int
	lastSeen bool
}

func (tr *trash) ID() string { return tr.id }

func (tr *trash) WouldDelete(_ blocks.Block, couldConnect bool) bool {
	tr.calls++
	tr.lastSeen = couldConnect
	return tr.deleting
}

// recordingHooks counts drag events.
type recordingHooks struct {
	starts  []string
	shown   []string
	hidden  int
	commits []string
	deletes []string
}

func (h *recordingHooks) OnDragStart(id string) { h.starts = append(h.starts, id) }

func (h *recordingHooks) OnPreviewShown(mode, target string) {
	h.shown = append(h.shown, mode+" "+target)
}

func (h *recordingHooks) OnPreviewHidden() { h.hidden++ }

func (h *recordingHooks) OnCommit(id, target string, _ time.Duration) {
	h.commits = append(h.commits, id+"->"+target)
}

func (h *recordingHooks) OnDelete(id string) { h.deletes = append(h.deletes, id) }
