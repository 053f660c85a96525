package drag

import (
	"testing"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/dragsurface"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/events"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

func newController(t *testing.T, ws *blocks.Workspace, opts ControllerOptions) *Controller {
	t.Helper()
	c, err := NewController(ws, opts)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestNewControllerValidates(t *testing.T) {
	if _, err := NewController(nil, ControllerOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil workspace: err = %v", err)
	}
	ws := testWorkspace(t, false)
	if _, err := NewController(ws, ControllerOptions{DeadZone: -1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative dead zone: err = %v", err)
	}
}

func TestControllerDeadZone(t *testing.T) {
	ws := testWorkspace(t, false)
	b := mustBlock(t, ws, "stmt", "b", 0, 0)
	c := newController(t, ws, ControllerOptions{DeadZone: 4})

	if err := c.Move(geom.Pt(1, 1), nil); err == nil {
		t.Error("move without press should fail")
	}
	if err := c.Press(b); err != nil {
		t.Fatal(err)
	}
	if c.Selected != b {
		t.Error("press should select the block")
	}
	if err := c.Move(geom.Pt(3, 0), nil); err != nil {
		t.Fatal(err)
	}
	if c.Dragging() {
		t.Fatal("moves inside the dead zone must not start a drag")
	}
	res, err := c.Release()
	if err != nil {
		t.Fatal(err)
	}
	if res.Dragged || b.Position() != geom.Pt(0, 0) {
		t.Errorf("click moved the block: %+v", res)
	}
}

func TestControllerConnects(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	surface := dragsurface.New(dragsurface.Options{Opacity: 0.8})
	c := newController(t, ws, ControllerOptions{DeadZone: 4, Surface: surface})
	ws.Events().Clear()

	if err := c.Press(b); err != nil {
		t.Fatal(err)
	}
	if err := c.Move(geom.Pt(0, -150), nil); err != nil {
		t.Fatal(err)
	}
	if !c.Dragging() || c.Group() == "" {
		t.Fatal("drag should have started with a history group")
	}
	if !surface.Visible() || surface.Group().ID() != "b" {
		t.Error("dragged block should be on the surface")
	}
	if got := surface.Translation(); got != geom.Pt(0, 50) {
		t.Errorf("surface translation = %v, want (0, 50)", got)
	}
	if err := c.Press(a); err == nil {
		t.Error("press during a drag should fail")
	}

	group := c.Group()
	res, err := c.Release()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Connected || res.Target != "a.next" || res.Group != group {
		t.Errorf("result = %+v", res)
	}
	if a.NextBlock() != blocks.Block(b) || b.Position() != geom.Pt(0, 40) {
		t.Fatal("b should be attached below a")
	}
	if surface.Visible() || surface.Group() != nil {
		t.Error("surface should be cleared")
	}
	if c.Dragging() || c.Group() != "" {
		t.Error("controller should be idle")
	}

	var moves int
	for _, e := range ws.Events().ByGroup(group) {
		if e.Type == events.TypeMove && e.BlockID == "b" && e.NewParentID == "a" {
			moves++
		}
	}
	if moves != 1 {
		t.Errorf("move events into a = %d, want 1", moves)
	}
	for _, e := range ws.Events().Events() {
		if e.Group != group {
			t.Errorf("event outside the drag group: %+v", e)
		}
	}
}

func TestControllerPlainMove(t *testing.T) {
	ws := testWorkspace(t, false)
	b := mustBlock(t, ws, "stmt", "b", 0, 0)
	c := newController(t, ws, ControllerOptions{})
	ws.Events().Clear()

	c.Press(b)
	if err := c.Move(geom.Pt(500, 20), nil); err != nil {
		t.Fatal(err)
	}
	res, err := c.Release()
	if err != nil {
		t.Fatal(err)
	}
	if res.Connected || b.Position() != geom.Pt(500, 20) {
		t.Errorf("result = %+v, position = %v", res, b.Position())
	}
	var found bool
	for _, e := range ws.Events().Events() {
		if e.Type == events.TypeMove && e.OldPosition == geom.Pt(0, 0) && e.NewPosition == geom.Pt(500, 20) {
			found = true
		}
	}
	if !found {
		t.Errorf("no move event in %+v", ws.Events().Events())
	}
	if !b.PreviousConnection().Tracked() || b.PreviousConnection().Position() != geom.Pt(500, 20) {
		t.Error("block should be tracked at its new position")
	}
}

func TestControllerTearOut(t *testing.T) {
	tests := []struct {
		name      string
		heal      bool
		wantWithM bool // q still below m
	}{
		{"heal", true, false},
		{"no heal", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := testWorkspace(t, false)
			p := mustBlock(t, ws, "stmt", "p", 0, 0)
			m := mustBlock(t, ws, "stmt", "m", 0, 0)
			q := mustBlock(t, ws, "stmt", "q", 0, 0)
			mustConnect(t, ws, p.NextConnection(), m.PreviousConnection())
			mustConnect(t, ws, m.NextConnection(), q.PreviousConnection())

			c := newController(t, ws, ControllerOptions{HealStack: tt.heal})
			c.Press(m)
			if err := c.Move(geom.Pt(400, 0), nil); err != nil {
				t.Fatal(err)
			}
			if m.Parent() != nil {
				t.Fatal("m should be torn out")
			}
			if tt.wantWithM {
				if q.Parent() != blocks.Block(m) || p.NextBlock() != nil {
					t.Error("q should come along with m")
				}
			} else if p.NextBlock() != blocks.Block(q) {
				t.Error("q should close the gap below p")
			}
			if err := c.Cancel(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestControllerDeletes(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	hooks := &recordingHooks{}
	bin := &trash{id: "trash", deleting: true}
	ws.Components().Add(bin, blocks.CapDeleteArea)
	surface := dragsurface.New(dragsurface.Options{})
	c := newController(t, ws, ControllerOptions{Surface: surface, Session: Options{Hooks: hooks}})

	c.Press(b)
	if err := c.Move(geom.Pt(0, -150), bin); err != nil {
		t.Fatal(err)
	}
	if !c.Session().WouldDeleteBlock() {
		t.Fatal("should be over the trash")
	}
	res, err := c.Release()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Deleted || res.Connected {
		t.Errorf("result = %+v", res)
	}
	if _, ok := ws.Block("b"); ok || !b.Disposed() {
		t.Error("b should be deleted")
	}
	if a.NextConnection().IsConnected() || len(ws.Markers()) != 0 {
		t.Error("nothing may stay attached to a")
	}
	if c.Selected != nil {
		t.Error("deleted block should be deselected")
	}
	if surface.Visible() {
		t.Error("surface should be cleared")
	}
	if len(hooks.deletes) != 1 || hooks.deletes[0] != "b" {
		t.Errorf("delete hooks = %v", hooks.deletes)
	}
	var deletes int
	for _, e := range ws.Events().ByGroup(res.Group) {
		if e.Type == events.TypeDelete {
			deletes++
		}
	}
	if deletes != 1 {
		t.Errorf("delete events in group = %d, want 1", deletes)
	}
}
