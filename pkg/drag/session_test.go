package drag

import (
	"testing"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/events"
	"github.com/matzehuels/blocksnap/pkg/geom"
	"github.com/matzehuels/blocksnap/pkg/render"
)

func TestBeginRejects(t *testing.T) {
	ws := testWorkspace(t, false)
	b := mustBlock(t, ws, "stmt", "b", 0, 0)

	if _, err := Begin(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil block: err = %v", err)
	}
	if _, err := Begin(b, Options{SnapRadius: 50, ConnectingRadius: 20}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("connecting < snap: err = %v", err)
	}
	m, err := ws.NewMarker(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Begin(m, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("marker: err = %v", err)
	}
}

func TestBeginMissingStructure(t *testing.T) {
	ws := testWorkspace(t, false)
	b, err := ws.NewBlock("lossy", blocks.BlockOptions{ID: "l", State: blocks.ExtraState{"arms": 1}})
	if err != nil {
		t.Fatal(err)
	}
	ws.Events().Clear()

	_, err = Begin(b, Options{})
	if !errors.Is(err, errors.ErrCodeMissingStructure) {
		t.Fatalf("err = %v, want missing structure", err)
	}
	if ws.Events().Len() != 0 {
		t.Errorf("events = %+v, want none", ws.Events().Events())
	}
	if !b.PreviousConnection().Tracked() {
		t.Error("a failed begin must leave the block tracked")
	}
}

func TestAvailableConnections(t *testing.T) {
	ws := testWorkspace(t, false)
	s1 := mustBlock(t, ws, "stmt", "s1", 300, 300)
	s2 := mustBlock(t, ws, "stmt", "s2", 0, 0)
	mustConnect(t, ws, s1.NextConnection(), s2.PreviousConnection())

	s := mustBegin(t, s1, Options{})
	defer s.Dispose()

	got := s.AvailableConnections()
	if len(got) != 3 || got[2] != s2.NextConnection() {
		t.Fatalf("available = %v, want s1 connections plus s2.next", got)
	}
	if n := len(s.MarkerBlocks()); n != 2 {
		t.Errorf("markers = %d, want 2", n)
	}
	if s1.PreviousConnection().Tracked() || s2.NextConnection().Tracked() {
		t.Error("dragged connections must leave the index")
	}

	if err := s.UpdateAvailableConnections(); err != nil {
		t.Fatal(err)
	}
	if n := len(ws.Markers()); n != 2 {
		t.Errorf("markers after update = %d, want 2 (old tail marker disposed)", n)
	}
}

func TestNoCandidate(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	ws.Events().Clear()

	s := mustBegin(t, b, Options{})
	for _, dxy := range []geom.Point{geom.Pt(10, 0), geom.Pt(300, 50), geom.Pt(0, 120)} {
		mustUpdate(t, s, dxy, nil)
		if s.WouldConnect() {
			t.Fatalf("WouldConnect at %v", dxy)
		}
	}
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}

	if a.NextConnection().IsConnected() || b.PreviousConnection().IsConnected() {
		t.Error("topology changed")
	}
	if ws.Events().Len() != 0 {
		t.Errorf("events = %+v, want none", ws.Events().Events())
	}
	if len(ws.Markers()) != 0 || len(s.MarkerBlocks()) != 0 {
		t.Error("markers left after dispose")
	}
	if len(s.AvailableConnections()) != 0 {
		t.Error("connection index not cleared")
	}
	if !b.PreviousConnection().Tracked() {
		t.Error("dispose must return the stack to the index")
	}
}

// A single block is dragged next to another, away, back and released.
func TestSingleBlockScenario(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	ws.Events().Clear()
	hooks := &recordingHooks{}

	s := mustBegin(t, b, Options{Hooks: hooks})
	near := geom.Pt(0, -150)

	mustUpdate(t, s, near, nil)
	p := s.Preview()
	if !s.WouldConnect() || p.Closest != a.NextConnection() || p.Local != b.PreviousConnection() {
		t.Fatalf("preview = %+v, want a.next/b.previous", p)
	}
	if p.Mode != render.InsertionMarker || p.Marker == nil {
		t.Fatalf("mode = %v, marker = %v", p.Mode, p.Marker)
	}
	if a.NextBlock() != p.Marker || !p.Marker.Visible() || !p.Marker.Rendered() {
		t.Error("marker should be visible and attached below a")
	}
	if got := p.Marker.Position(); got != geom.Pt(0, 40) {
		t.Errorf("marker position = %v, want (0, 40)", got)
	}
	if !a.NextConnection().Highlighted() {
		t.Error("classic highlights the candidate")
	}
	checkOneModality(t, s)

	mustUpdate(t, s, geom.Pt(300, 0), nil)
	if s.WouldConnect() {
		t.Fatal("moving away should clear the candidate")
	}
	if a.NextConnection().IsConnected() || p.Marker.Visible() {
		t.Error("marker should be detached and hidden")
	}
	if a.NextConnection().Highlighted() {
		t.Error("highlight should be removed")
	}

	mustUpdate(t, s, near, nil)
	if a.NextBlock() != s.Preview().Marker {
		t.Fatal("marker should be shown again")
	}
	if ws.Events().Len() != 0 {
		t.Fatalf("preview bookkeeping emitted %+v", ws.Events().Events())
	}

	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if a.NextBlock() != blocks.Block(b) || b.PreviousConnection().Target() != a.NextConnection() {
		t.Fatal("a and b should be linked both ways")
	}
	if got := b.Position(); got != geom.Pt(0, 40) {
		t.Errorf("b position = %v, want (0, 40)", got)
	}
	if len(ws.Markers()) != 0 {
		t.Error("markers left after commit and dispose")
	}

	evs := ws.Events().Events()
	if len(evs) != 1 || evs[0].Type != events.TypeMove || evs[0].BlockID != "b" || evs[0].NewParentID != "a" {
		t.Errorf("events = %+v, want one move of b into a", evs)
	}
	if len(hooks.starts) != 1 || len(hooks.shown) != 2 || hooks.hidden != 2 || len(hooks.commits) != 1 {
		t.Errorf("hooks = %+v", hooks)
	}
	if hooks.commits[0] != "b->a" {
		t.Errorf("commit hook = %q", hooks.commits[0])
	}
}

func TestHideAndReshowIsIdempotent(t *testing.T) {
	ws := testWorkspace(t, false)
	p := mustBlock(t, ws, "stmt", "p", 0, 0)
	x := mustBlock(t, ws, "stmt", "x", 0, 0)
	mustConnect(t, ws, p.NextConnection(), x.PreviousConnection())
	b := mustBlock(t, ws, "stmt", "b", 300, 300)

	s := mustBegin(t, b, Options{})
	defer s.Dispose()
	near := geom.Pt(-300, -255)

	mustUpdate(t, s, near, nil)
	m := s.Preview().Marker
	if m == nil || p.NextBlock() != m || m.NextBlock() != blocks.Block(x) {
		t.Fatal("marker should be spliced between p and x")
	}
	firstMarkerPos, firstXPos := m.Position(), x.Position()

	mustUpdate(t, s, geom.Pt(0, 0), nil)
	if p.NextBlock() != blocks.Block(x) || x.Position() != geom.Pt(0, 40) {
		t.Fatalf("hiding should restore p -> x, x at %v", x.Position())
	}

	mustUpdate(t, s, near, nil)
	if p.NextBlock() != m || m.NextBlock() != blocks.Block(x) {
		t.Fatal("reshow should splice the same marker")
	}
	if m.Position() != firstMarkerPos || x.Position() != firstXPos {
		t.Errorf("reshow moved blocks: marker %v, x %v", m.Position(), x.Position())
	}
}

// A tail-less three block stack dropped onto an occupied next connection
// fades the block it would displace.
func TestReplacementFadeScenario(t *testing.T) {
	ws := testWorkspace(t, false)
	p := mustBlock(t, ws, "stmt", "p", 0, 0)
	x := mustBlock(t, ws, "stmt", "x", 0, 0)
	mustConnect(t, ws, p.NextConnection(), x.PreviousConnection())

	s1 := mustBlock(t, ws, "stmt", "s1", 300, 300)
	s2 := mustBlock(t, ws, "stmt", "s2", 0, 0)
	e := mustBlock(t, ws, "end", "e", 0, 0)
	mustConnect(t, ws, s1.NextConnection(), s2.PreviousConnection())
	mustConnect(t, ws, s2.NextConnection(), e.PreviousConnection())

	s := mustBegin(t, s1, Options{})
	if n := len(s.MarkerBlocks()); n != 1 {
		t.Fatalf("markers = %d, want 1 (stack has no free tail)", n)
	}

	dxy := geom.Pt(-300, -255)
	mustUpdate(t, s, dxy, nil)
	pv := s.Preview()
	if pv.Mode != render.ReplacementFade || pv.Faded != blocks.Block(x) {
		t.Fatalf("preview = %+v, want fade of x", pv)
	}
	if !x.Faded() || p.NextBlock() != blocks.Block(x) {
		t.Error("x should be faded and still attached")
	}
	if line := s.ConnectionLine(); !line.Active {
		t.Error("fade should draw a connection line")
	}
	checkOneModality(t, s)

	s1.MoveBy(dxy)
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if x.Faded() {
		t.Error("fade should be removed")
	}
	if p.NextBlock() != blocks.Block(s1) || x.Parent() != nil {
		t.Fatal("s1 should replace x under p")
	}
	if got := x.Position(); got != geom.Pt(25, 65) {
		t.Errorf("x position = %v, want bumped to (25, 65)", got)
	}
}

func TestDeleteAreaWins(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	bin := &trash{id: "trash", deleting: true}
	ws.Components().Add(bin, blocks.CapDeleteArea)
	plain := &trash{id: "flyout", deleting: true}
	ws.Components().Add(plain, blocks.CapDragTarget)

	s := mustBegin(t, b, Options{})
	defer s.Dispose()
	near := geom.Pt(0, -150)

	mustUpdate(t, s, near, nil)
	marker := s.Preview().Marker
	if marker == nil {
		t.Fatal("expected a marker")
	}

	mustUpdate(t, s, near, bin)
	if !s.WouldDeleteBlock() || s.WouldConnect() {
		t.Fatalf("over trash: delete=%v connect=%v", s.WouldDeleteBlock(), s.WouldConnect())
	}
	if !bin.lastSeen {
		t.Error("delete area should be told a connection was possible")
	}
	if a.NextConnection().IsConnected() || marker.Visible() {
		t.Error("preview should be cleared over the trash")
	}
	checkOneModality(t, s)

	mustUpdate(t, s, near, plain)
	if s.WouldDeleteBlock() || plain.calls != 0 {
		t.Error("components without the delete capability are not asked")
	}
	if !s.WouldConnect() || a.NextBlock() != marker {
		t.Error("leaving the trash should restore the preview")
	}
}

func TestPreferenceMargin(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	c := mustBlock(t, ws, "stmt", "c", 60, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 300)

	s := mustBegin(t, b, Options{})
	defer s.Dispose()

	tests := []struct {
		dx   float64
		want *blocks.Connection
	}{
		{25, a.NextConnection()}, // a 25 away, c 35
		{33, a.NextConnection()}, // c 27 away, a 33: within the margin
		{38, c.NextConnection()}, // c 22 away, a 38: beyond the margin
		{33, c.NextConnection()}, // a 33 away, c 27: c is closer anyway
	}
	for _, tt := range tests {
		mustUpdate(t, s, geom.Pt(tt.dx, -260), nil)
		if got := s.Preview().Closest; got != tt.want {
			t.Errorf("dx=%g: closest = %v, want %v", tt.dx, got, tt.want)
		}
		checkOneModality(t, s)
	}
	if a.NextConnection().IsConnected() {
		t.Error("old marker should be detached from a")
	}
	if c.NextBlock() == nil || !c.NextBlock().IsInsertionMarker() {
		t.Error("marker should be under c")
	}
}

func TestTailMarker(t *testing.T) {
	ws := testWorkspace(t, true)
	tgt := mustBlock(t, ws, "stmt", "t", 0, 0)
	s1 := mustBlock(t, ws, "stmt", "s1", 300, 300)
	s2 := mustBlock(t, ws, "stmt", "s2", 0, 0)
	mustConnect(t, ws, s1.NextConnection(), s2.PreviousConnection())

	s := mustBegin(t, s1, Options{})
	dxy := geom.Pt(-300, -380)
	mustUpdate(t, s, dxy, nil)

	p := s.Preview()
	if p.Local != s2.NextConnection() || p.Closest != tgt.PreviousConnection() {
		t.Fatalf("preview = %+v, want s2.next/t.previous", p)
	}
	if p.Marker == nil || p.Marker.SourceID() != "s2" {
		t.Fatalf("marker = %v, want clone of s2", p.Marker)
	}
	if tgt.Parent() != blocks.Block(p.Marker) || tgt.Position() != geom.Pt(0, 0) {
		t.Error("t should sit below the marker without moving")
	}

	mustUpdate(t, s, geom.Pt(0, 0), nil)
	if tgt.Parent() != nil || tgt.Position() != geom.Pt(0, 0) {
		t.Fatalf("t should be released in place, parent=%v pos=%v", tgt.Parent(), tgt.Position())
	}

	mustUpdate(t, s, dxy, nil)
	s1.MoveBy(dxy)
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	s.Dispose()
	if s2.NextBlock() != blocks.Block(tgt) {
		t.Fatal("t should follow s2")
	}
	if got := tgt.Position(); got != geom.Pt(0, 0) {
		t.Errorf("t position = %v, want (0, 0)", got)
	}
	if got := ws.Animations(); len(got) != 1 || got[0] != "t" {
		t.Errorf("animations = %v, want [t]", got)
	}
	if top := ws.TopBlocks(); top[len(top)-1] != s1 {
		t.Error("dragged stack should be in front")
	}
}

func TestCBlockMarker(t *testing.T) {
	ws := testWorkspace(t, false)
	tgt := mustBlock(t, ws, "stmt", "t", 0, 0)
	l := mustBlock(t, ws, "loop", "l", 300, 300)

	s := mustBegin(t, l, Options{})
	defer s.Dispose()

	mustUpdate(t, s, geom.Pt(-316, -324), nil)
	m := s.Preview().Marker
	if m == nil || tgt.Parent() != blocks.Block(m) {
		t.Fatal("t should be wrapped by the marker")
	}
	if got := m.Position(); got != geom.Pt(-16, -24) {
		t.Errorf("marker position = %v, want (-16, -24)", got)
	}

	mustUpdate(t, s, geom.Pt(0, 0), nil)
	if tgt.Parent() != nil || m.Input("DO").Connection().IsConnected() {
		t.Fatal("t should be unwrapped")
	}
	if got := tgt.Position(); got != geom.Pt(0, 0) {
		t.Errorf("t position = %v, want (0, 0)", got)
	}
}

func TestZelosOutline(t *testing.T) {
	ws := testWorkspace(t, false)
	o := mustBlock(t, ws, "op", "o", 0, 0)
	v := mustBlock(t, ws, "value", "v", 300, 300)

	s := mustBegin(t, v, Options{Policy: render.Zelos{}})
	defer s.Dispose()

	mustUpdate(t, s, geom.Pt(-240, -288), nil)
	p := s.Preview()
	if p.Mode != render.InputOutline || p.OutlineInput != o.Input("A") {
		t.Fatalf("preview = %+v, want outline of o.A", p)
	}
	if !o.Input("A").Outlined() || o.Input("A").Connection().Highlighted() {
		t.Error("input should be outlined and value connections never highlighted")
	}
	if line := s.ConnectionLine(); !line.Active || line.Visible() {
		t.Errorf("overlapping indicators should hide the line: %+v", line)
	}
	checkOneModality(t, s)

	mustUpdate(t, s, geom.Pt(-270, -288), nil)
	line := s.ConnectionLine()
	if !line.Visible() {
		t.Fatalf("line = %+v, want visible", line)
	}
	if line.From != geom.Pt(39, 12) || line.To != geom.Pt(51, 12) {
		t.Errorf("line = %v -> %v, want (39, 12) -> (51, 12)", line.From, line.To)
	}

	mustUpdate(t, s, geom.Pt(0, 0), nil)
	if o.Input("A").Outlined() || s.ConnectionLine().Active {
		t.Error("outline and line should be removed")
	}
}

// alwaysFade asks for a fade even where nothing can be faded.
type alwaysFade struct{ render.Classic }

func (alwaysFade) PreviewMode(*blocks.Connection, *blocks.Connection, blocks.Block) render.Mode {
	return render.ReplacementFade
}

func TestInvariantBreaksSession(t *testing.T) {
	ws := testWorkspace(t, false)
	mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)

	s := mustBegin(t, b, Options{Policy: alwaysFade{}})
	err := s.Update(geom.Pt(0, -150), nil)
	if !errors.Is(err, errors.ErrCodeInvariant) {
		t.Fatalf("err = %v, want invariant", err)
	}
	if err2 := s.Update(geom.Pt(0, 0), nil); err2 != err {
		t.Errorf("broken session returned %v, want %v", err2, err)
	}
	if s.Commit() != err {
		t.Error("commit on a broken session should fail")
	}
	if err := s.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if len(ws.Markers()) != 0 {
		t.Error("dispose should still remove markers")
	}
}

func TestDisposeWithoutCommitRestoresGraph(t *testing.T) {
	ws := testWorkspace(t, false)
	p := mustBlock(t, ws, "stmt", "p", 0, 0)
	x := mustBlock(t, ws, "stmt", "x", 0, 0)
	mustConnect(t, ws, p.NextConnection(), x.PreviousConnection())
	b := mustBlock(t, ws, "stmt", "b", 300, 300)
	ws.Events().Clear()

	s := mustBegin(t, b, Options{})
	mustUpdate(t, s, geom.Pt(-300, -255), nil)
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if p.NextBlock() != blocks.Block(x) || x.Position() != geom.Pt(0, 40) {
		t.Error("cancel should leave p -> x as before")
	}
	if ws.Events().Len() != 0 {
		t.Errorf("events = %+v, want none", ws.Events().Events())
	}
	if err := s.Update(geom.Pt(0, 0), nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("update after dispose: err = %v", err)
	}
}

func TestUpdateAvailableConnectionsDuringTailPreview(t *testing.T) {
	ws := testWorkspace(t, true)
	tgt := mustBlock(t, ws, "stmt", "t", 0, 0)
	s1 := mustBlock(t, ws, "stmt", "s1", 300, 300)
	s2 := mustBlock(t, ws, "stmt", "s2", 0, 0)
	mustConnect(t, ws, s1.NextConnection(), s2.PreviousConnection())
	ws.Events().Clear()

	s := mustBegin(t, s1, Options{})
	dxy := geom.Pt(-300, -380)
	mustUpdate(t, s, dxy, nil)
	if m := s.Preview().Marker; m == nil || tgt.Parent() != blocks.Block(m) {
		t.Fatal("t should sit below the tail marker")
	}

	if err := s.UpdateAvailableConnections(); err != nil {
		t.Fatalf("UpdateAvailableConnections: %v", err)
	}
	if tgt.Disposed() {
		t.Fatal("t was disposed with the old tail marker")
	}
	if _, ok := ws.Block("t"); !ok {
		t.Fatal("t should still be in the workspace")
	}
	if tgt.Parent() != nil || tgt.Position() != geom.Pt(0, 0) {
		t.Errorf("t should be released in place, parent=%v pos=%v", tgt.Parent(), tgt.Position())
	}
	if s.WouldConnect() || s.Preview().Marker != nil {
		t.Error("the tail preview should be dropped with its marker")
	}

	mustUpdate(t, s, dxy, nil)
	p := s.Preview()
	if p.Local != s2.NextConnection() || p.Marker == nil || tgt.Parent() != blocks.Block(p.Marker) {
		t.Fatalf("the next move should show the new tail marker, preview = %+v", p)
	}
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if tgt.Disposed() || tgt.Parent() != nil || len(ws.Markers()) != 0 {
		t.Error("dispose should leave t free and no markers behind")
	}
	for _, e := range ws.Events().Events() {
		if e.Type == events.TypeDelete {
			t.Errorf("unexpected delete event for %s", e.BlockID)
		}
	}
}

func TestDeleteAreaWithoutCandidate(t *testing.T) {
	ws := testWorkspace(t, false)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 200)
	bin := &trash{id: "trash", deleting: true}
	ws.Components().Add(bin, blocks.CapDeleteArea)

	s := mustBegin(t, b, Options{})
	defer s.Dispose()

	mustUpdate(t, s, geom.Pt(500, 0), bin)
	if !s.WouldDeleteBlock() {
		t.Error("over the trash with nothing in range the drop should delete")
	}
	if s.WouldConnect() {
		t.Error("no candidate should be recorded")
	}
	if bin.calls == 0 || bin.lastSeen {
		t.Errorf("delete area asked %d times, couldConnect = %t; want asked without a connection", bin.calls, bin.lastSeen)
	}
	if a.NextConnection().IsConnected() || modalities(s.Preview()) != 0 {
		t.Error("no preview should be shown")
	}
}

func TestDisposeBrokenSessionWithSplicedMarker(t *testing.T) {
	ws := testWorkspace(t, false)
	p := mustBlock(t, ws, "stmt", "p", 0, 0)
	x := mustBlock(t, ws, "stmt", "x", 0, 0)
	mustConnect(t, ws, p.NextConnection(), x.PreviousConnection())
	b := mustBlock(t, ws, "stmt", "b", 300, 300)
	ws.Events().Clear()

	s := mustBegin(t, b, Options{})
	mustUpdate(t, s, geom.Pt(-300, -255), nil)
	m := s.Preview().Marker
	if m == nil || p.NextBlock() != blocks.Block(m) || m.NextBlock() != blocks.Block(x) {
		t.Fatal("marker should be spliced between p and x")
	}

	broken := s.fail(errors.Invariant("forced failure"))
	if s.Update(geom.Pt(0, 0), nil) != broken {
		t.Fatal("session should be broken")
	}
	if err := s.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if x.Disposed() {
		t.Fatal("x was disposed with the marker")
	}
	if _, ok := ws.Block("x"); !ok {
		t.Error("x should still be in the workspace")
	}
	if p.NextBlock() != blocks.Block(x) {
		t.Error("the stack should close over the removed marker")
	}
	if len(ws.Markers()) != 0 {
		t.Error("dispose should remove the markers")
	}
	for _, e := range ws.Events().Events() {
		if e.Type == events.TypeDelete {
			t.Errorf("unexpected delete event for %s", e.BlockID)
		}
	}
}
