package blocks

import (
	"testing"

	"github.com/matzehuels/blocksnap/pkg/geom"
)

func TestConnectionDBSorted(t *testing.T) {
	ws := testWorkspace(t)
	mustBlock(t, ws, "stmt", "low", 0, 300)
	mustBlock(t, ws, "stmt", "high", 0, 0)
	mustBlock(t, ws, "stmt", "mid", 0, 100)

	conns := ws.DB(PreviousStatement).Connections()
	if len(conns) != 3 {
		t.Fatalf("len = %d, want 3", len(conns))
	}
	for i := 1; i < len(conns); i++ {
		if conns[i-1].Position().Y > conns[i].Position().Y {
			t.Errorf("index not sorted at %d: %v > %v", i, conns[i-1].Position(), conns[i].Position())
		}
	}
}

func TestConnectionDBAddRemove(t *testing.T) {
	ws := testWorkspace(t)
	b := mustBlock(t, ws, "stmt", "b", 0, 0)
	db := ws.DB(PreviousStatement)

	db.Add(b.PreviousConnection())
	if db.Len() != 1 {
		t.Errorf("double add: len = %d, want 1", db.Len())
	}
	db.Remove(b.PreviousConnection())
	db.Remove(b.PreviousConnection())
	if db.Len() != 0 || b.PreviousConnection().Tracked() {
		t.Error("connection should be removed once")
	}
}

func TestSearchForClosest(t *testing.T) {
	ws := testWorkspace(t)
	mustBlock(t, ws, "stmt", "near", 0, 0)    // next at (0, 40)
	mustBlock(t, ws, "stmt", "far", 0, 100)   // next at (0, 140)
	mustBlock(t, ws, "stmt", "side", 300, 40) // next at (300, 80)
	dragged := mustBlock(t, ws, "stmt", "drag", 0, 500)
	ws.SetDragging(dragged, true)
	prev := dragged.PreviousConnection() // at (0, 500)
	db := ws.DB(NextStatement)

	tests := []struct {
		name     string
		dxy      geom.Point
		radius   float64
		wantID   string
		wantDist float64
	}{
		{"nearest wins", geom.Pt(0, -455), 48, "near", 5},
		{"displacement applied", geom.Pt(0, -350), 48, "far", 10},
		{"out of range", geom.Pt(0, -300), 48, "", 48},
		{"on the radius", geom.Pt(0, -412), 48, "near", 48},
		{"x distance counts", geom.Pt(300, -420), 48, "side", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dist := db.SearchForClosest(prev, tt.radius, tt.dxy)
			gotID := ""
			if got != nil {
				gotID = got.SourceBlock().ID()
			}
			if gotID != tt.wantID || dist != tt.wantDist {
				t.Errorf("got (%q, %v), want (%q, %v)", gotID, dist, tt.wantID, tt.wantDist)
			}
		})
	}
}

func TestSearchForClosestTieKeepsFirst(t *testing.T) {
	ws := testWorkspace(t)
	mustBlock(t, ws, "stmt", "left", -10, 0)
	mustBlock(t, ws, "stmt", "right", 10, 0)
	dragged := mustBlock(t, ws, "stmt", "drag", 0, 40)
	ws.SetDragging(dragged, true)

	got, dist := ws.DB(NextStatement).SearchForClosest(dragged.PreviousConnection(), 48, geom.Point{})
	if got == nil || got.SourceBlock().ID() != "left" || dist != 10 {
		t.Errorf("got %v at %v, want left at 10", got, dist)
	}
}

func TestSearchForClosestEmpty(t *testing.T) {
	ws := testWorkspace(t)
	b := mustBlock(t, ws, "value", "v", 0, 0)
	got, dist := ws.DB(InputValue).SearchForClosest(b.OutputConnection(), 20, geom.Point{})
	if got != nil || dist != 20 {
		t.Errorf("got (%v, %v), want (nil, 20)", got, dist)
	}
}

func TestMovingTrackedBlockKeepsIndexSorted(t *testing.T) {
	ws := testWorkspace(t)
	a := mustBlock(t, ws, "stmt", "a", 0, 0)
	b := mustBlock(t, ws, "stmt", "b", 0, 300)
	mustBlock(t, ws, "stmt", "c", 0, 100)
	mustConnect(t, ws, a.NextConnection(), b.PreviousConnection())

	if got := b.Position(); got != geom.Pt(0, 40) {
		t.Fatalf("b at %v after connect, want (0, 40)", got)
	}
	a.MoveBy(geom.Pt(0, 500))

	for _, typ := range []ConnType{PreviousStatement, NextStatement} {
		conns := ws.DB(typ).Connections()
		if len(conns) != 3 {
			t.Fatalf("%v index holds %d connections, want 3", typ, len(conns))
		}
		for i := 1; i < len(conns); i++ {
			if conns[i-1].Position().Y > conns[i].Position().Y {
				t.Errorf("%v index not sorted at %d: %v > %v", typ, i, conns[i-1].Position(), conns[i].Position())
			}
		}
	}
	if !b.PreviousConnection().Tracked() || b.PreviousConnection().Position() != geom.Pt(0, 540) {
		t.Errorf("b.previous tracked = %t at %v, want tracked at (0, 540)",
			b.PreviousConnection().Tracked(), b.PreviousConnection().Position())
	}
}
