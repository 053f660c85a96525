package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Drag hooks
	d := NoopDragHooks{}
	d.OnDragStart("b1")
	d.OnPreviewShown("insertion-marker", "b2.next")
	d.OnPreviewHidden()
	d.OnCommit("b1", "b2", time.Second)
	d.OnDelete("b1")

	// API hooks
	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/drag/move")
	a.OnResponse(ctx, "POST", "/drag/move", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Drag().(NoopDragHooks); !ok {
		t.Error("Drag() should return NoopDragHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	// Set custom hooks
	customDrag := &testDragHooks{}
	SetDragHooks(customDrag)
	if Drag() != customDrag {
		t.Error("SetDragHooks should set custom hooks")
	}

	customAPI := &testAPIHooks{}
	SetAPIHooks(customAPI)
	if API() != customAPI {
		t.Error("SetAPIHooks should set custom hooks")
	}

	Drag().OnDragStart("b1")
	if customDrag.starts != 1 {
		t.Errorf("starts = %d, want 1", customDrag.starts)
	}

	// Reset and verify
	Reset()
	if _, ok := Drag().(NoopDragHooks); !ok {
		t.Error("Reset() should restore NoopDragHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDragHooks{}
	SetDragHooks(custom)

	// Setting nil should be ignored
	SetDragHooks(nil)

	if Drag() != custom {
		t.Error("SetDragHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDragHooks struct {
	NoopDragHooks
	starts int
}

func (h *testDragHooks) OnDragStart(string) { h.starts++ }

type testAPIHooks struct{ NoopAPIHooks }
