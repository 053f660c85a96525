package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/drag"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

func testWorkspace(t *testing.T) *blocks.Workspace {
	t.Helper()
	reg, err := blocks.NewRegistry(&blocks.Definition{Type: "stmt", Previous: true, Next: true, Height: 40})
	if err != nil {
		t.Fatal(err)
	}
	ws, err := blocks.NewWorkspace(blocks.Options{Registry: reg})
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRenderSize(t *testing.T) {
	ws := testWorkspace(t)
	if _, err := ws.NewBlock("stmt", blocks.BlockOptions{ID: "a"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts Options
		w, h int
	}{
		{"defaults", Options{}, 140, 80},
		{"scaled", Options{Scale: 2}, 280, 160},
		{"no padding", Options{Padding: -1}, 100, 40},
		{"with area", Options{Areas: []Area{{Label: "trash", Rect: geom.Rect{X: 200, Y: 0, Width: 50, Height: 50}}}}, 290, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Render(ws, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderDrawsBlocks(t *testing.T) {
	ws := testWorkspace(t)
	if _, err := ws.NewBlock("stmt", blocks.BlockOptions{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	img, err := Render(ws, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !isWhite(img.At(5, 5)) {
		t.Error("padding should be white")
	}
	if isWhite(img.At(100, 50)) {
		t.Error("block body should be filled")
	}
}

func TestRenderDraggedStack(t *testing.T) {
	ws := testWorkspace(t)
	a, _ := ws.NewBlock("stmt", blocks.BlockOptions{ID: "a"})
	b, _ := ws.NewBlock("stmt", blocks.BlockOptions{ID: "b", Position: geom.Pt(0, 200)})

	s, err := drag.Begin(b, drag.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()
	if err := s.Update(geom.Pt(0, -150), nil); err != nil {
		t.Fatal(err)
	}
	if a.NextBlock() == nil || !a.NextBlock().IsInsertionMarker() {
		t.Fatal("expected a marker below a")
	}

	img, err := Render(ws, Options{Dragged: b, DragOffset: geom.Pt(0, -150)})
	if err != nil {
		t.Fatal(err)
	}
	// a spans y 0..40, the marker 40..80 and b is drawn at 50..90; the
	// image is padded by 20 on every side.
	if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 130 {
		t.Errorf("size = %dx%d, want 140x130", b.Dx(), b.Dy())
	}
	if isWhite(img.At(70, 105)) {
		t.Error("dragged block should be drawn at its offset")
	}
}

func TestRenderPNG(t *testing.T) {
	ws := testWorkspace(t)
	if _, err := ws.NewBlock("stmt", blocks.BlockOptions{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	data, err := RenderPNG(ws, Options{Line: drag.Line{Active: true, Indicator: geom.Pt(50, 50), From: geom.Pt(50, 60), To: geom.Pt(50, 90)}})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The line reaches y=90; padding adds 20 above and below.
	if got := img.Bounds(); got != image.Rect(0, 0, 140, 130) {
		t.Errorf("bounds = %v", got)
	}
}

func TestRenderEmptyWorkspace(t *testing.T) {
	img, err := Render(testWorkspace(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("size = %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestTypeColorIsStable(t *testing.T) {
	r1, g1, b1 := typeColor("stmt")
	r2, g2, b2 := typeColor("stmt")
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("typeColor() should be deterministic")
	}
	for _, v := range []float64{r1, g1, b1} {
		if v < 0 || v > 1 {
			t.Errorf("component %g out of range", v)
		}
	}
}
