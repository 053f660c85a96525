// Package snapshot rasterizes a workspace to PNG, previews included.
//
// Blocks are drawn as rounded boxes colored by type and labeled with
// their id. Insertion markers are grey and dashed, faded blocks are drawn
// at half opacity, outlined inputs get an orange frame and highlighted
// connections a yellow dot. The connection line of an outline or fade
// preview is drawn with an indicator circle of [drag.IndicatorRadius] at
// the candidate connection.
//
// A stack held on the drag surface has not moved in the workspace yet;
// pass it as [Options.Dragged] with the pointer offset to draw it where
// the user sees it.
//
//	png, err := snapshot.RenderPNG(ws, snapshot.Options{
//	    Dragged:    ctrl.Selected,
//	    DragOffset: ctrl.Offset(),
//	    Line:       ctrl.Session().ConnectionLine(),
//	})
package snapshot
