// Package drag resolves connections while a stack of blocks is dragged.
//
// # Overview
//
// A [Session] covers one drag. On every pointer move it searches the
// workspace for the connection the stack would snap to if released, using
// the connections the stack offers (the top block's connections plus the
// free tail of the stack). A candidate replaces the current one only if it
// is a different pair that is closer by more than the preference margin,
// so the preview does not flicker between two targets at similar distance.
//
// The preview for a candidate is chosen by a [render.Policy]:
//
//   - an insertion marker, a hidden clone of the dragged block that is
//     connected in place so the surrounding blocks make room
//   - an outline of the target input
//   - a fade of the block the drop would replace
//
// Hovering a delete area wins over any candidate: the preview is removed
// and [Session.WouldDeleteBlock] reports true.
//
// All graph changes made for previews happen with the history suppressed,
// so markers never show up in undo. Only the final connection in
// [Session.Commit] is recorded.
//
// # Usage
//
//	s, err := drag.Begin(top, drag.Options{})
//	if err != nil {
//	    return err
//	}
//	defer s.Dispose()
//
//	for _, dxy := range moves {
//	    if err := s.Update(dxy, nil); err != nil {
//	        return err
//	    }
//	}
//	top.MoveBy(last)
//	return s.Commit()
//
// A [Controller] wraps the session with the pointer gesture: it applies the
// dead zone, opens the history group, tears the block out of its stack and
// puts it on the drag surface.
//
// # Errors
//
// Broken graph invariants are returned with [errors.ErrCodeInvariant], a
// marker clone that does not match its source with
// [errors.ErrCodeMissingStructure]. Either leaves the session unusable.
//
// [errors.ErrCodeInvariant]: github.com/matzehuels/blocksnap/pkg/errors#ErrCodeInvariant
// [errors.ErrCodeMissingStructure]: github.com/matzehuels/blocksnap/pkg/errors#ErrCodeMissingStructure
package drag
