// Package blocks implements the in-memory block graph the drag engine works
// on.
//
// # Overview
//
// A [Workspace] owns blocks. Each block has up to three connections of its
// own (output, previous, next) plus one connection per value or statement
// input. Two connections of opposite type can be linked; the link is
// reciprocal and always runs between a superior side (input or next) and an
// inferior side (output or previous):
//
//	┌──────────┐
//	│  print   ├──○ VALUE   ← input (superior)
//	└────┬─────┘
//	     ○ next           ← next (superior)
//	     │
//	     ○ previous       ← previous (inferior) of the block below
//
// # Block variants
//
// [Block] is sealed. [*DocumentBlock] is a permanent part of the program.
// [*MarkerBlock] is a translucent preview clone created with
// [Workspace.NewMarker]: it is never indexed for proximity search, never
// emits events and never appears in [Workspace.Blocks] or
// [Workspace.TopBlocks].
//
// # Proximity search
//
// Every tracked connection lives in one [ConnectionDB] per connection type,
// sorted by position. [ConnectionDB.SearchForClosest] asks the workspace
// [Checker] whether each nearby candidate is acceptable, using the stricter
// drag-time rules.
//
// # Orphans
//
// Connecting to an occupied superior connection displaces the block that
// was there. [Workspace.Connect] reattaches it below the new block when it
// can and bumps it away otherwise.
package blocks
