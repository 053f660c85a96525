// Package scenario scripts drags against a declared workspace.
//
// # Overview
//
// A scenario file declares block types, places blocks, optionally adds
// delete areas, and lists pointer steps. [Run] builds the workspace and
// replays the steps through a [drag.Controller], recording the preview
// after each step and checking any expectations attached to it. The CLI
// uses scenarios for the simulate, graph and play commands, and the HTTP
// server seeds its workspace from one.
//
// # Format
//
// Scenarios are YAML or TOML; the extension picks the decoder. Unknown
// keys are rejected.
//
//	name: insert below
//	renderer: classic
//	types:
//	  - type: stmt
//	    previous: true
//	    next: true
//	    height: 40
//	blocks:
//	  - {id: a, type: stmt}
//	  - {id: b, type: stmt, y: 200}
//	areas:
//	  - {id: trash, x: 400, y: 0, width: 80, height: 80, delete: always}
//	steps:
//	  - begin: b
//	  - move: [0, -150]
//	    expect: {connect: true, mode: insertion-marker, closest: a.next}
//	  - end: true
//	    expect: {parent: {b: a}}
//
// Block specs nest: inputs maps input names to the blocks plugged into
// them and next holds the block below.
//
// Move offsets are relative to where the dragged block was when its begin
// step ran. When a move names no area with over, the area containing the
// block's new top-left corner is used.
//
// Type specs may repeat input rows from extra state, as mutator blocks do:
//
//	- type: if
//	  previous: true
//	  next: true
//	  inputs:
//	    - {name: IF0, kind: value}
//	    - {name: DO0, kind: statement}
//	  repeat:
//	    key: elseif
//	    inputs:
//	      - {name: "IF{i}", kind: value}
//	      - {name: "DO{i}", kind: statement}
//
// # Expectations
//
// connect and delete compare against the preview after move steps and
// against the drop result after end steps. markers counts visible
// insertion markers. parent maps block ids to their expected parent id,
// with "" for top blocks.
package scenario
