// Package render decides how drag-time connection previews look and
// produces the offline visualizations of a workspace.
//
// # Overview
//
// While a block is dragged the drag engine asks a [Policy] which preview to
// show for the current candidate pair:
//
//   - [InsertionMarker]: a translucent clone of the dragged block is
//     connected where the block would land
//   - [InputOutline]: the target input is outlined
//   - [ReplacementFade]: the block that would be displaced is faded
//
// and whether the candidate connection glyph should be highlighted.
//
// # Built-in Policies
//
// [Lookup] resolves a policy by name:
//
//	p, err := render.Lookup("zelos")
//
// "classic" shows insertion markers and falls back to a replacement fade
// when the displaced block could not be reattached. "zelos" additionally
// outlines empty value inputs and fades occupied ones.
//
// # Visualizations
//
// The [nodelink] subpackage exports the block graph as Graphviz DOT and SVG.
// The [snapshot] subpackage rasterizes a workspace, including the live
// previews and the drag surface, to PNG.
//
// [nodelink]: github.com/matzehuels/blocksnap/pkg/render/nodelink
// [snapshot]: github.com/matzehuels/blocksnap/pkg/render/snapshot
package render
