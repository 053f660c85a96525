// Package nodelink renders a workspace's block graph as a node-link
// diagram.
//
// # Overview
//
// Every document block becomes a box and every connection an arrow from
// the parent block to the child. Arrows into an input carry the input
// name; arrows to the next block in a stack are unlabeled. The diagram is
// useful for checking what a drag did to the structure, which the spatial
// layout of the blocks hides.
//
// # Usage
//
//	dot := nodelink.ToDOT(ws, nodelink.Options{Markers: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// With [Options.Markers] set, insertion markers on screen are included as
// dashed boxes, so a diagram taken mid-drag shows the preview in place.
// Faded blocks are filled grey and outlined inputs have a thick orange
// arrow.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
