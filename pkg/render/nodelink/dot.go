package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blocksnap/pkg/blocks"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes type, position and extra state in node labels.
	// When false, only the block ID is shown.
	Detailed bool

	// Markers includes visible insertion markers, drawn dashed. Without
	// it, blocks below a marker appear detached from the block above.
	Markers bool
}

// ToDOT converts the block graph of ws to Graphviz DOT. Edges run from
// parent to child; edges into an input are labeled with the input name.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Faded blocks are filled grey. An outlined input gets a dashed orange
// arrow to a point standing in for the block that would be dropped there.
func ToDOT(ws *blocks.Workspace, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := nodesOf(ws, opts.Markers)
	for _, b := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID(), strings.Join(fmtAttrs(b, fmtLabel(b, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	included := make(map[blocks.Block]bool, len(nodes))
	for _, b := range nodes {
		included[b] = true
	}
	for _, b := range nodes {
		for _, in := range b.Inputs() {
			c := in.Connection()
			if c == nil {
				continue
			}
			if in.Outlined() {
				slot := b.ID() + "/" + in.Name
				fmt.Fprintf(&buf, "  %q [shape=point, width=0.2, color=orange];\n", slot)
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed, color=orange, penwidth=3];\n", b.ID(), slot, in.Name)
				continue
			}
			if !included[c.TargetBlock()] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", b.ID(), c.TargetBlock().ID(), in.Name)
		}
		if next := b.NextBlock(); next != nil && included[next] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", b.ID(), next.ID())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodesOf(ws *blocks.Workspace, markers bool) []blocks.Block {
	var nodes []blocks.Block
	for _, b := range ws.Blocks() {
		nodes = append(nodes, b)
	}
	if markers {
		for _, m := range ws.Markers() {
			if m.Visible() {
				nodes = append(nodes, m)
			}
		}
	}
	return nodes
}

func fmtLabel(b blocks.Block, detailed bool) string {
	if !detailed {
		return b.ID()
	}

	parts := []string{
		fmt.Sprintf("type: %s", b.Type()),
		fmt.Sprintf("pos: %v", b.Position()),
	}
	state := b.ExtraState()
	for _, k := range slices.Sorted(maps.Keys(state)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, state[k]))
	}
	if b.Collapsed() {
		parts = append(parts, "collapsed")
	}

	return b.ID() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(b blocks.Block, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case b.IsInsertionMarker():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	case b.Faded():
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox
// starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
