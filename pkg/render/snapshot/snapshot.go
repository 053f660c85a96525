package snapshot

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/drag"
	"github.com/matzehuels/blocksnap/pkg/fonts"
	"github.com/matzehuels/blocksnap/pkg/geom"
)

// Defaults.
const (
	DefaultScale   = 1.0
	DefaultPadding = 20.0
	DefaultOpacity = 0.8
	fontSize       = 11.0
	slotWidth      = 16.0
	slotHeight     = 14.0
)

// Area is a labeled rectangle such as a trash can.
type Area struct {
	Label string
	Rect  geom.Rect
}

// Options configures [Render].
type Options struct {
	// Scale is pixels per workspace unit. Defaults to DefaultScale.
	Scale float64
	// Padding around the content, in workspace units. Defaults to
	// DefaultPadding.
	Padding float64

	// Areas are drawn behind the blocks.
	Areas []Area

	// Dragged is the top block of a stack held on the drag surface. The
	// stack is drawn last, moved by DragOffset, at DragOpacity.
	Dragged    blocks.Block
	DragOffset geom.Point
	// DragOpacity defaults to DefaultOpacity.
	DragOpacity float64

	// Line is the connection line of an outline or fade preview.
	Line drag.Line
}

func (o *Options) setDefaults() {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.DragOpacity <= 0 || o.DragOpacity > 1 {
		o.DragOpacity = DefaultOpacity
	}
}

// item is one block to draw with its on-screen offset and opacity.
type item struct {
	b      blocks.Block
	offset geom.Point
	alpha  float64
}

// Render rasterizes ws. Document blocks are drawn in paint order, then the
// visible insertion markers, then the dragged stack.
func Render(ws *blocks.Workspace, opts Options) (image.Image, error) {
	dc, err := draw(ws, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG rasterizes ws and encodes the result as PNG.
func RenderPNG(ws *blocks.Workspace, opts Options) ([]byte, error) {
	dc, err := draw(ws, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func draw(ws *blocks.Workspace, opts Options) (*gg.Context, error) {
	opts.setDefaults()
	face, err := fonts.MonoFace(fontSize * opts.Scale)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	items := collect(ws, opts)
	lo, hi := extent(items, opts)
	pad := geom.Pt(opts.Padding, opts.Padding)
	lo, hi = lo.Sub(pad), hi.Add(pad)

	w := int(math.Ceil((hi.X - lo.X) * opts.Scale))
	h := int(math.Ceil((hi.Y - lo.Y) * opts.Scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	c := canvas{dc: dc, origin: lo, scale: opts.Scale}
	for _, a := range opts.Areas {
		c.area(a)
	}
	for _, it := range items {
		c.block(it)
	}
	c.line(opts.Line)
	return dc, nil
}

func collect(ws *blocks.Workspace, opts Options) []item {
	var dragged map[blocks.Block]bool
	if opts.Dragged != nil {
		dragged = make(map[blocks.Block]bool)
		for _, b := range opts.Dragged.Descendants() {
			dragged[b] = true
		}
	}
	var items, held []item
	for _, b := range ws.Blocks() {
		if dragged[b] {
			held = append(held, item{b: b, offset: opts.DragOffset, alpha: opts.DragOpacity})
			continue
		}
		alpha := 1.0
		if b.Faded() {
			alpha = 0.5
		}
		items = append(items, item{b: b, alpha: alpha})
	}
	for _, m := range ws.Markers() {
		if m.Visible() {
			items = append(items, item{b: m, alpha: 1})
		}
	}
	return append(items, held...)
}

func extent(items []item, opts Options) (lo, hi geom.Point) {
	first := true
	grow := func(p geom.Point) {
		if first {
			lo, hi, first = p, p, false
			return
		}
		lo = geom.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geom.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	rect := func(r geom.Rect) {
		grow(r.Min())
		grow(geom.Pt(r.X+r.Width, r.Y+r.Height))
	}
	for _, it := range items {
		r := it.b.Bounds()
		r.X += it.offset.X
		r.Y += it.offset.Y
		rect(r)
	}
	for _, a := range opts.Areas {
		rect(a.Rect)
	}
	if opts.Line.Active {
		rad := geom.Pt(drag.IndicatorRadius, drag.IndicatorRadius)
		rect(geom.Rect{X: opts.Line.Indicator.X - rad.X, Y: opts.Line.Indicator.Y - rad.Y, Width: 2 * rad.X, Height: 2 * rad.Y})
		grow(opts.Line.From)
		grow(opts.Line.To)
	}
	return lo, hi
}

type canvas struct {
	dc     *gg.Context
	origin geom.Point
	scale  float64
}

func (c canvas) pt(p geom.Point) (float64, float64) {
	return (p.X - c.origin.X) * c.scale, (p.Y - c.origin.Y) * c.scale
}

func (c canvas) area(a Area) {
	x, y := c.pt(a.Rect.Min())
	w, h := a.Rect.Width*c.scale, a.Rect.Height*c.scale
	c.dc.SetRGBA(0.9, 0.3, 0.3, 0.15)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
	c.dc.SetRGBA(0.8, 0.2, 0.2, 1)
	c.dc.SetLineWidth(1)
	c.dc.SetDash(6, 4)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
	c.dc.SetDash()
	c.dc.DrawStringAnchored(a.Label, x+w/2, y+h/2, 0.5, 0.5)
}

func (c canvas) block(it item) {
	b := it.b
	bw, bh := b.Size()
	x, y := c.pt(b.Position().Add(it.offset))
	w, h := bw*c.scale, bh*c.scale
	r := 4 * c.scale

	if b.IsInsertionMarker() {
		c.dc.SetRGBA(0.55, 0.55, 0.55, 0.6*it.alpha)
		c.dc.DrawRoundedRectangle(x, y, w, h, r)
		c.dc.Fill()
		c.dc.SetRGBA(0.3, 0.3, 0.3, it.alpha)
		c.dc.SetDash(4, 3)
		c.dc.DrawRoundedRectangle(x, y, w, h, r)
		c.dc.Stroke()
		c.dc.SetDash()
		return
	}

	cr, cg, cb := typeColor(b.Type())
	c.dc.SetRGBA(cr, cg, cb, it.alpha)
	c.dc.DrawRoundedRectangle(x, y, w, h, r)
	c.dc.Fill()
	c.dc.SetRGBA(0, 0, 0, 0.6*it.alpha)
	c.dc.SetLineWidth(1)
	c.dc.DrawRoundedRectangle(x, y, w, h, r)
	c.dc.Stroke()

	c.dc.SetRGBA(1, 1, 1, it.alpha)
	c.dc.DrawStringAnchored(b.ID(), x+4*c.scale, y+4*c.scale, 0, 1)

	for _, in := range b.Inputs() {
		conn := in.Connection()
		if conn == nil || !in.Outlined() {
			continue
		}
		sx, sy := c.pt(conn.Position().Add(it.offset))
		c.dc.SetRGB(1, 0.6, 0)
		c.dc.SetLineWidth(2 * c.scale)
		c.dc.DrawRectangle(sx, sy-slotHeight*c.scale/2, slotWidth*c.scale, slotHeight*c.scale)
		c.dc.Stroke()
	}
	for _, conn := range b.Connections(false) {
		if !conn.Highlighted() {
			continue
		}
		cx, cy := c.pt(conn.Position().Add(it.offset))
		c.dc.SetRGB(1, 0.85, 0)
		c.dc.DrawCircle(cx, cy, 4*c.scale)
		c.dc.Fill()
	}
}

func (c canvas) line(l drag.Line) {
	if !l.Active {
		return
	}
	c.dc.SetRGB(1, 0.6, 0)
	c.dc.SetLineWidth(1.5 * c.scale)
	ix, iy := c.pt(l.Indicator)
	c.dc.DrawCircle(ix, iy, drag.IndicatorRadius*c.scale)
	c.dc.Stroke()
	if !l.Visible() {
		return
	}
	fx, fy := c.pt(l.From)
	tx, ty := c.pt(l.To)
	c.dc.DrawLine(fx, fy, tx, ty)
	c.dc.Stroke()
}

// typeColor picks a stable mid-tone color for a block type.
func typeColor(typ string) (r, g, b float64) {
	h := fnv.New32a()
	h.Write([]byte(typ))
	c := colorful.Hsl(float64(h.Sum32()%360), 0.45, 0.45)
	return c.R, c.G, c.B
}
