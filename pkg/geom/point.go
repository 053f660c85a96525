// Package geom provides the small amount of 2D geometry shared by the block
// graph, the drag engine and the drag surface.
//
// All coordinates are in workspace units unless stated otherwise. The drag
// surface works in screen pixels and converts with the workspace scale.
package geom

import (
	"fmt"
	"math"
)

// Point is a position or an offset in workspace units.
// The zero value is the origin.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both components by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Len() }

// Round rounds both components to the nearest integer.
// The drag surface uses this to keep dragged blocks on whole pixels.
func (p Point) Round() Point { return Point{X: math.Round(p.X), Y: math.Round(p.Y)} }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Min returns the top-left corner of r.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }
