// Package fonts provides the label font for raster snapshots.
//
// The font is Go Mono from golang.org/x/image, compiled into the binary,
// so snapshots look the same on every machine.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DPI is the resolution faces are created at. At 72 DPI one point is one
// pixel.
const DPI = 72

// Cache for the parsed font (parsed once on first access).
var (
	mono     *truetype.Font
	monoErr  error
	monoOnce sync.Once
)

// Mono returns the parsed Go Mono font.
func Mono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		mono, monoErr = truetype.Parse(gomono.TTF)
		if monoErr != nil {
			monoErr = fmt.Errorf("parse go mono: %w", monoErr)
		}
	})
	return mono, monoErr
}

// MonoFace returns a Go Mono face of the given size in points.
func MonoFace(size float64) (font.Face, error) {
	f, err := Mono()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	}), nil
}
