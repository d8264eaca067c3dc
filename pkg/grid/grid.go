// Package grid defines the pixel grid model shared by every stage of the
// sorting pipeline.
//
// A Grid is an ordered sequence of rows of RGBA pixels. All rows must have
// equal length; the empty 0x0 grid is valid and every operation treats it as
// a no-op. Grids convert losslessly to and from image.NRGBA, which is the
// interchange format used with the imaging library for rotation, resizing
// and filtering.
package grid

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// Pixel is an immutable RGBA value with 8-bit channels.
type Pixel struct {
	R, G, B, A uint8
}

// Common pixel values used by the mask strategies.
var (
	Black       = Pixel{0, 0, 0, 255}
	White       = Pixel{255, 255, 255, 255}
	Transparent = Pixel{0, 0, 0, 0}
)

// NRGBA returns the pixel as a color.NRGBA value.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Grid is a rectangular pixel raster, indexed [row][column].
type Grid [][]Pixel

// New creates a width x height grid filled with the zero (transparent) pixel.
func New(width, height int) Grid {
	if width <= 0 || height <= 0 {
		return Grid{}
	}
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]Pixel, width)
	}
	return g
}

// Width returns the row length, or 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Empty reports whether the grid has no pixels.
func (g Grid) Empty() bool {
	return g.Height() == 0 || g.Width() == 0
}

// Validate checks that every row has the same length.
// Ragged grids are rejected before any processing starts.
func (g Grid) Validate() error {
	w := g.Width()
	for y, row := range g {
		if len(row) != w {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"row %d has width %d, want %d", y, len(row), w)
		}
	}
	return nil
}

// Clone returns a deep copy. Mutating the copy never affects the original;
// every algorithm that needs scratch space works on a clone.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]Pixel(nil), row...)
	}
	return out
}

// FromImage converts any image into a Grid, normalizing to NRGBA.
func FromImage(img image.Image) Grid {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Grid{}
	}
	g := make(Grid, h)
	for y := 0; y < h; y++ {
		row := make([]Pixel, w)
		off := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			i := off + x*4
			row[x] = Pixel{
				R: nrgba.Pix[i],
				G: nrgba.Pix[i+1],
				B: nrgba.Pix[i+2],
				A: nrgba.Pix[i+3],
			}
		}
		g[y] = row
	}
	return g
}

// ToNRGBA converts the grid into a freshly allocated image.NRGBA.
// An empty grid yields a zero-sized image.
func (g Grid) ToNRGBA() *image.NRGBA {
	w, h := g.Width(), g.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w && x < len(g[y]); x++ {
			i := img.PixOffset(x, y)
			p := g[y][x]
			img.Pix[i] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = p.A
		}
	}
	return img
}
