// Package imageio handles the image boundary of the engine: decoding sources
// from disk or the network into pixel grids, encoding results back out, and
// the geometric primitives (rotate, resize, crop, edge filter) the pipeline
// leans on.
//
// All geometry is built on the imaging library so rotation expansion, Lanczos
// resampling and convolution behave consistently across the package.
package imageio

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

// Rotate turns the grid counter-clockwise by angle degrees with bounds
// expansion: the output canvas is large enough to hold every source pixel
// and newly exposed area is transparent.
func Rotate(g grid.Grid, angle float64) grid.Grid {
	if g.Empty() {
		return grid.Grid{}
	}
	rotated := imaging.Rotate(g.ToNRGBA(), angle, image.Transparent.C)
	return grid.FromImage(rotated)
}

// ResizeTo resamples the grid to exactly width x height with a Lanczos filter.
func ResizeTo(g grid.Grid, width, height int) grid.Grid {
	if g.Empty() || width <= 0 || height <= 0 {
		return grid.Grid{}
	}
	if g.Width() == width && g.Height() == height {
		return g.Clone()
	}
	return grid.FromImage(imaging.Resize(g.ToNRGBA(), width, height, imaging.Lanczos))
}

// CropCenter extracts a centered width x height window from the grid.
func CropCenter(g grid.Grid, width, height int) grid.Grid {
	if g.Empty() || width <= 0 || height <= 0 {
		return grid.Grid{}
	}
	return grid.FromImage(imaging.CropCenter(g.ToNRGBA(), width, height))
}

// RestoreDims brings a rotated-back grid to the original target dimensions.
// When the canvas is at least as large as the target in both dimensions the
// symmetric margins are cropped away; an undersized canvas is resampled up
// instead, a silent fallback for rotation geometry edge cases.
func RestoreDims(g grid.Grid, width, height int) grid.Grid {
	if g.Width() >= width && g.Height() >= height {
		return CropCenter(g, width, height)
	}
	return ResizeTo(g, width, height)
}

// edgeKernel is the 3x3 Laplacian used by classic find-edges filters: the
// negated neighborhood around a center weight of 8.
var edgeKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

// EdgeFilter highlights luminance discontinuities. Flat areas map to black
// and edges to bright pixels, which the interval classifiers then threshold
// on lightness.
func EdgeFilter(g grid.Grid) grid.Grid {
	if g.Empty() {
		return grid.Grid{}
	}
	return grid.FromImage(imaging.Convolve3x3(g.ToNRGBA(), edgeKernel, nil))
}
