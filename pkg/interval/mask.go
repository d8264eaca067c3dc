package interval

import (
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// Mask is a binary cut map: true marks a cut pixel.
type Mask [][]bool

// ClassifyEdges builds a mask from an edge-filtered grid. Pixels whose
// lightness falls below the bottom threshold are background; everything at or
// above it (the detected edges) becomes a cut.
func ClassifyEdges(g grid.Grid, bottom float64) Mask {
	m := make(Mask, g.Height())
	for y := range m {
		row := make([]bool, g.Width())
		for x, p := range g[y] {
			row[x] = sortkey.LightnessValue(p) >= bottom
		}
		m[y] = row
	}
	return m
}

// ClassifyBlack builds a mask from a black/white grid such as a generated
// automaton pattern. Only exactly opaque black pixels become cuts; resampling
// artifacts near cell boundaries stay background.
func ClassifyBlack(g grid.Grid) Mask {
	m := make(Mask, g.Height())
	for y := range m {
		row := make([]bool, g.Width())
		for x, p := range g[y] {
			row[x] = p == grid.Black
		}
		m[y] = row
	}
	return m
}

// Denoise thins horizontal runs of cut pixels in place. It sweeps rows bottom
// to top and columns right to left, clearing the right cell of every adjacent
// cut pair, which collapses each run to its leftmost pixel. The first two rows
// and columns are outside the sweep window and keep whatever they hold.
func (m Mask) Denoise() {
	for y := len(m) - 1; y >= 2; y-- {
		for x := len(m[y]) - 1; x >= 2; x-- {
			if m[y][x] && m[y][x-1] {
				m[y][x] = false
			}
		}
	}
}

// Cuts converts the mask into per-row boundary lists: one cut point per
// masked pixel, capped with the row width.
func (m Mask) Cuts() Boundaries {
	out := make(Boundaries, len(m))
	for y := range m {
		b := rowBuilder{width: len(m[y])}
		for x, cut := range m[y] {
			if cut {
				b.add(x)
			}
		}
		out[y] = b.finish()
	}
	return out
}

// EdgeIntervals cuts rows wherever the edge-filtered grid crosses the bottom
// lightness threshold, after de-noising the resulting cut map.
func EdgeIntervals(filtered grid.Grid, bottom float64) Boundaries {
	m := ClassifyEdges(filtered, bottom)
	m.Denoise()
	return m.Cuts()
}

// MaskIntervals cuts rows at the exactly-black pixels of a mask grid, after
// de-noising the resulting cut map.
func MaskIntervals(mask grid.Grid) Boundaries {
	m := ClassifyBlack(mask)
	m.Denoise()
	return m.Cuts()
}
