// Package effects implements the whole-grid alternate effects that bypass
// interval generation and sorting entirely: stochastic erasure (snap) and the
// two shuffles. Every effect works on a defensive copy and never mutates its
// input grid.
package effects

import (
	"math/rand"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

// Snap clears exactly floor(width*height/2) distinct pixels to transparent
// black, chosen uniformly without replacement. All other pixels keep their
// original channel values.
func Snap(rng *rand.Rand, g grid.Grid) grid.Grid {
	out := g.Clone()
	w, h := g.Width(), g.Height()
	total := w * h
	if total == 0 {
		return out
	}

	snapped := total / 2
	for _, i := range rng.Perm(total)[:snapped] {
		out[i/w][i%w] = grid.Transparent
	}
	return out
}

// ShuffleRows independently permutes the pixels within each row.
// Row membership is preserved; intra-row order is destroyed.
func ShuffleRows(rng *rand.Rand, g grid.Grid) grid.Grid {
	out := g.Clone()
	for _, row := range out {
		rng.Shuffle(len(row), func(i, j int) {
			row[i], row[j] = row[j], row[i]
		})
	}
	return out
}

// ShuffleRowOrder permutes the order of entire rows within the grid.
// Pixel content within each row is untouched.
func ShuffleRowOrder(rng *rand.Rand, g grid.Grid) grid.Grid {
	out := g.Clone()
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
