// Package automata generates elementary cellular automaton patterns.
//
// An elementary CA is a one-dimensional binary automaton evolved row by row
// using a fixed 3-neighbor rule table. The generator renders the pattern as
// a black/white image used both as a standalone effect and as a mask source
// for the file and file-edges interval strategies.
//
// Generation runs at a scaled-down resolution for performance and is then
// resampled smoothly to the requested size, which produces the soft mask
// boundaries the interval de-noise pass expects.
package automata

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

// RecommendedRules are rule numbers known to produce interesting patterns.
// See https://en.wikipedia.org/wiki/Elementary_cellular_automaton
var RecommendedRules = []int{26, 19, 23, 25, 35, 106, 11, 110, 45, 41, 105, 54, 3, 15, 9, 154, 142}

// RuleUnset marks an absent rule number; Resolve replaces it with a random
// recommended rule.
const RuleUnset = -1

// Resolve returns rule if it is a valid rule number in [0,255], otherwise a
// uniformly chosen entry from RecommendedRules. An out-of-range rule is never
// an error; the fallback is part of the generator's contract.
func Resolve(rng *rand.Rand, rule int) int {
	if rule >= 0 && rule <= 255 {
		return rule
	}
	return RecommendedRules[rng.Intn(len(RecommendedRules))]
}

// table maps a (left, center, right) neighborhood to the next cell state.
// Index layout: left<<2 | center<<1 | right.
type table [8]bool

// ruleTable expands a rule number into its neighborhood table by repeated
// mod-2 decomposition, lowest bit first, enumerating triples in the order
// (F,F,F), (F,F,T), (F,T,F), ... (T,T,T).
func ruleTable(rule int) table {
	var t table
	for i := range t {
		t[i] = rule%2 == 1
		rule /= 2
	}
	return t
}

func (t table) next(left, center, right bool) bool {
	i := 0
	if left {
		i |= 4
	}
	if center {
		i |= 2
	}
	if right {
		i |= 1
	}
	return t[i]
}

func coin(rng *rand.Rand) bool {
	return rng.Intn(2) == 1
}

// Pattern evolves the automaton for the given rule at exactly width x height
// cells and returns the boolean state grid. Row 0 is seeded with independent
// fair coin flips; on every later row the two edge cells are coin flips and
// interior cells follow the rule table applied to the three cells above.
//
// rule is resolved with Resolve first, so RuleUnset and out-of-range values
// select a random recommended rule.
func Pattern(rng *rand.Rand, width, height, rule int) [][]bool {
	if width <= 0 || height <= 0 {
		return nil
	}

	t := ruleTable(Resolve(rng, rule))
	ca := make([][]bool, height)

	ca[0] = make([]bool, width)
	for x := range ca[0] {
		ca[0][x] = coin(rng)
	}

	for y := 1; y < height; y++ {
		row := make([]bool, width)
		row[0] = coin(rng)
		for x := 1; x < width-1; x++ {
			row[x] = t.next(ca[y-1][x-1], ca[y-1][x], ca[y-1][x+1])
		}
		if width > 1 {
			row[width-1] = coin(rng)
		}
		ca[y] = row
	}

	return ca
}

// scaled returns the evolution resolution for a target dimension: a quarter
// of the target below 2500 pixels, an eighth above, never less than one cell.
func scaled(dim int) int {
	s := dim / 4
	if dim > 2500 {
		s = dim / 8
	}
	if s < 1 {
		s = 1
	}
	return s
}

// Generate renders the automaton as a width x height pixel grid.
// Live cells map to white, dead cells to black. The pattern is evolved at a
// scaled-down resolution and resampled to the target size with a Lanczos
// filter, so cell boundaries come out smooth rather than blocky.
func Generate(rng *rand.Rand, width, height, rule int) grid.Grid {
	if width <= 0 || height <= 0 {
		return grid.Grid{}
	}

	sw, sh := scaled(width), scaled(height)
	pattern := Pattern(rng, sw, sh, rule)

	img := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			i := img.PixOffset(x, y)
			v := uint8(0)
			if pattern[y][x] {
				v = 255
			}
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}

	if sw != width || sh != height {
		return grid.FromImage(imaging.Resize(img, width, height, imaging.Lanczos))
	}
	return grid.FromImage(img)
}
