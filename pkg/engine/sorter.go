package engine

import (
	"math/rand"
	"sort"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// SortRows applies the sort key within each interval of each row, gated per
// interval by the randomness percentage: a uniform draw in [0,100) at or
// above the percentage sorts the interval, anything below leaves it
// untouched. A percentage of 0 sorts every interval and 100 sorts none.
// Sorting is stable, so key ties keep their original order.
//
// The input grid is never mutated. If a row's boundary list reconstructs
// fewer pixels than the row width, the row is padded by repeating its last
// original pixel; this is a recovery policy, not an error.
func SortRows(rng *rand.Rand, g grid.Grid, bounds interval.Boundaries, key sortkey.Key, randomness float64) grid.Grid {
	return sortRows(rng, g, bounds, key, randomness, nil)
}

// sortRows is SortRows with an optional per-row progress callback.
func sortRows(rng *rand.Rand, g grid.Grid, bounds interval.Boundaries, key sortkey.Key, randomness float64, report func(done, total int)) grid.Grid {
	out := make(grid.Grid, g.Height())
	for y, row := range g {
		out[y] = sortRow(rng, row, bounds[y], key, randomness)
		if report != nil {
			report(y+1, g.Height())
		}
	}
	return out
}

func sortRow(rng *rand.Rand, row []grid.Pixel, bounds []int, key sortkey.Key, randomness float64) []grid.Pixel {
	sorted := make([]grid.Pixel, 0, len(row))
	start := 0
	for _, end := range bounds {
		if end > len(row) {
			end = len(row)
		}
		if end <= start {
			continue
		}
		seg := make([]grid.Pixel, end-start)
		copy(seg, row[start:end])
		if rng.Float64()*100 >= randomness {
			sort.SliceStable(seg, func(i, j int) bool {
				return key.Value(seg[i]) < key.Value(seg[j])
			})
		}
		sorted = append(sorted, seg...)
		start = end
	}

	for len(sorted) < len(row) {
		sorted = append(sorted, row[len(row)-1])
	}
	return sorted
}
