// Package interval implements the strategies that partition each row of a
// pixel grid into sortable intervals.
//
// A strategy produces, per row, a strictly ascending sequence of cut points
// in [1, width] whose final element equals the row width; interval i spans
// pixels [boundary[i-1], boundary[i]). Rows of width zero get an empty list.
//
// Three strategy names (snap, shuffle-total, shuffle-axis) do not produce
// boundaries at all: they select the alternate whole-grid effects and are
// dispatched by the engine, never by this package.
package interval

import (
	"math/rand"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// Strategy identifies an interval strategy or alternate effect.
type Strategy int

const (
	// None spans each row with a single interval.
	None Strategy = iota
	// Random accumulates randomized widths around a characteristic length.
	Random
	// Waves accumulates the characteristic length with small jitter.
	Waves
	// Threshold cuts at pixels whose lightness leaves the threshold band.
	Threshold
	// Edges cuts along an edge-filtered version of the source image.
	Edges
	// File cuts along a generated cellular automaton mask.
	File
	// FileEdges cuts along the edge-filtered cellular automaton mask.
	FileEdges
	// Snap, ShuffleTotal and ShuffleAxis select alternate whole-grid
	// effects instead of producing boundaries.
	Snap
	ShuffleTotal
	ShuffleAxis
)

var names = map[Strategy]string{
	None:         "none",
	Random:       "random",
	Waves:        "waves",
	Threshold:    "threshold",
	Edges:        "edges",
	File:         "file",
	FileEdges:    "file-edges",
	Snap:         "snap",
	ShuffleTotal: "shuffle-total",
	ShuffleAxis:  "shuffle-axis",
}

var byName = func() map[string]Strategy {
	m := make(map[string]Strategy, len(names))
	for s, n := range names {
		m[n] = s
	}
	return m
}()

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}

// Parse resolves a configuration name to a Strategy.
func Parse(name string) (Strategy, error) {
	if s, ok := byName[name]; ok {
		return s, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownFunction, "unknown interval strategy: %q", name)
}

// Names returns all strategy names in a stable order.
func Names() []string {
	return []string{"none", "random", "waves", "threshold", "edges", "file",
		"file-edges", "snap", "shuffle-total", "shuffle-axis"}
}

// IsAlternate reports whether the strategy is one of the whole-grid effects
// that bypass interval generation and sorting.
func (s Strategy) IsAlternate() bool {
	return s == Snap || s == ShuffleTotal || s == ShuffleAxis
}

// NeedsSource reports whether the strategy must reload the original image
// through a Source collaborator.
func (s Strategy) NeedsSource() bool {
	return s == Edges || s == ShuffleTotal || s == ShuffleAxis
}

// Boundaries holds one cut-point list per row.
type Boundaries [][]int

// rowBuilder accumulates a strictly ascending boundary list for one row.
// Cut points outside [1, width) are dropped; the trailing width is appended
// by finish. Duplicate or non-ascending cuts (possible when a randomized
// cursor truncates to the same column twice) produce empty intervals the
// sorter would ignore anyway, so they are skipped here.
type rowBuilder struct {
	width  int
	bounds []int
}

func (b *rowBuilder) add(x int) {
	if x < 1 || x >= b.width {
		return
	}
	if n := len(b.bounds); n > 0 && b.bounds[n-1] >= x {
		return
	}
	b.bounds = append(b.bounds, x)
}

func (b *rowBuilder) finish() []int {
	if b.width <= 0 {
		return []int{}
	}
	return append(b.bounds, b.width)
}

// NoIntervals spans every row with a single whole-width interval.
func NoIntervals(g grid.Grid) Boundaries {
	out := make(Boundaries, g.Height())
	for y := range out {
		b := rowBuilder{width: g.Width()}
		out[y] = b.finish()
	}
	return out
}

// RandomIntervals accumulates widths of clength*(1-U), U uniform in [0,1),
// emitting a cut at each truncated cursor position until the cursor passes
// the row width. A characteristic length of zero cannot advance the cursor
// and degrades to a single whole-row interval.
func RandomIntervals(rng *rand.Rand, g grid.Grid, clength int) Boundaries {
	out := make(Boundaries, g.Height())
	width := g.Width()
	for y := range out {
		b := rowBuilder{width: width}
		if clength > 0 {
			x := 0.0
			for {
				x += float64(clength) * (1 - rng.Float64())
				if x > float64(width) {
					break
				}
				b.add(int(x))
			}
		}
		out[y] = b.finish()
	}
	return out
}

// WaveIntervals accumulates clength plus a small uniform jitter in [0,10],
// keeping the cursor itself as the cut point, so interval widths oscillate
// narrowly around the characteristic length.
func WaveIntervals(rng *rand.Rand, g grid.Grid, clength int) Boundaries {
	out := make(Boundaries, g.Height())
	width := g.Width()
	for y := range out {
		b := rowBuilder{width: width}
		x := 0
		for x <= width {
			x += clength + rng.Intn(11)
			if x > width {
				break
			}
			b.add(x)
		}
		out[y] = b.finish()
	}
	return out
}

// ThresholdIntervals cuts at every pixel whose lightness falls below the
// bottom threshold or above the upper threshold.
func ThresholdIntervals(g grid.Grid, bottom, upper float64) Boundaries {
	out := make(Boundaries, g.Height())
	for y := range out {
		b := rowBuilder{width: g.Width()}
		for x, p := range g[y] {
			l := sortkey.LightnessValue(p)
			if l < bottom || l > upper {
				b.add(x)
			}
		}
		out[y] = b.finish()
	}
	return out
}
