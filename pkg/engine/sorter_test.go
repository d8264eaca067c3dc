package engine

import (
	"math/rand"
	"testing"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

func gray(v uint8) grid.Pixel {
	return grid.Pixel{R: v, G: v, B: v, A: 255}
}

func TestSortRowsSortsWholeRow(t *testing.T) {
	g := grid.Grid{{gray(200), gray(50), gray(120), gray(10)}}
	bounds := interval.Boundaries{{4}}

	out := SortRows(rand.New(rand.NewSource(1)), g, bounds, sortkey.Lightness, 0)
	want := []uint8{10, 50, 120, 200}
	for x, p := range out[0] {
		if p.R != want[x] {
			t.Fatalf("row = %v, want ascending %v", out[0], want)
		}
	}
}

func TestSortRowsRespectsIntervals(t *testing.T) {
	g := grid.Grid{{gray(200), gray(50), gray(120), gray(10)}}
	bounds := interval.Boundaries{{2, 4}}

	out := SortRows(rand.New(rand.NewSource(1)), g, bounds, sortkey.Lightness, 0)
	// Each half is sorted independently.
	want := []uint8{50, 200, 10, 120}
	for x, p := range out[0] {
		if p.R != want[x] {
			t.Fatalf("row = %v, want %v", out[0], want)
		}
	}
}

func TestSortRowsFullRandomnessIsIdentity(t *testing.T) {
	g := grid.Grid{{gray(200), gray(50), gray(120), gray(10)}}
	bounds := interval.Boundaries{{1, 2, 3, 4}}

	out := SortRows(rand.New(rand.NewSource(1)), g, bounds, sortkey.Lightness, 100)
	for x, p := range out[0] {
		if p != g[0][x] {
			t.Fatalf("row changed at x=%d with randomness 100", x)
		}
	}
}

func TestSortRowsStable(t *testing.T) {
	// All pixels tie under the Red key; order must survive.
	row := []grid.Pixel{
		{R: 5, G: 3, A: 255},
		{R: 5, G: 1, A: 255},
		{R: 5, G: 2, A: 255},
	}
	g := grid.Grid{row}
	out := SortRows(rand.New(rand.NewSource(1)), g, interval.Boundaries{{3}}, sortkey.Red, 0)
	for x, p := range out[0] {
		if p != row[x] {
			t.Fatalf("stable sort reordered tied pixels: %v", out[0])
		}
	}
}

func TestSortRowsPadsShortRow(t *testing.T) {
	g := grid.Grid{{gray(1), gray(2), gray(3), gray(4)}}
	// Malformed boundary list covering only two pixels.
	bounds := interval.Boundaries{{2}}

	out := SortRows(rand.New(rand.NewSource(1)), g, bounds, sortkey.Lightness, 0)
	if len(out[0]) != 4 {
		t.Fatalf("row length = %d, want 4", len(out[0]))
	}
	// Missing pixels are the last original pixel repeated.
	if out[0][2] != gray(4) || out[0][3] != gray(4) {
		t.Errorf("row = %v, want padding with %v", out[0], gray(4))
	}
}

func TestSortRowsClampsOversizedBoundary(t *testing.T) {
	g := grid.Grid{{gray(9), gray(1)}}
	bounds := interval.Boundaries{{5}}

	out := SortRows(rand.New(rand.NewSource(1)), g, bounds, sortkey.Lightness, 0)
	if len(out[0]) != 2 {
		t.Fatalf("row length = %d, want 2", len(out[0]))
	}
	if out[0][0] != gray(1) || out[0][1] != gray(9) {
		t.Errorf("row = %v, want sorted", out[0])
	}
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	g := grid.Grid{{gray(200), gray(50), gray(120)}}
	want := g.Clone()

	SortRows(rand.New(rand.NewSource(1)), g, interval.Boundaries{{3}}, sortkey.Lightness, 0)
	for x := range g[0] {
		if g[0][x] != want[0][x] {
			t.Fatal("input grid mutated")
		}
	}
}
