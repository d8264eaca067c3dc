package imageio

import (
	"testing"

	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

func uniformGrid(w, h int, p grid.Pixel) grid.Grid {
	g := grid.New(w, h)
	for y := range g {
		for x := range g[y] {
			g[y][x] = p
		}
	}
	return g
}

func TestRotateQuarterTurnSwapsDimensions(t *testing.T) {
	g := uniformGrid(8, 4, grid.White)
	r := Rotate(g, 90)
	if r.Width() != 4 || r.Height() != 8 {
		t.Errorf("rotated dimensions = %dx%d, want 4x8", r.Width(), r.Height())
	}
}

func TestRotateExpandsBounds(t *testing.T) {
	g := uniformGrid(10, 10, grid.White)
	r := Rotate(g, 45)
	if r.Width() <= 10 || r.Height() <= 10 {
		t.Errorf("rotation by 45 should expand bounds, got %dx%d", r.Width(), r.Height())
	}
}

func TestRotateRoundTripRestoresDimensions(t *testing.T) {
	for _, angle := range []float64{45, 90, 137, 315} {
		g := uniformGrid(12, 9, grid.White)
		back := Rotate(Rotate(g, angle), 360-angle)
		restored := RestoreDims(back, 12, 9)
		if restored.Width() != 12 || restored.Height() != 9 {
			t.Errorf("angle %v: restored dimensions = %dx%d, want 12x9",
				angle, restored.Width(), restored.Height())
		}
	}
}

func TestRotateEmpty(t *testing.T) {
	if got := Rotate(grid.Grid{}, 90); !got.Empty() {
		t.Errorf("rotating empty grid = %v, want empty", got)
	}
}

func TestResizeTo(t *testing.T) {
	g := uniformGrid(10, 10, grid.White)
	r := ResizeTo(g, 5, 3)
	if r.Width() != 5 || r.Height() != 3 {
		t.Errorf("resized dimensions = %dx%d, want 5x3", r.Width(), r.Height())
	}

	same := ResizeTo(g, 10, 10)
	if same.Width() != 10 || same.Height() != 10 {
		t.Errorf("identity resize changed dimensions to %dx%d", same.Width(), same.Height())
	}
	// Identity resize still returns an independent copy.
	same[0][0] = grid.Black
	if g[0][0] == grid.Black {
		t.Error("identity resize aliases the input grid")
	}
}

func TestCropCenter(t *testing.T) {
	g := grid.New(5, 5)
	for y := range g {
		for x := range g[y] {
			g[y][x] = grid.Pixel{R: uint8(y*5 + x), A: 255}
		}
	}
	c := CropCenter(g, 3, 3)
	if c.Width() != 3 || c.Height() != 3 {
		t.Fatalf("cropped dimensions = %dx%d, want 3x3", c.Width(), c.Height())
	}
	// Center crop of a 5x5 to 3x3 starts at (1,1).
	if c[0][0] != g[1][1] || c[2][2] != g[3][3] {
		t.Error("center crop did not keep the middle window")
	}
}

func TestRestoreDims(t *testing.T) {
	big := uniformGrid(10, 8, grid.White)
	if got := RestoreDims(big, 6, 4); got.Width() != 6 || got.Height() != 4 {
		t.Errorf("oversized restore = %dx%d, want 6x4", got.Width(), got.Height())
	}

	// Undersized canvas falls back to a resize instead of failing.
	small := uniformGrid(3, 2, grid.White)
	if got := RestoreDims(small, 6, 4); got.Width() != 6 || got.Height() != 4 {
		t.Errorf("undersized restore = %dx%d, want 6x4", got.Width(), got.Height())
	}
}

func TestEdgeFilterFlatAreaIsDark(t *testing.T) {
	flat := uniformGrid(9, 9, grid.Pixel{R: 120, G: 120, B: 120, A: 255})
	filtered := EdgeFilter(flat)

	// Interior of a flat image has no discontinuities.
	p := filtered[4][4]
	if p.R != 0 || p.G != 0 || p.B != 0 {
		t.Errorf("flat interior after edge filter = %v, want black", p)
	}
}

func TestEdgeFilterHighlightsBoundary(t *testing.T) {
	g := uniformGrid(10, 10, grid.Black)
	for y := range g {
		for x := 5; x < 10; x++ {
			g[y][x] = grid.White
		}
	}
	filtered := EdgeFilter(g)

	// The column just right of the black/white boundary must light up.
	if p := filtered[5][5]; p.R == 0 && p.G == 0 && p.B == 0 {
		t.Error("edge filter left the boundary dark")
	}
	// Far from the boundary stays dark.
	if p := filtered[5][8]; p.R != 0 || p.G != 0 || p.B != 0 {
		t.Errorf("edge filter lit a flat region: %v", p)
	}
}
