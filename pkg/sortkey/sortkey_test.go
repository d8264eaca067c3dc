package sortkey

import (
	"math"
	"testing"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestParse(t *testing.T) {
	for _, name := range Names() {
		k, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q) error = %v, want nil", name, err)
		}
		if k.String() != name {
			t.Errorf("Parse(%q).String() = %q, want %q", name, k.String(), name)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("brightness")
	if err == nil {
		t.Fatal("Parse(brightness) error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeUnknownFunction) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownFunction)
	}
}

func TestLightness(t *testing.T) {
	tests := []struct {
		pixel grid.Pixel
		want  float64
	}{
		{grid.Pixel{R: 0, G: 0, B: 0, A: 255}, 0.0},
		{grid.Pixel{R: 255, G: 255, B: 255, A: 255}, 1.0},
		{grid.Pixel{R: 128, G: 128, B: 128, A: 255}, 128.0 / 255.0},
		{grid.Pixel{R: 255, G: 0, B: 0, A: 255}, 1.0}, // value is max channel
	}
	for _, tt := range tests {
		if got := Lightness.Value(tt.pixel); !almostEqual(got, tt.want) {
			t.Errorf("Lightness.Value(%v) = %v, want %v", tt.pixel, got, tt.want)
		}
	}
}

func TestHueNormalized(t *testing.T) {
	tests := []struct {
		pixel grid.Pixel
		want  float64
	}{
		{grid.Pixel{R: 255, G: 0, B: 0, A: 255}, 0.0},         // red
		{grid.Pixel{R: 0, G: 255, B: 0, A: 255}, 1.0 / 3.0},   // green, 120 degrees
		{grid.Pixel{R: 0, G: 0, B: 255, A: 255}, 2.0 / 3.0},   // blue, 240 degrees
		{grid.Pixel{R: 255, G: 255, B: 0, A: 255}, 1.0 / 6.0}, // yellow, 60 degrees
	}
	for _, tt := range tests {
		if got := Hue.Value(tt.pixel); !almostEqual(got, tt.want) {
			t.Errorf("Hue.Value(%v) = %v, want %v", tt.pixel, got, tt.want)
		}
	}
}

func TestSaturation(t *testing.T) {
	if got := Saturation.Value(grid.Pixel{R: 128, G: 128, B: 128, A: 255}); !almostEqual(got, 0) {
		t.Errorf("Saturation of gray = %v, want 0", got)
	}
	if got := Saturation.Value(grid.Pixel{R: 255, G: 0, B: 0, A: 255}); !almostEqual(got, 1) {
		t.Errorf("Saturation of pure red = %v, want 1", got)
	}
}

func TestChannelKeys(t *testing.T) {
	p := grid.Pixel{R: 10, G: 20, B: 30, A: 40}

	cases := []struct {
		key  Key
		want float64
	}{
		{Intensity, 60},
		{Minimum, 10},
		{Maximum, 30},
		{Red, 10},
		{Green, 20},
		{Blue, 30},
		{Alpha, 40},
	}
	for _, tt := range cases {
		if got := tt.key.Value(p); got != tt.want {
			t.Errorf("%s.Value(%v) = %v, want %v", tt.key, p, got, tt.want)
		}
	}
}

func TestLightnessValueMatchesKey(t *testing.T) {
	p := grid.Pixel{R: 13, G: 200, B: 77, A: 255}
	if LightnessValue(p) != Lightness.Value(p) {
		t.Error("LightnessValue disagrees with Lightness.Value")
	}
}
