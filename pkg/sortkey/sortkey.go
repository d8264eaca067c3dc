// Package sortkey defines the closed family of pixel ranking functions used
// to order pixels within an interval.
//
// Each key maps a pixel to a real number; pixels are sorted ascending by that
// number with a stable sort, so ties keep their original relative order.
// Keys are a closed enum with an explicit name mapping; unknown names are
// rejected at configuration-parse time with an UNKNOWN_FUNCTION error.
package sortkey

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
)

// Key identifies one of the pixel ranking functions.
type Key int

const (
	// Lightness ranks by the HSV value component of the normalized color.
	Lightness Key = iota
	// Intensity ranks by the sum of the R, G and B channels.
	Intensity
	// Hue ranks by the HSV hue, normalized to [0,1).
	Hue
	// Saturation ranks by the HSV saturation component.
	Saturation
	// Minimum ranks by the smallest of the R, G and B channels.
	Minimum
	// Maximum ranks by the largest of the R, G and B channels.
	Maximum
	// Red, Green, Blue and Alpha rank by a single channel.
	Red
	Green
	Blue
	Alpha
)

var names = map[Key]string{
	Lightness:  "lightness",
	Intensity:  "intensity",
	Hue:        "hue",
	Saturation: "saturation",
	Minimum:    "minimum",
	Maximum:    "maximum",
	Red:        "red",
	Green:      "green",
	Blue:       "blue",
	Alpha:      "alpha",
}

var byName = func() map[string]Key {
	m := make(map[string]Key, len(names))
	for k, n := range names {
		m[n] = k
	}
	return m
}()

// String returns the configuration name of the key.
func (k Key) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

// Parse resolves a configuration name to a Key.
// There is no silent default: callers wanting one must supply it themselves.
func Parse(name string) (Key, error) {
	if k, ok := byName[name]; ok {
		return k, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownFunction, "unknown sort key: %q", name)
}

// Names returns all key names in a stable order, for help text and APIs.
func Names() []string {
	return []string{"lightness", "intensity", "hue", "saturation", "minimum",
		"maximum", "red", "green", "blue", "alpha"}
}

// Value computes the ranking value for a pixel. Pure and total: every pixel
// maps to a finite float64.
func (k Key) Value(p grid.Pixel) float64 {
	switch k {
	case Intensity:
		return float64(p.R) + float64(p.G) + float64(p.B)
	case Minimum:
		return float64(min(p.R, p.G, p.B))
	case Maximum:
		return float64(max(p.R, p.G, p.B))
	case Red:
		return float64(p.R)
	case Green:
		return float64(p.G)
	case Blue:
		return float64(p.B)
	case Alpha:
		return float64(p.A)
	}

	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	h, s, v := c.Hsv()
	switch k {
	case Hue:
		return h / 360.0
	case Saturation:
		return s
	default: // Lightness
		return v
	}
}

// LightnessValue is the classification metric used by the threshold and edge
// strategies. It equals Lightness.Value but avoids allocating a Key at call
// sites that always classify by lightness.
func LightnessValue(p grid.Pixel) float64 {
	return Lightness.Value(p)
}
