// Package preset bundles named parameter sets for the sorting engine.
//
// Built-in presets mirror the classic configurations people reach for first;
// several of them draw their parameters from the injected random source, so
// "main" or "random" give a different look every run. User presets are
// persisted through a Store, either TOML files on disk or a MongoDB
// collection for the API server.
package preset

import (
	"math/rand"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/engine"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// Preset is a named, serializable engine configuration.
type Preset struct {
	Name            string  `toml:"name" bson:"_id" json:"name"`
	Description     string  `toml:"description" bson:"description" json:"description"`
	Strategy        string  `toml:"strategy" bson:"strategy" json:"strategy"`
	Key             string  `toml:"key" bson:"key" json:"key"`
	BottomThreshold float64 `toml:"bottom_threshold" bson:"bottom_threshold" json:"bottom_threshold"`
	UpperThreshold  float64 `toml:"upper_threshold" bson:"upper_threshold" json:"upper_threshold"`
	CharLength      int     `toml:"characteristic_length" bson:"characteristic_length" json:"characteristic_length"`
	Randomness      float64 `toml:"randomness" bson:"randomness" json:"randomness"`
	Angle           float64 `toml:"angle" bson:"angle" json:"angle"`
	Rule            int     `toml:"rule" bson:"rule" json:"rule"`
}

// Params converts the preset into validated engine parameters.
// Unknown strategy or key names fail with UNKNOWN_FUNCTION; out-of-range
// values fail with INVALID_PARAMETER.
func (p Preset) Params() (engine.Params, error) {
	out := engine.DefaultParams()

	strategy, err := interval.Parse(p.Strategy)
	if err != nil {
		return engine.Params{}, err
	}
	key, err := sortkey.Parse(p.Key)
	if err != nil {
		return engine.Params{}, err
	}

	out.Strategy = strategy
	out.Key = key
	out.BottomThreshold = p.BottomThreshold
	out.UpperThreshold = p.UpperThreshold
	out.CharLength = p.CharLength
	out.Randomness = p.Randomness
	out.Angle = p.Angle
	out.Rule = p.Rule

	if err := out.Validate(); err != nil {
		return engine.Params{}, err
	}
	return out, nil
}

// Validate checks the preset name and its parameter conversion.
func (p Preset) Validate() error {
	if err := errors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	_, err := p.Params()
	return err
}

// classicKeys are the sort keys the randomized presets draw from.
var classicKeys = []string{"lightness", "hue", "intensity", "minimum", "saturation"}

// coreStrategies are the boundary strategies safe for fully randomized
// presets; the mask and alternate strategies need extra inputs.
var coreStrategies = []string{"random", "threshold", "edges", "waves", "none"}

// base returns a preset carrying the engine defaults, ready for overrides.
func base(name, description string) Preset {
	d := engine.DefaultParams()
	return Preset{
		Name:            name,
		Description:     description,
		Strategy:        d.Strategy.String(),
		Key:             d.Key.String(),
		BottomThreshold: d.BottomThreshold,
		UpperThreshold:  d.UpperThreshold,
		CharLength:      d.CharLength,
		Randomness:      d.Randomness,
		Angle:           d.Angle,
		Rule:            automata.RuleUnset,
	}
}

// Builtins generates the built-in presets. Some parameters are drawn from
// rng, so each call yields a fresh variation; every returned preset is valid.
func Builtins(rng *rand.Rand) []Preset {
	main := base("main", "Randomized classic: random intervals sorted by intensity")
	main.Strategy = "random"
	main.Key = "intensity"
	main.Randomness = float64(35 + rng.Intn(30))
	main.CharLength = 150 + 25*rng.Intn(8)
	main.Angle = float64(rng.Intn(360))

	file := base("file", "Edge intervals with a high randomized threshold")
	file.Strategy = "edges"
	file.Key = "minimum"
	file.Randomness = float64(15 + rng.Intn(50))
	file.BottomThreshold = float64(65+rng.Intn(25)) / 100
	file.UpperThreshold = 0.95

	random := base("random", "Randomness in every parameter")
	random.Strategy = coreStrategies[rng.Intn(len(coreStrategies))]
	random.Key = classicKeys[rng.Intn(len(classicKeys))]
	random.Angle = float64(rng.Intn(360))
	random.CharLength = 50 + 25*rng.Intn(18)
	random.UpperThreshold = float64(50+5*rng.Intn(10)) / 100
	random.BottomThreshold = float64(10+5*rng.Intn(8)) / 100
	random.Randomness = float64(5 + rng.Intn(70))

	kims := base("kims", "Vertical threshold sort after the original processing sketch")
	kims.Strategy = "threshold"
	kims.Key = classicKeys[rng.Intn(len(classicKeys))]
	kims.Angle = 90
	kims.BottomThreshold = 0.1
	kims.UpperThreshold = float64(15+rng.Intn(70)) / 100

	gentle := base("gentle", "Subtle sorting with low randomness and small intervals")
	gentle.Strategy = "threshold"
	gentle.Key = "lightness"
	gentle.Randomness = 5
	gentle.CharLength = 25
	gentle.BottomThreshold = 0.3
	gentle.UpperThreshold = 0.7

	intense := base("intense", "Aggressive sorting with high randomness and large intervals")
	intense.Strategy = "random"
	intense.Key = "hue"
	intense.Randomness = 50
	intense.CharLength = 200
	intense.Angle = 45
	intense.BottomThreshold = 0.1
	intense.UpperThreshold = 0.9

	waves := base("waves", "Wave intervals for organic flowing bands")
	waves.Strategy = "waves"
	waves.Key = "saturation"
	waves.Randomness = 20
	waves.CharLength = 75
	waves.Angle = 15

	edges := base("edges", "Edge detection intervals for structure-aware sorting")
	edges.Strategy = "edges"
	edges.Key = "intensity"
	edges.Randomness = 15
	edges.BottomThreshold = 0.4

	return []Preset{main, file, random, kims, gentle, intense, waves, edges}
}

// Builtin looks up one built-in preset by name.
func Builtin(rng *rand.Rand, name string) (Preset, bool) {
	for _, p := range Builtins(rng) {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// BuiltinNames lists the built-in preset names in their fixed order.
func BuiltinNames() []string {
	return []string{"main", "file", "random", "kims", "gentle", "intense", "waves", "edges"}
}
