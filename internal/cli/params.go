package cli

import (
	"github.com/AutumnsGrove/Pixelsorting/pkg/engine"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// sortFlags carries the raw flag values of the sort command.
type sortFlags struct {
	output     string
	strategy   string
	key        string
	preset     string
	bottom     float64
	upper      float64
	clength    int
	randomness float64
	angle      float64
	rule       int
	seed       int64
	internet   bool
	noCache    bool
}

// buildParams layers explicit flag values over a base parameter set.
// changed reports whether the user set a flag explicitly; untouched flags keep
// the base (default or preset) value. The final set is validated.
func buildParams(base engine.Params, f sortFlags, changed func(string) bool) (engine.Params, error) {
	p := base

	if changed("strategy") {
		strategy, err := interval.Parse(f.strategy)
		if err != nil {
			return engine.Params{}, err
		}
		p.Strategy = strategy
	}
	if changed("key") {
		key, err := sortkey.Parse(f.key)
		if err != nil {
			return engine.Params{}, err
		}
		p.Key = key
	}
	if changed("bottom-threshold") {
		p.BottomThreshold = f.bottom
	}
	if changed("upper-threshold") {
		p.UpperThreshold = f.upper
	}
	if changed("clength") {
		p.CharLength = f.clength
	}
	if changed("randomness") {
		p.Randomness = f.randomness
	}
	if changed("angle") {
		p.Angle = f.angle
	}
	if changed("rule") {
		p.Rule = f.rule
	}

	if err := p.Validate(); err != nil {
		return engine.Params{}, err
	}
	return p, nil
}
