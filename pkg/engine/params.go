package engine

import (
	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// Params bundles every knob of a single engine invocation.
type Params struct {
	// Strategy selects the interval strategy or alternate effect.
	Strategy interval.Strategy
	// Key orders pixels within each sorted interval.
	Key sortkey.Key
	// BottomThreshold and UpperThreshold bound the lightness band used by
	// the threshold strategy and the edge classifiers. Both live in [0,1]
	// with bottom strictly below upper.
	BottomThreshold float64
	UpperThreshold  float64
	// CharLength is the characteristic interval length for the random and
	// waves strategies.
	CharLength int
	// Randomness is the percentage of intervals left unsorted, in [0,100].
	Randomness float64
	// Angle rotates the grid before sorting, in degrees [0,360).
	Angle float64
	// Rule selects the elementary automaton rule for the file strategies.
	// Out-of-range values (including RuleUnset) pick a recommended rule.
	Rule int
}

// DefaultParams returns the parameter set used when a caller configures
// nothing at all.
func DefaultParams() Params {
	return Params{
		Strategy:        interval.Random,
		Key:             sortkey.Lightness,
		BottomThreshold: 0.25,
		UpperThreshold:  0.8,
		CharLength:      50,
		Randomness:      10,
		Angle:           0,
		Rule:            automata.RuleUnset,
	}
}

// Validate rejects parameter combinations before any pixel work starts.
func (p Params) Validate() error {
	if p.BottomThreshold < 0 || p.BottomThreshold > 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"bottom threshold %v outside [0,1]", p.BottomThreshold)
	}
	if p.UpperThreshold < 0 || p.UpperThreshold > 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"upper threshold %v outside [0,1]", p.UpperThreshold)
	}
	if p.BottomThreshold >= p.UpperThreshold {
		return errors.New(errors.ErrCodeInvalidParameter,
			"bottom threshold %v must be below upper threshold %v",
			p.BottomThreshold, p.UpperThreshold)
	}
	if p.CharLength < 0 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"characteristic length %d must be non-negative", p.CharLength)
	}
	if p.Randomness < 0 || p.Randomness > 100 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"randomness %v outside [0,100]", p.Randomness)
	}
	if p.Angle < 0 || p.Angle >= 360 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"angle %v outside [0,360)", p.Angle)
	}
	return nil
}
