package engine

import (
	"testing"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default parameters invalid: %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"bottom below zero", func(p *Params) { p.BottomThreshold = -0.1 }},
		{"bottom above one", func(p *Params) { p.BottomThreshold = 1.5 }},
		{"upper above one", func(p *Params) { p.UpperThreshold = 1.1 }},
		{"band inverted", func(p *Params) { p.BottomThreshold = 0.9; p.UpperThreshold = 0.2 }},
		{"band empty", func(p *Params) { p.BottomThreshold = 0.5; p.UpperThreshold = 0.5 }},
		{"negative clength", func(p *Params) { p.CharLength = -1 }},
		{"randomness below zero", func(p *Params) { p.Randomness = -5 }},
		{"randomness above hundred", func(p *Params) { p.Randomness = 101 }},
		{"negative angle", func(p *Params) { p.Angle = -1 }},
		{"angle at wrap", func(p *Params) { p.Angle = 360 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if errors.GetCode(err) != errors.ErrCodeInvalidParameter {
				t.Errorf("code = %v, want INVALID_PARAMETER", errors.GetCode(err))
			}
		})
	}
}

func TestParamsValidateBoundaryValues(t *testing.T) {
	p := DefaultParams()
	p.Randomness = 100
	p.Angle = 359.9
	p.CharLength = 0
	if err := p.Validate(); err != nil {
		t.Errorf("boundary values should be valid: %v", err)
	}
}
