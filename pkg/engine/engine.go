// Package engine orchestrates a pixel sorting run.
//
// A run moves through fixed phases: rotate the grid by the configured angle,
// partition rows into intervals (or apply one of the alternate whole-grid
// effects), sort each interval by the configured key, rotate back and restore
// the original dimensions. The engine is synchronous and single-threaded; a
// caller wanting cancellation runs it on its own goroutine and discards the
// result.
//
// All randomness flows through one injected *rand.Rand, so runs with the same
// seed, input and parameters are bit-for-bit reproducible.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/effects"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/grid"
	"github.com/AutumnsGrove/Pixelsorting/pkg/imageio"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/observability"
)

// Source reloads the original image content. The edge strategy and both
// shuffles re-read the source rather than reusing the grid already handed to
// the engine.
type Source interface {
	Reload(ctx context.Context) (grid.Grid, error)
}

// Input is one engine invocation.
type Input struct {
	Grid   grid.Grid
	Params Params
	// Source is required for the edges, shuffle-total and shuffle-axis
	// strategies and ignored by the rest.
	Source Source
}

// Result is the output of a run.
type Result struct {
	Grid grid.Grid
	// Rule is the automaton rule actually used, after fallback resolution.
	// Zero value is automata.RuleUnset for non-file strategies.
	Rule int
	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// Engine runs pixel sorting pipelines. Safe for reuse across runs, but not
// for concurrent runs, because the injected random source is not synchronized.
type Engine struct {
	rng   *rand.Rand
	log   *log.Logger
	hooks observability.EngineHooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger for run diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithHooks overrides the globally registered engine hooks for this engine.
func WithHooks(h observability.EngineHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// New builds an engine around the given random source.
func New(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{rng: rng}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = log.Default()
	}
	if e.hooks == nil {
		e.hooks = observability.Engine()
	}
	return e
}

// Run executes one pixel sorting pipeline and returns a new grid; the input
// grid is never mutated.
func (e *Engine) Run(ctx context.Context, in Input) (Result, error) {
	started := time.Now()

	if err := in.Params.Validate(); err != nil {
		return Result{}, err
	}
	if err := in.Grid.Validate(); err != nil {
		return Result{}, err
	}
	if in.Params.Strategy.NeedsSource() && in.Source == nil {
		return Result{}, errors.New(errors.ErrCodeEffectPrecondition,
			"strategy %q requires a reloadable image source", in.Params.Strategy)
	}

	p := in.Params
	origW, origH := in.Grid.Width(), in.Grid.Height()
	e.log.Debug("starting run",
		"strategy", p.Strategy.String(),
		"key", p.Key.String(),
		"angle", p.Angle,
		"size", origW*origH)

	work := in.Grid
	if p.Angle != 0 {
		work = e.phase(ctx, observability.PhaseRotate, func() grid.Grid {
			return imageio.Rotate(work, p.Angle)
		})
	}

	var (
		out  grid.Grid
		rule = automata.RuleUnset
		err  error
	)
	if p.Strategy.IsAlternate() {
		out, err = e.alternate(ctx, work, in)
	} else {
		out, rule, err = e.sortPhases(ctx, work, in)
	}
	if err != nil {
		return Result{}, err
	}

	if p.Angle != 0 {
		out = e.phase(ctx, observability.PhaseRestore, func() grid.Grid {
			back := imageio.Rotate(out, 360-p.Angle)
			return imageio.RestoreDims(back, origW, origH)
		})
	}

	elapsed := time.Since(started)
	e.log.Debug("run complete", "elapsed", elapsed, "rule", rule)
	return Result{Grid: out, Rule: rule, Elapsed: elapsed}, nil
}

// phase wraps an infallible pipeline step with hook bookkeeping.
func (e *Engine) phase(ctx context.Context, name string, f func() grid.Grid) grid.Grid {
	e.hooks.OnPhaseStart(ctx, name)
	t := time.Now()
	g := f()
	e.hooks.OnPhaseComplete(ctx, name, time.Since(t), nil)
	return g
}

// alternate runs one of the whole-grid effects. The shuffles reload the
// original source and re-rotate it, discarding the grid already in hand.
func (e *Engine) alternate(ctx context.Context, work grid.Grid, in Input) (grid.Grid, error) {
	e.hooks.OnPhaseStart(ctx, observability.PhaseEffect)
	t := time.Now()

	var (
		out grid.Grid
		err error
	)
	switch in.Params.Strategy {
	case interval.Snap:
		out = effects.Snap(e.rng, work)
	case interval.ShuffleTotal, interval.ShuffleAxis:
		var fresh grid.Grid
		fresh, err = in.Source.Reload(ctx)
		if err == nil {
			if in.Params.Angle != 0 {
				fresh = imageio.Rotate(fresh, in.Params.Angle)
			}
			if in.Params.Strategy == interval.ShuffleTotal {
				out = effects.ShuffleRows(e.rng, fresh)
			} else {
				out = effects.ShuffleRowOrder(e.rng, fresh)
			}
		}
	}

	e.hooks.OnPhaseComplete(ctx, observability.PhaseEffect, time.Since(t), err)
	return out, err
}

// sortPhases builds interval boundaries for the working grid and sorts it.
func (e *Engine) sortPhases(ctx context.Context, work grid.Grid, in Input) (grid.Grid, int, error) {
	p := in.Params

	e.hooks.OnPhaseStart(ctx, observability.PhaseIntervals)
	t := time.Now()
	bounds, rule, err := e.boundaries(ctx, work, in)
	e.hooks.OnPhaseComplete(ctx, observability.PhaseIntervals, time.Since(t), err)
	if err != nil {
		return nil, rule, err
	}

	e.hooks.OnPhaseStart(ctx, observability.PhaseSort)
	t = time.Now()
	step := work.Height() / 100
	if step < 1 {
		step = 1
	}
	out := sortRows(e.rng, work, bounds, p.Key, p.Randomness, func(done, total int) {
		if done%step == 0 || done == total {
			e.hooks.OnPhaseProgress(ctx, observability.PhaseSort, float64(done)/float64(total))
		}
	})
	e.hooks.OnPhaseComplete(ctx, observability.PhaseSort, time.Since(t), nil)
	return out, rule, nil
}

func (e *Engine) boundaries(ctx context.Context, work grid.Grid, in Input) (interval.Boundaries, int, error) {
	p := in.Params
	w, h := work.Width(), work.Height()

	switch p.Strategy {
	case interval.None:
		return interval.NoIntervals(work), automata.RuleUnset, nil
	case interval.Random:
		return interval.RandomIntervals(e.rng, work, p.CharLength), automata.RuleUnset, nil
	case interval.Waves:
		return interval.WaveIntervals(e.rng, work, p.CharLength), automata.RuleUnset, nil
	case interval.Threshold:
		return interval.ThresholdIntervals(work, p.BottomThreshold, p.UpperThreshold), automata.RuleUnset, nil

	case interval.Edges:
		fresh, err := in.Source.Reload(ctx)
		if err != nil {
			return nil, automata.RuleUnset, err
		}
		if p.Angle != 0 {
			fresh = imageio.Rotate(fresh, p.Angle)
		}
		e.hooks.OnPhaseProgress(ctx, observability.PhaseIntervals, 0.5)
		filtered := imageio.ResizeTo(imageio.EdgeFilter(fresh), w, h)
		e.hooks.OnPhaseProgress(ctx, observability.PhaseIntervals, 0.75)
		return interval.EdgeIntervals(filtered, p.BottomThreshold), automata.RuleUnset, nil

	case interval.File:
		rule := automata.Resolve(e.rng, p.Rule)
		mask := automata.Generate(e.rng, w, h, rule)
		e.hooks.OnPhaseProgress(ctx, observability.PhaseIntervals, 0.5)
		return interval.MaskIntervals(mask), rule, nil

	case interval.FileEdges:
		rule := automata.Resolve(e.rng, p.Rule)
		mask := automata.Generate(e.rng, w, h, rule)
		e.hooks.OnPhaseProgress(ctx, observability.PhaseIntervals, 0.5)
		if p.Angle != 0 {
			mask = imageio.Rotate(mask, p.Angle)
		}
		filtered := imageio.EdgeFilter(imageio.ResizeTo(mask, w, h))
		e.hooks.OnPhaseProgress(ctx, observability.PhaseIntervals, 0.75)
		return interval.EdgeIntervals(filtered, p.BottomThreshold), rule, nil
	}

	return nil, automata.RuleUnset, errors.New(errors.ErrCodeUnknownFunction,
		"strategy %q has no boundary builder", p.Strategy)
}
