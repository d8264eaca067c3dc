package cli

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/cache"
	"github.com/AutumnsGrove/Pixelsorting/pkg/engine"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/imageio"
	"github.com/AutumnsGrove/Pixelsorting/pkg/interval"
	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
	"github.com/AutumnsGrove/Pixelsorting/pkg/session"
	"github.com/AutumnsGrove/Pixelsorting/pkg/sortkey"
)

// newSortCmd creates the sort command, the main entry point of the CLI.
func newSortCmd() *cobra.Command {
	var f sortFlags

	cmd := &cobra.Command{
		Use:   "sort <image>",
		Short: "Apply a pixel sorting effect to an image",
		Long: `Sort partitions each row of the image into intervals and sorts the pixels
inside each interval by a visual key. The image may be a local file or an
HTTP(S) URL (with --internet).

Examples:
  pixelsort sort photo.png
  pixelsort sort photo.png --strategy threshold --key hue --angle 90
  pixelsort sort photo.png --preset kims -o kims.png
  pixelsort sort https://example.com/photo.png --internet --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path (default: <input>_sorted.png)")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "i", "random",
		"interval strategy: "+strings.Join(interval.Names(), ", "))
	cmd.Flags().StringVarP(&f.key, "key", "s", "lightness",
		"sort key: "+strings.Join(sortkey.Names(), ", "))
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "start from a named preset")
	cmd.Flags().Float64VarP(&f.bottom, "bottom-threshold", "t", 0.25, "lower lightness threshold [0,1]")
	cmd.Flags().Float64VarP(&f.upper, "upper-threshold", "u", 0.8, "upper lightness threshold [0,1]")
	cmd.Flags().IntVarP(&f.clength, "clength", "c", 50, "characteristic interval length")
	cmd.Flags().Float64VarP(&f.randomness, "randomness", "r", 10, "percentage of intervals left unsorted [0,100]")
	cmd.Flags().Float64VarP(&f.angle, "angle", "a", 0, "rotation angle in degrees [0,360)")
	cmd.Flags().IntVar(&f.rule, "rule", automata.RuleUnset, "cellular automaton rule for file strategies [0,255]")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().BoolVar(&f.internet, "internet", false, "allow fetching the image over HTTP(S)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the result cache")

	return cmd
}

func runSort(cmd *cobra.Command, source string, f sortFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	track := newProgress(logger)

	seed := f.seed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	base := engine.DefaultParams()
	if f.preset != "" {
		p, err := resolvePreset(ctx, rng, f.preset)
		if err != nil {
			return err
		}
		base, err = p.Params()
		if err != nil {
			return err
		}
		logger.Debug("applied preset", "name", f.preset)
	}

	params, err := buildParams(base, f, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = deriveOutputPath(source)
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	raw, err := imageio.LoadRaw(ctx, source, f.internet)
	if err != nil {
		return err
	}
	g, err := imageio.Decode(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	logger.Debug("loaded image", "source", source, "width", g.Width(), "height", g.Height())

	results, err := openResultCache(f.noCache)
	if err != nil {
		return err
	}
	defer results.Close()

	run := session.New(source, params.Strategy.String(), params.Key.String(), seed)
	run.Preset = f.preset
	runs, err := session.NewFileStore("")
	if err != nil {
		return err
	}
	_ = runs.Put(ctx, run)

	key := cache.ResultKey(cache.Hash(raw), params, seed)
	if png, ok, cerr := results.Get(ctx, key); cerr == nil && ok {
		sorted, derr := imageio.Decode(bytes.NewReader(png))
		if derr == nil {
			if err := imageio.Save(sorted, output); err != nil {
				run.Fail(err)
				_ = runs.Put(ctx, run)
				return err
			}
			run.Complete(params.Rule, sorted.Width(), sorted.Height(), output)
			_ = runs.Put(ctx, run)

			printSuccess("Sorted %s", filepath.Base(source))
			printFile(output)
			printRunStats(sorted.Width(), sorted.Height(), "", true)
			return nil
		}
		// Unreadable cache entry: fall through and recompute.
		_ = results.Delete(ctx, key)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Sorting %s...", filepath.Base(source)))
	spinner.Start()

	run.Start()
	_ = runs.Put(ctx, run)

	eng := engine.New(rng,
		engine.WithLogger(logger),
		engine.WithHooks(&spinnerHooks{spinner: spinner, source: filepath.Base(source)}),
	)
	res, err := eng.Run(ctx, engine.Input{
		Grid:   g,
		Params: params,
		Source: imageio.GridSource{Grid: g},
	})
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		run.Fail(err)
		_ = runs.Put(ctx, run)
		return err
	}
	spinner.Stop()

	if err := imageio.Save(res.Grid, output); err != nil {
		run.Fail(err)
		_ = runs.Put(ctx, run)
		return err
	}
	if png, perr := imageio.EncodePNG(res.Grid); perr == nil {
		_ = results.Set(ctx, key, png, 0)
	}

	run.Complete(res.Rule, res.Grid.Width(), res.Grid.Height(), output)
	_ = runs.Put(ctx, run)

	printSuccess("Sorted %s", filepath.Base(source))
	printFile(output)
	printRunStats(res.Grid.Width(), res.Grid.Height(), res.Elapsed.Round(time.Millisecond).String(), false)
	if res.Rule != automata.RuleUnset {
		printDetail("automaton rule %d", res.Rule)
	}
	printDetail("seed %d", seed)
	track.done(fmt.Sprintf("Run %s complete", run.ID))
	return nil
}

// resolvePreset looks for a stored preset first, then the builtins.
func resolvePreset(ctx context.Context, rng *rand.Rand, name string) (preset.Preset, error) {
	store, err := preset.NewDirStore(preset.DefaultDir())
	if err == nil {
		p, gerr := store.Get(ctx, name)
		if gerr == nil {
			return p, nil
		}
		if errors.GetCode(gerr) != errors.ErrCodePresetNotFound {
			return preset.Preset{}, gerr
		}
	}

	if p, ok := preset.Builtin(rng, name); ok {
		return p, nil
	}
	return preset.Preset{}, errors.New(errors.ErrCodePresetNotFound, "preset %q not found", name)
}

// openResultCache returns the file-backed result cache, or a null cache when
// caching is disabled.
func openResultCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(cache.DefaultDir())
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(fc, "result"), nil
}

// deriveOutputPath builds the default output path next to the source:
// photo.png becomes photo_sorted.png. URLs keep only their base name.
func deriveOutputPath(source string) string {
	base := filepath.Base(source)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "image"
	}
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		ext = ".png"
	}
	return stem + "_sorted" + ext
}

// spinnerHooks renders engine phases on the spinner.
type spinnerHooks struct {
	spinner *Spinner
	source  string
}

func (h *spinnerHooks) OnPhaseStart(ctx context.Context, phase string) {
	h.spinner.SetMessage(fmt.Sprintf("%s: %s...", h.source, phase))
}

func (h *spinnerHooks) OnPhaseProgress(ctx context.Context, phase string, ratio float64) {
	h.spinner.SetMessage(fmt.Sprintf("%s: %s %.0f%%...", h.source, phase, ratio*100))
}

func (h *spinnerHooks) OnPhaseComplete(ctx context.Context, phase string, d time.Duration, err error) {}
