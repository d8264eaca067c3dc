package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/imageio"
)

// newCACmd creates the ca command for standalone automaton generation.
func newCACmd() *cobra.Command {
	var (
		width  int
		height int
		rule   int
		seed   int64
		output string
	)

	cmd := &cobra.Command{
		Use:   "ca",
		Short: "Generate an elementary cellular automaton image",
		Long: `Generate a black and white elementary cellular automaton pattern, the same
generator the file and file-edges strategies use as an interval mask.

Rules outside [0,255] select a random recommended rule.

Examples:
  pixelsort ca --rule 110 -o rule110.png
  pixelsort ca --width 1920 --height 1080 --seed 7 -o wallpaper.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if width <= 0 || height <= 0 {
				return errors.New(errors.ErrCodeInvalidParameter,
					"dimensions %dx%d must be positive", width, height)
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			resolved := automata.Resolve(rng, rule)
			logger.Debug("generating automaton", "rule", resolved, "width", width, "height", height)

			track := newProgress(logger)
			g := automata.Generate(rng, width, height, resolved)
			if err := imageio.Save(g, output); err != nil {
				return err
			}

			printSuccess("Generated rule %d pattern", resolved)
			printFile(output)
			printDetail("seed %d", seed)
			track.done(fmt.Sprintf("Rendered %dx%d cells", width, height))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 1000, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 1000, "image height in pixels")
	cmd.Flags().IntVar(&rule, "rule", automata.RuleUnset, "automaton rule [0,255]")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time-based)")
	cmd.Flags().StringVarP(&output, "output", "o", "automaton.png", "output path")

	return cmd
}
