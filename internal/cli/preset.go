package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
)

// newPresetCmd creates the preset management command.
func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage sorting presets",
		Long: `Presets bundle a full set of sorting parameters under a name. The built-in
presets partially re-randomize on every use; saved presets are stored as TOML
files and override builtins of the same name.`,
	}

	cmd.AddCommand(newPresetListCmd())
	cmd.AddCommand(newPresetShowCmd())
	cmd.AddCommand(newPresetSaveCmd())
	cmd.AddCommand(newPresetDeleteCmd())
	cmd.AddCommand(newPresetPickCmd())

	return cmd
}

// allPresets merges stored presets over the builtins, stored names winning.
func allPresets(cmd *cobra.Command, rng *rand.Rand) ([]preset.Preset, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	merged := preset.Builtins(rng)
	store, err := preset.NewDirStore(preset.DefaultDir())
	if err != nil {
		logger.Debug("preset store unavailable", "error", err)
		return merged, nil
	}
	stored, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range stored {
		replaced := false
		for i, b := range merged {
			if b.Name == s.Name {
				merged[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, s)
		}
	}
	return merged, nil
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			presets, err := allPresets(cmd, rng)
			if err != nil {
				return err
			}

			builtin := map[string]bool{}
			for _, name := range preset.BuiltinNames() {
				builtin[name] = true
			}

			fmt.Println(StyleTitle.Render("Presets"))
			for _, p := range presets {
				origin := "saved"
				if builtin[p.Name] {
					origin = "builtin"
				}
				fmt.Printf("  %s %s %s\n",
					StyleHighlight.Render(fmt.Sprintf("%-10s", p.Name)),
					StyleDim.Render(fmt.Sprintf("%-8s", origin)),
					StyleValue.Render(p.Description))
			}
			return nil
		},
	}
}

func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the parameters of a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			p, err := resolvePreset(cmd.Context(), rng, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Name))
			if p.Description != "" {
				printDetail("%s", p.Description)
			}
			printKeyValue("strategy", p.Strategy)
			printKeyValue("key", p.Key)
			printKeyValue("bottom", fmt.Sprintf("%.2f", p.BottomThreshold))
			printKeyValue("upper", fmt.Sprintf("%.2f", p.UpperThreshold))
			printKeyValue("clength", fmt.Sprintf("%d", p.CharLength))
			printKeyValue("randomness", fmt.Sprintf("%.0f%%", p.Randomness))
			printKeyValue("angle", fmt.Sprintf("%.0f°", p.Angle))
			if p.Rule != automata.RuleUnset {
				printKeyValue("rule", fmt.Sprintf("%d", p.Rule))
			}
			return nil
		},
	}
}

func newPresetSaveCmd() *cobra.Command {
	var p preset.Preset

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a preset to the local preset directory",
		Long: `Save writes a preset as a TOML file under the user config directory. A saved
preset shadows a built-in preset of the same name.

Example:
  pixelsort preset save soft --strategy threshold --key lightness -r 5 -c 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Name = args[0]

			store, err := preset.NewDirStore(preset.DefaultDir())
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), p); err != nil {
				return err
			}

			printSuccess("Saved preset %s", p.Name)
			printDetail("directory %s", preset.DefaultDir())
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Description, "description", "", "preset description")
	cmd.Flags().StringVarP(&p.Strategy, "strategy", "i", "random", "interval strategy")
	cmd.Flags().StringVarP(&p.Key, "key", "s", "lightness", "sort key")
	cmd.Flags().Float64VarP(&p.BottomThreshold, "bottom-threshold", "t", 0.25, "lower lightness threshold [0,1]")
	cmd.Flags().Float64VarP(&p.UpperThreshold, "upper-threshold", "u", 0.8, "upper lightness threshold [0,1]")
	cmd.Flags().IntVarP(&p.CharLength, "clength", "c", 50, "characteristic interval length")
	cmd.Flags().Float64VarP(&p.Randomness, "randomness", "r", 10, "percentage of intervals left unsorted [0,100]")
	cmd.Flags().Float64VarP(&p.Angle, "angle", "a", 0, "rotation angle in degrees [0,360)")
	cmd.Flags().IntVar(&p.Rule, "rule", automata.RuleUnset, "cellular automaton rule [0,255]")

	return cmd
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := preset.NewDirStore(preset.DefaultDir())
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted preset %s", args[0])
			return nil
		},
	}
}

func newPresetPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a preset interactively",
		Long:  `Pick opens an interactive list of all presets and prints the chosen name, ready to paste into a sort invocation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			presets, err := allPresets(cmd, rng)
			if err != nil {
				return err
			}
			if len(presets) == 0 {
				return errors.New(errors.ErrCodePresetNotFound, "no presets available")
			}

			chosen, err := pickPreset(presets)
			if err != nil {
				return err
			}
			if chosen == nil {
				printInfo("No preset selected")
				return nil
			}

			printSuccess("Selected %s", chosen.Name)
			printDetail("pixelsort sort <image> --preset %s", chosen.Name)
			return nil
		},
	}
}
