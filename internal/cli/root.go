package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/pkg/buildinfo"
)

// Execute runs the pixelsort CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pixelsort",
		Short:        "pixelsort applies glitch-art pixel sorting effects to images",
		Long:         `pixelsort partitions image rows into intervals and sorts the pixels inside each interval by a visual key, producing the classic glitch-art smear. Interval strategies range from simple thresholds to edge detection and elementary cellular automaton masks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pixelsort %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSortCmd())
	root.AddCommand(newCACmd())
	root.AddCommand(newPresetCmd())
	root.AddCommand(newRunsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
