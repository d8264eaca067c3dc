package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/pkg/automata"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/session"
)

// newRunsCmd creates the run history command.
func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded sorting runs",
	}

	cmd.AddCommand(newRunsListCmd())
	cmd.AddCommand(newRunsShowCmd())
	cmd.AddCommand(newRunsClearCmd())

	return cmd
}

func newRunsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			runs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No runs recorded yet")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			fmt.Println(StyleTitle.Render("Runs"))
			for _, r := range runs {
				status := StyleDim.Render(r.Status)
				switch r.Status {
				case session.StatusComplete:
					status = StyleSuccess.Render(r.Status)
				case session.StatusFailed:
					status = StyleWarning.Render(r.Status)
				}
				fmt.Printf("  %s %s %s %s\n",
					StyleDim.Render(r.CreatedAt.Local().Format("2006-01-02 15:04:05")),
					StyleHighlight.Render(shortID(r.ID)),
					status,
					StyleValue.Render(r.SourceRef))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 for all)")
	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full record of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			r, err := findRun(cmd, store, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(r.ID.String()))
			printKeyValue("status", r.Status)
			printKeyValue("source", r.SourceRef)
			printKeyValue("strategy", r.Strategy)
			printKeyValue("key", r.Key)
			if r.Preset != "" {
				printKeyValue("preset", r.Preset)
			}
			printKeyValue("seed", fmt.Sprintf("%d", r.Seed))
			if r.Rule != automata.RuleUnset && r.Rule != 0 {
				printKeyValue("rule", fmt.Sprintf("%d", r.Rule))
			}
			if r.Width > 0 {
				printKeyValue("size", fmt.Sprintf("%dx%d", r.Width, r.Height))
			}
			if r.OutputRef != "" {
				printKeyValue("output", r.OutputRef)
			}
			if r.Error != "" {
				printKeyValue("error", r.Error)
			}
			printKeyValue("created", r.CreatedAt.Local().Format(time.RFC3339))
			printKeyValue("updated", r.UpdatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}

func newRunsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			runs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			count := 0
			for _, r := range runs {
				if err := store.Delete(cmd.Context(), r.ID); err == nil {
					count++
				}
			}
			printSuccess("Cleared %d run records", count)
			return nil
		},
	}
}

// findRun resolves a full or prefix run ID against the store.
func findRun(cmd *cobra.Command, store session.Store, ref string) (*session.Run, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return store.Get(cmd.Context(), id)
	}

	runs, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *session.Run
	for _, r := range runs {
		if len(ref) >= 4 && len(ref) <= 36 && r.ID.String()[:len(ref)] == ref {
			if match != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "run prefix %q is ambiguous", ref)
			}
			match = r
		}
	}
	if match == nil {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %q not found", ref)
	}
	return match, nil
}

// shortID renders the first uuid group for compact listings.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
