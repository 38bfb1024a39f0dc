package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fitquest/internal/engine"
	"fitquest/internal/track"
	"fitquest/internal/ui"
)

func newTrackCmd() *cobra.Command {
	var fixesPath string

	cmd := &cobra.Command{
		Use:   "track <quest-id>",
		Short: "Run a location tracking session for a distance quest",
		Long: "Reads position fixes as JSON lines (one {\"lat\", \"lon\", \"accuracy\", \"time\"} " +
			"object per line) from --fixes or stdin and applies the travelled distance " +
			"to the quest. Stop with EOF or Ctrl-C; a sensor error ends the session " +
			"without touching other quests.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			questID := args[0]
			p, err := mgr.Load(ctx)
			if err != nil {
				return err
			}
			q, ok := p.Quest(questID)
			if !ok {
				return fmt.Errorf("no such quest: %q", questID)
			}
			if q.Kind != engine.KindDistance {
				return fmt.Errorf("quest %q is not a distance quest", questID)
			}

			var in io.Reader = cmd.InOrStdin()
			if fixesPath != "" && fixesPath != "-" {
				f, err := os.Open(fixesPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPin, "Tracking "+q.Title))
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			tracker := track.NewTracker(track.NewStreamWatcher(in), mgr, logger)
			if err := tracker.Track(ctx, questID); err != nil {
				return err
			}

			updated, err := mgr.Load(ctx)
			if err != nil {
				return err
			}
			if q, ok := updated.Quest(questID); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.KindIcon(string(q.Kind)), q.Title, ui.ProgressBar(q.Progress, q.Goal, 10))
			}
			if updated.PendingLevelUp > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s level %d!\n", ui.IconTrophy, ui.BadgeLevelUp, updated.PendingLevelUp)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fixesPath, "fixes", "f", "", "Read fixes from this file instead of stdin (\"-\" for stdin)")

	return cmd
}
