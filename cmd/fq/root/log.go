package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fitquest/internal/engine"
	"fitquest/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <quest-id> <amount>",
		Short: "Log activity against a quest (reps or kilometers)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("quest id and amount are required")
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New("amount must be a number")
			}
			if amount <= 0 {
				return errors.New("amount must be positive")
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

			amount, _ := strconv.ParseFloat(args[1], 64)
			res, err := mgr.LogActivity(ctx, args[0], amount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Synced {
				fmt.Fprintln(out, ui.Muted.Render("Quest is already complete; nothing logged."))
				return nil
			}

			q, _ := res.Player.Quest(args[0])
			fmt.Fprintf(out, "%s %s %s\n", ui.KindIcon(string(q.Kind)), q.Title, ui.ProgressBar(q.Progress, q.Goal, 10))
			for _, e := range res.Events {
				switch e := e.(type) {
				case engine.QuestCompleted:
					fmt.Fprintf(out, "%s %s complete: +%d XP\n", ui.IconDone, e.Title, e.XP)
				case engine.LevelUp:
					fmt.Fprintf(out, "%s %s level %d → %d\n", ui.IconTrophy, ui.BadgeLevelUp, e.From, e.To)
				}
			}
			return nil
		},
	}

	return cmd
}
