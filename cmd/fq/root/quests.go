package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fitquest/internal/engine"
	"fitquest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List today's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := mgr.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Today's Quests"))
			if len(p.Quests) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No quests today. Try `fq refresh` later."))
				return nil
			}
			for _, q := range p.Quests {
				status := ui.Gold.Render(fmt.Sprintf("+%d xp", q.XPReward))
				if q.Complete() {
					status = ui.Good.Render(ui.IconDone + " done")
				}
				fmt.Fprintf(out, "%s %s %s  %s %s\n",
					ui.KindIcon(string(q.Kind)),
					ui.Key.Render(q.ID),
					goalText(q),
					ui.ProgressBar(q.Progress, q.Goal, 10),
					status,
				)
				fmt.Fprintf(out, "   %s %s\n", q.Title, ui.Muted.Render(q.Description))
			}
			return nil
		},
	}

	return cmd
}

func goalText(q engine.Quest) string {
	if q.Kind == engine.KindDistance {
		return ui.Muted.Render(fmt.Sprintf("%.1f/%.1f km", q.Progress, q.Goal))
	}
	return ui.Muted.Render(fmt.Sprintf("%.0f/%.0f reps", q.Progress, q.Goal))
}
