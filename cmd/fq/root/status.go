package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fitquest/internal/engine"
	"fitquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var ack bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if ack {
				if _, err := mgr.AcknowledgeLevelUp(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Level-up dismissed."))
				return nil
			}

			p, err := mgr.Load(ctx)
			if err != nil {
				return err
			}

			threshold := engine.LevelThreshold(p.Level)
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Name", p.Name))
			fmt.Fprintln(out, ui.LabelValue("Rank", p.Rank))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d (%d to next level)", p.XP, threshold, threshold-p.XP)))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d reps · %.2f km", p.DailySteps, p.DailyDistanceKM)))

			if p.PendingLevelUp > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s %s You reached level %d! Run %s to dismiss.\n",
					ui.IconTrophy, ui.BadgeLevelUp, p.PendingLevelUp, ui.Key.Render("fq status --ack"))
			}

			if len(p.Skills) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Skills"))
				for _, s := range p.Skills {
					fmt.Fprintf(out, "- %s lvl %d %s\n", s.Name, s.Level, ui.Muted.Render(s.Description))
				}
			}

			done := 0
			for _, q := range p.Quests {
				if q.Complete() {
					done++
				}
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Quests", fmt.Sprintf("%d/%d complete today", done, len(p.Quests))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "Dismiss the pending level-up notice")

	return cmd
}
