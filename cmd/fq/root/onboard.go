package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fitquest/internal/engine"
	"fitquest/internal/ui"
)

func newOnboardCmd() *cobra.Command {
	var rank string
	var answers []string

	cmd := &cobra.Command{
		Use:   "onboard <name>",
		Short: "Create your player (run once)",
		Long: "Creates the player record from your questionnaire answers and asks the " +
			"quest oracle for your first batch of quests. Safe to retry if quest " +
			"generation fails; refuses to overwrite an existing player.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			p, err := mgr.Onboard(ctx, args[0], engine.ParseRank(rank), answers)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Welcome, "+p.Name+"!"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Rank", p.Rank))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintf(cmd.OutOrStdout(), "%d quests await. Run %s to see them.\n",
				len(p.Quests), ui.Key.Render("fq quests"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rank, "rank", "r", "E", "Starting difficulty rank (E|D|C|B|A|S)")
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "Questionnaire answer (repeatable), passed to the quest oracle")

	return cmd
}
