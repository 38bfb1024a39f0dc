package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fitquest/internal/ui"
)

func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run the daily quest refresh check now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, rolled, err := mgr.Refresh(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !rolled {
				fmt.Fprintln(out, ui.Muted.Render("Still the same day; quests unchanged."))
				return nil
			}
			fmt.Fprintf(out, "%s New day, %d fresh quests.\n", ui.IconSparkle, len(p.Quests))
			return nil
		},
	}

	return cmd
}
