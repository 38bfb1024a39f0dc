package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fitquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the player record and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("this deletes all progress; pass --force to confirm")
			}

			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := mgr.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record deleted. Run %s to start again.\n", ui.Key.Render("fq onboard"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deleting all progress")

	return cmd
}
