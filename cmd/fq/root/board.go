package root

import (
	"context"

	"github.com/spf13/cobra"

	"fitquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive quest board (TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mgr, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, mgr, cmd.OutOrStdout())
		},
	}

	return cmd
}
