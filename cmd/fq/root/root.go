package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "fq",
	Short:         "FitQuest — turn workouts into an RPG",
	Long:          "FitQuest is a local-first fitness tracker with RPG progression: daily quests, XP, levels and ranks, persisted on this device.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newOnboardCmd(),
		newStatusCmd(),
		newQuestsCmd(),
		newLogCmd(),
		newTrackCmd(),
		newRefreshCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
