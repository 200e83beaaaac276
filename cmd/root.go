package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrills",
	Short: "Adaptive math practice for kids",
	Long: `Math Drills is a K-12 math practice app. Each activity serves one question at a
time, grades the answer, explains it and adjusts the difficulty as the learner
goes. Run without a subcommand to practice in the terminal, or use "serve" for
the web version.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILLS_DB)")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory or sqlite (overrides MATHDRILLS_STORE)")
	rootCmd.PersistentFlags().String("config", "", "Activities overrides file (overrides MATHDRILLS_ACTIVITIES)")
	rootCmd.Flags().String("learner", "local", "Learner id the terminal drills are saved under")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}
