package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lumeng/mathquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Math practice with daily check-ins",
	Long:  "MathQuest: terminal math drills with a local score, daily check-in streak, wrong-question book and leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHQUEST_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Question catalog location: file path or URL (overrides MATHQUEST_CATALOG env var; default is the bundled catalog)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MATHQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveCatalog returns the catalog location: --catalog flag, then
// MATHQUEST_CATALOG env var, then "" for the embedded catalog.
func resolveCatalog(cmd *cobra.Command) string {
	if loc, _ := cmd.Flags().GetString("catalog"); loc != "" {
		return loc
	}
	return os.Getenv("MATHQUEST_CATALOG")
}
