package cmd

import (
	"github.com/joho/godotenv"
	"github.com/quizmark/quizmark/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizmark",
	Short: "Quiz grading from the command line",
	Long:  "Quizmark — grades quiz attempts locally and sends free-text answers to an AI provider for review.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Opportunistic .env load; a missing file is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides QUIZMARK_DB env var)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZMARK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event database for a command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
