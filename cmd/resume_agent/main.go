// Package main provides the entry point for the résumé ranker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Résumé scoring and leaderboard engine",
	Long: "Scores résumés with deterministic heuristics, optionally against a job description, " +
		"and ranks batches of candidates into persistent leaderboards.",
	SilenceUsage: true,
}

// Flags shared by every command. Values given here override the config file and
// RANKER_* environment variables.
var (
	configFile  string
	databaseURL string
	sqlitePath  string
	ownerFlag   string
	apiKeyFlag  string
	useLLM      bool
	verbose     bool
	logJSON     bool
	debugLogs   bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to a config file (JSON, YAML or TOML)")
	pf.StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (overrides RANKER_DATABASE_URL)")
	pf.StringVar(&sqlitePath, "sqlite", "", "SQLite database path (default "+defaultSQLitePath+")")
	pf.StringVar(&ownerFlag, "owner", "", "Owner UUID of the leaderboards")
	pf.StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	pf.BoolVar(&useLLM, "use-llm", false, "Use LLM enrichment when an API key is available")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Print detailed boxed output")
	pf.BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	pf.BoolVar(&debugLogs, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
