package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/spf13/cobra"
)

var matchLevelCmd = &cobra.Command{
	Use:   "match-level PERCENT",
	Short: "Print the match level label for a JD match percentage",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchLevel,
}

func init() {
	rootCmd.AddCommand(matchLevelCmd)
}

func runMatchLevel(_ *cobra.Command, args []string) error {
	percent, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %q: %w", args[0], err)
	}
	_, _ = fmt.Fprintln(os.Stdout, scoring.MatchLevel(percent))
	return nil
}
