package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Override the overall score of an entry and re-rank its leaderboard",
	RunE:  runOverride,
}

var (
	overrideEntryID string
	overrideScore   float64
	overrideTop     int
)

func init() {
	overrideCmd.Flags().StringVarP(&overrideEntryID, "entry", "e", "", "Entry ID (required)")
	overrideCmd.Flags().Float64Var(&overrideScore, "score", 0, "New overall score in [0, 1] (required)")
	overrideCmd.Flags().IntVarP(&overrideTop, "top", "n", 10, "Number of re-ranked entries to print")

	_ = overrideCmd.MarkFlagRequired("entry")
	_ = overrideCmd.MarkFlagRequired("score")

	rootCmd.AddCommand(overrideCmd)
}

func runOverride(cmd *cobra.Command, _ []string) error {
	id, err := parseID("entry", overrideEntryID)
	if err != nil {
		return err
	}
	req := types.ScoreOverrideRequest{EntryID: id, Overall: overrideScore}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	lb, err := a.service.OverrideScore(cmd.Context(), req, a.owner)
	if err != nil {
		return fmt.Errorf("failed to override score: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Overrode score of %s to %.2f\n", id, overrideScore)
	printEntries(leaderboard.TopN(lb.Entries, overrideTop))
	return nil
}
