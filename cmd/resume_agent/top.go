package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the top N entries of a leaderboard",
	RunE:  runTop,
}

var (
	topLeaderboardID string
	topN             int
	topJSON          bool
)

func init() {
	topCmd.Flags().StringVarP(&topLeaderboardID, "leaderboard", "l", "", "Leaderboard ID (required)")
	topCmd.Flags().IntVarP(&topN, "top", "n", 10, "Number of entries")
	topCmd.Flags().BoolVar(&topJSON, "json", false, "Print the entries as JSON")

	_ = topCmd.MarkFlagRequired("leaderboard")

	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, _ []string) error {
	id, err := parseID("leaderboard", topLeaderboardID)
	if err != nil {
		return err
	}
	req := types.TopNRequest{LeaderboardID: id, N: topN}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.service.Top(cmd.Context(), req, a.owner)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if topJSON {
		return writeJSON(entries, "", "")
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No entries")
		return nil
	}
	printEntries(entries)
	return nil
}
