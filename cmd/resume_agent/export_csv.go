package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv",
	Short: "Export the top N entries of a leaderboard as CSV",
	Long: "Write the top N ranked entries as CSV with the columns Candidate Name, Match Score, " +
		"Skills, Experience, Projects and Hackathons. Without --out the CSV goes to stdout.",
	RunE: runExportCSV,
}

var (
	exportLeaderboardID string
	exportN             int
	exportOutputFile    string
)

func init() {
	exportCSVCmd.Flags().StringVarP(&exportLeaderboardID, "leaderboard", "l", "", "Leaderboard ID (required)")
	exportCSVCmd.Flags().IntVarP(&exportN, "top", "n", 10, "Number of entries")
	exportCSVCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output CSV file")

	_ = exportCSVCmd.MarkFlagRequired("leaderboard")

	rootCmd.AddCommand(exportCSVCmd)
}

func runExportCSV(cmd *cobra.Command, _ []string) error {
	id, err := parseID("leaderboard", exportLeaderboardID)
	if err != nil {
		return err
	}
	req := types.TopNRequest{LeaderboardID: id, N: exportN}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = os.Stdout
	if exportOutputFile != "" {
		f, err := os.Create(exportOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := a.service.ExportCSV(cmd.Context(), req, a.owner, w); err != nil {
		return fmt.Errorf("failed to export leaderboard: %w", err)
	}
	if exportOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", exportOutputFile)
	}
	return nil
}
