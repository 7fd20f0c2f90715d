package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var leaderboardsCmd = &cobra.Command{
	Use:   "leaderboards",
	Short: "List the leaderboards of an owner, newest first",
	RunE:  runLeaderboards,
}

var leaderboardsJSON bool

func init() {
	leaderboardsCmd.Flags().BoolVar(&leaderboardsJSON, "json", false, "Print the list as JSON")

	rootCmd.AddCommand(leaderboardsCmd)
}

func runLeaderboards(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	summaries, err := a.service.List(cmd.Context(), a.owner)
	if err != nil {
		return fmt.Errorf("failed to list leaderboards: %w", err)
	}

	if leaderboardsJSON {
		return writeJSON(summaries, "", "")
	}
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No leaderboards")
		return nil
	}
	for _, s := range summaries {
		title := s.JDTitle
		if title == "" {
			title = "(no job description)"
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s  %s  %3d entries  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.EntryCount, title)
	}
	return nil
}
