package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Replace the recruiter notes of a leaderboard entry",
	Long:  "Replace the recruiter notes of a leaderboard entry. An empty --text clears them.",
	RunE:  runNotes,
}

var (
	notesEntryID string
	notesText    string
)

func init() {
	notesCmd.Flags().StringVarP(&notesEntryID, "entry", "e", "", "Entry ID (required)")
	notesCmd.Flags().StringVarP(&notesText, "text", "t", "", "Notes text")

	_ = notesCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, _ []string) error {
	id, err := parseID("entry", notesEntryID)
	if err != nil {
		return err
	}
	req := types.UpdateNotesRequest{EntryID: id, Notes: notesText}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.service.UpdateNotes(cmd.Context(), req, a.owner)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Updated notes for %s\n", entry.CandidateName)
	return nil
}
