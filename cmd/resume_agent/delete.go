package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a leaderboard and all of its entries",
	RunE:  runDelete,
}

var deleteLeaderboardID string

func init() {
	deleteCmd.Flags().StringVarP(&deleteLeaderboardID, "leaderboard", "l", "", "Leaderboard ID (required)")

	_ = deleteCmd.MarkFlagRequired("leaderboard")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, _ []string) error {
	id, err := parseID("leaderboard", deleteLeaderboardID)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.Delete(cmd.Context(), id, a.owner); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Deleted leaderboard %s\n", id)
	return nil
}
