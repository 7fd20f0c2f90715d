package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Toggle or set the favorite flag of a leaderboard entry",
	Long:  "Toggle the favorite flag of a leaderboard entry, or set it explicitly with --set true|false.",
	RunE:  runFavorite,
}

var (
	favoriteEntryID string
	favoriteSet     string
)

func init() {
	favoriteCmd.Flags().StringVarP(&favoriteEntryID, "entry", "e", "", "Entry ID (required)")
	favoriteCmd.Flags().StringVar(&favoriteSet, "set", "", "Set the flag to true or false instead of toggling")

	_ = favoriteCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(favoriteCmd)
}

func runFavorite(cmd *cobra.Command, _ []string) error {
	id, err := parseID("entry", favoriteEntryID)
	if err != nil {
		return err
	}

	var value *bool
	if favoriteSet != "" {
		v, err := strconv.ParseBool(favoriteSet)
		if err != nil {
			return fmt.Errorf("invalid --set value %q: must be true or false", favoriteSet)
		}
		value = &v
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	var entry *types.LeaderboardEntry
	if value != nil {
		entry, err = a.service.SetFavorite(cmd.Context(), id, a.owner, *value)
	} else {
		entry, err = a.service.ToggleFavorite(cmd.Context(), id, a.owner)
	}
	if err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}

	state := "removed from"
	if entry.Favorite {
		state = "added to"
	}
	_, _ = fmt.Fprintf(os.Stdout, "%s %s favorites\n", entry.CandidateName, state)
	return nil
}
