// Package leaderboard ranks scored candidates and manages stored leaderboards.
package leaderboard

import (
	"sort"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Rank orders entries by overall score descending and assigns 1-based rank positions.
// Entries without a score go after every scored entry. The sort is stable, so ties and
// unscored entries keep their relative input order. entries is sorted in place and
// returned.
func Rank(entries []types.LeaderboardEntry) []types.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, aOK := entries[i].Overall()
		b, bOK := entries[j].Overall()
		switch {
		case aOK && bOK:
			return a > b
		case aOK:
			return true
		default:
			return false
		}
	})
	for i := range entries {
		entries[i].RankPosition = i + 1
	}
	return entries
}

// TopN returns the first n entries of an already ranked slice, or all of them when n
// exceeds the length. n <= 0 yields an empty slice.
func TopN(entries []types.LeaderboardEntry, n int) []types.LeaderboardEntry {
	if n <= 0 {
		return []types.LeaderboardEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
