package leaderboard

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// CSVHeader is the first line of every export
const CSVHeader = "Candidate Name,Match Score,Skills,Experience,Projects,Hackathons"

// WriteCSV writes the header and one row per entry. Text fields are always quoted with
// embedded double quotes removed; the score is overall*100 with two decimals, or N/A.
func WriteCSV(w io.Writer, entries []types.LeaderboardEntry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range entries {
		if _, err := fmt.Fprintln(bw, csvRow(&entries[i])); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return bw.Flush()
}

func csvRow(e *types.LeaderboardEntry) string {
	score := "N/A"
	if overall, ok := e.Overall(); ok {
		score = fmt.Sprintf("%.2f", overall*100)
	}
	return strings.Join([]string{
		quote(e.CandidateName),
		score,
		quote(e.Skills),
		quote(e.Experience),
		quote(e.Projects),
		quote(e.Hackathons),
	}, ",")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}
