// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-ranker/internal/batch"
	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to limit runes, marking the cut with "..."
func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func listLines(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintAnalysis outputs the score breakdown and insights of one résumé
func (p *Printer) PrintAnalysis(name string, a *types.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", name))
	sb.WriteString(fmt.Sprintf("Level:      %s (%d years)\n", a.Profile.ExperienceLevel, a.Profile.ExperienceYears))
	sb.WriteString("\n")
	b := a.Breakdown
	sb.WriteString(fmt.Sprintf("Skills %.2f  Experience %.2f  Education %.2f  Projects %.2f\n",
		b.Skills, b.Experience, b.Education, b.Projects))
	sb.WriteString(fmt.Sprintf("Overall: %.2f", b.Overall))
	if b.JDMatchPercent != nil {
		sb.WriteString(fmt.Sprintf("  JD match: %.1f%% (%s)", *b.JDMatchPercent, a.FitAssessment))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Strength: %s\nWeakness: %s\n", a.Strength, a.Weakness))

	if a.HasJD {
		listLines(&sb, "Matched skills", a.MatchedSkills, maxItemsToShow)
		listLines(&sb, "Missing skills", a.MissingSkills, maxItemsToShow)
	} else {
		listLines(&sb, "Skills", a.Profile.Skills, maxItemsToShow)
	}
	listLines(&sb, "Suggestions", a.Suggestions, 3)

	p.printBox("RÉSUMÉ ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLeaderboard outputs the first n ranked entries; n <= 0 prints all of them
func (p *Printer) PrintLeaderboard(lb *types.Leaderboard, n int) {
	if lb == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Leaderboard: %s\n", lb.ID))
	if lb.JobDescription != nil {
		sb.WriteString(fmt.Sprintf("Job:         %s\n", lb.JobDescription.Title))
	}
	sb.WriteString(fmt.Sprintf("Candidates:  %d\n", len(lb.Entries)))

	count := len(lb.Entries)
	if n > 0 {
		count = min(count, n)
	}
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		e := lb.Entries[i]
		score := "N/A"
		if overall, ok := e.Overall(); ok {
			score = fmt.Sprintf("%.1f", overall*100)
		}
		marker := ""
		if e.Favorite {
			marker = " ★"
		}
		sb.WriteString(fmt.Sprintf("#%-3d %-32s %6s%s\n", e.RankPosition, clip(e.CandidateName, 32), score, marker))
	}
	if count < len(lb.Entries) {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(lb.Entries)-count))
	}

	p.printBox("LEADERBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchResult outputs counts and skipped files of a batch run
func (p *Printer) PrintBatchResult(res *batch.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Requested: %d\nScored:    %d\nSkipped:   %d\n", res.Requested, res.Scored, len(res.Skipped)))
	if len(res.Skipped) > 0 {
		skipped := make([]string, len(res.Skipped))
		for i, s := range res.Skipped {
			skipped[i] = fmt.Sprintf("%s (#%d)", s.File, s.Index+1)
		}
		sb.WriteString("\n")
		listLines(&sb, "Skipped files", skipped, maxItemsToShow)
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the detailed report of one candidate
func (p *Printer) PrintReport(r *types.CandidateReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:      %s\n", r.CandidateName))
	if r.RankPosition > 0 {
		sb.WriteString(fmt.Sprintf("Rank:           #%d\n", r.RankPosition))
	}
	sb.WriteString(fmt.Sprintf("Match level:    %s\n", r.MatchLevel))
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", r.HiringRecommendation))
	sb.WriteString(fmt.Sprintf("Experience:     %s (%d years)\n", r.ExperienceLevel, r.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Top category:   %s\n", r.TopSkillCategory))
	sb.WriteString("\n")
	listLines(&sb, "Skills", r.Skills, maxItemsToShow)
	listLines(&sb, "Missing skills", r.MissingSkills, maxItemsToShow)
	listLines(&sb, "Projects", r.Projects, 3)
	listLines(&sb, "Hackathons", r.Hackathons, 3)
	if r.Notes != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", r.Notes))
	}

	p.printBox("CANDIDATE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
