package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the detailed candidate report of a leaderboard entry",
	RunE:  runReport,
}

var (
	reportEntryID string
	reportJSON    bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportEntryID, "entry", "e", "", "Entry ID (required)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the report as JSON")

	_ = reportCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	id, err := parseID("entry", reportEntryID)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true, false)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Report(cmd.Context(), id, a.owner)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if reportJSON {
		return writeJSON(report, "", "")
	}
	if a.cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintReport(report)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Candidate: %s (rank %d)\n", report.CandidateName, report.RankPosition)
	if s := report.Score; s != nil {
		overridden := ""
		if s.Overridden {
			overridden = fmt.Sprintf(" (set by hand, computed %.2f)", s.Recompute())
		}
		_, _ = fmt.Fprintf(os.Stdout, "Overall: %.2f%s\n", s.Overall, overridden)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Match level: %s\n", report.MatchLevel)
	_, _ = fmt.Fprintf(os.Stdout, "Experience: %s, %d years\n", report.ExperienceLevel, report.ExperienceYears)
	_, _ = fmt.Fprintf(os.Stdout, "Top skill category: %s\n", report.TopSkillCategory)
	_, _ = fmt.Fprintf(os.Stdout, "Skills: %s\n", strings.Join(report.Skills, ", "))
	if len(report.MissingSkills) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Missing: %s\n", strings.Join(report.MissingSkills, ", "))
	}
	_, _ = fmt.Fprintf(os.Stdout, "Recommendation: %s\n", report.HiringRecommendation)
	if report.Notes != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Notes: %s\n", report.Notes)
	}
	return nil
}
