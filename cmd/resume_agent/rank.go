package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-ranker/internal/batch"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score a batch of résumés into a ranked leaderboard",
	Long: "Score every résumé given with --resume or found in --dir, optionally against a job " +
		"description, and store the ranked leaderboard. Résumés that cannot be read or scored " +
		"are skipped and reported. Interrupting the command keeps the sub-batches already committed.",
	RunE: runRank,
}

var (
	rankResumeFiles []string
	rankDir         string
	rankJD          jdSource
	rankJDTitle     string
	rankOutputFile  string
	rankCSVFile     string
	rankTop         int
	rankNoStore     bool
)

func init() {
	rankCmd.Flags().StringSliceVarP(&rankResumeFiles, "resume", "r", nil, "Résumé file (repeatable)")
	rankCmd.Flags().StringVar(&rankDir, "dir", "", "Directory of résumés (.txt, .md, .html)")
	rankCmd.Flags().StringVar(&rankJD.File, "jd", "", "Path to a job description file")
	rankCmd.Flags().StringVar(&rankJD.Text, "jd-text", "", "Job description text")
	rankCmd.Flags().StringVar(&rankJD.URL, "jd-url", "", "URL of a job posting")
	rankCmd.Flags().StringVar(&rankJDTitle, "jd-title", "", "Title for a pasted job description")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Write the leaderboard JSON to a file")
	rankCmd.Flags().StringVar(&rankCSVFile, "csv", "", "Write the ranked entries as CSV to a file")
	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 10, "Number of entries to print")
	rankCmd.Flags().BoolVar(&rankNoStore, "no-store", false, "Keep the leaderboard in memory only")

	rankCmd.MarkFlagsOneRequired("resume", "dir")

	rootCmd.AddCommand(rankCmd)
}

// collectResumes loads the documents named by files and dir, files first
func collectResumes(files []string, dir string) ([]types.Document, error) {
	var docs []types.Document
	for _, path := range files {
		doc, err := ingestion.ReadDocument(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	if dir != "" {
		dirDocs, err := ingestion.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		docs = append(docs, dirDocs...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no résumés found")
	}
	return docs, nil
}

func runRank(cmd *cobra.Command, _ []string) error {
	if err := rankJD.validate(); err != nil {
		return err
	}
	if rankTop < 1 {
		return fmt.Errorf("--top must be at least 1")
	}

	docs, err := collectResumes(rankResumeFiles, rankDir)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true, rankNoStore)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := types.BatchRequest{
		OwnerID: a.owner,
		Resumes: docs,
		JDText:  rankJD.Text,
		JDTitle: rankJDTitle,
	}
	req.JD, err = rankJD.document(ctx, a.cfg.ExtractTimeout)
	if err != nil {
		return err
	}

	_, analyzer, resolver := a.analyzer(ctx)
	processor := batch.NewProcessor(ingestion.NewAutoExtractor(), analyzer, resolver, a.service, a.log,
		a.batchOptions(func(ev batch.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stdout, "Sub-batch %d committed: %d/%d résumés\n",
				ev.SubBatch, ev.Committed, ev.Requested)
		}))

	_, _ = fmt.Fprintf(os.Stdout, "Scoring %d résumés...\n", len(docs))
	res, err := processor.Run(ctx, req)
	if res == nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("batch failed: %w", err)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: interrupted, kept %d of %d résumés\n", res.Scored, res.Requested)
	}

	return reportBatch(a, res)
}

// reportBatch prints the outcome of a batch and writes the requested output files
func reportBatch(a *app, res *batch.Result) error {
	lb := res.Leaderboard

	if a.cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintBatchResult(res)
		printer.PrintLeaderboard(lb, rankTop)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "Scored %d of %d résumés\n", res.Scored, res.Requested)
		for _, skip := range res.Skipped {
			_, _ = fmt.Fprintf(os.Stdout, "Skipped %s: %s\n", skip.File, skip.Reason)
		}
		printEntries(leaderboard.TopN(lb.Entries, rankTop))
	}

	if !rankNoStore {
		_, _ = fmt.Fprintf(os.Stdout, "Leaderboard ID: %s\n", lb.ID)
	}

	if rankOutputFile != "" {
		if err := writeJSON(lb, rankOutputFile, schemas.LeaderboardSchemaPath); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", rankOutputFile)
	}

	if rankCSVFile != "" {
		f, err := os.Create(rankCSVFile)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := leaderboard.WriteCSV(f, lb.Entries); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "CSV: %s\n", rankCSVFile)
	}
	return nil
}

// printEntries prints one line per entry in rank order
func printEntries(entries []types.LeaderboardEntry) {
	for _, e := range entries {
		score := "N/A"
		if overall, ok := e.Overall(); ok {
			score = fmt.Sprintf("%.2f", overall)
			if e.Score.JDMatchPercent != nil {
				score += fmt.Sprintf(" (JD %.2f%%)", *e.Score.JDMatchPercent)
			}
		}
		favorite := ""
		if e.Favorite {
			favorite = " *"
		}
		_, _ = fmt.Fprintf(os.Stdout, "%3d. %-30s %s  %s%s\n", e.RankPosition, e.CandidateName, score, e.ID, favorite)
	}
}
