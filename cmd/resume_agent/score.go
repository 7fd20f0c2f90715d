package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single résumé, optionally against a job description",
	Long: "Extract the text of one résumé, score it with the deterministic heuristics (or LLM " +
		"enrichment with --use-llm) and print the breakdown. With a job description the JD match " +
		"percentage, matched and missing skills are included; --enhanced adds the detailed " +
		"skill-coverage and similarity blend.",
	RunE: runScore,
}

var (
	scoreResumeFile string
	scoreJD         jdSource
	scoreEnhanced   bool
	scoreJSON       bool
	scoreOutputFile string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to the résumé (.txt, .md, .html)")
	scoreCmd.Flags().StringVar(&scoreJD.File, "jd", "", "Path to a job description file")
	scoreCmd.Flags().StringVar(&scoreJD.Text, "jd-text", "", "Job description text")
	scoreCmd.Flags().StringVar(&scoreJD.URL, "jd-url", "", "URL of a job posting")
	scoreCmd.Flags().BoolVar(&scoreEnhanced, "enhanced", false, "Include the detailed skill match (requires a job description)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Write the JSON result to a file")

	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

// scoreOutput is the JSON form of the score command. Analysis fields are inlined so
// the file validates against the analysis schema.
type scoreOutput struct {
	Name string `json:"name"`
	types.Analysis
	Enhanced *scoring.EnhancedResult `json:"enhanced,omitempty"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	if err := scoreJD.validate(); err != nil {
		return err
	}

	a, err := newApp(cmd, false, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	extractor := ingestion.NewAutoExtractor()

	doc, err := ingestion.ReadDocument(scoreResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}
	resumeText, err := extractor.ExtractText(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to extract résumé text: %w", err)
	}

	jdText, err := scoreJD.text(ctx, extractor, a.cfg.ExtractTimeout)
	if err != nil {
		return err
	}
	if scoreEnhanced && jdText == "" {
		return fmt.Errorf("--enhanced requires --jd, --jd-text or --jd-url")
	}

	scorer, analyzer, resolver := a.analyzer(ctx)

	analysis, err := analyzer.Analyze(ctx, resumeText, jdText)
	if err != nil {
		return fmt.Errorf("failed to score résumé: %w", err)
	}

	out := scoreOutput{Name: analysis.Profile.Name, Analysis: analysis}
	if out.Name == "" {
		out.Name = resolver.Resolve(ctx, resumeText)
	}
	if scoreEnhanced {
		enhanced := scorer.Enhanced(resumeText, jdText)
		out.Enhanced = &enhanced
	}

	if scoreJSON || scoreOutputFile != "" {
		if err := writeJSON(out, scoreOutputFile, schemas.AnalysisSchemaPath); err != nil {
			return err
		}
		if scoreOutputFile == "" {
			return nil
		}
	}

	if a.cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintAnalysis(out.Name, &analysis)
	} else {
		printScoreSummary(out)
	}
	if scoreOutputFile != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", scoreOutputFile)
	}
	return nil
}

func printScoreSummary(out scoreOutput) {
	b := out.Breakdown
	_, _ = fmt.Fprintf(os.Stdout, "Candidate: %s\n", out.Name)
	_, _ = fmt.Fprintf(os.Stdout, "Overall: %.2f (skills %.2f, experience %.2f, education %.2f, projects %.2f)\n",
		b.Overall, b.Skills, b.Experience, b.Education, b.Projects)
	_, _ = fmt.Fprintf(os.Stdout, "Experience: %s, %d years\n", out.Profile.ExperienceLevel, out.Profile.ExperienceYears)
	if b.JDMatchPercent != nil {
		_, _ = fmt.Fprintf(os.Stdout, "JD match: %.2f%% (%s)\n", *b.JDMatchPercent, scoring.MatchLevel(*b.JDMatchPercent))
		_, _ = fmt.Fprintf(os.Stdout, "Fit: %s\n", out.FitAssessment)
	}
	if out.Enhanced != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Detailed match: %d%% (%s), %d matched, %d missing\n",
			out.Enhanced.MatchPercentage, out.Enhanced.MatchLevel, len(out.Enhanced.Matched), len(out.Enhanced.Missing))
	}
	_, _ = fmt.Fprintf(os.Stdout, "Strength: %s\n", out.Strength)
	_, _ = fmt.Fprintf(os.Stdout, "Weakness: %s\n", out.Weakness)
}
