package scoring

import (
	"context"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"go.uber.org/zap"
)

// DefaultEnrichTimeout bounds one enrichment call
const DefaultEnrichTimeout = 20 * time.Second

// AnalysisEnricher is an optional collaborator (typically LLM-backed) that can produce
// a better analysis than the heuristics. It is never required for correctness.
type AnalysisEnricher interface {
	// Available probes whether the enricher can be used right now
	Available(ctx context.Context) bool
	// Enhance returns an alternative breakdown and profile for the résumé
	Enhance(ctx context.Context, resumeText, jdText string) (types.ScoreBreakdown, types.CandidateProfile, error)
}

// EnrichedAnalyzer tries the enricher first and falls back to the deterministic Scorer
// whenever it is unavailable, slow or failing.
type EnrichedAnalyzer struct {
	base     *Scorer
	enricher AnalysisEnricher
	timeout  time.Duration
	logger   *zap.Logger
}

// NewEnrichedAnalyzer wraps base. A nil enricher makes it behave exactly like base.
func NewEnrichedAnalyzer(base *Scorer, enricher AnalysisEnricher, timeout time.Duration, logger *zap.Logger) *EnrichedAnalyzer {
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrichedAnalyzer{base: base, enricher: enricher, timeout: timeout, logger: logger}
}

// Analyze always returns an analysis; enrichment errors are logged, not returned.
func (a *EnrichedAnalyzer) Analyze(ctx context.Context, resumeText, jdText string) (types.Analysis, error) {
	analysis, err := a.base.Analyze(ctx, resumeText, jdText)
	if err != nil || a.enricher == nil {
		return analysis, err
	}

	enrichCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if !a.enricher.Available(enrichCtx) {
		a.logger.Debug("analysis enrichment unavailable, using heuristics")
		return analysis, nil
	}

	breakdown, profile, err := a.enricher.Enhance(enrichCtx, resumeText, jdText)
	if err != nil {
		a.logger.Warn("analysis enrichment failed, using heuristics", zap.Error(err))
		return analysis, nil
	}

	return mergeEnriched(analysis, breakdown, profile), nil
}

// mergeEnriched lets enriched scores replace the heuristic ones and enriched profile
// fields replace heuristic fields when they are non-empty. JD matching stays heuristic.
func mergeEnriched(a types.Analysis, b types.ScoreBreakdown, p types.CandidateProfile) types.Analysis {
	breakdown := types.NewScoreBreakdown(b.Skills, b.Experience, b.Education, b.Projects)
	if a.Breakdown.JDMatchPercent != nil {
		percent := *a.Breakdown.JDMatchPercent
		if b.JDMatchPercent != nil {
			percent = *b.JDMatchPercent
		}
		breakdown = breakdown.WithJDMatch(percent)
	}
	a.Breakdown = breakdown

	if len(p.Skills) > 0 {
		a.Profile.Skills = p.Skills
	}
	if len(p.Projects) > 0 {
		a.Profile.Projects = p.Projects
	}
	if len(p.Education) > 0 {
		a.Profile.Education = p.Education
	}
	if p.ExperienceLevel != "" {
		a.Profile.ExperienceLevel = p.ExperienceLevel
		a.Profile.ExperienceYears = p.ExperienceYears
	}
	if p.Name != "" {
		a.Profile.Name = p.Name
	}

	a.Strength = strength(a.Breakdown)
	a.Weakness = weakness(a.Breakdown)
	if a.Breakdown.JDMatchPercent != nil {
		a.FitAssessment = FitAssessment(*a.Breakdown.JDMatchPercent)
	}
	return a
}
