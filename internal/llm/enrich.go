package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/prompts"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Input limits keep prompts within the model windows. Résumés longer than
// analysisInputRunes go to the advanced tier.
const (
	nameInputRunes         = 1200
	analysisInputRunes     = 12000
	longAnalysisInputRunes = 40000
)

var knownLevels = []types.ExperienceLevel{
	types.LevelStudentIntern,
	types.LevelStudent,
	types.LevelFresherProjects,
	types.LevelFresher,
	types.LevelSeniorLeader,
	types.LevelSenior,
	types.LevelMid,
	types.LevelJunior,
	types.LevelEntry,
}

// UnavailableError reports that no model backend is configured or reachable
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("LLM unavailable: %s", e.Reason)
}

// Enricher asks a model for candidate names and full résumé analyses. It satisfies
// both names.Enricher and scoring.AnalysisEnricher. A nil client is never available.
type Enricher struct {
	client   Client
	logger   *zap.Logger
	probeTTL time.Duration
	now      func() time.Time

	mu        sync.Mutex
	probedAt  time.Time
	available bool
}

// NewEnricher wraps client. probeTTL <= 0 uses the default from DefaultConfig.
func NewEnricher(client Client, probeTTL time.Duration, logger *zap.Logger) *Enricher {
	if probeTTL <= 0 {
		probeTTL = DefaultConfig().ProbeTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{client: client, logger: logger, probeTTL: probeTTL, now: time.Now}
}

// Available probes the backend with a trivial prompt. The answer is reused for the
// probe TTL so a batch does not probe once per résumé.
func (e *Enricher) Available(ctx context.Context) bool {
	if e == nil || e.client == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.probedAt.IsZero() && e.now().Sub(e.probedAt) < e.probeTTL {
		return e.available
	}

	_, err := e.client.GenerateContent(ctx, prompts.MustGet(prompts.EnrichmentFile, "probe"), TierLite)
	e.available = err == nil
	e.probedAt = e.now()
	if err != nil {
		e.logger.Warn("LLM probe failed", zap.String("model", e.client.GetModel(TierLite)), zap.Error(err))
	}
	return e.available
}

// ExtractName returns the candidate name found by the model, or "" when it found none
func (e *Enricher) ExtractName(ctx context.Context, resumeText string) (string, error) {
	if e == nil || e.client == nil {
		return "", &UnavailableError{Reason: "no client configured"}
	}

	prompt := BuildExtractionPrompt(CandidateNameSchema(), truncateRunes(resumeText, nameInputRunes))
	raw, err := e.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to extract candidate name: %w", err)
	}

	raw = CleanJSONBlock(raw)
	if !gjson.Valid(raw) {
		return "", fmt.Errorf("candidate name response is not valid JSON")
	}
	return strings.TrimSpace(gjson.Get(raw, "name").String()), nil
}

// Enhance asks the model for a full score breakdown and profile. The response must
// match the embedded enrichment schema.
func (e *Enricher) Enhance(ctx context.Context, resumeText, jdText string) (types.ScoreBreakdown, types.CandidateProfile, error) {
	if e == nil || e.client == nil {
		return types.ScoreBreakdown{}, types.CandidateProfile{}, &UnavailableError{Reason: "no client configured"}
	}

	jd := strings.TrimSpace(jdText)
	jdForPrompt := jd
	if jdForPrompt == "" {
		jdForPrompt = "None"
	}
	levels := make([]string, len(knownLevels))
	for i, l := range knownLevels {
		levels[i] = string(l)
	}

	tier, limit := TierStandard, analysisInputRunes
	if utf8.RuneCountInString(resumeText) > analysisInputRunes {
		tier, limit = TierAdvanced, longAnalysisInputRunes
	}

	prompt, err := prompts.Render(prompts.EnrichmentFile, "analyze-resume", map[string]string{
		"Resume":         truncateRunes(resumeText, limit),
		"JobDescription": truncateRunes(jdForPrompt, analysisInputRunes/2),
		"Levels":         strings.Join(levels, ", "),
	})
	if err != nil {
		return types.ScoreBreakdown{}, types.CandidateProfile{}, err
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return types.ScoreBreakdown{}, types.CandidateProfile{}, fmt.Errorf("failed to generate analysis: %w", err)
	}
	raw = CleanJSONBlock(raw)
	if err := schemas.ValidateEmbedded(schemas.EnrichmentSchema, raw); err != nil {
		return types.ScoreBreakdown{}, types.CandidateProfile{}, fmt.Errorf("analysis response does not match schema: %w", err)
	}

	breakdown, profile := parseEnrichment(raw, jd != "")
	return breakdown, profile, nil
}

func parseEnrichment(raw string, hasJD bool) (types.ScoreBreakdown, types.CandidateProfile) {
	scores := gjson.Get(raw, "scores")
	breakdown := types.NewScoreBreakdown(
		scores.Get("skills").Float(),
		scores.Get("experience").Float(),
		scores.Get("education").Float(),
		scores.Get("projects").Float(),
	)
	if pct := scores.Get("jd_match_percent"); hasJD && pct.Exists() {
		breakdown = breakdown.WithJDMatch(pct.Float())
	}

	p := gjson.Get(raw, "profile")
	profile := types.CandidateProfile{
		Name:            strings.TrimSpace(p.Get("name").String()),
		Skills:          stringArray(p.Get("skills")),
		Projects:        stringArray(p.Get("projects")),
		Education:       stringArray(p.Get("education")),
		ExperienceYears: int(p.Get("experience_years").Int()),
		ExperienceLevel: parseLevel(p.Get("experience_level").String()),
	}
	return breakdown, profile
}

func stringArray(r gjson.Result) []string {
	var out []string
	for _, item := range r.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseLevel maps a model answer onto a known level, "" when it is not one
func parseLevel(s string) types.ExperienceLevel {
	s = strings.TrimSpace(s)
	for _, l := range knownLevels {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
