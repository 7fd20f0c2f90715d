// Package scoring turns résumé text into component scores, a composite score and a
// candidate profile, optionally measured against a job description.
package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// maxMissingSkills bounds the missing-skill list kept for suggestions
const maxMissingSkills = 10

// Analyzer produces an Analysis for one résumé. An empty jdText means no job description.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jdText string) (types.Analysis, error)
}

// Scorer is the deterministic CandidateScorer. It is pure apart from reading the clock
// for "present" date ranges and is safe for concurrent use.
type Scorer struct {
	extractor *skills.Extractor
	now       func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithClock overrides the time source used to resolve "present" and future dates
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// NewScorer creates a Scorer; a nil extractor uses the built-in taxonomy.
func NewScorer(extractor *skills.Extractor, opts ...Option) *Scorer {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	s := &Scorer{extractor: extractor, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze dispatches on whether a job description was supplied. It never fails.
func (s *Scorer) Analyze(_ context.Context, resumeText, jdText string) (types.Analysis, error) {
	if strings.TrimSpace(jdText) == "" {
		return s.AnalyzeWithoutJD(resumeText), nil
	}
	return s.AnalyzeWithJD(resumeText, jdText), nil
}

// ScoreWithoutJD scores a résumé on its own
func (s *Scorer) ScoreWithoutJD(resumeText string) (types.ScoreBreakdown, types.CandidateProfile) {
	a := s.AnalyzeWithoutJD(resumeText)
	return a.Breakdown, a.Profile
}

// ScoreWithJD scores a résumé and blends in how many JD skills it covers
func (s *Scorer) ScoreWithJD(resumeText, jdText string) (types.ScoreBreakdown, types.CandidateProfile) {
	a := s.AnalyzeWithJD(resumeText, jdText)
	return a.Breakdown, a.Profile
}

// AnalyzeWithoutJD runs the full résumé-only analysis
func (s *Scorer) AnalyzeWithoutJD(resumeText string) types.Analysis {
	currentYear := s.now().Year()

	extracted := s.extractor.Extract(resumeText)
	years := estimateYears(resumeText, currentYear)
	level := experienceLevel(years, resumeText)

	skillsSection := extractSection(resumeText, "skills")
	experienceSection := extractSection(resumeText, "experience")
	projectsSection := extractSection(resumeText, "projects")
	educationSection := extractSection(resumeText, "education")

	breakdown := types.NewScoreBreakdown(
		skillsScore(extracted),
		experienceScore(years, resumeText),
		educationScore(resumeText),
		projectsScore(projectsSection),
	)

	return types.Analysis{
		Breakdown: breakdown,
		Profile: types.CandidateProfile{
			Skills:          extracted,
			Projects:        extractProjects(projectsSection),
			Hackathons:      extractHackathons(resumeText),
			Education:       extractEducation(educationSection),
			ExperienceYears: years,
			ExperienceLevel: level,
		},
		MatchedSkills:     []string{},
		MissingSkills:     []string{},
		Strength:          strength(breakdown),
		Weakness:          weakness(breakdown),
		Suggestions:       improvements(breakdown),
		FitAssessment:     "General candidate assessment",
		SkillsSection:     skillsSection,
		ExperienceSection: experienceSection,
		ProjectsSection:   projectsSection,
		EducationSection:  educationSection,
	}
}

// AnalyzeWithJD runs the résumé-only analysis and blends in JD skill coverage:
// overall = 0.6*base + 0.4*(jdMatchPercent/100), capped at 1.
func (s *Scorer) AnalyzeWithJD(resumeText, jdText string) types.Analysis {
	a := s.AnalyzeWithoutJD(resumeText)

	jdSkills := s.extractor.Extract(jdText)
	matched, missing := skills.Match(a.Profile.Skills, jdSkills)
	if len(missing) > maxMissingSkills {
		missing = missing[:maxMissingSkills]
	}

	percent := 0.0
	if len(jdSkills) > 0 {
		percent = float64(len(matched)) / float64(len(jdSkills)) * 100
	}

	a.Breakdown = a.Breakdown.WithJDMatch(percent)
	a.HasJD = true
	a.MatchedSkills = matched
	a.MissingSkills = missing
	a.Suggestions = jdSuggestions(matched, missing)
	a.FitAssessment = FitAssessment(*a.Breakdown.JDMatchPercent)
	return a
}
