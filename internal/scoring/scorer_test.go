package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(testYear, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func newTestScorer() *Scorer {
	return NewScorer(nil, WithClock(fixedClock))
}

func assertBounded(t *testing.T, b types.ScoreBreakdown) {
	t.Helper()
	for name, v := range map[string]float64{
		"skills":     b.Skills,
		"experience": b.Experience,
		"education":  b.Education,
		"projects":   b.Projects,
		"overall":    b.Overall,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}

func TestAnalyzeWithJD(t *testing.T) {
	s := newTestScorer()
	resume := "Skills: Java, Spring Boot, React, AWS, Docker"
	jd := "Looking for Java, Kubernetes and React developers"

	a := s.AnalyzeWithJD(resume, jd)

	assert.True(t, a.HasJD)
	assert.Equal(t, []string{"Java", "React"}, a.MatchedSkills)
	assert.Equal(t, []string{"Kubernetes"}, a.MissingSkills)
	require.NotNil(t, a.Breakdown.JDMatchPercent)
	assert.InDelta(t, 66.67, *a.Breakdown.JDMatchPercent, 0.01)
	assert.Equal(t, "Good fit with some areas for development", a.FitAssessment)

	want := types.WeightBase*a.Breakdown.BaseOverall() + types.WeightJDMatch*(*a.Breakdown.JDMatchPercent/100)
	assert.InDelta(t, want, a.Breakdown.Overall, 1e-9)
	assertBounded(t, a.Breakdown)
	assert.Contains(t, a.Suggestions, "Strong match with 2 required skills")
	assert.Contains(t, a.Suggestions, "Consider gaining experience in: Kubernetes")
}

func TestAnalyzeWithJD_NoJDSkills(t *testing.T) {
	s := newTestScorer()

	a := s.AnalyzeWithJD("Skills: Java", "We value curiosity and kindness")

	require.NotNil(t, a.Breakdown.JDMatchPercent)
	assert.Equal(t, 0.0, *a.Breakdown.JDMatchPercent)
	assert.Empty(t, a.MatchedSkills)
	assert.Empty(t, a.MissingSkills)
	assert.InDelta(t, types.WeightBase*a.Breakdown.BaseOverall(), a.Breakdown.Overall, 1e-9)
}

func TestAnalyzeWithoutJD(t *testing.T) {
	s := newTestScorer()
	resume := "Jane Doe\n\nSkills\nPython, Django, PostgreSQL, Docker\n\n" +
		"Work Experience\nSoftware Engineer at Acme Corp 2019 - 2023\n\n" +
		"Education\nBachelor of Technology in Computer Science"

	a := s.AnalyzeWithoutJD(resume)

	assert.False(t, a.HasJD)
	assert.Nil(t, a.Breakdown.JDMatchPercent)
	assert.Equal(t, "General candidate assessment", a.FitAssessment)
	assert.NotNil(t, a.MatchedSkills)
	assert.NotNil(t, a.MissingSkills)
	assert.Contains(t, a.Profile.Skills, "Python")
	assert.Contains(t, a.Profile.Skills, "Django")
	assert.Equal(t, 4, a.Profile.ExperienceYears)
	assert.Equal(t, []string{"Bachelor of Computer Science"}, a.Profile.Education)
	assert.InDelta(t, a.Breakdown.BaseOverall(), a.Breakdown.Overall, 1e-9)
	assertBounded(t, a.Breakdown)
}

func TestAnalyze_DispatchesOnBlankJD(t *testing.T) {
	s := newTestScorer()

	a, err := s.Analyze(context.Background(), "Skills: Go, Java", "   \n")

	require.NoError(t, err)
	assert.False(t, a.HasJD)
}

func TestAnalyze_EmptyResume(t *testing.T) {
	s := newTestScorer()

	a, err := s.Analyze(context.Background(), "", "")

	require.NoError(t, err)
	assert.Empty(t, a.Profile.Skills)
	assert.Equal(t, 0, a.Profile.ExperienceYears)
	assertBounded(t, a.Breakdown)
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer()
	resume := "Senior engineer with 6 years of experience.\nSkills: Go, Kubernetes, AWS, PostgreSQL"
	jd := "Go and Kubernetes on AWS"

	b1, p1 := s.ScoreWithJD(resume, jd)
	b2, p2 := s.ScoreWithJD(resume, jd)

	assert.Equal(t, b1, b2)
	assert.Equal(t, p1, p2)
}

func TestScoreWithoutJD_AllComponentsBounded(t *testing.T) {
	s := newTestScorer()
	inputs := []string{
		"",
		"Fresher. Currently pursuing MCA.",
		"Principal Architect with 25 years of experience leading teams. PhD in Computer Science.",
	}

	for _, in := range inputs {
		b, _ := s.ScoreWithoutJD(in)
		assertBounded(t, b)
	}
}
