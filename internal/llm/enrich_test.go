package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements Client with overridable functions
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	calls               int
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.calls++
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "OK", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier ModelTier) string { return "mock-" + string(tier) }

func (m *MockLLMClient) Close() error { return nil }

func TestEnricher_NilClient(t *testing.T) {
	e := NewEnricher(nil, 0, nil)

	assert.False(t, e.Available(context.Background()))
	_, err := e.ExtractName(context.Background(), "Jane Doe")
	var unavailable *UnavailableError
	assert.ErrorAs(t, err, &unavailable)
	_, _, err = e.Enhance(context.Background(), "Jane Doe", "")
	assert.ErrorAs(t, err, &unavailable)
}

func TestEnricher_AvailableCachesProbe(t *testing.T) {
	mock := &MockLLMClient{}
	e := NewEnricher(mock, time.Minute, nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	assert.True(t, e.Available(context.Background()))
	assert.True(t, e.Available(context.Background()))
	assert.Equal(t, 1, mock.calls)

	now = now.Add(2 * time.Minute)
	mock.GenerateContentFunc = func(context.Context, string, ModelTier) (string, error) {
		return "", errors.New("quota exceeded")
	}
	assert.False(t, e.Available(context.Background()))
	assert.Equal(t, 2, mock.calls)
}

func TestEnricher_ExtractName(t *testing.T) {
	var gotTier ModelTier
	var gotPrompt string
	mock := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, prompt string, tier ModelTier) (string, error) {
		gotTier, gotPrompt = tier, prompt
		return "```json\n{\"name\": \" Priya Sharma \"}\n```", nil
	}}

	name, err := NewEnricher(mock, 0, nil).ExtractName(context.Background(), "PRIYA SHARMA\npriya@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", name)
	assert.Equal(t, TierLite, gotTier)
	assert.Contains(t, gotPrompt, "PRIYA SHARMA")
}

func TestEnricher_ExtractName_Errors(t *testing.T) {
	mock := &MockLLMClient{GenerateJSONFunc: func(context.Context, string, ModelTier) (string, error) {
		return "", errors.New("timeout")
	}}
	_, err := NewEnricher(mock, 0, nil).ExtractName(context.Background(), "text")
	assert.ErrorContains(t, err, "failed to extract candidate name")

	mock.GenerateJSONFunc = func(context.Context, string, ModelTier) (string, error) { return "not json", nil }
	_, err = NewEnricher(mock, 0, nil).ExtractName(context.Background(), "text")
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestEnricher_ExtractName_TruncatesInput(t *testing.T) {
	var gotPrompt string
	mock := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, prompt string, _ ModelTier) (string, error) {
		gotPrompt = prompt
		return `{"name": ""}`, nil
	}}

	name, err := NewEnricher(mock, 0, nil).ExtractName(context.Background(), "Jane Doe\n"+strings.Repeat("x", 5000))

	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.NotContains(t, gotPrompt, strings.Repeat("x", nameInputRunes))
}

const enrichedResponse = `Here you go:
{
  "scores": {"skills": 0.9, "experience": 0.7, "education": 0.6, "projects": 0.8, "jd_match_percent": 80},
  "profile": {
    "name": "Jane Doe",
    "skills": ["Go", " ", "Kubernetes"],
    "projects": ["Payments platform"],
    "education": ["B.Tech Computer Science"],
    "experience_years": 5,
    "experience_level": "mid-level"
  }
}`

func TestEnricher_Enhance(t *testing.T) {
	var gotPrompt string
	var gotTier ModelTier
	mock := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, prompt string, tier ModelTier) (string, error) {
		gotPrompt, gotTier = prompt, tier
		return enrichedResponse, nil
	}}

	breakdown, profile, err := NewEnricher(mock, 0, nil).Enhance(context.Background(), "Jane Doe résumé", "Go engineer")

	require.NoError(t, err)
	assert.Equal(t, TierStandard, gotTier)
	assert.Contains(t, gotPrompt, "Jane Doe résumé")
	assert.Contains(t, gotPrompt, "Go engineer")
	assert.Contains(t, gotPrompt, string(types.LevelFresherProjects))

	assert.InDelta(t, 0.9, breakdown.Skills, 1e-9)
	require.NotNil(t, breakdown.JDMatchPercent)
	assert.InDelta(t, 80, *breakdown.JDMatchPercent, 1e-9)
	assert.InDelta(t, breakdown.Recompute(), breakdown.Overall, 1e-9)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, []string{"Go", "Kubernetes"}, profile.Skills)
	assert.Equal(t, types.LevelMid, profile.ExperienceLevel)
	assert.Equal(t, 5, profile.ExperienceYears)
}

func TestEnricher_Enhance_LongResumeUsesAdvancedTier(t *testing.T) {
	var gotTier ModelTier
	mock := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, _ string, tier ModelTier) (string, error) {
		gotTier = tier
		return enrichedResponse, nil
	}}

	_, _, err := NewEnricher(mock, 0, nil).Enhance(context.Background(), strings.Repeat("a", analysisInputRunes+1), "")

	require.NoError(t, err)
	assert.Equal(t, TierAdvanced, gotTier)
}

func TestEnricher_Enhance_NoJDIgnoresPercent(t *testing.T) {
	var gotPrompt string
	mock := &MockLLMClient{GenerateJSONFunc: func(_ context.Context, prompt string, _ ModelTier) (string, error) {
		gotPrompt = prompt
		return enrichedResponse, nil
	}}

	breakdown, _, err := NewEnricher(mock, 0, nil).Enhance(context.Background(), "résumé", "  ")

	require.NoError(t, err)
	assert.Nil(t, breakdown.JDMatchPercent)
	assert.Contains(t, gotPrompt, "\"\"\"\nNone\n\"\"\"")
}

func TestEnricher_Enhance_RejectsSchemaViolations(t *testing.T) {
	mock := &MockLLMClient{GenerateJSONFunc: func(context.Context, string, ModelTier) (string, error) {
		return `{"scores": {"skills": 3, "experience": 0.7, "education": 0.6, "projects": 0.8}}`, nil
	}}

	_, _, err := NewEnricher(mock, 0, nil).Enhance(context.Background(), "résumé", "")

	assert.ErrorContains(t, err, "does not match schema")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, types.LevelSenior, parseLevel(" senior "))
	assert.Equal(t, types.LevelStudentIntern, parseLevel("Student (Internship Experience)"))
	assert.Equal(t, types.ExperienceLevel(""), parseLevel("Wizard"))
}
