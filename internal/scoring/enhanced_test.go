package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlendScore(t *testing.T) {
	tests := []struct {
		name       string
		skillMatch float64
		similarity float64
		matched    int
		missing    int
		want       float64
	}{
		{"perfect match floored", 1, 0.1, 10, 0, 0.85},
		{"perfect match above floor", 1, 0.9, 12, 0, 0.98},
		{"near perfect floored", 0.92, 0.1, 11, 1, 0.85},
		{"plain blend", 0.5, 0.5, 5, 5, 0.5},
		{"too few matched for floor", 0.85, 0.2, 9, 0, 0.655},
		{"no coverage", 0, 0, 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BlendScore(tt.skillMatch, tt.similarity, tt.matched, tt.missing), 1e-9)
		})
	}
}

func TestBlendScore_ClampsInputs(t *testing.T) {
	assert.Equal(t, 1.0, BlendScore(3, 2, 0, 0))
	assert.Equal(t, 0.0, BlendScore(-1, -1, 0, 0))
}

func TestEnhanced_FullCoverage(t *testing.T) {
	s := newTestScorer()
	text := "java python react docker kubernetes aws mysql git jenkins kotlin"

	r := s.Enhanced(text, text)

	assert.Len(t, r.Matched, 10)
	assert.Empty(t, r.Missing)
	assert.GreaterOrEqual(t, r.Score, 0.85)
	assert.Equal(t, LevelExcellent, r.MatchLevel)
	assert.Equal(t, 100, r.MatchPercentage)
}

func TestEnhanced_NoOverlap(t *testing.T) {
	s := newTestScorer()

	r := s.Enhanced("Java", "Kubernetes")

	assert.Equal(t, 0.0, r.SkillMatch)
	assert.Equal(t, 0.0, r.Similarity)
	assert.Equal(t, 0, r.MatchPercentage)
	assert.Equal(t, LevelPoor, r.MatchLevel)
	assert.Equal(t, []string{"Kubernetes"}, r.Missing)
	assert.Contains(t, r.Suggestions, "Focus on developing these critical skills: Kubernetes")
}
