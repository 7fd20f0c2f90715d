package scoring

import (
	"math"

	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Blend weights and floors for the detailed analysis
const (
	blendSkillWeight      = 0.7
	blendSimilarityWeight = 0.3

	perfectSkillWeight      = 0.8
	perfectSimilarityWeight = 0.2
	perfectMinMatched       = 10

	nearPerfectSkillMatch = 0.9
	nearPerfectMaxMissing = 2

	strongMatchFloor = 0.85
)

// EnhancedResult is the detailed résumé-vs-JD comparison
type EnhancedResult struct {
	SkillMatch      float64  `json:"skill_match"`
	Similarity      float64  `json:"similarity"`
	Score           float64  `json:"score"`
	MatchPercentage int      `json:"match_percentage"`
	MatchLevel      string   `json:"match_level"`
	Matched         []string `json:"matched_skills"`
	Missing         []string `json:"missing_skills"`
	Suggestions     []string `json:"suggestions"`
}

// BlendScore combines skill coverage with textual similarity. The base blend is
// 0.7*skillMatch + 0.3*similarity. When nothing is missing and at least ten skills
// matched the score is floored at max(0.85, 0.8*skillMatch + 0.2*similarity); when
// skillMatch >= 0.9 with at most two missing it is floored at 0.85. The result is the
// max of the base blend and every floor that applies.
func BlendScore(skillMatch, similarity float64, matched, missing int) float64 {
	skillMatch = types.Clamp01(skillMatch)
	similarity = types.Clamp01(similarity)

	score := blendSkillWeight*skillMatch + blendSimilarityWeight*similarity

	if missing == 0 && matched >= perfectMinMatched {
		floor := math.Max(strongMatchFloor, perfectSkillWeight*skillMatch+perfectSimilarityWeight*similarity)
		score = math.Max(score, floor)
	}
	if skillMatch >= nearPerfectSkillMatch && missing <= nearPerfectMaxMissing {
		score = math.Max(score, strongMatchFloor)
	}

	return types.Clamp01(score)
}

// Enhanced compares a résumé with a job description using skill coverage and
// textual similarity.
func (s *Scorer) Enhanced(resumeText, jdText string) EnhancedResult {
	resumeSkills := s.extractor.Extract(resumeText)
	jdSkills := s.extractor.Extract(jdText)
	matched, missing := skills.Match(resumeSkills, jdSkills)

	skillMatch := 0.0
	if len(jdSkills) > 0 {
		skillMatch = types.Clamp01(float64(len(matched)) / float64(len(jdSkills)))
	}
	similarity := skills.Similarity(resumeText, jdText)
	score := BlendScore(skillMatch, similarity, len(matched), len(missing))
	percent := int(math.Round(score * 100))

	return EnhancedResult{
		SkillMatch:      skillMatch,
		Similarity:      similarity,
		Score:           score,
		MatchPercentage: percent,
		MatchLevel:      MatchLevel(float64(percent)),
		Matched:         matched,
		Missing:         missing,
		Suggestions:     fallbackSuggestions(missing, score),
	}
}
