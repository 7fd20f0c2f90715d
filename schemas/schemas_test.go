package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"leaderboard.schema.json",
	"analysis.schema.json",
}

func TestSchemaFiles_AreJSONSchemas(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
		})
	}
}

func writeJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func sampleLeaderboard() types.Leaderboard {
	lbID := uuid.New()
	score := types.NewScoreBreakdown(0.8, 0.6, 0.7, 0.5).WithJDMatch(66.67)
	return types.Leaderboard{
		ID:             lbID,
		OwnerID:        uuid.New(),
		JobDescription: &types.JobDescription{Title: "Backend Engineer", Text: "Go and PostgreSQL"},
		Entries: []types.LeaderboardEntry{
			{
				ID: uuid.New(), LeaderboardID: lbID, CandidateName: "Jane Doe", FileName: "jane.txt",
				Score: &score, RankPosition: 1, Skills: "Go", Experience: "Mid-Level",
				MissingSkills: []string{"Postgresql"}, ExperienceYears: 4, CreatedAt: time.Now().UTC(),
			},
			{
				ID: uuid.New(), LeaderboardID: lbID, CandidateName: "John Roe", InputIndex: 1,
				RankPosition: 2, CreatedAt: time.Now().UTC(),
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestLeaderboardSchema_AcceptsLeaderboard(t *testing.T) {
	path := writeJSON(t, sampleLeaderboard())

	assert.NoError(t, schemas.ValidateJSON("leaderboard.schema.json", path))
}

func TestLeaderboardSchema_RejectsOutOfRangeScore(t *testing.T) {
	lb := sampleLeaderboard()
	lb.Entries[0].Score.Overall = 1.5
	path := writeJSON(t, lb)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, schemas.ValidateJSON("leaderboard.schema.json", path), &validationErr)
}

func TestAnalysisSchema_AcceptsAnalysis(t *testing.T) {
	analysis := types.Analysis{
		Breakdown: types.NewScoreBreakdown(0.5, 0.4, 0.7, 0.3),
		Profile: types.CandidateProfile{
			Skills:          []string{"Java"},
			ExperienceLevel: types.LevelJunior,
			ExperienceYears: 1,
		},
		Strength:      "Educational Background",
		Weakness:      "Project Portfolio",
		FitAssessment: "",
	}

	assert.NoError(t, schemas.ValidateJSON("analysis.schema.json", writeJSON(t, analysis)))
}
