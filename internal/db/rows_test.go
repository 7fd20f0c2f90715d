package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRow_RoundTrip(t *testing.T) {
	score := types.NewScoreBreakdown(0.8, 0.6, 0.7, 0.5).WithJDMatch(75)
	e := types.LeaderboardEntry{
		ID:              uuid.New(),
		LeaderboardID:   uuid.New(),
		CandidateName:   "Jane Doe",
		InputIndex:      3,
		Score:           &score,
		RankPosition:    2,
		Favorite:        true,
		Notes:           "call back",
		Skills:          "Go, SQL",
		MissingSkills:   []string{"Kubernetes"},
		ExperienceYears: 4,
		CreatedAt:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	r := rowFromEntry(&e)
	got := r.toEntry()

	assert.Equal(t, e, got)
}

func TestEntryRow_Unscored(t *testing.T) {
	r := rowFromEntry(&types.LeaderboardEntry{ID: uuid.New(), CandidateName: "John Roe"})

	assert.Nil(t, r.OverallScore)
	assert.Equal(t, []string{}, r.MissingSkills)
	assert.False(t, r.CreatedAt.IsZero())

	e := r.toEntry()
	assert.Nil(t, e.Score)
	assert.Nil(t, e.MissingSkills)
}

func TestEntryRow_KeepsOverriddenOverall(t *testing.T) {
	score := types.NewScoreBreakdown(0.2, 0.2, 0.2, 0.2)
	score.Overall = 0.95
	score.Overridden = true
	r := rowFromEntry(&types.LeaderboardEntry{ID: uuid.New(), Score: &score})
	assert.True(t, r.ScoreOverridden)

	e := r.toEntry()
	require.NotNil(t, e.Score)
	assert.InDelta(t, 0.95, e.Score.Overall, 1e-9)
	assert.True(t, e.Score.Overridden)
	assert.False(t, e.Score.Consistent())
	assert.Nil(t, e.Score.JDMatchPercent)
}

func TestLeaderboardRow(t *testing.T) {
	lb := &types.Leaderboard{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		JobDescription: &types.JobDescription{Title: "Backend", Text: "Go"},
	}

	got := rowFromLeaderboard(lb)
	back := got.toLeaderboard()

	require.NotNil(t, back.JobDescription)
	assert.Equal(t, "Backend", back.JobDescription.Title)
	assert.Equal(t, "", back.JobDescription.FileName)
	assert.Equal(t, []types.LeaderboardEntry{}, back.Entries)

	noJD := rowFromLeaderboard(&types.Leaderboard{ID: uuid.New()})
	assert.Nil(t, noJD.toLeaderboard().JobDescription)
}
