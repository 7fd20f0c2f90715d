package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "ranker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, openTestSQLite(t))
}

func TestOpenSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranker.db")
	ctx := context.Background()
	lb := &types.Leaderboard{ID: uuid.New(), OwnerID: uuid.New(), CreatedAt: contractTime}

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.CreateLeaderboard(ctx, lb))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	got, err := second.GetLeaderboard(ctx, lb.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.JobDescription)
}

func TestSQLiteStore_ServiceOverride(t *testing.T) {
	ctx := context.Background()
	svc := leaderboard.NewService(openTestSQLite(t), nil)
	owner := uuid.New()
	lb := &types.Leaderboard{ID: uuid.New(), OwnerID: owner, CreatedAt: contractTime}
	require.NoError(t, svc.Store().CreateLeaderboard(ctx, lb))
	a := contractEntry(lb.ID, "Alpha", 0, 0.8)
	b := contractEntry(lb.ID, "Beta", 1, 0.4)
	require.NoError(t, svc.Store().AddEntries(ctx, []types.LeaderboardEntry{a, b}))

	_, err := svc.Finalize(ctx, lb.ID)
	require.NoError(t, err)
	ranked, err := svc.OverrideScore(ctx, types.ScoreOverrideRequest{EntryID: b.ID, Overall: 0.95}, owner)
	require.NoError(t, err)

	require.Len(t, ranked.Entries, 2)
	assert.Equal(t, "Beta", ranked.Entries[0].CandidateName)
	assert.Equal(t, 1, ranked.Entries[0].RankPosition)
	assert.InDelta(t, 0.95, ranked.Entries[0].Score.Overall, 1e-9)
	assert.True(t, ranked.Entries[0].Score.Overridden)
	assert.Equal(t, 2, ranked.Entries[1].RankPosition)
	assert.False(t, ranked.Entries[1].Score.Overridden)
}
