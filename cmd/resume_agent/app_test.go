package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearRankerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RANKER_DATABASE_URL", "RANKER_SQLITE_PATH", "RANKER_OWNER_ID", "RANKER_BATCH_SIZE"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearRankerEnv(t)

	cfg, err := loadConfig(&cobra.Command{})
	require.NoError(t, err)

	assert.Equal(t, defaultSQLitePath, cfg.SQLitePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
}

func TestLoadConfig_File(t *testing.T) {
	clearRankerEnv(t)
	path := writeFile(t, t.TempDir(), "ranker.json", `{"sqlite_path": "custom.db", "batch_size": 3}`)

	configFile = path
	t.Cleanup(func() { configFile = "" })

	cfg, err := loadConfig(&cobra.Command{})
	require.NoError(t, err)

	assert.Equal(t, "custom.db", cfg.SQLitePath)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Equal(t, 5, cfg.Concurrency)
}

func TestJDSource_Validate(t *testing.T) {
	assert.NoError(t, jdSource{}.validate())
	assert.NoError(t, jdSource{Text: "Go engineer"}.validate())
	assert.Error(t, jdSource{File: "jd.txt", Text: "Go engineer"}.validate())
	assert.Error(t, jdSource{File: "jd.txt", URL: "https://example.com/job"}.validate())
}

func TestJDSource_Text(t *testing.T) {
	ctx := context.Background()
	extractor := ingestion.NewAutoExtractor()

	text, err := jdSource{}.text(ctx, extractor, time.Second)
	require.NoError(t, err)
	assert.Empty(t, text)

	text, err = jdSource{Text: "Backend   engineer\r\nGo and SQL"}.text(ctx, extractor, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer\nGo and SQL", text)

	path := writeFile(t, t.TempDir(), "jd.txt", "Platform Engineer\nKubernetes, Terraform")
	text, err = jdSource{File: path}.text(ctx, extractor, time.Second)
	require.NoError(t, err)
	assert.Contains(t, text, "Kubernetes")

	_, err = jdSource{File: filepath.Join(t.TempDir(), "missing.txt")}.text(ctx, extractor, time.Second)
	assert.Error(t, err)
}

func TestCollectResumes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "Bob")
	writeFile(t, dir, "a.md", "Alice")
	writeFile(t, dir, "notes.pdf", "ignored")
	extra := writeFile(t, t.TempDir(), "z.txt", "Zoe")

	docs, err := collectResumes([]string{extra}, dir)
	require.NoError(t, err)

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"z.txt", "a.md", "b.txt"}, names)
}

func TestCollectResumes_Empty(t *testing.T) {
	_, err := collectResumes(nil, t.TempDir())
	assert.ErrorContains(t, err, "no résumés found")

	_, err = collectResumes([]string{filepath.Join(t.TempDir(), "missing.txt")}, "")
	assert.Error(t, err)
}

func TestWriteJSON_ValidatesAgainstSchema(t *testing.T) {
	if schemas.ResolveSchemaPath(schemas.LeaderboardSchemaPath) == "" {
		t.Skip("leaderboard schema not found")
	}
	out := filepath.Join(t.TempDir(), "lb.json")

	lbID := uuid.New()
	score := types.NewScoreBreakdown(0.5, 0.5, 0.5, 0.5)
	lb := &types.Leaderboard{
		ID:        lbID,
		OwnerID:   uuid.Nil,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Entries: []types.LeaderboardEntry{{
			ID:            uuid.New(),
			LeaderboardID: lbID,
			CandidateName: "Alice Johnson",
			Score:         &score,
			RankPosition:  1,
			Skills:        "Go, SQL",
		}},
	}
	require.NoError(t, writeJSON(lb, out, schemas.LeaderboardSchemaPath))
	assert.FileExists(t, out)

	bad := *lb
	bad.Entries = []types.LeaderboardEntry{lb.Entries[0]}
	bad.Entries[0].CandidateName = ""
	err := writeJSON(&bad, out, schemas.LeaderboardSchemaPath)
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestWriteJSON_MissingSchemaOnlyWarns(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writeJSON(map[string]int{"n": 1}, out, "schemas/does-not-exist.schema.json"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 1}`, string(data))
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := parseID("entry", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseID("entry", "")
	assert.ErrorContains(t, err, "--entry is required")

	_, err = parseID("entry", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid --entry")
}
