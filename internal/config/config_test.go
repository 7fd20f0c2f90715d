package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "ranker.json", `{
		"sqlite_path": "data/ranker.db",
		"owner_id": "550e8400-e29b-41d4-a716-446655440000",
		"batch_size": 10,
		"extract_timeout": "45s",
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/ranker.db", cfg.SQLitePath)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", cfg.OwnerID)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 45*time.Second, cfg.ExtractTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "ranker.yaml", "concurrency: 3\nuse_llm: true\nenrich_timeout: 1m\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Concurrency)
	assert.True(t, cfg.UseLLM)
	assert.Equal(t, time.Minute, cfg.EnrichTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "ranker.json", `{"batch_size": 10, "database_url": "postgres://file"}`)
	t.Setenv("RANKER_BATCH_SIZE", "7")
	t.Setenv("RANKER_DATABASE_URL", "postgres://env")
	t.Setenv("RANKER_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.BatchSize)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("RANKER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-key", cfg.APIKey)
	assert.Equal(t, 0, cfg.BatchSize, "defaults are applied by MergeWithDefaults")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/path/ranker.json")
	assert.ErrorContains(t, err, "failed to read config file")

	path := writeConfig(t, "ranker.json", `{ invalid json }`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"both stores", Config{DatabaseURL: "postgres://x", SQLitePath: "x.db"}, "mutually exclusive"},
		{"negative batch", Config{BatchSize: -1}, "batch_size"},
		{"negative concurrency", Config{Concurrency: -2}, "concurrency"},
		{"negative timeout", Config{EnrichTimeout: -time.Second}, "timeouts"},
		{"bad owner", Config{OwnerID: "not-a-uuid"}, "owner_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()
	defaults.SQLitePath = "ranker.db"

	cfg := &Config{BatchSize: 8}
	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 8, merged.BatchSize)
	assert.Equal(t, 5, merged.Concurrency)
	assert.Equal(t, 30*time.Second, merged.ExtractTimeout)
	assert.Equal(t, 20*time.Second, merged.EnrichTimeout)
	assert.Equal(t, "ranker.db", merged.SQLitePath)
	assert.Equal(t, 0, cfg.Concurrency, "receiver is unchanged")

	pg := &Config{DatabaseURL: "postgres://x"}
	assert.Empty(t, pg.MergeWithDefaults(defaults).SQLitePath, "an explicit store wins")
}

func TestOwner(t *testing.T) {
	id, err := (&Config{}).Owner()
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	want := uuid.New()
	id, err = (&Config{OwnerID: want.String()}).Owner()
	require.NoError(t, err)
	assert.Equal(t, want, id)

	_, err = (&Config{OwnerID: "nope"}).Owner()
	assert.Error(t, err)
}
