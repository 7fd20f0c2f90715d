package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/batch"
	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/db"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/llm"
	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/names"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/taxonomy"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSQLitePath = "leaderboards.db"

// app holds what a command needs after configuration has been resolved
type app struct {
	cfg     config.Config
	log     *zap.Logger
	owner   uuid.UUID
	service *leaderboard.Service
	closers []func()
}

// loadConfig resolves the config file, environment and command-line flags, in
// increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	loaded, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("database-url") {
		loaded.DatabaseURL = databaseURL
		loaded.SQLitePath = ""
	}
	if flags.Changed("sqlite") {
		loaded.SQLitePath = sqlitePath
		loaded.DatabaseURL = ""
	}
	if flags.Changed("owner") {
		loaded.OwnerID = ownerFlag
	}
	if flags.Changed("api-key") {
		loaded.APIKey = apiKeyFlag
	}
	if flags.Changed("use-llm") {
		loaded.UseLLM = useLLM
	}
	if flags.Changed("verbose") {
		loaded.Verbose = verbose
	}
	if flags.Changed("log-json") {
		loaded.LogJSON = logJSON
	}
	if flags.Changed("debug") {
		loaded.Debug = debugLogs
	}

	defaults := config.Defaults()
	defaults.SQLitePath = defaultSQLitePath
	cfg := loaded.MergeWithDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp loads configuration and builds the logger. With withStore it also opens the
// leaderboard store; memory selects an in-process store that is discarded on exit.
func newApp(cmd *cobra.Command, withStore, memory bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	owner, err := cfg.Owner()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, owner: owner}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	if !withStore {
		return a, nil
	}

	var store leaderboard.Store
	if memory {
		store = leaderboard.NewMemoryStore()
	} else {
		store, err = a.openStore(cmd.Context())
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	a.service = leaderboard.NewService(store, log)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (leaderboard.Store, error) {
	if a.cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		return database, nil
	}

	store, err := db.OpenSQLite(a.cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = store.Close() })
	a.log.Debug("opened sqlite store", zap.String("path", a.cfg.SQLitePath))
	return store, nil
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// analyzer builds the deterministic scorer, wrapped with LLM enrichment when it is
// enabled and a client can be created. Enrichment problems never fail the command.
func (a *app) analyzer(ctx context.Context) (*scoring.Scorer, scoring.Analyzer, *names.Resolver) {
	scorer := scoring.NewScorer(skills.NewExtractor(taxonomy.Default()))
	heuristic := names.NewResolver(nil, 0, a.log)

	if !a.cfg.UseLLM {
		return scorer, scorer, heuristic
	}
	if a.cfg.APIKey == "" {
		a.log.Warn("LLM enrichment requested without an API key, using heuristics")
		return scorer, scorer, heuristic
	}

	llmConfig := llm.DefaultConfig()
	if a.cfg.LLMModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, a.cfg.LLMModel)
	}

	client, err := llm.NewClient(ctx, llmConfig, a.cfg.APIKey)
	if err != nil {
		a.log.Warn("LLM client unavailable, using heuristics", zap.Error(err))
		return scorer, scorer, heuristic
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	enricher := llm.NewEnricher(client, llmConfig.ProbeTTL, a.log)
	return scorer,
		scoring.NewEnrichedAnalyzer(scorer, enricher, a.cfg.EnrichTimeout, a.log),
		names.NewResolver(enricher, a.cfg.EnrichTimeout, a.log)
}

// batchOptions maps configuration onto processor options
func (a *app) batchOptions(onProgress func(batch.ProgressEvent)) batch.Options {
	return batch.Options{
		BatchSize:      a.cfg.BatchSize,
		Concurrency:    a.cfg.Concurrency,
		ExtractTimeout: a.cfg.ExtractTimeout,
		OnProgress:     onProgress,
	}
}

// jdSource describes where a command's job description comes from. At most one of
// File, Text and URL may be set.
type jdSource struct {
	File string
	Text string
	URL  string
}

func (s jdSource) validate() error {
	set := 0
	for _, v := range []string{s.File, s.Text, s.URL} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("--jd, --jd-text and --jd-url are mutually exclusive")
	}
	return nil
}

// document loads the JD as a Document, or nil when it is given as text or not at all
func (s jdSource) document(ctx context.Context, timeout time.Duration) (*types.Document, error) {
	switch {
	case s.File != "":
		doc, err := ingestion.ReadDocument(s.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		return &doc, nil
	case s.URL != "":
		doc, err := ingestion.FetchDocument(ctx, s.URL, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job description: %w", err)
		}
		return &doc, nil
	}
	return nil, nil
}

// text resolves the JD to plain text; "" means no JD
func (s jdSource) text(ctx context.Context, extractor ingestion.TextExtractor, timeout time.Duration) (string, error) {
	if s.Text != "" {
		return ingestion.CleanText(s.Text), nil
	}
	doc, err := s.document(ctx, timeout)
	if err != nil || doc == nil {
		return "", err
	}
	text, err := extractor.ExtractText(ctx, *doc)
	if err != nil {
		return "", fmt.Errorf("failed to extract job description text: %w", err)
	}
	return text, nil
}

// writeJSON writes v to path, or stdout when path is empty, and validates the file
// against schemaPath when that schema can be found.
func writeJSON(v any, path, schemaPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: schema %s not found, output not validated\n", schemaPath)
		return nil
	}
	if err := schemas.ValidateJSON(resolved, path); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("output does not validate against schema: %w", err)
		} else if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}
	return nil
}

func parseID(flag, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", flag)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return id, nil
}
