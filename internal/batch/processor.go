// Package batch scores many résumés into one ranked leaderboard.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/names"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Defaults for Options
const (
	DefaultBatchSize      = 5
	DefaultConcurrency    = 5
	DefaultExtractTimeout = 30 * time.Second
	defaultJDTitle        = "Job Description"
)

// NameResolver derives a display name from résumé text; it never fails
type NameResolver interface {
	Resolve(ctx context.Context, text string) string
}

// ProgressEvent is emitted after each committed sub-batch
type ProgressEvent struct {
	SubBatch  int
	Committed int
	Requested int
}

// SkipRecord describes a résumé that could not be scored
type SkipRecord struct {
	Index  int    `json:"index"`
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Result reports the leaderboard together with requested and scored counts.
// A leaderboard with no entries is a valid result.
type Result struct {
	Leaderboard *types.Leaderboard `json:"leaderboard"`
	Requested   int                `json:"requested"`
	Scored      int                `json:"scored"`
	Skipped     []SkipRecord       `json:"skipped"`
}

// Options tunes a Processor. Zero values select the defaults.
type Options struct {
	BatchSize      int
	Concurrency    int
	ExtractTimeout time.Duration
	OnProgress     func(ProgressEvent)
	Now            func() time.Time
}

// Processor runs batches. It is safe to run several batches concurrently.
type Processor struct {
	extractor ingestion.TextExtractor
	analyzer  scoring.Analyzer
	names     NameResolver
	service   *leaderboard.Service
	logger    *zap.Logger
	opts      Options
}

// NewProcessor wires a Processor. A nil resolver uses the heuristic name extractor.
func NewProcessor(extractor ingestion.TextExtractor, analyzer scoring.Analyzer, resolver NameResolver,
	service *leaderboard.Service, log *zap.Logger, opts Options) *Processor {
	if resolver == nil {
		resolver = names.NewResolver(nil, 0, log)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = DefaultExtractTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Processor{
		extractor: extractor,
		analyzer:  analyzer,
		names:     resolver,
		service:   service,
		logger:    logger.OrNop(log),
		opts:      opts,
	}
}

// Run validates the request, resolves the job description, creates the leaderboard,
// then scores résumés in sub-batches committed in input order. Ranks are assigned
// once every entry is known.
//
// Per-résumé failures are recorded in Result.Skipped. When ctx is cancelled between
// sub-batches, the committed entries are ranked and returned together with ctx.Err().
func (p *Processor) Run(ctx context.Context, req types.BatchRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	jd, err := p.resolveJD(ctx, req)
	if err != nil {
		return nil, err
	}

	lb := &types.Leaderboard{
		ID:             uuid.New(),
		OwnerID:        req.OwnerID,
		JobDescription: jd,
		CreatedAt:      p.opts.Now().UTC(),
	}
	if err := p.service.Store().CreateLeaderboard(ctx, lb); err != nil {
		return nil, fmt.Errorf("failed to create leaderboard: %w", err)
	}
	log := p.logger.With(zap.String(logger.FieldLeaderboard, lb.ID.String()))
	log.Info("batch started", zap.Int("resumes", len(req.Resumes)), zap.Bool("has_jd", jd != nil))
	if jd != nil {
		log.Debug("job description resolved", zap.String("title", jd.Title), zap.String("text", logger.Truncate(jd.Text, 120)))
	}

	jdText := ""
	if jd != nil {
		jdText = jd.Text
	}

	result := &Result{Requested: len(req.Resumes), Skipped: []SkipRecord{}}
	var runErr error
	for start, subBatch := 0, 1; start < len(req.Resumes); start, subBatch = start+p.opts.BatchSize, subBatch+1 {
		if err := ctx.Err(); err != nil {
			log.Warn("batch cancelled", zap.Int("committed", result.Scored), zap.Error(err))
			runErr = err
			break
		}

		end := min(start+p.opts.BatchSize, len(req.Resumes))
		entries, skipped := p.scoreSubBatch(ctx, lb.ID, start, req.Resumes[start:end], jdText, log)
		if len(entries) > 0 {
			if err := p.service.Store().AddEntries(ctx, entries); err != nil {
				runErr = fmt.Errorf("failed to commit sub-batch %d: %w", subBatch, err)
				break
			}
		}
		result.Scored += len(entries)
		result.Skipped = append(result.Skipped, skipped...)

		if p.opts.OnProgress != nil {
			p.opts.OnProgress(ProgressEvent{SubBatch: subBatch, Committed: result.Scored, Requested: result.Requested})
		}
	}

	// ranking the committed entries must survive a cancelled ctx
	ranked, err := p.service.Finalize(context.WithoutCancel(ctx), lb.ID)
	if err != nil {
		return nil, errors.Join(runErr, fmt.Errorf("failed to rank leaderboard: %w", err))
	}
	result.Leaderboard = ranked

	log.Info("batch finished",
		zap.Int("requested", result.Requested),
		zap.Int("scored", result.Scored),
		zap.Int("skipped", len(result.Skipped)))
	return result, runErr
}

func (p *Processor) resolveJD(ctx context.Context, req types.BatchRequest) (*types.JobDescription, error) {
	if req.JD != nil {
		extractCtx, cancel := context.WithTimeout(ctx, p.opts.ExtractTimeout)
		defer cancel()
		text, err := p.extractor.ExtractText(extractCtx, *req.JD)
		if err != nil {
			return nil, &JDResolutionError{Source: req.JD.Name, Cause: err}
		}
		return &types.JobDescription{Title: req.JD.Name, FileName: req.JD.Name, Text: text}, nil
	}

	text := ingestion.CleanText(req.JDText)
	if text == "" {
		return nil, nil
	}
	title := strings.TrimSpace(req.JDTitle)
	if title == "" {
		title = defaultJDTitle
	}
	return &types.JobDescription{Title: title, Text: text}, nil
}

type outcome struct {
	entry *types.LeaderboardEntry
	err   error
}

// scoreSubBatch scores docs in parallel and returns entries in input order. The
// sub-batch runs to completion even when ctx is cancelled.
func (p *Processor) scoreSubBatch(ctx context.Context, leaderboardID uuid.UUID, offset int, docs []types.Document,
	jdText string, log *zap.Logger) ([]types.LeaderboardEntry, []SkipRecord) {
	workCtx := context.WithoutCancel(ctx)
	outcomes := make([]outcome, len(docs))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i := range docs {
		g.Go(func() error {
			index := offset + i
			entry, err := p.scoreOne(workCtx, leaderboardID, index, docs[i], jdText)
			if err != nil {
				err = &ExtractionError{Index: index, File: docs[i].Name, Cause: err}
			}
			outcomes[i] = outcome{entry: entry, err: err}
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]types.LeaderboardEntry, 0, len(docs))
	var skipped []SkipRecord
	for i, o := range outcomes {
		if o.err != nil {
			log.Warn("résumé skipped", append(logger.Document(offset+i, docs[i].Name), zap.Error(o.err))...)
			skipped = append(skipped, SkipRecord{Index: offset + i, File: docs[i].Name, Reason: o.err.Error()})
			continue
		}
		entries = append(entries, *o.entry)
	}
	return entries, skipped
}

func (p *Processor) scoreOne(ctx context.Context, leaderboardID uuid.UUID, index int, doc types.Document,
	jdText string) (entry *types.LeaderboardEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entry, err = nil, fmt.Errorf("scoring panicked: %v", r)
		}
	}()

	extractCtx, cancel := context.WithTimeout(ctx, p.opts.ExtractTimeout)
	text, err := p.extractor.ExtractText(extractCtx, doc)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	name := p.names.Resolve(ctx, text)
	analysis, err := p.analyzer.Analyze(ctx, text, jdText)
	if err != nil {
		return nil, fmt.Errorf("failed to score: %w", err)
	}

	e := NewEntry(leaderboardID, name, doc.Name, index, analysis, p.opts.Now().UTC())
	return &e, nil
}

// NewEntry projects an analysis onto a leaderboard entry. Skills lists the matched
// skills when the analysis was made against a job description, otherwise all skills.
func NewEntry(leaderboardID uuid.UUID, name, file string, index int, a types.Analysis, now time.Time) types.LeaderboardEntry {
	entrySkills := a.Profile.Skills
	if a.HasJD {
		entrySkills = a.MatchedSkills
	}
	score := a.Breakdown
	return types.LeaderboardEntry{
		ID:              uuid.New(),
		LeaderboardID:   leaderboardID,
		CandidateName:   name,
		FileName:        file,
		InputIndex:      index,
		Score:           &score,
		Skills:          strings.Join(entrySkills, ", "),
		Experience:      string(a.Profile.ExperienceLevel),
		Projects:        strings.Join(a.Profile.Projects, ", "),
		Hackathons:      strings.Join(a.Profile.Hackathons, ", "),
		MissingSkills:   a.MissingSkills,
		ExperienceYears: a.Profile.ExperienceYears,
		CreatedAt:       now,
	}
}
